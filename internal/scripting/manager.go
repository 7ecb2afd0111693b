package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicecore/internal/game/check"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// GlobalNamespace is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no namespace VM is found.
const GlobalNamespace = "__global__"

// vm is one sandboxed LState. LStates are single-threaded, so mu serializes
// every use of L.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per namespace and exposes hook dispatch.
//
// Manager is safe for concurrent use. Calls into the same namespace are
// serialized; different namespaces run concurrently.
type Manager struct {
	mu         sync.RWMutex
	vms        map[string]*vm
	roller     *dice.Roller
	classifier check.Classifier
	logger     *zap.Logger
}

// NewManager creates a Manager whose engine.dice module rolls with roller and
// classifies checks with classifier.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no namespaces loaded.
func NewManager(roller *dice.Roller, classifier check.Classifier, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting: NewManager precondition violated: roller must be non-nil")
	}
	if logger == nil {
		panic("scripting: NewManager precondition violated: logger must be non-nil")
	}
	return &Manager{
		vms:        make(map[string]*vm),
		roller:     roller,
		classifier: classifier,
		logger:     logger,
	}
}

// LoadNamespace creates a sandboxed VM for ns, registers all engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order. A
// previously loaded VM for ns is replaced and closed.
//
// Precondition: ns must be non-empty; scriptDir must be a readable directory.
// Postcondition: Namespace VM is registered; returns error on Lua load failure.
func (m *Manager) LoadNamespace(ns, scriptDir string, instLimit int) error {
	if ns == "" {
		return fmt.Errorf("scripting: namespace must not be empty")
	}
	return m.loadInto(ns, scriptDir, instLimit)
}

// LoadGlobal creates the GlobalNamespace VM for shared scripts reachable as a
// CallHook fallback from any namespace.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(GlobalNamespace, scriptDir, instLimit)
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L, key)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}
	cancel()

	m.mu.Lock()
	old := m.vms[key]
	m.vms[key] = &vm{L: L, limit: effectiveLimit(instLimit)}
	m.mu.Unlock()

	if old != nil {
		old.close()
	}
	m.logger.Debug("scripting: namespace loaded",
		zap.String("namespace", key),
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// CallHook calls the named Lua global function in ns's VM. If ns has no VM,
// the GlobalNamespace VM is tried as a fallback. Returns (LNil, nil) if the
// hook is not defined or no VM exists. Each call runs under a fresh
// instruction budget. Lua runtime errors, including an exhausted budget, are
// logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(ns, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.vms[ns]
	if !ok {
		v = m.vms[GlobalNamespace]
	}
	m.mu.RUnlock()

	if v == nil {
		m.logger.Info("scripting: no VM for namespace",
			zap.String("namespace", ns),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return lua.LNil, nil
	}

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	ctx, cancel := newCountingContext(v.limit)
	defer cancel()
	v.L.SetContext(ctx)

	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("namespace", ns),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Namespaces returns the loaded namespace keys in lexicographic order.
func (m *Manager) Namespaces() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vms))
	for k := range m.vms {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Close releases every loaded VM. CallHook after Close behaves as if no
// namespace were loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	vms := m.vms
	m.vms = make(map[string]*vm)
	m.mu.Unlock()

	for _, v := range vms {
		v.close()
	}
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L != nil {
		v.L.Close()
		v.L = nil
	}
}
