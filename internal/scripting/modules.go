package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// RegisterModules registers all engine.* Lua tables into L. Log entries
// written by scripts carry ns as their namespace field.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine, engine.log and engine.dice are defined in L.
func (m *Manager) RegisterModules(L *lua.LState, ns string) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.newLogModule(L, ns))
	L.SetField(engine, "dice", m.newDiceModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) newLogModule(L *lua.LState, ns string) *lua.LTable {
	logger := m.logger.With(zap.String("source", "lua"), zap.String("namespace", ns))
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
		"error": logger.Error,
	}
	for name, fn := range levels {
		fn := fn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1))
			return 0
		}))
	}
	return mod
}

func (m *Manager) newDiceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(m.luaRoll))
	L.SetField(mod, "check", L.NewFunction(m.luaCheck))
	return mod
}

// luaRoll implements engine.dice.roll(notation[, mode]).
// Invalid notation or mode raises a Lua error.
func (m *Manager) luaRoll(L *lua.LState) int {
	notation := L.CheckString(1)
	adv := checkAdvantage(L, 2)
	r, err := m.roller.RollNotation(notation, adv)
	if err != nil {
		L.RaiseError("engine.dice.roll: %v", err)
		return 0
	}
	L.Push(rollToTable(L, r))
	return 1
}

// luaCheck implements engine.dice.check(notation, dc[, bonus[, mode]]).
func (m *Manager) luaCheck(L *lua.LState) int {
	notation := L.CheckString(1)
	dc := L.CheckInt(2)
	bonus := L.OptInt(3, 0)
	adv := checkAdvantage(L, 4)

	pool, err := dice.Parse(notation)
	if err != nil {
		L.RaiseError("engine.dice.check: %v", err)
		return 0
	}
	r, err := m.roller.RollWith(pool, adv)
	if err != nil {
		L.RaiseError("engine.dice.check: %v", err)
		return 0
	}
	res := m.classifier.SkillCheck(r, bonus, 0, dc)

	t := L.NewTable()
	t.RawSetString("outcome", lua.LString(res.Outcome.String()))
	t.RawSetString("descriptor", lua.LString(res.Descriptor().String()))
	t.RawSetString("margin", lua.LNumber(res.Margin))
	t.RawSetString("total", lua.LNumber(res.TotalResult))
	t.RawSetString("success", lua.LBool(res.IsSuccess()))
	t.RawSetString("natural", lua.LBool(res.ForcedByNatural))
	t.RawSetString("roll", rollToTable(L, r))
	L.Push(t)
	return 1
}

// checkAdvantage reads an optional advantage mode string at stack index n.
func checkAdvantage(L *lua.LState, n int) dice.AdvantageType {
	adv, err := dice.ParseAdvantage(L.OptString(n, ""))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return adv
}

// rollToTable converts r to a Lua table. dice is the sum of the kept dice and
// explosions the sum of explosion dice, so total == dice + explosions + modifier.
// selected is 1-based.
func rollToTable(L *lua.LState, r dice.RollResult) *lua.LTable {
	kept, exploded := 0, 0
	rolls := L.NewTable()
	for _, d := range r.Rolls {
		kept += d
		rolls.Append(lua.LNumber(d))
	}
	explosions := L.NewTable()
	for _, d := range r.ExplosionRolls {
		exploded += d
		explosions.Append(lua.LNumber(d))
	}

	t := L.NewTable()
	t.RawSetString("notation", lua.LString(r.Pool.String()))
	t.RawSetString("total", lua.LNumber(r.Total))
	t.RawSetString("dice", lua.LNumber(kept))
	t.RawSetString("explosions", lua.LNumber(exploded))
	t.RawSetString("modifier", lua.LNumber(r.Pool.Modifier()))
	t.RawSetString("rolls", rolls)
	t.RawSetString("explosion_rolls", explosions)
	t.RawSetString("natural_max", lua.LBool(r.IsNaturalMax()))
	t.RawSetString("natural_one", lua.LBool(r.IsNaturalOne()))
	t.RawSetString("selected", lua.LNumber(r.SelectedIndex+1))
	if r.Advantage != dice.NoAdvantage {
		candidates := L.NewTable()
		for _, c := range r.AllRollTotals {
			candidates.Append(lua.LNumber(c))
		}
		t.RawSetString("advantage", lua.LString(r.Advantage.String()))
		t.RawSetString("candidates", candidates)
	}
	return t
}
