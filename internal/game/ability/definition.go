// Package ability loads ability, spell and skill definitions whose dice are
// authored as notation strings.
package ability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicecore/internal/game/check"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// Kind classifies a definition.
type Kind string

const (
	KindAbility Kind = "ability"
	KindSpell   Kind = "spell"
	KindSkill   Kind = "skill"
)

// Def is the static definition of an ability, spell or skill, loaded from YAML.
type Def struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Kind        Kind   `yaml:"kind"`
	Dice        string `yaml:"dice"`
	// Attribute names the character attribute whose bonus applies; empty means none.
	Attribute string `yaml:"attribute"`
	// Difficulty is the default difficulty class for checks made with this definition.
	Difficulty int    `yaml:"difficulty"`
	DamageType string `yaml:"damage_type"`
	Advantage  string `yaml:"advantage"` // "" | "advantage" | "disadvantage"

	pool dice.Pool
	adv  dice.AdvantageType
}

// Validate checks the definition's invariants and parses its dice and advantage.
//
// Precondition: d must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Kind is known,
// Difficulty >= 0, dice parses and advantage is recognised; on success Pool
// and AdvantageMode are populated.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("ability: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("ability %q: name must not be empty", d.ID)
	}
	switch d.Kind {
	case KindAbility, KindSpell, KindSkill:
	default:
		return fmt.Errorf("ability %q: kind %q must be one of ability, spell, skill", d.ID, d.Kind)
	}
	if d.Difficulty < 0 {
		return fmt.Errorf("ability %q: difficulty must be >= 0", d.ID)
	}
	pool, err := dice.Parse(d.Dice)
	if err != nil {
		return fmt.Errorf("ability %q: dice %q: %w", d.ID, d.Dice, err)
	}
	adv, err := dice.ParseAdvantage(d.Advantage)
	if err != nil {
		return fmt.Errorf("ability %q: advantage: %w", d.ID, err)
	}
	d.pool, d.adv = pool, adv
	return nil
}

// Pool returns the parsed dice.
func (d *Def) Pool() dice.Pool { return d.pool }

// AdvantageMode returns the parsed advantage setting.
func (d *Def) AdvantageMode() dice.AdvantageType { return d.adv }

// Check rolls the definition's dice against its Difficulty.
//
// Precondition: d must have passed Validate; src must be non-nil.
// Postcondition: Returns the classified result or the executor's error.
func (d *Def) Check(c check.Classifier, attributeBonus, otherBonus int, src dice.Source) (check.SkillCheckResult, error) {
	return c.PerformSkillCheck(d.pool, d.adv, attributeBonus, otherBonus, d.Difficulty, src)
}

// Registry holds all known Defs keyed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register validates def and adds it to the registry.
//
// Precondition: def must not be nil.
// Postcondition: Returns an error if def is invalid or its ID is already registered.
func (r *Registry) Register(def *Def) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, ok := r.defs[def.ID]; ok {
		return fmt.Errorf("ability %q: already registered", def.ID)
	}
	r.defs[def.ID] = def
	return nil
}

// Get returns the Def for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered Defs ordered by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByKind returns the registered Defs of kind k ordered by ID.
func (r *Registry) ByKind(k Kind) []*Def {
	var out []*Def
	for _, d := range r.All() {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Def,
// and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error naming the file if any
// file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := reg.Register(&def); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
	}
	return reg, nil
}
