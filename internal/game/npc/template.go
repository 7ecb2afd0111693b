// Package npc loads monster templates whose attack and damage dice are
// authored as notation strings.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicecore/internal/game/combat"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// Template defines a reusable monster archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Level       int    `yaml:"level"`
	MaxHP       int    `yaml:"max_hp"`
	// Defense is the target number a player's attack must meet.
	Defense     int    `yaml:"defense"`
	AttackBonus int    `yaml:"attack_bonus"`
	AttackDice  string `yaml:"attack_dice"`
	DamageDice  string `yaml:"damage_dice"`
	DamageType  string `yaml:"damage_type"`
	// Resistances maps damage type IDs to signed resistance percentages.
	Resistances map[string]int `yaml:"resistances"`

	attackPool dice.Pool
	damagePool dice.Pool
}

// Validate checks the template's invariants and parses its dice notation.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Level >= 1,
// MaxHP >= 1, Defense >= 0, and attack_dice and damage_dice parse; on success
// AttackPool and DamagePool are populated. Returns an error on the first
// violation otherwise, naming the field and the offending notation.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	if t.Level < 1 {
		return fmt.Errorf("npc template %q: level must be >= 1", t.ID)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("npc template %q: max_hp must be >= 1", t.ID)
	}
	if t.Defense < 0 {
		return fmt.Errorf("npc template %q: defense must be >= 0", t.ID)
	}
	atk, err := dice.Parse(t.AttackDice)
	if err != nil {
		return fmt.Errorf("npc template %q: attack_dice %q: %w", t.ID, t.AttackDice, err)
	}
	dmg, err := dice.Parse(t.DamageDice)
	if err != nil {
		return fmt.Errorf("npc template %q: damage_dice %q: %w", t.ID, t.DamageDice, err)
	}
	if t.DamageType == "" {
		return fmt.Errorf("npc template %q: damage_type must not be empty", t.ID)
	}
	t.attackPool, t.damagePool = atk, dmg
	return nil
}

// AttackPool returns the parsed attack_dice.
func (t *Template) AttackPool() dice.Pool { return t.attackPool }

// DamagePool returns the parsed damage_dice.
func (t *Template) DamagePool() dice.Pool { return t.damagePool }

// ResistanceTo returns the template's resistance percentage to damageTypeID,
// or 0 when none is authored.
func (t *Template) ResistanceTo(damageTypeID string) int {
	return t.Resistances[damageTypeID]
}

// CounterAttack builds the monster's attack against a player.
//
// Precondition: t must have passed Validate.
// Postcondition: The returned Attack targets playerDefense and is mitigated by
// playerResistance.
func (t *Template) CounterAttack(playerDefense, playerResistance int) combat.Attack {
	return combat.Attack{
		Pool:              t.attackPool,
		AttributeBonus:    t.AttackBonus,
		TargetNumber:      playerDefense,
		DamagePool:        t.damagePool,
		DamageTypeID:      t.DamageType,
		ResistancePercent: playerResistance,
	}
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template with parsed dice pools, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse, validate
// or duplicate-id failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if prev, ok := seen[tmpl.ID]; ok {
			return nil, fmt.Errorf("loading %q: npc template %q already defined in %q", path, tmpl.ID, prev)
		}
		seen[tmpl.ID] = path
		templates = append(templates, tmpl)
	}
	return templates, nil
}
