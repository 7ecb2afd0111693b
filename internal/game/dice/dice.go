// Package dice provides the core randomness abstraction, dice pools, and
// roll-result types for the rules engine.
package dice

import (
	"fmt"
	"strings"
)

// AdvantageType selects how many candidate rolls are made and which one is kept.
type AdvantageType int

const (
	// NoAdvantage rolls the pool once.
	NoAdvantage AdvantageType = iota
	// Advantage rolls two candidates and keeps the higher total.
	Advantage
	// Disadvantage rolls two candidates and keeps the lower total.
	Disadvantage
)

// String returns a human-readable advantage label.
func (a AdvantageType) String() string {
	switch a {
	case NoAdvantage:
		return "none"
	case Advantage:
		return "advantage"
	case Disadvantage:
		return "disadvantage"
	default:
		return "unknown"
	}
}

// ParseAdvantage maps "", "none", "advantage"/"adv" and "disadvantage"/"dis"
// to an AdvantageType.
//
// Postcondition: Returns an error for any other input.
func ParseAdvantage(s string) (AdvantageType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoAdvantage, nil
	case "advantage", "adv":
		return Advantage, nil
	case "disadvantage", "dis":
		return Disadvantage, nil
	default:
		return NoAdvantage, fmt.Errorf("dice: unknown advantage mode %q", s)
	}
}

// RollResult holds the full audit trail for a single executed roll.
//
// RollResult is a value type. Rolls and ExplosionRolls are shared with every
// copy and must be treated as read-only once returned by the executor.
//
// Invariant: when Advantage != NoAdvantage, Rolls and ExplosionRolls belong to
// the candidate at SelectedIndex, so Total == DiceTotal() + Pool.Modifier().
type RollResult struct {
	Pool Pool
	// Rolls holds one pre-explosion face per original die.
	Rolls []int
	// ExplosionRolls holds every extra draw caused by an explosion, flattened
	// across all dice in generation order.
	ExplosionRolls []int
	// Total is the authoritative result, modifier included.
	Total     int
	Advantage AdvantageType
	// AllRollTotals holds each candidate's total in generation order.
	// Empty when Advantage == NoAdvantage.
	AllRollTotals []int
	// SelectedIndex indexes AllRollTotals. Zero when Advantage == NoAdvantage.
	SelectedIndex int
}

// DiceTotal returns the sum of Rolls and ExplosionRolls, modifier excluded.
func (r RollResult) DiceTotal() int {
	total := 0
	for _, d := range r.Rolls {
		total += d
	}
	for _, d := range r.ExplosionRolls {
		total += d
	}
	return total
}

// IsNaturalMax reports whether the first die shows the pool's maximum face.
func (r RollResult) IsNaturalMax() bool {
	return len(r.Rolls) > 0 && r.Rolls[0] == r.Pool.Faces()
}

// IsNaturalOne reports whether the first die shows a 1.
func (r RollResult) IsNaturalOne() bool {
	return len(r.Rolls) > 0 && r.Rolls[0] == 1
}

// HadExplosions reports whether any die exploded.
func (r RollResult) HadExplosions() bool { return len(r.ExplosionRolls) > 0 }

// ExplosionCount returns the number of extra draws caused by explosions.
func (r RollResult) ExplosionCount() int { return len(r.ExplosionRolls) }

// String returns a human-readable audit string in the format:
//
//	"1d6!+2 → [6] ![3] +2 = 11"
//	"1d10 → [8] +0 = 8 (advantage [8 5] kept #0)"
//
// Precondition: r.Rolls is non-empty.
func (r RollResult) String() string {
	if len(r.Rolls) == 0 {
		panic("dice: RollResult.String() precondition violated: Rolls must be non-empty")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s → %v", r.Pool, r.Rolls)
	if r.HadExplosions() {
		fmt.Fprintf(&b, " !%v", r.ExplosionRolls)
	}
	fmt.Fprintf(&b, " %+d = %d", r.Pool.Modifier(), r.Total)
	if r.Advantage != NoAdvantage {
		fmt.Fprintf(&b, " (%s %v kept #%d)", r.Advantage, r.AllRollTotals, r.SelectedIndex)
	}
	return b.String()
}

// Source is the randomness provider for dice rolls.
//
// Implementations document their own concurrency guarantees; the executor
// assumes single-threaded access to the Source it is given.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
