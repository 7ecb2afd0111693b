// Package combat wraps classified dice rolls into attack, counter-attack and
// initiative results for the combat turn loop.
package combat

import (
	"github.com/cory-johannsen/dicecore/internal/game/check"
	"github.com/cory-johannsen/dicecore/internal/game/damage"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// Attack describes one attack roll and the damage it deals on a hit.
type Attack struct {
	// Pool is the attack roll, typically a single die.
	Pool           dice.Pool
	Advantage      dice.AdvantageType
	AttributeBonus int
	OtherBonus     int
	// TargetNumber is the defender's fixed target (defense) for the attack.
	TargetNumber int
	DamagePool   dice.Pool
	DamageTypeID string
	// ResistancePercent is the defender's signed resistance to DamageTypeID.
	ResistancePercent int
}

// Strike is the classified result of one Attack. It is shared by the
// player's attack in a RoundResult and the monster's CounterAttackResult.
type Strike struct {
	// AttackRoll is the executed attack roll, already resolved for advantage.
	AttackRoll     dice.RollResult
	AttributeBonus int
	OtherBonus     int
	TargetNumber   int
	// TotalResult is AttackRoll.Total + AttributeBonus + OtherBonus.
	TotalResult int
	// Margin is TotalResult - TargetNumber.
	Margin          int
	Outcome         check.Outcome
	ForcedByNatural bool
	Hit             bool
	Critical        bool
	// DamageRoll is nil when the attack missed.
	DamageRoll *dice.RollResult
	// Damage is the resistance-adjusted damage; zero value on a miss.
	Damage      damage.Instance
	DamageDealt int
}

// Miss reports whether the attack failed to hit.
func (s Strike) Miss() bool { return !s.Hit }

// Descriptor returns the narrative bucket for the attack outcome.
func (s Strike) Descriptor() check.Descriptor { return s.Outcome.Descriptor() }

// Details returns the outcome bundle for the attack roll.
func (s Strike) Details() check.Details {
	return check.Details{
		Outcome:         s.Outcome,
		Descriptor:      s.Outcome.Descriptor(),
		Margin:          s.Margin,
		ForcedByNatural: s.ForcedByNatural,
	}
}

// CounterAttackResult is the monster's reply within a combat round.
type CounterAttackResult struct {
	Strike
}

// RoundRequest carries everything needed to resolve one combat round.
type RoundRequest struct {
	Player Attack
	// MonsterHP is the monster's current hit points before the round.
	MonsterHP int
	// Counter is the monster's reply; nil means the monster does not strike back.
	Counter *Attack
	// PlayerHP is the player's current hit points before the round.
	PlayerHP int
}

// RoundResult is the immutable outcome of one combat round.
//
// Invariant: Counter is nil whenever MonsterDefeated is true.
type RoundResult struct {
	Strike
	Counter         *CounterAttackResult
	MonsterDefeated bool
	PlayerDefeated  bool
	// Tally sums the damage instances of every hit landed this round.
	Tally           damage.Tally
}

// CombatEnded reports whether either side was defeated this round.
func (r RoundResult) CombatEnded() bool { return r.MonsterDefeated || r.PlayerDefeated }
