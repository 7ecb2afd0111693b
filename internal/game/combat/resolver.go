package combat

import (
	"fmt"

	"github.com/cory-johannsen/dicecore/internal/game/check"
	"github.com/cory-johannsen/dicecore/internal/game/damage"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// criticalMultiplier scales base damage on a CriticalSuccess.
const criticalMultiplier = 2

// Resolver resolves attacks and combat rounds using Classifier.
// The zero value uses the default exceptional margin.
type Resolver struct {
	Classifier check.Classifier
}

// NewResolver returns a Resolver that classifies with c.
func NewResolver(c check.Classifier) Resolver {
	return Resolver{Classifier: c}
}

// ResolveAttack performs the attack roll for a and, on a hit, the damage roll.
// A critical success doubles the base damage before resistance is applied.
//
// Precondition: src must be non-nil.
// Postcondition: DamageDealt >= 0; DamageRoll is nil iff Hit is false.
func (r Resolver) ResolveAttack(a Attack, src dice.Source) (Strike, error) {
	roll, err := dice.RollWith(a.Pool, a.Advantage, src)
	if err != nil {
		return Strike{}, fmt.Errorf("attack roll: %w", err)
	}
	total := roll.Total + a.AttributeBonus + a.OtherBonus
	cls := r.Classifier.Classify(roll, total, a.TargetNumber)

	s := Strike{
		AttackRoll:      roll,
		AttributeBonus:  a.AttributeBonus,
		OtherBonus:      a.OtherBonus,
		TargetNumber:    a.TargetNumber,
		TotalResult:     total,
		Margin:          cls.Margin,
		Outcome:         cls.Outcome,
		ForcedByNatural: cls.Natural,
		Hit:             cls.Outcome.IsSuccess(),
		Critical:        cls.Outcome == check.CriticalSuccess,
	}
	if !s.Hit {
		return s, nil
	}

	dmg, err := dice.Roll(a.DamagePool, src)
	if err != nil {
		return Strike{}, fmt.Errorf("damage roll: %w", err)
	}
	base := dmg.Total
	if base < 0 {
		base = 0
	}
	if s.Critical {
		base *= criticalMultiplier
	}
	s.DamageRoll = &dmg
	s.Damage = damage.ApplyResistance(base, a.DamageTypeID, a.ResistancePercent)
	s.DamageDealt = s.Damage.FinalDamage
	return s, nil
}

// ResolveRound resolves the player's attack and, if the monster survives, its
// counter-attack.
//
// Precondition: src must be non-nil.
// Postcondition: MonsterDefeated == (DamageDealt >= req.MonsterHP); Counter is
// nil when the monster was defeated or req.Counter is nil.
func (r Resolver) ResolveRound(req RoundRequest, src dice.Source) (RoundResult, error) {
	player, err := r.ResolveAttack(req.Player, src)
	if err != nil {
		return RoundResult{}, fmt.Errorf("player %w", err)
	}
	res := RoundResult{
		Strike:          player,
		MonsterDefeated: player.DamageDealt >= req.MonsterHP,
	}
	if player.Hit {
		res.Tally = res.Tally.Add(player.Damage)
	}
	if res.MonsterDefeated || req.Counter == nil {
		return res, nil
	}

	counter, err := r.ResolveAttack(*req.Counter, src)
	if err != nil {
		return RoundResult{}, fmt.Errorf("counter %w", err)
	}
	res.Counter = &CounterAttackResult{Strike: counter}
	res.PlayerDefeated = counter.DamageDealt >= req.PlayerHP
	if counter.Hit {
		res.Tally = res.Tally.Add(counter.Damage)
	}
	return res, nil
}
