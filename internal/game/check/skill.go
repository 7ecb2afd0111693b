package check

import "github.com/cory-johannsen/dicecore/internal/game/dice"

// SkillCheckResult holds the outcome of a single skill check.
type SkillCheckResult struct {
	// Dice is the executed roll, already resolved for advantage.
	Dice            dice.RollResult
	AttributeBonus  int
	OtherBonus      int
	DifficultyClass int
	// TotalResult is Dice.Total + AttributeBonus + OtherBonus.
	TotalResult int
	// Margin is TotalResult - DifficultyClass.
	Margin  int
	Outcome Outcome
	// ForcedByNatural is true when the first die decided Outcome.
	ForcedByNatural bool
}

// IsSuccess reports whether the check met the difficulty class or rolled a natural max.
func (r SkillCheckResult) IsSuccess() bool { return r.Outcome.IsSuccess() }

// IsFailure reports whether the check failed.
func (r SkillCheckResult) IsFailure() bool { return r.Outcome.IsFailure() }

// Descriptor returns the narrative bucket for the outcome.
func (r SkillCheckResult) Descriptor() Descriptor { return r.Outcome.Descriptor() }

// Details returns the outcome bundle consumed by secondary-effect handlers.
func (r SkillCheckResult) Details() Details {
	return Details{
		Outcome:         r.Outcome,
		Descriptor:      r.Outcome.Descriptor(),
		Margin:          r.Margin,
		ForcedByNatural: r.ForcedByNatural,
	}
}

// SkillCheck wraps an executed roll with bonuses and a difficulty class.
//
// Precondition: roll.Rolls must be non-empty.
// Postcondition: TotalResult == roll.Total + attributeBonus + otherBonus;
// Margin == TotalResult - dc.
func (c Classifier) SkillCheck(roll dice.RollResult, attributeBonus, otherBonus, dc int) SkillCheckResult {
	total := roll.Total + attributeBonus + otherBonus
	cls := c.Classify(roll, total, dc)
	return SkillCheckResult{
		Dice:            roll,
		AttributeBonus:  attributeBonus,
		OtherBonus:      otherBonus,
		DifficultyClass: dc,
		TotalResult:     total,
		Margin:          cls.Margin,
		Outcome:         cls.Outcome,
		ForcedByNatural: cls.Natural,
	}
}

// PerformSkillCheck rolls pool under adv with src and classifies the result.
//
// Precondition: pool must be valid; src must be non-nil.
// Postcondition: Returns a SkillCheckResult or the executor's error.
func (c Classifier) PerformSkillCheck(pool dice.Pool, adv dice.AdvantageType, attributeBonus, otherBonus, dc int, src dice.Source) (SkillCheckResult, error) {
	roll, err := dice.RollWith(pool, adv, src)
	if err != nil {
		return SkillCheckResult{}, err
	}
	return c.SkillCheck(roll, attributeBonus, otherBonus, dc), nil
}
