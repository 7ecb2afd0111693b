package check

import (
	"fmt"

	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// DefaultExceptionalMargin is the margin at or above which a success is exceptional.
const DefaultExceptionalMargin = 5

// Classifier maps a resolved roll to an Outcome.
type Classifier struct {
	// ExceptionalMargin is the smallest margin that counts as ExceptionalSuccess.
	// Margins in (0, ExceptionalMargin) are FullSuccess.
	ExceptionalMargin int
}

// NewClassifier returns a Classifier with the given exceptional threshold.
//
// Precondition: exceptionalMargin >= 1.
// Postcondition: Returns a Classifier or an error.
func NewClassifier(exceptionalMargin int) (Classifier, error) {
	if exceptionalMargin < 1 {
		return Classifier{}, fmt.Errorf("check: exceptional margin must be >= 1, got %d", exceptionalMargin)
	}
	return Classifier{ExceptionalMargin: exceptionalMargin}, nil
}

// DefaultClassifier returns a Classifier using DefaultExceptionalMargin.
func DefaultClassifier() Classifier {
	return Classifier{ExceptionalMargin: DefaultExceptionalMargin}
}

// Classification is the result of classifying one roll.
type Classification struct {
	Outcome Outcome
	// Margin is total - difficulty class.
	Margin int
	// Natural is true when the first die forced the outcome.
	Natural bool
}

// OutcomeFor applies the tier rules in precedence order: natural max, natural
// one, then margin.
//
// Postcondition: Returns one of the six valid outcomes.
func (c Classifier) OutcomeFor(margin int, naturalMax, naturalOne bool) Outcome {
	switch {
	case naturalMax:
		return CriticalSuccess
	case naturalOne:
		return CriticalFailure
	case margin < 0:
		return Failure
	case margin == 0:
		return MarginalSuccess
	case margin < c.exceptional():
		return FullSuccess
	default:
		return ExceptionalSuccess
	}
}

// Classify classifies total against dc using the first die of roll's kept
// candidate for the natural max/one rules.
//
// Precondition: roll.Rolls must be non-empty. An empty roll can only come
// from out-of-band construction and panics.
func (c Classifier) Classify(roll dice.RollResult, total, dc int) Classification {
	if len(roll.Rolls) == 0 {
		panic("check: Classify precondition violated: roll has no dice")
	}
	natMax, natOne := roll.IsNaturalMax(), roll.IsNaturalOne()
	margin := total - dc
	return Classification{
		Outcome: c.OutcomeFor(margin, natMax, natOne),
		Margin:  margin,
		Natural: natMax || natOne,
	}
}

// exceptional guards the zero-value Classifier so it behaves like the default.
func (c Classifier) exceptional() int {
	if c.ExceptionalMargin < 1 {
		return DefaultExceptionalMargin
	}
	return c.ExceptionalMargin
}
