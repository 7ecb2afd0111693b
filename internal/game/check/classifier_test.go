package check_test

import (
	"testing"

	"github.com/cory-johannsen/dicecore/internal/game/check"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fixedSrc always returns min(v, n-1), enabling deterministic test rolls.
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func roll1d10(face int) dice.RollResult {
	return dice.RollResult{Pool: dice.D10(), Rolls: []int{face}, Total: face}
}

func TestOutcomeFor_MarginTiers(t *testing.T) {
	c := check.DefaultClassifier()
	cases := []struct {
		margin int
		want   check.Outcome
	}{
		{-10, check.Failure},
		{-1, check.Failure},
		{0, check.MarginalSuccess},
		{1, check.FullSuccess},
		{4, check.FullSuccess},
		{5, check.ExceptionalSuccess},
		{40, check.ExceptionalSuccess},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.OutcomeFor(tc.margin, false, false), "margin %d", tc.margin)
	}
}

func TestOutcomeFor_NaturalsTakePrecedence(t *testing.T) {
	c := check.DefaultClassifier()
	assert.Equal(t, check.CriticalSuccess, c.OutcomeFor(-30, true, false))
	assert.Equal(t, check.CriticalFailure, c.OutcomeFor(30, false, true))
	// Natural max is evaluated first.
	assert.Equal(t, check.CriticalSuccess, c.OutcomeFor(0, true, true))
}

func TestClassifier_CustomThreshold(t *testing.T) {
	c, err := check.NewClassifier(3)
	require.NoError(t, err)
	assert.Equal(t, check.FullSuccess, c.OutcomeFor(2, false, false))
	assert.Equal(t, check.ExceptionalSuccess, c.OutcomeFor(3, false, false))

	_, err = check.NewClassifier(0)
	assert.Error(t, err)
}

func TestClassifier_ZeroValueUsesDefault(t *testing.T) {
	var c check.Classifier
	assert.Equal(t, check.FullSuccess, c.OutcomeFor(4, false, false))
	assert.Equal(t, check.ExceptionalSuccess, c.OutcomeFor(5, false, false))
}

// TestClassify_NaturalMaxBeatsNegativeMargin: d10 shows 10 against DC 20.
func TestClassify_NaturalMaxBeatsNegativeMargin(t *testing.T) {
	r := roll1d10(10)
	require.True(t, r.IsNaturalMax())
	cls := check.DefaultClassifier().Classify(r, r.Total, 20)
	assert.Equal(t, check.CriticalSuccess, cls.Outcome)
	assert.Equal(t, -10, cls.Margin)
	assert.True(t, cls.Natural)
}

func TestClassify_UsesFirstDieOnly(t *testing.T) {
	r := dice.RollResult{Pool: dice.MustParse("2d6"), Rolls: []int{3, 6}, Total: 9}
	cls := check.DefaultClassifier().Classify(r, 9, 9)
	assert.Equal(t, check.MarginalSuccess, cls.Outcome)
	assert.False(t, cls.Natural)
}

func TestClassify_ExplodedFirstDieStillNaturalMax(t *testing.T) {
	r := dice.RollResult{Pool: dice.MustParse("1d6!"), Rolls: []int{6}, ExplosionRolls: []int{1}, Total: 7}
	cls := check.DefaultClassifier().Classify(r, 7, 30)
	assert.Equal(t, check.CriticalSuccess, cls.Outcome, "explosion values never count as the natural die")
}

func TestClassify_EmptyRollsPanics(t *testing.T) {
	assert.Panics(t, func() {
		check.DefaultClassifier().Classify(dice.RollResult{Pool: dice.D10()}, 5, 5)
	})
}

func TestOutcome_Predicates(t *testing.T) {
	successes := []check.Outcome{check.MarginalSuccess, check.FullSuccess, check.ExceptionalSuccess, check.CriticalSuccess}
	failures := []check.Outcome{check.CriticalFailure, check.Failure}
	for _, o := range successes {
		assert.True(t, o.IsSuccess(), o.String())
		assert.False(t, o.IsFailure(), o.String())
	}
	for _, o := range failures {
		assert.True(t, o.IsFailure(), o.String())
		assert.False(t, o.IsSuccess(), o.String())
	}
	assert.False(t, check.OutcomeUnknown.IsSuccess())
	assert.False(t, check.OutcomeUnknown.IsFailure())
}

func TestOutcome_DescriptorMapping(t *testing.T) {
	want := map[check.Outcome]check.Descriptor{
		check.CriticalFailure:    check.Catastrophic,
		check.Failure:            check.Failed,
		check.MarginalSuccess:    check.Marginal,
		check.FullSuccess:        check.Competent,
		check.ExceptionalSuccess: check.Impressive,
		check.CriticalSuccess:    check.Masterful,
	}
	seen := make(map[check.Descriptor]bool)
	for o, d := range want {
		assert.Equal(t, d, o.Descriptor(), o.String())
		seen[d] = true
	}
	assert.Len(t, seen, 6, "mapping must be 1:1")
	assert.Equal(t, check.DescriptorUnknown, check.OutcomeUnknown.Descriptor())
}

func TestOutcome_Strings(t *testing.T) {
	assert.Equal(t, "critical failure", check.CriticalFailure.String())
	assert.Equal(t, "exceptional success", check.ExceptionalSuccess.String())
	assert.Equal(t, "unknown", check.Outcome(42).String())
	assert.Equal(t, "masterful", check.Masterful.String())
	assert.Equal(t, "unknown", check.Descriptor(42).String())
}

// TestProperty_Classify_NaturalsOverrideMargin verifies a natural max always
// yields CriticalSuccess and a natural 1 always CriticalFailure, whatever the margin.
func TestProperty_Classify_NaturalsOverrideMargin(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		faces := rapid.SampledFrom([]int{6, 8, 10}).Draw(rt, "faces")
		pool, err := dice.NewPool(1, faces, 0)
		require.NoError(rt, err)
		bonus := rapid.IntRange(-50, 50).Draw(rt, "bonus")
		dc := rapid.IntRange(-50, 50).Draw(rt, "dc")
		c := check.DefaultClassifier()

		top := dice.RollResult{Pool: pool, Rolls: []int{faces}, Total: faces}
		assert.Equal(rt, check.CriticalSuccess, c.SkillCheck(top, bonus, 0, dc).Outcome)

		one := dice.RollResult{Pool: pool, Rolls: []int{1}, Total: 1}
		assert.Equal(rt, check.CriticalFailure, c.SkillCheck(one, bonus, 0, dc).Outcome)
	})
}

// TestProperty_OutcomeFor_MonotoneInMargin verifies that without naturals a
// larger margin never yields a worse outcome.
func TestProperty_OutcomeFor_MonotoneInMargin(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		threshold := rapid.IntRange(1, 20).Draw(rt, "threshold")
		c, err := check.NewClassifier(threshold)
		require.NoError(rt, err)
		a := rapid.IntRange(-100, 100).Draw(rt, "a")
		b := rapid.IntRange(a, 101).Draw(rt, "b")
		assert.LessOrEqual(rt, c.OutcomeFor(a, false, false), c.OutcomeFor(b, false, false))
	})
}
