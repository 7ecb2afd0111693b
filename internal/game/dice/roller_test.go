package dice_test

import (
	"testing"

	"github.com/cory-johannsen/dicecore/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRoll_FixedDice(t *testing.T) {
	src := &seqSrc{faces: []int{4, 2, 5}}
	r, err := dice.Roll(dice.MustParse("3d6+5"), src)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 5}, r.Rolls)
	assert.Empty(t, r.ExplosionRolls)
	assert.Equal(t, 11, r.DiceTotal())
	assert.Equal(t, 16, r.Total)
	assert.Equal(t, dice.NoAdvantage, r.Advantage)
	assert.Empty(t, r.AllRollTotals)
}

func TestRoll_NaturalMaxOnD10(t *testing.T) {
	r, err := dice.Roll(dice.D10(), &seqSrc{faces: []int{10}})
	require.NoError(t, err)
	assert.True(t, r.IsNaturalMax())
	assert.Equal(t, 10, r.Total)
}

func TestRoll_ExplodingSingleExplosion(t *testing.T) {
	src := &seqSrc{faces: []int{6, 3}}
	r, err := dice.Roll(dice.MustParse("1d6!"), src)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, r.Rolls)
	assert.Equal(t, []int{3}, r.ExplosionRolls)
	assert.Equal(t, 9, r.DiceTotal())
	assert.Equal(t, 9, r.Total)
	assert.Equal(t, 2, src.draws)
}

func TestRoll_ExplodingChainAcrossDice(t *testing.T) {
	// die 1: 6 → 6 → 2, die 2: 4
	src := &seqSrc{faces: []int{6, 6, 2, 4}}
	r, err := dice.Roll(dice.MustParse("2d6!+1"), src)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 4}, r.Rolls)
	assert.Equal(t, []int{6, 2}, r.ExplosionRolls)
	assert.Equal(t, 18, r.DiceTotal())
	assert.Equal(t, 19, r.Total)
}

func TestRoll_NonExplodingIgnoresMaxFace(t *testing.T) {
	src := &maxSrc{}
	r, err := dice.Roll(dice.MustParse("2d8"), src)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 8}, r.Rolls)
	assert.Empty(t, r.ExplosionRolls)
	assert.Equal(t, 2, src.draws)
}

// TestRoll_ExplosionTermination verifies that an always-max source produces
// exactly MaxExplosions explosion entries per die and never more.
func TestRoll_ExplosionTermination(t *testing.T) {
	for _, limit := range []int{0, 1, 3, dice.DefaultMaxExplosions} {
		pool, err := dice.NewExplodingPool(2, 6, 0, limit)
		require.NoError(t, err)
		src := &maxSrc{}
		r, err := dice.Roll(pool, src)
		require.NoError(t, err)
		assert.Equal(t, 2*limit, r.ExplosionCount(), "limit %d", limit)
		assert.Equal(t, 2*(1+limit), src.draws, "limit %d", limit)
		assert.Equal(t, 6*2*(1+limit), r.Total, "limit %d", limit)
	}
}

func TestRollWith_AdvantageKeepsHigher(t *testing.T) {
	r, err := dice.RollWith(dice.D10(), dice.Advantage, &seqSrc{faces: []int{8, 5}})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 5}, r.AllRollTotals)
	assert.Equal(t, 0, r.SelectedIndex)
	assert.Equal(t, []int{8}, r.Rolls)
	assert.Equal(t, 8, r.Total)
	assert.Equal(t, dice.Advantage, r.Advantage)
}

func TestRollWith_AdvantageWithModifier(t *testing.T) {
	r, err := dice.RollWith(dice.MustParse("1d10+2"), dice.Advantage, &seqSrc{faces: []int{3, 7}})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 9}, r.AllRollTotals)
	assert.Equal(t, 1, r.SelectedIndex)
	assert.Equal(t, []int{7}, r.Rolls)
	assert.Equal(t, 9, r.Total)
	assert.Equal(t, r.Total, r.DiceTotal()+r.Pool.Modifier())
}

func TestRollWith_DisadvantageKeepsLower(t *testing.T) {
	r, err := dice.RollWith(dice.D10(), dice.Disadvantage, &seqSrc{faces: []int{8, 5}})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 5}, r.AllRollTotals)
	assert.Equal(t, 1, r.SelectedIndex)
	assert.Equal(t, []int{5}, r.Rolls)
	assert.Equal(t, 5, r.Total)
}

func TestRollWith_TiesKeepFirst(t *testing.T) {
	for _, adv := range []dice.AdvantageType{dice.Advantage, dice.Disadvantage} {
		r, err := dice.RollWith(dice.MustParse("2d6"), adv, &seqSrc{faces: []int{1, 6, 4, 3}})
		require.NoError(t, err)
		assert.Equal(t, []int{7, 7}, r.AllRollTotals)
		assert.Equal(t, 0, r.SelectedIndex, "%s tie must keep the first candidate", adv)
		assert.Equal(t, []int{1, 6}, r.Rolls)
	}
}

func TestRollWith_AdvantageCarriesWinnerExplosions(t *testing.T) {
	// candidate 0: 2; candidate 1: 6 → 5
	r, err := dice.RollWith(dice.MustParse("1d6!"), dice.Advantage, &seqSrc{faces: []int{2, 6, 5}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 11}, r.AllRollTotals)
	assert.Equal(t, 1, r.SelectedIndex)
	assert.Equal(t, []int{6}, r.Rolls)
	assert.Equal(t, []int{5}, r.ExplosionRolls)
	assert.True(t, r.IsNaturalMax())
}

func TestRollWith_InvalidPool(t *testing.T) {
	_, err := dice.Roll(dice.Pool{}, &maxSrc{})
	assert.ErrorIs(t, err, dice.ErrInvalidPool)
}

func TestRollWith_UnknownAdvantage(t *testing.T) {
	_, err := dice.RollWith(dice.D6(), dice.AdvantageType(7), &maxSrc{})
	assert.Error(t, err)
}

func TestRollWith_NilSourcePanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = dice.Roll(dice.D6(), nil) })
}

func TestRollNotation(t *testing.T) {
	r, err := dice.RollNotation("d8+1", dice.NoAdvantage, &seqSrc{faces: []int{7}})
	require.NoError(t, err)
	assert.Equal(t, 8, r.Total)

	_, err = dice.RollNotation("d12", dice.NoAdvantage, &maxSrc{})
	assert.ErrorIs(t, err, dice.ErrFormat)
}

func drawPool(rt *rapid.T) dice.Pool {
	count := rapid.IntRange(1, 8).Draw(rt, "count")
	faces := rapid.SampledFrom([]int{6, 8, 10}).Draw(rt, "faces")
	mod := rapid.IntRange(-10, 10).Draw(rt, "modifier")
	if rapid.Bool().Draw(rt, "exploding") {
		limit := rapid.IntRange(0, dice.DefaultMaxExplosions).Draw(rt, "max_explosions")
		p, err := dice.NewExplodingPool(count, faces, mod, limit)
		if err != nil {
			rt.Fatalf("NewExplodingPool: %v", err)
		}
		return p
	}
	p, err := dice.NewPool(count, faces, mod)
	if err != nil {
		rt.Fatalf("NewPool: %v", err)
	}
	return p
}

// TestProperty_Roll_Bounds verifies DiceTotal lies in [count, count*faces]
// without explosions and in [count, count*faces*(1+maxExplosions)] with them.
func TestProperty_Roll_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := drawPool(rt)
		r, err := dice.Roll(p, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")))
		require.NoError(rt, err)

		upper := p.Count() * p.Faces()
		if p.Exploding() {
			upper *= 1 + p.MaxExplosions()
		}
		assert.GreaterOrEqual(rt, r.DiceTotal(), p.Count())
		assert.LessOrEqual(rt, r.DiceTotal(), upper)
		assert.Len(rt, r.Rolls, p.Count())
		assert.LessOrEqual(rt, r.ExplosionCount(), p.Count()*p.MaxExplosions())
		assert.Equal(rt, r.DiceTotal()+p.Modifier(), r.Total)
		if !p.Exploding() {
			assert.Empty(rt, r.ExplosionRolls)
		}
	})
}

// TestProperty_RollWith_AdvantageAtLeastDisadvantage verifies that for the
// same underlying draws the advantage total is never below the disadvantage total.
func TestProperty_RollWith_AdvantageAtLeastDisadvantage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := drawPool(rt)
		seed := rapid.Int64().Draw(rt, "seed")

		adv, err := dice.RollWith(p, dice.Advantage, dice.NewSeededSource(seed))
		require.NoError(rt, err)
		dis, err := dice.RollWith(p, dice.Disadvantage, dice.NewSeededSource(seed))
		require.NoError(rt, err)

		assert.Equal(rt, adv.AllRollTotals, dis.AllRollTotals)
		assert.GreaterOrEqual(rt, adv.Total, dis.Total)
		assert.Equal(rt, adv.AllRollTotals[adv.SelectedIndex], adv.Total)
		assert.Equal(rt, dis.AllRollTotals[dis.SelectedIndex], dis.Total)
		for _, total := range adv.AllRollTotals {
			assert.LessOrEqual(rt, total, adv.Total)
			assert.GreaterOrEqual(rt, total, dis.Total)
		}
	})
}

func TestProperty_Roll_SeedReplay(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := drawPool(rt)
		seed := rapid.Int64().Draw(rt, "seed")
		a, err := dice.Roll(p, dice.NewSeededSource(seed))
		require.NoError(rt, err)
		b, err := dice.Roll(p, dice.NewSeededSource(seed))
		require.NoError(rt, err)
		assert.Equal(rt, a, b)
	})
}
