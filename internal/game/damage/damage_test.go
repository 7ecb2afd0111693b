package damage_test

import (
	"testing"

	"github.com/cory-johannsen/dicecore/internal/game/damage"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestApplyResistance_Neither(t *testing.T) {
	i := damage.ApplyResistance(12, "slashing", 0)
	assert.Equal(t, 12, i.FinalDamage)
	assert.False(t, i.WasResisted)
	assert.False(t, i.WasVulnerable)
	assert.False(t, i.WasImmune)
	assert.Equal(t, "slashing", i.DamageTypeID)
}

func TestApplyResistance_Resisted(t *testing.T) {
	i := damage.ApplyResistance(10, "fire", 50)
	assert.Equal(t, 5, i.FinalDamage)
	assert.True(t, i.WasResisted)
	assert.False(t, i.WasVulnerable)
	assert.False(t, i.WasImmune)
	assert.Equal(t, 50, i.ResistanceApplied)
}

func TestApplyResistance_RoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 4, damage.ApplyResistance(7, "cold", 50).FinalDamage)  // 3.5
	assert.Equal(t, 2, damage.ApplyResistance(3, "cold", 25).FinalDamage)  // 2.25
	assert.Equal(t, 3, damage.ApplyResistance(10, "cold", 75).FinalDamage) // 2.5
}

func TestApplyResistance_Vulnerable(t *testing.T) {
	i := damage.ApplyResistance(10, "radiant", -50)
	assert.Equal(t, 15, i.FinalDamage)
	assert.True(t, i.WasVulnerable)
	assert.False(t, i.WasResisted)
	assert.False(t, i.WasImmune)
	assert.Equal(t, -50, i.ResistanceApplied)
}

func TestApplyResistance_Immune(t *testing.T) {
	for _, pct := range []int{100, 150} {
		i := damage.ApplyResistance(40, "poison", pct)
		assert.Equal(t, 0, i.FinalDamage)
		assert.True(t, i.WasImmune)
		assert.False(t, i.WasResisted)
		assert.False(t, i.WasVulnerable)
	}
}

func TestApplyResistance_NegativeBaseClampsToZero(t *testing.T) {
	assert.Equal(t, 0, damage.ApplyResistance(-4, "acid", 0).FinalDamage)
	assert.Equal(t, 0, damage.ApplyResistance(-4, "acid", -100).FinalDamage)
}

// TestProperty_ApplyResistance_Invariants verifies the damage clamp, immunity
// and the mutually exclusive flags for arbitrary inputs.
func TestProperty_ApplyResistance_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(-100, 1000).Draw(rt, "base")
		pct := rapid.IntRange(-300, 200).Draw(rt, "pct")
		i := damage.ApplyResistance(base, "x", pct)

		assert.GreaterOrEqual(rt, i.FinalDamage, 0)
		if pct >= 100 {
			assert.Equal(rt, 0, i.FinalDamage)
			assert.True(rt, i.WasImmune)
		}
		flags := 0
		for _, f := range []bool{i.WasResisted, i.WasVulnerable, i.WasImmune} {
			if f {
				flags++
			}
		}
		assert.LessOrEqual(rt, flags, 1)
		if pct == 0 {
			assert.Equal(rt, 0, flags)
		}
		if base >= 0 && pct > 0 {
			assert.LessOrEqual(rt, i.FinalDamage, base)
		}
		if base >= 0 && pct < 0 {
			assert.GreaterOrEqual(rt, i.FinalDamage, base)
		}
	})
}

func TestTally_AddReturnsNewValue(t *testing.T) {
	var empty damage.Tally
	one := empty.Add(damage.ApplyResistance(10, "fire", 0))
	two := one.Add(damage.ApplyResistance(8, "cold", 50))

	assert.Equal(t, 0, empty.Total())
	assert.Equal(t, 0, empty.Count())
	assert.Equal(t, 10, one.Total())
	assert.Equal(t, 1, one.Count())
	assert.Equal(t, map[string]int{"fire": 10}, one.ByType())
	assert.Equal(t, 14, two.Total())
	assert.Equal(t, 2, two.Count())
	assert.Equal(t, map[string]int{"fire": 10, "cold": 4}, two.ByType())
}

func TestTally_ByTypeIsCopy(t *testing.T) {
	tl := damage.Tally{}.Add(damage.ApplyResistance(5, "fire", 0))
	m := tl.ByType()
	m["fire"] = 999
	assert.Equal(t, 5, tl.ByType()["fire"])
}
