// Package damage applies resistance, vulnerability and immunity to resolved
// damage totals.
package damage

import "math"

// ImmunePercent is the resistance at which damage is negated entirely.
const ImmunePercent = 100

// Instance records one application of resistance to a base damage value.
//
// Invariant: at most one of WasResisted, WasVulnerable and WasImmune is true;
// WasImmune implies FinalDamage == 0.
type Instance struct {
	BaseDamage   int
	DamageTypeID string
	FinalDamage  int
	// ResistanceApplied is the signed percentage used; negative means vulnerability.
	ResistanceApplied int
	WasResisted       bool
	WasVulnerable     bool
	WasImmune         bool
}

// ApplyResistance scales baseDamage by (1 - resistancePercent/100), rounding
// half away from zero and clamping at zero. A resistance of 100 or more is
// immunity.
//
// Postcondition: FinalDamage >= 0; resistancePercent >= 100 yields FinalDamage == 0.
func ApplyResistance(baseDamage int, damageTypeID string, resistancePercent int) Instance {
	inst := Instance{
		BaseDamage:        baseDamage,
		DamageTypeID:      damageTypeID,
		ResistanceApplied: resistancePercent,
	}
	switch {
	case resistancePercent >= ImmunePercent:
		inst.WasImmune = true
		return inst
	case resistancePercent > 0:
		inst.WasResisted = true
	case resistancePercent < 0:
		inst.WasVulnerable = true
	}

	scaled := math.Round(float64(baseDamage*(100-resistancePercent)) / 100)
	if scaled < 0 {
		scaled = 0
	}
	inst.FinalDamage = int(scaled)
	return inst
}
