package damage

// Tally accumulates damage instances. Tally is immutable: Add returns a new
// Tally and leaves the receiver untouched.
type Tally struct {
	total  int
	count  int
	byType map[string]int
}

// Add returns a new Tally that includes inst.
func (t Tally) Add(inst Instance) Tally {
	byType := make(map[string]int, len(t.byType)+1)
	for k, v := range t.byType {
		byType[k] = v
	}
	byType[inst.DamageTypeID] += inst.FinalDamage
	return Tally{
		total:  t.total + inst.FinalDamage,
		count:  t.count + 1,
		byType: byType,
	}
}

// Total returns the summed final damage.
func (t Tally) Total() int { return t.total }

// Count returns the number of instances added.
func (t Tally) Count() int { return t.count }

// ByType returns a copy of the final damage summed per damage type.
func (t Tally) ByType() map[string]int {
	out := make(map[string]int, len(t.byType))
	for k, v := range t.byType {
		out[k] = v
	}
	return out
}
