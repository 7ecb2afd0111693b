package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidPool is returned by the executor when handed a Pool that could not
// have come from NewPool, NewExplodingPool or Parse (e.g. the zero value).
var ErrInvalidPool = errors.New("dice: invalid pool")

// advantageCandidates is the number of independent candidates rolled under
// advantage or disadvantage.
const advantageCandidates = 2

// candidate is one complete execution of the base algorithm.
type candidate struct {
	rolls      []int
	explosions []int
	total      int
}

// rollOnce runs the base algorithm: one draw per die, plus up to
// MaxExplosions extra draws per die while the previous draw was the maximum face.
//
// Postcondition: len(c.rolls) == p.Count(); len(c.explosions) <= p.Count()*p.MaxExplosions().
func rollOnce(p Pool, src Source) candidate {
	c := candidate{
		rolls: make([]int, p.count),
		total: p.modifier,
	}
	for i := range c.rolls {
		face := src.Intn(p.faces) + 1
		c.rolls[i] = face
		c.total += face
		if !p.exploding {
			continue
		}
		for extra := 0; face == p.faces && extra < p.maxExplosions; extra++ {
			face = src.Intn(p.faces) + 1
			c.explosions = append(c.explosions, face)
			c.total += face
		}
	}
	return c
}

// Roll evaluates pool once using src.
//
// Precondition: pool must come from NewPool, NewExplodingPool or Parse; src must be non-nil.
// Postcondition: result.Total == result.DiceTotal() + pool.Modifier();
// at most pool.Count()*(1+pool.MaxExplosions()) values are drawn from src.
func Roll(pool Pool, src Source) (RollResult, error) {
	return RollWith(pool, NoAdvantage, src)
}

// RollWith evaluates pool under the given advantage mode.
//
// With Advantage or Disadvantage two complete candidates are rolled in order;
// Advantage keeps the higher total, Disadvantage the lower, and ties keep the
// first. The kept candidate's dice become the result's Rolls and ExplosionRolls.
//
// Precondition: pool must come from NewPool, NewExplodingPool or Parse; src must be non-nil.
// Postcondition: Returns a RollResult or an error wrapping ErrInvalidPool.
func RollWith(pool Pool, adv AdvantageType, src Source) (RollResult, error) {
	if src == nil {
		panic("dice: RollWith precondition violated: src must be non-nil")
	}
	if !pool.valid() {
		return RollResult{}, fmt.Errorf("%w: %+v", ErrInvalidPool, pool)
	}

	switch adv {
	case NoAdvantage:
		c := rollOnce(pool, src)
		return RollResult{
			Pool:           pool,
			Rolls:          c.rolls,
			ExplosionRolls: c.explosions,
			Total:          c.total,
			Advantage:      NoAdvantage,
		}, nil
	case Advantage, Disadvantage:
	default:
		return RollResult{}, fmt.Errorf("dice: unknown advantage type %d", adv)
	}

	candidates := make([]candidate, advantageCandidates)
	totals := make([]int, advantageCandidates)
	for i := range candidates {
		candidates[i] = rollOnce(pool, src)
		totals[i] = candidates[i].total
	}

	selected := 0
	for i := 1; i < len(candidates); i++ {
		if adv == Advantage && totals[i] > totals[selected] {
			selected = i
		}
		if adv == Disadvantage && totals[i] < totals[selected] {
			selected = i
		}
	}

	won := candidates[selected]
	return RollResult{
		Pool:           pool,
		Rolls:          won.rolls,
		ExplosionRolls: won.explosions,
		Total:          won.total,
		Advantage:      adv,
		AllRollTotals:  totals,
		SelectedIndex:  selected,
	}, nil
}

// RollNotation parses notation and rolls it using src in a single call.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a RollResult or a parse/roll error.
func RollNotation(notation string, adv AdvantageType, src Source) (RollResult, error) {
	p, err := Parse(notation)
	if err != nil {
		return RollResult{}, err
	}
	return RollWith(p, adv, src)
}
