package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxExplosions is the per-die explosion cap applied when none is given.
const DefaultMaxExplosions = 10

// ErrInvalidArgument is returned when a Pool is constructed with invalid values.
var ErrInvalidArgument = errors.New("dice: invalid argument")

// supportedFaces is the closed set of die sizes the rules allow.
var supportedFaces = map[int]bool{6: true, 8: true, 10: true}

// SupportedFaces reports whether faces is an allowed die size (6, 8 or 10).
func SupportedFaces(faces int) bool { return supportedFaces[faces] }

// Pool is an immutable description of a dice roll request, e.g. "3d6+2".
//
// Pools have no identity beyond their values: two pools with equal fields
// compare equal with ==. The zero value is not a valid Pool.
type Pool struct {
	count         int
	faces         int
	modifier      int
	exploding     bool
	maxExplosions int
}

// NewPool builds a non-exploding pool.
//
// Precondition: count >= 1; faces in {6, 8, 10}.
// Postcondition: Returns a valid Pool or an error wrapping ErrInvalidArgument.
func NewPool(count, faces, modifier int) (Pool, error) {
	return newPool(count, faces, modifier, false, DefaultMaxExplosions)
}

// NewExplodingPool builds a pool whose dice re-roll on their maximum face, up
// to maxExplosions extra draws per original die.
//
// Precondition: count >= 1; faces in {6, 8, 10}; maxExplosions >= 0.
// Postcondition: Returns a valid Pool or an error wrapping ErrInvalidArgument.
func NewExplodingPool(count, faces, modifier, maxExplosions int) (Pool, error) {
	return newPool(count, faces, modifier, true, maxExplosions)
}

func newPool(count, faces, modifier int, exploding bool, maxExplosions int) (Pool, error) {
	if count < 1 {
		return Pool{}, fmt.Errorf("%w: count must be >= 1, got %d", ErrInvalidArgument, count)
	}
	if !SupportedFaces(faces) {
		return Pool{}, fmt.Errorf("%w: faces must be one of [6, 8, 10], got %d", ErrInvalidArgument, faces)
	}
	if maxExplosions < 0 {
		return Pool{}, fmt.Errorf("%w: max explosions must be >= 0, got %d", ErrInvalidArgument, maxExplosions)
	}
	return Pool{
		count:         count,
		faces:         faces,
		modifier:      modifier,
		exploding:     exploding,
		maxExplosions: maxExplosions,
	}, nil
}

// D6 returns a single six-sided die.
func D6() Pool { return Pool{count: 1, faces: 6, maxExplosions: DefaultMaxExplosions} }

// D8 returns a single eight-sided die.
func D8() Pool { return Pool{count: 1, faces: 8, maxExplosions: DefaultMaxExplosions} }

// D10 returns a single ten-sided die.
func D10() Pool { return Pool{count: 1, faces: 10, maxExplosions: DefaultMaxExplosions} }

// Count returns the number of dice rolled.
func (p Pool) Count() int { return p.count }

// Faces returns the number of faces per die.
func (p Pool) Faces() int { return p.faces }

// Modifier returns the flat modifier.
func (p Pool) Modifier() int { return p.modifier }

// Exploding reports whether maximum faces trigger extra draws.
func (p Pool) Exploding() bool { return p.exploding }

// MaxExplosions returns the cap on extra draws per original die.
func (p Pool) MaxExplosions() int { return p.maxExplosions }

// WithModifier returns a copy of p with its modifier replaced.
func (p Pool) WithModifier(modifier int) Pool {
	p.modifier = modifier
	return p
}

// valid reports whether p satisfies the construction invariants. Only the
// zero value or a hand-built Pool can fail this.
func (p Pool) valid() bool {
	return p.count >= 1 && SupportedFaces(p.faces) && p.maxExplosions >= 0
}

// MinimumResult returns the lowest possible total: every die shows 1.
func (p Pool) MinimumResult() int {
	return p.count + p.modifier
}

// MaximumResult returns the highest possible total. Exploding pools have no
// finite maximum; for them the second result is false.
func (p Pool) MaximumResult() (int, bool) {
	if p.exploding {
		return 0, false
	}
	return p.count*p.faces + p.modifier, true
}

// AverageResult returns the expected total of the dice before any explosion:
// count*(faces+1)/2 + modifier.
func (p Pool) AverageResult() float64 {
	return float64(p.count)*float64(p.faces+1)/2 + float64(p.modifier)
}

// String renders canonical notation, e.g. "2d8-3" or "1d6!".
func (p Pool) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(p.count))
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(p.faces))
	if p.exploding {
		b.WriteByte('!')
	}
	if p.modifier != 0 {
		fmt.Fprintf(&b, "%+d", p.modifier)
	}
	return b.String()
}
