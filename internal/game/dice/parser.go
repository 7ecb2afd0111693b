package dice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrFormat is returned when dice notation is malformed or names an
// unsupported die size.
var ErrFormat = errors.New("dice: invalid notation")

// notationPattern is the canonical grammar: [count]d<faces>[!][+|-modifier].
// Faces are matched loosely so unsupported sizes get a specific message.
var notationPattern = regexp.MustCompile(`(?i)^(\d+)?d(\d+)(!)?([+-]\d+)?$`)

// Parse parses dice notation into a Pool.
// Supported forms: "d10", "3d6", "3d6+2", "2d8-3", "1d6!", "2d10!+1".
// The count defaults to 1 when omitted; surrounding whitespace is ignored.
//
// Postcondition: Returns a valid Pool, or an error wrapping ErrFormat that
// quotes the offending notation.
func Parse(notation string) (Pool, error) {
	s := strings.TrimSpace(notation)
	if s == "" {
		return Pool{}, fmt.Errorf("%w: empty expression", ErrFormat)
	}

	m := notationPattern.FindStringSubmatch(s)
	if m == nil {
		return Pool{}, fmt.Errorf("%w: %q does not match [count]d<faces>[!][+|-modifier]", ErrFormat, notation)
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Pool{}, fmt.Errorf("%w: invalid die count in %q: %v", ErrFormat, notation, err)
		}
		if n < 1 {
			return Pool{}, fmt.Errorf("%w: invalid die count in %q: must be >= 1", ErrFormat, notation)
		}
		count = n
	}

	faces, err := strconv.Atoi(m[2])
	if err != nil || !SupportedFaces(faces) {
		return Pool{}, fmt.Errorf("%w: unsupported die d%s in %q: faces must be one of [6, 8, 10]", ErrFormat, m[2], notation)
	}

	modifier := 0
	if m[4] != "" {
		modifier, err = strconv.Atoi(m[4])
		if err != nil {
			return Pool{}, fmt.Errorf("%w: invalid modifier in %q: %v", ErrFormat, notation, err)
		}
	}

	if m[3] != "" {
		return newPool(count, faces, modifier, true, DefaultMaxExplosions)
	}
	return newPool(count, faces, modifier, false, DefaultMaxExplosions)
}

// TryParse is the non-failing variant of Parse.
//
// Postcondition: Returns (pool, true) on success, or (Pool{}, false) with no
// partial result.
func TryParse(notation string) (Pool, bool) {
	p, err := Parse(notation)
	if err != nil {
		return Pool{}, false
	}
	return p, true
}

// MustParse parses notation and panics on error. Useful for package-level constants.
//
// Precondition: notation must be valid dice notation.
func MustParse(notation string) Pool {
	p, err := Parse(notation)
	if err != nil {
		panic("dice: MustParse failed for notation " + notation + ": " + err.Error())
	}
	return p
}
