package dice

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// Every roll is logged at debug level with a roll_id, the pool notation, the
// kept dice, explosions, modifier and total; advantage rolls also log every
// candidate total.
//
// Roller is safe for concurrent use iff its Source is.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates pool once and logs the result.
func (r *Roller) Roll(pool Pool) (RollResult, error) {
	return r.RollWith(pool, NoAdvantage)
}

// RollWith evaluates pool under adv and logs the result at debug level.
//
// Postcondition: result logged; returns RollResult or error.
func (r *Roller) RollWith(pool Pool, adv AdvantageType) (RollResult, error) {
	result, err := RollWith(pool, adv, r.src)
	if err != nil {
		return RollResult{}, err
	}
	fields := []zap.Field{
		zap.String("roll_id", uuid.NewString()),
		zap.Stringer("pool", result.Pool),
		zap.Ints("dice", result.Rolls),
		zap.Ints("explosions", result.ExplosionRolls),
		zap.Int("modifier", result.Pool.Modifier()),
		zap.Int("total", result.Total),
	}
	if result.Advantage != NoAdvantage {
		fields = append(fields,
			zap.Stringer("advantage", result.Advantage),
			zap.Ints("candidate_totals", result.AllRollTotals),
			zap.Int("selected", result.SelectedIndex),
		)
	}
	r.logger.Debug("dice roll", fields...)
	return result, nil
}

// RollNotation parses notation and rolls it under adv, logging the result.
//
// Postcondition: Returns a RollResult or a parse/roll error.
func (r *Roller) RollNotation(notation string, adv AdvantageType) (RollResult, error) {
	p, err := Parse(notation)
	if err != nil {
		return RollResult{}, err
	}
	return r.RollWith(p, adv)
}

// Source returns the Source the Roller draws from.
func (r *Roller) Source() Source { return r.src }
