package combat

import (
	"fmt"

	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// RollInitiative rolls pool and adds bonus. Turn order is left to the caller.
//
// Precondition: src must be non-nil.
// Postcondition: Returns pool's total + bonus.
func RollInitiative(pool dice.Pool, bonus int, src dice.Source) (int, error) {
	roll, err := dice.Roll(pool, src)
	if err != nil {
		return 0, fmt.Errorf("initiative: %w", err)
	}
	return roll.Total + bonus, nil
}
