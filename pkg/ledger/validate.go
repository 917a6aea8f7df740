package ledger

import (
	"errors"
	"fmt"
)

// ErrExceedsIncome is returned when allocations sum past the declared income.
var ErrExceedsIncome = errors.New("total budget exceeds income")

// Validate checks candidate allocations against declared income. It is pure
// and gets called twice in the recommend flow: once when a proposal is built
// and again at final acceptance, because the user may edit values in between.
// The acceptance-time check is the authoritative one.
func Validate(a Allocations, income float64) error {
	for c, v := range a {
		if v < 0 {
			return fmt.Errorf("allocation for %s is negative", c.Label())
		}
	}
	if Sum(a) > income {
		return ErrExceedsIncome
	}
	return nil
}
