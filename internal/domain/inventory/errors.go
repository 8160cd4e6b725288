package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound         = errors.New("inventory item not found")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidCategory      = errors.New("category must be material or ac_unit")
	ErrItemHasMovements     = errors.New("inventory item still has stock movements")
	ErrConsistencyViolation = errors.New("inventory quantity does not match its movements")
)

// ConsistencyError lists the items whose quantity drifted from the ledger.
// It matches ErrConsistencyViolation.
type ConsistencyError struct {
	Discrepancies []Discrepancy
}

func (e *ConsistencyError) Error() string {
	if len(e.Discrepancies) == 1 {
		d := e.Discrepancies[0]
		return fmt.Sprintf("%s: %s has quantity %s but movements sum to %s",
			ErrConsistencyViolation, d.Name, d.Quantity, d.LedgerSum)
	}
	return fmt.Sprintf("%s: %d items drifted", ErrConsistencyViolation, len(e.Discrepancies))
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistencyViolation
}
