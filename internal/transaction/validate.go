package transaction

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalid = errors.New("invalid transaction")

// Validate reports whether tx satisfies the normalized record invariants.
func Validate(tx Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}

	if !tx.Type.Valid() {
		return fmt.Errorf("%w: type %q", ErrInvalid, tx.Type)
	}

	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: amount %s must be positive", ErrInvalid, tx.Amount)
	}

	if tx.Description == "" {
		return fmt.Errorf("%w: empty description", ErrInvalid)
	}

	if !tx.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalid, tx.Status)
	}

	if err := validDate(tx.Date); err != nil {
		return fmt.Errorf("%w: date: %w", ErrInvalid, err)
	}

	if err := validDate(tx.PostingDate); err != nil {
		return fmt.Errorf("%w: posting date: %w", ErrInvalid, err)
	}

	return nil
}

func validDate(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}

	if t.Year() < 1900 {
		return fmt.Errorf("year %d before 1900", t.Year())
	}

	return nil
}
