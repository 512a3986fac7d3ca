package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when an amount does not parse to a finite number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountExceedsMaxSafeInt is returned when an amount's minor-unit form
	// does not fit in an int64.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")

	// ErrUnsupportedScale is returned for currencies whose minor unit is not
	// a hundredth of the major unit.
	ErrUnsupportedScale = errors.New("currency minor unit is not supported")
)
