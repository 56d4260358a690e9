package services

import (
	"fmt"
	"math/big"
)

// MalformedInputError reports a required field that is missing or unparsable.
type MalformedInputError struct {
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s: %s", e.Field, e.Reason)
}

// InvalidDigitError reports a character outside the alphabet of the declared base.
type InvalidDigitError struct {
	Char     rune
	Position int
	Base     int
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("invalid digit %q at position %d for base %d", e.Char, e.Position, e.Base)
}

// InsufficientSharesError is returned when fewer than k points are available.
type InsufficientSharesError struct {
	Have int
	Need int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares: need %d, got %d", e.Need, e.Have)
}

// InconsistentSharesError is returned when two selected points share an x-coordinate.
type InconsistentSharesError struct {
	X *big.Int
}

func (e *InconsistentSharesError) Error() string {
	return fmt.Sprintf("inconsistent shares: duplicate x-coordinate %s", e.X)
}

// LimitExceededError is returned before any arithmetic when an input is larger
// than the configured limits allow.
type LimitExceededError struct {
	What  string
	Value int
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("limit exceeded: %s is %d, limit %d", e.What, e.Value, e.Limit)
}

// NonIntegerResultWarning marks a result whose accumulated fraction was not an
// integer. Truncated is the value that was returned anyway.
//
// It is carried on the success path. Under strict solving it is returned as
// the error instead.
type NonIntegerResultWarning struct {
	Numerator   *big.Int
	Denominator *big.Int
	Truncated   *big.Int
}

func (w *NonIntegerResultWarning) Error() string {
	return fmt.Sprintf("non-integer result %s/%s (truncated to %s)", w.Numerator, w.Denominator, w.Truncated)
}
