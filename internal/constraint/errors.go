// internal/constraint/errors.go
//
// Error values for constraint handling.
// Responsibilities:
//   - Sentinels for errors.Is (length mismatch, conflict, invalid input).
//   - Typed errors carrying the offending position or letters.

package constraint

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch matches any *LengthMismatchError.
	ErrLengthMismatch = errors.New("constraint length mismatch")
	// ErrConflict matches any *ConflictError.
	ErrConflict = errors.New("conflicting constraints")
	// ErrInvalidInput matches parse failures of the textual constraint forms.
	ErrInvalidInput = errors.New("invalid constraint input")
)

// LengthMismatchError is returned when two structures describing words of
// different lengths are combined.
type LengthMismatchError struct {
	Field string
	Have  int
	Got   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s arrays have different lengths (%d != %d)", e.Field, e.Have, e.Got)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// ConflictError reports contradictory knowledge.
// Pos >= 0: two different fixed letters at the same position.
// Pos == -1: Letters are both known to be in the word and marked absent.
type ConflictError struct {
	Pos     int
	Have    byte
	Got     byte
	Letters Letters
}

func (e *ConflictError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("letters both present and absent: %s", e.Letters)
	}
	return fmt.Sprintf("different fixed letters in same place (%d): %c != %c", e.Pos+1, e.Got, e.Have)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// InvalidLetterError reports a character outside a–z in a constraint.
type InvalidLetterError struct {
	Pos  int
	Char byte
}

func (e *InvalidLetterError) Error() string {
	return fmt.Sprintf("invalid letter %q at position %d", e.Char, e.Pos+1)
}

func (e *InvalidLetterError) Is(target error) bool { return target == ErrInvalidInput }
