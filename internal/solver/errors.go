package solver

import (
	"errors"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
)

// ErrNoCandidates matches any *NoCandidatesError.
var ErrNoCandidates = errors.New("no words found which fit the constraints")

// NoCandidatesError is returned when no word satisfies the constraints.
// It is expected input, not a bug: the user's knowledge rules out every
// word in the table.
type NoCandidatesError struct {
	Constraints constraint.Set
}

func (e *NoCandidatesError) Error() string {
	return ErrNoCandidates.Error() + " (" + e.Constraints.Format() + ")"
}

func (e *NoCandidatesError) Is(target error) bool { return target == ErrNoCandidates }
