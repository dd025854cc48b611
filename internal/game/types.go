// internal/game/types.go
//
// Core type definitions for simulated games.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Turn: one guess and the feedback it produced.
//   - Game: state for a single in-progress or finished simulated game.

package game

import "github.com/robalobadob/wordle/apps/solver/internal/constraint"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position (green).
//   - "present": letter exists in the answer but in a different position (yellow).
//   - "miss":    letter does not exist in the answer at all (gray).
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Feedback code characters, one per position.
const (
	CodeGreen  = 'G'
	CodeYellow = 'Y'
	CodeGray   = '.'
)

// Turn is a single guess and its feedback code, e.g. {"crane", "G.Y.."}.
type Turn struct {
	Guess string `json:"guess"`
	Code  string `json:"code"`
}

// Game holds the state of a single simulated game.
type Game struct {
	ID          string         // Unique game identifier (random hex string).
	Answer      string         // The secret word (always lowercase).
	Constraints constraint.Set // Knowledge accumulated so far.
	Round       int            // Current round, starting at 1.
	Turns       []Turn         // Guesses made so far with their feedback.
	Finished    bool           // True once the answer was guessed.
	Won         bool           // True if the game was finished with a win.
}
