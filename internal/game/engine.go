// internal/game/engine.go
//
// Game simulator: the solver plays against a known answer.
// Responsibilities:
//   - Create games with an all-unknown constraint Set at round 1.
//   - Apply guesses: solved on an exact match, otherwise merge the round's
//     feedback into the constraints and advance the round.
//   - Drive the solver until solved, out of rounds, or out of candidates.
//
// Notes:
//   - Options.FirstGuess forces round 1; later rounds ask the solver.
//   - MaxRounds bounds the loop; exceeding it reports an unsolved game.
//   - randomID() is a compact hex identifier for correlating games in logs.

package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrFinished is returned when guessing in a finished game.
var ErrFinished = errors.New("game finished")

// Options controls a single simulated game.
type Options struct {
	FirstGuess string // forced round-1 guess; empty lets the solver choose
	MaxRounds  int    // 0 means unbounded
	Exact      bool   // use the game's two-pass scoring instead of Evaluate
}

// Result is the outcome of one simulated game.
type Result struct {
	GameID string `json:"gameId"`
	Answer string `json:"answer"`
	Solved bool   `json:"solved"`
	Rounds int    `json:"rounds,omitempty"` // round the answer was guessed in; 0 when unsolved
	Turns  []Turn `json:"turns"`
	Failed bool   `json:"failed,omitempty"` // ran out of candidates
	Err    string `json:"error,omitempty"`
}

// New constructs a game for answer at round 1.
func New(answer string) *Game {
	answer = strings.ToLower(answer)
	return &Game{
		ID:          randomID(),
		Answer:      answer,
		Constraints: constraint.New(len(answer)),
		Round:       1,
		Turns:       []Turn{},
	}
}

// Apply plays guess. On a miss the feedback is merged into the game's
// constraints and the round advances.
func (g *Game) Apply(guess string, exact bool) (Turn, error) {
	if g.Finished {
		return Turn{}, ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if err := words.Validate(guess, len(g.Answer)); err != nil {
		return Turn{}, err
	}

	if guess == g.Answer {
		t := Turn{Guess: guess, Code: strings.Repeat(string(CodeGreen), len(guess))}
		g.Turns = append(g.Turns, t)
		g.Finished, g.Won = true, true
		return t, nil
	}

	var (
		delta constraint.Set
		code  string
	)
	if exact {
		code = MarksCode(Score(g.Answer, guess))
		var err error
		if delta, err = ParseFeedback(guess, code); err != nil {
			return Turn{}, err
		}
	} else {
		delta = Evaluate(g.Answer, guess)
		code = FormatFeedback(guess, delta)
	}
	merged, err := constraint.Merge(g.Constraints, delta)
	if err != nil {
		return Turn{}, fmt.Errorf("round %d: %w", g.Round, err)
	}
	t := Turn{Guess: guess, Code: code}
	g.Constraints = merged
	g.Turns = append(g.Turns, t)
	g.Round++
	return t, nil
}

// Simulate plays one game against answer with s choosing the guesses.
//
// A *solver.NoCandidatesError is returned wrapped together with the partial
// result (Failed set); callers running many games count it as unsolved.
// Constraint conflicts indicate a bug and are returned as-is.
func Simulate(ctx context.Context, s *solver.Solver, answer string, opts Options) (Result, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if err := words.Validate(answer, s.Tables.Length); err != nil {
		return Result{}, err
	}
	g := New(answer)
	res := Result{GameID: g.ID, Answer: answer}

	for {
		if err := ctx.Err(); err != nil {
			res.Turns = g.Turns
			return res, err
		}

		var guess string
		if g.Round == 1 && opts.FirstGuess != "" {
			guess = opts.FirstGuess
		} else {
			var err error
			guess, err = s.Choose(g.Constraints)
			if err != nil {
				res.Turns = g.Turns
				if errors.Is(err, solver.ErrNoCandidates) {
					res.Failed, res.Err = true, err.Error()
				}
				return res, fmt.Errorf("answer %q round %d: %w", answer, g.Round, err)
			}
		}

		if _, err := g.Apply(guess, opts.Exact); err != nil {
			res.Turns = g.Turns
			return res, fmt.Errorf("answer %q: %w", answer, err)
		}
		if g.Won {
			res.Solved, res.Rounds, res.Turns = true, g.Round, g.Turns
			return res, nil
		}
		if opts.MaxRounds > 0 && g.Round > opts.MaxRounds {
			res.Turns = g.Turns
			return res, nil
		}
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
