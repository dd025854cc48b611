// internal/game/feedback.go
//
// Feedback generation: turning a guess into new constraints.
//
// Two scorers live here:
//   - Evaluate: the simulator's rule. Green on an exact match, yellow if the
//     letter occurs anywhere in the answer, gray otherwise. It does not
//     consume letters, so a repeated guess letter whose copies in the answer
//     are already matched still shows yellow where the real game shows gray
//     (answer BOOST, guess GLOSS: "..GGY" here, "..GG." in the game).
//     Round-count statistics depend on this rule; keep it.
//   - Score: the game's own two-pass rule, used for display and for the
//     exact-rules simulation mode.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
)

// Evaluate returns the constraint delta a guess produces against answer.
// Both must have the same length.
func Evaluate(answer, guess string) constraint.Set {
	d := constraint.New(len(answer))
	for i := 0; i < len(guess) && i < len(answer); i++ {
		c := guess[i]
		switch {
		case answer[i] == c:
			d.Fixed[i] = c
		case strings.IndexByte(answer, c) >= 0:
			d.Present[i] = d.Present[i].Add(c)
		default:
			d.Absent = d.Absent.Add(c)
		}
	}
	return d
}

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) answer letters.
//
// Pass 2:
//   - For each non-hit guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Miss.
func Score(answer, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25; anything else is out of range.
func idx(c byte) int { return int(c) - 'a' }

// MarksCode renders marks as a feedback code ("G", "Y", ".").
func MarksCode(marks []Mark) string {
	b := make([]byte, len(marks))
	for i, m := range marks {
		switch m {
		case MarkHit:
			b[i] = CodeGreen
		case MarkPresent:
			b[i] = CodeYellow
		default:
			b[i] = CodeGray
		}
	}
	return string(b)
}

// FormatFeedback renders a round's delta for display: 'G' green, 'Y'
// yellow, '.' gray, one character per guess position.
func FormatFeedback(guess string, delta constraint.Set) string {
	b := make([]byte, len(guess))
	for i := range b {
		c := guess[i]
		switch {
		case i < len(delta.Fixed) && delta.Fixed[i] == c:
			b[i] = CodeGreen
		case i < len(delta.Present) && delta.Present[i].Has(c):
			b[i] = CodeYellow
		default:
			b[i] = CodeGray
		}
	}
	return string(b)
}

// ParseFeedback converts the colours a player observed for guess into a
// constraint delta. code has one of 'G', 'Y', '.' per position (case
// insensitive). A gray letter that is green or yellow elsewhere in the same
// guess is in the word but not at that position, so it is excluded there
// rather than marked absent.
func ParseFeedback(guess, code string) (constraint.Set, error) {
	guess = strings.ToLower(strings.TrimSpace(guess))
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != len(guess) {
		return constraint.Set{}, &constraint.LengthMismatchError{Field: "feedback", Have: len(guess), Got: len(code)}
	}
	d := constraint.New(len(guess))
	var grays, seen constraint.Letters
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		if !constraint.IsLetter(c) {
			return constraint.Set{}, &constraint.InvalidLetterError{Pos: i, Char: c}
		}
		switch code[i] {
		case CodeGreen:
			d.Fixed[i] = c
			seen = seen.Add(c)
		case CodeYellow:
			d.Present[i] = d.Present[i].Add(c)
			seen = seen.Add(c)
		case CodeGray:
			grays = grays.Add(c)
		default:
			return constraint.Set{}, fmt.Errorf("%w: feedback code %q: want G, Y or . at position %d", constraint.ErrInvalidInput, code, i+1)
		}
	}
	for i := 0; i < len(guess); i++ {
		if c := guess[i]; code[i] == CodeGray && seen.Has(c) {
			d.Present[i] = d.Present[i].Add(c)
		}
	}
	d.Absent = grays.Without(seen)
	return d, nil
}
