// internal/solver/selector.go
//
// Guess selection.
//
// Policy (two tracks):
//   - Solve:   if the most likely candidate's likelihood reaches the commit
//              threshold, guess it.
//   - Explore: otherwise guess the best frequency-ranked word built only
//              from untested letters, to eliminate as many candidates as
//              possible. With no such word, fall back to the best
//              frequency-ranked candidate.

package solver

import (
	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Suggestion is the full outcome of one selection round.
type Suggestion struct {
	Choice     string   `json:"choice"`
	Confident  bool     `json:"confident"`           // Choice is an answer guess, not an exploration
	Score      float64  `json:"score,omitempty"`     // likelihood of Choice when Confident
	Candidates int      `json:"candidates"`          // words consistent with the constraints
	Answers    []Ranked `json:"answers,omitempty"`   // candidates by likelihood
	Excluders  []string `json:"excluders,omitempty"` // exploration words by frequency
}

// rankFunc orders a word set by frequency score.
type rankFunc func(cands []string) []string

// Explore returns the constraint Set used for exploration guesses: every
// letter already known to be in the word is treated as absent, and all
// positional knowledge is dropped, so only untested letters survive.
func Explore(c constraint.Set) constraint.Set {
	out := constraint.New(c.Len())
	out.Absent = c.Absent.Union(c.Known())
	return out
}

// Choose picks the next guess. It returns a *NoCandidatesError when no
// word fits c.
func Choose(list []string, freqs words.Frequencies, stats words.Stats, c constraint.Set, threshold float64) (string, error) {
	s, err := suggest(list, stats, c, threshold, 0, false, func(cands []string) []string {
		return RankByFrequency(cands, freqs)
	})
	if err != nil {
		return "", err
	}
	return s.Choice, nil
}

// Suggest is Choose plus the ranked lists behind the choice, each trimmed
// to limit entries (limit <= 0 keeps all).
func Suggest(list []string, freqs words.Frequencies, stats words.Stats, c constraint.Set, threshold float64, limit int) (Suggestion, error) {
	return suggest(list, stats, c, threshold, limit, true, func(cands []string) []string {
		return RankByFrequency(cands, freqs)
	})
}

// suggest runs the selection policy. Without full, it stops as soon as the
// choice is known and leaves the ranked lists empty.
func suggest(list []string, stats words.Stats, c constraint.Set, threshold float64, limit int, full bool, rank rankFunc) (Suggestion, error) {
	cands := Filter(list, c)
	if len(cands) == 0 {
		return Suggestion{}, &NoCandidatesError{Constraints: c}
	}
	out := Suggestion{Candidates: len(cands)}

	answers := RankByLikelihood(cands, stats)
	if answers[0].Score >= threshold {
		out.Choice, out.Confident, out.Score = answers[0].Word, true, answers[0].Score
	}
	if full {
		out.Answers = trim(answers, limit)
	} else if out.Confident {
		return out, nil
	}

	// On the first round nothing is known, so exploration would reproduce
	// the candidate set.
	explore := cands
	if !c.IsEmpty() {
		explore = Filter(list, Explore(c))
	}
	excluders := rank(explore)
	if full {
		out.Excluders = trim(excluders, limit)
	}

	if out.Confident {
		return out, nil
	}
	if len(excluders) > 0 {
		out.Choice = excluders[0]
		return out, nil
	}
	out.Choice = rank(cands)[0]
	return out, nil
}

func trim[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

// Solver bundles immutable tables with the selection parameters. It is
// safe for concurrent use.
type Solver struct {
	Tables    *words.Tables
	Threshold float64
	cache     *SortCache
}

// New returns a Solver. cache may be nil.
func New(t *words.Tables, threshold float64, cache *SortCache) *Solver {
	return &Solver{Tables: t, Threshold: threshold, cache: cache}
}

// Cache returns the Solver's sort cache, or nil.
func (s *Solver) Cache() *SortCache { return s.cache }

// Choose picks the next guess for c.
func (s *Solver) Choose(c constraint.Set) (string, error) {
	if err := s.checkLength(c); err != nil {
		return "", err
	}
	sg, err := suggest(s.Tables.Words, s.Tables.Stats, c, s.Threshold, 0, false, s.rank)
	if err != nil {
		return "", err
	}
	return sg.Choice, nil
}

// Suggest returns the choice for c along with the top limit ranked words.
func (s *Solver) Suggest(c constraint.Set, limit int) (Suggestion, error) {
	if err := s.checkLength(c); err != nil {
		return Suggestion{}, err
	}
	return suggest(s.Tables.Words, s.Tables.Stats, c, s.Threshold, limit, true, s.rank)
}

func (s *Solver) checkLength(c constraint.Set) error {
	if c.Len() != s.Tables.Length {
		return &constraint.LengthMismatchError{Field: "fixed", Have: s.Tables.Length, Got: c.Len()}
	}
	return nil
}

func (s *Solver) rank(cands []string) []string {
	if s.cache != nil {
		return s.cache.Rank(s.Tables, cands)
	}
	return RankByFrequency(cands, s.Tables.Freqs)
}
