// internal/words/tables.go
//
// Immutable input tables consumed by the solver.
// Defines:
//   - Tables:      word list + letter frequencies + word statistics.
//   - Frequencies: letter → [total, count@1, count@2, ...].
//   - Stats:       word → familiarity statistic in [0, +inf).
//
// Tables are built once at process start and passed by pointer into every
// component; nothing here is mutated after NewTables returns.

package words

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidWord matches any *InvalidWordError.
var ErrInvalidWord = errors.New("invalid word")

// InvalidWordError reports a word that is not Length lowercase letters.
type InvalidWordError struct {
	Word   string
	Reason string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word %q: %s", e.Word, e.Reason)
}

func (e *InvalidWordError) Is(target error) bool { return target == ErrInvalidWord }

// Frequencies maps a letter to its occurrence counts: index 0 is the total
// across all positions, index p (1-based) the count at position p.
type Frequencies map[byte][]int

// At returns the count of letter c at 1-based position p, or 0 if unknown.
func (f Frequencies) At(c byte, p int) int {
	counts := f[c]
	if p < 0 || p >= len(counts) {
		return 0
	}
	return counts[p]
}

// Stats maps a word to its familiarity statistic. Missing words are 0.
type Stats map[string]float64

// Get returns the statistic for w, or 0.
func (s Stats) Get(w string) float64 { return s[w] }

// Tables bundles the read-only inputs of a solving session.
type Tables struct {
	Length int
	Words  []string // sorted, unique
	Freqs  Frequencies
	Stats  Stats

	index map[string]uint
}

// NewTables validates words and builds Tables. Duplicates are dropped and
// the list is sorted. If freqs is nil it is built from the word list.
func NewTables(list []string, freqs Frequencies, stats Stats, length int) (*Tables, error) {
	if length <= 0 {
		return nil, fmt.Errorf("word length must be positive, got %d", length)
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		if err := Validate(w, length); err != nil {
			return nil, err
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	if freqs == nil {
		freqs = BuildFrequencies(out, nil, 1)
	}
	if stats == nil {
		stats = Stats{}
	}
	t := &Tables{Length: length, Words: out, Freqs: freqs, Stats: stats, index: make(map[string]uint, len(out))}
	for i, w := range out {
		t.index[w] = uint(i)
	}
	return t, nil
}

// Index returns the position of w in Words.
func (t *Tables) Index(w string) (uint, bool) {
	i, ok := t.index[w]
	return i, ok
}

// Contains reports whether w is in the word table.
func (t *Tables) Contains(w string) bool {
	_, ok := t.index[w]
	return ok
}

// Validate checks that w is exactly length lowercase ASCII letters.
func Validate(w string, length int) error {
	if len(w) != length {
		return &InvalidWordError{Word: w, Reason: fmt.Sprintf("length %d, want %d", len(w), length)}
	}
	if !isAlpha(w) {
		return &InvalidWordError{Word: w, Reason: "letters a-z only"}
	}
	return nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
