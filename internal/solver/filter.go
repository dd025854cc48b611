// internal/solver/filter.go
//
// Candidate filter: which words are still consistent with a constraint Set.
//
// A word w is a candidate iff:
//   1. w[i] == Fixed[i] wherever Fixed[i] is known (green).
//   2. w[i] is not in Present[i] (a yellow is never where it was seen).
//   3. every letter of every Present[i] occurs somewhere in w.
//   4. no Absent letter occurs in w (gray).
//
// Filtering is pure: the input slice is never modified and a new slice is
// returned. Output order follows input order but callers must not rely on it.

package solver

import "github.com/robalobadob/wordle/apps/solver/internal/constraint"

// matcher is a constraint Set flattened for repeated predicate checks.
type matcher struct {
	fixed    []byte
	present  []constraint.Letters
	required constraint.Letters
	absent   constraint.Letters
}

func newMatcher(c constraint.Set) matcher {
	return matcher{
		fixed:    c.Fixed,
		present:  c.Present,
		required: c.Required(),
		absent:   c.Absent,
	}
}

func (m matcher) match(w string) bool {
	if len(w) != len(m.fixed) {
		return false
	}
	var seen constraint.Letters
	for i := 0; i < len(w); i++ {
		ch := w[i]
		if f := m.fixed[i]; f != 0 && ch != f {
			return false
		}
		if i < len(m.present) && m.present[i].Has(ch) {
			return false
		}
		seen = seen.Add(ch)
	}
	if !m.required.Without(seen).Empty() {
		return false
	}
	return m.absent.Intersect(seen).Empty()
}

// IsCandidate reports whether w is consistent with c.
func IsCandidate(w string, c constraint.Set) bool {
	return newMatcher(c).match(w)
}

// Filter returns the words consistent with c as a new slice.
func Filter(words []string, c constraint.Set) []string {
	m := newMatcher(c)
	out := make([]string, 0, len(words)/4)
	for _, w := range words {
		if m.match(w) {
			out = append(out, w)
		}
	}
	return out
}
