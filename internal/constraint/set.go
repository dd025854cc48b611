// internal/constraint/set.go
//
// Constraint model for a single solving session.
// Defines:
//   - Set: accumulated green/yellow/gray knowledge after zero or more rounds.
//   - Merge: folding one round's feedback into the running Set.
//
// Notes:
//   - Present[i] is an exclusion set: letters known to be in the word but
//     known NOT to be at position i.
//   - A Set is a value; Merge never mutates its inputs.

package constraint

import (
	"encoding/json"
	"strings"
)

// Set is the knowledge accumulated about the hidden word.
type Set struct {
	Fixed   []byte    // Fixed[i] is the green letter at i, or 0 when unknown.
	Present []Letters // Present[i] holds yellow letters seen (and rejected) at i.
	Absent  Letters   // Gray letters: not anywhere in the word.
}

// New returns an all-unknown Set for words of the given length.
func New(length int) Set {
	return Set{
		Fixed:   make([]byte, length),
		Present: make([]Letters, length),
	}
}

// Len is the word length the Set describes.
func (s Set) Len() int { return len(s.Fixed) }

// IsEmpty reports whether nothing is known yet.
func (s Set) IsEmpty() bool {
	if !s.Absent.Empty() {
		return false
	}
	for i := range s.Fixed {
		if s.Fixed[i] != 0 {
			return false
		}
	}
	for i := range s.Present {
		if !s.Present[i].Empty() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	out := Set{
		Fixed:   append([]byte(nil), s.Fixed...),
		Present: append([]Letters(nil), s.Present...),
		Absent:  s.Absent,
	}
	return out
}

// Known returns every letter confirmed to be in the word: fixed anywhere or
// present anywhere.
func (s Set) Known() Letters {
	var l Letters
	for _, c := range s.Fixed {
		l = l.Add(c)
	}
	for _, p := range s.Present {
		l = l.Union(p)
	}
	return l
}

// Required returns the letters that must occur somewhere in a candidate,
// i.e. the union of all Present sets.
func (s Set) Required() Letters {
	var l Letters
	for _, p := range s.Present {
		l = l.Union(p)
	}
	return l
}

// Validate checks the structural invariants of s:
//   - Fixed letters are 0 or a–z.
//   - Present and Absent have matching shapes.
//   - No letter is both known (fixed/present) and absent.
func (s Set) Validate() error {
	if len(s.Present) != len(s.Fixed) {
		return &LengthMismatchError{Field: "present", Have: len(s.Fixed), Got: len(s.Present)}
	}
	for i, c := range s.Fixed {
		if c != 0 && !IsLetter(c) {
			return &InvalidLetterError{Pos: i, Char: c}
		}
	}
	if clash := s.Known().Intersect(s.Absent); !clash.Empty() {
		return &ConflictError{Pos: -1, Letters: clash}
	}
	return nil
}

// Merge folds delta into base and returns the result.
//
// Rules:
//   - Lengths must agree, else *LengthMismatchError.
//   - Fixed: unknown slots take the delta letter; an equal letter is a no-op;
//     a different letter is a *ConflictError.
//   - Present (per position) and Absent accumulate by set union.
//   - The merged Set must pass Validate.
func Merge(base, delta Set) (Set, error) {
	if base.Len() != delta.Len() {
		return Set{}, &LengthMismatchError{Field: "fixed", Have: base.Len(), Got: delta.Len()}
	}
	if len(base.Present) != len(delta.Present) {
		return Set{}, &LengthMismatchError{Field: "present", Have: len(base.Present), Got: len(delta.Present)}
	}
	out := base.Clone()
	for i, c := range delta.Fixed {
		if c == 0 {
			continue
		}
		if have := out.Fixed[i]; have != 0 && have != c {
			return Set{}, &ConflictError{Pos: i, Have: have, Got: c}
		}
		out.Fixed[i] = c
	}
	for i, p := range delta.Present {
		out.Present[i] = out.Present[i].Union(p)
	}
	out.Absent = out.Absent.Union(delta.Absent)
	if err := out.Validate(); err != nil {
		return Set{}, err
	}
	return out, nil
}

// setJSON is the wire shape of a Set: fixed as a dotted string, present as
// one string of letters per position, absent as a letter string.
type setJSON struct {
	Fixed   string   `json:"fixed"`
	Present []string `json:"present"`
	Absent  string   `json:"absent"`
}

// MarshalJSON renders the Set in its human-readable wire shape.
func (s Set) MarshalJSON() ([]byte, error) {
	v := setJSON{Fixed: s.FixedString(), Present: make([]string, len(s.Present)), Absent: s.Absent.String()}
	for i, p := range s.Present {
		v.Present[i] = p.String()
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts the shape produced by MarshalJSON.
func (s *Set) UnmarshalJSON(b []byte) error {
	var v setJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	out := New(len(v.Fixed))
	for i := 0; i < len(v.Fixed); i++ {
		if v.Fixed[i] != '.' {
			out.Fixed[i] = v.Fixed[i]
		}
	}
	if len(v.Present) != 0 && len(v.Present) != out.Len() {
		return &LengthMismatchError{Field: "present", Have: out.Len(), Got: len(v.Present)}
	}
	for i, p := range v.Present {
		out.Present[i] = LettersOf(p)
	}
	out.Absent = LettersOf(v.Absent)
	if err := out.Validate(); err != nil {
		return err
	}
	*s = out
	return nil
}

// FixedString renders Fixed with '.' for unknown positions, e.g. "c..n.".
func (s Set) FixedString() string {
	var b strings.Builder
	for _, c := range s.Fixed {
		if c == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}
