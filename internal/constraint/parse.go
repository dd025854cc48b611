// internal/constraint/parse.go
//
// Parsing of the compact textual constraint forms typed by a human:
//   - fixed:   "c..n"      greens, dots for unknowns, trailing dots optional.
//   - present: "i/an.pac"  yellows per position; '/', '|' or '-' separate
//                          adjacent positions, '.' skips an empty one.
//   - absent:  "xyz"       grays in any order; repeats and dots are fine.

package constraint

import (
	"fmt"
	"strings"
)

// Parse builds a Set from the three textual forms.
func Parse(fixed, present, absent string, length int) (Set, error) {
	s := New(length)
	f, err := ParseFixed(fixed, length)
	if err != nil {
		return Set{}, err
	}
	p, err := ParsePresent(present, length)
	if err != nil {
		return Set{}, err
	}
	a, err := ParseAbsent(absent, f)
	if err != nil {
		return Set{}, err
	}
	s.Fixed, s.Present, s.Absent = f, p, a
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// ParseFixed parses the greens string. It may be shorter than length.
func ParseFixed(str string, length int) ([]byte, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	if len(str) > length {
		return nil, fmt.Errorf("%w: fixed (%d) cannot be longer than word length (%d)", ErrInvalidInput, len(str), length)
	}
	out := make([]byte, length)
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c == '.' {
			continue
		}
		if !IsLetter(c) {
			return nil, &InvalidLetterError{Pos: i, Char: c}
		}
		out[i] = c
	}
	return out, nil
}

func isSeparator(c byte) bool { return c == '/' || c == '|' || c == '-' }

// ParsePresent parses the yellows string.
//
// Examples:
//
//	"i/an.pac" -> [i an _ pac _]
//	"...t"     -> [_ _ _ t _]
func ParsePresent(str string, length int) ([]Letters, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	out := make([]Letters, length)
	place := 0
	var last byte
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch {
		case isSeparator(c):
			place++
		case c == '.':
			if isSeparator(last) {
				return nil, fmt.Errorf("%w: present string %q cannot have a %q adjacent to a '.'", ErrInvalidInput, str, last)
			}
			// A dot after a letter closes that letter's slot and skips one more.
			if IsLetter(last) {
				place++
			}
			place++
		case IsLetter(c):
			if place >= length {
				return nil, fmt.Errorf("%w: present string longer than word length (%d > %d)", ErrInvalidInput, place+1, length)
			}
			out[place] = out[place].Add(c)
		default:
			return nil, &InvalidLetterError{Pos: place, Char: c}
		}
		last = c
	}
	return out, nil
}

// ParseAbsent parses the grays string. Letters that are already fixed are
// dropped, so a gray duplicate of a green letter is harmless.
func ParseAbsent(str string, fixed []byte) (Letters, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	var out Letters
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c == '.' {
			continue
		}
		if !IsLetter(c) {
			return 0, &InvalidLetterError{Pos: i, Char: c}
		}
		out = out.Add(c)
	}
	var greens Letters
	for _, c := range fixed {
		greens = greens.Add(c)
	}
	return out.Without(greens), nil
}

// PresentString renders Present back into the ParsePresent format.
func (s Set) PresentString() string {
	var b strings.Builder
	for i, p := range s.Present {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// Format renders the Set as the three textual forms, e.g.
// "fixed=c.... present=/a/// absent=eiou".
func (s Set) Format() string {
	absent := s.Absent.String()
	if absent == "" {
		absent = "."
	}
	return fmt.Sprintf("fixed=%s present=%s absent=%s", s.FixedString(), s.PresentString(), absent)
}
