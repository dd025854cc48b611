// internal/constraint/letters.go
//
// Letters is a compact set of lowercase ASCII letters (a–z) stored as a
// 26-bit mask. It backs the per-position "present" exclusion sets and the
// global "absent" set of a constraint Set.

package constraint

import "strings"

// Letters is a set of letters a–z. The zero value is the empty set.
type Letters uint32

// LettersOf returns the set of letters occurring in s.
// Characters outside a–z are ignored.
func LettersOf(s string) Letters {
	var l Letters
	for i := 0; i < len(s); i++ {
		l = l.Add(s[i])
	}
	return l
}

// IsLetter reports whether c is a lowercase ASCII letter.
func IsLetter(c byte) bool { return c >= 'a' && c <= 'z' }

// Add returns l with c included. Non-letters are ignored.
func (l Letters) Add(c byte) Letters {
	if !IsLetter(c) {
		return l
	}
	return l | 1<<(c-'a')
}

// Has reports whether c is in the set.
func (l Letters) Has(c byte) bool {
	return IsLetter(c) && l&(1<<(c-'a')) != 0
}

// Union returns the letters in either set.
func (l Letters) Union(o Letters) Letters { return l | o }

// Intersect returns the letters in both sets.
func (l Letters) Intersect(o Letters) Letters { return l & o }

// Without returns the letters of l not in o.
func (l Letters) Without(o Letters) Letters { return l &^ o }

// Len returns the number of letters in the set.
func (l Letters) Len() int {
	n := 0
	for x := l; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// Empty reports whether the set has no letters.
func (l Letters) Empty() bool { return l == 0 }

// Each calls fn for every letter in alphabetical order.
func (l Letters) Each(fn func(c byte)) {
	for i := byte(0); i < 26; i++ {
		if l&(1<<i) != 0 {
			fn('a' + i)
		}
	}
}

// String returns the letters in alphabetical order, e.g. "aei".
func (l Letters) String() string {
	var b strings.Builder
	l.Each(func(c byte) { b.WriteByte(c) })
	return b.String()
}
