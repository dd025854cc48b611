// internal/words/freqs.go
//
// Letter frequency tables.
// Responsibilities:
//   - Count letters overall and per position, weighted by stat² when given.
//   - Write the table in the tab-separated format ReadFrequencies accepts.

package words

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// BuildFrequencies counts letter occurrences over list, overall and per
// position. With stats, a word found in stats contributes stat² instead of
// 1, so familiar words dominate the table. Every count is multiplied by
// scale and rounded. All 26 letters get a row padded to the longest word.
func BuildFrequencies(list []string, stats Stats, scale float64) Frequencies {
	if scale == 0 {
		scale = 1
	}
	maxLen := 0
	for _, w := range list {
		if len(w) > maxLen {
			maxLen = len(w)
		}
	}
	raw := make(map[byte][]float64, 26)
	for c := byte('a'); c <= 'z'; c++ {
		raw[c] = make([]float64, maxLen+1)
	}
	for _, w := range list {
		weight := 1.0
		if stats != nil {
			if v, ok := stats[w]; ok {
				weight = v * v
			}
		}
		for i := 0; i < len(w); i++ {
			counts, ok := raw[w[i]]
			if !ok {
				continue
			}
			counts[0] += weight
			counts[i+1] += weight
		}
	}
	out := make(Frequencies, len(raw))
	for c, counts := range raw {
		row := make([]int, len(counts))
		for i, v := range counts {
			row[i] = int(math.Round(v * scale))
		}
		out[c] = row
	}
	return out
}

// WriteFrequencies writes f in the format ReadFrequencies accepts, sorted
// alphabetically or, with byTotal, by descending total count.
func WriteFrequencies(w io.Writer, f Frequencies, byTotal bool) error {
	letters := make([]byte, 0, len(f))
	for c := range f {
		letters = append(letters, c)
	}
	sort.Slice(letters, func(i, j int) bool {
		if byTotal {
			ti, tj := f.At(letters[i], 0), f.At(letters[j], 0)
			if ti != tj {
				return ti > tj
			}
		}
		return letters[i] < letters[j]
	})
	for _, c := range letters {
		fields := []string{string(c)}
		for _, n := range f[c] {
			fields = append(fields, fmt.Sprint(n))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}
