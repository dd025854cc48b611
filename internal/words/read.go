// internal/words/read.go
//
// Readers for the tab-separated table files.
//
// Formats (lines starting with '#' are comments):
//   - word list:   word[\t...]            one per line
//   - frequencies: letter\ttotal\tc1\tc2...
//   - stats:       word\tstat[\t...]      stat is a float, usually in [0,1]

package words

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadTSV calls fn with the fields of every non-comment line. Lines with
// fewer than minColumns fields are an error.
func ReadTSV(r io.Reader, minColumns int, fn func(fields []string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < minColumns {
			return fmt.Errorf("line %d: too few columns (%d < %d)", line, len(fields), minColumns)
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

// ReadWordList reads one word per line, lower-cased and trimmed. Words of
// the wrong length or containing non-letters are skipped, and the number of
// skipped lines is returned alongside the list. length <= 0 keeps every
// alphabetic word.
func ReadWordList(r io.Reader, length int) (list []string, skipped int, err error) {
	err = ReadTSV(r, 1, func(fields []string) error {
		w := strings.ToLower(strings.TrimSpace(fields[0]))
		if (length > 0 && len(w) != length) || w == "" || !isAlpha(w) {
			skipped++
			return nil
		}
		list = append(list, w)
		return nil
	})
	return list, skipped, err
}

// ReadFrequencies reads a letter frequency table.
func ReadFrequencies(r io.Reader) (Frequencies, error) {
	f := Frequencies{}
	err := ReadTSV(r, 2, func(fields []string) error {
		letter := strings.ToLower(strings.TrimSpace(fields[0]))
		if len(letter) != 1 || !isAlpha(letter) {
			return fmt.Errorf("invalid letter %q", fields[0])
		}
		counts := make([]int, 0, len(fields)-1)
		for _, field := range fields[1:] {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("count for %q: %w", letter, err)
			}
			counts = append(counts, n)
		}
		f[letter[0]] = counts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ReadStats reads a word statistics table. When weight > 0 and != 1 every
// statistic is raised to that power (a weight of 2 squares them).
func ReadStats(r io.Reader, weight float64) (Stats, error) {
	s := Stats{}
	err := ReadTSV(r, 2, func(fields []string) error {
		w := strings.ToLower(strings.TrimSpace(fields[0]))
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return fmt.Errorf("stat for %q: %w", w, err)
		}
		if v < 0 {
			return fmt.Errorf("stat for %q is negative: %g", w, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("stat for %q is not finite: %g", w, v)
		}
		if weight > 0 && weight != 1 {
			v = math.Pow(v, weight)
		}
		s[w] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
