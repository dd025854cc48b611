// internal/words/load.go
//
// Loading of the solver's input tables.
//
// Initialization behavior (Load):
//   1. Word list:   Source.WordsFile, else the embedded assets/words.txt.
//   2. Statistics:  Source.StatsFile, else the embedded assets/stats.tsv.
//   3. Frequencies: Source.FreqsFile, else built from the loaded word list.
//
// Constraints:
//   • Words must be Source.Length alphabetic letters (a–z); others are skipped.
//   • Lists are normalized to lowercase.

package words

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Source says where the tables come from. Empty paths fall back to the
// embedded defaults.
type Source struct {
	WordsFile   string
	FreqsFile   string
	StatsFile   string
	StatsWeight float64 // exponent applied to each stat; 0 or 1 leaves them as-is
	Length      int
}

// Load reads all three tables and returns them validated.
func Load(src Source) (*Tables, error) {
	if src.Length <= 0 {
		src.Length = 5
	}

	var list []string
	var skipped int
	if err := withReader(src.WordsFile, "words.txt", func(r io.Reader) error {
		var err error
		list, skipped, err = ReadWordList(r, src.Length)
		return err
	}); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("word list has no %d letter words", src.Length)
	}
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("ignored words of the wrong length or alphabet")
	}

	var stats Stats
	if err := withReader(src.StatsFile, "stats.tsv", func(r io.Reader) error {
		var err error
		stats, err = ReadStats(r, src.StatsWeight)
		return err
	}); err != nil {
		return nil, fmt.Errorf("read word stats: %w", err)
	}

	var freqs Frequencies
	if src.FreqsFile != "" {
		if err := withReader(src.FreqsFile, "", func(r io.Reader) error {
			var err error
			freqs, err = ReadFrequencies(r)
			return err
		}); err != nil {
			return nil, fmt.Errorf("read letter freqs: %w", err)
		}
	}

	t, err := NewTables(list, freqs, stats, src.Length)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("words", len(t.Words)).
		Int("length", t.Length).
		Int("freqs", len(t.Freqs)).
		Int("stats", len(t.Stats)).
		Msg("loaded word tables")
	return t, nil
}

// withReader opens path, or the embedded asset when path is empty.
func withReader(path, embedded string, fn func(io.Reader) error) error {
	var (
		r   io.ReadCloser
		err error
	)
	if path != "" {
		r, err = os.Open(path)
	} else {
		r, err = assets.FS.Open(embedded)
	}
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}
