// internal/store/parquet.go
//
// Per-game export of a batch to parquet.
// Responsibilities:
//   - Flatten a BatchResult into one row per game.
//   - Write zstd-compressed parquet via a temp file and rename.

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// GameRow is one simulated game in the per-game export.
type GameRow struct {
	RunID   string `parquet:"run_id,dict"`
	GameID  string `parquet:"game_id"`
	Answer  string `parquet:"answer"`
	Solved  bool   `parquet:"solved"`
	Failed  bool   `parquet:"failed"`
	Rounds  int32  `parquet:"rounds"`
	Guesses string `parquet:"guesses"` // space-separated, in order
	Codes   string `parquet:"codes"`   // feedback codes matching Guesses
}

// GameRows flattens a batch into export rows, in answer order.
func GameRows(runID string, res *game.BatchResult) []GameRow {
	out := make([]GameRow, 0, len(res.Games))
	for _, g := range res.Games {
		guesses := make([]string, len(g.Turns))
		codes := make([]string, len(g.Turns))
		for i, t := range g.Turns {
			guesses[i], codes[i] = t.Guess, t.Code
		}
		out = append(out, GameRow{
			RunID:   runID,
			GameID:  g.GameID,
			Answer:  g.Answer,
			Solved:  g.Solved,
			Failed:  g.Failed,
			Rounds:  int32(g.Rounds),
			Guesses: strings.Join(guesses, " "),
			Codes:   strings.Join(codes, " "),
		})
	}
	return out
}

// WriteGamesParquet writes rows to outPath through a temp file and an
// atomic rename.
func WriteGamesParquet(outPath string, rows []GameRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "solver_game_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
