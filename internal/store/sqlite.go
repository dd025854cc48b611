// internal/store/sqlite.go
//
// Simulation run history in SQLite.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Saving and listing batch runs with their rounds-to-solve histograms.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// DB wraps the run-history database.
type DB struct {
	*sql.DB
}

// OpenDB opens (and creates if missing) a SQLite database file. The parent
// directory of dsn is created when needed.
func OpenDB(dsn string) (*DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return &DB{DB: db}, nil
}

// Migrate applies the embedded sql/*.sql files in lexical order, each in its
// own transaction, skipping those already recorded.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	files, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := assets.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Run is one stored simulation batch.
type Run struct {
	ID         string        `json:"id"`
	Created    time.Time     `json:"created"`
	Games      int           `json:"games"`
	Solved     int           `json:"solved"`
	Unsolved   int           `json:"unsolved"`
	Failed     int           `json:"failed"`
	Threshold  float64       `json:"threshold"`
	FirstGuess string        `json:"firstGuess,omitempty"`
	MaxRounds  int           `json:"maxRounds,omitempty"`
	Exact      bool          `json:"exact,omitempty"`
	Elapsed    time.Duration `json:"elapsedNs"`
	Mean       float64       `json:"meanRounds"`
	Histogram  map[int]int   `json:"histogram"`
}

// NewRun summarizes a finished batch. The ID and creation time are assigned
// by SaveRun when left empty.
func NewRun(res *game.BatchResult, threshold float64, opts game.Options) Run {
	hist := make(map[int]int, len(res.Histogram))
	for r, n := range res.Histogram {
		hist[r] = n
	}
	return Run{
		Games:      res.Total(),
		Solved:     res.Solved(),
		Unsolved:   res.Unsolved,
		Failed:     res.Failed,
		Threshold:  threshold,
		FirstGuess: opts.FirstGuess,
		MaxRounds:  opts.MaxRounds,
		Exact:      opts.Exact,
		Elapsed:    res.Elapsed,
		Mean:       res.Mean(),
		Histogram:  hist,
	}
}

// SaveRun inserts r and its histogram rows, returning the stored run.
func (db *DB) SaveRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Created.IsZero() {
		r.Created = time.Now()
	}
	r.Created = r.Created.UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO runs
            (id, created_at, games, solved, unsolved, failed, threshold,
             first_guess, max_rounds, exact, elapsed_ms, mean_rounds)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Created.Format(createdLayout), r.Games, r.Solved, r.Unsolved, r.Failed,
		r.Threshold, r.FirstGuess, r.MaxRounds, r.Exact, r.Elapsed.Milliseconds(), r.Mean,
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	for rounds, n := range r.Histogram {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_rounds (run_id, rounds, count) VALUES (?, ?, ?)`,
			r.ID, rounds, n,
		); err != nil {
			return Run{}, fmt.Errorf("insert run rounds: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	// Stored precision.
	r.Elapsed = time.Duration(r.Elapsed.Milliseconds()) * time.Millisecond
	return r, nil
}

// createdLayout sorts lexically in time order.
const createdLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `id, created_at, games, solved, unsolved, failed, threshold,
        first_guess, max_rounds, exact, elapsed_ms, mean_rounds`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r         Run
		created   string
		elapsedMs int64
	)
	if err := s.Scan(&r.ID, &created, &r.Games, &r.Solved, &r.Unsolved, &r.Failed, &r.Threshold,
		&r.FirstGuess, &r.MaxRounds, &r.Exact, &elapsedMs, &r.Mean); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(createdLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("run %s created_at: %w", r.ID, err)
	}
	r.Created = t
	r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return r, nil
}

// GetRun fetches one run with its histogram, or ErrNotFound.
func (db *DB) GetRun(ctx context.Context, id string) (Run, error) {
	row := db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id=?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}
	if r.Histogram, err = db.histogram(ctx, r.ID); err != nil {
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first. Default limit is 20.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
        SELECT `+runColumns+`
        FROM runs
        ORDER BY created_at DESC, id ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	out := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range out {
		if out[i].Histogram, err = db.histogram(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (db *DB) histogram(ctx context.Context, id string) (map[int]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT rounds, count FROM run_rounds WHERE run_id=?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int]int{}
	for rows.Next() {
		var rounds, n int
		if err := rows.Scan(&rounds, &n); err != nil {
			return nil, err
		}
		out[rounds] = n
	}
	return out, rows.Err()
}

