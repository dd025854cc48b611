package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s := NewSession("abc", 5)
	require.NoError(t, st.Save(ctx, s))

	// mutating the caller's copy must not leak into the store
	s.Constraints.Fixed[0] = 'c'
	s.Turns = append(s.Turns, game.Turn{Guess: "crane", Code: "G...."})

	got, err := st.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, ".....", got.Constraints.FixedString())
	assert.Empty(t, got.Turns)

	got.Constraints.Fixed[1] = 'r'
	again, err := st.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, ".....", again.Constraints.FixedString())
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate(context.Background()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func sampleBatch() *game.BatchResult {
	return &game.BatchResult{
		Histogram: map[int]int{2: 1, 3: 2},
		Games: []game.Result{
			{GameID: "g1", Answer: "crane", Solved: true, Rounds: 2, Turns: []game.Turn{{Guess: "slate", Code: "..G.G"}, {Guess: "crane", Code: "GGGGG"}}},
			{GameID: "g2", Answer: "board", Solved: true, Rounds: 3},
			{GameID: "g3", Answer: "light", Solved: true, Rounds: 3},
			{GameID: "g4", Answer: "zzzzz", Failed: true},
		},
		Unsolved: 1,
		Failed:   1,
		Elapsed:  1500 * time.Millisecond,
	}
}

func TestRuns_SaveGetList(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	run := NewRun(sampleBatch(), 0.05, game.Options{FirstGuess: "slate", MaxRounds: 6})
	assert.Equal(t, 4, run.Games)
	assert.Equal(t, 3, run.Solved)
	assert.InDelta(t, 8.0/3.0, run.Mean, 1e-9)

	saved, err := db.SaveRun(ctx, run)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := db.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(saved, got); diff != "" {
		t.Fatalf("GetRun mismatch (-saved +got):\n%s", diff)
	}

	older := run
	older.Created = saved.Created.Add(-time.Hour)
	older.Exact = true
	olderSaved, err := db.SaveRun(ctx, older)
	require.NoError(t, err)

	list, err := db.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, olderSaved.ID, list[1].ID)
	assert.True(t, list[1].Exact)
	assert.Equal(t, map[int]int{2: 1, 3: 2}, list[1].Histogram)

	list, err = db.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRuns_NotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteGamesParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "games.parquet")
	rows := GameRows("run-1", sampleBatch())
	require.Len(t, rows, 4)
	assert.Equal(t, "slate crane", rows[0].Guesses)
	assert.Equal(t, "..G.G GGGGG", rows[0].Codes)

	require.NoError(t, WriteGamesParquet(path, rows))
	assert.NoFileExists(t, path+".tmp")

	got, err := parquet.ReadFile[GameRow](path)
	require.NoError(t, err)
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
