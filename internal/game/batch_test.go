package game

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func TestRunBatch_NoAnswers(t *testing.T) {
	s := defaultSolver(t)
	_, err := RunBatch(context.Background(), s, nil, BatchOptions{})
	assert.ErrorIs(t, err, ErrNoAnswers)
}

func TestRunBatch_Histogram(t *testing.T) {
	s := defaultSolver(t)
	answers := s.Tables.Words[:60]

	var calls atomic.Int32
	res, err := RunBatch(context.Background(), s, answers, BatchOptions{
		Workers:    4,
		OnProgress: func(done, total int) { calls.Add(1); assert.Equal(t, len(answers), total) },
	})
	require.NoError(t, err)

	assert.EqualValues(t, len(answers), calls.Load())
	assert.Equal(t, len(answers), res.Total())
	assert.Zero(t, res.Unsolved)
	assert.Equal(t, len(answers), res.Solved())

	var sum int
	var pct float64
	for _, r := range res.Rounds() {
		sum += res.Histogram[r]
		pct += res.Percent(r)
	}
	assert.Equal(t, len(answers), sum)
	assert.InDelta(t, 100, pct, 1e-9)
	assert.GreaterOrEqual(t, res.Mean(), 1.0)

	for i, g := range res.Games {
		assert.Equal(t, answers[i], g.Answer)
	}
}

func TestRunBatch_WorkersAgree(t *testing.T) {
	s := defaultSolver(t)
	answers := s.Tables.Words[100:140]

	serial, err := RunBatch(context.Background(), s, answers, BatchOptions{Workers: 1})
	require.NoError(t, err)
	parallel, err := RunBatch(context.Background(), s, answers, BatchOptions{Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, serial.Histogram, parallel.Histogram)
}

func TestRunBatch_CountsFailed(t *testing.T) {
	tb, err := words.NewTables([]string{"crane", "slate"}, nil, nil, 5)
	require.NoError(t, err)
	s := solver.New(tb, 0.05, nil)

	res, err := RunBatch(context.Background(), s, []string{"crane", "zzzzz"}, BatchOptions{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Unsolved)
	assert.Equal(t, 1, res.Solved())
	assert.True(t, res.Games[1].Failed)
}

func TestRunBatch_InvalidAnswerAborts(t *testing.T) {
	s := defaultSolver(t)
	_, err := RunBatch(context.Background(), s, []string{"crane", "toolong"}, BatchOptions{Workers: 2})
	assert.ErrorIs(t, err, words.ErrInvalidWord)
}

func TestBatchResult_Empty(t *testing.T) {
	var b BatchResult
	assert.Zero(t, b.Percent(3))
	assert.Zero(t, b.Mean())
}
