// internal/game/batch.go
//
// Batch runner: simulate many independent games and aggregate a histogram
// of rounds-to-solve.
//
// Notes:
//   - Games share the read-only Solver (and its sort cache) and nothing else,
//     so they run on a bounded pool of goroutines (errgroup).
//   - A game that runs out of candidates is counted as failed/unsolved; any
//     other error aborts the batch.
//   - Timing and progress are observational only.

package game

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNoAnswers is returned when a batch is started without answers.
var ErrNoAnswers = errors.New("no answers to simulate")

// BatchOptions controls RunBatch.
type BatchOptions struct {
	Options
	Workers       int                   // parallel games; <= 0 means 1
	OnProgress    func(done, total int) // called after every game, serialized; demotes the periodic log to debug
	ProgressEvery time.Duration         // wall time between progress log lines; 0 means 60s
}

// BatchResult aggregates the games of one batch.
type BatchResult struct {
	Histogram map[int]int   `json:"histogram"` // rounds → solved games
	Games     []Result      `json:"games"`     // in answer order
	Unsolved  int           `json:"unsolved"`  // includes Failed
	Failed    int           `json:"failed"`    // games that ran out of candidates
	Elapsed   time.Duration `json:"elapsedNs"`
}

// Total is the number of games played.
func (b *BatchResult) Total() int { return len(b.Games) }

// Solved is the number of games won.
func (b *BatchResult) Solved() int { return len(b.Games) - b.Unsolved }

// Rounds returns the round counts present in the histogram, ascending.
func (b *BatchResult) Rounds() []int {
	out := make([]int, 0, len(b.Histogram))
	for r := range b.Histogram {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Percent is the share of all games solved in exactly n rounds.
func (b *BatchResult) Percent(n int) float64 {
	if len(b.Games) == 0 {
		return 0
	}
	return 100 * float64(b.Histogram[n]) / float64(len(b.Games))
}

// Mean is the average round count over solved games.
func (b *BatchResult) Mean() float64 {
	var sum, n int
	for r, c := range b.Histogram {
		sum += r * c
		n += c
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// RunBatch simulates one game per answer.
func RunBatch(ctx context.Context, s *solver.Solver, answers []string, opts BatchOptions) (*BatchResult, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	every := opts.ProgressEvery
	if every <= 0 {
		every = time.Minute
	}

	start := time.Now()
	results := make([]Result, len(answers))
	var (
		mu      sync.Mutex
		done    int
		lastLog = start
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, answer := range answers {
		i, answer := i, answer
		g.Go(func() error {
			r, err := Simulate(gctx, s, answer, opts.Options)
			if err != nil && !errors.Is(err, solver.ErrNoCandidates) {
				return err
			}
			results[i] = r

			mu.Lock()
			defer mu.Unlock()
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(done, len(answers))
			}
			if now := time.Now(); now.Sub(lastLog) > every {
				ev := log.Info()
				if opts.OnProgress != nil {
					ev = log.Debug()
				}
				ev.Int("game", done).Int("total", len(answers)).Msg("simulating")
				lastLog = now
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &BatchResult{Histogram: map[int]int{}, Games: results, Elapsed: time.Since(start)}
	for _, r := range results {
		switch {
		case r.Solved:
			out.Histogram[r.Rounds]++
		case r.Failed:
			out.Failed++
			out.Unsolved++
		default:
			out.Unsolved++
		}
	}
	log.Info().
		Int("games", len(answers)).
		Int("unsolved", out.Unsolved).
		Float64("minutes", out.Elapsed.Minutes()).
		Msg("batch finished")
	return out, nil
}
