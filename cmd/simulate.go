// cmd/simulate.go
//
// `solver simulate`.
// Responsibilities:
//   - Play one verbose game (--answer) or a batch from a file (--answers).
//   - Print the rounds histogram, human-readable or TSV.
//   - Optionally store the run in SQLite and export every game to parquet.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the solver against known answers",
	Long: `Play the solver against one answer (--answer), printing each round, or
against every word in a file (--answers), printing a histogram of the number
of rounds each game took.`,
	Example: `  solver simulate --answer board
  solver simulate --answers answers.txt --guess1 slate --workers 8 --tsv`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringP("answer", "a", "", "Simulate a single game with this answer")
	f.StringP("answers", "A", "", "File of answers, one game per word")
	f.StringP("guess1", "1", "", "Force this first guess")
	f.Int("max-rounds", 0, "Give up after this many rounds (0 means never)")
	f.Bool("exact", false, "Score guesses with the game's repeated-letter rules")
	f.Int("workers", runtime.NumCPU(), "Games to play in parallel")
	f.BoolP("tsv", "t", false, "Print the histogram as tab-separated values")
	f.String("parquet", "", "Write every game of the batch to this parquet file")
	f.Bool("save", false, "Store the batch summary in the run history (DB_PATH)")
	f.String("db", "", "Run history database (overrides DB_PATH)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	answer, _ := f.GetString("answer")
	answersFile, _ := f.GetString("answers")
	guess1, _ := f.GetString("guess1")
	maxRounds, _ := f.GetInt("max-rounds")
	exact, _ := f.GetBool("exact")

	opts := game.Options{FirstGuess: strings.ToLower(guess1), MaxRounds: maxRounds, Exact: exact}
	if opts.FirstGuess != "" {
		if err := words.Validate(opts.FirstGuess, cfg.Words.Length); err != nil {
			return fmt.Errorf("--guess1: %w", err)
		}
	}

	switch {
	case answer != "":
		s, err := newSolver()
		if err != nil {
			return err
		}
		return playVerbose(cmd.Context(), cmd.OutOrStdout(), s, answer, opts)
	case answersFile != "":
		return runBatch(cmd, answersFile, opts)
	default:
		return errors.New("must provide --answer or --answers")
	}
}

// playVerbose plays one game, printing every round.
func playVerbose(ctx context.Context, out io.Writer, s *solver.Solver, answer string, opts game.Options) error {
	res, err := game.Simulate(ctx, s, answer, opts)
	for i, t := range res.Turns {
		fmt.Fprintf(out, "Round %d\n", i+1)
		fmt.Fprintf(out, "  Guessing %s\n", t.Guess)
		if t.Guess == res.Answer {
			fmt.Fprintln(out, "  Found it!")
		} else {
			fmt.Fprintf(out, "  Result:  %s\n", t.Code)
		}
	}
	if err != nil {
		var nc *solver.NoCandidatesError
		if errors.As(err, &nc) {
			fmt.Fprintf(out, "  No words left for %s\n", nc.Constraints.Format())
		}
		return err
	}
	if !res.Solved {
		fmt.Fprintf(out, "Gave up after %d rounds\n", len(res.Turns))
	}
	return nil
}

func readAnswers(path string, length int) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	list, skipped, err := words.ReadWordList(fh, length)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Str("file", path).Msg("ignored answers of the wrong length or alphabet")
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no answers found in %s", path)
	}
	return list, nil
}

func runBatch(cmd *cobra.Command, path string, opts game.Options) error {
	f := cmd.Flags()
	workers, _ := f.GetInt("workers")
	tsv, _ := f.GetBool("tsv")
	parquetPath, _ := f.GetString("parquet")
	save, _ := f.GetBool("save")
	if dbPath, _ := f.GetString("db"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	answers, err := readAnswers(path, cfg.Words.Length)
	if err != nil {
		return err
	}
	s, err := newSolver()
	if err != nil {
		return err
	}

	bopts := game.BatchOptions{Options: opts, Workers: workers}
	var bar *progressbar.ProgressBar
	if showProgress(zerolog.GlobalLevel()) {
		bar = progressbar.Default(int64(len(answers)), "simulating")
		bopts.OnProgress = func(done, total int) { _ = bar.Add(1) }
	}
	res, err := game.RunBatch(cmd.Context(), s, answers, bopts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	printHistogram(cmd.OutOrStdout(), res, tsv)

	run := store.NewRun(res, s.Threshold, opts)
	if save {
		db, err := store.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if run, err = db.SaveRun(cmd.Context(), run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		log.Info().Str("run", run.ID).Str("db", cfg.DBPath).Msg("run stored")
	}
	if parquetPath != "" {
		id := run.ID
		if id == "" {
			id = uuid.NewString()
		}
		if err := store.WriteGamesParquet(parquetPath, store.GameRows(id, res)); err != nil {
			return err
		}
		log.Info().Str("path", parquetPath).Int("games", res.Total()).Msg("games written")
	}
	return nil
}

// showProgress reports whether the batch progress bar is drawn. Debug
// output would interleave with it, and quiet runs want nothing on stderr.
func showProgress(lvl zerolog.Level) bool {
	return lvl == zerolog.InfoLevel || lvl == zerolog.WarnLevel
}

// printHistogram writes the round counts, preceded by the command line.
func printHistogram(out io.Writer, res *game.BatchResult, tsv bool) {
	fmt.Fprintln(out, "# "+strings.Join(os.Args, " "))
	for _, r := range res.Rounds() {
		n := res.Histogram[r]
		if tsv {
			fmt.Fprintf(out, "%d\t%d\t%0.2f\n", r, n, res.Percent(r))
		} else {
			fmt.Fprintf(out, "Round %2d: %d (%0.2f%%)\n", r, n, res.Percent(r))
		}
	}
	if res.Unsolved > 0 {
		pct := 100 * float64(res.Unsolved) / float64(res.Total())
		if tsv {
			fmt.Fprintf(out, "unsolved\t%d\t%0.2f\n", res.Unsolved, pct)
		} else {
			fmt.Fprintf(out, "Unsolved: %d (%0.2f%%)\n", res.Unsolved, pct)
		}
	}
}
