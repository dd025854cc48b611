// cmd/root.go
//
// Root command.
// Responsibilities:
//   - Load configuration (.env + environment), then apply explicit flags.
//   - Configure the global zerolog level and console output.
//   - Build the Solver shared by the subcommands.

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// cfg is loaded from the environment before any command runs; flags that
// were set explicitly override it.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "solver",
	Short: "Wordle constraint solver and simulator",
	Long: `Suggests Wordle guesses from the greens, yellows and grays seen so far,
and simulates games to measure how many rounds the strategy needs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := applyFlags(cmd); err != nil {
			return err
		}
		setupLogging(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringP("word-list", "w", "", "Word list file, one word per line (overrides WORDS_FILE)")
	f.StringP("letter-freqs", "f", "", "Letter frequency table (overrides FREQS_FILE)")
	f.StringP("stats", "s", "", "Word statistics table (overrides STATS_FILE)")
	f.Float64("stats-weight", 0, "Raise each word statistic to this power (overrides STATS_WEIGHT)")
	f.IntP("word-length", "L", 5, "Word length (overrides WORD_LENGTH)")
	f.Float64P("guess-thres", "g", 0.05, "Commit to an answer once its likelihood reaches this (overrides GUESS_THRESHOLD)")
	f.Int("cache-size", 4096, "Ranked sets kept in the sort cache, 0 disables (overrides SORT_CACHE_SIZE)")
	f.String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	f.BoolP("quiet", "q", false, "Only log errors")
	f.BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(freqsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
}

// applyFlags copies explicitly set persistent flags over cfg.
func applyFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}
	set("word-list", func() (e error) { cfg.Words.WordsFile, e = f.GetString("word-list"); return })
	set("letter-freqs", func() (e error) { cfg.Words.FreqsFile, e = f.GetString("letter-freqs"); return })
	set("stats", func() (e error) { cfg.Words.StatsFile, e = f.GetString("stats"); return })
	set("stats-weight", func() (e error) { cfg.Words.StatsWeight, e = f.GetFloat64("stats-weight"); return })
	set("word-length", func() (e error) { cfg.Words.Length, e = f.GetInt("word-length"); return })
	set("guess-thres", func() (e error) { cfg.Threshold, e = f.GetFloat64("guess-thres"); return })
	set("cache-size", func() (e error) { cfg.SortCacheSize, e = f.GetInt("cache-size"); return })
	set("log-level", func() (e error) { cfg.LogLevel, e = f.GetString("log-level"); return })
	if err != nil {
		return err
	}
	if q, _ := f.GetBool("quiet"); q {
		cfg.LogLevel = "error"
	}
	if v, _ := f.GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}
	if cfg.Words.Length <= 0 {
		return fmt.Errorf("word length must be positive, got %d", cfg.Words.Length)
	}
	return nil
}

// setupLogging installs the global zerolog level, with a human-readable
// writer when stderr is a terminal.
func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		zerolog.SetGlobalLevel(lvl)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// newSolver loads the word tables and builds a Solver from cfg.
func newSolver() (*solver.Solver, error) {
	tb, err := words.Load(cfg.Words)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	log.Info().Int("words", len(tb.Words)).Int("length", tb.Length).Msg("read word list")

	var cache *solver.SortCache
	if cfg.SortCacheSize > 0 {
		cache = solver.NewSortCache(cfg.SortCacheSize)
	}
	return solver.New(tb, cfg.Threshold, cache), nil
}
