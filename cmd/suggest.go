// cmd/suggest.go
//
// `solver suggest FIXED PRESENT [ABSENT]`.
// Responsibilities:
//   - Parse the textual green/yellow/gray forms into a constraint Set.
//   - Print the confident guess, if any, then the top exploration words.

package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest FIXED PRESENT [ABSENT]",
	Short: "Suggest the next guess",
	Long: `Suggest the next guess from what the game has shown so far.

  FIXED    greens, dots for unknown places: "c..n"
  PRESENT  yellows per place; '/', '|' or '-' separate adjacent places and
           '.' skips an empty one: "i/an.pac"
  ABSENT   grays, any order: "xyz"

Prints "Guess: WORD (score: S)" when one candidate is likely enough to be the
answer, then the best words to play, one per line.`,
	Example: `  solver suggest c.... /a/// eiou
  solver suggest . . ""`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		absent := ""
		if len(args) == 3 {
			absent = args[2]
		}
		c, err := constraint.Parse(args[0], args[1], absent, cfg.Words.Length)
		if err != nil {
			return err
		}
		s, err := newSolver()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if !cmd.Flags().Changed("limit") {
			limit = cfg.SuggestLimit
		}

		sug, err := s.Suggest(c, limit)
		if err != nil {
			return err
		}
		log.Warn().Int("candidates", sug.Candidates).Msg("possible words left")

		out := cmd.OutOrStdout()
		if sug.Confident {
			fmt.Fprintf(out, "Guess: %s (score: %0.2f)\n", sug.Choice, sug.Score)
		}
		for _, w := range sug.Excluders {
			fmt.Fprintln(out, w)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntP("limit", "n", 15, "Only print the top N words (overrides SUGGEST_LIMIT)")
}
