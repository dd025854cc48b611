// cmd/freqs.go
//
// `solver freqs WORDLIST`.
// Responsibilities:
//   - Count letters per position, optionally weighted by word statistics.
//   - Print the table in the format --letter-freqs reads.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var freqsCmd = &cobra.Command{
	Use:   "freqs WORDLIST",
	Short: "Count letter frequencies per position",
	Long: `Count how often each letter appears in the word list, overall and at each
position, and print the table in the format --letter-freqs reads.

With --stats, each word counts stat² times instead of once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		statsPath, _ := f.GetString("stats")
		byTotal, _ := f.GetBool("sort")
		scale, _ := f.GetFloat64("weight")

		fh, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fh.Close()
		// Every word counts here, whatever its length.
		list, skipped, err := words.ReadWordList(fh, 0)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if skipped > 0 {
			log.Warn().Int("skipped", skipped).Msg("ignored words with characters outside a-z")
		}

		var stats words.Stats
		if statsPath != "" {
			sh, err := os.Open(statsPath)
			if err != nil {
				return err
			}
			defer sh.Close()
			if stats, err = words.ReadStats(sh, 0); err != nil {
				return fmt.Errorf("read %s: %w", statsPath, err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "# "+strings.Join(os.Args, " "))
		return words.WriteFrequencies(out, words.BuildFrequencies(list, stats, scale), byTotal)
	},
}

func init() {
	// --stats is inherited from the root command.
	freqsCmd.Flags().Bool("sort", false, "Sort letters by overall count instead of alphabetically")
	freqsCmd.Flags().Float64("weight", 1, "Multiply every count by this and round")
}
