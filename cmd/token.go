// cmd/token.go
//
// `solver token`.
// Responsibilities:
//   - Print a signed JWT for the batch simulation endpoint.

package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/auth"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the batch simulation endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		days := cfg.JWTExpiresDays
		if cmd.Flags().Changed("days") {
			days, _ = cmd.Flags().GetInt("days")
		}
		if cfg.JWTSecret == config.DevSecret {
			log.Warn().Msg("JWT_SECRET is unset; signing with the development secret")
		}
		tok, exp, err := auth.Sign(cfg.JWTSecret, subject, time.Duration(days)*24*time.Hour)
		if err != nil {
			return err
		}
		log.Info().Str("subject", subject).Time("expires", exp).Msg("token signed")
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("subject", "operator", "Token subject")
	tokenCmd.Flags().Int("days", 14, "Days until the token expires (overrides JWT_EXPIRES_DAYS)")
}
