// cmd/serve.go
//
// `solver serve`.
// Responsibilities:
//   - Open and migrate the run history unless --no-db.
//   - Start the HTTP server on PORT.

package cmd

import (
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.Changed("port") {
			cfg.Port, _ = f.GetString("port")
		}
		if f.Changed("db") {
			cfg.DBPath, _ = f.GetString("db")
		}
		noDB, _ := f.GetBool("no-db")
		timeout, _ := f.GetDuration("timeout")

		s, err := newSolver()
		if err != nil {
			return err
		}

		o := httpserver.Options{
			Solver:       s,
			Sessions:     store.NewMemoryStore(),
			JWTSecret:    cfg.JWTSecret,
			ClientOrigin: cfg.ClientOrigin,
			SuggestLimit: cfg.SuggestLimit,
			Workers:      runtime.NumCPU(),
			Timeout:      timeout,
		}
		if !noDB {
			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			o.Runs = db
		}

		log.Info().Str("port", cfg.Port).Bool("runs", o.Runs != nil).Msg("starting solver server")
		return httpserver.New(o).Start(":" + cfg.Port)
	},
}

func init() {
	serveCmd.Flags().String("port", "5175", "Listen port (overrides PORT)")
	serveCmd.Flags().String("db", "", "Run history database (overrides DB_PATH)")
	serveCmd.Flags().Bool("no-db", false, "Run without run history")
	serveCmd.Flags().Duration("timeout", 30*time.Second, "Per-request time limit")
}
