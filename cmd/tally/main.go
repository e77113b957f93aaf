/*
main.go - tally command line interface

PURPOSE:
  Local-first CLI over the same SQLite database the server uses. Each
  subcommand opens the store, performs one operation, and prints the
  result. Scoring goes through habits.ScoreDay so the CLI and the HTTP
  API can never disagree about points.

USAGE:
  tally add "Morning run" --points 5
  tally day 10
  tally done run
  tally progress

SEE ALSO:
  - cmd/server/main.go: The HTTP front end over the same store
  - habits/scoring.go: The scoring entry point both front ends share
*/
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyhq/habit-engine/config"
	"github.com/tallyhq/habit-engine/habits"
	"github.com/tallyhq/habit-engine/store/sqlite"
)

var (
	flagConfig string
	flagDB     string
	flagDate   string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tally",
		Short:         "Track daily tasks and routines, score them, keep streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to TOML config file")
	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&flagDate, "date", "", "day to operate on, YYYY-MM-DD (default today)")

	cmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newDayCmd(),
		newProgressCmd(),
		newSeedCmd(),
	)

	return cmd
}

// openStore resolves the database path from flags and config, in that
// order, and opens it. Callers must invoke the returned cleanup.
func openStore() (*sqlite.Store, func(), error) {
	path := flagDB
	if path == "" {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return nil, nil, err
		}
		path = cfg.Storage.Path
	}

	store, err := sqlite.New(path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// resolveDate returns the --date flag parsed, or today in local time.
func resolveDate() (habits.Date, error) {
	if flagDate == "" {
		return habits.Today(time.Local), nil
	}
	return habits.ParseDate(flagDate)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tally:", err)
		os.Exit(1)
	}
}
