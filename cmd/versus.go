package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/matchup"
	"github.com/pable/botc-metrics/internal/report"
	"github.com/pable/botc-metrics/internal/storage"
)

var versusCmd = &cobra.Command{
	Use:   "versus <player-a> <player-b>",
	Short: "Head-to-head record between two players",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersus,
}

func runVersus(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.AllGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	r := matchup.Analyze(games, args[0], args[1])
	if r.TotalTogether == 0 {
		fmt.Fprintf(os.Stdout, "%s and %s have no games together.\n", args[0], args[1])
		return nil
	}

	report.PrintMatchup(os.Stdout, r)
	return nil
}
