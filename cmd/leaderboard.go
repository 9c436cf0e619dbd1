package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/rating"
	"github.com/pable/botc-metrics/internal/report"
	"github.com/pable/botc-metrics/internal/storage"
)

var (
	lbMinGames int
	lbFrom     int
	lbTo       int
	lbFocus    string
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Replay all games and print the ranked leaderboard",
	Long: `Replays the full game log and ranks players by current rating. Players
with fewer than --min-games games are left out.

With both --from and --to set, a DELTA column shows each player's rating
movement across that game-id range (their rating just before --from compared
to their rating at --to).`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&lbMinGames, "min-games", rating.MinLeaderboardGames, "minimum games to be ranked")
	leaderboardCmd.Flags().IntVar(&lbFrom, "from", 0, "range start game id for the delta column")
	leaderboardCmd.Flags().IntVar(&lbTo, "to", 0, "range end game id for the delta column")
	leaderboardCmd.Flags().StringVar(&lbFocus, "player", "", "highlight this player's row")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.AllGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet.")
		return nil
	}

	players := rating.Replay(games)
	entries := rating.BuildLeaderboard(players, lbMinGames)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stdout, "No players with %d or more games.\n", lbMinGames)
		return nil
	}

	var deltas map[string]float64
	if cmd.Flags().Changed("from") && cmd.Flags().Changed("to") {
		deltas = make(map[string]float64)
		for _, e := range entries {
			if d, ok := rating.RatingDelta(e.History, lbFrom, lbTo); ok {
				deltas[e.Name] = d
			}
		}
	}

	report.PrintLeaderboard(os.Stdout, entries, deltas, lbFocus)
	return nil
}
