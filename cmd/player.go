package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/model"
	"github.com/pable/botc-metrics/internal/rating"
	"github.com/pable/botc-metrics/internal/report"
	"github.com/pable/botc-metrics/internal/storage"
)

var (
	playerTeam   string
	playerScript string
	playerLast   int
)

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Show one player's rating history and game record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerTeam, "team", "", "filter game history by alignment: good or evil")
	playerCmd.Flags().StringVar(&playerScript, "script", "", "filter game history by script")
	playerCmd.Flags().IntVar(&playerLast, "last", 0, "only show the N most recent games")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	name := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.AllGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	players := rating.Replay(games)
	p, ok := players[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "No games recorded for %q\n", name)
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n%s  |  Rating: %.1f  |  Record: %d-%d  |  Good: %d-%d  |  Evil: %d-%d\n\n",
		p.Name, p.CurrentRating,
		p.Wins, p.Games-p.Wins,
		p.GoodWins, p.GoodGames-p.GoodWins,
		p.EvilWins, p.EvilGames-p.EvilWins,
	)

	report.PrintRatingHistory(os.Stdout, p.RatingHistory)

	history := filterOutcomes(p.GameHistory, playerTeam, playerScript, playerLast)
	if len(history) > 0 {
		fmt.Fprintln(os.Stdout)
		report.PrintGameHistory(os.Stdout, history)
	}
	return nil
}

// filterOutcomes applies --team, --script, and --last to a game history.
func filterOutcomes(history []model.GameOutcome, team, script string, last int) []model.GameOutcome {
	want := model.ParseTeam(team)
	var out []model.GameOutcome
	for _, o := range history {
		if team != "" && o.FinalTeam != want {
			continue
		}
		if script != "" && !strings.EqualFold(o.Script, script) {
			continue
		}
		out = append(out, o)
	}
	if last > 0 && len(out) > last {
		out = out[len(out)-last:]
	}
	return out
}
