package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/analytics"
	"github.com/pable/botc-metrics/internal/report"
	"github.com/pable/botc-metrics/internal/storage"
)

var (
	stSort     string
	stAsc      bool
	stScript   string
	stRoleType string
	stPlayer   string
)

var storytellerCmd = &cobra.Command{
	Use:   "storyteller [name]",
	Short: "Script, character and player analytics for a storyteller",
	Long: `Aggregates the game log for one storyteller (or all games when the name
is omitted). The name matches multi-storyteller fields ("Ana+Ben") on
case-insensitive partial names.

Prints four sections: overall balance, per-script stats with category totals,
character win rates (--script and --role-type narrow the set), and per-player
records. --player adds that player's per-script breakdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStoryteller,
}

func init() {
	storytellerCmd.Flags().StringVar(&stSort, "sort", analytics.SortByGames, "script sort key: script, category, games, good_wins, evil_wins, good_pct, evil_pct")
	storytellerCmd.Flags().BoolVar(&stAsc, "asc", false, "sort scripts ascending")
	storytellerCmd.Flags().StringVar(&stScript, "script", analytics.AllScripts, "character filter: All, Normal, Teensyville, or a script name")
	storytellerCmd.Flags().StringVar(&stRoleType, "role-type", analytics.AllRoleTypes, "character filter: All, Townsfolk, Outsiders, Minions, Demons, Travellers, Unknown")
	storytellerCmd.Flags().StringVar(&stPlayer, "player", "", "also print this player's per-script breakdown")
}

func runStoryteller(cmd *cobra.Command, args []string) error {
	name := analytics.AllStorytellers
	if len(args) == 1 {
		name = args[0]
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.AllGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	a := analytics.New(games, name)
	if len(a.Games) == 0 {
		fmt.Fprintf(os.Stdout, "No games found for storyteller %q\n", name)
		return nil
	}

	report.PrintAnalyticsSummary(os.Stdout, name, a.Summary())
	report.PrintScriptStats(os.Stdout, a.ScriptStatsRanked(stSort, stAsc), a.CategoryTotalRows())

	fmt.Fprintf(os.Stdout, "\nCharacters (script: %s, type: %s)\n", stScript, stRoleType)
	report.PrintCharacterStats(os.Stdout, a.CharacterStats(stScript, stRoleType))

	fmt.Fprintln(os.Stdout, "\nPlayers")
	report.PrintPlayerAnalytics(os.Stdout, a.PlayerRows())

	if stPlayer != "" {
		ps, ok := a.PlayerStats[stPlayer]
		if !ok {
			fmt.Fprintf(os.Stderr, "\nNo games for player %q under this storyteller\n", stPlayer)
			return nil
		}
		fmt.Fprintf(os.Stdout, "\nScripts for %s\n", stPlayer)
		report.PrintPlayerScriptBreakdown(os.Stdout, *ps)
	}
	return nil
}
