package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/gamelog"
	"github.com/pable/botc-metrics/internal/storage"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file|url>",
	Short: "Import a JSON game log into the database",
	Long: `Reads a game log (a JSON array of games) from a local file or an http(s)
URL and stores every game. Compressed logs (.gz, .zst) are handled
transparently. Re-importing the same log is idempotent: games are keyed by
game_id and replaced in place.

Example:
  botcmetrics import gamelog.json
  botcmetrics import https://example.org/gamelog.json.gz --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "delete all stored games before importing")
}

func runImport(cmd *cobra.Command, args []string) error {
	games, err := gamelog.Read(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if importReplace {
		if err := db.DeleteAllGames(); err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
	}

	for _, g := range games {
		if err := db.InsertGame(g); err != nil {
			return fmt.Errorf("store game %d: %w", g.GameID, err)
		}
	}
	fmt.Fprintf(os.Stdout, "Imported %d games from %s\n", len(games), args[0])
	return nil
}
