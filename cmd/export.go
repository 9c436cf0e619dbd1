package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/gamelog"
	"github.com/pable/botc-metrics/internal/rating"
	"github.com/pable/botc-metrics/internal/storage"
)

var (
	exportOut     string
	exportRatings bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the game log (or replayed ratings) as JSON",
	Long: `Writes the stored games as a JSON game log, byte-compatible with logs the
tracker imports. With --ratings it instead replays the log and writes every
player's rating state (current rating, rating history, game history).`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportRatings, "ratings", false, "export replayed player ratings instead of the game log")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.AllGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	if exportRatings {
		if err := gamelog.EncodeRatings(w, rating.Replay(games)); err != nil {
			return err
		}
	} else {
		if err := gamelog.Encode(w, games); err != nil {
			return err
		}
	}

	if exportOut != "" {
		fmt.Fprintf(os.Stdout, "Wrote %s\n", exportOut)
	}
	return nil
}
