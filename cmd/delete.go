package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/storage"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <game-id>",
	Short: "Delete one stored game",
	Long: `Deletes a game and its participants. Ratings are replayed from the
remaining log on the next query, so downstream ratings adjust automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	gameID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid game id %q: %w", args[0], err)
	}

	if !deleteForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete game %d and shift every later rating.\n", gameID)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	deleted, err := db.DeleteGame(gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if !deleted {
		fmt.Fprintf(os.Stdout, "No game with id %d\n", gameID)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted game %d\n", gameID)
	return nil
}
