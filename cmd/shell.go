package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/matchup"
	"github.com/pable/botc-metrics/internal/rating"
	"github.com/pable/botc-metrics/internal/report"
	"github.com/pable/botc-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("botcmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("botcmetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <game-id>")
				continue
			}
			shellShow(db, args[0])
		case "leaderboard", "lb":
			minGames := rating.MinLeaderboardGames
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					minGames = n
				}
			}
			shellLeaderboard(db, minGames)
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			shellPlayer(db, strings.Join(args, " "))
		case "versus", "vs":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, "usage: versus <player-a> <player-b>")
				continue
			}
			shellVersus(db, args[0], args[1])
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored games"},
		{"show <game-id>", "show one game's grimoire"},
		{"leaderboard [min-games]", "ranked players (alias: lb)"},
		{"player <name>", "one player's rating and game history"},
		{"versus <a> <b>", "head-to-head record (alias: vs)"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-28s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	games, err := db.ListGames()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(games) == 0 {
		cMuted.Println("No games stored yet.")
		return
	}
	report.PrintGameList(os.Stdout, games)
}

func shellShow(db *storage.DB, arg string) {
	gameID, err := strconv.Atoi(arg)
	if err != nil {
		cError.Fprintf(os.Stderr, "invalid game id %q\n", arg)
		return
	}
	game, err := db.GetGame(gameID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if game == nil {
		cMuted.Printf("No game with id %d\n", gameID)
		return
	}
	report.PrintGameHeader(os.Stdout, *game)
	report.PrintParticipants(os.Stdout, *game, "")
}

func shellLeaderboard(db *storage.DB, minGames int) {
	games, err := db.AllGames()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	entries := rating.BuildLeaderboard(rating.Replay(games), minGames)
	if len(entries) == 0 {
		cMuted.Printf("No players with %d or more games.\n", minGames)
		return
	}
	report.PrintLeaderboard(os.Stdout, entries, nil, "")
}

func shellPlayer(db *storage.DB, name string) {
	games, err := db.AllGames()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	p, ok := rating.Replay(games)[name]
	if !ok {
		cMuted.Printf("No games recorded for %q\n", name)
		return
	}
	fmt.Fprintf(os.Stdout, "\n%s  |  Rating: %.1f  |  Record: %d-%d\n\n",
		p.Name, p.CurrentRating, p.Wins, p.Games-p.Wins)
	report.PrintRatingHistory(os.Stdout, p.RatingHistory)
}

func shellVersus(db *storage.DB, a, b string) {
	games, err := db.AllGames()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	r := matchup.Analyze(games, a, b)
	if r.TotalTogether == 0 {
		cMuted.Printf("%s and %s have no games together.\n", a, b)
		return
	}
	report.PrintMatchup(os.Stdout, r)
}
