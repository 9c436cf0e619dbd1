package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/model"
	"github.com/pable/botc-metrics/internal/rating"
	"github.com/pable/botc-metrics/internal/storage"
)

const analyzeSystemPrompt = `You are a Blood on the Clocktower results analyst. You are given structured
data from a game-tracking tool and a question from a player or storyteller.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable.
- Avoid generic Clocktower strategy advice unless it directly explains a
  pattern in the data.

Metrics glossary:
- Rating: Elo-style rating replayed over the full game log, starting at 1500.
  Each game moves every winner's team up and every loser's team down by the
  same per-team amount (at most 32 points).
- Win%: games won / games played. Good%/Evil% split the record by the
  player's final alignment.
- Rating history: rating after each game, in game order.
- Team: Good or Evil, as of the end of the game (roles like the Imp can
  change a player's team mid-game; "team" is always final).`

var (
	analyzeModel  string
	analyzeAPIKey string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzePlayerCmd = &cobra.Command{
	Use:   "player <name> <question>",
	Short: "Analyze a player's rating and record with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzePlayer,
}

var analyzeGameCmd = &cobra.Command{
	Use:   "game <game-id> <question>",
	Short: "Analyze a single game with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeGame,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")

	analyzeCmd.AddCommand(analyzePlayerCmd)
	analyzeCmd.AddCommand(analyzeGameCmd)
}

func runAnalyzePlayer(cmd *cobra.Command, args []string) error {
	name, question := args[0], args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.AllGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	p, ok := rating.Replay(games)[name]
	if !ok {
		return fmt.Errorf("no games recorded for %q", name)
	}

	contextJSON, err := buildPlayerContext(p)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

func runAnalyzeGame(cmd *cobra.Command, args []string) error {
	gameID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid game id %q: %w", args[0], err)
	}
	question := args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	game, err := db.GetGame(gameID)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("no game with id %d", gameID)
	}

	contextJSON, err := buildGameContext(*game)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// buildPlayerContext serialises one player's replayed state into compact JSON.
func buildPlayerContext(p *model.PlayerRatingState) (string, error) {
	type gameEntry struct {
		Game   int      `json:"game"`
		Date   string   `json:"date"`
		Script string   `json:"script"`
		Team   string   `json:"team"`
		Roles  []string `json:"roles"`
		Win    bool     `json:"win"`
		Change float64  `json:"rating_change"`
	}

	history := make([]gameEntry, 0, len(p.GameHistory))
	for _, o := range p.GameHistory {
		history = append(history, gameEntry{
			Game:   o.GameNumber,
			Date:   o.Date,
			Script: o.Script,
			Team:   o.FinalTeam.String(),
			Roles:  o.Roles,
			Win:    o.Win,
			Change: round2(o.RatingAfter - o.RatingBefore),
		})
	}

	doc := map[string]interface{}{
		"subject":        "player",
		"player":         p.Name,
		"current_rating": round2(p.CurrentRating),
		"record": map[string]interface{}{
			"games":      p.Games,
			"wins":       p.Wins,
			"good_games": p.GoodGames,
			"good_wins":  p.GoodWins,
			"evil_games": p.EvilGames,
			"evil_wins":  p.EvilWins,
		},
		"games": history,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// buildGameContext serialises a single game into compact JSON.
func buildGameContext(g model.GameRecord) (string, error) {
	type seatEntry struct {
		Name  string   `json:"name"`
		Team  string   `json:"team"`
		Start string   `json:"initial_team"`
		Roles []string `json:"roles"`
		Win   bool     `json:"win"`
	}

	seats := make([]seatEntry, 0, len(g.Participants))
	for _, p := range g.Participants {
		seats = append(seats, seatEntry{
			Name:  p.Name,
			Team:  p.FinalTeam.String(),
			Start: p.InitialTeam.String(),
			Roles: p.Roles,
			Win:   p.FinalTeam == g.WinningTeam,
		})
	}

	doc := map[string]interface{}{
		"subject":     "game",
		"game_id":     g.GameID,
		"date":        g.Date,
		"script":      g.Script,
		"storyteller": g.Storyteller,
		"winner":      g.WinningTeam.String(),
		"seats":       seats,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	if v < 0 {
		return -round2(-v)
	}
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
