package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/botc-metrics/internal/model"
	"github.com/pable/botc-metrics/internal/report"
	"github.com/pable/botc-metrics/internal/storage"
)

var (
	addScript      string
	addStoryteller string
	addWinner      string
	addDate        string
	addGameID      int
	addGood        []string
	addEvil        []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one finished game",
	Long: `Records a single game from flags. Each --good/--evil flag is one seat in
"Name=Role" form; a player who changed roles lists the full history joined
with "+", last role final.

Example:
  botcmetrics add --script "Trouble Brewing" --storyteller Ana --winner evil \
    --good "Alice=Librarian" --good "Bob=Drunk+Imp" \
    --evil "Carol=Poisoner" --evil "Dave=Imp"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addScript, "script", "", "script played (required)")
	addCmd.Flags().StringVar(&addStoryteller, "storyteller", "", "storyteller name(s), joined with + for co-storytellers")
	addCmd.Flags().StringVar(&addWinner, "winner", "", "winning team: good or evil (required)")
	addCmd.Flags().StringVar(&addDate, "date", "", "game date (default: now, YYYY-MM-DD HH:MM:SS)")
	addCmd.Flags().IntVar(&addGameID, "id", 0, "game id (default: next free id)")
	addCmd.Flags().StringArrayVar(&addGood, "good", nil, "good seat as Name=Role[+Role...]")
	addCmd.Flags().StringArrayVar(&addEvil, "evil", nil, "evil seat as Name=Role[+Role...]")
	_ = addCmd.MarkFlagRequired("script")
	_ = addCmd.MarkFlagRequired("winner")
}

func runAdd(cmd *cobra.Command, args []string) error {
	winner := model.ParseTeam(addWinner)
	if winner == model.TeamUnknown {
		return fmt.Errorf("invalid --winner %q: want good or evil", addWinner)
	}
	if len(addGood)+len(addEvil) == 0 {
		return fmt.Errorf("no seats given: use --good and --evil")
	}

	g := model.GameRecord{
		Date:        addDate,
		Script:      addScript,
		Storyteller: addStoryteller,
		WinningTeam: winner,
	}
	if g.Date == "" {
		g.Date = time.Now().Format("2006-01-02 15:04:05")
	}

	for _, spec := range addGood {
		p, err := parseSeat(spec, model.TeamGood)
		if err != nil {
			return err
		}
		g.Participants = append(g.Participants, p)
	}
	for _, spec := range addEvil {
		p, err := parseSeat(spec, model.TeamEvil)
		if err != nil {
			return err
		}
		g.Participants = append(g.Participants, p)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	g.GameID = addGameID
	if g.GameID == 0 {
		g.GameID, err = db.NextGameID()
		if err != nil {
			return fmt.Errorf("allocate game id: %w", err)
		}
	}

	if err := db.InsertGame(g); err != nil {
		return fmt.Errorf("store game: %w", err)
	}

	report.PrintGameHeader(os.Stdout, g)
	report.PrintParticipants(os.Stdout, g, "")
	return nil
}

// parseSeat parses "Name=Role[+Role...]" into a participant on team.
// The final team equals the seat's team; a starting alignment swap can be
// marked with a leading "!" on the name (e.g. a Good start turned Evil).
func parseSeat(spec string, team model.Team) (model.Participant, error) {
	name, roleSpec, ok := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return model.Participant{}, fmt.Errorf("invalid seat %q: want Name=Role", spec)
	}

	initial := team
	if strings.HasPrefix(name, "!") {
		name = strings.TrimPrefix(name, "!")
		if team == model.TeamGood {
			initial = model.TeamEvil
		} else {
			initial = model.TeamGood
		}
	}

	var roles []string
	for _, r := range strings.Split(roleSpec, "+") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}

	return model.Participant{
		Name:        name,
		FinalTeam:   team,
		InitialTeam: initial,
		Roles:       roles,
	}, nil
}
