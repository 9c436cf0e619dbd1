package model

import "strings"

// Team represents the alignment a player is on.
type Team int

const (
	TeamUnknown Team = 0
	TeamGood    Team = 1
	TeamEvil    Team = 2
)

func (t Team) String() string {
	switch t {
	case TeamGood:
		return "Good"
	case TeamEvil:
		return "Evil"
	default:
		return "?"
	}
}

// ParseTeam maps a stored alignment label back to its enum value.
// Matching is case-insensitive; anything unrecognised is TeamUnknown.
func ParseTeam(s string) Team {
	switch {
	case strings.EqualFold(s, "good"):
		return TeamGood
	case strings.EqualFold(s, "evil"):
		return TeamEvil
	default:
		return TeamUnknown
	}
}

// ---- Game log records ----

// Participant is one seat in a finished game.
type Participant struct {
	Name        string
	FinalTeam   Team
	InitialTeam Team
	Roles       []string // role history in order; the last entry is the final role
}

// FinalRole returns the last role the participant held, or "" if none recorded.
func (p Participant) FinalRole() string {
	if len(p.Roles) == 0 {
		return ""
	}
	return p.Roles[len(p.Roles)-1]
}

// GameRecord is one completed game as stored in the game log.
type GameRecord struct {
	GameID       int
	Date         string
	Script       string
	Storyteller  string
	WinningTeam  Team
	Participants []Participant
}

// Side returns the participants whose final team is t.
func (g GameRecord) Side(t Team) []Participant {
	var out []Participant
	for _, p := range g.Participants {
		if p.FinalTeam == t {
			out = append(out, p)
		}
	}
	return out
}

// Participant looks up a seat by exact player name.
func (g GameRecord) Participant(name string) (Participant, bool) {
	for _, p := range g.Participants {
		if p.Name == name {
			return p, true
		}
	}
	return Participant{}, false
}

// HasPlayer reports whether name appears as a participant.
func (g GameRecord) HasPlayer(name string) bool {
	_, ok := g.Participant(name)
	return ok
}

// GameSummary is the list-view projection of a stored game.
type GameSummary struct {
	GameID      int
	Date        string
	Script      string
	Storyteller string
	WinningTeam Team
	PlayerCount int
}

// ---- Rating state ----

// GameOutcome records one game from a single player's perspective.
type GameOutcome struct {
	GameNumber   int
	Date         string
	Script       string
	FinalTeam    Team
	InitialTeam  Team
	Roles        []string
	Win          bool
	RatingBefore float64
	RatingAfter  float64
}

// FinalRole returns the last role held in this game.
func (o GameOutcome) FinalRole() string {
	if len(o.Roles) == 0 {
		return ""
	}
	return o.Roles[len(o.Roles)-1]
}

// RatingSnapshot captures a player's rating and running win percentages
// immediately after one game. Percentage pointers are nil when the player
// has played zero games of that kind at snapshot time.
type RatingSnapshot struct {
	GameNumber    int
	Date          string
	Rating        float64
	OverallWinPct *float64
	GoodWinPct    *float64
	EvilWinPct    *float64
}

// PlayerRatingState is the full replayed state for one player.
type PlayerRatingState struct {
	Name          string
	CurrentRating float64

	Games     int
	Wins      int
	GoodGames int
	GoodWins  int
	EvilGames int
	EvilWins  int

	GameHistory   []GameOutcome
	RatingHistory []RatingSnapshot
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank   int
	Name   string
	Rating float64
	Games  int

	OverallWinPct *float64
	GoodWinPct    *float64
	EvilWinPct    *float64

	// History is carried along so rating movement over a game range can be
	// derived without replaying again.
	History []RatingSnapshot
}

// ---- Storyteller analytics aggregates ----

// ScriptStats counts outcomes for one script under a storyteller filter.
type ScriptStats struct {
	Script   string
	Category string
	Games    int
	GoodWins int
	EvilWins int
}

func (s ScriptStats) GoodPct() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.GoodWins) / float64(s.Games) * 100
}

func (s ScriptStats) EvilPct() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.EvilWins) / float64(s.Games) * 100
}

// CategoryTotals sums script stats across one script category.
type CategoryTotals struct {
	Category string
	Games    int
	GoodWins int
	EvilWins int
}

// AnalyticsSummary is the overall good/evil balance of a filtered game set.
type AnalyticsSummary struct {
	TotalGames int
	GoodWins   int
	EvilWins   int
	GoodPct    float64
	EvilPct    float64
}

// CharacterStat is the aggregate for one role across a filtered game set.
type CharacterStat struct {
	Role     string
	RoleType string
	Games    int
	Wins     int
}

func (c CharacterStat) WinPct() float64 {
	if c.Games == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Games) * 100
}

// WinLine is a games/wins tally split by alignment. It is the shape shared
// by a player's overall stats and their per-script breakdown.
type WinLine struct {
	Games     int
	Wins      int
	GoodGames int
	GoodWins  int
	EvilGames int
	EvilWins  int
}

// RoleLine is a games/wins tally for one role held by one player.
type RoleLine struct {
	Games int
	Wins  int
}

// PlayerAnalytics aggregates one player's results under a storyteller filter.
type PlayerAnalytics struct {
	Name    string
	WinLine
	Scripts map[string]*WinLine
	Roles   map[string]*RoleLine
}

// ---- Head-to-head ----

// MatchupBucket is a games/wins pair with a percentage rounded to one decimal.
type MatchupBucket struct {
	Games  int
	Wins   int
	WinPct float64
}

// MatchupSide is one player's view of the opposite-team games.
type MatchupSide struct {
	Name     string
	Wins     int
	WinPct   float64
	WhenGood MatchupBucket
	WhenEvil MatchupBucket
}

// MatchupReport is the full pairwise comparison between two players.
type MatchupReport struct {
	PlayerA string
	PlayerB string

	TotalTogether int

	SameTeam MatchupBucket
	BothGood MatchupBucket
	BothEvil MatchupBucket

	OppositeGames int
	SideA         MatchupSide
	SideB         MatchupSide

	GameIDs []int
}
