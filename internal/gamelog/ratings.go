package gamelog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pable/botc-metrics/internal/model"
)

type snapshotJSON struct {
	GameNumber    int      `json:"game_number"`
	Date          string   `json:"date"`
	Rating        float64  `json:"rating"`
	OverallWinPct *float64 `json:"overall_win_pct"`
	GoodWinPct    *float64 `json:"good_win_pct"`
	EvilWinPct    *float64 `json:"evil_win_pct"`
}

type outcomeJSON struct {
	GameNumber   int      `json:"game_number"`
	Date         string   `json:"date"`
	Team         string   `json:"team"`
	Role         string   `json:"role"`
	Win          bool     `json:"win"`
	RatingBefore float64  `json:"rating_before"`
	RatingAfter  float64  `json:"rating_after"`
	InitialTeam  string   `json:"initial_team"`
	Roles        []string `json:"roles"`
}

type playerStateJSON struct {
	Name          string         `json:"name"`
	CurrentRating float64        `json:"current_rating"`
	RatingHistory []snapshotJSON `json:"rating_history"`
	GameHistory   []outcomeJSON  `json:"game_history"`
}

// EncodeRatings writes replayed player states as an indented JSON array
// ordered by name, in the shape older trackers stored as players.json.
func EncodeRatings(w io.Writer, players map[string]*model.PlayerRatingState) error {
	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]playerStateJSON, 0, len(names))
	for _, name := range names {
		p := players[name]
		ps := playerStateJSON{
			Name:          p.Name,
			CurrentRating: p.CurrentRating,
			RatingHistory: make([]snapshotJSON, 0, len(p.RatingHistory)),
			GameHistory:   make([]outcomeJSON, 0, len(p.GameHistory)),
		}
		for _, s := range p.RatingHistory {
			ps.RatingHistory = append(ps.RatingHistory, snapshotJSON{
				GameNumber:    s.GameNumber,
				Date:          s.Date,
				Rating:        s.Rating,
				OverallWinPct: s.OverallWinPct,
				GoodWinPct:    s.GoodWinPct,
				EvilWinPct:    s.EvilWinPct,
			})
		}
		for _, o := range p.GameHistory {
			ps.GameHistory = append(ps.GameHistory, outcomeJSON{
				GameNumber:   o.GameNumber,
				Date:         o.Date,
				Team:         o.FinalTeam.String(),
				Role:         o.FinalRole(),
				Win:          o.Win,
				RatingBefore: o.RatingBefore,
				RatingAfter:  o.RatingAfter,
				InitialTeam:  o.InitialTeam.String(),
				Roles:        o.Roles,
			})
		}
		out = append(out, ps)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode ratings: %w", err)
	}
	return nil
}
