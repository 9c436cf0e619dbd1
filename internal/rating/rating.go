// Package rating implements the Elo-style rating replay over a full game log.
//
// Ratings are path dependent: a game's delta depends on team averages that
// themselves depend on every earlier game. There is deliberately no
// incremental mode; every caller replays the complete log.
package rating

import (
	"math"
	"sort"

	"github.com/pable/botc-metrics/internal/model"
)

const (
	// DefaultRating is the rating assigned to a player before their first game.
	DefaultRating = 1500.0
	// KFactor scales the per-game rating movement.
	KFactor = 32.0
	// MinLeaderboardGames is the default games threshold for leaderboard entry.
	MinLeaderboardGames = 5

	ratingScale = 400.0
)

// Replay recomputes every player's rating state from scratch by replaying the
// game log in ascending game-id order. Games sharing an id keep their input
// order. The input slice is not modified; unseen players are created at
// DefaultRating on first appearance.
func Replay(games []model.GameRecord) map[string]*model.PlayerRatingState {
	ordered := make([]model.GameRecord, len(games))
	copy(ordered, games)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].GameID < ordered[j].GameID
	})

	players := make(map[string]*model.PlayerRatingState)
	get := func(name string) *model.PlayerRatingState {
		p, ok := players[name]
		if !ok {
			p = &model.PlayerRatingState{Name: name, CurrentRating: DefaultRating}
			players[name] = p
		}
		return p
	}

	for _, g := range ordered {
		good := g.Side(model.TeamGood)
		evil := g.Side(model.TeamEvil)

		avgGood := teamAverage(get, good)
		avgEvil := teamAverage(get, evil)

		expectedGood := expectedScore(avgGood, avgEvil)
		expectedEvil := 1 - expectedGood

		actualGood, actualEvil := 0.0, 1.0
		if g.WinningTeam == model.TeamGood {
			actualGood, actualEvil = 1.0, 0.0
		}

		deltaGood := KFactor * (actualGood - expectedGood)
		deltaEvil := KFactor * (actualEvil - expectedEvil)

		// Every member of a side gets the same delta.
		for _, part := range good {
			applyGame(get(part.Name), g, part, deltaGood)
		}
		for _, part := range evil {
			applyGame(get(part.Name), g, part, deltaEvil)
		}
	}
	return players
}

// expectedScore is the standard Elo expectation for a rating a facing b.
func expectedScore(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/ratingScale))
}

// teamAverage is the mean current rating of a side, or DefaultRating when the
// side is empty so the opposing expectation stays well defined.
func teamAverage(get func(string) *model.PlayerRatingState, side []model.Participant) float64 {
	if len(side) == 0 {
		return DefaultRating
	}
	sum := 0.0
	for _, p := range side {
		sum += get(p.Name).CurrentRating
	}
	return sum / float64(len(side))
}

func applyGame(p *model.PlayerRatingState, g model.GameRecord, part model.Participant, delta float64) {
	win := part.FinalTeam == g.WinningTeam
	before := p.CurrentRating
	p.CurrentRating += delta

	p.Games++
	if win {
		p.Wins++
	}
	switch part.FinalTeam {
	case model.TeamGood:
		p.GoodGames++
		if win {
			p.GoodWins++
		}
	case model.TeamEvil:
		p.EvilGames++
		if win {
			p.EvilWins++
		}
	}

	p.GameHistory = append(p.GameHistory, model.GameOutcome{
		GameNumber:   g.GameID,
		Date:         g.Date,
		Script:       g.Script,
		FinalTeam:    part.FinalTeam,
		InitialTeam:  part.InitialTeam,
		Roles:        part.Roles,
		Win:          win,
		RatingBefore: before,
		RatingAfter:  p.CurrentRating,
	})
	p.RatingHistory = append(p.RatingHistory, model.RatingSnapshot{
		GameNumber:    g.GameID,
		Date:          g.Date,
		Rating:        p.CurrentRating,
		OverallWinPct: Pct(p.Wins, p.Games),
		GoodWinPct:    Pct(p.GoodWins, p.GoodGames),
		EvilWinPct:    Pct(p.EvilWins, p.EvilGames),
	})
}

// Pct returns wins/games as a percentage, or nil when no games were played.
func Pct(wins, games int) *float64 {
	if games == 0 {
		return nil
	}
	v := float64(wins) / float64(games) * 100
	return &v
}
