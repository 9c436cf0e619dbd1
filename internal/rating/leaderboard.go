package rating

import (
	"sort"

	"github.com/pable/botc-metrics/internal/model"
)

// BuildLeaderboard ranks players with at least minGames played, descending by
// current rating. Rating ties break on name so output order is reproducible.
// Ranks are assigned 1..N after the sort.
func BuildLeaderboard(players map[string]*model.PlayerRatingState, minGames int) []model.LeaderboardEntry {
	var entries []model.LeaderboardEntry
	for _, p := range players {
		if p.Games < minGames {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Name:          p.Name,
			Rating:        p.CurrentRating,
			Games:         p.Games,
			OverallWinPct: Pct(p.Wins, p.Games),
			GoodWinPct:    Pct(p.GoodWins, p.GoodGames),
			EvilWinPct:    Pct(p.EvilWins, p.EvilGames),
			History:       p.RatingHistory,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].Name < entries[j].Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RatingDelta reports how much a rating moved across the game-id span
// [startGame, endGame]. The baseline is the last snapshot strictly before
// startGame, or DefaultRating when the player had not played yet. The
// endpoint is the last snapshot at or before endGame; ok is false when the
// player had no recorded game by endGame or has no history at all.
func RatingDelta(history []model.RatingSnapshot, startGame, endGame int) (float64, bool) {
	if len(history) == 0 {
		return 0, false
	}

	before := DefaultRating
	for _, s := range history {
		if s.GameNumber >= startGame {
			break
		}
		before = s.Rating
	}

	after, found := 0.0, false
	for _, s := range history {
		if s.GameNumber > endGame {
			break
		}
		after, found = s.Rating, true
	}
	if !found {
		return 0, false
	}
	return after - before, true
}
