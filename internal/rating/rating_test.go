package rating

import (
	"fmt"
	"math"
	"testing"

	"github.com/pable/botc-metrics/internal/model"
)

func seat(name string, team model.Team, roles ...string) model.Participant {
	return model.Participant{Name: name, FinalTeam: team, InitialTeam: team, Roles: roles}
}

func makeGame(id int, winner model.Team, seats ...model.Participant) model.GameRecord {
	return model.GameRecord{
		GameID:       id,
		Date:         fmt.Sprintf("2026-01-%02d 20:00:00", id),
		Script:       "Trouble Brewing",
		Storyteller:  "Ana",
		WinningTeam:  winner,
		Participants: seats,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSingleGame_SymmetricDeltas(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood,
			seat("Alice", model.TeamGood, "Empath"),
			seat("Bob", model.TeamEvil, "Imp"),
		),
	}
	players := Replay(games)

	// Equal 1500 ratings: expected score 0.5 each way, so the winner gains
	// exactly K/2 and the loser loses it.
	if got := players["Alice"].CurrentRating; !almostEqual(got, 1516) {
		t.Errorf("Alice rating = %v, want 1516", got)
	}
	if got := players["Bob"].CurrentRating; !almostEqual(got, 1484) {
		t.Errorf("Bob rating = %v, want 1484", got)
	}
}

func TestUnseenPlayersStartAtDefault(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamEvil,
			seat("Alice", model.TeamGood, "Chef"),
			seat("Bob", model.TeamEvil, "Imp"),
		),
	}
	players := Replay(games)

	for _, name := range []string{"Alice", "Bob"} {
		h := players[name].GameHistory
		if len(h) != 1 {
			t.Fatalf("%s history length = %d, want 1", name, len(h))
		}
		if !almostEqual(h[0].RatingBefore, DefaultRating) {
			t.Errorf("%s RatingBefore = %v, want %v", name, h[0].RatingBefore, DefaultRating)
		}
	}
}

func TestZeroSum_EqualTeamSizes(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood,
			seat("Alice", model.TeamGood, "Monk"),
			seat("Bob", model.TeamGood, "Slayer"),
			seat("Carol", model.TeamEvil, "Poisoner"),
			seat("Dave", model.TeamEvil, "Imp"),
		),
		makeGame(2, model.TeamEvil,
			seat("Alice", model.TeamGood, "Monk"),
			seat("Carol", model.TeamGood, "Saint"),
			seat("Bob", model.TeamEvil, "Imp"),
			seat("Dave", model.TeamEvil, "Baron"),
		),
	}
	players := Replay(games)

	// With equal team sizes the per-game deltas cancel exactly, so every
	// game's total movement is zero.
	for game := 1; game <= 2; game++ {
		sum := 0.0
		for _, p := range players {
			for _, o := range p.GameHistory {
				if o.GameNumber == game {
					sum += o.RatingAfter - o.RatingBefore
				}
			}
		}
		if !almostEqual(sum, 0) {
			t.Errorf("game %d delta sum = %v, want 0", game, sum)
		}
	}
}

func TestReplay_InputOrderIrrelevant(t *testing.T) {
	g1 := makeGame(1, model.TeamGood,
		seat("Alice", model.TeamGood, "Empath"),
		seat("Bob", model.TeamEvil, "Imp"),
	)
	g2 := makeGame(2, model.TeamEvil,
		seat("Alice", model.TeamGood, "Empath"),
		seat("Bob", model.TeamEvil, "Imp"),
	)

	forward := Replay([]model.GameRecord{g1, g2})
	reversed := Replay([]model.GameRecord{g2, g1})

	for name, p := range forward {
		q, ok := reversed[name]
		if !ok {
			t.Fatalf("player %s missing from reversed replay", name)
		}
		if !almostEqual(p.CurrentRating, q.CurrentRating) {
			t.Errorf("%s rating %v != %v", name, p.CurrentRating, q.CurrentRating)
		}
		for i := range p.RatingHistory {
			if p.RatingHistory[i].GameNumber != q.RatingHistory[i].GameNumber {
				t.Errorf("%s snapshot %d game mismatch", name, i)
			}
		}
	}
}

func TestReplay_Deterministic(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood,
			seat("Alice", model.TeamGood, "Chef"),
			seat("Bob", model.TeamEvil, "Imp"),
		),
		makeGame(2, model.TeamGood,
			seat("Alice", model.TeamGood, "Chef"),
			seat("Carol", model.TeamEvil, "Imp"),
		),
	}
	a := Replay(games)
	b := Replay(games)
	for name := range a {
		if !almostEqual(a[name].CurrentRating, b[name].CurrentRating) {
			t.Errorf("%s rating differs between runs", name)
		}
	}
}

func TestEmptySideAveragesDefault(t *testing.T) {
	// No evil seats at all: the evil side average falls back to 1500, so a
	// fresh good team still moves by exactly K/2.
	games := []model.GameRecord{
		makeGame(1, model.TeamGood,
			seat("Alice", model.TeamGood, "Mayor"),
			seat("Bob", model.TeamGood, "Soldier"),
		),
	}
	players := Replay(games)

	for _, name := range []string{"Alice", "Bob"} {
		if got := players[name].CurrentRating; !almostEqual(got, 1516) {
			t.Errorf("%s rating = %v, want 1516", name, got)
		}
	}
}

func TestThreeGameStreak_Iterative(t *testing.T) {
	var games []model.GameRecord
	for i := 1; i <= 3; i++ {
		games = append(games, makeGame(i, model.TeamGood,
			seat("X", model.TeamGood, "Empath"),
			seat("Y", model.TeamGood, "Chef"),
			seat("Z", model.TeamEvil, "Imp"),
			seat("W", model.TeamEvil, "Poisoner"),
		))
	}
	players := Replay(games)

	// Walk the same math by hand: each win shrinks the next expected gain.
	wantGood, wantEvil := DefaultRating, DefaultRating
	for i := 0; i < 3; i++ {
		exp := expectedScore(wantGood, wantEvil)
		deltaGood := KFactor * (1 - exp)
		deltaEvil := KFactor * (0 - (1 - exp))
		wantGood += deltaGood
		wantEvil += deltaEvil
	}

	if !almostEqual(players["X"].CurrentRating, players["Y"].CurrentRating) {
		t.Errorf("X and Y diverged: %v vs %v", players["X"].CurrentRating, players["Y"].CurrentRating)
	}
	if !almostEqual(players["Z"].CurrentRating, players["W"].CurrentRating) {
		t.Errorf("Z and W diverged: %v vs %v", players["Z"].CurrentRating, players["W"].CurrentRating)
	}
	if got := players["X"].CurrentRating; !almostEqual(got, wantGood) {
		t.Errorf("X rating = %v, want %v", got, wantGood)
	}
	if got := players["Z"].CurrentRating; !almostEqual(got, wantEvil) {
		t.Errorf("Z rating = %v, want %v", got, wantEvil)
	}

	// Winning against an ever-weaker team must pay less each time.
	h := players["X"].GameHistory
	d1 := h[0].RatingAfter - h[0].RatingBefore
	d2 := h[1].RatingAfter - h[1].RatingBefore
	d3 := h[2].RatingAfter - h[2].RatingBefore
	if !(d1 > d2 && d2 > d3) {
		t.Errorf("deltas not shrinking: %v, %v, %v", d1, d2, d3)
	}
	if d1 > KFactor {
		t.Errorf("delta %v exceeds K", d1)
	}
}

func TestSnapshotWinPercentages(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood,
			seat("Alice", model.TeamGood, "Chef"),
			seat("Bob", model.TeamEvil, "Imp"),
		),
		makeGame(2, model.TeamEvil,
			seat("Alice", model.TeamGood, "Chef"),
			seat("Bob", model.TeamEvil, "Imp"),
		),
	}
	players := Replay(games)

	alice := players["Alice"]
	first := alice.RatingHistory[0]
	if first.OverallWinPct == nil || !almostEqual(*first.OverallWinPct, 100) {
		t.Errorf("first overall pct = %v, want 100", first.OverallWinPct)
	}
	if first.GoodWinPct == nil || !almostEqual(*first.GoodWinPct, 100) {
		t.Errorf("first good pct = %v, want 100", first.GoodWinPct)
	}
	// Alice has never played evil, so the evil percentage stays unset
	// rather than reading as 0%.
	if first.EvilWinPct != nil {
		t.Errorf("evil pct = %v, want nil", *first.EvilWinPct)
	}

	second := alice.RatingHistory[1]
	if second.OverallWinPct == nil || !almostEqual(*second.OverallWinPct, 50) {
		t.Errorf("second overall pct = %v, want 50", second.OverallWinPct)
	}
}

func TestDuplicateGameIDs_KeepInputOrder(t *testing.T) {
	a := makeGame(7, model.TeamGood,
		seat("Alice", model.TeamGood, "Chef"),
		seat("Bob", model.TeamEvil, "Imp"),
	)
	b := makeGame(7, model.TeamEvil,
		seat("Alice", model.TeamGood, "Chef"),
		seat("Bob", model.TeamEvil, "Imp"),
	)
	players := Replay([]model.GameRecord{a, b})

	h := players["Alice"].GameHistory
	if len(h) != 2 {
		t.Fatalf("history length = %d, want 2", len(h))
	}
	if !h[0].Win || h[1].Win {
		t.Errorf("duplicate-id games replayed out of input order")
	}
}

func TestCountersMatchHistory(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood,
			seat("Alice", model.TeamGood, "Chef"),
			seat("Bob", model.TeamEvil, "Imp"),
		),
		makeGame(2, model.TeamEvil,
			seat("Alice", model.TeamEvil, "Imp"),
			seat("Bob", model.TeamGood, "Chef"),
		),
		makeGame(3, model.TeamEvil,
			seat("Alice", model.TeamGood, "Saint"),
			seat("Bob", model.TeamEvil, "Imp"),
		),
	}
	p := Replay(games)["Alice"]

	if p.Games != 3 || p.Wins != 2 {
		t.Errorf("overall = %d-%d, want 3 games 2 wins", p.Games, p.Wins)
	}
	if p.GoodGames != 2 || p.GoodWins != 1 {
		t.Errorf("good = %d/%d, want 2 games 1 win", p.GoodGames, p.GoodWins)
	}
	if p.EvilGames != 1 || p.EvilWins != 1 {
		t.Errorf("evil = %d/%d, want 1 game 1 win", p.EvilGames, p.EvilWins)
	}

	// Ratings chain: each game starts where the previous one ended.
	for i := 1; i < len(p.GameHistory); i++ {
		if !almostEqual(p.GameHistory[i].RatingBefore, p.GameHistory[i-1].RatingAfter) {
			t.Errorf("rating chain broken at game %d", i)
		}
	}
}
