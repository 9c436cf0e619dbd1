package matchup

import (
	"testing"

	"github.com/pable/botc-metrics/internal/model"
)

func seat(name string, team model.Team) model.Participant {
	return model.Participant{Name: name, FinalTeam: team, InitialTeam: team, Roles: []string{"Imp"}}
}

func makeGame(id int, winner model.Team, seats ...model.Participant) model.GameRecord {
	return model.GameRecord{
		GameID:       id,
		Date:         "2026-03-01 20:00:00",
		Script:       "Trouble Brewing",
		WinningTeam:  winner,
		Participants: seats,
	}
}

func TestAnalyze_NoSharedGames(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood, seat("Alice", model.TeamGood), seat("Carol", model.TeamEvil)),
	}
	r := Analyze(games, "Alice", "Bob")

	if r.TotalTogether != 0 || len(r.GameIDs) != 0 {
		t.Errorf("report = %+v, want empty", r)
	}
	if r.SameTeam.WinPct != 0 || r.SideA.WhenGood.WinPct != 0 {
		t.Error("zero-denominator percentages must be 0.0")
	}
}

func TestAnalyze_BucketsPartitionTotal(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood, seat("Alice", model.TeamGood), seat("Bob", model.TeamGood)),
		makeGame(2, model.TeamEvil, seat("Alice", model.TeamEvil), seat("Bob", model.TeamEvil)),
		makeGame(3, model.TeamGood, seat("Alice", model.TeamGood), seat("Bob", model.TeamEvil)),
		makeGame(4, model.TeamEvil, seat("Alice", model.TeamGood), seat("Bob", model.TeamEvil)),
		// Alice absent: must not count.
		makeGame(5, model.TeamGood, seat("Carol", model.TeamGood), seat("Bob", model.TeamEvil)),
	}
	r := Analyze(games, "Alice", "Bob")

	if r.TotalTogether != 4 {
		t.Fatalf("total = %d, want 4", r.TotalTogether)
	}
	if r.SameTeam.Games+r.OppositeGames != r.TotalTogether {
		t.Errorf("same %d + opposite %d != total %d", r.SameTeam.Games, r.OppositeGames, r.TotalTogether)
	}
	if r.BothGood.Games != 1 || r.BothGood.Wins != 1 {
		t.Errorf("both good = %+v", r.BothGood)
	}
	if r.BothEvil.Games != 1 || r.BothEvil.Wins != 1 {
		t.Errorf("both evil = %+v", r.BothEvil)
	}
	if r.SameTeam.Games != 2 || r.SameTeam.Wins != 2 {
		t.Errorf("same team = %+v", r.SameTeam)
	}
	want := []int{1, 2, 3, 4}
	if len(r.GameIDs) != len(want) {
		t.Fatalf("game ids = %v", r.GameIDs)
	}
	for i, id := range want {
		if r.GameIDs[i] != id {
			t.Errorf("game ids = %v, want %v", r.GameIDs, want)
			break
		}
	}
}

func TestAnalyze_OppositeSides(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood, seat("Alice", model.TeamGood), seat("Bob", model.TeamEvil)),
		makeGame(2, model.TeamEvil, seat("Alice", model.TeamGood), seat("Bob", model.TeamEvil)),
		makeGame(3, model.TeamEvil, seat("Alice", model.TeamEvil), seat("Bob", model.TeamGood)),
	}
	r := Analyze(games, "Alice", "Bob")

	if r.OppositeGames != 3 {
		t.Fatalf("opposite = %d, want 3", r.OppositeGames)
	}
	if r.SideA.Wins != 2 || r.SideB.Wins != 1 {
		t.Errorf("wins = %d vs %d, want 2 vs 1", r.SideA.Wins, r.SideB.Wins)
	}

	if r.SideA.WhenGood.Games != 2 || r.SideA.WhenGood.Wins != 1 {
		t.Errorf("A when good = %+v, want 1/2", r.SideA.WhenGood)
	}
	if r.SideA.WhenEvil.Games != 1 || r.SideA.WhenEvil.Wins != 1 {
		t.Errorf("A when evil = %+v, want 1/1", r.SideA.WhenEvil)
	}

	// B's when-good bucket is the set of games where A was evil.
	if r.SideB.WhenGood.Games != 1 || r.SideB.WhenGood.Wins != 0 {
		t.Errorf("B when good = %+v, want 0/1", r.SideB.WhenGood)
	}
	if r.SideB.WhenEvil.Games != 2 || r.SideB.WhenEvil.Wins != 1 {
		t.Errorf("B when evil = %+v, want 1/2", r.SideB.WhenEvil)
	}
}

func TestAnalyze_PercentRounding(t *testing.T) {
	games := []model.GameRecord{
		makeGame(1, model.TeamGood, seat("Alice", model.TeamGood), seat("Bob", model.TeamEvil)),
		makeGame(2, model.TeamEvil, seat("Alice", model.TeamGood), seat("Bob", model.TeamEvil)),
		makeGame(3, model.TeamEvil, seat("Alice", model.TeamGood), seat("Bob", model.TeamEvil)),
	}
	r := Analyze(games, "Alice", "Bob")

	if r.SideA.WinPct != 33.3 {
		t.Errorf("A win pct = %v, want 33.3", r.SideA.WinPct)
	}
	if r.SideB.WinPct != 66.7 {
		t.Errorf("B win pct = %v, want 66.7", r.SideB.WinPct)
	}
}
