package gamelog

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/botc-metrics/internal/model"
)

const legacyLog = `[
  {
    "game_id": 1,
    "date": "2026-05-01 20:00:00",
    "players": [
      {"name": "Alice", "team": "Good", "role": "Chef"},
      {"name": "Bob", "team": "Evil", "role": "Imp", "roles": ["Drunk", "Imp"], "initial_team": "Good"}
    ],
    "winning_team": "Evil",
    "game_mode": "Trouble Brewing",
    "story_teller": "Ana"
  }
]`

func TestDecode_LegacyDefaults(t *testing.T) {
	games, err := Decode(strings.NewReader(legacyLog))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("games = %d, want 1", len(games))
	}

	g := games[0]
	if g.GameID != 1 || g.Script != "Trouble Brewing" || g.Storyteller != "Ana" {
		t.Errorf("game = %+v", g)
	}
	if g.WinningTeam != model.TeamEvil {
		t.Errorf("winner = %v", g.WinningTeam)
	}

	// Alice has no roles list or initial_team: both default from the
	// single-role fields.
	alice := g.Participants[0]
	if len(alice.Roles) != 1 || alice.Roles[0] != "Chef" {
		t.Errorf("alice roles = %v", alice.Roles)
	}
	if alice.InitialTeam != model.TeamGood {
		t.Errorf("alice initial team = %v", alice.InitialTeam)
	}

	bob := g.Participants[1]
	if len(bob.Roles) != 2 || bob.Roles[0] != "Drunk" {
		t.Errorf("bob roles = %v", bob.Roles)
	}
	if bob.InitialTeam != model.TeamGood || bob.FinalTeam != model.TeamEvil {
		t.Errorf("bob teams = %v -> %v", bob.InitialTeam, bob.FinalTeam)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	games, err := Decode(strings.NewReader(legacyLog))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, games); err != nil {
		t.Fatalf("encode: %v", err)
	}

	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if len(again) != len(games) {
		t.Fatalf("round trip games = %d, want %d", len(again), len(games))
	}
	a, b := games[0], again[0]
	if a.GameID != b.GameID || a.Script != b.Script || a.WinningTeam != b.WinningTeam {
		t.Errorf("round trip changed the game: %+v vs %+v", a, b)
	}
	if len(a.Participants) != len(b.Participants) {
		t.Fatalf("participants = %d vs %d", len(a.Participants), len(b.Participants))
	}
	for i := range a.Participants {
		pa, pb := a.Participants[i], b.Participants[i]
		if pa.Name != pb.Name || pa.FinalTeam != pb.FinalTeam || pa.InitialTeam != pb.InitialTeam {
			t.Errorf("participant %d changed: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestEncodeRatings_NullPercentages(t *testing.T) {
	hundred := 100.0
	players := map[string]*model.PlayerRatingState{
		"Alice": {
			Name:          "Alice",
			CurrentRating: 1516,
			Games:         1,
			Wins:          1,
			GoodGames:     1,
			GoodWins:      1,
			RatingHistory: []model.RatingSnapshot{{
				GameNumber:    1,
				Date:          "2026-05-01 20:00:00",
				Rating:        1516,
				OverallWinPct: &hundred,
				GoodWinPct:    &hundred,
			}},
		},
	}

	var buf bytes.Buffer
	if err := EncodeRatings(&buf, players); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"evil_win_pct": null`) {
		t.Errorf("missing null evil pct in:\n%s", out)
	}
	if !strings.Contains(out, `"current_rating": 1516`) {
		t.Errorf("missing rating in:\n%s", out)
	}
}

func gzipLog(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(legacyLog)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func assertLegacyGame(t *testing.T, games []model.GameRecord) {
	t.Helper()
	if len(games) != 1 {
		t.Fatalf("games = %d, want 1", len(games))
	}
	g := games[0]
	if g.GameID != 1 || g.Script != "Trouble Brewing" || g.WinningTeam != model.TeamEvil {
		t.Errorf("game = %+v", g)
	}
	if len(g.Participants) != 2 {
		t.Errorf("participants = %d, want 2", len(g.Participants))
	}
}

func TestRead_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamelog.json")
	if err := os.WriteFile(path, []byte(legacyLog), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	games, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertLegacyGame(t, games)
}

func TestRead_GzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamelog.json.gz")
	if err := os.WriteFile(path, gzipLog(t), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	games, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertLegacyGame(t, games)
}

func TestRead_ZstdFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamelog.json.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	if _, err := enc.Write([]byte(legacyLog)); err != nil {
		t.Fatalf("zstd write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("zstd close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}

	games, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertLegacyGame(t, games)
}

func TestRead_URL(t *testing.T) {
	payload := gzipLog(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	games, err := Read(srv.URL + "/gamelog.json.gz")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertLegacyGame(t, games)
}

func TestRead_URLQueryStringKeepsSuffix(t *testing.T) {
	// A query string after the extension must not turn off decompression.
	payload := gzipLog(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	games, err := Read(srv.URL + "/gamelog.json.gz?token=abc")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertLegacyGame(t, games)
}

func TestRead_URLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Read(srv.URL + "/missing.json"); err == nil {
		t.Error("want error for HTTP 404")
	}
}
