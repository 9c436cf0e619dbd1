// Package gamelog reads and writes the JSON game log format. The on-disk
// shape is a plain array of game objects and is kept byte-compatible with
// logs produced by earlier trackers.
package gamelog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/botc-metrics/internal/model"
)

type playerJSON struct {
	Name        string   `json:"name"`
	Team        string   `json:"team"`
	Role        string   `json:"role"`
	Roles       []string `json:"roles,omitempty"`
	InitialTeam string   `json:"initial_team,omitempty"`
}

type gameJSON struct {
	GameID      int          `json:"game_id"`
	Date        string       `json:"date"`
	Players     []playerJSON `json:"players"`
	WinningTeam string       `json:"winning_team"`
	GameMode    string       `json:"game_mode"`
	StoryTeller string       `json:"story_teller"`
}

// Decode reads a JSON array of games from r.
// Older logs omit roles and initial_team; roles defaults to [role] and
// initial_team to the final team.
func Decode(r io.Reader) ([]model.GameRecord, error) {
	var raw []gameJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode game log: %w", err)
	}

	games := make([]model.GameRecord, 0, len(raw))
	for _, g := range raw {
		rec := model.GameRecord{
			GameID:      g.GameID,
			Date:        g.Date,
			Script:      g.GameMode,
			Storyteller: g.StoryTeller,
			WinningTeam: model.ParseTeam(g.WinningTeam),
		}
		for _, p := range g.Players {
			team := model.ParseTeam(p.Team)
			roles := p.Roles
			if len(roles) == 0 && p.Role != "" {
				roles = []string{p.Role}
			}
			initial := model.ParseTeam(p.InitialTeam)
			if initial == model.TeamUnknown {
				initial = team
			}
			rec.Participants = append(rec.Participants, model.Participant{
				Name:        p.Name,
				FinalTeam:   team,
				InitialTeam: initial,
				Roles:       roles,
			})
		}
		games = append(games, rec)
	}
	return games, nil
}

// Encode writes games as an indented JSON array, matching the format the
// tracker has always stored on disk.
func Encode(w io.Writer, games []model.GameRecord) error {
	raw := make([]gameJSON, 0, len(games))
	for _, g := range games {
		out := gameJSON{
			GameID:      g.GameID,
			Date:        g.Date,
			GameMode:    g.Script,
			StoryTeller: g.Storyteller,
			WinningTeam: g.WinningTeam.String(),
		}
		for _, p := range g.Participants {
			out.Players = append(out.Players, playerJSON{
				Name:        p.Name,
				Team:        p.FinalTeam.String(),
				Role:        p.FinalRole(),
				Roles:       p.Roles,
				InitialTeam: p.InitialTeam.String(),
			})
		}
		raw = append(raw, out)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode game log: %w", err)
	}
	return nil
}

// Read loads a game log from a local path or an http(s) URL. Compressed
// logs (.gz, .zst) are decompressed transparently.
func Read(source string) ([]model.GameRecord, error) {
	// Suffix checks look at the name only, so URL query strings and
	// fragments do not hide a .gz or .zst extension.
	name := source
	var rc io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
		resp, err := http.Get(source) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("fetch game log: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch game log: HTTP %d", resp.StatusCode)
		}
		rc = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open game log: %w", err)
		}
		rc = f
	}
	defer rc.Close()

	var src io.Reader = rc
	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	return Decode(src)
}

// WriteFile stores games at path in the standard log format.
func WriteFile(path string, games []model.GameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := Encode(f, games); err != nil {
		return err
	}
	return nil
}
