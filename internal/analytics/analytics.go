// Package analytics computes storyteller-scoped aggregates: per-script and
// per-category outcome balance, character win rates, and per-player records.
package analytics

import (
	"sort"
	"strings"

	"github.com/pable/botc-metrics/internal/model"
	"github.com/pable/botc-metrics/internal/scripts"
)

// AllStorytellers selects every game regardless of storyteller.
const AllStorytellers = "All"

// AllScripts selects every script in CharacterStats.
const AllScripts = "All"

// AllRoleTypes disables role-type filtering in CharacterStats.
const AllRoleTypes = "All"

// Analytics holds the aggregates for one storyteller filter. All fields are
// derived on construction; the methods only rank and filter.
type Analytics struct {
	Storyteller string
	Games       []model.GameRecord

	ScriptStats    map[string]*model.ScriptStats
	CategoryTotals map[string]*model.CategoryTotals
	PlayerStats    map[string]*model.PlayerAnalytics
}

// New filters allGames by storyteller and builds every aggregate in one pass
// per concern. The filter "All" keeps everything.
func New(allGames []model.GameRecord, storyteller string) *Analytics {
	a := &Analytics{
		Storyteller:    storyteller,
		ScriptStats:    make(map[string]*model.ScriptStats),
		CategoryTotals: make(map[string]*model.CategoryTotals),
		PlayerStats:    make(map[string]*model.PlayerAnalytics),
	}

	for _, g := range allGames {
		if storyteller != AllStorytellers && !MatchesStoryteller(g.Storyteller, storyteller) {
			continue
		}
		a.Games = append(a.Games, g)
	}

	a.buildScriptStats()
	a.buildPlayerStats()
	return a
}

// MatchesStoryteller reports whether a stored storyteller field matches a
// filter name. Fields may list several storytellers joined with "+"; each
// segment matches on a case-insensitive substring in either direction, so
// partial names like "rob" match "Robert" and vice versa.
func MatchesStoryteller(field, name string) bool {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return false
	}
	for _, part := range strings.Split(field, "+") {
		got := strings.ToLower(strings.TrimSpace(part))
		if got == "" {
			continue
		}
		if strings.Contains(got, want) || strings.Contains(want, got) {
			return true
		}
	}
	return false
}

func (a *Analytics) buildScriptStats() {
	for _, g := range a.Games {
		st, ok := a.ScriptStats[g.Script]
		if !ok {
			st = &model.ScriptStats{
				Script:   g.Script,
				Category: scripts.Categorize(g.Script),
			}
			a.ScriptStats[g.Script] = st
		}
		st.Games++
		switch g.WinningTeam {
		case model.TeamGood:
			st.GoodWins++
		case model.TeamEvil:
			st.EvilWins++
		}
	}

	for _, st := range a.ScriptStats {
		ct, ok := a.CategoryTotals[st.Category]
		if !ok {
			ct = &model.CategoryTotals{Category: st.Category}
			a.CategoryTotals[st.Category] = ct
		}
		ct.Games += st.Games
		ct.GoodWins += st.GoodWins
		ct.EvilWins += st.EvilWins
	}
}

func (a *Analytics) buildPlayerStats() {
	for _, g := range a.Games {
		for _, p := range g.Participants {
			ps, ok := a.PlayerStats[p.Name]
			if !ok {
				ps = &model.PlayerAnalytics{
					Name:    p.Name,
					Scripts: make(map[string]*model.WinLine),
					Roles:   make(map[string]*model.RoleLine),
				}
				a.PlayerStats[p.Name] = ps
			}

			win := p.FinalTeam == g.WinningTeam
			tally(&ps.WinLine, p.FinalTeam, win)

			line, ok := ps.Scripts[g.Script]
			if !ok {
				line = &model.WinLine{}
				ps.Scripts[g.Script] = line
			}
			tally(line, p.FinalTeam, win)

			// A player who held several roles in one game is credited to each.
			for _, role := range p.Roles {
				if role == "" {
					continue
				}
				rl, ok := ps.Roles[role]
				if !ok {
					rl = &model.RoleLine{}
					ps.Roles[role] = rl
				}
				rl.Games++
				if win {
					rl.Wins++
				}
			}
		}
	}
}

func tally(l *model.WinLine, team model.Team, win bool) {
	l.Games++
	if win {
		l.Wins++
	}
	switch team {
	case model.TeamGood:
		l.GoodGames++
		if win {
			l.GoodWins++
		}
	case model.TeamEvil:
		l.EvilGames++
		if win {
			l.EvilWins++
		}
	}
}

// Summary returns the overall good/evil balance of the filtered games.
// Percentages are 0.0, not nil, for an empty game set.
func (a *Analytics) Summary() model.AnalyticsSummary {
	s := model.AnalyticsSummary{TotalGames: len(a.Games)}
	for _, g := range a.Games {
		switch g.WinningTeam {
		case model.TeamGood:
			s.GoodWins++
		case model.TeamEvil:
			s.EvilWins++
		}
	}
	if s.TotalGames > 0 {
		s.GoodPct = float64(s.GoodWins) / float64(s.TotalGames) * 100
		s.EvilPct = float64(s.EvilWins) / float64(s.TotalGames) * 100
	}
	return s
}

// Script ranking sort keys.
const (
	SortByScript   = "script"
	SortByCategory = "category"
	SortByGames    = "games"
	SortByGoodWins = "good_wins"
	SortByEvilWins = "evil_wins"
	SortByGoodPct  = "good_pct"
	SortByEvilPct  = "evil_pct"
)

// ScriptStatsRanked returns the per-script stats ordered by sortKey.
// Descending is the default; unknown keys fall back to games played.
func (a *Analytics) ScriptStatsRanked(sortKey string, ascending bool) []model.ScriptStats {
	rows := make([]model.ScriptStats, 0, len(a.ScriptStats))
	for _, st := range a.ScriptStats {
		rows = append(rows, *st)
	}

	less := func(i, j model.ScriptStats) bool {
		switch sortKey {
		case SortByScript:
			return strings.ToLower(i.Script) < strings.ToLower(j.Script)
		case SortByCategory:
			return i.Category < j.Category
		case SortByGoodWins:
			return i.GoodWins < j.GoodWins
		case SortByEvilWins:
			return i.EvilWins < j.EvilWins
		case SortByGoodPct:
			return i.GoodPct() < j.GoodPct()
		case SortByEvilPct:
			return i.EvilPct() < j.EvilPct()
		default:
			return i.Games < j.Games
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
	return rows
}

// CategoryTotalRows returns category totals in display order, skipping
// categories with no games.
func (a *Analytics) CategoryTotalRows() []model.CategoryTotals {
	var rows []model.CategoryTotals
	for _, cat := range scripts.Categories() {
		if ct, ok := a.CategoryTotals[cat]; ok {
			rows = append(rows, *ct)
		}
	}
	return rows
}

// CharacterStats aggregates per-role outcomes across the filtered games,
// optionally restricted by script and role type, ordered by win percentage
// descending.
//
// Within a game each distinct role counts once regardless of how many
// players held it; the role wins if any team that held it won the game.
func (a *Analytics) CharacterStats(scriptFilter, roleTypeFilter string) []model.CharacterStat {
	acc := make(map[string]*model.CharacterStat)

	for _, g := range a.Games {
		if !scriptMatches(g.Script, scriptFilter) {
			continue
		}

		// role -> set of teams that held it in this game
		roleTeams := make(map[string]map[model.Team]struct{})
		for _, p := range g.Participants {
			role := p.FinalRole()
			if role == "" {
				continue
			}
			teams, ok := roleTeams[role]
			if !ok {
				teams = make(map[model.Team]struct{})
				roleTeams[role] = teams
			}
			teams[p.FinalTeam] = struct{}{}
		}

		for role, teams := range roleTeams {
			cs, ok := acc[role]
			if !ok {
				cs = &model.CharacterStat{Role: role, RoleType: scripts.RoleType(role)}
				acc[role] = cs
			}
			cs.Games++
			if _, won := teams[g.WinningTeam]; won {
				cs.Wins++
			}
		}
	}

	var rows []model.CharacterStat
	for _, cs := range acc {
		if roleTypeFilter != "" && roleTypeFilter != AllRoleTypes && cs.RoleType != roleTypeFilter {
			continue
		}
		rows = append(rows, *cs)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinPct() != rows[j].WinPct() {
			return rows[i].WinPct() > rows[j].WinPct()
		}
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		return rows[i].Role < rows[j].Role
	})
	return rows
}

func scriptMatches(script, filter string) bool {
	switch filter {
	case "", AllScripts:
		return true
	case scripts.CategoryNormal, scripts.CategoryTeensyville:
		return scripts.Categorize(script) == filter
	default:
		return script == filter
	}
}

// PlayerRows returns per-player aggregates ordered by games played
// descending, name ascending on ties.
func (a *Analytics) PlayerRows() []model.PlayerAnalytics {
	rows := make([]model.PlayerAnalytics, 0, len(a.PlayerStats))
	for _, ps := range a.PlayerStats {
		rows = append(rows, *ps)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
