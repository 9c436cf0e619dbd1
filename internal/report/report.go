// Package report renders engine output as console tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/botc-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// pctCell formats a nullable win percentage; players with no games of the
// relevant kind show as N/A.
func pctCell(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *p)
}

// PrintGameList prints the stored games table.
func PrintGameList(w io.Writer, games []model.GameSummary) {
	table := newTable(w)
	table.Header("ID", "DATE", "SCRIPT", "STORYTELLER", "WINNER", "PLAYERS")
	for _, g := range games {
		table.Append(
			strconv.Itoa(g.GameID),
			g.Date,
			g.Script,
			g.Storyteller,
			g.WinningTeam.String(),
			strconv.Itoa(g.PlayerCount),
		)
	}
	table.Render()
}

// PrintGameHeader prints a one-line summary for a single game.
func PrintGameHeader(w io.Writer, g model.GameRecord) {
	fmt.Fprintf(w, "\nGame #%d  |  Date: %s  |  Script: %s  |  Storyteller: %s  |  Winner: %s\n\n",
		g.GameID, g.Date, g.Script, g.Storyteller, g.WinningTeam.String())
}

// PrintParticipants prints the seat-by-seat grimoire for one game.
// If focus is non-empty, that player's row is marked with ">".
func PrintParticipants(w io.Writer, g model.GameRecord, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "TEAM", "START", "ROLES", "RESULT")
	for _, p := range g.Participants {
		marker := " "
		if focus != "" && p.Name == focus {
			marker = ">"
		}
		result := "Loss"
		if p.FinalTeam == g.WinningTeam {
			result = "Win"
		}
		table.Append(
			marker,
			p.Name,
			p.FinalTeam.String(),
			p.InitialTeam.String(),
			strings.Join(p.Roles, " → "),
			result,
		)
	}
	table.Render()
}

// PrintLeaderboard prints ranked entries. deltas, when non-nil, is keyed by
// player name and adds a rating movement column; players without a value in
// the requested range show "—". If focus is non-empty that row is marked.
func PrintLeaderboard(w io.Writer, entries []model.LeaderboardEntry, deltas map[string]float64, focus string) {
	table := newTable(w)
	if deltas != nil {
		table.Header(" ", "RANK", "NAME", "RATING", "DELTA", "GAMES", "WIN%", "GOOD%", "EVIL%")
	} else {
		table.Header(" ", "RANK", "NAME", "RATING", "GAMES", "WIN%", "GOOD%", "EVIL%")
	}

	for _, e := range entries {
		marker := " "
		if focus != "" && e.Name == focus {
			marker = ">"
		}
		cells := []any{
			marker,
			strconv.Itoa(e.Rank),
			e.Name,
			fmt.Sprintf("%.1f", e.Rating),
		}
		if deltas != nil {
			cell := "—"
			if d, ok := deltas[e.Name]; ok {
				cell = fmt.Sprintf("%+.1f", d)
			}
			cells = append(cells, cell)
		}
		cells = append(cells,
			strconv.Itoa(e.Games),
			pctCell(e.OverallWinPct),
			pctCell(e.GoodWinPct),
			pctCell(e.EvilWinPct),
		)
		table.Append(cells...)
	}
	table.Render()
}

// PrintRatingHistory prints a player's per-game rating snapshots.
func PrintRatingHistory(w io.Writer, history []model.RatingSnapshot) {
	table := newTable(w)
	table.Header("GAME", "DATE", "RATING", "WIN%", "GOOD%", "EVIL%")
	for _, s := range history {
		table.Append(
			strconv.Itoa(s.GameNumber),
			s.Date,
			fmt.Sprintf("%.1f", s.Rating),
			pctCell(s.OverallWinPct),
			pctCell(s.GoodWinPct),
			pctCell(s.EvilWinPct),
		)
	}
	table.Render()
}

// PrintGameHistory prints a player's per-game outcomes.
func PrintGameHistory(w io.Writer, history []model.GameOutcome) {
	table := newTable(w)
	table.Header("GAME", "DATE", "SCRIPT", "TEAM", "ROLES", "RESULT", "RATING", "CHANGE")
	for _, o := range history {
		result := "Loss"
		if o.Win {
			result = "Win"
		}
		table.Append(
			strconv.Itoa(o.GameNumber),
			o.Date,
			o.Script,
			o.FinalTeam.String(),
			strings.Join(o.Roles, " → "),
			result,
			fmt.Sprintf("%.1f", o.RatingAfter),
			fmt.Sprintf("%+.1f", o.RatingAfter-o.RatingBefore),
		)
	}
	table.Render()
}

// PrintAnalyticsSummary prints the overall balance line for a storyteller filter.
func PrintAnalyticsSummary(w io.Writer, storyteller string, s model.AnalyticsSummary) {
	fmt.Fprintf(w, "\nStoryteller: %s  |  Games: %d  |  Good wins: %d (%.1f%%)  |  Evil wins: %d (%.1f%%)\n\n",
		storyteller, s.TotalGames, s.GoodWins, s.GoodPct, s.EvilWins, s.EvilPct)
}

// PrintScriptStats prints per-script outcome stats followed by category totals.
func PrintScriptStats(w io.Writer, rows []model.ScriptStats, totals []model.CategoryTotals) {
	table := newTable(w)
	table.Header("SCRIPT", "CATEGORY", "GAMES", "GOOD W", "EVIL W", "GOOD%", "EVIL%")
	for _, r := range rows {
		table.Append(
			r.Script,
			r.Category,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.GoodWins),
			strconv.Itoa(r.EvilWins),
			fmt.Sprintf("%.1f%%", r.GoodPct()),
			fmt.Sprintf("%.1f%%", r.EvilPct()),
		)
	}
	for _, t := range totals {
		goodPct, evilPct := 0.0, 0.0
		if t.Games > 0 {
			goodPct = float64(t.GoodWins) / float64(t.Games) * 100
			evilPct = float64(t.EvilWins) / float64(t.Games) * 100
		}
		table.Append(
			t.Category+" Total",
			t.Category,
			strconv.Itoa(t.Games),
			strconv.Itoa(t.GoodWins),
			strconv.Itoa(t.EvilWins),
			fmt.Sprintf("%.1f%%", goodPct),
			fmt.Sprintf("%.1f%%", evilPct),
		)
	}
	table.Render()
}

// PrintCharacterStats prints per-role win rates.
func PrintCharacterStats(w io.Writer, rows []model.CharacterStat) {
	table := newTable(w)
	table.Header("ROLE", "TYPE", "GAMES", "WINS", "WIN%")
	for _, r := range rows {
		table.Append(
			r.Role,
			r.RoleType,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			fmt.Sprintf("%.1f%%", r.WinPct()),
		)
	}
	table.Render()
}

// PrintPlayerAnalytics prints per-player records under a storyteller filter.
func PrintPlayerAnalytics(w io.Writer, rows []model.PlayerAnalytics) {
	table := newTable(w)
	table.Header("NAME", "GAMES", "WINS", "WIN%", "GOOD G/W", "EVIL G/W", "ROLES")
	for _, r := range rows {
		winPct := 0.0
		if r.Games > 0 {
			winPct = float64(r.Wins) / float64(r.Games) * 100
		}
		table.Append(
			r.Name,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			fmt.Sprintf("%.1f%%", winPct),
			fmt.Sprintf("%d/%d", r.GoodGames, r.GoodWins),
			fmt.Sprintf("%d/%d", r.EvilGames, r.EvilWins),
			strconv.Itoa(len(r.Roles)),
		)
	}
	table.Render()
}

// PrintPlayerScriptBreakdown prints one player's per-script record.
func PrintPlayerScriptBreakdown(w io.Writer, p model.PlayerAnalytics) {
	names := make([]string, 0, len(p.Scripts))
	for s := range p.Scripts {
		names = append(names, s)
	}
	sort.Strings(names)

	table := newTable(w)
	table.Header("SCRIPT", "GAMES", "WINS", "GOOD G/W", "EVIL G/W")
	for _, s := range names {
		l := p.Scripts[s]
		table.Append(
			s,
			strconv.Itoa(l.Games),
			strconv.Itoa(l.Wins),
			fmt.Sprintf("%d/%d", l.GoodGames, l.GoodWins),
			fmt.Sprintf("%d/%d", l.EvilGames, l.EvilWins),
		)
	}
	table.Render()
}

// PrintMatchup prints the full head-to-head report for two players.
func PrintMatchup(w io.Writer, r model.MatchupReport) {
	fmt.Fprintf(w, "\n%s vs %s  |  Games together: %d  (same team: %d, opposite: %d)\n\n",
		r.PlayerA, r.PlayerB, r.TotalTogether, r.SameTeam.Games, r.OppositeGames)

	same := newTable(w)
	same.Header("SAME TEAM", "GAMES", "WINS", "WIN%")
	same.Append("Combined", strconv.Itoa(r.SameTeam.Games), strconv.Itoa(r.SameTeam.Wins), fmt.Sprintf("%.1f%%", r.SameTeam.WinPct))
	same.Append("Both Good", strconv.Itoa(r.BothGood.Games), strconv.Itoa(r.BothGood.Wins), fmt.Sprintf("%.1f%%", r.BothGood.WinPct))
	same.Append("Both Evil", strconv.Itoa(r.BothEvil.Games), strconv.Itoa(r.BothEvil.Wins), fmt.Sprintf("%.1f%%", r.BothEvil.WinPct))
	same.Render()

	fmt.Fprintln(w)
	opp := newTable(w)
	opp.Header("OPPOSITE TEAMS", "WINS", "WIN%", "AS GOOD", "AS EVIL")
	for _, side := range []model.MatchupSide{r.SideA, r.SideB} {
		opp.Append(
			side.Name,
			strconv.Itoa(side.Wins),
			fmt.Sprintf("%.1f%%", side.WinPct),
			fmt.Sprintf("%d/%d (%.1f%%)", side.WhenGood.Wins, side.WhenGood.Games, side.WhenGood.WinPct),
			fmt.Sprintf("%d/%d (%.1f%%)", side.WhenEvil.Wins, side.WhenEvil.Games, side.WhenEvil.WinPct),
		)
	}
	opp.Render()

	if len(r.GameIDs) > 0 {
		ids := make([]string, len(r.GameIDs))
		for i, id := range r.GameIDs {
			ids[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(w, "\nGames: %s\n", strings.Join(ids, ", "))
	}
}
