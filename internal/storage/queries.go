package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pable/botc-metrics/internal/model"
)

// GameExists returns true if a game with the given id is already stored.
func (db *DB) GameExists(gameID int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextGameID returns max(game_id)+1, starting at 1 for an empty store.
func (db *DB) NextGameID() (int, error) {
	var max sql.NullInt64
	err := db.conn.QueryRow("SELECT MAX(game_id) FROM games").Scan(&max)
	if err != nil {
		return 0, err
	}
	return int(max.Int64) + 1, nil
}

// InsertGame stores a game and its participants in one transaction.
// Uses INSERT OR REPLACE so re-importing a log is idempotent.
func (db *DB) InsertGame(g model.GameRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO games(game_id, date, script, storyteller, winning_team)
		VALUES (?, ?, ?, ?, ?)`,
		g.GameID, g.Date, g.Script, g.Storyteller, g.WinningTeam.String(),
	)
	if err != nil {
		return fmt.Errorf("insert game %d: %w", g.GameID, err)
	}

	// Replacing the game row leaves stale seats behind, so clear them first.
	if _, err := tx.Exec("DELETE FROM participants WHERE game_id = ?", g.GameID); err != nil {
		return fmt.Errorf("clear participants for game %d: %w", g.GameID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO participants(game_id, seat, name, final_team, initial_team, roles)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seat, p := range g.Participants {
		_, err = stmt.Exec(
			g.GameID, seat, p.Name,
			p.FinalTeam.String(), p.InitialTeam.String(),
			strings.Join(p.Roles, "+"),
		)
		if err != nil {
			return fmt.Errorf("insert participant %q in game %d: %w", p.Name, g.GameID, err)
		}
	}
	return tx.Commit()
}

// DeleteGame removes a game and its participants in one transaction.
// Returns false when no such game was stored.
func (db *DB) DeleteGame(gameID int) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM participants WHERE game_id = ?", gameID); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM games WHERE game_id = ?", gameID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// DeleteAllGames wipes the store.
func (db *DB) DeleteAllGames() error {
	if _, err := db.conn.Exec("DELETE FROM participants"); err != nil {
		return err
	}
	_, err := db.conn.Exec("DELETE FROM games")
	return err
}

// ListGames returns stored game summaries ordered by game_id.
func (db *DB) ListGames() ([]model.GameSummary, error) {
	rows, err := db.conn.Query(`
		SELECT g.game_id, g.date, g.script, g.storyteller, g.winning_team,
		       (SELECT COUNT(1) FROM participants p WHERE p.game_id = g.game_id)
		FROM games g ORDER BY g.game_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameSummary
	for rows.Next() {
		var s model.GameSummary
		var team string
		if err := rows.Scan(&s.GameID, &s.Date, &s.Script, &s.Storyteller, &team, &s.PlayerCount); err != nil {
			return nil, err
		}
		s.WinningTeam = model.ParseTeam(team)
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetGame loads one game with its participants. Returns (nil, nil) when the
// id is not stored.
func (db *DB) GetGame(gameID int) (*model.GameRecord, error) {
	var g model.GameRecord
	var team string
	err := db.conn.QueryRow(`
		SELECT game_id, date, script, storyteller, winning_team
		FROM games WHERE game_id = ?`, gameID).
		Scan(&g.GameID, &g.Date, &g.Script, &g.Storyteller, &team)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.WinningTeam = model.ParseTeam(team)

	g.Participants, err = db.gameParticipants(gameID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// AllGames loads every stored game, participants included, ordered by game_id.
// This is the input to every rating replay and analytics pass.
func (db *DB) AllGames() ([]model.GameRecord, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, date, script, storyteller, winning_team
		FROM games ORDER BY game_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameRecord
	for rows.Next() {
		var g model.GameRecord
		var team string
		if err := rows.Scan(&g.GameID, &g.Date, &g.Script, &g.Storyteller, &team); err != nil {
			return nil, err
		}
		g.WinningTeam = model.ParseTeam(team)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Participants, err = db.gameParticipants(out[i].GameID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (db *DB) gameParticipants(gameID int) ([]model.Participant, error) {
	rows, err := db.conn.Query(`
		SELECT name, final_team, initial_team, roles
		FROM participants WHERE game_id = ? ORDER BY seat`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Participant
	for rows.Next() {
		var p model.Participant
		var finalTeam, initialTeam, roles string
		if err := rows.Scan(&p.Name, &finalTeam, &initialTeam, &roles); err != nil {
			return nil, err
		}
		p.FinalTeam = model.ParseTeam(finalTeam)
		p.InitialTeam = model.ParseTeam(initialTeam)
		if roles != "" {
			p.Roles = strings.Split(roles, "+")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns stringified rows, for the
// sql command's table output.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(t)
			default:
				row[i] = fmt.Sprintf("%v", t)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
