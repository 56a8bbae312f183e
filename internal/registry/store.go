package registry

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
)

// New creates a new registry Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const playerColumns = `id, name, cricket, badminton, tt, team, price, captain_for, contact_no`

// LoadPlayers returns every player in import order.
func (s *store) LoadPlayers() ([]auction.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + playerColumns + ` FROM players ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []auction.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ReplacePlayers swaps the whole registry in one transaction.
func (s *store) ReplacePlayers(players []auction.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM players`); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, cricket, badminton, tt, team, price, captain_for, contact_no, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, p := range players {
		_, err := stmt.Exec(p.ID, p.Name, p.Cricket.String(), p.Badminton.String(), p.TT.String(),
			string(p.Team), p.Price, string(p.CaptainFor), p.ContactNo, i)
		if err != nil {
			log.Error("Failed to insert player", "error", err, "playerID", p.ID)
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// RecordTransition writes a player's ownership fields and the matching activity
// entry atomically, then trims the log to keep entries.
func (s *store) RecordTransition(p auction.Player, entry auction.ActivityEntry, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec(`UPDATE players SET team = ?, price = ?, captain_for = ? WHERE id = ?`,
		string(p.Team), p.Price, string(p.CaptainFor), p.ID)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n != 1 {
		tx.Rollback()
		return fmt.Errorf("player %d not found", p.ID)
	}

	if err := appendActivity(tx, entry, keep); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// AppendActivity adds an entry that is not tied to a player transition.
func (s *store) AppendActivity(entry auction.ActivityEntry, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := appendActivity(tx, entry, keep); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func appendActivity(tx *sql.Tx, entry auction.ActivityEntry, keep int) error {
	_, err := tx.Exec(`INSERT INTO activity_log (id, created_at, category, message) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Time.UnixNano(), string(entry.Category), entry.Message)
	if err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	if keep <= 0 {
		return nil
	}
	_, err = tx.Exec(`
		DELETE FROM activity_log
		WHERE seq NOT IN (SELECT seq FROM activity_log ORDER BY seq DESC LIMIT ?)
	`, keep)
	if err != nil {
		return fmt.Errorf("failed to trim activity log: %w", err)
	}
	return nil
}

// LoadActivity returns up to limit entries, most recent first.
func (s *store) LoadActivity(limit int) ([]auction.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, created_at, category, message FROM activity_log ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []auction.ActivityEntry
	for rows.Next() {
		entry, err := scanActivity(rows)
		if err != nil {
			log.Error("Failed to scan activity row", "error", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LoadRules returns the persisted rules, or nil when none have been saved.
func (s *store) LoadRules() (*auction.Rules, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT key, value FROM auction_config`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	rules, err := rulesFromRows(values)
	if err != nil {
		return nil, err
	}
	return &rules, nil
}

// SaveRules upserts every rules key.
func (s *store) SaveRules(rules auction.Rules) error {
	values, err := rulesToRows(rules)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO auction_config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for key, value := range values {
		if _, err := stmt.Exec(key, value); err != nil {
			log.Error("Failed to save rules key", "error", err, "key", key)
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Stats counts sold and unsold players.
func (s *store) Stats() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sold, unsold int
	err := s.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN team != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN team = '' THEN 1 ELSE 0 END), 0)
		FROM players
	`).Scan(&sold, &unsold)
	return sold, unsold, err
}

// Clear deletes players and activity. Rules survive a reset.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, table := range []string{"players", "activity_log"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
