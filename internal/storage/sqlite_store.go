package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/habitflow/habitflow/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the same whole-snapshot semantics as the JSON backend:
// every save rewrites all rows inside one transaction.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	join_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id               INTEGER PRIMARY KEY,
	user_id          INTEGER NOT NULL,
	name             TEXT NOT NULL,
	target_frequency INTEGER NOT NULL,
	category         TEXT NOT NULL,
	created_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS completions (
	habit_id INTEGER NOT NULL,
	day      TEXT NOT NULL,
	UNIQUE(habit_id, day)
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
`

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Load() (*Snapshot, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return EmptySnapshot(), nil
	}
	if err := s.open(); err != nil {
		return EmptySnapshot(), err
	}

	snap := EmptySnapshot()

	userRows, err := s.db.Query(`SELECT id, name, join_date FROM users ORDER BY id`)
	if err != nil {
		return EmptySnapshot(), fmt.Errorf("failed to read users: %w", err)
	}
	defer userRows.Close()
	for userRows.Next() {
		var r userRecord
		if err := userRows.Scan(&r.ID, &r.Name, &r.JoinDate); err != nil {
			return EmptySnapshot(), fmt.Errorf("failed to scan user: %w", err)
		}
		snap.Users = append(snap.Users, decodeUser(r))
	}
	if err := userRows.Err(); err != nil {
		return EmptySnapshot(), fmt.Errorf("failed to read users: %w", err)
	}

	habits, err := s.loadHabits()
	if err != nil {
		return EmptySnapshot(), err
	}
	snap.Habits = habits

	snap.NextUserID = s.metaValue("nextUserId", 1)
	snap.NextHabitID = s.metaValue("nextHabitId", 1)

	enforceCounters(snap)
	return snap, nil
}

func (s *SQLiteStore) loadHabits() ([]*models.Habit, error) {
	rows, err := s.db.Query(`SELECT id, user_id, name, target_frequency, category, created_at FROM habits ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	defer rows.Close()

	var records []habitRecord
	for rows.Next() {
		var r habitRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.TargetFrequency, &r.Category, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	habits := make([]*models.Habit, 0, len(records))
	for _, r := range records {
		days, err := s.loadCompletions(r.ID)
		if err != nil {
			return nil, err
		}
		r.Completions = days
		habits = append(habits, decodeHabit(r))
	}
	return habits, nil
}

func (s *SQLiteStore) loadCompletions(habitID int) ([]string, error) {
	rows, err := s.db.Query(`SELECT day FROM completions WHERE habit_id = ? ORDER BY day`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to read completions: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *SQLiteStore) metaValue(key string, fallback int) int {
	var v int
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return fallback
	}
	return v
}

func (s *SQLiteStore) Save(snap *Snapshot) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"users", "habits", "completions", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, u := range snap.Users {
		_, err := tx.Exec(`INSERT INTO users (id, name, join_date) VALUES (?, ?, ?)`,
			u.ID, u.Name, u.JoinDate.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to insert user %d: %w", u.ID, err)
		}
	}

	for _, h := range snap.Habits {
		_, err := tx.Exec(`INSERT INTO habits (id, user_id, name, target_frequency, category, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			h.ID, h.UserID, h.Name, h.TargetFrequency, string(h.Category), h.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to insert habit %d: %w", h.ID, err)
		}
		for _, c := range h.Completions {
			_, err := tx.Exec(`INSERT OR IGNORE INTO completions (habit_id, day) VALUES (?, ?)`,
				h.ID, c.Format(DayFormat))
			if err != nil {
				return fmt.Errorf("failed to insert completion for habit %d: %w", h.ID, err)
			}
		}
	}

	for key, value := range map[string]int{
		"nextUserId":  snap.NextUserID,
		"nextHabitId": snap.NextHabitID,
	} {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to write meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
