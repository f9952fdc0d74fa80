// Package store persists budget snapshots in a local SQLite database so that
// separate invocations see the same data.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/allowance/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	dbFile       = "allowance.db"
	dateLayout   = "2006-01-02"
	activeUserKV = "active_user"
)

// Store is a SQLite-backed snapshot cache.
type Store struct {
	db *sql.DB
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "allowance")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "allowance")
}

// Path returns the database path inside dataDir, or inside DataDir when
// dataDir is empty.
func Path(dataDir string) string {
	if dataDir == "" {
		dataDir = DataDir()
	}
	return filepath.Join(dataDir, dbFile)
}

// Open opens or creates the database at dbPath and migrates it.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := migrateUp(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces everything stored for user with snap.
func (s *Store) SaveSnapshot(user model.UserID, snap model.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	// Deleting the record cascades to its categories and expenses.
	if _, err := tx.Exec("DELETE FROM records WHERE user_id = ?", string(user)); err != nil {
		return err
	}
	_, err = tx.Exec("INSERT INTO records (user_id, total_budget, saved_at) VALUES (?, ?, ?)",
		string(user), snap.TotalBudget, savedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, c := range snap.Categories {
		_, err = tx.Exec(`INSERT INTO categories (user_id, name, budget, spent, position)
			VALUES (?, ?, ?, ?, ?)`,
			string(user), c.Name, c.Budget, c.Spent, i)
		if err != nil {
			return err
		}
	}

	for i, e := range snap.Expenses {
		_, err = tx.Exec(`INSERT INTO expenses (id, user_id, date, category, description, amount, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, string(user), e.Date.Format(dateLayout), e.Category, e.Description, e.Amount, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the snapshot stored for user. found is false when
// nothing has been saved for that user yet.
func (s *Store) LoadSnapshot(user model.UserID) (snap model.Snapshot, found bool, err error) {
	var savedAt string
	err = s.db.QueryRow("SELECT total_budget, saved_at FROM records WHERE user_id = ?", string(user)).
		Scan(&snap.TotalBudget, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, err
	}
	snap.SavedAt, _ = time.Parse(time.RFC3339, savedAt)

	rows, err := s.db.Query(`SELECT name, budget, spent FROM categories
		WHERE user_id = ? ORDER BY position`, string(user))
	if err != nil {
		return model.Snapshot{}, false, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c model.CategorySnapshot
		if err := rows.Scan(&c.Name, &c.Budget, &c.Spent); err != nil {
			return model.Snapshot{}, false, err
		}
		snap.Categories = append(snap.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, false, err
	}

	expRows, err := s.db.Query(`SELECT id, date, category, description, amount FROM expenses
		WHERE user_id = ? ORDER BY position`, string(user))
	if err != nil {
		return model.Snapshot{}, false, err
	}
	defer func() { _ = expRows.Close() }()

	for expRows.Next() {
		var e model.Expense
		var date string
		if err := expRows.Scan(&e.ID, &date, &e.Category, &e.Description, &e.Amount); err != nil {
			return model.Snapshot{}, false, err
		}
		e.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return model.Snapshot{}, false, fmt.Errorf("expense %s: bad date %q: %w", e.ID, date, err)
		}
		snap.Expenses = append(snap.Expenses, e)
	}
	if err := expRows.Err(); err != nil {
		return model.Snapshot{}, false, err
	}

	return snap, true, nil
}

// SaveActiveUser records which user was active last.
func (s *Store) SaveActiveUser(user model.UserID) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)",
		activeUserKV, string(user))
	return err
}

// LoadActiveUser returns the last active user, if one was saved.
func (s *Store) LoadActiveUser() (model.UserID, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", activeUserKV).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return model.UserID(v), true, nil
}
