// Package sqlite stores diary entries in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nutrimatch/backend/internal/domain"
)

const (
	dayLayout = "2006-01-02"
	// fixed-width so timestamps sort as text
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// DiaryStore is a domain.DiaryRepository backed by SQLite
type DiaryStore struct {
	db *sql.DB
}

// NewDiaryStore opens (or creates) the database at dbPath and applies the schema.
// Use ":memory:" for a throwaway database.
func NewDiaryStore(dbPath string) (*DiaryStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store := &DiaryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database
func (s *DiaryStore) Close() error {
	return s.db.Close()
}

func (s *DiaryStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS diary_entries (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        item_type TEXT NOT NULL,
        name TEXT NOT NULL,
        payload TEXT NOT NULL,
        logged_day TEXT NOT NULL,
        logged_at TEXT NOT NULL,
        created_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_diary_user_day ON diary_entries(user_id, logged_day);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Save inserts a diary entry
func (s *DiaryStore) Save(ctx context.Context, entry *domain.DiaryEntry) error {
	if entry == nil || entry.Estimate == nil {
		return fmt.Errorf("%w: entry has no estimate", domain.ErrInvalidRequest)
	}

	payload, err := json.Marshal(entry.Estimate)
	if err != nil {
		return fmt.Errorf("failed to encode estimate: %w", err)
	}

	query := `
        INSERT INTO diary_entries (id, user_id, item_type, name, payload, logged_day, logged_at, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	loggedAt := entry.LoggedAt.UTC()
	_, err = s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, string(entry.Estimate.ItemType()), estimateName(entry.Estimate),
		string(payload), loggedAt.Format(dayLayout), loggedAt.Format(timestampLayout),
		entry.CreatedAt.UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("failed to insert diary entry: %w", err)
	}

	return nil
}

// ListByDay returns the entries of a user logged on the UTC day of day,
// oldest first.
func (s *DiaryStore) ListByDay(ctx context.Context, userID string, day time.Time) ([]*domain.DiaryEntry, error) {
	query := `
        SELECT id, user_id, payload, logged_at, created_at
        FROM diary_entries
        WHERE user_id = ? AND logged_day = ?
        ORDER BY logged_at ASC, created_at ASC
    `
	rows, err := s.db.QueryContext(ctx, query, userID, day.UTC().Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query diary entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.DiaryEntry
	for rows.Next() {
		var (
			entry               domain.DiaryEntry
			payload             string
			loggedAt, createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &payload, &loggedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan diary entry: %w", err)
		}

		entry.Estimate, err = domain.DecodeEstimate([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to decode diary entry %s: %w", entry.ID, err)
		}
		if entry.LoggedAt, err = time.Parse(timestampLayout, loggedAt); err != nil {
			return nil, fmt.Errorf("failed to parse logged_at of %s: %w", entry.ID, err)
		}
		if entry.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at of %s: %w", entry.ID, err)
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Delete removes one entry of a user
func (s *DiaryStore) Delete(ctx context.Context, userID, entryID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = ? AND user_id = ?`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete diary entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete diary entry: %w", err)
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

func estimateName(e domain.Estimate) string {
	switch v := e.(type) {
	case *domain.FoodEstimate:
		return v.Name
	case *domain.ActivityEstimate:
		return v.Name
	}
	return ""
}
