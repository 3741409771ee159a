package storage

import (
	"fmt"
	"time"

	"rconsh/internal/model"
)

// HistoryStore defines the interface for the command history.
type HistoryStore interface {
	HistoryAdd(entry model.HistoryEntry, keep int) error
	HistoryRecent(limit int) ([]*model.HistoryEntry, error)
}

// HistoryStorage implements the HistoryStore interface.
type HistoryStorage struct {
	storage *Storage
}

// NewHistoryStorage creates a new HistoryStorage instance.
func NewHistoryStorage(storage *Storage) *HistoryStorage {
	return &HistoryStorage{storage: storage}
}

// HistoryAdd records a command. When keep is positive, only the newest
// keep entries are retained.
func (s *HistoryStorage) HistoryAdd(entry model.HistoryEntry, keep int) error {
	db := s.storage.GetDatabase()
	if entry.Created.IsZero() {
		entry.Created = time.Now().UTC()
	}

	if err := db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback()

	if _, err := db.Exec(
		"INSERT INTO history (address, command, success, created) VALUES (?, ?, ?, ?)",
		entry.Address, entry.Command, entry.Success, entry.Created,
	); err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}

	if keep > 0 {
		if _, err := db.Exec(
			"DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)", keep,
		); err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	}

	if err := db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// HistoryRecent returns up to limit of the newest entries, oldest first.
func (s *HistoryStorage) HistoryRecent(limit int) ([]*model.HistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.storage.GetDatabase().Query(
		"SELECT id, address, command, success, created FROM history ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Address, &e.Command, &e.Success, &e.Created); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
