package storage

import (
	"fmt"

	"rconsh/internal/config"
	"rconsh/internal/log"
	"rconsh/internal/model"
)

// Storage represents the main storage implementation.
type Storage struct {
	db Database
	ProfileStore
	HistoryStore
}

// NewStorage opens the database named in cfg and initializes the schema.
func NewStorage(cfg *model.Config, logger *log.Logger) (*Storage, error) {
	return Open(config.DataPath(cfg, cfg.DatabaseFile), logger)
}

// Open opens the SQLite database at path and initializes the schema.
func Open(path string, logger *log.Logger) (*Storage, error) {
	db, err := NewDatabase(SQLite, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	if err := db.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open database '%s': %w", path, err)
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	storage := &Storage{db: db}
	storage.ProfileStore = NewProfileStorage(storage)
	storage.HistoryStore = NewHistoryStorage(storage)

	return storage, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetDatabase returns the database instance
func (s *Storage) GetDatabase() Database {
	return s.db
}
