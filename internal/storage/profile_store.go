package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rconsh/internal/model"
)

// ErrProfileNotFound is returned when no profile has the requested name.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore defines the interface for saved server profiles.
type ProfileStore interface {
	ProfileAdd(profile model.Profile) error
	ProfileGet(name string) (*model.Profile, error)
	ProfileList() ([]*model.Profile, error)
	ProfileDelete(name string) error
}

// ProfileStorage implements the ProfileStore interface.
type ProfileStorage struct {
	storage *Storage
}

// NewProfileStorage creates a new ProfileStorage instance.
func NewProfileStorage(storage *Storage) *ProfileStorage {
	return &ProfileStorage{storage: storage}
}

// ProfileAdd saves a profile, replacing the address and password of an
// existing profile with the same name.
func (s *ProfileStorage) ProfileAdd(profile model.Profile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	now := time.Now().UTC()
	_, err := s.storage.GetDatabase().Exec(`
		INSERT INTO profiles (name, address, password, created, updated) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET address = excluded.address, password = excluded.password, updated = excluded.updated`,
		profile.Name, profile.Address, profile.Password, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.Name, err)
	}
	return nil
}

// ProfileGet returns the profile called name.
func (s *ProfileStorage) ProfileGet(name string) (*model.Profile, error) {
	row := s.storage.GetDatabase().QueryRow(
		"SELECT name, address, password, created, updated FROM profiles WHERE name = ?", name)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", name, err)
	}
	return p, nil
}

// ProfileList returns all profiles ordered by name.
func (s *ProfileStorage) ProfileList() ([]*model.Profile, error) {
	rows, err := s.storage.GetDatabase().Query(
		"SELECT name, address, password, created, updated FROM profiles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// ProfileDelete removes the profile called name.
func (s *ProfileStorage) ProfileDelete(name string) error {
	result, err := s.storage.GetDatabase().Exec("DELETE FROM profiles WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row scanner) (*model.Profile, error) {
	var p model.Profile
	if err := row.Scan(&p.Name, &p.Address, &p.Password, &p.Created, &p.Updated); err != nil {
		return nil, err
	}
	return &p, nil
}
