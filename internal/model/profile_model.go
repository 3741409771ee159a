package model

import "time"

// Profile is a saved server connection.
type Profile struct {
	Name     string    `json:"name" yaml:"name"`
	Address  string    `json:"address" yaml:"address"`
	Password []byte    `json:"-" yaml:"-"` // sealed
	Created  time.Time `json:"created" yaml:"created"`
	Updated  time.Time `json:"updated" yaml:"updated"`
}

// HasPassword reports whether a sealed password is stored.
func (p *Profile) HasPassword() bool {
	return len(p.Password) > 0
}

// HistoryEntry records one command sent to a server.
type HistoryEntry struct {
	ID      int64     `json:"id"`
	Address string    `json:"address"`
	Command string    `json:"command"`
	Success bool      `json:"success"`
	Created time.Time `json:"created"`
}
