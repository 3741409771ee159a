// Package model defines the data structures shared across rconsh.
package model

import "time"

// DefaultTimeout applies when the configured timeout is empty or invalid.
const DefaultTimeout = 10 * time.Second

// Color modes accepted by Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the configuration settings for the shell.
type Config struct {
	DataDir          string `json:"data_dir"`
	DatabaseFile     string `json:"database_file"`
	KeyFile          string `json:"key_file"`
	HistoryFile      string `json:"history_file"`
	LogFolder        string `json:"log_folder"`
	CommandLog       string `json:"command_log"`
	ErrorLog         string `json:"error_log"`
	InfoLog          string `json:"info_log"`
	LogLevel         string `json:"log_level"`
	DefaultAddress   string `json:"default_address"`
	HelpCommand      string `json:"help_command"`
	Timeout          string `json:"timeout"`
	Color            string `json:"color"`
	FallbackCommands bool   `json:"fallback_commands"`
	HistoryLimit     int    `json:"history_limit"`
}

// RequestTimeout returns Timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}
