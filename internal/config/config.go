// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"rconsh/internal/model"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = DefaultPath()
)

// DefaultPath returns the config file location under the user config
// directory, or under ./data when that directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "data", "config.json")
	}
	return filepath.Join(dir, "rconsh", "config.json")
}

// SetPath changes the config file used by ConfigLoad and ConfigSave.
func SetPath(path string) {
	configPath = path
}

// Path returns the config file in use.
func Path() string {
	return configPath
}

// Default returns the default configuration rooted at dataDir.
func Default(dataDir string) *model.Config {
	return &model.Config{
		DataDir:          dataDir,
		DatabaseFile:     "rconsh.db",
		KeyFile:          "rconsh.key",
		HistoryFile:      "history",
		LogFolder:        filepath.Join(dataDir, "logs"),
		CommandLog:       "commands.log",
		ErrorLog:         "errors.log",
		InfoLog:          "info.log",
		LogLevel:         "info",
		DefaultAddress:   "localhost:25575",
		HelpCommand:      "/help",
		Timeout:          model.DefaultTimeout.String(),
		Color:            model.ColorAuto,
		FallbackCommands: false,
		HistoryLimit:     500,
	}
}

// ConfigLoad loads the configuration from the config file, which may
// contain comments and trailing commas. If the file doesn't exist, it
// creates a default configuration.
func ConfigLoad() error {
	dataDir := filepath.Dir(configPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := Default(dataDir)
		if err := ConfigSave(defaultConfig); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
		currentConfig = defaultConfig
		return nil
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &model.Config{}
	if err := json.Unmarshal(jsonc.ToJSON(file), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	backfill(cfg, Default(dataDir))

	currentConfig = cfg
	return nil
}

// backfill copies defaults into empty fields.
func backfill(cfg, def *model.Config) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&cfg.DataDir, def.DataDir)
	fill(&cfg.DatabaseFile, def.DatabaseFile)
	fill(&cfg.KeyFile, def.KeyFile)
	fill(&cfg.HistoryFile, def.HistoryFile)
	if cfg.LogFolder == "" {
		cfg.LogFolder = filepath.Join(cfg.DataDir, "logs")
	}
	fill(&cfg.CommandLog, def.CommandLog)
	fill(&cfg.ErrorLog, def.ErrorLog)
	fill(&cfg.InfoLog, def.InfoLog)
	fill(&cfg.LogLevel, def.LogLevel)
	fill(&cfg.DefaultAddress, def.DefaultAddress)
	fill(&cfg.HelpCommand, def.HelpCommand)
	fill(&cfg.Timeout, def.Timeout)
	fill(&cfg.Color, def.Color)
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
}

// ConfigSave saves the provided configuration to the config file.
func ConfigSave(cfg *model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// DataPath resolves name against the configured data directory. Absolute
// names are returned unchanged.
func DataPath(cfg *model.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.DataDir, name)
}
