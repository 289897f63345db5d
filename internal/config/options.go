// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
)

// =============================================================================
// RUNTIME OPTIONS
// =============================================================================

// Environment variables consulted by ApplyEnvOverrides.
const (
	EnvHome     = "SIMPLEMEMO_HOME"
	EnvSettings = "SIMPLEMEMO_SETTINGS"
	EnvLogLevel = "SIMPLEMEMO_LOG_LEVEL"
)

// File names inside the app directory.
const (
	SettingsFileName = "settings.json"
	HistoryFileName  = "history.db"
	LogFileName      = "simplememo.log"
)

// Options are process-level options resolved from defaults, environment and
// command-line flags, in increasing precedence.
type Options struct {
	Home         string
	SettingsFile string
	LogLevel     string
	Slots        int
	NoHistory    bool
	NoWatch      bool
}

// DefaultOptions returns options rooted at ~/.simplememo.
func DefaultOptions() Options {
	return Options{
		Home:     defaultHome(),
		LogLevel: "info",
		Slots:    3,
	}
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".simplememo"
	}
	return filepath.Join(home, ".simplememo")
}

// ApplyEnvOverrides applies SIMPLEMEMO_* variables to o.
func (o *Options) ApplyEnvOverrides() {
	if v := os.Getenv(EnvHome); v != "" {
		o.Home = v
	}
	if v := os.Getenv(EnvSettings); v != "" {
		o.SettingsFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		o.LogLevel = v
	}
}

// SettingsPath returns the settings file location.
func (o Options) SettingsPath() string {
	if o.SettingsFile != "" {
		return o.SettingsFile
	}
	return filepath.Join(o.Home, SettingsFileName)
}

// HistoryPath returns the history database location.
func (o Options) HistoryPath() string {
	return filepath.Join(o.Home, HistoryFileName)
}

// LogPath returns the log file location.
func (o Options) LogPath() string {
	return filepath.Join(o.Home, LogFileName)
}

// EnsureHome creates the app directory if needed.
func (o Options) EnsureHome() error {
	return os.MkdirAll(o.Home, 0755)
}
