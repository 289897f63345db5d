// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/simplememo/internal/util"
)

// =============================================================================
// STORE
// =============================================================================

// Store owns the current settings record. It is not safe for concurrent use;
// callers serialize access through their own control loop.
type Store struct {
	settings Settings
}

// NewStore returns a store holding the default settings.
func NewStore() *Store {
	return &Store{settings: Default()}
}

// Settings returns a copy of the current record.
func (s *Store) Settings() Settings {
	return s.settings
}

// Set validates payload and, only if it passes, replaces the whole record.
func (s *Store) Set(payload map[string]any) error {
	if err := Validate(payload); err != nil {
		return err
	}
	s.settings = fromMap(payload)
	return nil
}

// Replace validates next and, only if it passes, installs it.
func (s *Store) Replace(next Settings) error {
	return s.Set(next.Map())
}

// SetFontSize changes only the font size.
func (s *Store) SetFontSize(size float64) error {
	next := s.settings
	next.FontSize = size
	return s.Replace(next)
}

// =============================================================================
// FILE I/O
// =============================================================================

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a settings file and applies it with Set. Read errors keep their
// fs error chain so callers can test for fs.ErrNotExist.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var payload map[string]any
	if isTOML(path) {
		if err := toml.Unmarshal(data, &payload); err != nil {
			return &ValidationError{Message: err.Error(), Err: ErrInvalidPayload}
		}
	} else {
		if err := json.Unmarshal(data, &payload); err != nil {
			return &ValidationError{Message: err.Error(), Err: ErrInvalidPayload}
		}
	}
	return s.Set(payload)
}

// Save writes the current record to path atomically.
func (s *Store) Save(path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s.settings); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(s.settings, "", "  ")
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		data = append(data, '\n')
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
