// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config holds simplememo's user settings and runtime options.
//
// User settings are a flat record with a fixed schema. A payload is accepted
// only when it carries exactly the schema's keys, each non-null and of the
// schema's primitive kind, and passes the per-field rules. Accepted payloads
// replace the whole record at once; a rejected payload changes nothing.
//
// # Key Types
//
//   - Settings: the settings record
//   - Store: owns the current Settings and reads/writes the settings file
//   - Options: runtime options (app directory, file locations, log level)
//
// # File Formats
//
// The settings file is JSON by default. A path ending in ".toml" is read and
// written as TOML instead. Both are UTF-8 without a BOM.
//
// # Usage
//
//	store := config.NewStore()
//	if err := store.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
//	    return err
//	}
//	s := store.Settings()
package config
