// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across simplememo.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe replace with fsync and rename
//   - WriteFile: in-place write, optionally refusing to overwrite
//
// Display:
//   - TruncateWidth, PadWidth, StringWidth: column-aware string helpers
//   - HumanSize: byte counts in IEC units
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0644)
//	label := util.TruncateWidth(filename, 20)
package util
