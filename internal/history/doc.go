// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records which files each memo slot loaded or saved.
//
// Entries live in a SQLite database (pure-Go driver, WAL journal) in the
// app directory. The app uses the log to reopen each slot's last file at
// startup when loadLastFile is on, and front-ends list recent files from it.
//
// # Usage
//
//	h, err := history.Open(opts.HistoryPath())
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	_, err = h.Record(ctx, history.Entry{Slot: 0, Path: path, Encoding: "UTF8", Action: history.ActionSave})
//	last, err := h.Last(ctx, 0)
package history
