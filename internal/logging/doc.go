// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide logrus logger.
//
// The TUI owns the terminal, so in that mode logs go to a file in the app
// directory. The shell and one-shot commands log to stderr.
package logging
