// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the simplememo command line.
//
// The root command opens the full-screen editor. Subcommands cover the same
// memo pages from a line-oriented shell and expose the encoding tools on
// their own:
//
//	simplememo                       Open the editor
//	simplememo shell                 Line-oriented memo shell
//	simplememo detect FILE...        Guess file encodings
//	simplememo convert IN OUT        Transcode a file
//	simplememo settings show         Print the settings file
//	simplememo settings validate F   Check a settings file
//	simplememo version               Print version information
//
// Global flags (--home, --settings, --log-level, --slots, --no-history,
// --no-watch) override the SIMPLEMEMO_* environment variables, which
// override the defaults.
package cli
