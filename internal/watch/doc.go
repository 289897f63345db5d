// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch reports when a file held by a memo slot changes on disk.
//
// The watcher remembers a BLAKE2b fingerprint of the content each tracked
// file is known to have. File system events are debounced and rate limited
// per path, then the file is re-read; a Change is published only when its
// fingerprint differs from the remembered one. Re-tracking a file after the
// app writes it therefore keeps the app's own saves silent.
//
// Changes are informational. Nothing here reloads a slot.
package watch
