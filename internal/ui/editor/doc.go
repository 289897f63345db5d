// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor provides the full-screen memo editor built on Bubble Tea.
//
// Every memo page gets a tab, a file name field and a textarea. All page
// operations go through app.App on the update loop, so the program never
// runs two memo operations at once. When an operation answers with a
// confirmation code (FileExists, ContentPending, FileTooLarge) the model
// shows a yes/no dialog and, on yes, re-issues the same request with the
// matching override set.
//
// # Usage
//
//	m := editor.New(ctx, a)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package editor
