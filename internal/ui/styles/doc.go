// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the simplememo editor.
//
// Colors are lipgloss AdaptiveColors so the same palette works on light and
// dark terminals. Theme bundles the rendered styles and is built once per
// program from the terminal's detected capabilities.
//
// # Usage
//
//	theme := styles.NewTheme()
//	theme.SetSize(width, height)
//	tab := theme.TabActive.Render("1 note.txt")
package styles
