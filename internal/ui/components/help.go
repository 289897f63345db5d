// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/jeranaias/simplememo/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY
// =============================================================================

// HelpMarkdown builds the key reference as a markdown table.
func HelpMarkdown(groups [][]key.Binding) string {
	var b strings.Builder
	b.WriteString("# simplememo\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range groups {
		for _, kb := range group {
			h := kb.Help()
			if h.Key == "" {
				continue
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nPages marked `*` have unsaved changes. Locked pages `[L]` ignore typing, saving and clearing.\n")
	return b.String()
}

// RenderHelp renders markdown for the terminal. Rendering failures fall back
// to the raw markdown.
func RenderHelp(theme *styles.Theme, markdown string, width int) string {
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
