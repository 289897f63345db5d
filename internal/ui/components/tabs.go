// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/ui/styles"
	"github.com/jeranaias/simplememo/internal/util"
)

// =============================================================================
// TABS
// =============================================================================

// MaxTabLabelWidth bounds a single tab label in cells.
const MaxTabLabelWidth = 24

// TabLabel returns the plain label for a page: its one-based number, its
// file name (or "untitled"), then the lock and unsaved markers.
func TabLabel(info memo.Info) string {
	name := info.Filename()
	if name == "" {
		name = "untitled"
	}
	label := fmt.Sprintf("%d %s", int(info.ID)+1, name)
	label = util.TruncateWidth(label, MaxTabLabelWidth)
	if info.Locked {
		label += " " + styles.StatusIndicators.Locked
	}
	if info.Unsaved {
		label += " " + styles.StatusIndicators.Unsaved
	}
	return label
}

// RenderTabs renders the tab bar for pages with active highlighted.
func RenderTabs(theme *styles.Theme, pages []memo.Info, active memo.SlotID, width int) string {
	tabs := make([]string, 0, len(pages))
	for _, info := range pages {
		style := theme.TabInactive
		if info.ID == active {
			style = theme.TabActive
		}
		switch {
		case info.Locked:
			style = style.Foreground(styles.Rose)
		case info.Unsaved:
			style = style.Foreground(styles.Amber)
		}
		tabs = append(tabs, style.Render(TabLabel(info)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if gap := width - lipgloss.Width(row); gap > 0 {
		row += theme.TabBar.Render(strings.Repeat(" ", gap))
	}
	return row
}
