// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint shown on the right of the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar shows the focused page's state.
type StatusBar struct {
	Info      memo.Info
	AutoSave  bool
	Shortcuts []Shortcut
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// encodingLabel returns the picker label of the page encoding.
func encodingLabel(name charset.Name) string {
	if d, ok := charset.Lookup(name); ok {
		return d.Label()
	}
	return string(name)
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := s.theme
	var left []string

	where := s.Info.SavePath
	if where == "" {
		where = "(not saved)"
	}
	left = append(left, t.StatusAccent.Render(fmt.Sprintf("Page %d", int(s.Info.ID)+1)))
	left = append(left, t.StatusItem.Render(where))
	left = append(left, t.StatusItem.Render(encodingLabel(s.Info.Encoding)))
	if s.Info.SaveCount > 0 {
		left = append(left, t.StatusItem.Render(fmt.Sprintf("saved x%d", s.Info.SaveCount)))
	}
	if s.Info.Locked {
		left = append(left, t.StatusItem.Foreground(styles.Rose).Render("locked"))
	}
	if s.AutoSave {
		left = append(left, t.StatusItem.Render("autosave"))
	}

	var right []string
	if t.GetLayoutMode() != styles.LayoutNarrow {
		for _, sc := range s.Shortcuts {
			right = append(right, t.ShortcutKey.Render(sc.Key)+" "+t.ShortcutDesc.Render(sc.Desc))
		}
	}

	sep := t.StatusItem.Render(" | ")
	l := strings.Join(left, sep)
	r := strings.Join(right, "  ")

	inner := s.Width - t.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		r = ""
		gap = inner - lipgloss.Width(l)
	}
	if gap < 0 {
		gap = 0
	}
	return t.StatusBar.Width(s.Width).Render(l + strings.Repeat(" ", gap) + r)
}
