// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components of the editor.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// TAB BAR STYLES
	// ==========================================================================

	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabUnsaved  lipgloss.Style
	TabLocked   lipgloss.Style

	// ==========================================================================
	// EDITOR STYLES
	// ==========================================================================

	Editor        lipgloss.Style
	EditorLocked  lipgloss.Style
	FilenameLabel lipgloss.Style
	FilenameField lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusItem   lipgloss.Style
	StatusAccent lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// DIALOG STYLES
	// ==========================================================================

	Dialog         lipgloss.Style
	DialogTitle    lipgloss.Style
	DialogBody     lipgloss.Style
	Button         lipgloss.Style
	ButtonActive   lipgloss.Style
	PickerItem     lipgloss.Style
	PickerSelected lipgloss.Style
}

// LayoutMode is the coarse width class used to drop status bar items.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota
	LayoutNormal
	LayoutWide
)

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		Width:        80,
		Height:       24,
	}

	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Tabs
	t.TabBar = lipgloss.NewStyle().
		Background(SurfaceDim)
	t.TabActive = lipgloss.NewStyle().
		Foreground(Purple).
		Background(SurfaceBright).
		Bold(true).
		Padding(0, 1)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.TabUnsaved = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.TabLocked = lipgloss.NewStyle().
		Foreground(Rose)

	// Editor
	t.Editor = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Foreground(TextPrimary)
	t.EditorLocked = t.Editor.
		BorderForeground(Rose)
	t.FilenameLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FilenameField = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.StatusItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim)
	t.StatusAccent = lipgloss.NewStyle().
		Foreground(Cyan).
		Background(SurfaceDim).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Dialogs
	t.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
	t.DialogTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.DialogBody = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)
	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2)
	t.PickerItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)
	t.PickerSelected = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
}

// SetSize records the terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the width class for the current size.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutNarrow
	case t.Width < 120:
		return LayoutNormal
	default:
		return LayoutWide
	}
}
