// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simplememo/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeHelp {
		return m.helpText
	}

	infos := m.app.Slots()
	p := m.pages[m.active]
	info := infos[m.active]

	tabs := components.RenderTabs(m.theme, infos, m.active, m.width)

	nameRow := m.theme.FilenameLabel.Render("Name: ") + m.theme.FilenameField.Render(p.filename.View())
	if m.mode == modeOpen {
		nameRow = m.openInput.View()
	}

	box := m.theme.Editor
	if info.Locked {
		box = m.theme.EditorLocked
	}
	body := box.Render(p.editor.View())

	switch m.mode {
	case modeConfirm:
		body = m.overlay(m.confirm.View(m.theme), lipgloss.Height(body))
	case modeEncoding:
		body = m.overlay(m.picker.View(m.theme), lipgloss.Height(body))
	}

	m.status.Info = info
	m.status.AutoSave = m.app.AutoSaveInterval() > 0
	m.status.Shortcuts = m.shortcuts()

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		nameRow,
		body,
		m.notice.View(),
		m.status.View(),
	)
}

// overlay centers a dialog in the editor area.
func (m Model) overlay(dialog string, height int) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m Model) shortcuts() []components.Shortcut {
	short := m.keys.ShortHelp()
	out := make([]components.Shortcut, 0, len(short))
	for _, kb := range short {
		h := kb.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}
