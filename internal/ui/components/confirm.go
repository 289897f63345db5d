// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/simplememo/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// ConfirmKeys are the bindings a Confirm responds to.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Accept key.Binding
}

// DefaultConfirmKeys returns the standard dialog bindings.
func DefaultConfirmKeys() ConfirmKeys {
	return ConfirmKeys{
		Yes:    key.NewBinding(key.WithKeys("y", "Y")),
		No:     key.NewBinding(key.WithKeys("n", "N", "esc")),
		Toggle: key.NewBinding(key.WithKeys("left", "right", "tab", "h", "l")),
		Accept: key.NewBinding(key.WithKeys("enter")),
	}
}

// Confirm is a yes/no question. The No button is selected by default.
type Confirm struct {
	Title string
	Body  string
	yes   bool
	keys  ConfirmKeys
}

// NewConfirm creates a dialog.
func NewConfirm(title, body string) Confirm {
	return Confirm{Title: title, Body: body, keys: DefaultConfirmKeys()}
}

// HandleKey processes a key. done reports that the user answered and yes
// carries the answer.
func (c *Confirm) HandleKey(msg tea.KeyMsg) (done, yes bool) {
	switch {
	case key.Matches(msg, c.keys.Yes):
		return true, true
	case key.Matches(msg, c.keys.No):
		return true, false
	case key.Matches(msg, c.keys.Toggle):
		c.yes = !c.yes
	case key.Matches(msg, c.keys.Accept):
		return true, c.yes
	}
	return false, false
}

// View renders the dialog.
func (c Confirm) View(theme *styles.Theme) string {
	yes, no := theme.Button, theme.ButtonActive
	if c.yes {
		yes, no = theme.ButtonActive, theme.Button
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), " ", no.Render("No"))
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.DialogTitle.Render(c.Title),
		"",
		theme.DialogBody.Render(c.Body),
		"",
		buttons,
	)
	return theme.Dialog.Render(body)
}
