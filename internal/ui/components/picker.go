// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/simplememo/internal/ui/styles"
)

// =============================================================================
// PICKER
// =============================================================================

// PickerItem is one choice.
type PickerItem struct {
	Value string
	Label string
}

// Picker is a single choice list.
type Picker struct {
	Title  string
	Items  []PickerItem
	cursor int
}

var (
	pickerUp     = key.NewBinding(key.WithKeys("up", "k", "ctrl+p"))
	pickerDown   = key.NewBinding(key.WithKeys("down", "j", "ctrl+n"))
	pickerAccept = key.NewBinding(key.WithKeys("enter"))
	pickerCancel = key.NewBinding(key.WithKeys("esc", "q"))
)

// NewPicker creates a picker with the cursor on the item whose value is
// selected, or on the first item.
func NewPicker(title string, items []PickerItem, selected string) Picker {
	p := Picker{Title: title, Items: items}
	for i, it := range items {
		if it.Value == selected {
			p.cursor = i
			break
		}
	}
	return p
}

// Selected returns the item under the cursor.
func (p Picker) Selected() (PickerItem, bool) {
	if p.cursor < 0 || p.cursor >= len(p.Items) {
		return PickerItem{}, false
	}
	return p.Items[p.cursor], true
}

// HandleKey moves the cursor or finishes. On accept, ok is true and item is
// the choice; on cancel, done is true and ok is false.
func (p *Picker) HandleKey(msg tea.KeyMsg) (done bool, item PickerItem, ok bool) {
	switch {
	case key.Matches(msg, pickerUp):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, pickerDown):
		if p.cursor < len(p.Items)-1 {
			p.cursor++
		}
	case key.Matches(msg, pickerAccept):
		item, ok = p.Selected()
		return true, item, ok
	case key.Matches(msg, pickerCancel):
		return true, PickerItem{}, false
	}
	return false, PickerItem{}, false
}

// View renders the picker.
func (p Picker) View(theme *styles.Theme) string {
	var b strings.Builder
	b.WriteString(theme.DialogTitle.Render(p.Title))
	b.WriteString("\n\n")
	for i, it := range p.Items {
		if i == p.cursor {
			b.WriteString(theme.PickerSelected.Render("> " + it.Label))
		} else {
			b.WriteString(theme.PickerItem.Render(it.Label))
		}
		b.WriteString("\n")
	}
	return theme.Dialog.Render(strings.TrimRight(b.String(), "\n"))
}
