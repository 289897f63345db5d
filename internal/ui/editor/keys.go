// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings of the editor.
type KeyMap struct {
	Save     key.Binding
	Open     key.Binding
	Reload   key.Binding
	Encoding key.Binding
	Lock     key.Binding
	Clear    key.Binding
	Filename key.Binding
	Copy     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	GoToPage key.Binding
	Help     key.Binding
	Quit     key.Binding
	Back     key.Binding
	Submit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save page"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open file into page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload file in another encoding"),
		),
		Encoding: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "set page encoding"),
		),
		Lock: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "lock or unlock page"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "clear page"),
		),
		Filename: key.NewBinding(
			key.WithKeys("ctrl+f", "f2"),
			key.WithHelp("ctrl+f", "edit file name"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy page to clipboard"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("ctrl+pgdown", "alt+right"),
			key.WithHelp("alt+right", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("ctrl+pgup", "alt+left"),
			key.WithHelp("alt+left", "previous page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1..9", "go to page"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Open, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Open, k.Reload, k.Encoding, k.Filename},
		{k.Lock, k.Clear, k.Copy},
		{k.NextPage, k.PrevPage, k.GoToPage},
		{k.Help, k.Quit},
	}
}
