// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/simplememo/internal/watch"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AutoSaveCheckInterval is how often the model asks whether autosave is due.
const AutoSaveCheckInterval = 30 * time.Second

// autoSaveTickMsg triggers an autosave check.
type autoSaveTickMsg struct{}

// fileChangedMsg carries one watcher event.
type fileChangedMsg watch.Change

func autoSaveTick() tea.Cmd {
	return tea.Tick(AutoSaveCheckInterval, func(time.Time) tea.Msg {
		return autoSaveTickMsg{}
	})
}

// listenChanges waits for the next watcher event. A nil channel yields no
// command, and a closed channel ends the listen loop.
func listenChanges(ch <-chan watch.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg(c)
	}
}
