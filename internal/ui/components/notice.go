// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/simplememo/internal/ui/styles"
)

// =============================================================================
// NOTICE
// =============================================================================

// NoticeLevel selects the indicator and color of a notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// DefaultNoticeDuration is how long a notice stays visible.
const DefaultNoticeDuration = 3 * time.Second

// Notice is a one-line status message. Each Show bumps the sequence so a
// stale clear tick cannot hide a newer notice.
type Notice struct {
	Text  string
	Level NoticeLevel
	seq   int
}

// NoticeClearMsg asks the model to clear the notice with sequence Seq.
type NoticeClearMsg struct {
	Seq int
}

// Show replaces the notice and returns the command that clears it after d.
func (n *Notice) Show(level NoticeLevel, text string, d time.Duration) tea.Cmd {
	n.seq++
	n.Text = text
	n.Level = level
	seq := n.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return NoticeClearMsg{Seq: seq}
	})
}

// Clear hides the notice if msg refers to the current one.
func (n *Notice) Clear(msg NoticeClearMsg) {
	if msg.Seq == n.seq {
		n.Text = ""
	}
}

// Visible reports whether there is a notice to show.
func (n *Notice) Visible() bool {
	return n.Text != ""
}

// View renders the notice.
func (n *Notice) View() string {
	if n.Text == "" {
		return ""
	}
	switch n.Level {
	case NoticeSuccess:
		return styles.RenderSuccess(n.Text)
	case NoticeWarning:
		return styles.RenderWarning(n.Text)
	case NoticeError:
		return styles.RenderError(n.Text)
	default:
		return styles.RenderInfo(n.Text)
	}
}
