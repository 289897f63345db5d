// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// TABS
// =============================================================================

func TestTabLabel(t *testing.T) {
	assert.Equal(t, "1 untitled", TabLabel(memo.Info{ID: 0}))
	assert.Equal(t, "2 note.txt *", TabLabel(memo.Info{ID: 1, SavePath: "/tmp/note.txt", Unsaved: true}))
	assert.Equal(t, "3 a.md [L]", TabLabel(memo.Info{ID: 2, SavePath: "/tmp/a.md", Locked: true}))

	long := TabLabel(memo.Info{ID: 0, SavePath: "/tmp/" + strings.Repeat("x", 60) + ".txt"})
	assert.LessOrEqual(t, len([]rune(long)), MaxTabLabelWidth)
	assert.True(t, strings.HasSuffix(long, "…"))
}

func TestRenderTabsContainsEveryPage(t *testing.T) {
	theme := styles.NewTheme()
	pages := []memo.Info{{ID: 0}, {ID: 1, SavePath: "/tmp/b.txt"}, {ID: 2}}
	out := RenderTabs(theme, pages, 1, 80)
	assert.Contains(t, out, "1 untitled")
	assert.Contains(t, out, "2 b.txt")
	assert.Contains(t, out, "3 untitled")
}

// =============================================================================
// STATUS BAR
// =============================================================================

func TestStatusBarView(t *testing.T) {
	theme := styles.NewTheme()
	sb := NewStatusBar(theme)
	sb.SetWidth(120)
	sb.Info = memo.Info{ID: 1, SavePath: "/tmp/n.txt", Encoding: charset.SJIS, SaveCount: 2, Locked: true}
	out := sb.View()
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, "/tmp/n.txt")
	assert.Contains(t, out, "Shift_JIS")
	assert.Contains(t, out, "saved x2")
	assert.Contains(t, out, "locked")

	sb.Info = memo.Info{ID: 0, Encoding: charset.UTF8}
	assert.Contains(t, sb.View(), "(not saved)")
}

// =============================================================================
// NOTICE
// =============================================================================

func TestNoticeStaleClearIgnored(t *testing.T) {
	var n Notice
	cmd := n.Show(NoticeSuccess, "saved", time.Millisecond)
	require.NotNil(t, cmd)
	first, ok := cmd().(NoticeClearMsg)
	require.True(t, ok)

	n.Show(NoticeError, "failed", time.Millisecond)
	n.Clear(first)
	assert.True(t, n.Visible())
	assert.Contains(t, n.View(), "failed")

	n.Clear(NoticeClearMsg{Seq: first.Seq + 1})
	assert.False(t, n.Visible())
	assert.Empty(t, n.View())
}

// =============================================================================
// CONFIRM
// =============================================================================

func TestConfirmKeys(t *testing.T) {
	c := NewConfirm("Overwrite", "exists")
	done, yes := c.HandleKey(runes("y"))
	assert.True(t, done)
	assert.True(t, yes)

	c = NewConfirm("Overwrite", "exists")
	done, yes = c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, done)
	assert.False(t, yes, "No is the default")

	c = NewConfirm("Overwrite", "exists")
	done, _ = c.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, done)
	done, yes = c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, done)
	assert.True(t, yes)

	c = NewConfirm("Overwrite", "exists")
	done, yes = c.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, done)
	assert.False(t, yes)
	assert.Contains(t, c.View(styles.NewTheme()), "Overwrite")
}

// =============================================================================
// PICKER
// =============================================================================

func TestPicker(t *testing.T) {
	items := []PickerItem{{Value: "UTF8", Label: "UTF-8"}, {Value: "SJIS", Label: "Shift_JIS"}, {Value: "EUCJP", Label: "EUC-JP"}}
	p := NewPicker("Encoding", items, "SJIS")
	sel, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "SJIS", sel.Value)

	done, _, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, done)
	p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	done, item, ok := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, done)
	assert.True(t, ok)
	assert.Equal(t, "EUCJP", item.Value)

	p = NewPicker("Encoding", items, "missing")
	p.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	sel, _ = p.Selected()
	assert.Equal(t, "UTF8", sel.Value)

	done, _, ok = p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, done)
	assert.False(t, ok)
	assert.Contains(t, p.View(styles.NewTheme()), "> UTF-8")
}

// =============================================================================
// HELP
// =============================================================================

func TestHelpMarkdown(t *testing.T) {
	groups := [][]key.Binding{{
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save page")),
		key.NewBinding(key.WithKeys("x")),
	}}
	md := HelpMarkdown(groups)
	assert.Contains(t, md, "| `ctrl+s` | save page |")
	assert.Equal(t, 1, strings.Count(md, "| `"))

	out := RenderHelp(styles.NewTheme(), md, 60)
	assert.Contains(t, out, "save page")
}
