// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/simplememo/internal/app"
	"github.com/jeranaias/simplememo/internal/config"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/watch"
)

// =============================================================================
// HELPERS
// =============================================================================

func newTestModel(t *testing.T, mutate func(*config.Settings)) (Model, *app.App, string) {
	t.Helper()
	notes := t.TempDir()

	opts := config.DefaultOptions()
	opts.Home = t.TempDir()
	opts.NoWatch = true
	opts.NoHistory = true

	a, err := app.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	s := a.GlobalSettings()
	s.SavePath = notes
	if mutate != nil {
		mutate(&s)
	}
	require.Equal(t, memo.OK, a.ApplyGlobalSettingsValue(s))

	m := New(context.Background(), a)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), a, notes
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ctrl(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func named(t *testing.T, m Model, name string) Model {
	t.Helper()
	m, _ = send(t, m, ctrl(tea.KeyCtrlF), typed(name), ctrl(tea.KeyEnter))
	require.Equal(t, modeEdit, m.mode)
	return m
}

// =============================================================================
// EDITING AND SAVING
// =============================================================================

func TestTypingMarksUnsaved(t *testing.T) {
	m, a, _ := newTestModel(t, nil)
	m, _ = send(t, m, typed("hello"))
	assert.Equal(t, "hello", m.Text(0))
	assert.Equal(t, []memo.SlotID{0}, a.UnsavedSlots())
}

func TestSaveWritesFileAndNotifies(t *testing.T) {
	m, a, notes := newTestModel(t, nil)
	m, _ = send(t, m, typed("hello"))
	m = named(t, m, "note")
	m, cmd := send(t, m, ctrl(tea.KeyCtrlS))
	assert.NotNil(t, cmd)
	assert.Contains(t, m.Notice(), "Saved")
	assert.Equal(t, "note", m.Filename(0))

	data, err := os.ReadFile(filepath.Join(notes, "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Empty(t, a.UnsavedSlots())
}

func TestSaveWithoutNameShowsError(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m, _ = send(t, m, typed("x"), ctrl(tea.KeyCtrlS))
	assert.Equal(t, memo.NoFilename.Message(), m.Notice())
}

func TestSaveOverExistingAsksThenOverwrites(t *testing.T) {
	m, _, notes := newTestModel(t, nil)
	target := filepath.Join(notes, "note.txt")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	m, _ = send(t, m, typed("new"))
	m = named(t, m, "note")
	m, _ = send(t, m, ctrl(tea.KeyCtrlS))
	require.Equal(t, modeConfirm, m.mode)

	m, _ = send(t, m, typed("n"))
	assert.Equal(t, modeEdit, m.mode)
	data, _ := os.ReadFile(target)
	assert.Equal(t, "old", string(data))

	m, _ = send(t, m, ctrl(tea.KeyCtrlS), typed("y"))
	assert.Equal(t, modeEdit, m.mode)
	data, _ = os.ReadFile(target)
	assert.Equal(t, "new", string(data))
}

// =============================================================================
// OPENING AND RELOADING
// =============================================================================

func TestOpenIntoDirtyPageAsksFirst(t *testing.T) {
	m, _, notes := newTestModel(t, nil)
	path := filepath.Join(notes, "in.md")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o644))

	m, _ = send(t, m, typed("draft"), ctrl(tea.KeyCtrlO), typed(path), ctrl(tea.KeyEnter))
	require.Equal(t, modeConfirm, m.mode)
	assert.Equal(t, "draft", m.Text(0))

	m, _ = send(t, m, typed("y"))
	assert.Equal(t, "from disk", m.Text(0))
	assert.Equal(t, "in.md", m.Filename(0))
	assert.Contains(t, m.Notice(), "Opened in.md")
}

func TestOpenLargeFileAsksFirst(t *testing.T) {
	m, _, notes := newTestModel(t, func(s *config.Settings) { s.FileSizeWarningTh = 4 })
	path := filepath.Join(notes, "big.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	m, _ = send(t, m, ctrl(tea.KeyCtrlO), typed(path), ctrl(tea.KeyEnter))
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.confirm.Body, "10 B")

	m, _ = send(t, m, typed("y"))
	assert.Equal(t, "0123456789", m.Text(0))
}

func TestOpenAlreadyOpenSwitchesPage(t *testing.T) {
	m, _, notes := newTestModel(t, nil)
	path := filepath.Join(notes, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	m, _ = send(t, m, ctrl(tea.KeyCtrlO), typed(path), ctrl(tea.KeyEnter))
	require.Equal(t, "a", m.Text(0))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2"), Alt: true})
	require.Equal(t, memo.SlotID(1), m.Active())
	m, _ = send(t, m, ctrl(tea.KeyCtrlO), typed(path), ctrl(tea.KeyEnter))
	assert.Equal(t, memo.SlotID(0), m.Active())
	assert.Equal(t, memo.AlreadyOpen.Message(), m.Notice())
	assert.Empty(t, m.Text(1))
}

func TestReloadNeedsExternalFile(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m, _ = send(t, m, ctrl(tea.KeyCtrlR))
	assert.Equal(t, modeEdit, m.mode)
	assert.Contains(t, m.Notice(), "Only pages opened from a file")
}

func TestReloadWithPickedEncoding(t *testing.T) {
	m, _, notes := newTestModel(t, nil)
	path := filepath.Join(notes, "r.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	m, _ = send(t, m, ctrl(tea.KeyCtrlO), typed(path), ctrl(tea.KeyEnter))
	require.NoError(t, os.WriteFile(path, []byte("abcdef"), 0o644))

	m, _ = send(t, m, ctrl(tea.KeyCtrlR))
	require.Equal(t, modeEncoding, m.mode)
	m, _ = send(t, m, ctrl(tea.KeyEnter))
	assert.Equal(t, "abcdef", m.Text(0))
	assert.Contains(t, m.Notice(), "Reloaded r.txt as UTF8")
}

func TestLocalEncodingPicker(t *testing.T) {
	m, a, _ := newTestModel(t, nil)
	m, _ = send(t, m, ctrl(tea.KeyCtrlE), ctrl(tea.KeyDown), ctrl(tea.KeyEnter))
	assert.Equal(t, modeEdit, m.mode)
	ls := a.LocalSettings()
	assert.Equal(t, "UTF8_BOM", string(ls.Encoding))
}

// =============================================================================
// LOCKING, CLEARING, PAGES
// =============================================================================

func TestLockedPageIgnoresTyping(t *testing.T) {
	m, a, _ := newTestModel(t, nil)
	m, _ = send(t, m, ctrl(tea.KeyCtrlL), typed("x"))
	assert.Empty(t, m.Text(0))
	assert.Empty(t, a.UnsavedSlots())
	assert.Equal(t, []bool{true, false, false}, a.LockStates())

	m, _ = send(t, m, ctrl(tea.KeyCtrlN))
	assert.Equal(t, memo.Locked.Message(), m.Notice())

	m, _ = send(t, m, ctrl(tea.KeyCtrlL), typed("x"))
	assert.Equal(t, "x", m.Text(0))
}

func TestClearAsksWhenUnsaved(t *testing.T) {
	m, a, _ := newTestModel(t, nil)
	m, _ = send(t, m, typed("draft"), ctrl(tea.KeyCtrlN))
	require.Equal(t, modeConfirm, m.mode)
	m, _ = send(t, m, typed("y"))
	assert.Empty(t, m.Text(0))
	assert.Empty(t, a.UnsavedSlots())
}

func TestPageNavigation(t *testing.T) {
	m, a, _ := newTestModel(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	assert.Equal(t, memo.SlotID(1), m.Active())
	assert.Equal(t, memo.SlotID(1), a.Manager().Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true}, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	assert.Equal(t, memo.SlotID(2), m.Active())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9"), Alt: true})
	assert.Equal(t, memo.SlotID(2), m.Active(), "out of range pages are ignored")
}

// =============================================================================
// QUIT
// =============================================================================

func TestQuitAsksWhenUnsaved(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight, Alt: true}, typed("draft"), ctrl(tea.KeyCtrlQ))
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.confirm.Body, "Page 2")

	m, _ = send(t, m, typed("n"))
	assert.False(t, m.Quitting())

	m, cmd := send(t, m, ctrl(tea.KeyCtrlQ), typed("y"))
	assert.True(t, m.Quitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitWithoutDialogSetting(t *testing.T) {
	m, _, _ := newTestModel(t, func(s *config.Settings) { s.NoCloseDialog = true })
	m, _ = send(t, m, typed("draft"), ctrl(tea.KeyCtrlQ))
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

// =============================================================================
// BACKGROUND MESSAGES
// =============================================================================

func TestAutoSaveTickWaitsForInterval(t *testing.T) {
	m, a, notes := newTestModel(t, func(s *config.Settings) { s.AutoSave = true; s.AutoSaveSpan = 5 })
	m, _ = send(t, m, typed("one"))
	m = named(t, m, "auto")
	m, _ = send(t, m, ctrl(tea.KeyCtrlS), typed(" two"))
	require.False(t, a.AutoSaveDue())

	m, cmd := send(t, m, autoSaveTickMsg{})
	assert.NotNil(t, cmd, "the tick re-arms itself")
	assert.Contains(t, m.Notice(), "Saved", "no autosave notice before the interval")
	data, err := os.ReadFile(filepath.Join(notes, "auto.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
	assert.Equal(t, []memo.SlotID{0}, a.UnsavedSlots())
}

func TestFileChangedNotice(t *testing.T) {
	m, _, notes := newTestModel(t, nil)
	path := filepath.Join(notes, "w.txt")
	require.NoError(t, os.WriteFile(path, []byte("w"), 0o644))
	m, _ = send(t, m, ctrl(tea.KeyCtrlO), typed(path), ctrl(tea.KeyEnter))

	m, _ = send(t, m, fileChangedMsg(watch.Change{Path: path, Op: watch.Modified}))
	assert.Contains(t, m.Notice(), "changed on disk")

	m, _ = send(t, m, fileChangedMsg(watch.Change{Path: path, Op: watch.Removed}))
	assert.Contains(t, m.Notice(), "removed from disk")
}

func TestViewShowsTabsAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	out := m.View()
	assert.Contains(t, out, "1 untitled")
	assert.Contains(t, out, "3 untitled")

	m, _ = send(t, m, ctrl(tea.KeyF1))
	assert.Contains(t, m.View(), "save page")
	m, _ = send(t, m, ctrl(tea.KeyEsc))
	assert.Equal(t, modeEdit, m.mode)
}
