// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/ui/components"
	"github.com/jeranaias/simplememo/internal/util"
	"github.com/jeranaias/simplememo/internal/watch"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles every message on the program's single update loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case components.NoticeClearMsg:
		m.notice.Clear(msg)
		return m, nil

	case autoSaveTickMsg:
		return m, tea.Batch(m.autoSave(), autoSaveTick())

	case fileChangedMsg:
		return m, tea.Batch(m.fileChanged(watch.Change(msg)), listenChanges(m.app.Changes()))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Blink and other widget messages go to the focused widget.
	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeConfirm:
		done, yes := m.confirm.HandleKey(msg)
		if !done {
			return m, nil
		}
		m.mode = modeEdit
		req := m.pending
		m.pending = request{}
		if !yes {
			return m, nil
		}
		return m, m.reissue(req)

	case modeEncoding:
		done, item, ok := m.picker.HandleKey(msg)
		if !done {
			return m, nil
		}
		m.mode = modeEdit
		if !ok {
			return m, nil
		}
		return m, m.applyEncoding(charset.Name(item.Value))

	case modeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.mode = modeEdit
		}
		return m, nil

	case modeOpen:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.openInput.Blur()
			m.focusPage(m.active)
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			path := strings.TrimSpace(m.openInput.Value())
			m.openInput.Blur()
			m.focusPage(m.active)
			if path == "" {
				return m, nil
			}
			return m, m.load(path, memo.LoadOptions{})
		}
		var cmd tea.Cmd
		m.openInput, cmd = m.openInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.requestQuit()
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m, m.save(false)
	case key.Matches(msg, m.keys.Open):
		m.mode = modeOpen
		m.openInput.SetValue("")
		return m, m.openInput.Focus()
	case key.Matches(msg, m.keys.Reload):
		return m, m.pickEncoding(pickReload)
	case key.Matches(msg, m.keys.Encoding):
		return m, m.pickEncoding(pickLocal)
	case key.Matches(msg, m.keys.Lock):
		return m, m.toggleLock()
	case key.Matches(msg, m.keys.Clear):
		return m, m.clear(false)
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyPage()
	case key.Matches(msg, m.keys.NextPage):
		m.focusPage(memo.SlotID((int(m.active) + 1) % len(m.pages)))
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.focusPage(memo.SlotID((int(m.active) + len(m.pages) - 1) % len(m.pages)))
		return m, nil
	case key.Matches(msg, m.keys.GoToPage):
		m.focusPage(memo.SlotID(msg.Runes[len(msg.Runes)-1] - '1'))
		return m, nil
	case key.Matches(msg, m.keys.Filename):
		return m, m.toggleFilename()
	}

	if m.mode == modeFilename && key.Matches(msg, m.keys.Back, m.keys.Submit) {
		return m, m.toggleFilename()
	}
	return m.forward(msg)
}

// forward passes msg to the focused widget and records edits.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := &m.pages[m.active]
	var cmd tea.Cmd

	if m.mode == modeFilename {
		p.filename, cmd = p.filename.Update(msg)
		return m, cmd
	}
	if m.mode == modeOpen {
		m.openInput, cmd = m.openInput.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.locked() && !isNavigation(km) {
		return m, nil
	}
	before := p.editor.Value()
	p.editor, cmd = p.editor.Update(msg)
	if p.editor.Value() != before {
		m.app.MarkUnsaved(m.active)
	}
	return m, cmd
}

// isNavigation reports keys that move the cursor without editing.
func isNavigation(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyPgUp, tea.KeyPgDown:
		return true
	}
	return false
}

func (m Model) locked() bool {
	info, _ := m.app.Manager().SlotInfo(m.active)
	return info.Locked
}

// =============================================================================
// OPERATIONS
// =============================================================================

func (m *Model) save(overwrite bool) tea.Cmd {
	p := &m.pages[m.active]
	res := m.app.Save(m.ctx, m.active, p.filename.Value(), p.editor.Value(), overwrite)
	switch res.Code {
	case memo.OK:
		info, _ := m.app.Manager().SlotInfo(m.active)
		p.filename.SetValue(info.SaveName())
		return m.notify(components.NoticeSuccess, fmt.Sprintf("Saved %s (%d)", res.Path, res.SaveCount))
	case memo.FileExists:
		m.ask("Overwrite", res.Code.Message(), request{kind: reqSave, slot: m.active, code: res.Code})
		return nil
	}
	return m.fail(res.Code)
}

func (m *Model) load(path string, opts memo.LoadOptions) tea.Cmd {
	res := m.app.Load(m.ctx, m.active, path, opts)
	switch res.Code {
	case memo.OK:
		m.setPage(m.active, res.Text)
		return m.notify(components.NoticeSuccess, fmt.Sprintf("Opened %s (%s, %s)",
			filepath.Base(res.Path), util.HumanSize(res.Size), res.Encoding))
	case memo.ContentPending:
		m.ask("Discard page", res.Code.Message(), request{kind: reqLoad, slot: m.active, code: res.Code, path: path, load: opts})
		return nil
	case memo.FileTooLarge:
		body := fmt.Sprintf("%s is %s. Open it anyway?", filepath.Base(path), util.HumanSize(res.Size))
		m.ask("Large file", body, request{kind: reqLoad, slot: m.active, code: res.Code, path: path, load: opts})
		return nil
	case memo.AlreadyOpen:
		if abs, err := filepath.Abs(path); err == nil {
			if id, ok := m.app.SlotForPath(abs); ok {
				m.focusPage(id)
			}
		}
	}
	return m.fail(res.Code)
}

func (m *Model) clear(confirmed bool) tea.Cmd {
	info, _ := m.app.Manager().SlotInfo(m.active)
	if info.Locked {
		return m.fail(memo.Locked)
	}
	if info.Unsaved && !confirmed {
		m.ask("Clear page", "This page has unsaved changes. Clear it anyway?", request{kind: reqClear, slot: m.active})
		return nil
	}
	if code := m.app.ClearSlot(m.active); code != memo.OK {
		return m.fail(code)
	}
	m.setPage(m.active, "")
	return nil
}

// requestQuit exits, first asking when pages are unsaved unless the
// noCloseDialog setting is on.
func (m *Model) requestQuit() tea.Cmd {
	unsaved := m.app.UnsavedSlots()
	if len(unsaved) > 0 && !m.app.GlobalSettings().NoCloseDialog {
		nums := make([]string, len(unsaved))
		for i, id := range unsaved {
			nums[i] = fmt.Sprint(int(id) + 1)
		}
		body := fmt.Sprintf("Page %s has unsaved changes. Quit anyway?", strings.Join(nums, ", "))
		m.ask("Quit", body, request{kind: reqQuit})
		return nil
	}
	m.quitting = true
	return tea.Quit
}

// reissue repeats a confirmed request with the override its code asks for.
func (m *Model) reissue(req request) tea.Cmd {
	if req.kind != reqQuit && req.slot != m.active {
		m.focusPage(req.slot)
	}
	switch req.kind {
	case reqSave:
		return m.save(true)
	case reqLoad:
		opts := req.load
		switch req.code {
		case memo.ContentPending:
			opts.Overwrite = true
		case memo.FileTooLarge:
			opts.IgnoreSizeCheck = true
		}
		return m.load(req.path, opts)
	case reqClear:
		return m.clear(true)
	case reqQuit:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) ask(title, body string, req request) {
	m.confirm = components.NewConfirm(title, body)
	m.pending = req
	m.mode = modeConfirm
}

func (m *Model) pickEncoding(purpose pickPurpose) tea.Cmd {
	info, _ := m.app.Manager().SlotInfo(m.active)
	if purpose == pickReload && !info.IsExternalFile {
		return m.notify(components.NoticeInfo, "Only pages opened from a file can be reloaded.")
	}
	names := charset.Names()
	items := make([]components.PickerItem, len(names))
	for i, n := range names {
		d, _ := charset.Lookup(n)
		items[i] = components.PickerItem{Value: string(n), Label: d.Label()}
	}
	title := "Page encoding"
	if purpose == pickReload {
		title = "Reload with encoding"
	}
	m.picker = components.NewPicker(title, items, string(info.Encoding))
	m.pickFor = purpose
	m.mode = modeEncoding
	return nil
}

func (m *Model) applyEncoding(enc charset.Name) tea.Cmd {
	if m.pickFor == pickLocal {
		if code := m.app.ApplyLocalSettings(memo.LocalSettings{Slot: m.active, Encoding: enc}); code != memo.OK {
			return m.fail(code)
		}
		return m.notify(components.NoticeInfo, "Encoding set to "+string(enc))
	}
	res := m.app.Reload(m.ctx, m.active, enc)
	if res.Code != memo.OK {
		return m.fail(res.Code)
	}
	m.setPage(m.active, res.Text)
	return m.notify(components.NoticeSuccess, fmt.Sprintf("Reloaded %s as %s", filepath.Base(res.Path), res.Encoding))
}

func (m *Model) toggleLock() tea.Cmd {
	on, code := m.app.ToggleLock(m.active)
	if code != memo.OK {
		return m.fail(code)
	}
	if on {
		return m.notify(components.NoticeInfo, "Page locked")
	}
	return m.notify(components.NoticeInfo, "Page unlocked")
}

func (m *Model) toggleFilename() tea.Cmd {
	p := &m.pages[m.active]
	if m.mode == modeFilename {
		p.filename.Blur()
		m.mode = modeEdit
		return p.editor.Focus()
	}
	p.editor.Blur()
	m.mode = modeFilename
	return p.filename.Focus()
}

func (m *Model) copyPage() tea.Cmd {
	if err := clipboard.WriteAll(m.pages[m.active].editor.Value()); err != nil {
		logrus.WithError(err).Debug("clipboard write failed")
		return m.notify(components.NoticeError, "Clipboard is not available.")
	}
	return m.notify(components.NoticeSuccess, "Copied page to clipboard")
}

func (m *Model) autoSave() tea.Cmd {
	if !m.app.AutoSaveDue() {
		return nil
	}
	saved := 0
	for _, res := range m.app.AutoSave(m.ctx, m.texts()) {
		if res.Code == memo.OK {
			saved++
		}
	}
	if saved == 0 {
		return nil
	}
	return m.notify(components.NoticeInfo, fmt.Sprintf("Autosaved %d page(s)", saved))
}

func (m *Model) fileChanged(c watch.Change) tea.Cmd {
	id, ok := m.app.SlotForPath(c.Path)
	if !ok {
		return nil
	}
	name := filepath.Base(c.Path)
	if c.Op == watch.Removed {
		return m.notify(components.NoticeWarning, fmt.Sprintf("%s on page %d was removed from disk", name, int(id)+1))
	}
	return m.notify(components.NoticeWarning, fmt.Sprintf("%s on page %d changed on disk (ctrl+r reloads)", name, int(id)+1))
}

func (m *Model) notify(level components.NoticeLevel, text string) tea.Cmd {
	return m.notice.Show(level, text, components.DefaultNoticeDuration)
}

func (m *Model) fail(code memo.Code) tea.Cmd {
	return m.notify(components.NoticeError, code.Message())
}
