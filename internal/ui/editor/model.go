// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simplememo/internal/app"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/ui/components"
	"github.com/jeranaias/simplememo/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// mode is what currently receives key presses.
type mode int

const (
	modeEdit mode = iota
	modeFilename
	modeOpen
	modeConfirm
	modeEncoding
	modeHelp
)

// requestKind names an operation waiting on a confirmation.
type requestKind int

const (
	reqSave requestKind = iota
	reqLoad
	reqClear
	reqQuit
)

// request is the operation to re-issue when the user answers yes.
type request struct {
	kind requestKind
	slot memo.SlotID
	code memo.Code
	path string
	load memo.LoadOptions
}

// pickPurpose says what an encoding choice is for.
type pickPurpose int

const (
	pickReload pickPurpose = iota
	pickLocal
)

// page is the widget state of one memo slot.
type page struct {
	editor   textarea.Model
	filename textinput.Model
}

func newPage() page {
	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""

	fn := textinput.New()
	fn.Placeholder = "file name"
	fn.Prompt = ""
	fn.CharLimit = 255

	return page{editor: ta, filename: fn}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the editor.
type Model struct {
	ctx   context.Context
	app   *app.App
	theme *styles.Theme
	keys  KeyMap

	pages  []page
	active memo.SlotID
	mode   mode

	openInput textinput.Model
	confirm   components.Confirm
	pending   request
	picker    components.Picker
	pickFor   pickPurpose

	status   *components.StatusBar
	notice   components.Notice
	helpText string

	width    int
	height   int
	quitting bool
}

// New creates the editor over a. Last files are restored first when the
// settings ask for it.
func New(ctx context.Context, a *app.App) Model {
	theme := styles.NewTheme()
	m := Model{
		ctx:    ctx,
		app:    a,
		theme:  theme,
		keys:   DefaultKeyMap(),
		status: components.NewStatusBar(theme),
		width:  theme.Width,
		height: theme.Height,
	}

	infos := a.Slots()
	m.pages = make([]page, len(infos))
	for i := range m.pages {
		m.pages[i] = newPage()
	}

	m.openInput = textinput.New()
	m.openInput.Placeholder = "path to file"
	m.openInput.Prompt = "Open: "

	for _, res := range a.RestoreLastFiles(ctx) {
		if res.Code == memo.OK {
			m.setPage(res.Slot, res.Text)
		}
	}

	m.focusPage(0)
	m.layout()
	return m
}

// Init starts the cursor blink, the autosave ticker and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		autoSaveTick(),
		listenChanges(m.app.Changes()),
	)
}

// Active returns the focused page.
func (m Model) Active() memo.SlotID {
	return m.active
}

// Text returns the editor content of page id.
func (m Model) Text(id memo.SlotID) string {
	if int(id) < 0 || int(id) >= len(m.pages) {
		return ""
	}
	return m.pages[id].editor.Value()
}

// Filename returns the file name field of page id.
func (m Model) Filename(id memo.SlotID) string {
	if int(id) < 0 || int(id) >= len(m.pages) {
		return ""
	}
	return m.pages[id].filename.Value()
}

// Notice returns the visible notice text.
func (m Model) Notice() string {
	return m.notice.Text
}

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// texts collects every page's content for autosave.
func (m Model) texts() map[memo.SlotID]string {
	out := make(map[memo.SlotID]string, len(m.pages))
	for i, p := range m.pages {
		out[memo.SlotID(i)] = p.editor.Value()
	}
	return out
}

// setPage replaces a page's text and syncs its file name field from the slot.
func (m *Model) setPage(id memo.SlotID, text string) {
	p := &m.pages[id]
	p.editor.SetValue(text)
	info, _ := m.app.Manager().SlotInfo(id)
	p.filename.SetValue(info.SaveName())
}

// focusPage switches the active page and moves keyboard focus to its editor.
func (m *Model) focusPage(id memo.SlotID) {
	if int(id) < 0 || int(id) >= len(m.pages) {
		return
	}
	for i := range m.pages {
		m.pages[i].editor.Blur()
		m.pages[i].filename.Blur()
	}
	m.active = id
	m.app.Focus(id)
	m.pages[id].editor.Focus()
	m.mode = modeEdit
}

// layout sizes the widgets for the current window.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)
	m.status.SetWidth(m.width)

	// tabs, file name row, notice row, status bar, editor border
	h := m.height - 4 - m.theme.Editor.GetVerticalFrameSize()
	if h < 1 {
		h = 1
	}
	w := m.width - m.theme.Editor.GetHorizontalFrameSize()
	if w < 10 {
		w = 10
	}
	for i := range m.pages {
		m.pages[i].editor.SetWidth(w)
		m.pages[i].editor.SetHeight(h)
		m.pages[i].filename.Width = w - 8
	}
	m.openInput.Width = w - 8
	if m.mode == modeHelp {
		m.helpText = components.RenderHelp(m.theme, components.HelpMarkdown(m.keys.FullHelp()), w)
	}
}
