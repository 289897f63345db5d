// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memo

import (
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/config"
)

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns a fixed set of slots and the settings store. It is not safe
// for concurrent use; the front-end's control loop is the only caller.
type Manager struct {
	slots   []*Slot
	store   *config.Store
	focused SlotID
}

// LocalSettings are the per-slot settings of the focused slot.
type LocalSettings struct {
	Slot     SlotID
	Encoding charset.Name
}

// UISettings are the settings a front-end needs for presentation.
type UISettings struct {
	FontSize float64
	Font     string
	TopMost  bool
}

// NewManager creates n slots seeded from store's settings. A nil store gets
// the defaults.
func NewManager(n int, store *config.Store) *Manager {
	if n <= 0 {
		n = DefaultSlotCount
	}
	if store == nil {
		store = config.NewStore()
	}
	m := &Manager{store: store}
	d := defaultsFrom(store.Settings())
	for i := 0; i < n; i++ {
		m.slots = append(m.slots, NewSlot(SlotID(i), d))
	}
	return m
}

func defaultsFrom(s config.Settings) Defaults {
	return Defaults{
		Directory:     s.SavePath,
		Encoding:      charset.Name(s.Encoding),
		AutoDetect:    s.AutoEncoding,
		SizeThreshold: s.FileSizeWarningTh,
	}
}

// Len returns the slot count.
func (m *Manager) Len() int {
	return len(m.slots)
}

// Store returns the settings store.
func (m *Manager) Store() *config.Store {
	return m.store
}

func (m *Manager) slot(id SlotID) (*Slot, bool) {
	if id < 0 || int(id) >= len(m.slots) {
		return nil, false
	}
	return m.slots[id], true
}

// =============================================================================
// SLOT OPERATIONS
// =============================================================================

// Save delegates to the slot.
func (m *Manager) Save(id SlotID, filename, text string, opts SaveOptions) SaveResult {
	s, ok := m.slot(id)
	if !ok {
		return SaveResult{Slot: id, Code: InvalidParameter}
	}
	return s.Save(filename, text, opts)
}

// Load refuses with AlreadyOpen when another slot holds path, otherwise
// delegates to the slot.
func (m *Manager) Load(id SlotID, path string, opts LoadOptions) LoadResult {
	s, ok := m.slot(id)
	if !ok {
		return LoadResult{Slot: id, Code: InvalidParameter}
	}
	if other, open := m.holder(path); open && other != id {
		logrus.WithFields(logrus.Fields{"slot": id, "path": path, "holder": other}).Debug("already open")
		return LoadResult{Slot: id, Code: AlreadyOpen}
	}
	return s.Load(path, opts)
}

// holder returns the slot whose path of record equals path.
func (m *Manager) holder(path string) (SlotID, bool) {
	abs := absPath(path)
	for _, s := range m.slots {
		if s.savePath != "" && s.savePath == abs {
			return s.id, true
		}
	}
	return 0, false
}

// Reload re-reads an external slot's own file, forcing encoding when it is
// non-empty. Size and pending-content checks are skipped since the user
// already accepted this file once.
func (m *Manager) Reload(id SlotID, encoding charset.Name) LoadResult {
	s, ok := m.slot(id)
	if !ok || !s.external || s.savePath == "" {
		return LoadResult{Slot: id, Code: InvalidParameter}
	}
	return s.Load(s.savePath, LoadOptions{
		IgnoreSizeCheck: true,
		Overwrite:       true,
		Encoding:        encoding,
	})
}

// MarkUnsaved records an edit on slot id.
func (m *Manager) MarkUnsaved(id SlotID) Code {
	s, ok := m.slot(id)
	if !ok {
		return InvalidParameter
	}
	s.MarkUnsaved()
	return OK
}

// ToggleLock flips the lock on slot id and returns the new state.
func (m *Manager) ToggleLock(id SlotID) (bool, Code) {
	s, ok := m.slot(id)
	if !ok {
		return false, InvalidParameter
	}
	return s.ToggleLock(), OK
}

// Clear resets slot id.
func (m *Manager) Clear(id SlotID) Code {
	s, ok := m.slot(id)
	if !ok {
		return InvalidParameter
	}
	return s.Clear()
}

// LockStates returns the lock flag of every slot in order.
func (m *Manager) LockStates() []bool {
	out := make([]bool, len(m.slots))
	for i, s := range m.slots {
		out[i] = s.locked
	}
	return out
}

// UnsavedSlots returns the ids of slots with unsaved edits.
func (m *Manager) UnsavedSlots() []SlotID {
	var out []SlotID
	for _, s := range m.slots {
		if s.unsaved {
			out = append(out, s.id)
		}
	}
	return out
}

// Focus makes id the target of local settings.
func (m *Manager) Focus(id SlotID) Code {
	if _, ok := m.slot(id); !ok {
		return InvalidParameter
	}
	m.focused = id
	return OK
}

// Focused returns the focused slot.
func (m *Manager) Focused() SlotID {
	return m.focused
}

// SlotInfo returns a snapshot of slot id.
func (m *Manager) SlotInfo(id SlotID) (Info, Code) {
	s, ok := m.slot(id)
	if !ok {
		return Info{}, InvalidParameter
	}
	return s.Info(), OK
}

// Slots returns a snapshot of every slot.
func (m *Manager) Slots() []Info {
	out := make([]Info, len(m.slots))
	for i, s := range m.slots {
		out[i] = s.Info()
	}
	return out
}

// =============================================================================
// SETTINGS
// =============================================================================

// GlobalSettings returns the current settings record.
func (m *Manager) GlobalSettings() config.Settings {
	return m.store.Settings()
}

// ApplyGlobalSettings validates and stores payload, then pushes directory,
// encoding, detection and size threshold to every slot. Each slot applies
// its own external/saved guard, so adoption may differ per slot.
func (m *Manager) ApplyGlobalSettings(payload map[string]any) Code {
	if err := m.store.Set(payload); err != nil {
		code := classifySettings(err)
		logrus.WithError(err).WithField("code", code).Debug("settings rejected")
		return code
	}
	m.fanOut()
	return OK
}

// ApplyGlobalSettingsValue is ApplyGlobalSettings for a typed record.
func (m *Manager) ApplyGlobalSettingsValue(s config.Settings) Code {
	return m.ApplyGlobalSettings(s.Map())
}

func (m *Manager) fanOut() {
	s := m.store.Settings()
	for _, slot := range m.slots {
		slot.SetDefaultDirectory(s.SavePath)
		slot.SetDefaultEncoding(charset.Name(s.Encoding))
		slot.SetAutoDetect(s.AutoEncoding)
		slot.SetSizeThreshold(s.FileSizeWarningTh)
	}
	logrus.WithFields(logrus.Fields{
		"savepath": s.SavePath,
		"encoding": s.Encoding,
		"auto":     s.AutoEncoding,
	}).Debug("settings applied")
}

// LocalSettings returns the focused slot's settings.
func (m *Manager) LocalSettings() LocalSettings {
	return LocalSettings{Slot: m.focused, Encoding: m.slots[m.focused].encoding}
}

// ApplyLocalSettings sets the focused slot's encoding. ls.Slot is ignored.
func (m *Manager) ApplyLocalSettings(ls LocalSettings) Code {
	return m.slots[m.focused].SetEncoding(ls.Encoding)
}

// UISettings returns the presentation subset of the settings.
func (m *Manager) UISettings() UISettings {
	s := m.store.Settings()
	return UISettings{FontSize: s.FontSize, Font: s.Font, TopMost: s.TopMost}
}

// SetFontSize changes only the font size.
func (m *Manager) SetFontSize(size float64) Code {
	return classifySettings(m.store.SetFontSize(size))
}

// LoadSettingsFile reads path into the store and pushes the result to the
// slots. On failure the previous settings stay in force.
func (m *Manager) LoadSettingsFile(path string) Code {
	if err := m.store.Load(path); err != nil {
		code := classifySettings(err)
		logrus.WithError(err).WithFields(logrus.Fields{"path": path, "code": code}).Warn("settings file not loaded")
		return code
	}
	m.fanOut()
	return OK
}

// SaveSettingsFile writes the current settings to path.
func (m *Manager) SaveSettingsFile(path string) Code {
	if err := m.store.Save(path); err != nil {
		code := classifySettings(err)
		logrus.WithError(err).WithFields(logrus.Fields{"path": path, "code": code}).Warn("settings file not saved")
		return code
	}
	return OK
}
