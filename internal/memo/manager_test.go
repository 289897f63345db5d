// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/config"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	store := config.NewStore()
	s := store.Settings()
	s.SavePath = dir
	require.NoError(t, store.Replace(s))
	return NewManager(DefaultSlotCount, store), dir
}

func TestManager_SaveTagsSlot(t *testing.T) {
	m, dir := newTestManager(t)

	res := m.Save(2, "note", "hello", SaveOptions{})
	require.Equal(t, OK, res.Code)
	assert.Equal(t, SlotID(2), res.Slot)
	assert.FileExists(t, filepath.Join(dir, "note.txt"))
}

func TestManager_InvalidSlot(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Equal(t, InvalidParameter, m.Save(3, "a", "x", SaveOptions{}).Code)
	assert.Equal(t, InvalidParameter, m.Load(-1, "a", LoadOptions{}).Code)
	assert.Equal(t, InvalidParameter, m.Clear(7))
	assert.Equal(t, InvalidParameter, m.MarkUnsaved(3))
	assert.Equal(t, InvalidParameter, m.Focus(3))
	_, code := m.ToggleLock(3)
	assert.Equal(t, InvalidParameter, code)
	_, code = m.SlotInfo(3)
	assert.Equal(t, InvalidParameter, code)
}

func TestManager_LoadAlreadyOpen(t *testing.T) {
	m, dir := newTestManager(t)
	path := filepath.Join(dir, "shared.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.Equal(t, OK, m.Load(0, path, LoadOptions{}).Code)

	res := m.Load(1, path, LoadOptions{Overwrite: true, IgnoreSizeCheck: true})
	assert.Equal(t, AlreadyOpen, res.Code)
	assert.Equal(t, SlotID(1), res.Slot)

	// A relative spelling of the same file is still caught.
	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, path)
	require.NoError(t, err)
	assert.Equal(t, AlreadyOpen, m.Load(2, rel, LoadOptions{}).Code)

	// The holder itself may reload it.
	assert.Equal(t, OK, m.Load(0, path, LoadOptions{Overwrite: true}).Code)

	// Once cleared the path is free.
	require.Equal(t, OK, m.Clear(0))
	assert.Equal(t, OK, m.Load(1, path, LoadOptions{}).Code)
}

func TestManager_SavedPathBlocksLoadElsewhere(t *testing.T) {
	m, dir := newTestManager(t)
	require.Equal(t, OK, m.Save(0, "a", "x", SaveOptions{}).Code)

	assert.Equal(t, AlreadyOpen, m.Load(1, filepath.Join(dir, "a.txt"), LoadOptions{}).Code)
}

func TestManager_Reload(t *testing.T) {
	m, dir := newTestManager(t)
	path := filepath.Join(dir, "in.txt")
	raw, err := charset.Encode(japaneseText, charset.EUCJP)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	assert.Equal(t, InvalidParameter, m.Reload(0, charset.EUCJP).Code, "nothing loaded")

	require.Equal(t, OK, m.Load(0, path, LoadOptions{Encoding: charset.SJIS}).Code)
	m.MarkUnsaved(0)

	res := m.Reload(0, charset.EUCJP)
	require.Equal(t, OK, res.Code)
	assert.Equal(t, japaneseText, res.Text)
	assert.Equal(t, charset.EUCJP, res.Encoding)
	assert.Empty(t, m.UnsavedSlots())

	assert.Equal(t, InvalidParameter, m.Reload(0, charset.Unicode).Code)

	require.Equal(t, OK, m.Save(1, "internal", "x", SaveOptions{}).Code)
	assert.Equal(t, InvalidParameter, m.Reload(1, charset.UTF8).Code, "internal files cannot be reloaded")
}

func TestManager_UnsavedAndLockStates(t *testing.T) {
	m, _ := newTestManager(t)

	require.Equal(t, OK, m.MarkUnsaved(0))
	require.Equal(t, OK, m.MarkUnsaved(2))
	assert.Equal(t, []SlotID{0, 2}, m.UnsavedSlots())

	locked, code := m.ToggleLock(1)
	require.Equal(t, OK, code)
	assert.True(t, locked)
	assert.Equal(t, []bool{false, true, false}, m.LockStates())

	assert.Equal(t, Locked, m.Clear(1))
	require.Equal(t, OK, m.Clear(2))
	assert.Equal(t, []SlotID{0}, m.UnsavedSlots())
}

func TestManager_ApplyGlobalSettingsFansOut(t *testing.T) {
	m, dir := newTestManager(t)
	ext := t.TempDir()
	path := filepath.Join(ext, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("ascii"), 0644))

	require.Equal(t, OK, m.Load(0, path, LoadOptions{}).Code)
	require.Equal(t, OK, m.Save(1, "saved", "x", SaveOptions{}).Code)

	next := m.GlobalSettings()
	newDir := t.TempDir()
	next.SavePath = newDir
	next.Encoding = string(charset.SJIS)
	next.AutoEncoding = false
	require.Equal(t, OK, m.ApplyGlobalSettingsValue(next))

	external, _ := m.SlotInfo(0)
	assert.Equal(t, ext, external.Directory)
	assert.Equal(t, charset.UTF8, external.Encoding)

	saved, _ := m.SlotInfo(1)
	assert.Equal(t, newDir, saved.Directory)
	assert.Equal(t, charset.UTF8, saved.Encoding)

	fresh, _ := m.SlotInfo(2)
	assert.Equal(t, newDir, fresh.Directory)
	assert.Equal(t, charset.SJIS, fresh.Encoding)

	assert.Equal(t, dir, filepath.Dir(saved.SavePath))
}

func TestManager_ApplyGlobalSettingsRejects(t *testing.T) {
	m, _ := newTestManager(t)
	before := m.GlobalSettings()

	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   Code
	}{
		{"missing key", func(p map[string]any) { delete(p, "font") }, GenericError},
		{"extra key", func(p map[string]any) { p["color"] = "red" }, GenericError},
		{"string font size", func(p map[string]any) { p["fontsize"] = "16" }, GenericError},
		{"zero font size", func(p map[string]any) { p["fontsize"] = 0.0 }, InvalidFontSize},
		{"missing directory", func(p map[string]any) { p["savepath"] = filepath.Join(before.SavePath, "nope") }, DirectoryNotFound},
		{"internal encoding", func(p map[string]any) { p["encoding"] = "UNICODE" }, InvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := before.Map()
			p["font"] = "Changed"
			tt.mutate(p)
			assert.Equal(t, tt.want, m.ApplyGlobalSettings(p))
			assert.Equal(t, before, m.GlobalSettings())
		})
	}
}

func TestManager_LocalSettings(t *testing.T) {
	m, _ := newTestManager(t)
	require.Equal(t, OK, m.Focus(1))
	assert.Equal(t, SlotID(1), m.Focused())

	require.Equal(t, OK, m.ApplyLocalSettings(LocalSettings{Encoding: charset.JIS}))
	assert.Equal(t, LocalSettings{Slot: 1, Encoding: charset.JIS}, m.LocalSettings())

	other, _ := m.SlotInfo(0)
	assert.Equal(t, charset.UTF8, other.Encoding)

	assert.Equal(t, InvalidParameter, m.ApplyLocalSettings(LocalSettings{Encoding: charset.Unicode}))
}

func TestManager_UISettingsAndFontSize(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, UISettings{FontSize: 16, Font: "Yu Gothic UI", TopMost: true}, m.UISettings())

	assert.Equal(t, InvalidFontSize, m.SetFontSize(-2))
	require.Equal(t, OK, m.SetFontSize(20))
	assert.Equal(t, 20.0, m.UISettings().FontSize)
}

func TestManager_SettingsFileRoundTrip(t *testing.T) {
	m, dir := newTestManager(t)
	path := filepath.Join(t.TempDir(), "settings.json")

	next := m.GlobalSettings()
	next.Encoding = string(charset.EUCJP)
	require.Equal(t, OK, m.ApplyGlobalSettingsValue(next))
	require.Equal(t, OK, m.SaveSettingsFile(path))

	fresh := NewManager(2, nil)
	require.Equal(t, OK, fresh.LoadSettingsFile(path))
	assert.Equal(t, dir, fresh.GlobalSettings().SavePath)

	info, _ := fresh.SlotInfo(1)
	assert.Equal(t, dir, info.Directory)
	assert.Equal(t, charset.EUCJP, info.Encoding)

	assert.Equal(t, NotFound, fresh.LoadSettingsFile(filepath.Join(dir, "missing.json")))
}
