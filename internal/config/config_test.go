// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload(t *testing.T) map[string]any {
	t.Helper()
	s := Default()
	s.SavePath = t.TempDir()
	return s.Map()
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestDefaultMatchesSchema(t *testing.T) {
	m := Default().Map()
	require.Len(t, m, len(Schema))
	for _, f := range Schema {
		v, ok := m[f.Key]
		require.True(t, ok, f.Key)
		kind, ok := kindOf(v)
		require.True(t, ok)
		assert.Equal(t, f.Kind, kind, f.Key)
	}
	assert.NoError(t, Validate(m), "./ always exists")
}

func TestValidate_Structural(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any) map[string]any
	}{
		{"nil payload", func(map[string]any) map[string]any { return nil }},
		{"missing key", func(m map[string]any) map[string]any { delete(m, "font"); return m }},
		{"extra key", func(m map[string]any) map[string]any { m["theme"] = "dark"; return m }},
		{"unknown key swapped in", func(m map[string]any) map[string]any {
			delete(m, "font")
			m["fontFamily"] = "x"
			return m
		}},
		{"null value", func(m map[string]any) map[string]any { m["font"] = nil; return m }},
		{"string for number", func(m map[string]any) map[string]any { m["fontsize"] = "16"; return m }},
		{"number for bool", func(m map[string]any) map[string]any { m["topMost"] = 1.0; return m }},
		{"bool for string", func(m map[string]any) map[string]any { m["encoding"] = true; return m }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(validPayload(t)))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{"missing directory", "savepath", filepath.Join(os.TempDir(), "simplememo-no-such-dir-4711"), ErrDirectoryNotFound},
		{"zero font size", "fontsize", 0.0, ErrInvalidFontSize},
		{"negative font size", "fontsize", int64(-3), ErrInvalidFontSize},
		{"internal encoding", "encoding", "UNICODE", ErrInvalidValue},
		{"unknown encoding", "encoding", "LATIN1", ErrInvalidValue},
		{"zero threshold", "fileSizeWarningTh", 0.0, ErrInvalidValue},
		{"zero autosave span", "autoSaveSpan", -1.0, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validPayload(t)
			m[tt.key] = tt.value
			err := Validate(m)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.key, verr.Field)
		})
	}
}

func TestValidate_SavePathMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	m := validPayload(t)
	m["savepath"] = file
	assert.ErrorIs(t, Validate(m), ErrDirectoryNotFound)
}

// =============================================================================
// STORE TESTS
// =============================================================================

func TestStore_SetIsAllOrNothing(t *testing.T) {
	store := NewStore()
	before := store.Settings()

	m := validPayload(t)
	m["font"] = "Noto Sans"
	m["fontsize"] = -1.0
	require.Error(t, store.Set(m))
	assert.Equal(t, before, store.Settings())

	m["fontsize"] = 20.0
	require.NoError(t, store.Set(m))
	assert.Equal(t, "Noto Sans", store.Settings().Font)
	assert.Equal(t, 20.0, store.Settings().FontSize)
}

func TestStore_SetFontSize(t *testing.T) {
	store := NewStore()
	require.ErrorIs(t, store.SetFontSize(0), ErrInvalidFontSize)
	assert.Equal(t, 16.0, store.Settings().FontSize)

	require.NoError(t, store.SetFontSize(12))
	assert.Equal(t, 12.0, store.Settings().FontSize)
}

func TestStore_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	store := NewStore()
	next := store.Settings()
	next.SavePath = dir
	next.Encoding = "SJIS"
	next.AutoLock = true
	next.FileSizeWarningTh = 2048
	require.NoError(t, store.Replace(next))
	require.NoError(t, store.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, byte(0xEF), raw[0], "no BOM")
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, len(Schema))

	loaded := NewStore()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, next, loaded.Settings())
}

func TestStore_TOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	store := NewStore()
	next := store.Settings()
	next.SavePath = dir
	next.FontSize = 13.5
	next.AutoSaveSpan = 10
	require.NoError(t, store.Replace(next))
	require.NoError(t, store.Save(path))

	loaded := NewStore()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, next, loaded.Settings())
}

func TestStore_LoadToleratesBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	s := Default()
	s.SavePath = dir
	body, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, body...), 0644))

	store := NewStore()
	require.NoError(t, store.Load(path))
	assert.Equal(t, dir, store.Settings().SavePath)
}

func TestStore_LoadFailures(t *testing.T) {
	dir := t.TempDir()

	store := NewStore()
	err := store.Load(filepath.Join(dir, "absent.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	assert.ErrorIs(t, store.Load(bad), ErrInvalidPayload)

	null := filepath.Join(dir, "null.json")
	require.NoError(t, os.WriteFile(null, []byte("null"), 0644))
	assert.ErrorIs(t, store.Load(null), ErrInvalidPayload)

	assert.Equal(t, Default(), store.Settings())
}

// =============================================================================
// OPTIONS TESTS
// =============================================================================

func TestOptions_EnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvSettings, "")
	t.Setenv(EnvLogLevel, "debug")

	opts := DefaultOptions()
	opts.ApplyEnvOverrides()

	assert.Equal(t, home, opts.Home)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, filepath.Join(home, SettingsFileName), opts.SettingsPath())
	assert.Equal(t, filepath.Join(home, HistoryFileName), opts.HistoryPath())

	t.Setenv(EnvSettings, "/etc/simplememo.toml")
	opts.ApplyEnvOverrides()
	assert.Equal(t, "/etc/simplememo.toml", opts.SettingsPath())
}
