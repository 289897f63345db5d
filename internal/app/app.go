// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/config"
	"github.com/jeranaias/simplememo/internal/history"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/watch"
)

// =============================================================================
// APP
// =============================================================================

// App composes the registry with its supporting services. History and the
// watcher are optional; when either fails to start the app runs without it.
type App struct {
	opts    config.Options
	mgr     *memo.Manager
	hist    *history.Store
	watcher *watch.Watcher

	lastAutoSave time.Time
	now          func() time.Time
}

// New builds an App from opts. The settings file is read if present; a
// missing file leaves the defaults in force.
func New(opts config.Options) (*App, error) {
	if opts.Home == "" {
		opts.Home = config.DefaultOptions().Home
	}
	if err := opts.EnsureHome(); err != nil {
		return nil, err
	}

	a := &App{
		opts: opts,
		mgr:  memo.NewManager(opts.Slots, config.NewStore()),
		now:  time.Now,
	}
	a.lastAutoSave = a.now()

	path := opts.SettingsPath()
	switch code := a.mgr.LoadSettingsFile(path); code {
	case memo.OK:
		logrus.WithField("path", path).Debug("settings loaded")
	case memo.NotFound:
		logrus.WithField("path", path).Info("no settings file, using defaults")
	default:
		logrus.WithFields(logrus.Fields{"path": path, "code": code}).Warn("settings file ignored")
	}

	if !opts.NoHistory {
		h, err := history.Open(opts.HistoryPath())
		if err != nil {
			logrus.WithError(err).Warn("history disabled")
		} else {
			a.hist = h
		}
	}
	if !opts.NoWatch {
		w, err := watch.New()
		if err != nil {
			logrus.WithError(err).Warn("file watcher disabled")
		} else {
			a.watcher = w
		}
	}
	return a, nil
}

// Options returns the options the app was built with.
func (a *App) Options() config.Options {
	return a.opts
}

// Manager exposes the registry for read-only queries.
func (a *App) Manager() *memo.Manager {
	return a.mgr
}

// Close writes the settings file back and releases the history database and
// the watcher.
func (a *App) Close() error {
	var errs []error
	if code := a.mgr.SaveSettingsFile(a.opts.SettingsPath()); code != memo.OK {
		errs = append(errs, errors.New("save settings: "+code.Message()))
	}
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	if a.hist != nil {
		errs = append(errs, a.hist.Close())
	}
	return errors.Join(errs...)
}

// =============================================================================
// FILE OPERATIONS
// =============================================================================

// Save saves text in slot id.
func (a *App) Save(ctx context.Context, id memo.SlotID, filename, text string, overwrite bool) memo.SaveResult {
	prev := a.pathOf(id)
	res := a.mgr.Save(id, filename, text, memo.SaveOptions{Overwrite: overwrite})
	if res.Code == memo.OK {
		a.touched(ctx, id, prev, res.Path, res.Encoding, history.ActionSave)
	}
	return res
}

// Load loads path into slot id. With autoLock on, the slot is locked after
// a successful load.
func (a *App) Load(ctx context.Context, id memo.SlotID, path string, opts memo.LoadOptions) memo.LoadResult {
	prev := a.pathOf(id)
	res := a.mgr.Load(id, path, opts)
	if res.Code != memo.OK {
		return res
	}
	a.touched(ctx, id, prev, res.Path, res.Encoding, history.ActionLoad)
	if a.mgr.GlobalSettings().AutoLock {
		if info, _ := a.mgr.SlotInfo(id); !info.Locked {
			a.mgr.ToggleLock(id)
		}
	}
	return res
}

// Reload re-reads an external slot's file in encoding.
func (a *App) Reload(ctx context.Context, id memo.SlotID, encoding charset.Name) memo.LoadResult {
	prev := a.pathOf(id)
	res := a.mgr.Reload(id, encoding)
	if res.Code == memo.OK {
		a.touched(ctx, id, prev, res.Path, res.Encoding, history.ActionLoad)
	}
	return res
}

// ClearSlot resets slot id and stops watching its file.
func (a *App) ClearSlot(id memo.SlotID) memo.Code {
	prev := a.pathOf(id)
	code := a.mgr.Clear(id)
	if code == memo.OK && prev != "" && a.watcher != nil {
		a.watcher.Untrack(prev)
	}
	return code
}

// MarkUnsaved records an edit on slot id.
func (a *App) MarkUnsaved(id memo.SlotID) memo.Code {
	return a.mgr.MarkUnsaved(id)
}

// ToggleLock flips the lock on slot id.
func (a *App) ToggleLock(id memo.SlotID) (bool, memo.Code) {
	return a.mgr.ToggleLock(id)
}

// LockStates returns every slot's lock flag.
func (a *App) LockStates() []bool {
	return a.mgr.LockStates()
}

// UnsavedSlots returns the slots with unsaved edits.
func (a *App) UnsavedSlots() []memo.SlotID {
	return a.mgr.UnsavedSlots()
}

// Focus selects the slot that local settings apply to.
func (a *App) Focus(id memo.SlotID) memo.Code {
	return a.mgr.Focus(id)
}

// Slots returns a snapshot of every slot.
func (a *App) Slots() []memo.Info {
	return a.mgr.Slots()
}

func (a *App) pathOf(id memo.SlotID) string {
	info, _ := a.mgr.SlotInfo(id)
	return info.SavePath
}

// touched updates the watcher and history after a successful read or write.
func (a *App) touched(ctx context.Context, id memo.SlotID, prev, path string, enc charset.Name, action history.Action) {
	if a.watcher != nil {
		if prev != "" && prev != path {
			a.watcher.Untrack(prev)
		}
		if data, err := os.ReadFile(path); err == nil {
			if err := a.watcher.Track(path, data); err != nil {
				logrus.WithError(err).WithField("path", path).Debug("watch failed")
			}
		}
	}
	if a.hist != nil {
		_, err := a.hist.Record(ctx, history.Entry{
			Slot:     int(id),
			Path:     path,
			Encoding: string(enc),
			Action:   action,
		})
		if err != nil {
			logrus.WithError(err).Warn("history not recorded")
		}
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

// GlobalSettings returns the settings record.
func (a *App) GlobalSettings() config.Settings {
	return a.mgr.GlobalSettings()
}

// ApplyGlobalSettings validates and applies payload.
func (a *App) ApplyGlobalSettings(payload map[string]any) memo.Code {
	return a.mgr.ApplyGlobalSettings(payload)
}

// ApplyGlobalSettingsValue validates and applies s.
func (a *App) ApplyGlobalSettingsValue(s config.Settings) memo.Code {
	return a.mgr.ApplyGlobalSettingsValue(s)
}

// LocalSettings returns the focused slot's settings.
func (a *App) LocalSettings() memo.LocalSettings {
	return a.mgr.LocalSettings()
}

// ApplyLocalSettings sets the focused slot's encoding.
func (a *App) ApplyLocalSettings(ls memo.LocalSettings) memo.Code {
	return a.mgr.ApplyLocalSettings(ls)
}

// UISettings returns the presentation settings.
func (a *App) UISettings() memo.UISettings {
	return a.mgr.UISettings()
}

// SetFontSize changes the font size.
func (a *App) SetFontSize(size float64) memo.Code {
	return a.mgr.SetFontSize(size)
}

// LoadSettingsFile reads settings from path.
func (a *App) LoadSettingsFile(path string) memo.Code {
	return a.mgr.LoadSettingsFile(path)
}

// SaveSettingsFile writes settings to path.
func (a *App) SaveSettingsFile(path string) memo.Code {
	return a.mgr.SaveSettingsFile(path)
}

// =============================================================================
// HISTORY, AUTOSAVE, CHANGES
// =============================================================================

// Recent lists recently used files, newest first.
func (a *App) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	if a.hist == nil {
		return nil, nil
	}
	return a.hist.Recent(ctx, limit)
}

// RestoreLastFiles reopens each slot's last file when loadLastFile is on.
// Slots that are not pristine are skipped. Files that no longer exist are
// dropped from history.
func (a *App) RestoreLastFiles(ctx context.Context) []memo.LoadResult {
	if a.hist == nil || !a.mgr.GlobalSettings().LoadLastFile {
		return nil
	}
	var out []memo.LoadResult
	for _, info := range a.mgr.Slots() {
		if info.SavePath != "" || info.Unsaved {
			continue
		}
		last, err := a.hist.Last(ctx, int(info.ID))
		if err != nil {
			if !errors.Is(err, history.ErrNotFound) {
				logrus.WithError(err).Warn("history lookup failed")
			}
			continue
		}
		res := a.Load(ctx, info.ID, last.Path, memo.LoadOptions{
			IgnoreSizeCheck: true,
			Encoding:        charset.Name(last.Encoding),
		})
		if res.Code == memo.NotFound {
			if err := a.hist.Forget(ctx, last.Path); err != nil {
				logrus.WithError(err).Debug("history forget failed")
			}
		}
		if res.Code != memo.OK {
			logrus.WithFields(logrus.Fields{"slot": info.ID, "path": last.Path, "code": res.Code}).Info("last file not restored")
		}
		out = append(out, res)
	}
	return out
}

// AutoSaveInterval returns the autosave period, or 0 when autosave is off.
func (a *App) AutoSaveInterval() time.Duration {
	s := a.mgr.GlobalSettings()
	if !s.AutoSave {
		return 0
	}
	return time.Duration(s.AutoSaveSpan) * time.Minute
}

// AutoSaveDue reports whether an autosave pass should run.
func (a *App) AutoSaveDue() bool {
	iv := a.AutoSaveInterval()
	return iv > 0 && a.now().Sub(a.lastAutoSave) >= iv
}

// AutoSave re-saves each unsaved, unlocked slot that has a path of record
// in its current directory, using texts for the content. Slots missing from
// texts are skipped.
func (a *App) AutoSave(ctx context.Context, texts map[memo.SlotID]string) []memo.SaveResult {
	a.lastAutoSave = a.now()
	var out []memo.SaveResult
	for _, info := range a.mgr.Slots() {
		name := info.SaveName()
		if !info.Unsaved || info.Locked || name == "" {
			continue
		}
		if filepath.Dir(info.SavePath) != filepath.Clean(absDir(info.Directory)) {
			continue
		}
		text, ok := texts[info.ID]
		if !ok {
			continue
		}
		res := a.Save(ctx, info.ID, name, text, false)
		logrus.WithFields(logrus.Fields{"slot": info.ID, "code": res.Code}).Debug("autosave")
		out = append(out, res)
	}
	return out
}

func absDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// Changes delivers on-disk changes to slot files. It is nil when the
// watcher is disabled.
func (a *App) Changes() <-chan watch.Change {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Changes()
}

// SlotForPath returns the slot holding path.
func (a *App) SlotForPath(path string) (memo.SlotID, bool) {
	clean := filepath.Clean(path)
	for _, info := range a.mgr.Slots() {
		if info.SavePath == clean {
			return info.ID, true
		}
	}
	return 0, false
}
