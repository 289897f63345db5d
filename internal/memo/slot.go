// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memo

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// SlotID addresses a slot within a Manager. Slots are never destroyed, so
// the index alone is a stable handle.
type SlotID int

// DefaultSlotCount is the number of memo pages in a default Manager.
const DefaultSlotCount = 3

// InternalExtension is appended to files created inside the application.
const InternalExtension = ".txt"

// invalidFilename matches any name containing a reserved path character
// or a control character.
var invalidFilename = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f\x7f]`)

// LoadOptions adjust a Load. A caller sets them when re-issuing a request
// after the user confirmed a warning.
type LoadOptions struct {
	IgnoreSizeCheck bool
	Overwrite       bool
	// Encoding forces the source encoding; empty means detect or default.
	Encoding charset.Name
}

// SaveOptions adjust a Save.
type SaveOptions struct {
	Overwrite bool
}

// LoadResult is returned by Load. Text is only meaningful when Code is OK.
type LoadResult struct {
	Slot     SlotID
	Text     string
	Filename string
	Path     string
	Encoding charset.Name
	Size     int64
	Code     Code
}

// SaveResult is returned by Save.
type SaveResult struct {
	Slot           SlotID
	SaveCount      int
	IsExternalFile bool
	Path           string
	Encoding       charset.Name
	Code           Code
}

// Defaults are the slot-level values that follow the global settings.
type Defaults struct {
	Directory     string
	Encoding      charset.Name
	AutoDetect    bool
	SizeThreshold int64
}

// Info is a read-only snapshot of a slot.
type Info struct {
	ID             SlotID
	SavePath       string
	Directory      string
	Encoding       charset.Name
	IsExternalFile bool
	SaveCount      int
	Unsaved        bool
	Locked         bool
}

// Filename returns the base name of the path of record, or "".
func (i Info) Filename() string {
	if i.SavePath == "" {
		return ""
	}
	return filepath.Base(i.SavePath)
}

// =============================================================================
// SLOT
// =============================================================================

// Slot is one memo page.
type Slot struct {
	id SlotID

	savePath  string
	directory string
	encoding  charset.Name
	external  bool
	saveCount int
	unsaved   bool
	locked    bool

	defaults Defaults
}

// NewSlot returns a pristine slot using d.
func NewSlot(id SlotID, d Defaults) *Slot {
	if d.Encoding == charset.None {
		d.Encoding = charset.UTF8
	}
	s := &Slot{id: id, defaults: d}
	s.reset()
	return s
}

// ID returns the slot's handle.
func (s *Slot) ID() SlotID {
	return s.id
}

// Info returns a snapshot of the slot state.
func (s *Slot) Info() Info {
	return Info{
		ID:             s.id,
		SavePath:       s.savePath,
		Directory:      s.directory,
		Encoding:       s.encoding,
		IsExternalFile: s.external,
		SaveCount:      s.saveCount,
		Unsaved:        s.unsaved,
		Locked:         s.locked,
	}
}

// Unsaved reports whether the slot has edits since the last save or load.
func (s *Slot) Unsaved() bool {
	return s.unsaved
}

// Locked reports whether save and clear are refused.
func (s *Slot) Locked() bool {
	return s.locked
}

// MarkUnsaved records an edit.
func (s *Slot) MarkUnsaved() {
	s.unsaved = true
}

// ToggleLock flips the lock and returns the new state.
func (s *Slot) ToggleLock() bool {
	s.locked = !s.locked
	return s.locked
}

// reset returns the slot to pristine state. The lock is untouched.
func (s *Slot) reset() {
	s.directory = s.defaults.Directory
	s.encoding = s.defaults.Encoding
	s.external = false
	s.saveCount = 0
	s.savePath = ""
	s.unsaved = false
}

// Clear resets the slot. A locked slot refuses.
func (s *Slot) Clear() Code {
	if s.locked {
		return Locked
	}
	s.reset()
	s.log().Debug("slot cleared")
	return OK
}

// =============================================================================
// DEFAULTS
// =============================================================================

// SetDefaultDirectory updates the default directory. The working directory
// follows unless the slot holds an external file.
func (s *Slot) SetDefaultDirectory(dir string) {
	s.defaults.Directory = dir
	if !s.external {
		s.directory = dir
	}
}

// SetDefaultEncoding updates the default encoding. The working encoding
// follows only for a slot that is neither external nor ever saved.
func (s *Slot) SetDefaultEncoding(name charset.Name) Code {
	if charset.ValidateFileEncoding(name) != nil {
		return InvalidParameter
	}
	s.defaults.Encoding = name
	if !s.external && s.saveCount == 0 {
		s.encoding = name
	}
	return OK
}

// SetAutoDetect toggles charset detection on load.
func (s *Slot) SetAutoDetect(on bool) {
	s.defaults.AutoDetect = on
}

// SetSizeThreshold sets the size above which Load asks for confirmation.
// Non-positive values disable the check.
func (s *Slot) SetSizeThreshold(n int64) {
	s.defaults.SizeThreshold = n
}

// SetEncoding changes the working encoding used by the next save.
func (s *Slot) SetEncoding(name charset.Name) Code {
	if charset.ValidateFileEncoding(name) != nil {
		return InvalidParameter
	}
	s.encoding = name
	return OK
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads path into the slot. Every refusal happens before the slot is
// touched; the slot is reset and marked external only once the bytes are in
// hand and decoded.
func (s *Slot) Load(path string, opts LoadOptions) LoadResult {
	res := LoadResult{Slot: s.id}
	fail := func(code Code) LoadResult {
		res.Code = code
		s.log().WithFields(logrus.Fields{"path": path, "code": code}).Debug("load refused")
		return res
	}

	if !opts.Overwrite && (s.unsaved || s.savePath != "") {
		return fail(ContentPending)
	}
	if opts.Encoding != charset.None && charset.ValidateFileEncoding(opts.Encoding) != nil {
		return fail(InvalidParameter)
	}

	abs := absPath(path)
	info, err := os.Stat(abs)
	if err != nil {
		return fail(classifyIO(err))
	}
	if !opts.IgnoreSizeCheck && s.defaults.SizeThreshold > 0 && info.Size() > s.defaults.SizeThreshold {
		res.Size = info.Size()
		return fail(FileTooLarge)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fail(classifyIO(err))
	}

	from := opts.Encoding
	if from == charset.None {
		from = s.defaults.Encoding
		if s.defaults.AutoDetect {
			d := charset.DetectCharset(data, s.defaults.Encoding)
			from = charset.WithBOM(d.Name, d.BOM)
		}
	}
	text, err := charset.Decode(data, from)
	if err != nil {
		s.log().WithError(err).WithField("encoding", from).Warn("decode failed")
		return fail(GenericError)
	}

	s.reset()
	s.external = true
	s.savePath = abs
	s.directory = filepath.Dir(abs)
	s.encoding = from

	s.log().WithFields(logrus.Fields{
		"path":     abs,
		"encoding": from,
		"size":     humanize.IBytes(uint64(len(data))),
	}).Info("memo loaded")

	res.Text = text
	res.Filename = filepath.Base(abs)
	res.Path = abs
	res.Encoding = from
	res.Size = int64(len(data))
	res.Code = OK
	return res
}

// =============================================================================
// SAVE
// =============================================================================

// encodingTxn holds the encoding aside while a save is in flight.
type encodingTxn struct {
	slot      *Slot
	encoding  charset.Name
	committed bool
}

func (s *Slot) beginEncoding() *encodingTxn {
	return &encodingTxn{slot: s, encoding: s.encoding}
}

func (t *encodingTxn) commit() {
	t.committed = true
}

// rollback restores the held encoding unless the transaction committed.
// It is safe to call more than once.
func (t *encodingTxn) rollback() {
	if !t.committed {
		t.slot.encoding = t.encoding
		t.committed = true
	}
}

// Save writes text under filename in the slot's directory.
//
// Files created in the app get InternalExtension appended; external files
// keep their name. The write refuses to replace an existing file unless the
// slot is external, Overwrite is set, or the target is the path of record.
// A fresh internal target starts from the default encoding; the previous
// encoding is restored if the write fails.
func (s *Slot) Save(filename, text string, opts SaveOptions) SaveResult {
	res := SaveResult{Slot: s.id}
	finish := func(code Code) SaveResult {
		res.Code = code
		res.SaveCount = s.saveCount
		res.IsExternalFile = s.external
		res.Path = s.savePath
		res.Encoding = s.encoding
		return res
	}

	if s.locked {
		return finish(Locked)
	}
	if filename == "" {
		return finish(NoFilename)
	}
	if !isDir(s.directory) {
		return finish(DirectoryNotFound)
	}
	if invalidFilename.MatchString(filename) {
		return finish(InvalidFilename)
	}

	name := filename
	if !s.external {
		name += InternalExtension
	}
	target := absPath(filepath.Join(s.directory, name))
	sameTarget := target == s.savePath

	mode := util.WriteExclusive
	if s.external || opts.Overwrite || sameTarget {
		mode = util.WriteTruncate
	}

	txn := s.beginEncoding()
	defer txn.rollback()
	if !s.external && !sameTarget {
		s.encoding = s.defaults.Encoding
	}

	data, err := charset.Encode(text, s.encoding)
	if err != nil {
		s.log().WithError(err).Warn("encode failed")
		txn.rollback()
		return finish(GenericError)
	}
	if err := util.WriteFile(target, data, mode, 0644); err != nil {
		code := classifyIO(err)
		s.log().WithError(err).WithFields(logrus.Fields{"path": target, "code": code}).Debug("write failed")
		txn.rollback()
		return finish(code)
	}

	txn.commit()
	if !sameTarget {
		s.saveCount = 0
	}
	s.savePath = target
	s.saveCount++
	s.unsaved = false

	s.log().WithFields(logrus.Fields{
		"path":     target,
		"encoding": s.encoding,
		"count":    s.saveCount,
	}).Info("memo saved")
	return finish(OK)
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Slot) log() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"slot": s.id})
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

func isDir(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// SaveName returns the filename that makes Save target the path of record,
// or "" for a slot that was never saved or loaded.
func (i Info) SaveName() string {
	name := i.Filename()
	if name == "" || i.IsExternalFile {
		return name
	}
	return strings.TrimSuffix(name, InternalExtension)
}
