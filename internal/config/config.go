// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/jeranaias/simplememo/internal/charset"
)

// =============================================================================
// SETTINGS RECORD
// =============================================================================

// Settings is the user settings record. Field names on disk match the JSON
// tags exactly.
type Settings struct {
	SavePath          string  `json:"savepath" toml:"savepath"`
	FontSize          float64 `json:"fontsize" toml:"fontsize"`
	Font              string  `json:"font" toml:"font"`
	TopMost           bool    `json:"topMost" toml:"topMost"`
	Encoding          string  `json:"encoding" toml:"encoding"`
	AutoEncoding      bool    `json:"autoEncoding" toml:"autoEncoding"`
	FileSizeWarningTh int64   `json:"fileSizeWarningTh" toml:"fileSizeWarningTh"`
	LoadLastFile      bool    `json:"loadLastFile" toml:"loadLastFile"`
	NoCloseDialog     bool    `json:"noCloseDialog" toml:"noCloseDialog"`
	AutoSave          bool    `json:"autoSave" toml:"autoSave"`
	AutoSaveSpan      int64   `json:"autoSaveSpan" toml:"autoSaveSpan"`
	AutoLock          bool    `json:"autoLock" toml:"autoLock"`
}

// DefaultFileSizeWarning is the load size above which confirmation is asked.
const DefaultFileSizeWarning = 1 << 20

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		SavePath:          "./",
		FontSize:          16,
		Font:              "Yu Gothic UI",
		TopMost:           true,
		Encoding:          string(charset.UTF8),
		AutoEncoding:      true,
		FileSizeWarningTh: DefaultFileSizeWarning,
		LoadLastFile:      false,
		NoCloseDialog:     false,
		AutoSave:          false,
		AutoSaveSpan:      5,
		AutoLock:          false,
	}
}

// Map returns s as a payload accepted by Validate.
func (s Settings) Map() map[string]any {
	return map[string]any{
		"savepath":          s.SavePath,
		"fontsize":          s.FontSize,
		"font":              s.Font,
		"topMost":           s.TopMost,
		"encoding":          s.Encoding,
		"autoEncoding":      s.AutoEncoding,
		"fileSizeWarningTh": s.FileSizeWarningTh,
		"loadLastFile":      s.LoadLastFile,
		"noCloseDialog":     s.NoCloseDialog,
		"autoSave":          s.AutoSave,
		"autoSaveSpan":      s.AutoSaveSpan,
		"autoLock":          s.AutoLock,
	}
}

// =============================================================================
// SCHEMA
// =============================================================================

// Kind is the primitive type of a settings value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	}
	return "unknown"
}

// Field is one schema entry.
type Field struct {
	Key  string
	Kind Kind
}

// Schema lists every settings key in display order.
var Schema = []Field{
	{"savepath", KindString},
	{"fontsize", KindNumber},
	{"font", KindString},
	{"topMost", KindBool},
	{"encoding", KindString},
	{"autoEncoding", KindBool},
	{"fileSizeWarningTh", KindNumber},
	{"loadLastFile", KindBool},
	{"noCloseDialog", KindBool},
	{"autoSave", KindBool},
	{"autoSaveSpan", KindNumber},
	{"autoLock", KindBool},
}

// Lookup returns the schema entry for key.
func Lookup(key string) (Field, bool) {
	for _, f := range Schema {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// kindOf reports the primitive kind of a decoded value. JSON numbers decode
// as float64 and TOML integers as int64; both are numbers.
func kindOf(v any) (Kind, bool) {
	switch v.(type) {
	case string:
		return KindString, true
	case bool:
		return KindBool, true
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindNumber, true
	}
	return 0, false
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return math.NaN()
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validation errors. Every error returned by Validate wraps exactly one.
var (
	// ErrInvalidPayload indicates a structurally unusable payload: nil, wrong
	// key count, unknown key, null value or mismatched kind.
	ErrInvalidPayload = errors.New("invalid settings payload")

	// ErrDirectoryNotFound indicates savepath is not an existing directory.
	ErrDirectoryNotFound = errors.New("save directory not found")

	// ErrInvalidFontSize indicates fontsize is not a positive number.
	ErrInvalidFontSize = errors.New("invalid font size")

	// ErrInvalidValue indicates another field rule failed.
	ErrInvalidValue = errors.New("invalid settings value")
)

// ValidationError reports which field failed and why.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}

// Validate checks payload against the schema. Structural checks all run
// before any field rule.
func Validate(payload map[string]any) error {
	if payload == nil {
		return invalid(ErrInvalidPayload, "", "payload is null")
	}
	if len(payload) != len(Schema) {
		return invalid(ErrInvalidPayload, "", "expected %d keys, got %d", len(Schema), len(payload))
	}
	for key, value := range payload {
		field, ok := Lookup(key)
		if !ok {
			return invalid(ErrInvalidPayload, key, "unknown key")
		}
		if value == nil {
			return invalid(ErrInvalidPayload, key, "value is null")
		}
		kind, ok := kindOf(value)
		if !ok || kind != field.Kind {
			return invalid(ErrInvalidPayload, key, "expected %s, got %T", field.Kind, value)
		}
	}

	savePath := payload["savepath"].(string)
	if info, err := os.Stat(savePath); err != nil || !info.IsDir() {
		return invalid(ErrDirectoryNotFound, "savepath", "%q is not a directory", savePath)
	}
	if size := toFloat(payload["fontsize"]); !(size > 0) {
		return invalid(ErrInvalidFontSize, "fontsize", "must be positive, got %v", payload["fontsize"])
	}
	if err := charset.ValidateFileEncoding(charset.Name(payload["encoding"].(string))); err != nil {
		return invalid(ErrInvalidValue, "encoding", "%v", err)
	}
	if th := toFloat(payload["fileSizeWarningTh"]); !(th > 0) {
		return invalid(ErrInvalidValue, "fileSizeWarningTh", "must be positive, got %v", payload["fileSizeWarningTh"])
	}
	if span := toFloat(payload["autoSaveSpan"]); !(span > 0) {
		return invalid(ErrInvalidValue, "autoSaveSpan", "must be positive, got %v", payload["autoSaveSpan"])
	}
	return nil
}

// fromMap builds a Settings from a payload that passed Validate.
func fromMap(p map[string]any) Settings {
	return Settings{
		SavePath:          p["savepath"].(string),
		FontSize:          toFloat(p["fontsize"]),
		Font:              p["font"].(string),
		TopMost:           p["topMost"].(bool),
		Encoding:          p["encoding"].(string),
		AutoEncoding:      p["autoEncoding"].(bool),
		FileSizeWarningTh: int64(toFloat(p["fileSizeWarningTh"])),
		LoadLastFile:      p["loadLastFile"].(bool),
		NoCloseDialog:     p["noCloseDialog"].(bool),
		AutoSave:          p["autoSave"].(bool),
		AutoSaveSpan:      int64(toFloat(p["autoSaveSpan"])),
		AutoLock:          p["autoLock"].(bool),
	}
}
