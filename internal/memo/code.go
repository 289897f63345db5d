// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memo

import "fmt"

// =============================================================================
// RESULT CODES
// =============================================================================

// Code is the flat result taxonomy returned by every slot and registry
// operation. The numeric values are stable and appear in logs.
type Code int

const (
	OK Code = 0

	// File codes
	FileExists        Code = 1
	NotFound          Code = 2
	DirectoryNotFound Code = 3
	PathTooLong       Code = 4
	InvalidFilename   Code = 5
	ColonInFilename   Code = 6
	NoFilename        Code = 7
	SameFilename      Code = 8
	FileTooLarge      Code = 9
	AlreadyOpen       Code = 10
	ContentPending    Code = 11
	Busy              Code = 12
	Locked            Code = 13

	// Settings codes
	InvalidFontSize  Code = 30
	InvalidParameter Code = 31

	GenericError Code = -1
)

var codeNames = map[Code]string{
	OK:                "OK",
	FileExists:        "FileExists",
	NotFound:          "NotFound",
	DirectoryNotFound: "DirectoryNotFound",
	PathTooLong:       "PathTooLong",
	InvalidFilename:   "InvalidFilename",
	ColonInFilename:   "ColonInFilename",
	NoFilename:        "NoFilename",
	SameFilename:      "SameFilename",
	FileTooLarge:      "FileTooLarge",
	AlreadyOpen:       "AlreadyOpen",
	ContentPending:    "ContentPending",
	Busy:              "Busy",
	Locked:            "Locked",
	InvalidFontSize:   "InvalidFontSize",
	InvalidParameter:  "InvalidParameter",
	GenericError:      "GenericError",
}

// String returns the code's name.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// OK reports whether c is OK.
func (c Code) OK() bool {
	return c == OK
}

// NeedsConfirmation reports whether the caller may re-issue the request with
// an override flag after asking the user.
func (c Code) NeedsConfirmation() bool {
	switch c {
	case FileExists, ContentPending, FileTooLarge:
		return true
	}
	return false
}

// Message returns the text a front-end shows for c.
func (c Code) Message() string {
	switch c {
	case OK:
		return "Done."
	case FileExists:
		return "The file already exists. Overwrite it?"
	case NotFound:
		return "The file does not exist. It may have been moved, renamed or deleted."
	case DirectoryNotFound:
		return "The save directory does not exist."
	case PathTooLong:
		return "The path is too long."
	case InvalidFilename:
		return `File names cannot contain \ / : * ? " < > |`
	case ColonInFilename:
		return "File names cannot contain a colon."
	case NoFilename:
		return "Enter a file name."
	case SameFilename:
		return "A file with the same name is already open."
	case FileTooLarge:
		return "The file is large. Open it anyway?"
	case AlreadyOpen:
		return "The file is already open on another page."
	case ContentPending:
		return "This page has content. Discard it and open the file?"
	case Busy:
		return "The file is in use. Close it and try again."
	case Locked:
		return "The page is locked."
	case InvalidFontSize:
		return "The font size is invalid."
	case InvalidParameter:
		return "Invalid parameter."
	default:
		return fmt.Sprintf("Unexpected error (%d).", int(c))
	}
}
