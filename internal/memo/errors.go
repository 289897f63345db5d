// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memo

import (
	"errors"
	"io/fs"

	"github.com/jeranaias/simplememo/internal/config"
)

// classifyIO maps an error from a file system call onto the taxonomy.
// Anything unrecognised collapses to GenericError.
func classifyIO(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, fs.ErrExist):
		return FileExists
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case isBusy(err):
		return Busy
	case isNameTooLong(err):
		return PathTooLong
	}
	return GenericError
}

// classifySettings maps a settings store error onto the taxonomy.
func classifySettings(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, config.ErrDirectoryNotFound):
		return DirectoryNotFound
	case errors.Is(err, config.ErrInvalidFontSize):
		return InvalidFontSize
	case errors.Is(err, config.ErrInvalidValue):
		return InvalidParameter
	case errors.Is(err, config.ErrInvalidPayload):
		return GenericError
	}
	return classifyIO(err)
}
