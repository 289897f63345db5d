// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options select level and destination.
type Options struct {
	// Level is a logrus level name; empty means "info".
	Level string
	// File, when set, receives the log instead of stderr.
	File string
	// JSON switches to the JSON formatter.
	JSON bool
}

// CheckLevel reports whether level is a valid level name.
func CheckLevel(level string) error {
	if _, err := logrus.ParseLevel(level); err != nil {
		return fmt.Errorf("log level not valid: %q", level)
	}
	return nil
}

// Setup configures the standard logrus logger. The returned closer releases
// the log file, if one was opened.
func Setup(opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		lvl, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level not valid: %q", opts.Level)
		}
		level = lvl
	}
	logrus.SetLevel(level)

	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			DisableColors:   opts.File != "",
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if opts.File == "" {
		logrus.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return f, nil
}

// Discard silences the logger for tests.
func Discard() {
	logrus.SetOutput(io.Discard)
}
