// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/simplememo/internal/app"
	"github.com/jeranaias/simplememo/internal/config"
	"github.com/jeranaias/simplememo/internal/ui/editor"
)

// runEditor opens the full-screen editor. Logs go to the log file so they
// do not draw over the screen.
func runEditor(ctx context.Context, opts config.Options) (err error) {
	logs := setupLogging(opts, true)
	defer logs.Close()

	a, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("shutdown incomplete")
			err = errors.Join(err, cerr)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(editor.New(ctx, a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
