// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jeranaias/simplememo/internal/config"
	"github.com/jeranaias/simplememo/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrNotTerminal is returned when the editor is started without a terminal.
var ErrNotTerminal = errors.New("the editor needs a terminal; use \"simplememo shell\" instead")

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	home      string
	settings  string
	logLevel  string
	slots     int
	noHistory bool
	noWatch   bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "simplememo",
		Short:         "A small multi-page memo editor",
		Long:          "simplememo keeps a few memo pages, saves them as text files and reads files in Japanese and Unicode encodings.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsTTY() || !IsStdoutTTY() {
				return ErrNotTerminal
			}
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			return runEditor(cmd.Context(), opts)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("simplememo %s (commit %s, built %s)\n", Version, GitCommit, BuildDate))

	pf := root.PersistentFlags()
	pf.StringVar(&g.home, "home", "", "Data directory (default: $SIMPLEMEMO_HOME or ~/.simplememo)")
	pf.StringVar(&g.settings, "settings", "", "Settings file, .json or .toml (default: $SIMPLEMEMO_SETTINGS or <home>/settings.json)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $SIMPLEMEMO_LOG_LEVEL or info)")
	pf.IntVar(&g.slots, "slots", config.DefaultOptions().Slots, "Number of memo pages")
	pf.BoolVar(&g.noHistory, "no-history", false, "Do not record or restore recent files")
	pf.BoolVar(&g.noWatch, "no-watch", false, "Do not watch open files for changes")

	root.AddCommand(
		newShellCmd(&g),
		newDetectCmd(),
		newConvertCmd(),
		newSettingsCmd(&g),
		newVersionCmd(),
	)
	return root
}

// options resolves defaults, environment and flags, in increasing precedence.
func (g *globalFlags) options(cmd *cobra.Command) (config.Options, error) {
	opts := config.DefaultOptions()
	opts.ApplyEnvOverrides()

	flags := cmd.Flags()
	if flags.Changed("home") {
		opts.Home = g.home
	}
	if flags.Changed("settings") {
		opts.SettingsFile = g.settings
	}
	if flags.Changed("log-level") {
		opts.LogLevel = g.logLevel
	}
	if flags.Changed("slots") {
		opts.Slots = g.slots
	}
	opts.NoHistory = g.noHistory
	opts.NoWatch = g.noWatch

	if opts.Slots < 1 {
		return opts, fmt.Errorf("--slots must be at least 1, got %d", opts.Slots)
	}
	if err := logging.CheckLevel(opts.LogLevel); err != nil {
		return opts, err
	}
	return opts, nil
}

// setupLogging sends logs to the log file under home, or to stderr when
// toFile is false.
func setupLogging(opts config.Options, toFile bool) io.Closer {
	lo := logging.Options{Level: opts.LogLevel}
	if toFile {
		if err := opts.EnsureHome(); err == nil {
			lo.File = opts.LogPath()
		}
	}
	closer, err := logging.Setup(lo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return io.NopCloser(nil)
	}
	return closer
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		logrus.WithError(err).Debug("command failed")
		return 1
	}
	return 0
}
