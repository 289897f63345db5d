// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/simplememo/internal/config"
)

func newSettingsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect settings files",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			store := config.NewStore()
			if err := store.Load(opts.SettingsPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), store.Settings(), format)
		},
	}
	show.Flags().StringVar(&format, "format", "json", "Output format: json or toml")

	validate := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a settings file without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewStore().Load(args[0]); err != nil {
				var verr *config.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("%s is not valid: %w", args[0], err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("valid"), args[0])
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.SettingsPath())
			return nil
		},
	}

	cmd.AddCommand(show, validate, path)
	return cmd
}

func writeSettings(w io.Writer, s config.Settings, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "toml":
		return toml.NewEncoder(w).Encode(s)
	}
	return fmt.Errorf("--format must be json or toml, got %q", format)
}
