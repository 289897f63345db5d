// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/util"
)

// detection is one row of detect output.
type detection struct {
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
	Label    string `json:"label"`
	Detected bool   `json:"detected"`
	Size     int64  `json:"size"`
}

// detectInfoWidth is the room the encoding and size columns take after
// the path.
const detectInfoWidth = 30

func newDetectCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "detect FILE...",
		Short: "Guess the encoding of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			pathWidth := max(GetTerminalWidth()-detectInfoWidth, MinTerminalWidth/2)
			var failed int
			for _, path := range args {
				d, err := detectFile(path)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("error: ")+err.Error())
					failed++
					continue
				}
				if asJSON {
					b, _ := json.Marshal(d)
					fmt.Fprintln(out, string(b))
					continue
				}
				label := d.Label
				if !d.Detected {
					label = DimStyle.Render("unknown")
				}
				fmt.Fprintf(out, "%s  %-16s %s\n", util.TruncateWidth(d.Path, pathWidth), label, DimStyle.Render(util.HumanSize(d.Size)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per file")
	return cmd
}

func detectFile(path string) (detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return detection{}, err
	}
	det := charset.DetectCharset(data, charset.None)
	d := detection{Path: path, Detected: det.Detected, Size: int64(len(data))}
	if det.Detected {
		name := charset.WithBOM(det.Name, det.BOM)
		desc, _ := charset.Lookup(name)
		d.Encoding = string(name)
		d.Label = desc.Label()
	}
	return d, nil
}
