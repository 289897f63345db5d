// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/util"
)

type convertFlags struct {
	from  string
	to    string
	bom   string
	force bool
}

var bomPolicies = map[string]charset.BOMPolicy{
	"auto":   charset.BOMUnspecified,
	"add":    charset.BOMRequired,
	"remove": charset.BOMAbsent,
}

func newConvertCmd() *cobra.Command {
	var f convertFlags
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Transcode a file between encodings",
		Long:  "Transcode IN into OUT. Without --from the input encoding is detected, falling back to UTF8. OUT may be - for stdout.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, f, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&f.from, "from", "", "Input encoding (default: detect)")
	cmd.Flags().StringVar(&f.to, "to", string(charset.UTF8), "Output encoding")
	cmd.Flags().StringVar(&f.bom, "bom", "auto", "BOM handling: auto (per --to), add or remove")
	cmd.Flags().BoolVar(&f.force, "force", false, "Overwrite OUT if it exists")
	return cmd
}

func runConvert(cmd *cobra.Command, f convertFlags, in, out string) error {
	policy, ok := bomPolicies[f.bom]
	if !ok {
		return fmt.Errorf("--bom must be auto, add or remove, got %q", f.bom)
	}
	to := charset.Name(f.to)
	if err := charset.ValidateFileEncoding(to); err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	from := charset.Name(f.from)
	if from == charset.None {
		det := charset.DetectCharset(data, charset.UTF8)
		from = charset.WithBOM(det.Name, det.BOM)
	} else if err := charset.ValidateFileEncoding(from); err != nil {
		return fmt.Errorf("--from: %w", err)
	}

	if policy == charset.BOMUnspecified {
		d, _ := charset.Lookup(to)
		policy = d.BOM
	}
	result, err := charset.Convert(data, charset.Options{From: from, To: to, BOM: policy})
	if err != nil {
		return err
	}

	if out == "-" {
		_, err := cmd.OutOrStdout().Write(result)
		return err
	}
	mode := util.WriteExclusive
	if f.force {
		mode = util.WriteTruncate
	}
	if err := util.WriteFile(out, result, mode, 0644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", out)
		}
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s -> %s (%s, %s)\n", SuccessStyle.Render("converted"), in, out, from, util.HumanSize(int64(len(result))))
	return nil
}
