/*
 * validate.go, part of goeqdsk.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"fmt"

	"github.com/rmera/goeqdsk/convert"
	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool   `json:"valid" yaml:"valid"`
	File   string `json:"file" yaml:"file"`
	Format string `json:"format" yaml:"format"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var inputFormat string
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check an equilibrium file without converting it",
		Long: `Check an equilibrium file without converting it.

J-format files are first checked against the CUE schema of the format, which
reports every misplaced or mistyped field at once, and then decoded. G-format
files are decoded, including the header line.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0], inputFormat)
		},
	}
	cmd.Flags().StringVar(&inputFormat, "input-format", "auto", "format of the input file (auto|g|j)")
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path, inputFormat string) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	f, err := parseInputFormat(inputFormat, path)
	if err != nil {
		return formatter.Fail(ExitUsage, err)
	}
	C := opts.config().Converter(0)
	formatter.VerboseLog("Validating %s as %s-format", path, f)
	if f == convert.J {
		err = C.Validate(path)
	} else {
		_, err = C.ReadG(path)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, err)
	}
	res := ValidationResult{Valid: true, File: path, Format: f.String()}
	return formatter.Success(res, fmt.Sprintf("✓ %s is a valid %s-format file", path, f))
}
