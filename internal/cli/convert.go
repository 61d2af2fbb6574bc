/*
 * convert.go, part of goeqdsk.
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

	"github.com/spf13/cobra"
)

// ConvertResult is the structured output of a successful conversion.
type ConvertResult struct {
	Direction   string `json:"direction" yaml:"direction"`
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

// NewConvertCommand creates the convert command and its g2j and j2g subcommands.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an equilibrium between the G and J formats",
	}
	var indent int
	cmd.PersistentFlags().IntVar(&indent, "indent", 0, "spaces per level in J-format output (0: from the configuration)")

	g2j := &cobra.Command{
		Use:   "g2j <src> <dst>",
		Short: "Convert a G-format file into a J-format one",
		Long: `Convert a G-format file into a J-format one. The label, date, shot and time
in the first line of the G-format file are carried over.`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, cmd, "g2j", args[0], args[1], indent)
		},
	}
	j2g := &cobra.Command{
		Use:   "j2g <src> <dst>",
		Short: "Convert a J-format file into a G-format one",
		Long: `Convert a J-format file into a G-format one. The metadata in the J-format
file is not carried over, a placeholder header line is written instead.`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, cmd, "j2g", args[0], args[1], indent)
		},
	}
	cmd.AddCommand(g2j, j2g)
	return cmd
}

func runConvert(opts *RootOptions, cmd *cobra.Command, direction, src, dst string, indent int) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if indent < 0 {
		return formatter.Fail(ExitUsage, NewExitError(ExitUsage, fmt.Sprintf("--indent must not be negative, got %d", indent)))
	}
	C := opts.config().Converter(indent)
	formatter.VerboseLog("Converting %s (%s) into %s", src, direction, dst)
	var err error
	if direction == "g2j" {
		err = C.ConvertGToJ(src, dst)
	} else {
		err = C.ConvertJToG(src, dst)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, err)
	}
	res := ConvertResult{Direction: direction, Source: src, Destination: dst}
	return formatter.Success(res, fmt.Sprintf("✓ %s -> %s", src, dst))
}
