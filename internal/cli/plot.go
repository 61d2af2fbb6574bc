/*
 * plot.go, part of goeqdsk.
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
	"path/filepath"
	"strconv"
	"strings"

	eqdsk "github.com/rmera/goeqdsk"
	"github.com/rmera/goeqdsk/eqplot"
	"github.com/spf13/cobra"
)

// PlotResult is the structured output of a successful plot.
type PlotResult struct {
	Source string `json:"source" yaml:"source"`
	Image  string `json:"image" yaml:"image"`
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	var output, inputFormat string
	var levels int
	cmd := &cobra.Command{
		Use:   "plot <path>",
		Short: "Draw the flux surfaces and profiles of an equilibrium as a PNG image",
		Long: `Draw the poloidal flux contours, with the boundary, the limiter and the
magnetic axis, and the five 1D profiles of an equilibrium, as a PNG image.
By default the image is written next to the input, with a .png extension.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("levels") {
				levels = -1
			}
			return runPlot(rootOpts, cmd, args[0], output, inputFormat, levels)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file")
	cmd.Flags().StringVar(&inputFormat, "input-format", "auto", "format of the input file (auto|g|j)")
	cmd.Flags().IntVar(&levels, "levels", eqplot.DefaultOptions().Levels, "number of flux contours")
	return cmd
}

// pngName replaces the extension of path, after any compression extension, with .png.
func pngName(path string) string {
	p := eqdsk.TrimCompression(path)
	ext := filepath.Ext(p)
	//G-format files are often named after the time slice, g118897.03000
	if _, err := strconv.Atoi(strings.TrimPrefix(ext, ".")); err == nil {
		return p + ".png"
	}
	return strings.TrimSuffix(p, ext) + ".png"
}

func runPlot(opts *RootOptions, cmd *cobra.Command, path, output, inputFormat string, levels int) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	f, err := parseInputFormat(inputFormat, path)
	if err != nil {
		return formatter.Fail(ExitUsage, err)
	}
	cfg := opts.config()
	popts := cfg.PlotOptions()
	if levels >= 0 {
		popts.Levels = levels
	}
	if output == "" {
		output = pngName(path)
	}
	R, err := cfg.Converter(0).Read(path, f)
	if err != nil {
		return formatter.Fail(ExitFailure, err)
	}
	formatter.VerboseLog("Plotting %s into %s (%gx%g cm, %d levels)", path, output, popts.Width, popts.Height, popts.Levels)
	if err := eqplot.Plot(R, output, popts); err != nil {
		return formatter.Fail(ExitFailure, err)
	}
	return formatter.Success(PlotResult{Source: path, Image: output}, "✓ "+output)
}
