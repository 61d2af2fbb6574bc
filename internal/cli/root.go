/*
 * root.go, part of goeqdsk.
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

// Package cli implements the goeqdsk command line.
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/rmera/goeqdsk/convert"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	Config  string // path to a YAML configuration file

	cfg *Config
}

// config returns the loaded configuration, or the defaults if none was loaded.
func (o *RootOptions) config() *Config {
	if o.cfg == nil {
		return DefaultConfig()
	}
	return o.cfg
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the goeqdsk CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "goeqdsk",
		Short: "Convert tokamak equilibria between the G and J formats",
		Long: `goeqdsk reads and writes magnetic equilibrium records in the fixed-column
G-format (geqdsk) written by EFIT and in the JSON-based J-format (jeqdsk).
Files ending in .zst or .gz are transparently (de)compressed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := LoadConfig(opts.Config)
			if err != nil {
				return WrapExitError(ExitUsage, "invalid configuration", err)
			}
			opts.cfg = cfg
			//heads-up messages from the library packages
			if opts.Verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, c.CommandPath(), err)
	})

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "YAML configuration file")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewDisplayCommand(opts))
	cmd.AddCommand(NewPlotCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// Execute runs the CLI with the given arguments and returns the exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "goeqdsk:", err)
	}
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// exactArgs is cobra.ExactArgs, but failing with ExitUsage.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitUsage, cmd.CommandPath(), err)
		}
		return nil
	}
}

// parseInputFormat turns the --input-format flag into a format for path.
func parseInputFormat(flag, path string) (convert.Format, error) {
	switch flag {
	case "", "auto":
		return convert.DetectFormat(path), nil
	case "g", "G", "geqdsk":
		return convert.G, nil
	case "j", "J", "jeqdsk", "json":
		return convert.J, nil
	}
	return 0, NewExitError(ExitUsage, fmt.Sprintf("invalid input format %q: must be auto, g or j", flag))
}
