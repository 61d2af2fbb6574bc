/*
 * display.go, part of goeqdsk.
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
	"bufio"
	"io"
	"strconv"
	"strings"

	eqdsk "github.com/rmera/goeqdsk"
	"github.com/rmera/goeqdsk/jeqdsk"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewDisplayCommand creates the display command.
func NewDisplayCommand(rootOpts *RootOptions) *cobra.Command {
	var inputFormat string
	cmd := &cobra.Command{
		Use:   "display <path>",
		Short: "Print every field of an equilibrium",
		Long: `Print every field of an equilibrium, in the order of the J-format.

With --format text, each field name is followed by its value and a blank line.
With --format json the record is written as a J-format document, and with
--format yaml as the equivalent YAML document.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay(rootOpts, cmd, args[0], inputFormat)
		},
	}
	cmd.Flags().StringVar(&inputFormat, "input-format", "auto", "format of the input file (auto|g|j)")
	return cmd
}

func runDisplay(opts *RootOptions, cmd *cobra.Command, path, inputFormat string) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	f, err := parseInputFormat(inputFormat, path)
	if err != nil {
		return formatter.Fail(ExitUsage, err)
	}
	cfg := opts.config()
	formatter.VerboseLog("Reading %s as %s-format", path, f)
	R, err := cfg.Converter(0).Read(path, f)
	if err != nil {
		return formatter.Fail(ExitFailure, err)
	}
	switch opts.Format {
	case "json":
		err = jeqdsk.Encode(formatter.Writer, R, cfg.Indent)
	case "yaml":
		err = displayYAML(formatter.Writer, R)
	default:
		err = displayText(formatter.Writer, R)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, err)
	}
	return nil
}

func formatFloats(s []float64) string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// displayValue renders an entry value for the text output. psi gets one row per line.
func displayValue(v interface{}) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []float64:
		return formatFloats(t)
	case [][]float64:
		rows := make([]string, len(t))
		for i, r := range t {
			rows[i] = formatFloats(r)
		}
		return strings.Join(rows, "\n")
	case string:
		return t
	}
	return ""
}

func displayText(w io.Writer, R *eqdsk.Record) error {
	bw := bufio.NewWriter(w)
	for _, e := range jeqdsk.Entries(R) {
		bw.WriteString(e.Name)
		bw.WriteString("\n")
		bw.WriteString(displayValue(e.Value))
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

// displayYAML writes the entries as a YAML mapping, keeping their order.
// Arrays are written in flow style, one psi row per line.
func displayYAML(w io.Writer, R *eqdsk.Record) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range jeqdsk.Entries(R) {
		v := new(yaml.Node)
		if err := v.Encode(e.Value); err != nil {
			return err
		}
		switch e.Kind {
		case jeqdsk.Profile, jeqdsk.Curve:
			v.Style = yaml.FlowStyle
		case jeqdsk.Grid:
			for _, row := range v.Content {
				row.Style = yaml.FlowStyle
			}
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name}
		doc.Content = append(doc.Content, key, v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
