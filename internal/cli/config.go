/*
 * config.go, part of goeqdsk.
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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rmera/goeqdsk/convert"
	"github.com/rmera/goeqdsk/eqplot"
	"github.com/rmera/goeqdsk/jeqdsk"
	"gopkg.in/yaml.v3"
)

// Config holds the settings that can be given in a YAML file with --config.
type Config struct {
	Indent           int        `yaml:"indent"`            // spaces per level in J-format output
	CompressionLevel int        `yaml:"compression_level"` // for .zst and .gz output, 0 for the default
	Plot             PlotConfig `yaml:"plot"`
}

// PlotConfig is the size, in cm, and number of flux contours of the overview figure.
type PlotConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Levels int     `yaml:"levels"`
}

// DefaultConfig returns the settings used when no configuration file is given.
func DefaultConfig() *Config {
	p := eqplot.DefaultOptions()
	return &Config{
		Indent: jeqdsk.DefaultIndent,
		Plot:   PlotConfig{Width: p.Width, Height: p.Height, Levels: p.Levels},
	}
}

// LoadConfig reads the YAML file path on top of DefaultConfig. Keys not given keep their
// default values, unknown keys are an error. An empty path gives the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Check returns an error if any setting is out of range.
func (c *Config) Check() error {
	switch {
	case c.Indent < 0:
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	case c.CompressionLevel < 0:
		return fmt.Errorf("compression_level must not be negative, got %d", c.CompressionLevel)
	case c.Plot.Width <= 0 || c.Plot.Height <= 0:
		return fmt.Errorf("plot size must be positive, got %gx%g", c.Plot.Width, c.Plot.Height)
	case c.Plot.Levels < 0:
		return fmt.Errorf("plot.levels must not be negative, got %d", c.Plot.Levels)
	}
	return nil
}

// Converter returns a converter with these settings. A positive indent overrides the configured one.
func (c *Config) Converter(indent int) *convert.Converter {
	var C *convert.Converter
	if c.CompressionLevel > 0 {
		C = convert.New(c.CompressionLevel)
	} else {
		C = convert.New()
	}
	C.Indent = c.Indent
	if indent > 0 {
		C.Indent = indent
	}
	return C
}

// PlotOptions returns the options for eqplot.
func (c *Config) PlotOptions() *eqplot.Options {
	return &eqplot.Options{Width: c.Plot.Width, Height: c.Plot.Height, Levels: c.Plot.Levels}
}
