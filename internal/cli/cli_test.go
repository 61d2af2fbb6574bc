/*
 * cli_test.go, part of goeqdsk.
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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/goeqdsk/convert"
	"github.com/rmera/goeqdsk/geqdsk"
	"github.com/rmera/goeqdsk/header"
	"github.com/rmera/goeqdsk/internal/testrec"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the CLI and returns the exit code, stdout and stderr.
func run(args ...string) (int, string, string) {
	var out, errw bytes.Buffer
	code := Execute(args, &out, &errw)
	return code, out.String(), errw.String()
}

// gFile writes the sample record as a G-format file with an EFIT header.
func gFile(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	h := header.Fields{Label: "EFIT", Date: "01/02/2020", Shot: "12345", Time: "500", Unit: header.Milliseconds}
	require.NoError(t, geqdsk.Encode(&buf, testrec.Sample(4, 3), header.Format(h)))
	name := filepath.Join(dir, "g012345.00500")
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))
	return name
}

// jFile writes the 2x2 sample record, with metadata, as a J-format file.
func jFile(t *testing.T, dir string) string {
	t.Helper()
	R := testrec.Sample(2, 2)
	R.MergeHeader("EFIT", "01/02/2020", "12345", "500ms")
	name := filepath.Join(dir, "sample.jeqdsk")
	require.NoError(t, convert.New().WriteJ(name, R))
	return name
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "goeqdsk", cmd.Use)
	assert.Contains(t, cmd.Long, "G-format")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{{"convert"}, {"convert", "g2j"}, {"convert", "j2g"}, {"display"}, {"plot"}, {"validate"}}

	for _, path := range commands {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	plotCmd, _, err := cmd.Find([]string{"plot"})
	require.NoError(t, err)
	outputFlag := plotCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	g := gFile(t, dir)
	cases := map[string][]string{
		"unknown command":   {"frobnicate"},
		"missing arguments": {"convert", "g2j", g},
		"extra arguments":   {"display", g, g},
		"bad format":        {"--format", "xml", "display", g},
		"bad flag":          {"display", "--colour", g},
		"bad input format":  {"display", "--input-format", "h", g},
		"negative indent":   {"convert", "g2j", "--indent=-3", g, filepath.Join(dir, "out.json")},
		"missing config":    {"--config", filepath.Join(dir, "nothere.yaml"), "display", g},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, stderr := run(args...)
			assert.Equal(t, ExitUsage, code)
			assert.NotEmpty(t, stderr)
		})
	}
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := gFile(t, dir)
	j := filepath.Join(dir, "out.jeqdsk")
	g2 := filepath.Join(dir, "back.geqdsk.gz")

	code, out, _ := run("convert", "g2j", g, j)
	require.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "✓")

	code, out, _ = run("--format", "json", "convert", "j2g", j, g2)
	require.Equal(t, ExitSuccess, code, out)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "j2g", data["direction"])

	R, err := convert.New().ReadG(g2)
	require.NoError(t, err)
	testrec.Equal(t, testrec.Sample(4, 3), R)
	assert.Equal(t, "goeqdsk", R.Label)
}

func TestConvertIndent(t *testing.T) {
	dir := t.TempDir()
	g := gFile(t, dir)
	j := filepath.Join(dir, "out.json")
	code, out, _ := run("convert", "g2j", "--indent", "4", g, j)
	require.Equal(t, ExitSuccess, code, out)
	data, err := os.ReadFile(j)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"nx\": 4,")

	cfg := filepath.Join(dir, "goeqdsk.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("indent: 3\n"), 0o644))
	code, out, _ = run("--config", cfg, "convert", "g2j", g, j)
	require.Equal(t, ExitSuccess, code, out)
	data, err = os.ReadFile(j)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n   \"nx\": 4,")
}

func TestConvertFailures(t *testing.T) {
	dir := t.TempDir()
	g := gFile(t, dir)
	raw, err := os.ReadFile(g)
	require.NoError(t, err)
	nohash := filepath.Join(dir, "nohash.geqdsk")
	require.NoError(t, os.WriteFile(nohash, bytes.Replace(raw, []byte("#"), []byte(" "), 1), 0o644))
	cases := []struct {
		args []string
		code string
	}{
		{[]string{"convert", "g2j", filepath.Join(dir, "nothere"), filepath.Join(dir, "out.json")}, ErrCodeIO},
		{[]string{"convert", "g2j", nohash, filepath.Join(dir, "out.json")}, ErrCodeHeader},
		{[]string{"convert", "j2g", g, filepath.Join(dir, "out.geqdsk")}, ErrCodeSchema},
	}
	for _, c := range cases {
		code, out, _ := run(append([]string{"--format", "json"}, c.args...)...)
		assert.Equal(t, ExitFailure, code, out)
		var resp CLIResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, c.code, resp.Error.Code, resp.Error.Message)
		assert.NotNil(t, resp.Error.Details, "the call trail should be reported")
	}
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))
	assert.NoFileExists(t, filepath.Join(dir, "out.geqdsk"))
}

func TestDisplayJSON(t *testing.T) {
	j := jFile(t, t.TempDir())
	code, out, _ := run("--format", "json", "display", j)
	require.Equal(t, ExitSuccess, code, out)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "display_json", []byte(out))
}

func TestDisplayText(t *testing.T) {
	j := jFile(t, t.TempDir())
	code, out, _ := run("display", j)
	require.Equal(t, ExitSuccess, code, out)
	assert.True(t, strings.HasPrefix(out, "nx\n2\n\nny\n2\n\nrdim\n1.7\n\n"), out)
	assert.Contains(t, out, "fpol\n1.5 1.625\n\n")
	assert.Contains(t, out, "psi\n-1 -0.9375\n-0.875 -0.8125\n\n")
	assert.Contains(t, out, "cpasma\n1.2e+06\n\n")
	assert.True(t, strings.HasSuffix(out, "time\n500ms\n\n"), out)
}

func TestDisplayYAML(t *testing.T) {
	dir := t.TempDir()
	g := gFile(t, dir)
	code, out, _ := run("--format", "yaml", "display", "--input-format", "g", g)
	require.Equal(t, ExitSuccess, code, out)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 4, doc["nx"])
	assert.Equal(t, 3, doc["ny"])
	assert.Equal(t, "EFIT", doc["label"])
	assert.Equal(t, "500ms", doc["time"])
	psi, ok := doc["psi"].([]interface{})
	require.True(t, ok)
	assert.Len(t, psi, 4)
	assert.Less(t, strings.Index(out, "nx:"), strings.Index(out, "psi:"))
	assert.Less(t, strings.Index(out, "psi:"), strings.Index(out, "qpsi:"))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	j := jFile(t, dir)
	code, out, _ := run("validate", j)
	assert.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "valid J-format")

	code, out, _ = run("validate", gFile(t, dir))
	assert.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "valid G-format")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nx": 2, "ny": 2, "rdim": "wide"}`), 0o644))
	code, out, _ = run("--format", "yaml", "validate", bad)
	assert.Equal(t, ExitFailure, code, out)
	var resp CLIResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeSchema, resp.Error.Code)
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	g := gFile(t, dir)
	code, out, _ := run("plot", "--levels", "5", g)
	require.Equal(t, ExitSuccess, code, out)
	assert.FileExists(t, g+".png")

	png := filepath.Join(dir, "flux.png")
	code, out, _ = run("plot", "-o", png, jFile(t, dir))
	require.Equal(t, ExitSuccess, code, out)
	assert.FileExists(t, png)
}

func TestPNGName(t *testing.T) {
	cases := map[string]string{
		"g118897.03000":       "g118897.03000.png",
		"g118897.03000.gz":    "g118897.03000.png",
		"dir/shot.jeqdsk.zst": "dir/shot.png",
		"shot.json":           "shot.png",
		"equilibrium":         "equilibrium.png",
	}
	for in, want := range cases {
		assert.Equal(t, want, pngName(in), in)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("indent: 4\ncompression_level: 9\nplot:\n  levels: 10\n"), 0o644))
	cfg, err = LoadConfig(good)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Indent)
	assert.Equal(t, 9, cfg.CompressionLevel)
	assert.Equal(t, 10, cfg.Plot.Levels)
	assert.Equal(t, DefaultConfig().Plot.Width, cfg.Plot.Width)
	assert.Equal(t, 4, cfg.Converter(0).Indent)
	assert.Equal(t, 8, cfg.Converter(8).Indent)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	cfg, err = LoadConfig(empty)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	for name, content := range map[string]string{
		"unknown.yaml":  "indnet: 4\n",
		"negative.yaml": "indent: -1\n",
		"size.yaml":     "plot:\n  width: 0\n",
		"broken.yaml":   "indent: [\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err, name)
	}
}
