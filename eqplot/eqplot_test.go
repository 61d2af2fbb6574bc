/*
 * eqplot_test.go, part of goeqdsk.
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

package eqplot

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	eqdsk "github.com/rmera/goeqdsk"
	"github.com/rmera/goeqdsk/internal/testrec"
)

func TestRender(Te *testing.T) {
	for _, d := range [][2]int{{33, 65}, {1, 1}, {2, 5}} {
		R := testrec.Sample(d[0], d[1])
		var buf bytes.Buffer
		if err := Render(R, &buf, &Options{Width: 15, Height: 10, Levels: 10}); err != nil {
			Te.Fatalf("%v: %v", d, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			Te.Fatalf("%v: not a PNG: %v", d, err)
		}
		if b := img.Bounds(); b.Dx() <= b.Dy() {
			Te.Errorf("%v: expected a landscape image, got %v", d, b)
		}
	}
}

func TestPlotFile(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "overview.png")
	if err := Plot(testrec.Sample(17, 33), name, nil); err != nil {
		Te.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		Te.Errorf("no image written: %v", err)
	}
	bad := testrec.Sample(3, 3)
	bad.Bcentr = math.Inf(1)
	err := Plot(bad, filepath.Join(dir, "bad.png"), nil)
	var rerr *eqdsk.RecordError
	if !errors.As(err, &rerr) {
		Te.Errorf("expected a RecordError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.png")); err == nil {
		Te.Errorf("a failed plot left a file behind")
	}
}

func TestLevels(Te *testing.T) {
	l := levels(3, 0, 4)
	if len(l) != 3 || l[0] != 1 || l[2] != 3 {
		Te.Errorf("unexpected levels %v", l)
	}
	if levels(5, 1, 1) != nil {
		Te.Errorf("a flat grid has no levels")
	}
}

func TestSummary(Te *testing.T) {
	grid, magnetic := Summary(testrec.Sample(33, 65))
	want := map[string]string{"nx": "33", "ny": "65", "rdim": "1.7", "rcentr": "1.6955", "zmid": "0",
		"simagx": "-0.4567", "bcentr": "-2", "cpasma": "1.2e+06"}
	got := make(map[string]string)
	for _, e := range append(grid, magnetic...) {
		got[e.Name] = e.Value
	}
	if len(got) != 13 {
		Te.Errorf("expected 13 entries, got %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			Te.Errorf("%s: got %q, want %q", k, got[k], v)
		}
	}
}
