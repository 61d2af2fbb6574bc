/*
 * geqdsk_test.go, part of goeqdsk.
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

package geqdsk

import (
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	eqdsk "github.com/rmera/goeqdsk"
	"github.com/rmera/goeqdsk/internal/testrec"
)

const fixtureComment = "  EFITD    03/16/2004    #  118897  3000ms"

func TestDecodeFixture(Te *testing.T) {
	f, err := os.Open("testdata/small.geqdsk")
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	R, first, err := Decode(f)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(first, fixtureComment) {
		Te.Errorf("unexpected first line %q", first)
	}
	testrec.Equal(Te, testrec.Sample(3, 2), R)
	if R.Label != "" || R.Shot != "" {
		Te.Errorf("the codec should not touch the metadata: %q %q", R.Label, R.Shot)
	}
}

// Writing the sample record must give exactly the file that was written with the Fortran layout.
func TestEncodeFixture(Te *testing.T) {
	want, err := os.ReadFile("testdata/small.geqdsk")
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, testrec.Sample(3, 2), fixtureComment); err != nil {
		Te.Fatal(err)
	}
	if buf.String() != string(want) {
		Te.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRoundTrip(Te *testing.T) {
	for _, d := range [][2]int{{1, 1}, {5, 4}, {7, 3}, {33, 65}} {
		in := testrec.Sample(d[0], d[1])
		var buf bytes.Buffer
		if err := Encode(&buf, in, "test"); err != nil {
			Te.Fatal(err)
		}
		out, _, err := Decode(&buf)
		if err != nil {
			Te.Fatalf("%v: %v", d, err)
		}
		testrec.Equal(Te, in, out)
	}
}

func TestNoCurves(Te *testing.T) {
	in := testrec.Sample(4, 4)
	in.Rbdry, in.Zbdry, in.Rlim, in.Zlim = nil, nil, nil, nil
	var buf bytes.Buffer
	if err := Encode(&buf, in, "test"); err != nil {
		Te.Fatal(err)
	}
	s := buf.String()
	out, _, err := Decode(strings.NewReader(s))
	if err != nil {
		Te.Fatal(err)
	}
	if len(out.Rbdry) != 0 || len(out.Rlim) != 0 {
		Te.Errorf("expected no curves, got %d and %d points", len(out.Rbdry), len(out.Rlim))
	}
	//files that just end after qpsi are accepted too.
	cut := strings.LastIndex(s, "    0    0")
	if cut < 0 {
		Te.Fatalf("no point counts in:\n%s", s)
	}
	s = s[:cut]
	out, _, err = Decode(strings.NewReader(s))
	if err != nil {
		Te.Fatal(err)
	}
	testrec.Equal(Te, in, out)
}

// Dimensions of 1000 or more fill their 4 columns and touch the previous integer.
func TestLargeGrid(Te *testing.T) {
	dims := [][2]int{{1000, 3}, {3, 1000}, {1000, 1000}}
	if testing.Short() {
		dims = dims[:2]
	}
	for _, d := range dims {
		in := testrec.Sample(d[0], d[1])
		var buf bytes.Buffer
		if err := Encode(&buf, in, fixtureComment); err != nil {
			Te.Fatal(err)
		}
		out, first, err := Decode(&buf)
		if err != nil {
			Te.Fatalf("%v: %v", d, err)
		}
		if !strings.HasPrefix(first, fixtureComment) {
			Te.Errorf("unexpected first line %q", first)
		}
		testrec.Equal(Te, in, out)
	}
	if err := Encode(&bytes.Buffer{}, testrec.Sample(10000, 1), ""); err == nil {
		Te.Errorf("a 5-digit dimension can't be written in the header")
	}
}

func TestDims(Te *testing.T) {
	const efit = "  EFITD    03/16/2004    #  118897  3000ms      "
	cases := []struct {
		line   string
		nx, ny int
	}{
		{efit + "   3   3   2", 3, 2},
		{efit + "   31000   3", 1000, 3},
		{efit + "   3   31000", 3, 1000},
		{efit + "   310001000   ", 1000, 1000},
		{efit + "    0   65   129", 65, 129},
		{"short  0 65 129", 65, 129},
	}
	for _, c := range cases {
		nx, ny, err := dims(c.line)
		if err != nil {
			Te.Errorf("%q: %v", c.line, err)
			continue
		}
		if nx != c.nx || ny != c.ny {
			Te.Errorf("%q: got %dx%d, want %dx%d", c.line, nx, ny, c.nx, c.ny)
		}
	}
}

// Negative numbers with 3-digit exponents don't fit 16 columns with 10 significant digits.
func TestNarrowField(Te *testing.T) {
	in := testrec.Sample(3, 2)
	in.Pres[0] = -1.5e-300
	in.Pprime[2] = 2.5e+300
	var buf bytes.Buffer
	if err := Encode(&buf, in, "narrow"); err != nil {
		Te.Fatal(err)
	}
	s := buf.String()
	if !strings.Contains(s, " -1.50000000E-300") {
		Te.Errorf("expected a narrowed field in:\n%s", s)
	}
	out, _, err := Decode(strings.NewReader(s))
	if err != nil {
		Te.Fatal(err)
	}
	testrec.Equal(Te, in, out)
}

// Files written without respecting the columns, and with Fortran D exponents.
func TestDecodeFreeFormat(Te *testing.T) {
	in := `free format  #1 1s   0 2 1
1.7 3.2 1.6955 0.84 0.0
1.7321 -0.0213 -0.4567 0.0123 -2.0
1.2D+06 -0.4567 0 1.7321 0
-0.0213 0 0.0123 0 0
1.5 1.625
10000 7500
-0.5 -0.25
-1024 -512
-1 -0.9375
1 1.5
2 1
1.1 0 2.3 0.5
1 -1.5
`
	R, _, err := Decode(strings.NewReader(in))
	if err != nil {
		Te.Fatal(err)
	}
	if R.Nx != 2 || R.Ny != 1 || R.Cpasma != 1.2e6 || R.Psi.At(1, 0) != -0.9375 {
		Te.Errorf("wrong record %+v", R)
	}
	if len(R.Rbdry) != 2 || R.Zbdry[1] != 0.5 || len(R.Rlim) != 1 || R.Zlim[0] != -1.5 {
		Te.Errorf("wrong curves %v %v %v %v", R.Rbdry, R.Zbdry, R.Rlim, R.Zlim)
	}
}

func TestDecodeErrors(Te *testing.T) {
	good, err := os.ReadFile("testdata/small.geqdsk")
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(string(good), "\n")
	cases := map[string]string{
		"empty":       "",
		"no dims":     "just a comment\n",
		"zero dims":   fixtureComment + "   3   0   2\n",
		"truncated":   strings.Join(lines[:8], "\n"),
		"bad number":  strings.Replace(string(good), "1.625000000E+00", "1.62500000xE+00", 1),
		"bad counts":  strings.Replace(string(good), "    3    4", "    3   -4", 1),
		"short curve": strings.Join(lines[:len(lines)-2], "\n"),
	}
	for name, in := range cases {
		_, _, err := Decode(strings.NewReader(in))
		var cerr *CodecError
		if !errors.As(err, &cerr) {
			Te.Errorf("%s: expected a CodecError, got %v", name, err)
		}
	}
}

func TestEncodeInvalid(Te *testing.T) {
	R := testrec.Sample(3, 3)
	R.Pres[1] = math.Inf(1)
	err := Encode(&bytes.Buffer{}, R, "")
	var rerr *eqdsk.RecordError
	if !errors.As(err, &rerr) || rerr.Field != "pres" {
		Te.Errorf("expected a RecordError on pres, got %v", err)
	}
}
