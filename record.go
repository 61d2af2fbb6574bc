/*
 * record.go, part of goeqdsk.
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

package eqdsk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Record is a magnetic equilibrium at one time slice, as stored in both the G and
// the J formats. The 1D profiles are sampled on nx points of normalized flux, from the
// magnetic axis to the boundary. Psi is sampled on the rectangular (R,Z) grid, with
// the row index running over R and the column index over Z.
type Record struct {
	Nx int
	Ny int

	Rdim   float64 //width of the grid in R (m)
	Zdim   float64 //height of the grid in Z (m)
	Rleft  float64 //R of the left edge of the grid (m)
	Zmid   float64 //Z of the middle of the grid (m)
	Rcentr float64 //R where Bcentr is given (m)

	Rmagx  float64 //magnetic axis (m)
	Zmagx  float64
	Simagx float64 //poloidal flux at the axis (Wb/rad)
	Sibdry float64 //poloidal flux at the boundary (Wb/rad)
	Bcentr float64 //vacuum toroidal field at Rcentr (T)
	Cpasma float64 //plasma current (A)

	Fpol    []float64
	Pres    []float64
	FFprime []float64
	Pprime  []float64
	Qpsi    []float64

	Psi *mat.Dense //nx rows, ny columns

	Rbdry []float64
	Zbdry []float64
	Rlim  []float64
	Zlim  []float64

	//Only present in G-format headers.
	Label string
	Date  string
	Shot  string
	Time  string
}

// NewRecord returns a zeroed record with all profiles and the psi grid
// allocated for the given dimensions. It panics if nx or ny are smaller than 1.
func NewRecord(nx, ny int) *Record {
	if nx < 1 || ny < 1 {
		panic(fmt.Sprintf("goeqdsk.NewRecord: invalid grid dimensions %dx%d", nx, ny))
	}
	R := new(Record)
	R.Nx = nx
	R.Ny = ny
	R.Fpol = make([]float64, nx)
	R.Pres = make([]float64, nx)
	R.FFprime = make([]float64, nx)
	R.Pprime = make([]float64, nx)
	R.Qpsi = make([]float64, nx)
	R.Psi = mat.NewDense(nx, ny, nil)
	return R
}

// Profiles returns the 1D profiles with their names, in the order in which
// the G-format stores them (except for qpsi, which goes after psi there).
func (R *Record) Profiles() ([]string, [][]float64) {
	return []string{"fpol", "pres", "ffprime", "pprime", "qpsi"},
		[][]float64{R.Fpol, R.Pres, R.FFprime, R.Pprime, R.Qpsi}
}

// Check returns a *RecordError if R breaks any of the invariants of an equilibrium record:
// positive dimensions, profiles of length nx, a nx*ny psi grid, paired curves of equal
// length and finite values everywhere. It returns nil otherwise.
func (R *Record) Check() error {
	if R.Nx < 1 {
		return &RecordError{Field: "nx", Message: fmt.Sprintf("must be at least 1, got %d", R.Nx)}
	}
	if R.Ny < 1 {
		return &RecordError{Field: "ny", Message: fmt.Sprintf("must be at least 1, got %d", R.Ny)}
	}
	snames := []string{"rdim", "zdim", "rleft", "zmid", "rcentr", "rmagx", "zmagx", "simagx", "sibdry", "bcentr", "cpasma"}
	scalars := []float64{R.Rdim, R.Zdim, R.Rleft, R.Zmid, R.Rcentr, R.Rmagx, R.Zmagx, R.Simagx, R.Sibdry, R.Bcentr, R.Cpasma}
	if i := firstNonFinite(scalars); i >= 0 {
		return &RecordError{Field: snames[i], Message: fmt.Sprintf("non-finite value %v", scalars[i])}
	}
	names, profiles := R.Profiles()
	for i, p := range profiles {
		if len(p) != R.Nx {
			return &RecordError{Field: names[i], Message: fmt.Sprintf("%d elements, expected nx=%d", len(p), R.Nx)}
		}
		if j := firstNonFinite(p); j >= 0 {
			return &RecordError{Field: names[i], Message: fmt.Sprintf("non-finite value at %d", j)}
		}
	}
	if R.Psi == nil {
		return &RecordError{Field: "psi", Message: "missing"}
	}
	if r, c := R.Psi.Dims(); r != R.Nx || c != R.Ny {
		return &RecordError{Field: "psi", Message: fmt.Sprintf("shape (%d,%d), expected (%d,%d)", r, c, R.Nx, R.Ny)}
	}
	for i := 0; i < R.Nx; i++ {
		if j := firstNonFinite(R.Psi.RawRowView(i)); j >= 0 {
			return &RecordError{Field: "psi", Message: fmt.Sprintf("non-finite value at (%d,%d)", i, j)}
		}
	}
	if len(R.Rbdry) != len(R.Zbdry) {
		return &RecordError{Field: "rbdry", Message: fmt.Sprintf("%d points but zbdry has %d", len(R.Rbdry), len(R.Zbdry))}
	}
	if len(R.Rlim) != len(R.Zlim) {
		return &RecordError{Field: "rlim", Message: fmt.Sprintf("%d points but zlim has %d", len(R.Rlim), len(R.Zlim))}
	}
	cnames := []string{"rbdry", "zbdry", "rlim", "zlim"}
	for i, c := range [][]float64{R.Rbdry, R.Zbdry, R.Rlim, R.Zlim} {
		if j := firstNonFinite(c); j >= 0 {
			return &RecordError{Field: cnames[i], Message: fmt.Sprintf("non-finite value at %d", j)}
		}
	}
	return nil
}

// MergeHeader sets the header metadata of R. Fields that already have a value are
// left alone, so metadata never overwrites what a decoder produced.
func (R *Record) MergeHeader(label, date, shot, time string) {
	if R.Label == "" {
		R.Label = label
	}
	if R.Date == "" {
		R.Date = date
	}
	if R.Shot == "" {
		R.Shot = shot
	}
	if R.Time == "" {
		R.Time = time
	}
}

// R returns the nx major radii of the psi grid.
func (R *Record) R() []float64 {
	return span(R.Nx, R.Rleft, R.Rleft+R.Rdim)
}

// Z returns the ny heights of the psi grid.
func (R *Record) Z() []float64 {
	return span(R.Ny, R.Zmid-0.5*R.Zdim, R.Zmid+0.5*R.Zdim)
}

// PsiN returns the normalized flux on which the profiles are sampled (0 at the axis, 1 at the boundary).
func (R *Record) PsiN() []float64 {
	return span(R.Nx, 0, 1)
}

// floats.Span needs at least 2 points.
func span(n int, l, u float64) []float64 {
	if n < 2 {
		return []float64{l}
	}
	return floats.Span(make([]float64, n), l, u)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// returns the index of the first NaN or Inf in s, or -1.
func firstNonFinite(s []float64) int {
	if len(s) == 0 || !floats.HasNaN(s) && !math.IsInf(floats.Max(s), 1) && !math.IsInf(floats.Min(s), -1) {
		return -1
	}
	for i, v := range s {
		if !finite(v) {
			return i
		}
	}
	return -1
}
