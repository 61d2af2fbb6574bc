/*
 * testrec.go, part of goeqdsk.
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

// Package testrec builds equilibrium records for the tests of the other packages.
// All the values have at most 10 significant digits, so they survive the
// 5e16.9 G-format exactly.
package testrec

import (
	"testing"

	eqdsk "github.com/rmera/goeqdsk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Sample returns a nx by ny record with a 3-point boundary and a 4-point limiter,
// and no header metadata.
func Sample(nx, ny int) *eqdsk.Record {
	R := eqdsk.NewRecord(nx, ny)
	R.Rdim = 1.7
	R.Zdim = 3.2
	R.Rleft = 0.84
	R.Zmid = 0
	R.Rcentr = 1.6955
	R.Rmagx = 1.7321
	R.Zmagx = -0.0213
	R.Simagx = -0.4567
	R.Sibdry = 0.0123
	R.Bcentr = -2
	R.Cpasma = 1.2e6
	for i := 0; i < nx; i++ {
		x := float64(i)
		R.Fpol[i] = 1.5 + 0.125*x
		R.Pres[i] = 10000 - 2500*x
		R.FFprime[i] = -0.5 + 0.25*x
		R.Pprime[i] = -1024 + 512*x
		R.Qpsi[i] = 1 + 0.5*x*x
		for j := 0; j < ny; j++ {
			R.Psi.Set(i, j, -1+0.0625*float64(i*ny+j))
		}
	}
	R.Rbdry = []float64{1.1, 2.3, 1.1}
	R.Zbdry = []float64{0, 0.5, -0.5}
	R.Rlim = []float64{1, 2.5, 2.5, 1}
	R.Zlim = []float64{-1.5, -1.5, 1.5, 1.5}
	return R
}

// Equal fails the test if the physics fields of a and b differ. The header metadata is not compared.
func Equal(Te *testing.T, a, b *eqdsk.Record) {
	Te.Helper()
	if a.Nx != b.Nx || a.Ny != b.Ny {
		Te.Fatalf("dimensions differ: %dx%d vs %dx%d", a.Nx, a.Ny, b.Nx, b.Ny)
	}
	sa := []float64{a.Rdim, a.Zdim, a.Rleft, a.Zmid, a.Rcentr, a.Rmagx, a.Zmagx, a.Simagx, a.Sibdry, a.Bcentr, a.Cpasma}
	sb := []float64{b.Rdim, b.Zdim, b.Rleft, b.Zmid, b.Rcentr, b.Rmagx, b.Zmagx, b.Simagx, b.Sibdry, b.Bcentr, b.Cpasma}
	if !floats.Equal(sa, sb) {
		Te.Errorf("scalars differ: %v vs %v", sa, sb)
	}
	na, pa := a.Profiles()
	_, pb := b.Profiles()
	for i := range pa {
		if !floats.Equal(pa[i], pb[i]) {
			Te.Errorf("%s differs: %v vs %v", na[i], pa[i], pb[i])
		}
	}
	if !mat.Equal(a.Psi, b.Psi) {
		Te.Errorf("psi differs:\n%v\nvs\n%v", mat.Formatted(a.Psi), mat.Formatted(b.Psi))
	}
	curves := [][2][]float64{{a.Rbdry, b.Rbdry}, {a.Zbdry, b.Zbdry}, {a.Rlim, b.Rlim}, {a.Zlim, b.Zlim}}
	for i, c := range curves {
		if len(c[0]) == 0 && len(c[1]) == 0 {
			continue
		}
		if !floats.Equal(c[0], c[1]) {
			Te.Errorf("curve %d differs: %v vs %v", i, c[0], c[1])
		}
	}
}
