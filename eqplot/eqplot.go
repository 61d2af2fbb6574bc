/*
 * eqplot.go, part of goeqdsk.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package eqplot draws an overview of an equilibrium record: the poloidal flux
// on the (R,Z) grid, with the boundary and the limiter, and the 1D profiles.
package eqplot

import (
	"errors"
	"image/color"
	"io"
	"strconv"

	eqdsk "github.com/rmera/goeqdsk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Options for the overview figure.
type Options struct {
	Width  float64 //cm
	Height float64 //cm
	Levels int     //number of flux contours
}

// DefaultOptions returns the options used when Plot is given nil.
func DefaultOptions() *Options {
	return &Options{Width: 40, Height: 20, Levels: 50}
}

var (
	red   = color.RGBA{R: 220, A: 255}
	black = color.RGBA{A: 255}
	gray  = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// psiGrid lets the psi matrix of a record be contoured. Columns run over R, rows over Z.
type psiGrid struct {
	psi  mat.Matrix
	r, z []float64
}

func (g psiGrid) Dims() (c, r int)   { return len(g.r), len(g.z) }
func (g psiGrid) Z(c, r int) float64 { return g.psi.At(c, r) }
func (g psiGrid) X(c int) float64    { return g.r[c] }
func (g psiGrid) Y(r int) float64    { return g.z[r] }
func (g psiGrid) Min() float64       { return mat.Min(g.psi) }
func (g psiGrid) Max() float64       { return mat.Max(g.psi) }

func pairs(x, y []float64) plotter.XYs {
	ret := make(plotter.XYs, len(x))
	for i := range x {
		ret[i].X = x[i]
		ret[i].Y = y[i]
	}
	return ret
}

// levels returns n flux values evenly spread between min and max, both excluded.
func levels(n int, min, max float64) []float64 {
	if n < 1 || min >= max {
		return nil
	}
	l := floats.Span(make([]float64, n+2), min, max)
	return l[1 : n+1]
}

// fluxPlot draws the psi contours, the last closed flux surface (psi=sibdry) in red,
// the boundary points, the limiter and the magnetic axis.
func fluxPlot(R *eqdsk.Record, nlevels int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Poloidal flux"
	p.X.Label.Text = "R (m)"
	p.Y.Label.Text = "Z (m)"
	g := psiGrid{psi: R.Psi, r: R.R(), z: R.Z()}
	//a contour needs at least a 2x2 grid.
	if R.Nx > 1 && R.Ny > 1 {
		if l := levels(nlevels, g.Min(), g.Max()); len(l) > 0 {
			p.Add(plotter.NewContour(g, l, palette.Heat(len(l), 1)))
		}
		lcfs := plotter.NewContour(g, []float64{R.Sibdry}, nil)
		lcfs.LineStyles = []draw.LineStyle{{Color: red, Width: vg.Points(1.5)}}
		p.Add(lcfs)
	}
	if len(R.Rbdry) > 0 {
		s, err := plotter.NewScatter(pairs(R.Rbdry, R.Zbdry))
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		s.GlyphStyle.Color = red
		p.Add(s)
		p.Legend.Add("boundary", s)
	}
	if len(R.Rlim) > 0 {
		l, err := plotter.NewLine(pairs(R.Rlim, R.Zlim))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = black
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add("limiter", l)
	}
	axis, err := plotter.NewScatter(plotter.XYs{{X: R.Rmagx, Y: R.Zmagx}})
	if err != nil {
		return nil, err
	}
	axis.GlyphStyle.Shape = draw.PlusGlyph{}
	axis.GlyphStyle.Color = black
	axis.GlyphStyle.Radius = vg.Points(5)
	p.Add(axis)
	p.Legend.Add("magnetic axis", axis)
	return p, nil
}

func profilePlot(name string, psin, v []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "normalized flux"
	p.Add(plotter.NewGrid())
	l, err := plotter.NewLine(pairs(psin, v))
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = gray
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)
	return p, nil
}

// Entry is a labelled value in one of the text panels.
type Entry struct {
	Name  string
	Value string
}

func short(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Summary returns the entries of the two text panels, the grid and the
// magnetic quantities.
func Summary(R *eqdsk.Record) (grid, magnetic []Entry) {
	grid = []Entry{
		{"nx", strconv.Itoa(R.Nx)},
		{"ny", strconv.Itoa(R.Ny)},
		{"rdim", short(R.Rdim)},
		{"zdim", short(R.Zdim)},
		{"rcentr", short(R.Rcentr)},
		{"rleft", short(R.Rleft)},
		{"zmid", short(R.Zmid)},
	}
	magnetic = []Entry{
		{"rmagx", short(R.Rmagx)},
		{"zmagx", short(R.Zmagx)},
		{"simagx", short(R.Simagx)},
		{"sibdry", short(R.Sibdry)},
		{"bcentr", short(R.Bcentr)},
		{"cpasma", short(R.Cpasma)},
	}
	return grid, magnetic
}

// textPlot lists entries, one per line, in an axis-less plot.
func textPlot(title string, entries []Entry) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	n := len(entries)
	xyl := plotter.XYLabels{XYs: make(plotter.XYs, n), Labels: make([]string, n)}
	for i, e := range entries {
		xyl.XYs[i] = plotter.XY{X: 0, Y: float64(n - i)}
		xyl.Labels[i] = e.Name + " = " + e.Value
	}
	l, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	p.Add(l)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, float64(n+1)
	return p, nil
}

// Render draws the overview of R as a PNG image into w: the flux plot
// the five profiles against the normalized flux and two panels with the scalar
// quantities, in a 2x4 grid.
func Render(R *eqdsk.Record, w io.Writer, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := R.Check(); err != nil {
		return eqdsk.ErrDecorate(err, "eqplot.Render")
	}
	const rows, cols = 2, 4
	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, cols)
	}
	var err error
	plots[0][0], err = fluxPlot(R, opts.Levels)
	if err != nil {
		return &PlotError{Panel: "flux", Err: err}
	}
	names, profiles := R.Profiles()
	psin := R.PsiN()
	//the last column holds the text panels
	for i, prof := range profiles {
		k := i + 1
		plots[k/(cols-1)][k%(cols-1)], err = profilePlot(names[i], psin, prof)
		if err != nil {
			return &PlotError{Panel: names[i], Err: err}
		}
	}
	grid, magnetic := Summary(R)
	if plots[0][cols-1], err = textPlot("Grid", grid); err != nil {
		return &PlotError{Panel: "grid", Err: err}
	}
	if plots[1][cols-1], err = textPlot("Magnetics", magnetic); err != nil {
		return &PlotError{Panel: "magnetics", Err: err}
	}
	img := vgimg.New(vg.Length(opts.Width)*vg.Centimeter, vg.Length(opts.Height)*vg.Centimeter)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, t, dc)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			plots[j][i].Draw(canvases[j][i])
		}
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		var e eqdsk.Error
		if errors.As(err, &e) {
			return eqdsk.ErrDecorate(err, "eqplot.Render")
		}
		return &PlotError{Panel: "png", Err: err}
	}
	return nil
}

// Plot renders the overview of R into the PNG file filename, which only
// appears once the image has been completely written.
func Plot(R *eqdsk.Record, filename string, opts *Options) error {
	S, err := eqdsk.CreateFile(filename)
	if err != nil {
		return eqdsk.ErrDecorate(err, "eqplot.Plot")
	}
	if err := Render(R, S, opts); err != nil {
		S.Discard()
		return eqdsk.ErrDecorate(err, "eqplot.Plot")
	}
	return eqdsk.ErrDecorate(S.Commit(), "eqplot.Plot")
}
