/*
 * geqdsk.go, part of goeqdsk.
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
/*

Package geqdsk reads and writes the fixed-column G-format (geqdsk) written by EFIT.

The layout, in Fortran terms:

	read (neqdsk,2000) (case(i),i=1,6),idum,nw,nh
	read (neqdsk,2020) rdim,zdim,rcentr,rleft,zmid
	read (neqdsk,2020) rmaxis,zmaxis,simag,sibry,bcentr
	read (neqdsk,2020) current,simag,xdum,rmaxis,xdum
	read (neqdsk,2020) zmaxis,xdum,sibry,xdum,xdum
	read (neqdsk,2020) (fpol(i),i=1,nw)
	read (neqdsk,2020) (pres(i),i=1,nw)
	read (neqdsk,2020) (ffprim(i),i=1,nw)
	read (neqdsk,2020) (pprime(i),i=1,nw)
	read (neqdsk,2020) ((psirz(i,j),i=1,nw),j=1,nh)
	read (neqdsk,2020) (qpsi(i),i=1,nw)
	read (neqdsk,2022) nbbbs,limitr
	read (neqdsk,2020) (rbbbs(i),zbbbs(i),i=1,nbbbs)
	read (neqdsk,2020) (rlim(i),zlim(i),i=1,limitr)

	2000 format (6a8,3i4)
	2020 format (5e16.9)
	2022 format (2i5)

The free text in the first line is not interpreted here, see package header.
*/
package geqdsk

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	eqdsk "github.com/rmera/goeqdsk"
)

const (
	commentWidth = 48
	fieldWidth   = 16
	perLine      = 5
	idum         = 3
	intWidth     = 4
	maxDim       = 9999
)

// lineReader reads the file one line at a time, and hands out numbers from the current line.
type lineReader struct {
	r      *bufio.Reader
	lineno int
	fields []string //what is left of the current line
	eof    bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// line returns the next line, without the line terminator. It returns io.EOF only
// when there is nothing left to read.
func (L *lineReader) line() (string, error) {
	if L.eof {
		return "", io.EOF
	}
	s, err := L.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", &eqdsk.IOError{Op: "read", Err: err}
		}
		L.eof = true
		if s == "" {
			return "", io.EOF
		}
	}
	L.lineno++
	return strings.TrimRight(s, "\r\n"), nil
}

// splitFixed cuts a line into 16-column fields.
func splitFixed(line string) []string {
	ret := make([]string, 0, perLine)
	for i := 0; i < len(line); i += fieldWidth {
		end := i + fieldWidth
		if end > len(line) {
			end = len(line)
		}
		f := strings.TrimSpace(line[i:end])
		if f != "" {
			ret = append(ret, f)
		}
	}
	return ret
}

func parseFloat(s string) (float64, error) {
	//Some Fortran compilers write double precision exponents with a D.
	s = strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, s)
	return strconv.ParseFloat(s, 64)
}

// fill reads lines until there is at least one number available.
// Lines are split in 16-column fields, falling back to whitespace-separated
// fields for files that don't respect the columns.
func (L *lineReader) fill() error {
	for len(L.fields) == 0 {
		line, err := L.line()
		if err == io.EOF {
			return &CodecError{Line: L.lineno, Message: "unexpected end of file"}
		}
		if err != nil {
			return err
		}
		fields := splitFixed(line)
		for _, f := range fields {
			if _, err := parseFloat(f); err != nil {
				fields = strings.Fields(line)
				break
			}
		}
		L.fields = fields
	}
	return nil
}

// floats reads n numbers into dst, which must have at least n elements.
func (L *lineReader) floats(dst []float64, what string) error {
	for i := range dst {
		if err := L.fill(); err != nil {
			return eqdsk.ErrDecorate(err, "reading "+what)
		}
		v, err := parseFloat(L.fields[0])
		if err != nil {
			return &CodecError{Line: L.lineno, Message: fmt.Sprintf("bad number %q in %s: %v", L.fields[0], what, err)}
		}
		L.fields = L.fields[1:]
		dst[i] = v
	}
	return nil
}

// ints drops whatever is left of the current line, and reads n integers from the next non-empty one.
func (L *lineReader) ints(n int, what string) ([]int, error) {
	L.fields = nil
	var line string
	var err error
	for strings.TrimSpace(line) == "" {
		line, err = L.line()
		if err != nil {
			return nil, err
		}
	}
	f := strings.Fields(line)
	if len(f) < n {
		return nil, &CodecError{Line: L.lineno, Message: fmt.Sprintf("expected %d integers for %s, got %q", n, what, line)}
	}
	ret := make([]int, n)
	for i := range ret {
		ret[i], err = strconv.Atoi(f[i])
		if err != nil {
			return nil, &CodecError{Line: L.lineno, Message: fmt.Sprintf("bad integer %q in %s", f[i], what)}
		}
	}
	return ret, nil
}

// dims reads nx and ny from the first line. Lines that reach the 3i4 block after the 48
// comment characters are read by column, so dimensions of 1000 or more, which touch the
// previous integer, are read right. Shorter lines, or lines where the columns don't hold
// integers, give the last two integers in them.
func dims(first string) (int, int, error) {
	nx, ny, err := columnDims(first)
	if err != nil {
		nx, ny, err = fieldDims(first)
	}
	if err != nil {
		return 0, 0, err
	}
	if nx < 1 || ny < 1 {
		return 0, 0, &CodecError{Line: 1, Message: fmt.Sprintf("invalid grid dimensions %dx%d", nx, ny)}
	}
	return nx, ny, nil
}

func columnDims(first string) (int, int, error) {
	end := commentWidth + 3*intWidth
	if len(first) < end || strings.TrimSpace(first[end:]) != "" {
		return 0, 0, &CodecError{Line: 1, Message: "no 3i4 block"}
	}
	var n [3]int
	for i := range n {
		c := first[commentWidth+i*intWidth : commentWidth+(i+1)*intWidth]
		v, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return 0, 0, &CodecError{Line: 1, Message: fmt.Sprintf("bad integer %q in columns", c)}
		}
		n[i] = v
	}
	return n[1], n[2], nil
}

func fieldDims(first string) (int, int, error) {
	f := strings.Fields(first)
	if len(f) < 2 {
		return 0, 0, &CodecError{Line: 1, Message: fmt.Sprintf("can't find the grid dimensions in %q", first)}
	}
	nx, err1 := strconv.Atoi(f[len(f)-2])
	ny, err2 := strconv.Atoi(f[len(f)-1])
	if err1 != nil || err2 != nil {
		return 0, 0, &CodecError{Line: 1, Message: fmt.Sprintf("can't read the grid dimensions in %q", first)}
	}
	return nx, ny, nil
}

// Decode reads a G-format record from r. It returns the record and the first line of the
// file, untouched, so the metadata in it can be extracted separately. The header metadata
// fields of the record are left empty.
func Decode(r io.Reader) (*eqdsk.Record, string, error) {
	L := newLineReader(r)
	first, err := L.line()
	if err == io.EOF {
		return nil, "", &CodecError{Line: 0, Message: "empty file"}
	}
	if err != nil {
		return nil, "", err
	}
	nx, ny, err := dims(first)
	if err != nil {
		return nil, first, err
	}
	R := eqdsk.NewRecord(nx, ny)
	s := make([]float64, 4*perLine)
	if err := L.floats(s, "scalars"); err != nil {
		return nil, first, err
	}
	R.Rdim, R.Zdim, R.Rcentr, R.Rleft, R.Zmid = s[0], s[1], s[2], s[3], s[4]
	R.Rmagx, R.Zmagx, R.Simagx, R.Sibdry, R.Bcentr = s[5], s[6], s[7], s[8], s[9]
	R.Cpasma = s[10]
	//the rest are either dummies or repeated
	if s[11] != R.Simagx || s[13] != R.Rmagx || s[15] != R.Zmagx || s[17] != R.Sibdry {
		log.Printf("geqdsk: repeated axis/boundary values in the header block don't match, using the first ones")
	}
	names, profiles := R.Profiles()
	for i, p := range profiles[:4] {
		if err := L.floats(p, names[i]); err != nil {
			return nil, first, err
		}
	}
	flat := make([]float64, nx*ny)
	if err := L.floats(flat, "psi"); err != nil {
		return nil, first, err
	}
	//R runs fastest in the file
	for k, v := range flat {
		R.Psi.Set(k%nx, k/nx, v)
	}
	if err := L.floats(R.Qpsi, "qpsi"); err != nil {
		return nil, first, err
	}
	n, err := L.ints(2, "nbdry and nlim")
	if err == io.EOF {
		log.Printf("geqdsk: no boundary or limiter in file")
		return R, first, nil
	}
	if err != nil {
		return nil, first, err
	}
	if n[0] < 0 || n[1] < 0 {
		return nil, first, &CodecError{Line: L.lineno, Message: fmt.Sprintf("negative point counts %d %d", n[0], n[1])}
	}
	R.Rbdry, R.Zbdry, err = L.pairs(n[0], "boundary")
	if err != nil {
		return nil, first, err
	}
	R.Rlim, R.Zlim, err = L.pairs(n[1], "limiter")
	if err != nil {
		return nil, first, err
	}
	return R, first, nil
}

// pairs reads n interleaved (r,z) points.
func (L *lineReader) pairs(n int, what string) ([]float64, []float64, error) {
	rz := make([]float64, 2*n)
	if err := L.floats(rz, what); err != nil {
		return nil, nil, err
	}
	r := make([]float64, n)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = rz[2*i]
		z[i] = rz[2*i+1]
	}
	return r, z, nil
}

// fieldWriter writes numbers in 5e16.9 blocks.
type fieldWriter struct {
	w     *bufio.Writer
	count int
	//numbers written with one digit less to fit the field
	narrowed int
}

func (F *fieldWriter) write(v ...float64) {
	for _, f := range v {
		s := strconv.FormatFloat(f, 'E', 9, 64)
		if len(s) > fieldWidth {
			//negative with a 3-digit exponent
			s = strconv.FormatFloat(f, 'E', 8, 64)
			F.narrowed++
		}
		fmt.Fprintf(F.w, "%*s", fieldWidth, s)
		F.count++
		if F.count%perLine == 0 {
			F.w.WriteByte('\n')
		}
	}
}

// endBlock terminates the current line, if it has anything.
func (F *fieldWriter) endBlock() {
	if F.count%perLine != 0 {
		F.w.WriteByte('\n')
	}
	F.count = 0
}

// Encode writes R to w in G-format. The first line of the file has comment, padded or
// truncated to 48 characters, followed by the grid dimensions. The header metadata fields of R are
// not written, only what is in comment.
func Encode(w io.Writer, R *eqdsk.Record, comment string) error {
	if err := R.Check(); err != nil {
		return eqdsk.ErrDecorate(err, "geqdsk.Encode")
	}
	if R.Nx > maxDim || R.Ny > maxDim {
		return eqdsk.ErrDecorate(&CodecError{Message: fmt.Sprintf("grid %dx%d doesn't fit the 3i4 header", R.Nx, R.Ny)}, "geqdsk.Encode")
	}
	if len(comment) > commentWidth {
		log.Printf("geqdsk: header comment %q truncated to %d characters", comment, commentWidth)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-48.48s%4d%4d%4d\n", comment, idum, R.Nx, R.Ny)
	F := &fieldWriter{w: bw}
	F.write(R.Rdim, R.Zdim, R.Rcentr, R.Rleft, R.Zmid)
	F.write(R.Rmagx, R.Zmagx, R.Simagx, R.Sibdry, R.Bcentr)
	F.write(R.Cpasma, R.Simagx, 0, R.Rmagx, 0)
	F.write(R.Zmagx, 0, R.Sibdry, 0, 0)
	F.endBlock()
	for _, p := range [][]float64{R.Fpol, R.Pres, R.FFprime, R.Pprime} {
		F.write(p...)
		F.endBlock()
	}
	for j := 0; j < R.Ny; j++ {
		for i := 0; i < R.Nx; i++ {
			F.write(R.Psi.At(i, j))
		}
	}
	F.endBlock()
	F.write(R.Qpsi...)
	F.endBlock()
	fmt.Fprintf(bw, "%5d%5d\n", len(R.Rbdry), len(R.Rlim))
	for i := range R.Rbdry {
		F.write(R.Rbdry[i], R.Zbdry[i])
	}
	F.endBlock()
	for i := range R.Rlim {
		F.write(R.Rlim[i], R.Zlim[i])
	}
	F.endBlock()
	if F.narrowed > 0 {
		log.Printf("geqdsk: %d numbers written with 9 significant digits to fit the field", F.narrowed)
	}
	if err := bw.Flush(); err != nil {
		return eqdsk.ErrDecorate(asIOError(err), "geqdsk.Encode")
	}
	return nil
}

func asIOError(err error) error {
	if _, ok := err.(eqdsk.Error); ok {
		return err
	}
	return &eqdsk.IOError{Op: "write", Err: err}
}
