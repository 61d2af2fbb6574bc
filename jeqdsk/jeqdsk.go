/*
 * jeqdsk.go, part of goeqdsk.
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

package jeqdsk

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"

	eqdsk "github.com/rmera/goeqdsk"
	"gonum.org/v1/gonum/mat"
)

// DefaultIndent is the number of spaces per nesting level used by Encode if none is given.
const DefaultIndent = 2

// number formats v with the fewest digits that parse back to exactly v.
func number(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'g', -1, 64))
}

func numbers(s []float64) []json.Number {
	ret := make([]json.Number, len(s)) //never nil, so empty curves are written as [].
	for i, v := range s {
		ret[i] = number(v)
	}
	return ret
}

// value returns what is to be written for f, and false if f should be omitted.
func (f field) value(R *eqdsk.Record) (interface{}, bool) {
	switch f.kind {
	case ScalarInt:
		return json.Number(strconv.Itoa(*f.integer(R))), true
	case ScalarFloat:
		return number(*f.number(R)), true
	case Profile, Curve:
		return numbers(*f.slice(R)), true
	case Grid:
		rows := make([][]json.Number, R.Nx)
		for i := range rows {
			rows[i] = numbers(R.Psi.RawRowView(i))
		}
		return rows, true
	case Text:
		t := *f.text(R)
		return t, t != ""
	}
	panic("jeqdsk: unknown field kind " + f.kind.String())
}

// Encode writes R to w as a J-format document, indented with the given number of
// spaces per level (DefaultIndent if not given). Fields are written in a fixed order,
// numbers as plain JSON literals, psi as nx rows of ny values. Empty metadata fields
// are omitted. R is checked before anything is written.
func Encode(w io.Writer, R *eqdsk.Record, indent ...int) error {
	ind := DefaultIndent
	if len(indent) > 0 && indent[0] >= 0 {
		ind = indent[0]
	}
	if err := R.Check(); err != nil {
		return eqdsk.ErrDecorate(err, "jeqdsk.Encode")
	}
	pad := strings.Repeat(" ", ind)
	bw := bufio.NewWriter(w)
	bw.WriteString("{")
	first := true
	for _, f := range schema {
		v, ok := f.value(R)
		if !ok {
			continue
		}
		b, err := json.MarshalIndent(v, pad, pad)
		if err != nil {
			//can't really happen, the record has been checked.
			return &SchemaError{Field: f.name, Reason: err.Error()}
		}
		if !first {
			bw.WriteString(",")
		}
		first = false
		fmt.Fprintf(bw, "\n%s%q: ", pad, f.name)
		bw.Write(b)
	}
	bw.WriteString("\n}\n")
	if err := bw.Flush(); err != nil {
		var e eqdsk.Error
		if !errors.As(err, &e) {
			err = &eqdsk.IOError{Op: "write", Err: err}
		}
		return eqdsk.ErrDecorate(err, "jeqdsk.Encode")
	}
	return nil
}

// Decode reads a J-format document from r. The document is first parsed generically,
// then each field is converted according to its kind: scalars first, then the
// profiles and curves, then psi, which is reshaped to nx by ny. psi can be given
// either as nested rows or as a flat, row-major, array. Unknown fields are ignored.
// A missing required field, a value of the wrong kind or inconsistent dimensions
// give a *SchemaError.
func Decode(r io.Reader) (*eqdsk.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(err)
	}
	unknown := make([]string, 0)
	for k := range doc {
		if _, ok := lookup(k); !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		log.Printf("jeqdsk: ignoring unknown fields %v", unknown)
	}
	R := new(eqdsk.Record)
	var err error
	for _, f := range schema {
		v, ok := doc[f.name]
		if !ok || v == nil {
			if f.required {
				return nil, &SchemaError{Field: f.name, Reason: "missing"}
			}
			continue
		}
		switch f.kind {
		case ScalarInt:
			*f.integer(R), err = toInt(v, f.name)
		case ScalarFloat:
			*f.number(R), err = toFloat(v, f.name)
		case Text:
			*f.text(R), err = toText(v, f.name)
		}
		if err != nil {
			return nil, err
		}
	}
	if R.Nx < 1 {
		return nil, &SchemaError{Field: "nx", Reason: fmt.Sprintf("must be at least 1, got %d", R.Nx)}
	}
	if R.Ny < 1 {
		return nil, &SchemaError{Field: "ny", Reason: fmt.Sprintf("must be at least 1, got %d", R.Ny)}
	}
	for _, f := range schema {
		v, ok := doc[f.name]
		if !ok || v == nil {
			continue
		}
		switch f.kind {
		case Profile, Curve:
			s, err := toFloats(v, f.name)
			if err != nil {
				return nil, err
			}
			if f.kind == Profile && len(s) != R.Nx {
				return nil, &SchemaError{Field: f.name, Reason: fmt.Sprintf("%d elements, expected nx=%d", len(s), R.Nx)}
			}
			*f.slice(R) = s
		case Grid:
			R.Psi, err = toGrid(v, f.name, R.Nx, R.Ny)
			if err != nil {
				return nil, err
			}
		}
	}
	if len(R.Rbdry) != len(R.Zbdry) {
		return nil, &SchemaError{Field: "zbdry", Reason: fmt.Sprintf("%d points, but rbdry has %d", len(R.Zbdry), len(R.Rbdry))}
	}
	if len(R.Rlim) != len(R.Zlim) {
		return nil, &SchemaError{Field: "zlim", Reason: fmt.Sprintf("%d points, but rlim has %d", len(R.Zlim), len(R.Rlim))}
	}
	return R, nil
}

// decodeError tells a malformed document from a failing reader.
func decodeError(err error) error {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntax), errors.As(err, &typ), errors.Is(err, io.ErrUnexpectedEOF):
		return &SchemaError{Reason: "not a J-format document: " + err.Error()}
	case err == io.EOF:
		return &SchemaError{Reason: "empty document"}
	}
	var e eqdsk.Error
	if errors.As(err, &e) {
		return err
	}
	return &eqdsk.IOError{Op: "read", Err: err}
}

func toFloat(v interface{}, name string) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, &SchemaError{Field: name, Reason: fmt.Sprintf("expected a number, got %T", v)}
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, &SchemaError{Field: name, Reason: fmt.Sprintf("%s: %v", n, err)}
	}
	return f, nil
}

// toInt also accepts integral floating point literals, such as 129.0.
func toInt(v interface{}, name string) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, &SchemaError{Field: name, Reason: fmt.Sprintf("expected an integer, got %T", v)}
	}
	if i, err := strconv.Atoi(string(n)); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, &SchemaError{Field: name, Reason: fmt.Sprintf("expected an integer, got %s", n)}
	}
	return int(f), nil
}

// Shot numbers are often written as numbers.
func toText(v interface{}, name string) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return string(t), nil
	}
	return "", &SchemaError{Field: name, Reason: fmt.Sprintf("expected a string, got %T", v)}
}

func toFloats(v interface{}, name string) ([]float64, error) {
	a, ok := v.([]interface{})
	if !ok {
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("expected an array, got %T", v)}
	}
	ret := make([]float64, len(a))
	var err error
	for i, e := range a {
		ret[i], err = toFloat(e, fmt.Sprintf("%s[%d]", name, i))
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// toGrid reads v, either nx rows of ny numbers or a flat array of nx*ny numbers in
// row-major order, into a nx by ny matrix. Nested and flat elements can't be mixed.
func toGrid(v interface{}, name string, nx, ny int) (*mat.Dense, error) {
	a, ok := v.([]interface{})
	if !ok {
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("expected an array, got %T", v)}
	}
	nested := false
	if len(a) > 0 {
		_, nested = a[0].([]interface{})
	}
	flat := make([]float64, 0, nx*ny)
	for i, e := range a {
		ename := fmt.Sprintf("%s[%d]", name, i)
		row, isrow := e.([]interface{})
		if isrow != nested {
			return nil, &SchemaError{Field: ename, Reason: "rows and numbers mixed"}
		}
		if !nested {
			f, err := toFloat(e, ename)
			if err != nil {
				return nil, err
			}
			flat = append(flat, f)
			continue
		}
		if len(row) != ny {
			return nil, &SchemaError{Field: ename, Reason: fmt.Sprintf("%d elements, expected ny=%d", len(row), ny)}
		}
		r, err := toFloats(row, ename)
		if err != nil {
			return nil, err
		}
		flat = append(flat, r...)
	}
	if nested && len(a) != nx {
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("%d rows, expected nx=%d", len(a), nx)}
	}
	if len(flat)%ny != 0 {
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("%d elements, not divisible by ny=%d", len(flat), ny)}
	}
	if len(flat)/ny != nx {
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("%d elements, expected nx*ny=%d", len(flat), nx*ny)}
	}
	return mat.NewDense(nx, ny, flat), nil
}

// Entry is a field of a record, with its J-format name.
type Entry struct {
	Name  string
	Kind  Kind
	Value interface{} //int, float64, []float64, [][]float64 or string
}

// Entries returns the fields of R in the order in which Encode writes them. Empty
// metadata fields are left out.
func Entries(R *eqdsk.Record) []Entry {
	ret := make([]Entry, 0, len(schema))
	for _, f := range schema {
		e := Entry{Name: f.name, Kind: f.kind}
		switch f.kind {
		case ScalarInt:
			e.Value = *f.integer(R)
		case ScalarFloat:
			e.Value = *f.number(R)
		case Profile, Curve:
			e.Value = *f.slice(R)
		case Grid:
			rows := make([][]float64, 0, R.Nx)
			for i := 0; R.Psi != nil && i < R.Nx; i++ {
				rows = append(rows, mat.Row(nil, i, R.Psi))
			}
			e.Value = rows
		case Text:
			if *f.text(R) == "" {
				continue
			}
			e.Value = *f.text(R)
		}
		ret = append(ret, e)
	}
	return ret
}
