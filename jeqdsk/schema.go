/*
 * schema.go, part of goeqdsk.
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

package jeqdsk

import eqdsk "github.com/rmera/goeqdsk"

// Kind is how a field of the J-format is serialized.
type Kind int

const (
	ScalarInt   Kind = iota
	ScalarFloat      //plain number
	Profile          //1D array of exactly nx numbers
	Grid             //2D array, nx rows of ny numbers
	Curve            //1D array of any length
	Text             //string
)

func (k Kind) String() string {
	return [...]string{"integer", "number", "profile", "grid", "curve", "text"}[k]
}

// field is one entry of the J-format schema. Only the accessor matching
// the kind is set.
type field struct {
	name     string
	kind     Kind
	required bool
	integer  func(*eqdsk.Record) *int
	number   func(*eqdsk.Record) *float64
	slice    func(*eqdsk.Record) *[]float64
	text     func(*eqdsk.Record) *string
}

// schema lists the fields of a J-format document in the order they are written.
// psi has no accessor, it is handled on its own as it needs nx and ny.
var schema = []field{
	{name: "nx", kind: ScalarInt, required: true, integer: func(R *eqdsk.Record) *int { return &R.Nx }},
	{name: "ny", kind: ScalarInt, required: true, integer: func(R *eqdsk.Record) *int { return &R.Ny }},
	{name: "rdim", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Rdim }},
	{name: "zdim", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Zdim }},
	{name: "rcentr", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Rcentr }},
	{name: "rleft", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Rleft }},
	{name: "zmid", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Zmid }},
	{name: "rmagx", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Rmagx }},
	{name: "zmagx", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Zmagx }},
	{name: "simagx", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Simagx }},
	{name: "sibdry", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Sibdry }},
	{name: "bcentr", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Bcentr }},
	{name: "cpasma", kind: ScalarFloat, required: true, number: func(R *eqdsk.Record) *float64 { return &R.Cpasma }},
	{name: "fpol", kind: Profile, required: true, slice: func(R *eqdsk.Record) *[]float64 { return &R.Fpol }},
	{name: "pres", kind: Profile, required: true, slice: func(R *eqdsk.Record) *[]float64 { return &R.Pres }},
	{name: "ffprime", kind: Profile, required: true, slice: func(R *eqdsk.Record) *[]float64 { return &R.FFprime }},
	{name: "pprime", kind: Profile, required: true, slice: func(R *eqdsk.Record) *[]float64 { return &R.Pprime }},
	{name: "psi", kind: Grid, required: true},
	{name: "qpsi", kind: Profile, required: true, slice: func(R *eqdsk.Record) *[]float64 { return &R.Qpsi }},
	{name: "rbdry", kind: Curve, slice: func(R *eqdsk.Record) *[]float64 { return &R.Rbdry }},
	{name: "zbdry", kind: Curve, slice: func(R *eqdsk.Record) *[]float64 { return &R.Zbdry }},
	{name: "rlim", kind: Curve, slice: func(R *eqdsk.Record) *[]float64 { return &R.Rlim }},
	{name: "zlim", kind: Curve, slice: func(R *eqdsk.Record) *[]float64 { return &R.Zlim }},
	{name: "label", kind: Text, text: func(R *eqdsk.Record) *string { return &R.Label }},
	{name: "date", kind: Text, text: func(R *eqdsk.Record) *string { return &R.Date }},
	{name: "shot", kind: Text, text: func(R *eqdsk.Record) *string { return &R.Shot }},
	{name: "time", kind: Text, text: func(R *eqdsk.Record) *string { return &R.Time }},
}

// Fields returns the names of the fields of a J-format document, in order.
func Fields() []string {
	ret := make([]string, len(schema))
	for i, f := range schema {
		ret[i] = f.name
	}
	return ret
}

func lookup(name string) (field, bool) {
	for _, f := range schema {
		if f.name == name {
			return f, true
		}
	}
	return field{}, false
}
