/*
 * cue.go, part of goeqdsk.
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

import (
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// CUESchema is the J-format, as a CUE schema. It only constrains the kind of each
// field, the shape checks that need nx and ny are left to Decode.
const CUESchema = `
nx:     int & >=1
ny:     int & >=1
rdim:   number
zdim:   number
rcentr: number
rleft:  number
zmid:   number
rmagx:  number
zmagx:  number
simagx: number
sibdry: number
bcentr: number
cpasma: number

fpol:    [...number]
pres:    [...number]
ffprime: [...number]
pprime:  [...number]
qpsi:    [...number]
psi:     [...[...number]] | [...number]

rbdry?: [...number]
zbdry?: [...number]
rlim?:  [...number]
zlim?:  [...number]

label?: string
date?:  string
shot?:  string | int
time?:  string | number
`

// Validate checks the raw J-format document data against CUESchema, without
// building a record. It returns a *SchemaError listing every problem found, or nil.
func Validate(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(CUESchema, cue.Filename("jeqdsk.cue"))
	if err := schema.Err(); err != nil {
		panic("jeqdsk: invalid built-in CUE schema: " + err.Error())
	}
	doc := ctx.CompileBytes(data, cue.Filename("document"))
	if err := doc.Err(); err != nil {
		return &SchemaError{Reason: "not a J-format document: " + details(err)}
	}
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Reason: details(err)}
	}
	return nil
}

func details(err error) string {
	return strings.TrimSpace(cueerrors.Details(err, nil))
}
