/*
 * errors.go, part of goeqdsk.
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

import "fmt"

// CodecError is returned when the fixed-column part of a G-format file can't be read:
// a malformed number, a missing block, wrong counts. It fullfills eqdsk.Error.
type CodecError struct {
	Line    int //1-based line of the file where the problem was found, 0 if unknown.
	Message string
	deco    []string
}

func (E *CodecError) Error() string {
	return fmt.Sprintf("geqdsk: line %d: %s", E.Line, E.Message)
}

// Decorate adds new information to the error
func (E *CodecError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
