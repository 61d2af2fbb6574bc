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

package header

import "fmt"

// MalformedHeaderError is returned when one of the fields of the header line
// can't be closed before the end of the line. It fullfills eqdsk.Error.
type MalformedHeaderError struct {
	Field  string //label, date, shot or time
	Line   string
	Reason string //may be empty
	deco   []string
}

func (E *MalformedHeaderError) Error() string {
	msg := fmt.Sprintf("malformed G-format header: can't read the %s field from %q", E.Field, E.Line)
	if E.Reason != "" {
		msg += ": " + E.Reason
	}
	return msg
}

// Decorate adds new information to the error
func (E *MalformedHeaderError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
