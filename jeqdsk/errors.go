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

package jeqdsk

import "fmt"

// SchemaError is returned when a J-format document lacks a required field,
// has a value of the wrong kind or inconsistent array shapes. It fullfills eqdsk.Error.
type SchemaError struct {
	Field  string //empty if the problem is with the document as a whole.
	Reason string
	deco   []string
}

func (E *SchemaError) Error() string {
	if E.Field == "" {
		return "jeqdsk: " + E.Reason
	}
	return fmt.Sprintf("jeqdsk: field %s: %s", E.Field, E.Reason)
}

// Decorate adds new information to the error
func (E *SchemaError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
