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

package eqplot

// PlotError is returned when a panel of the figure can't be built or the image can't
// be encoded. It fullfills eqdsk.Error.
type PlotError struct {
	Panel string
	Err   error
	deco  []string
}

func (E *PlotError) Error() string {
	return "eqplot: " + E.Panel + ": " + E.Err.Error()
}

func (E *PlotError) Unwrap() error { return E.Err }

// Decorate adds new information to the error
func (E *PlotError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
