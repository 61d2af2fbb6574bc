/*
 * doc.go, part of goeqdsk.
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
Package eqdsk is the main package of goeqdsk. It provides the equilibrium record shared
by all the file formats, the error interface implemented by the errors of every package
in the library, and helpers to open and create (possibly compressed) files.

	**goeqdsk Capabilities**

	Reads and writes G-format (geqdsk) files, the fixed-column format written by EFIT and
	most equilibrium codes (package geqdsk).

	Recovers the run label, date, shot number and time from the free-text first line
	of a G-format file (package header).

	Reads and writes J-format (jeqdsk) files, an indented JSON rendition of the same
	record, and validates them against a CUE schema (package jeqdsk).

	Converts between both formats (package convert) writing the destination atomically.

	Plots the flux surfaces and the 1D profiles of an equilibrium (package eqplot).

	Files ending in .zst or .gz are transparently (de)compressed.

The psi grid is stored as a gonum *mat.Dense, so it can be used directly with the
rest of the gonum libraries.
*/
package eqdsk
