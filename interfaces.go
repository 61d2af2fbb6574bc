/*
 * interfaces.go, part of goeqdsk.
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

package eqdsk

import "io"

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the name of the calling function (optionally followed by ": extra info") to the
	//error and returns the resulting trail. If passed an empty string, it just returns the current trail.
	Decorate(string) []string
}

// Sink is a file being written. Nothing appears under the final name
// until Commit succeeds. Discard drops whatever was written.
type Sink interface {
	io.Writer
	Commit() error
	Discard() error
}
