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

package eqdsk

import (
	"errors"
	"fmt"
)

// ErrDecorate adds caller to the trail of err, if err implements Error,
// and returns err. Errors that don't implement Error are returned as they are.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// IOError is returned when a file can't be opened, read, written or moved into place.
type IOError struct {
	Op       string //open, create, read, write, commit...
	FileName string //may be empty if the stream was not a named file.
	Err      error
	deco     []string
}

func (E *IOError) Error() string {
	if E.FileName == "" {
		return fmt.Sprintf("goeqdsk: %s: %v", E.Op, E.Err)
	}
	return fmt.Sprintf("goeqdsk: %s %s: %v", E.Op, E.FileName, E.Err)
}

// Unwrap returns the underlying error, usually from the os package.
func (E *IOError) Unwrap() error { return E.Err }

// Decorate adds new information to the error
func (E *IOError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// RecordError reports a Record that breaks one of its invariants
// (dimensions, profile lengths, psi shape, non-finite values).
type RecordError struct {
	Field   string
	Message string
	deco    []string
}

func (E *RecordError) Error() string {
	return fmt.Sprintf("goeqdsk: invalid record, field %s: %s", E.Field, E.Message)
}

// Decorate adds new information to the error
func (E *RecordError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
