/*
 * header.go, part of goeqdsk.
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

//Package header extracts the run label, date, shot number and time from the
//free-text first line of a G-format file, for instance:
//
//	  EFITD    03/16/2004    #  118897  3000ms           3 129 129
//
//There is no fixed column layout for those, so the line is scanned from left to right.
package header

import (
	"fmt"
	"strconv"
	"strings"
)

// State is the state of the scanner that extracts one field from the line.
type State int

const (
	SkippingLeadingSpace State = iota
	Consuming
	Closed
	NotFound //the end of the line was reached before the field was closed
)

func (s State) String() string {
	switch s {
	case SkippingLeadingSpace:
		return "SkippingLeadingSpace"
	case Consuming:
		return "Consuming"
	case Closed:
		return "Closed"
	case NotFound:
		return "NotFound"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Unit is the time unit, as given by the character that closed the time field.
type Unit int

const (
	Implicit     Unit = iota //closed by a space, no unit given.
	Milliseconds             //closed by 'm'
	Seconds                  //closed by 's'
)

// Suffix returns the unit as it is written after the time, or "" for Implicit.
func (u Unit) Suffix() string {
	switch u {
	case Milliseconds:
		return "ms"
	case Seconds:
		return "s"
	}
	return ""
}

// Fields contains the metadata in a G-format header line.
// All strings are substrings of the line.
type Fields struct {
	Label string
	Date  string
	Shot  string
	Time  string
	Unit  Unit
}

// Seconds returns the time of the record in seconds. Times without
// a unit are taken to be in milliseconds, as EFIT writes them.
func (F Fields) Seconds() (float64, error) {
	t, err := strconv.ParseFloat(F.Time, 64)
	if err != nil {
		return 0, &MalformedHeaderError{Field: "time", Line: F.Time, Reason: err.Error()}
	}
	if F.Unit == Seconds {
		return t, nil
	}
	return t / 1000, nil
}

// span is a [start,end) slice of the line.
type span struct {
	start int
	end   int
}

// scan skips the spaces starting at from, and then consumes characters until stop
// returns true for one of them. It returns the consumed span and Closed, or
// NotFound if the line ends before the field is closed, or if the field is empty.
// It never looks past len(line).
func scan(line string, from int, stop func(byte) bool) (span, State) {
	s := span{from, from}
	state := SkippingLeadingSpace
	for i := from; i < len(line); i++ {
		c := line[i]
		switch state {
		case SkippingLeadingSpace:
			if isSpace(c) {
				continue
			}
			if stop(c) {
				//the field is empty
				return s, NotFound
			}
			s.start = i
			state = Consuming
		case Consuming:
			if stop(c) {
				s.end = i
				return s, Closed
			}
		}
	}
	return s, NotFound
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isTimeStop(c byte) bool {
	return isSpace(c) || c == 'm' || c == 's'
}

// Tokenize extracts label, date, shot and time from the first line of a G-format file.
// The label and the date are the first two space-separated words, the shot is the word
// after the last '#' in the line, and the time follows the shot, up to a space or a
// unit suffix ('m' for ms, 's' for seconds). Whatever is between the date and the '#'
// is ignored. It returns a *MalformedHeaderError naming the first field that could not
// be closed before the end of the line.
func Tokenize(line string) (Fields, error) {
	var F Fields
	line = strings.TrimRight(line, "\r\n")
	label, st := scan(line, 0, isSpace)
	if st != Closed {
		return F, &MalformedHeaderError{Field: "label", Line: line}
	}
	date, st := scan(line, label.end, isSpace)
	if st != Closed {
		return F, &MalformedHeaderError{Field: "date", Line: line}
	}
	hash := strings.LastIndexByte(line, '#')
	if hash < 0 {
		return F, &MalformedHeaderError{Field: "shot", Line: line, Reason: "no '#' marker"}
	}
	shot, st := scan(line, hash+1, isSpace)
	if st != Closed {
		return F, &MalformedHeaderError{Field: "shot", Line: line}
	}
	time, st := scan(line, shot.end, isTimeStop)
	if st != Closed {
		return F, &MalformedHeaderError{Field: "time", Line: line}
	}
	F.Label = line[label.start:label.end]
	F.Date = line[date.start:date.end]
	F.Shot = line[shot.start:shot.end]
	F.Time = line[time.start:time.end]
	switch line[time.end] {
	case 'm':
		F.Unit = Milliseconds
	case 's':
		F.Unit = Seconds
	default:
		F.Unit = Implicit
	}
	return F, nil
}

// Format renders F as a header comment that Tokenize can read back.
// Empty fields are replaced by placeholders.
func Format(F Fields) string {
	placeholder := func(s, p string) string {
		s = strings.Join(strings.Fields(s), "_")
		if s == "" {
			return p
		}
		return s
	}
	time := placeholder(F.Time, "0")
	unit := F.Unit.Suffix()
	if unit == "" {
		//so the time field is closed even at the end of the line.
		unit = "ms"
	}
	return fmt.Sprintf("  %s   %s    #%7s  %s%s", placeholder(F.Label, "-"), placeholder(F.Date, "-"),
		placeholder(F.Shot, "0"), time, unit)
}
