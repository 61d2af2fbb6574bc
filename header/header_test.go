/*
 * header_test.go, part of goeqdsk.
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

import (
	"errors"
	"testing"
)

func TestTokenize(Te *testing.T) {
	F, err := Tokenize("EFIT   01/02/2020   #  12345   500ms")
	if err != nil {
		Te.Fatal(err)
	}
	if F.Label != "EFIT" || F.Date != "01/02/2020" || F.Shot != "12345" {
		Te.Errorf("wrong fields: %+v", F)
	}
	if F.Time != "500" {
		Te.Errorf("time should be the whole number before the unit, got %q", F.Time)
	}
	if F.Unit != Milliseconds {
		Te.Errorf("unit should be ms, got %q", F.Unit.Suffix())
	}
	s, err := F.Seconds()
	if err != nil || s != 0.5 {
		Te.Errorf("expected 0.5 s, got %v (%v)", s, err)
	}
}

func TestTokenizeEFITLine(Te *testing.T) {
	line := "  EFITD    03/16/2004    #118897  3.5s           3 129 129\n"
	F, err := Tokenize(line)
	if err != nil {
		Te.Fatal(err)
	}
	want := Fields{Label: "EFITD", Date: "03/16/2004", Shot: "118897", Time: "3.5", Unit: Seconds}
	if F != want {
		Te.Errorf("got %+v, want %+v", F, want)
	}
	//no unit, the time is closed by the spaces before the dimensions.
	F, err = Tokenize("  EFITD    03/16/2004    #  118897  3000           3 129 129")
	if err != nil {
		Te.Fatal(err)
	}
	if F.Time != "3000" || F.Unit != Implicit {
		Te.Errorf("got %+v", F)
	}
	s, _ := F.Seconds()
	if s != 3 {
		Te.Errorf("implicit times are in ms, got %v s", s)
	}
}

// The shot is read after the last '#', whatever is between the date and it is dropped.
func TestTokenizeLastHash(Te *testing.T) {
	F, err := Tokenize("lbl#1 2020-01-01 some comment # ignored #  42  10ms")
	if err != nil {
		Te.Fatal(err)
	}
	if F.Label != "lbl#1" || F.Date != "2020-01-01" || F.Shot != "42" || F.Time != "10" {
		Te.Errorf("got %+v", F)
	}
}

func TestTokenizeMalformed(Te *testing.T) {
	cases := []struct {
		line  string
		field string
	}{
		{"", "label"},
		{"EFIT", "label"},
		{"   ", "label"},
		{"EFIT ", "date"},
		{"EFIT    ", "date"},
		{"EFIT 01/02/2020", "date"},
		{"EFIT 01/02/2020 12345 500ms", "shot"},
		{"EFIT 01/02/2020 #", "shot"},
		{"EFIT 01/02/2020 #   ", "shot"},
		{"EFIT 01/02/2020 #12345", "shot"},
		{"EFIT 01/02/2020 #12345 ", "time"},
		{"EFIT 01/02/2020 #12345   500", "time"},
		{"EFIT 01/02/2020 #12345   ms", "time"},
	}
	for _, c := range cases {
		_, err := Tokenize(c.line)
		var merr *MalformedHeaderError
		if !errors.As(err, &merr) {
			Te.Errorf("%q: expected a MalformedHeaderError, got %v", c.line, err)
			continue
		}
		if merr.Field != c.field {
			Te.Errorf("%q: expected failure in %s, got %s", c.line, c.field, merr.Field)
		}
	}
}

// Every prefix of a valid line must fail cleanly or succeed, never go out of range.
func TestTokenizeTruncated(Te *testing.T) {
	line := "EFIT   01/02/2020   #  12345   500ms"
	for i := 0; i <= len(line); i++ {
		func() {
			defer func() {
				if r := recover(); r != nil {
					Te.Errorf("panic on %q: %v", line[:i], r)
				}
			}()
			F, err := Tokenize(line[:i])
			if err == nil && F.Time != "500" {
				Te.Errorf("%q: got %+v", line[:i], F)
			}
		}()
	}
}

func TestScanStates(Te *testing.T) {
	s, st := scan("  abc def", 0, isSpace)
	if st != Closed || s.start != 2 || s.end != 5 {
		Te.Errorf("got %v %v", s, st)
	}
	_, st = scan("  abc", 0, isSpace)
	if st != NotFound {
		Te.Errorf("expected NotFound, got %v", st)
	}
	_, st = scan("abc", 10, isSpace)
	if st != NotFound {
		Te.Errorf("expected NotFound for a start past the end, got %v", st)
	}
	_, st = scan("  s", 0, isTimeStop)
	if st != NotFound {
		Te.Errorf("an empty time field should not be found, got %v", st)
	}
}

func TestFormat(Te *testing.T) {
	in := Fields{Label: "EFIT", Date: "01/02/2020", Shot: "12345", Time: "500", Unit: Milliseconds}
	out, err := Tokenize(Format(in))
	if err != nil {
		Te.Fatal(err)
	}
	if out != in {
		Te.Errorf("got %+v, want %+v", out, in)
	}
	out, err = Tokenize(Format(Fields{}))
	if err != nil {
		Te.Fatal(err)
	}
	if out.Label != "-" || out.Shot != "0" || out.Time != "0" {
		Te.Errorf("unexpected placeholders %+v", out)
	}
}
