/*
 * convert.go, part of goeqdsk.
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

// Package convert moves equilibrium records between files in the G and J formats.
// A Converter opens the source, decodes it, releases it, and encodes the record
// into the destination, which only appears once it has been completely written.
package convert

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"

	eqdsk "github.com/rmera/goeqdsk"
	"github.com/rmera/goeqdsk/geqdsk"
	"github.com/rmera/goeqdsk/header"
	"github.com/rmera/goeqdsk/jeqdsk"
)

// Format is one of the two file formats.
type Format int

const (
	G Format = iota //fixed-column geqdsk
	J               //JSON jeqdsk
)

func (f Format) String() string {
	if f == J {
		return "J"
	}
	return "G"
}

// DetectFormat guesses the format of a file from its name, ignoring any
// compression extension. Files ending in .jeqdsk or .json are J-format,
// everything else is taken to be G-format, as those are commonly named
// after the shot and time (g118897.03000).
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(eqdsk.TrimCompression(name))) {
	case ".jeqdsk", ".json":
		return J
	}
	return G
}

// Placeholder is the header metadata written to G-format files produced from
// J-format ones. The metadata in the J-format document is not carried over.
var Placeholder = header.Fields{Label: "goeqdsk", Date: "--/--/----", Shot: "0", Time: "0", Unit: header.Milliseconds}

// Converter reads and writes records. Open and Create can be replaced, for instance
// to read from something other than the file system.
type Converter struct {
	Open   func(name string) (io.ReadCloser, error)
	Create func(name string) (eqdsk.Sink, error)
	Indent int //for J-format output. 0 or less means jeqdsk.DefaultIndent
}

// New returns a Converter on the file system. Files ending in .zst or .gz are
// transparently (de)compressed. The optional compressionLevel is passed to the compressor.
func New(compressionLevel ...int) *Converter {
	return &Converter{
		Open: eqdsk.OpenFile,
		Create: func(name string) (eqdsk.Sink, error) {
			return eqdsk.CreateFile(name, compressionLevel...)
		},
		Indent: jeqdsk.DefaultIndent,
	}
}

// read opens src, hands it to decode and closes it, exactly once, whatever decode does.
func (C *Converter) read(src string, decode func(io.Reader) (*eqdsk.Record, error)) (R *eqdsk.Record, err error) {
	f, err := C.Open(src)
	if err != nil {
		return nil, asIOError(err, "open", src)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			R = nil
			err = asIOError(cerr, "close", src)
		}
	}()
	return decode(f)
}

// write encodes into a sink for dst. The sink is committed only if encode succeeds,
// and discarded otherwise, so no partial destination is left behind.
func (C *Converter) write(dst string, encode func(io.Writer) error) error {
	s, err := C.Create(dst)
	if err != nil {
		return asIOError(err, "create", dst)
	}
	if err := encode(s); err != nil {
		s.Discard()
		return err
	}
	if err := s.Commit(); err != nil {
		s.Discard()
		return asIOError(err, "commit", dst)
	}
	return nil
}

// ReadG reads a G-format file and fills the header metadata of the record
// from its first line. A first line that can't be tokenized is an error.
func (C *Converter) ReadG(src string) (*eqdsk.Record, error) {
	R, err := C.read(src, func(r io.Reader) (*eqdsk.Record, error) {
		R, first, err := geqdsk.Decode(r)
		if err != nil {
			return nil, err
		}
		h, err := header.Tokenize(first)
		if err != nil {
			return nil, err
		}
		R.MergeHeader(h.Label, h.Date, h.Shot, h.Time+h.Unit.Suffix())
		return R, nil
	})
	return R, eqdsk.ErrDecorate(err, "ReadG "+src)
}

// ReadJ reads a J-format file.
func (C *Converter) ReadJ(src string) (*eqdsk.Record, error) {
	R, err := C.read(src, jeqdsk.Decode)
	return R, eqdsk.ErrDecorate(err, "ReadJ "+src)
}

// Read reads src in the given format or, if none is given, in the one DetectFormat returns.
func (C *Converter) Read(src string, format ...Format) (*eqdsk.Record, error) {
	f := DetectFormat(src)
	if len(format) > 0 {
		f = format[0]
	}
	if f == J {
		return C.ReadJ(src)
	}
	return C.ReadG(src)
}

// WriteJ writes R to dst in the J-format.
func (C *Converter) WriteJ(dst string, R *eqdsk.Record) error {
	indent := C.Indent
	if indent <= 0 {
		indent = jeqdsk.DefaultIndent
	}
	err := C.write(dst, func(w io.Writer) error { return jeqdsk.Encode(w, R, indent) })
	return eqdsk.ErrDecorate(err, "WriteJ "+dst)
}

// WriteG writes R to dst in the G-format, with a placeholder header line.
func (C *Converter) WriteG(dst string, R *eqdsk.Record) error {
	err := C.write(dst, func(w io.Writer) error { return geqdsk.Encode(w, R, header.Format(Placeholder)) })
	return eqdsk.ErrDecorate(err, "WriteG "+dst)
}

// ConvertGToJ reads the G-format file src and writes it as the J-format file dst.
// The header metadata is taken from the first line of src.
func (C *Converter) ConvertGToJ(src, dst string) error {
	R, err := C.ReadG(src)
	if err != nil {
		return eqdsk.ErrDecorate(err, "ConvertGToJ")
	}
	return eqdsk.ErrDecorate(C.WriteJ(dst, R), "ConvertGToJ")
}

// ConvertJToG reads the J-format file src and writes it as the G-format file dst.
// The header metadata of src is not carried over.
func (C *Converter) ConvertJToG(src, dst string) error {
	R, err := C.ReadJ(src)
	if err != nil {
		return eqdsk.ErrDecorate(err, "ConvertJToG")
	}
	return eqdsk.ErrDecorate(C.WriteG(dst, R), "ConvertJToG")
}

// Validate checks the J-format file src against the CUE schema of the format,
// and then decodes it fully and checks the resulting record.
func (C *Converter) Validate(src string) error {
	_, err := C.read(src, func(r io.Reader) (*eqdsk.Record, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, asIOError(err, "read", src)
		}
		if err := jeqdsk.Validate(data); err != nil {
			return nil, err
		}
		R, err := jeqdsk.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return R, R.Check()
	})
	return eqdsk.ErrDecorate(err, "Validate "+src)
}

// ConvertGToJ converts the G-format file src into the J-format file dst using
// a Converter from New.
func ConvertGToJ(src, dst string) error {
	return New().ConvertGToJ(src, dst)
}

// ConvertJToG converts the J-format file src into the G-format file dst using
// a Converter from New.
func ConvertJToG(src, dst string) error {
	return New().ConvertJToG(src, dst)
}

// asIOError wraps err in an *eqdsk.IOError unless it already is one of our errors.
func asIOError(err error, op, name string) error {
	var e eqdsk.Error
	if errors.As(err, &e) {
		return err
	}
	return &eqdsk.IOError{Op: op, FileName: name, Err: err}
}
