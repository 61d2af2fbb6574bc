/*
 * files.go, part of goeqdsk.
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
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression returns the compression used for a file, judging by its name:
// "zstd" for .zst/.zstd, "gzip" for .gz and the empty string for plain text.
func Compression(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return "zstd"
	case ".gz":
		return "gzip"
	}
	return ""
}

// TrimCompression returns name without its compression extension, if any.
func TrimCompression(name string) string {
	if Compression(name) == "" {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// The zstd decoder doesn't implement io.ReadCloser, and in both
// cases the file under the decompressor needs closing too.
type decompressor struct {
	io.Reader
	closers []func() error
}

// Close closes the decompressor and then the file. It returns the first error found.
func (d *decompressor) Close() error {
	var err error
	for _, c := range d.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenFile opens the file name for reading, transparently decompressing
// it if the name ends in .zst or .gz.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &IOError{Op: "open", FileName: name, Err: err}
	}
	switch Compression(name) {
	case "zstd":
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, &IOError{Op: "open", FileName: name, Err: err}
		}
		return &decompressor{Reader: z, closers: []func() error{func() error { z.Close(); return nil }, f.Close}}, nil
	case "gzip":
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, &IOError{Op: "open", FileName: name, Err: err}
		}
		return &decompressor{Reader: z, closers: []func() error{z.Close, f.Close}}, nil
	}
	return f, nil
}

// fileSink writes to a temporary file in the same directory as the
// destination, and renames it on Commit.
type fileSink struct {
	f    *os.File
	buf  *bufio.Writer
	comp io.WriteCloser //nil for plain files
	w    io.Writer
	name string
	done bool
}

// CreateFile returns a Sink that will become the file name on Commit. If name ends
// in .zst or .gz, the content is compressed. An optional compression level can be
// given, otherwise the default for each compressor is used.
func CreateFile(name string, compressionLevel ...int) (Sink, error) {
	S := new(fileSink)
	S.name = name
	var err error
	S.f, err = os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return nil, &IOError{Op: "create", FileName: name, Err: err}
	}
	S.buf = bufio.NewWriter(S.f)
	S.w = S.buf
	level := -1
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	switch Compression(name) {
	case "zstd":
		opts := []zstd.EOption{}
		if level > 0 {
			opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
		S.comp, err = zstd.NewWriter(S.buf, opts...)
	case "gzip":
		if level < 0 {
			level = gzip.DefaultCompression
		}
		S.comp, err = gzip.NewWriterLevel(S.buf, level)
	}
	if err != nil {
		S.f.Close()
		os.Remove(S.f.Name())
		return nil, &IOError{Op: "create", FileName: name, Err: err}
	}
	if S.comp != nil {
		S.w = S.comp
	}
	return S, nil
}

func (S *fileSink) Write(p []byte) (int, error) {
	if S.done {
		return 0, &IOError{Op: "write", FileName: S.name, Err: os.ErrClosed}
	}
	n, err := S.w.Write(p)
	if err != nil {
		return n, &IOError{Op: "write", FileName: S.name, Err: err}
	}
	return n, nil
}

// Commit flushes everything to disk and moves the temporary file to its final name.
// On failure, the temporary file is removed.
func (S *fileSink) Commit() error {
	if S.done {
		return &IOError{Op: "commit", FileName: S.name, Err: os.ErrClosed}
	}
	S.done = true
	var err error
	if S.comp != nil {
		err = S.comp.Close()
	}
	if err == nil {
		err = S.buf.Flush()
	}
	if err == nil {
		err = S.f.Chmod(0o644)
	}
	if err == nil {
		err = S.f.Sync()
	}
	err = errors.Join(err, S.f.Close())
	if err == nil {
		err = os.Rename(S.f.Name(), S.name)
	}
	if err != nil {
		os.Remove(S.f.Name())
		return &IOError{Op: "commit", FileName: S.name, Err: err}
	}
	return nil
}

// Discard closes and removes the temporary file. It does nothing after Commit.
func (S *fileSink) Discard() error {
	if S.done {
		return nil
	}
	S.done = true
	if S.comp != nil {
		S.comp.Close()
	}
	S.f.Close()
	if err := os.Remove(S.f.Name()); err != nil {
		return &IOError{Op: "discard", FileName: S.name, Err: err}
	}
	return nil
}
