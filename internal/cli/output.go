/*
 * output.go, part of goeqdsk.
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

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	eqdsk "github.com/rmera/goeqdsk"
	"github.com/rmera/goeqdsk/eqplot"
	"github.com/rmera/goeqdsk/geqdsk"
	"github.com/rmera/goeqdsk/header"
	"github.com/rmera/goeqdsk/jeqdsk"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Successful execution
	ExitFailure = 1 // The conversion, validation or plot failed
	ExitUsage   = 2 // Bad arguments, flags or configuration
)

// Error codes reported in the structured output.
const (
	ErrCodeGeneric = "E000"
	ErrCodeIO      = "E001" // file can't be opened, read or written
	ErrCodeHeader  = "E002" // malformed G-format header line
	ErrCodeSchema  = "E003" // J-format document doesn't follow the schema
	ErrCodeCodec   = "E004" // malformed G-format body
	ErrCodeRecord  = "E005" // inconsistent record
	ErrCodePlot    = "E006"
	ErrCodeUsage   = "E007"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitUsage)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors come from cobra itself (unknown commands,
// bad flags), so they are usage errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// errorCode classifies err by the package that produced it.
func errorCode(err error) string {
	var (
		ioErr     *eqdsk.IOError
		recErr    *eqdsk.RecordError
		headerErr *header.MalformedHeaderError
		schemaErr *jeqdsk.SchemaError
		codecErr  *geqdsk.CodecError
		plotErr   *eqplot.PlotError
		exitErr   *ExitError
	)
	switch {
	case errors.As(err, &headerErr):
		return ErrCodeHeader
	case errors.As(err, &schemaErr):
		return ErrCodeSchema
	case errors.As(err, &codecErr):
		return ErrCodeCodec
	case errors.As(err, &recErr):
		return ErrCodeRecord
	case errors.As(err, &plotErr):
		return ErrCodePlot
	case errors.As(err, &ioErr):
		return ErrCodeIO
	case errors.As(err, &exitErr) && exitErr.Code == ExitUsage:
		return ErrCodeUsage
	}
	return ErrCodeGeneric
}

// OutputFormatter handles text, JSON and YAML output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

func newFormatter(opts *RootOptions, out, errw io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: out, ErrWriter: errw, Verbose: opts.Verbose}
}

// CLIResponse is the standard structured response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status" yaml:"status"`                  // "ok" or "error"
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"`   // success payload
	Error  *CLIError   `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
	Details interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

func (f *OutputFormatter) encode(v interface{}) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q is not structured", f.Format)
}

// Success outputs a successful result in the configured format. text is
// what is printed in the text format.
func (f *OutputFormatter) Success(data interface{}, text string) error {
	if f.Format == "text" {
		fmt.Fprintln(f.Writer, text)
		return nil
	}
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format != "text" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns it as an ExitError with the given exit code.
// The trail of calls that decorated err, if any, goes in the details.
func (f *OutputFormatter) Fail(code int, err error) error {
	var details interface{}
	var e eqdsk.Error
	if errors.As(err, &e) {
		if trail := e.Decorate(""); len(trail) > 0 {
			details = trail
		}
	}
	_ = f.Error(errorCode(err), err.Error(), details)
	return WrapExitError(code, "goeqdsk", err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
