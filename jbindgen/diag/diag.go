// Package diag defines the build-time diagnostics reported by jbind.
//
// Diagnostics are recoverable at build granularity: the driver decides
// whether to stop at the first one or collect them all. Faults raised by
// generated code at run time are a different kind, see package jnirt.
package diag

import (
	"errors"
	"fmt"

	"github.com/broady/jbind/jbindgen/ir"
)

// Code is a machine-readable diagnostic code.
type Code string

const (
	CodeTooManyItems      Code = "too_many_items"
	CodeWriteFailed       Code = "write_failed"
	CodeDuplicateType     Code = "duplicate_type"
	CodeInvalidDefinition Code = "invalid_definition"
	CodeInvalidConfig     Code = "invalid_config"
)

// Error is a diagnostic attached to a source location.
type Error struct {
	Code    Code
	Source  ir.Source
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Source.IsZero() {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Source, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a diagnostic at src.
func New(code Code, src ir.Source, message string) *Error {
	return &Error{Code: code, Source: src, Message: message}
}

// Errorf creates a diagnostic at src with a formatted message.
func Errorf(code Code, src ir.Source, format string, args ...any) *Error {
	return &Error{Code: code, Source: src, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a diagnostic at src caused by err.
func Wrap(code Code, src ir.Source, err error, message string) *Error {
	return &Error{Code: code, Source: src, Message: message, Err: err}
}

// CodeOf returns the code of the first diagnostic in err's chain,
// or the empty code if there is none.
func CodeOf(err error) Code {
	var d *Error
	if errors.As(err, &d) {
		return d.Code
	}
	return ""
}

// List collects diagnostics in the order they were reported.
type List []*Error

// Add appends err, wrapping non-diagnostic errors as invalid definitions.
func (l *List) Add(err error) {
	if err == nil {
		return
	}
	var d *Error
	if !errors.As(err, &d) {
		d = &Error{Code: CodeInvalidDefinition, Message: "generation failed", Err: err}
	}
	*l = append(*l, d)
}

// Err returns nil for an empty list, or an error joining every diagnostic.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errors.Join(errs...)
}
