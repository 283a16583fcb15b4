// SPDX-License-Identifier: Unlicense OR MIT

// Package failure classifies the fatal conditions of a compile run.
package failure

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind uint8

const (
	// Unknown is the kind of errors that carry no classification.
	Unknown Kind = iota
	// ArgumentError is bad or missing command line input.
	ArgumentError
	// LibraryLoadError means no usable compiler library or entry point.
	LibraryLoadError
	// IOError is an unreadable source or an unwritable header.
	IOError
	// DataIntegrityError is a read that disagrees with the queried size.
	DataIntegrityError
	// CompilationError is a failed compile that produced no output at all.
	CompilationError
	// OutOfMemoryError is a source buffer that cannot be allocated.
	OutOfMemoryError
)

func (k Kind) String() string {
	switch k {
	case ArgumentError:
		return "ArgumentError"
	case LibraryLoadError:
		return "LibraryLoadError"
	case IOError:
		return "IOError"
	case DataIntegrityError:
		return "DataIntegrityError"
	case CompilationError:
		return "CompilationError"
	case OutOfMemoryError:
		return "OutOfMemoryError"
	default:
		return "Unknown"
	}
}

// ExitCode returns the process exit status for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case ArgumentError:
		return 2
	case LibraryLoadError:
		return 3
	case IOError:
		return 4
	case DataIntegrityError:
		return 5
	case CompilationError:
		return 6
	case OutOfMemoryError:
		return 7
	default:
		return 1
	}
}

// Error is a classified failure. Msg is the user facing description;
// Err, if set, is the underlying cause and is appended after a colon.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a failure of kind k with a formatted message.
func New(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err as kind k, prefixed by msg.
func Wrap(k Kind, err error, msg string) *Error {
	return &Error{Kind: k, Msg: msg, Err: err}
}

// KindOf reports the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err is classified as kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
