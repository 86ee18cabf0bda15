// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fmterr

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/pkg/errors"
)

// Kind classifies a construction error.
type Kind int

const (
	// Unknown is the kind of errors not created by this package.
	Unknown Kind = iota
	// Shape reports operands with a rank or a shape incompatible with an operator.
	Shape
	// Index reports an illegal index pattern.
	Index
	// Internal reports a broken invariant inside the engine itself.
	Internal
	// Restriction reports an expression restricted to a side of a facet
	// where it cannot be, or not restricted where it must be.
	Restriction
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Shape:
		return "shape error"
	case Index:
		return "index error"
	case Internal:
		return "internal error"
	case Restriction:
		return "restriction error"
	default:
		return "unknown error"
	}
}

type (
	// ErrorWithKind is an error attached to a construction error kind.
	ErrorWithKind interface {
		error
		Kind() Kind
		Err() error
	}

	errorWithKind struct {
		kind Kind
		err  error
	}
)

// WithKind attaches a kind to an error.
func WithKind(kind Kind, err error) ErrorWithKind {
	return errorWithKind{kind: kind, err: err}
}

// Shapef returns a shape error.
func Shapef(format string, a ...any) error {
	return WithKind(Shape, errors.Errorf(format, a...))
}

// Indexf returns an index error.
func Indexf(format string, a ...any) error {
	return WithKind(Index, errors.Errorf(format, a...))
}

// Restrictionf returns a restriction error.
func Restrictionf(format string, a ...any) error {
	return WithKind(Restriction, errors.Errorf(format, a...))
}

// Internalf returns an error reporting a bug in the engine.
func Internalf(format string, a ...any) error {
	return AsInternal(errors.Errorf(format, a...))
}

// AsInternal marks an error as internal, potentially adding additional information.
func AsInternal(err error) error {
	return WithKind(Internal, fmt.Errorf("tensorform internal error. This is a bug in tensorform. Please report it. Error:\n%+v", err))
}

// KindOf returns the kind of the first error in the chain carrying a kind.
func KindOf(err error) Kind {
	var withKind ErrorWithKind
	if !errors.As(err, &withKind) {
		return Unknown
	}
	return withKind.Kind()
}

// Is returns true if err has been classified with the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Error returns a string description of the error.
func (err errorWithKind) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	return err.kind.String() + ": " + err.err.Error()
}

// Unwrap the error.
func (err errorWithKind) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithKind) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err errorWithKind) Kind() Kind {
	return err.kind
}

func (err errorWithKind) Err() error {
	return err.err
}

// stackTracer is implemented by errors created by github.com/pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

func format(err error, s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, err.Error())
			var withSt stackTracer
			if errors.As(err, &withSt) {
				fmt.Fprintf(s, "\nError generated at:%+v\n", withSt.StackTrace())
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, err.Error())
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
	}
}
