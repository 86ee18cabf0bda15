// Copyright 2025 Google LLC
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

// Package irhelper provides helper functions to build expressions programmatically.
//
// The functions panic on invalid input and are meant for tests and examples.
package irhelper

import (
	"fmt"
	"strings"

	"github.com/gx-org/tensorform/build/ir"
)

// Element is a named function space given by the shape of its values.
type Element struct {
	Family string
	Degree int
	Value  []int
}

var _ ir.Element = Element{}

// Shape of the values of functions in the space.
func (e Element) Shape() []int { return e.Value }

// String identifies the element, for example P1 or P2(3,3).
func (e Element) String() string {
	s := fmt.Sprintf("%s%d", e.Family, e.Degree)
	if len(e.Value) == 0 {
		return s
	}
	dims := make([]string, len(e.Value))
	for i, d := range e.Value {
		dims[i] = fmt.Sprint(d)
	}
	return s + "(" + strings.Join(dims, ",") + ")"
}

// Scalar returns a Lagrange element of scalar values.
func Scalar(degree int) Element {
	return Element{Family: "P", Degree: degree}
}

// Vector returns a Lagrange element of vector values.
func Vector(degree, dim int) Element {
	return Element{Family: "P", Degree: degree, Value: []int{dim}}
}

// Matrix returns a Lagrange element of matrix values.
func Matrix(degree, rows, cols int) Element {
	return Element{Family: "P", Degree: degree, Value: []int{rows, cols}}
}

// Must returns x or panics if err is not nil.
func Must[T any](x T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return x
}

// TestFunction returns the argument number 0 of a form.
func TestFunction(el ir.Element) *ir.Argument {
	return Must(ir.NewArgument(el, 0))
}

// TrialFunction returns the argument number 1 of a form.
func TrialFunction(el ir.Element) *ir.Argument {
	return Must(ir.NewArgument(el, 1))
}

// Coefficient returns a known function.
func Coefficient(el ir.Element, count int) *ir.Coefficient {
	return Must(ir.NewCoefficient(el, count))
}

// Symbol returns a named tensor.
func Symbol(name string, shape ...int) *ir.Symbol {
	return Must(ir.NewSymbol(name, shape...))
}
