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

package ir

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

type (
	// Element describes the function space of a form argument.
	// Only its value shape and its identity are used by the tree.
	Element interface {
		// Shape of the values of functions in the space.
		Shape() []int
		// String identifies the element.
		String() string
	}

	// Zero is a zero-valued tensor.
	Zero struct {
		exprBase
	}

	// Number is a scalar literal.
	Number struct {
		exprBase
		dtype dtype.DataType
		i     int64
		f     float64
	}

	// Symbol is a named tensor.
	Symbol struct {
		exprBase
		name string
	}

	// Label is the name of a variable.
	Label struct {
		exprBase
		name string
	}

	// Argument is an argument of a form: a test or a trial function.
	Argument struct {
		exprBase
		element Element
		number  int
	}

	// Coefficient is a known function of a form.
	Coefficient struct {
		exprBase
		element Element
		count   int
	}

	// terminal is a node compared by value.
	terminal interface {
		Node
		equalTerminal(Node) bool
	}
)

var (
	_ terminal = (*Zero)(nil)
	_ terminal = (*Number)(nil)
	_ terminal = (*Symbol)(nil)
	_ terminal = (*Label)(nil)
	_ terminal = (*Argument)(nil)
	_ terminal = (*Coefficient)(nil)
	_ terminal = (*MultiIndex)(nil)
)

func checkShape(shape []int) error {
	for i, dim := range shape {
		if dim <= 0 {
			return fmterr.Shapef("invalid dimension %d for axis %d in shape %v", dim, i, shape)
		}
	}
	return nil
}

func cloneShape(shape []int) []int {
	if len(shape) == 0 {
		return nil
	}
	return slices.Clone(shape)
}

func reprShape(shape []int) string {
	return reprTuple(shape, strconv.Itoa)
}

// ----------------------------------------------------------------------------
// Zero.

// NewZero returns a zero tensor given its shape and its free indices.
func NewZero(shape []int, free []FreeIndex) (*Zero, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	return &Zero{exprBase: exprBase{
		shape: cloneShape(shape),
		free:  sortFree(slices.Clone(free)),
	}}, nil
}

// ZeroLike returns a zero with the same shape and free indices as an expression.
func ZeroLike(e Expr) *Zero {
	return &Zero{exprBase: exprBase{
		shape: e.Shape(),
		free:  e.FreeIndices(),
	}}
}

func (*Zero) node() {}

// Kind of the node.
func (*Zero) Kind() irkind.Kind { return irkind.Zero }

// Operands returns nil.
func (*Zero) Operands() []Node { return nil }

// Repr returns the canonical form of the node.
func (z *Zero) Repr() string {
	return z.cachedRepr(func() string {
		return fmt.Sprintf("Zero(%s, %s, %s)",
			reprShape(z.shape),
			reprTuple(z.free, func(fi FreeIndex) string { return fi.Index.Repr() }),
			reprTuple(z.free, func(fi FreeIndex) string { return strconv.Itoa(fi.Dim) }),
		)
	})
}

// String returns "0".
func (*Zero) String() string { return "0" }

func (z *Zero) equalTerminal(other Node) bool {
	o, ok := other.(*Zero)
	return ok && slices.Equal(z.shape, o.shape) && slices.Equal(z.free, o.free)
}

// IsZero returns true if the expression is a zero tensor.
func IsZero(e Expr) bool {
	_, ok := e.(*Zero)
	return ok
}

// ----------------------------------------------------------------------------
// Number.

// NewInt returns an integer literal.
func NewInt(v int64) *Number {
	return &Number{dtype: dtype.Int64, i: v}
}

// NewFloat returns a floating-point literal.
func NewFloat(v float64) *Number {
	return &Number{dtype: dtype.Float64, f: v}
}

func (*Number) node() {}

// Kind of the node.
func (*Number) Kind() irkind.Kind { return irkind.Number }

// Operands returns nil.
func (*Number) Operands() []Node { return nil }

// DataType of the literal.
func (n *Number) DataType() dtype.DataType { return n.dtype }

// Float returns the value of the literal as a float.
func (n *Number) Float() float64 {
	if n.dtype == dtype.Int64 {
		return float64(n.i)
	}
	return n.f
}

// Int returns the value of the literal as an integer and
// true if the value is an integer.
func (n *Number) Int() (int64, bool) {
	if n.dtype == dtype.Int64 {
		return n.i, true
	}
	return int64(n.f), n.f == math.Trunc(n.f)
}

func (n *Number) value() string {
	if n.dtype == dtype.Int64 {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// Repr returns the canonical form of the node.
func (n *Number) Repr() string {
	return n.cachedRepr(func() string {
		return "Number(" + n.value() + ")"
	})
}

// String returns the value of the literal.
func (n *Number) String() string { return n.value() }

func (n *Number) equalTerminal(other Node) bool {
	o, ok := other.(*Number)
	return ok && n.dtype == o.dtype && n.i == o.i && math.Float64bits(n.f) == math.Float64bits(o.f)
}

// ----------------------------------------------------------------------------
// Symbol.

// NewSymbol returns a named tensor given its shape.
func NewSymbol(name string, shape ...int) (*Symbol, error) {
	if name == "" {
		return nil, fmterr.Shapef("symbol has no name")
	}
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	return &Symbol{
		exprBase: exprBase{shape: cloneShape(shape)},
		name:     name,
	}, nil
}

func (*Symbol) node() {}

// Kind of the node.
func (*Symbol) Kind() irkind.Kind { return irkind.Symbol }

// Operands returns nil.
func (*Symbol) Operands() []Node { return nil }

// Name of the symbol.
func (s *Symbol) Name() string { return s.name }

// Repr returns the canonical form of the node.
func (s *Symbol) Repr() string {
	return s.cachedRepr(func() string {
		return fmt.Sprintf("Symbol(%q, %s)", s.name, reprShape(s.shape))
	})
}

// String returns the name of the symbol.
func (s *Symbol) String() string { return s.name }

func (s *Symbol) equalTerminal(other Node) bool {
	o, ok := other.(*Symbol)
	return ok && s.name == o.name && slices.Equal(s.shape, o.shape)
}

// ----------------------------------------------------------------------------
// Label.

// NewLabel returns a variable label.
func NewLabel(name string) *Label {
	return &Label{name: name}
}

func (*Label) node() {}

// Kind of the node.
func (*Label) Kind() irkind.Kind { return irkind.Label }

// Operands returns nil.
func (*Label) Operands() []Node { return nil }

// Name of the label.
func (l *Label) Name() string { return l.name }

// Repr returns the canonical form of the node.
func (l *Label) Repr() string {
	return l.cachedRepr(func() string {
		return fmt.Sprintf("Label(%q)", l.name)
	})
}

// String returns the name of the label.
func (l *Label) String() string { return l.name }

func (l *Label) equalTerminal(other Node) bool {
	o, ok := other.(*Label)
	return ok && l.name == o.name
}

// ----------------------------------------------------------------------------
// Form arguments.

// NewArgument returns the argument number of a form.
// Test functions are numbered 0, trial functions 1.
func NewArgument(element Element, number int) (*Argument, error) {
	if number < 0 {
		return nil, fmterr.Indexf("invalid argument number %d", number)
	}
	shape := element.Shape()
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	return &Argument{
		exprBase: exprBase{shape: cloneShape(shape)},
		element:  element,
		number:   number,
	}, nil
}

func (*Argument) node() {}

// Kind of the node.
func (*Argument) Kind() irkind.Kind { return irkind.Argument }

// Operands returns nil.
func (*Argument) Operands() []Node { return nil }

// Element of the argument.
func (a *Argument) Element() Element { return a.element }

// Number of the argument.
func (a *Argument) Number() int { return a.number }

// Repr returns the canonical form of the node.
func (a *Argument) Repr() string {
	return a.cachedRepr(func() string {
		return fmt.Sprintf("Argument(%q, %d)", a.element.String(), a.number)
	})
}

// String returns v_number.
func (a *Argument) String() string { return "v_" + strconv.Itoa(a.number) }

func (a *Argument) equalTerminal(other Node) bool {
	o, ok := other.(*Argument)
	return ok && a.number == o.number && a.element.String() == o.element.String()
}

// NewCoefficient returns a coefficient given an element and an identity.
func NewCoefficient(element Element, count int) (*Coefficient, error) {
	shape := element.Shape()
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	return &Coefficient{
		exprBase: exprBase{shape: cloneShape(shape)},
		element:  element,
		count:    count,
	}, nil
}

func (*Coefficient) node() {}

// Kind of the node.
func (*Coefficient) Kind() irkind.Kind { return irkind.Coefficient }

// Operands returns nil.
func (*Coefficient) Operands() []Node { return nil }

// Element of the coefficient.
func (c *Coefficient) Element() Element { return c.element }

// Count identifies the coefficient.
func (c *Coefficient) Count() int { return c.count }

// Repr returns the canonical form of the node.
func (c *Coefficient) Repr() string {
	return c.cachedRepr(func() string {
		return fmt.Sprintf("Coefficient(%q, %d)", c.element.String(), c.count)
	})
}

// String returns w_count.
func (c *Coefficient) String() string { return "w_" + strconv.Itoa(c.count) }

func (c *Coefficient) equalTerminal(other Node) bool {
	o, ok := other.(*Coefficient)
	return ok && c.count == o.count && c.element.String() == o.element.String()
}
