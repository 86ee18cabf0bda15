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
	"slices"

	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

// operator is the base of all nodes with operands.
type operator struct {
	exprBase
	ops []Node
}

// Operands of the node.
func (op *operator) Operands() []Node { return op.ops }

// Operand returns the ith operand as an expression.
func (op *operator) Operand(i int) Expr { return op.ops[i].(Expr) }

func newOperator(shape []int, free []FreeIndex, ops ...Node) operator {
	if len(shape) == 0 {
		shape = nil
	}
	if len(free) == 0 {
		free = nil
	}
	return operator{
		exprBase: exprBase{shape: shape, free: free},
		ops:      ops,
	}
}

type (
	// Sum of expressions of the same shape and free indices.
	Sum struct{ operator }

	// Product of expressions.
	// Indices shared by two operands are contractions:
	// the caller is responsible for summing over them.
	Product struct {
		operator
		repeated []Index
	}

	// Division of an expression by a scalar.
	Division struct{ operator }

	// Power of a scalar by a scalar.
	Power struct{ operator }

	// Mod is the remainder of the division of a scalar by a scalar.
	Mod struct{ operator }

	// Abs is the absolute value of each component of an expression.
	Abs struct{ operator }
)

var (
	_ Expr = (*Sum)(nil)
	_ Expr = (*Product)(nil)
	_ Expr = (*Division)(nil)
	_ Expr = (*Power)(nil)
	_ Expr = (*Mod)(nil)
	_ Expr = (*Abs)(nil)
)

func requireTrueScalar(op string, e Expr) error {
	if IsTrueScalar(e) {
		return nil
	}
	if !IsScalar(e) {
		return fmterr.Shapef("%s: expected a scalar but got an expression of shape %v", op, e.Shape())
	}
	return fmterr.Shapef("%s: expected a scalar without free indices but got free indices %v", op, FreeEntries(e))
}

// ----------------------------------------------------------------------------
// Sum.

// NewSum returns the sum of expressions.
func NewSum(ops ...Expr) (*Sum, error) {
	if len(ops) < 2 {
		return nil, fmterr.Shapef("a sum requires at least 2 operands but got %d", len(ops))
	}
	first := ops[0]
	for _, op := range ops[1:] {
		if !slices.Equal(first.Shape(), op.Shape()) {
			return nil, fmterr.Shapef("cannot add expressions of rank %d and %d with shapes %v and %v", Rank(first), Rank(op), first.Shape(), op.Shape())
		}
		if !EqualFree(first, op) {
			return nil, fmterr.Indexf("cannot add expressions with different free indices %v and %v", FreeEntries(first), FreeEntries(op))
		}
	}
	return &Sum{newOperator(first.Shape(), first.FreeIndices(), toNodes(ops)...)}, nil
}

func (*Sum) node() {}

// Kind of the node.
func (*Sum) Kind() irkind.Kind { return irkind.Sum }

// Repr returns the canonical form of the node.
func (s *Sum) Repr() string {
	return s.cachedRepr(func() string { return reprCall("Sum", s.ops...) })
}

// String returns the operands joined by +.
func (s *Sum) String() string { return "(" + joinStrings(s.ops, " + ") + ")" }

// ----------------------------------------------------------------------------
// Product.

// ProductShape returns the shape of the product of two tensors.
// A scalar multiplies anything, a matrix multiplies a matrix or a vector.
func ProductShape(a, b []int) ([]int, error) {
	switch {
	case len(a) == 0:
		return b, nil
	case len(b) == 0:
		return a, nil
	case len(a) == 2 && (len(b) == 1 || len(b) == 2):
		if a[1] != b[0] {
			return nil, fmterr.Shapef("cannot multiply shape %v with shape %v: dimensions %d and %d do not match", a, b, a[1], b[0])
		}
		return append([]int{a[0]}, b[1:]...), nil
	}
	return nil, fmterr.Shapef("invalid ranks %d and %d in product", len(a), len(b))
}

// NewProduct returns the product of expressions.
func NewProduct(ops ...Expr) (*Product, error) {
	if len(ops) < 2 {
		return nil, fmterr.Shapef("a product requires at least 2 operands but got %d", len(ops))
	}
	shape := ops[0].Shape()
	frees := [][]FreeIndex{ops[0].FreeIndices()}
	for _, op := range ops[1:] {
		var err error
		if shape, err = ProductShape(shape, op.Shape()); err != nil {
			return nil, err
		}
		frees = append(frees, op.FreeIndices())
	}
	free, repeated, err := MergeFree(frees...)
	if err != nil {
		return nil, err
	}
	return &Product{
		operator: newOperator(shape, free, toNodes(ops)...),
		repeated: repeated,
	}, nil
}

func (*Product) node() {}

// Kind of the node.
func (*Product) Kind() irkind.Kind { return irkind.Product }

// Repeated returns the indices shared by two operands sorted by identity.
// The product is only meaningful once summed over these indices.
func (p *Product) Repeated() []Index { return p.repeated }

// Repr returns the canonical form of the node.
func (p *Product) Repr() string {
	return p.cachedRepr(func() string { return reprCall("Product", p.ops...) })
}

// String returns the operands joined by *.
func (p *Product) String() string { return "(" + joinStrings(p.ops, " * ") + ")" }

// ----------------------------------------------------------------------------
// Division.

// NewDivision returns a divided by b.
func NewDivision(a, b Expr) (*Division, error) {
	if err := requireTrueScalar("division", b); err != nil {
		return nil, err
	}
	return &Division{newOperator(a.Shape(), a.FreeIndices(), a, b)}, nil
}

func (*Division) node() {}

// Kind of the node.
func (*Division) Kind() irkind.Kind { return irkind.Division }

// Repr returns the canonical form of the node.
func (d *Division) Repr() string {
	return d.cachedRepr(func() string { return reprCall("Division", d.ops...) })
}

// String returns a / b.
func (d *Division) String() string { return "(" + joinStrings(d.ops, " / ") + ")" }

// ----------------------------------------------------------------------------
// Power.

// NewPower returns a to the power of b.
func NewPower(a, b Expr) (*Power, error) {
	if err := requireTrueScalar("power base", a); err != nil {
		return nil, err
	}
	if err := requireTrueScalar("power exponent", b); err != nil {
		return nil, err
	}
	return &Power{newOperator(nil, nil, a, b)}, nil
}

func (*Power) node() {}

// Kind of the node.
func (*Power) Kind() irkind.Kind { return irkind.Power }

// Repr returns the canonical form of the node.
func (p *Power) Repr() string {
	return p.cachedRepr(func() string { return reprCall("Power", p.ops...) })
}

// String returns a ** b.
func (p *Power) String() string { return "(" + joinStrings(p.ops, " ** ") + ")" }

// ----------------------------------------------------------------------------
// Mod.

// NewMod returns the remainder of a divided by b.
func NewMod(a, b Expr) (*Mod, error) {
	if err := requireTrueScalar("mod", a); err != nil {
		return nil, err
	}
	if err := requireTrueScalar("mod", b); err != nil {
		return nil, err
	}
	return &Mod{newOperator(nil, nil, a, b)}, nil
}

func (*Mod) node() {}

// Kind of the node.
func (*Mod) Kind() irkind.Kind { return irkind.Mod }

// Repr returns the canonical form of the node.
func (m *Mod) Repr() string {
	return m.cachedRepr(func() string { return reprCall("Mod", m.ops...) })
}

// String returns a % b.
func (m *Mod) String() string { return "(" + joinStrings(m.ops, " % ") + ")" }

// ----------------------------------------------------------------------------
// Abs.

// NewAbs returns the absolute value of an expression.
func NewAbs(a Expr) *Abs {
	return &Abs{newOperator(a.Shape(), a.FreeIndices(), a)}
}

func (*Abs) node() {}

// Kind of the node.
func (*Abs) Kind() irkind.Kind { return irkind.Abs }

// Repr returns the canonical form of the node.
func (a *Abs) Repr() string {
	return a.cachedRepr(func() string { return reprCall("Abs", a.ops...) })
}

// String returns | a |.
func (a *Abs) String() string { return "| " + a.ops[0].String() + " |" }
