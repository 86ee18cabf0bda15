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

type (
	// Transposed swaps the two axes of a matrix.
	Transposed struct{ operator }

	// Inner is the full contraction of two tensors of the same shape.
	Inner struct{ operator }

	// Outer is the tensor product of two tensors.
	Outer struct{ operator }

	// Dot contracts the last axis of a tensor with the first axis of another.
	Dot struct{ operator }

	// Trace of a square matrix.
	Trace struct{ operator }

	// Determinant of a square matrix.
	Determinant struct{ operator }
)

var (
	_ Expr = (*Transposed)(nil)
	_ Expr = (*Inner)(nil)
	_ Expr = (*Outer)(nil)
	_ Expr = (*Dot)(nil)
	_ Expr = (*Trace)(nil)
	_ Expr = (*Determinant)(nil)
)

// NewTransposed returns the transpose of a matrix.
func NewTransposed(a Expr) (*Transposed, error) {
	if Rank(a) != 2 {
		return nil, fmterr.Shapef("transposed is only defined for rank 2 tensors but got rank %d", Rank(a))
	}
	shape := a.Shape()
	return &Transposed{newOperator([]int{shape[1], shape[0]}, a.FreeIndices(), a)}, nil
}

func (*Transposed) node() {}

// Kind of the node.
func (*Transposed) Kind() irkind.Kind { return irkind.Transposed }

// Repr returns the canonical form of the node.
func (t *Transposed) Repr() string {
	return t.cachedRepr(func() string { return reprCall("Transposed", t.ops...) })
}

// String returns (a)^T.
func (t *Transposed) String() string { return "(" + t.ops[0].String() + ")^T" }

// NewInner returns the inner product of two tensors of the same shape.
func NewInner(a, b Expr) (*Inner, error) {
	if !slices.Equal(a.Shape(), b.Shape()) {
		return nil, fmterr.Shapef("inner product requires operands of the same shape but got %v and %v", a.Shape(), b.Shape())
	}
	free, err := disjointFree("inner product", a.FreeIndices(), b.FreeIndices())
	if err != nil {
		return nil, err
	}
	return &Inner{newOperator(nil, free, a, b)}, nil
}

func (*Inner) node() {}

// Kind of the node.
func (*Inner) Kind() irkind.Kind { return irkind.Inner }

// Repr returns the canonical form of the node.
func (in *Inner) Repr() string {
	return in.cachedRepr(func() string { return reprCall("Inner", in.ops...) })
}

// String returns inner(a, b).
func (in *Inner) String() string { return "inner(" + joinStrings(in.ops, ", ") + ")" }

// NewOuter returns the outer product of two tensors.
func NewOuter(a, b Expr) (*Outer, error) {
	free, err := disjointFree("outer product", a.FreeIndices(), b.FreeIndices())
	if err != nil {
		return nil, err
	}
	shape := append(slices.Clone(a.Shape()), b.Shape()...)
	return &Outer{newOperator(shape, free, a, b)}, nil
}

func (*Outer) node() {}

// Kind of the node.
func (*Outer) Kind() irkind.Kind { return irkind.Outer }

// Repr returns the canonical form of the node.
func (o *Outer) Repr() string {
	return o.cachedRepr(func() string { return reprCall("Outer", o.ops...) })
}

// String returns outer(a, b).
func (o *Outer) String() string { return "outer(" + joinStrings(o.ops, ", ") + ")" }

// NewDot returns the contraction of the last axis of a with the first axis of b.
// Two scalars can also be multiplied with a dot product.
func NewDot(a, b Expr) (*Dot, error) {
	ar, br := Rank(a), Rank(b)
	var shape []int
	switch {
	case ar == 0 && br == 0:
	case ar == 0 || br == 0:
		return nil, fmterr.Shapef("dot product requires non-scalar arguments but got ranks %d and %d", ar, br)
	default:
		as, bs := a.Shape(), b.Shape()
		if as[ar-1] != bs[0] {
			return nil, fmterr.Shapef("dimension mismatch in dot product: shapes %v and %v", as, bs)
		}
		shape = append(slices.Clone(as[:ar-1]), bs[1:]...)
	}
	free, err := disjointFree("dot product", a.FreeIndices(), b.FreeIndices())
	if err != nil {
		return nil, err
	}
	return &Dot{newOperator(shape, free, a, b)}, nil
}

func (*Dot) node() {}

// Kind of the node.
func (*Dot) Kind() irkind.Kind { return irkind.Dot }

// Repr returns the canonical form of the node.
func (d *Dot) Repr() string {
	return d.cachedRepr(func() string { return reprCall("Dot", d.ops...) })
}

// String returns dot(a, b).
func (d *Dot) String() string { return "dot(" + joinStrings(d.ops, ", ") + ")" }

func requireSquare(op string, a Expr) error {
	shape := a.Shape()
	if len(shape) != 2 {
		return fmterr.Shapef("%s of a tensor of rank %d: expected rank 2", op, len(shape))
	}
	if shape[0] != shape[1] {
		return fmterr.Shapef("%s of a non-square matrix of shape %v", op, shape)
	}
	return nil
}

// NewTrace returns the trace of a square matrix.
func NewTrace(a Expr) (*Trace, error) {
	if err := requireSquare("trace", a); err != nil {
		return nil, err
	}
	return &Trace{newOperator(nil, a.FreeIndices(), a)}, nil
}

func (*Trace) node() {}

// Kind of the node.
func (*Trace) Kind() irkind.Kind { return irkind.Trace }

// Repr returns the canonical form of the node.
func (t *Trace) Repr() string {
	return t.cachedRepr(func() string { return reprCall("Trace", t.ops...) })
}

// String returns tr(a).
func (t *Trace) String() string { return "tr(" + t.ops[0].String() + ")" }

// NewDeterminant returns the determinant of a scalar or of a square matrix.
func NewDeterminant(a Expr) (*Determinant, error) {
	if len(a.FreeIndices()) > 0 {
		return nil, fmterr.Indexf("determinant of an expression with free indices %v is not supported", FreeEntries(a))
	}
	if !IsScalar(a) {
		if err := requireSquare("determinant", a); err != nil {
			return nil, err
		}
	}
	return &Determinant{newOperator(nil, nil, a)}, nil
}

func (*Determinant) node() {}

// Kind of the node.
func (*Determinant) Kind() irkind.Kind { return irkind.Determinant }

// Repr returns the canonical form of the node.
func (d *Determinant) Repr() string {
	return d.cachedRepr(func() string { return reprCall("Determinant", d.ops...) })
}

// String returns det(a).
func (d *Determinant) String() string { return "det(" + d.ops[0].String() + ")" }
