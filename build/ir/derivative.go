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
	"strconv"

	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

type (
	// SpatialDerivative is the derivative of an expression with respect to
	// one spatial coordinate. The shape of the expression is unchanged:
	// the derivative index is either a new free index or, if it repeats a
	// free index of the expression, a contraction the caller must sum over.
	SpatialDerivative struct {
		operator
		repeated []Index
		dim      int
	}

	// Variable names an expression so that it can be referred to,
	// for instance to differentiate with respect to it.
	Variable struct{ operator }

	// VariableDerivative is the derivative of an expression with respect
	// to a variable. Its shape is the shape of the expression followed by
	// the shape of the variable.
	VariableDerivative struct{ operator }
)

var (
	_ Expr = (*SpatialDerivative)(nil)
	_ Expr = (*Variable)(nil)
	_ Expr = (*VariableDerivative)(nil)
)

// NewSpatialDerivative returns the derivative of f along the coordinate idx
// of a space of dimension dim.
func NewSpatialDerivative(f Expr, idx IndexEntry, dim int) (*SpatialDerivative, error) {
	if dim <= 0 {
		return nil, fmterr.Shapef("invalid spatial dimension %d", dim)
	}
	var idxFree []FreeIndex
	switch idxT := idx.(type) {
	case AxisIndex:
		return nil, fmterr.Indexf("cannot take the derivative with respect to an axis")
	case FixedIndex:
		if idxT.value < 0 || idxT.value >= dim {
			return nil, fmterr.Indexf("derivative coordinate %d out of range [0, %d)", idxT.value, dim)
		}
	case Index:
		idxFree = []FreeIndex{{Index: idxT, Dim: dim}}
	default:
		return nil, fmterr.Indexf("index type %T not supported", idx)
	}
	free, repeated, err := MergeFree(idxFree, f.FreeIndices())
	if err != nil {
		return nil, err
	}
	return &SpatialDerivative{
		operator: newOperator(f.Shape(), free, f, NewMultiIndex(idx)),
		repeated: repeated,
		dim:      dim,
	}, nil
}

func (*SpatialDerivative) node() {}

// Kind of the node.
func (*SpatialDerivative) Kind() irkind.Kind { return irkind.SpatialDerivative }

// X returns the expression being differentiated.
func (d *SpatialDerivative) X() Expr { return d.Operand(0) }

// Index returns the coordinate of the derivative.
func (d *SpatialDerivative) Index() IndexEntry { return d.ops[1].(*MultiIndex).At(0) }

// Repeated returns the derivative index if it repeats a free index of the operand.
func (d *SpatialDerivative) Repeated() []Index { return d.repeated }

// Dim returns the dimension of the space.
func (d *SpatialDerivative) Dim() int { return d.dim }

func (d *SpatialDerivative) attribute() string { return strconv.Itoa(d.dim) }

// Repr returns the canonical form of the node.
// The dimension of the space is the last argument.
func (d *SpatialDerivative) Repr() string {
	return d.cachedRepr(func() string {
		call := reprCall("SpatialDerivative", d.ops...)
		return call[:len(call)-1] + ", " + d.attribute() + ")"
	})
}

// String returns f.dx(i).
func (d *SpatialDerivative) String() string {
	return d.ops[0].String() + ".dx(" + d.ops[1].String() + ")"
}

// NewVariable returns an expression named by a label.
func NewVariable(e Expr, label *Label) *Variable {
	return &Variable{newOperator(e.Shape(), e.FreeIndices(), e, label)}
}

func (*Variable) node() {}

// Kind of the node.
func (*Variable) Kind() irkind.Kind { return irkind.Variable }

// Expression named by the variable.
func (v *Variable) Expression() Expr { return v.Operand(0) }

// Label of the variable.
func (v *Variable) Label() *Label { return v.ops[1].(*Label) }

// Repr returns the canonical form of the node.
func (v *Variable) Repr() string {
	return v.cachedRepr(func() string { return reprCall("Variable", v.ops...) })
}

// String returns the name of the label.
func (v *Variable) String() string { return v.Label().Name() }

// NewVariableDerivative returns the derivative of f with respect to v.
// f and v cannot share a free index.
func NewVariableDerivative(f Expr, v *Variable) (*VariableDerivative, error) {
	free, err := disjointFree("derivative with respect to "+v.Label().Name(), f.FreeIndices(), v.FreeIndices())
	if err != nil {
		return nil, err
	}
	return &VariableDerivative{newOperator(slices.Concat(f.Shape(), v.Shape()), free, f, v)}, nil
}

func (*VariableDerivative) node() {}

// Kind of the node.
func (*VariableDerivative) Kind() irkind.Kind { return irkind.VariableDerivative }

// X returns the expression being differentiated.
func (d *VariableDerivative) X() Expr { return d.Operand(0) }

// Variable returns the variable of the derivative.
func (d *VariableDerivative) Variable() *Variable { return d.ops[1].(*Variable) }

// Repr returns the canonical form of the node.
func (d *VariableDerivative) Repr() string {
	return d.cachedRepr(func() string { return reprCall("VariableDerivative", d.ops...) })
}

// String returns diff(f, v).
func (d *VariableDerivative) String() string {
	return "diff(" + d.ops[0].String() + ", " + d.ops[1].String() + ")"
}
