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
	// Indexed selects components of a tensor with a multi-index.
	// Axis markers keep the corresponding axes in the result.
	Indexed struct {
		operator
		repeated []Index
	}

	// IndexSum sums an expression over a free index.
	IndexSum struct {
		operator
		dim int
	}

	// ComponentTensor builds a tensor from a scalar expression by
	// turning some of its free indices into axes.
	ComponentTensor struct{ operator }

	// ListTensor builds a tensor by stacking expressions of the same shape.
	ListTensor struct{ operator }
)

var (
	_ Expr = (*Indexed)(nil)
	_ Expr = (*IndexSum)(nil)
	_ Expr = (*ComponentTensor)(nil)
	_ Expr = (*ListTensor)(nil)
)

// ----------------------------------------------------------------------------
// Indexed.

// NewIndexed returns the expression e indexed by a multi-index.
// The multi-index must have one entry per axis of e.
func NewIndexed(e Expr, mi *MultiIndex) (*Indexed, error) {
	shape := e.Shape()
	if mi.Len() != len(shape) {
		return nil, fmterr.Indexf("invalid number of indices (%d) for an expression of rank %d", mi.Len(), len(shape))
	}
	var outShape []int
	var indexFree []FreeIndex
	for pos, entry := range mi.Entries() {
		switch entryT := entry.(type) {
		case FixedIndex:
			if entryT.value < 0 || entryT.value >= shape[pos] {
				return nil, fmterr.Indexf("fixed index %d out of range [0, %d) for axis %d", entryT.value, shape[pos], pos)
			}
		case Index:
			indexFree = append(indexFree, FreeIndex{Index: entryT, Dim: shape[pos]})
		case AxisIndex:
			outShape = append(outShape, shape[pos])
		default:
			return nil, fmterr.Indexf("index type %T not supported", entry)
		}
	}
	free, repeated, err := MergeFree(e.FreeIndices(), indexFree)
	if err != nil {
		return nil, err
	}
	return &Indexed{
		operator: newOperator(outShape, free, e, mi),
		repeated: repeated,
	}, nil
}

func (*Indexed) node() {}

// Kind of the node.
func (*Indexed) Kind() irkind.Kind { return irkind.Indexed }

// X returns the expression being indexed.
func (ind *Indexed) X() Expr { return ind.Operand(0) }

// Index returns the multi-index.
func (ind *Indexed) Index() *MultiIndex { return ind.ops[1].(*MultiIndex) }

// Repeated returns the indices occurring twice, sorted by identity.
func (ind *Indexed) Repeated() []Index { return ind.repeated }

// Repr returns the canonical form of the node.
func (ind *Indexed) Repr() string {
	return ind.cachedRepr(func() string { return reprCall("Indexed", ind.ops...) })
}

// String returns x[indices].
func (ind *Indexed) String() string {
	return ind.ops[0].String() + "[" + ind.ops[1].String() + "]"
}

// ----------------------------------------------------------------------------
// IndexSum.

// NewIndexSum returns the sum of the summand over one of its free indices.
func NewIndexSum(summand Expr, idx Index) (*IndexSum, error) {
	free, dims, err := RemoveFree(summand.FreeIndices(), []Index{idx})
	if err != nil {
		return nil, fmterr.Indexf("cannot sum over %s: not a free index of %s", idx, summand.String())
	}
	return &IndexSum{
		operator: newOperator(summand.Shape(), free, summand, MultiIndexOf(idx)),
		dim:      dims[0],
	}, nil
}

func (*IndexSum) node() {}

// Kind of the node.
func (*IndexSum) Kind() irkind.Kind { return irkind.IndexSum }

// Summand of the sum.
func (s *IndexSum) Summand() Expr { return s.Operand(0) }

// Index summed over.
func (s *IndexSum) Index() Index { return s.ops[1].(*MultiIndex).At(0).(Index) }

// Dim returns the number of terms of the sum.
func (s *IndexSum) Dim() int { return s.dim }

// Repr returns the canonical form of the node.
func (s *IndexSum) Repr() string {
	return s.cachedRepr(func() string { return reprCall("IndexSum", s.ops...) })
}

// String returns sum_{i} summand.
func (s *IndexSum) String() string {
	return "sum_{" + s.Index().String() + "} " + s.ops[0].String()
}

// ----------------------------------------------------------------------------
// ComponentTensor.

// NewComponentTensor returns the tensor whose axes are the indices ii
// of the scalar expression e.
func NewComponentTensor(e Expr, ii []Index) (*ComponentTensor, error) {
	if !IsScalar(e) {
		return nil, fmterr.Shapef("cannot build a component tensor from an expression of shape %v: expected a scalar", e.Shape())
	}
	if len(ii) == 0 {
		return nil, fmterr.Indexf("a component tensor requires at least one index")
	}
	free, dims, err := RemoveFree(e.FreeIndices(), ii)
	if err != nil {
		return nil, err
	}
	return &ComponentTensor{newOperator(dims, free, e, MultiIndexOf(ii...))}, nil
}

func (*ComponentTensor) node() {}

// Kind of the node.
func (*ComponentTensor) Kind() irkind.Kind { return irkind.ComponentTensor }

// X returns the scalar expression.
func (ct *ComponentTensor) X() Expr { return ct.Operand(0) }

// Indices returns the indices mapped to the axes of the tensor.
func (ct *ComponentTensor) Indices() []Index { return ct.ops[1].(*MultiIndex).Indices() }

// Repr returns the canonical form of the node.
func (ct *ComponentTensor) Repr() string {
	return ct.cachedRepr(func() string { return reprCall("ComponentTensor", ct.ops...) })
}

// String returns [x]_{indices}.
func (ct *ComponentTensor) String() string {
	return "[" + ct.ops[0].String() + "]_{" + ct.ops[1].String() + "}"
}

// ----------------------------------------------------------------------------
// ListTensor.

// NewListTensor returns a tensor stacking its components along a new first axis.
func NewListTensor(comps ...Expr) (*ListTensor, error) {
	if len(comps) == 0 {
		return nil, fmterr.Shapef("a list tensor requires at least one component")
	}
	first := comps[0]
	for i, comp := range comps[1:] {
		if !slices.Equal(first.Shape(), comp.Shape()) {
			return nil, fmterr.Shapef("list tensor component %d has shape %v but component 0 has shape %v", i+1, comp.Shape(), first.Shape())
		}
		if !EqualFree(first, comp) {
			return nil, fmterr.Indexf("list tensor component %d has free indices %v but component 0 has free indices %v", i+1, FreeEntries(comp), FreeEntries(first))
		}
	}
	shape := append([]int{len(comps)}, first.Shape()...)
	return &ListTensor{newOperator(shape, first.FreeIndices(), toNodes(comps)...)}, nil
}

func (*ListTensor) node() {}

// Kind of the node.
func (*ListTensor) Kind() irkind.Kind { return irkind.ListTensor }

// Components of the tensor.
func (lt *ListTensor) Components() []Node { return lt.ops }

// Repr returns the canonical form of the node.
func (lt *ListTensor) Repr() string {
	return lt.cachedRepr(func() string { return reprCall("ListTensor", lt.ops...) })
}

// String returns [a, b, ...].
func (lt *ListTensor) String() string { return "[" + joinStrings(lt.ops, ", ") + "]" }
