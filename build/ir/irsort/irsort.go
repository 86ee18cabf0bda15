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

// Package irsort orders expressions.
//
// The order does not depend on the identity of the indices or labels
// so that it is stable when indices are renumbered. It is therefore not
// a test for equality: two different expressions can compare as equal.
package irsort

import (
	"cmp"
	"slices"

	"github.com/gx-org/tensorform/build/ir"
)

func compareMultiIndex(a, b *ir.MultiIndex) int {
	for i := range min(a.Len(), b.Len()) {
		x, y := a.At(i), b.At(i)
		xFixed, xIsFixed := x.(ir.FixedIndex)
		yFixed, yIsFixed := y.(ir.FixedIndex)
		switch {
		case xIsFixed && yIsFixed:
			if c := cmp.Compare(xFixed.Value(), yFixed.Value()); c != 0 {
				return c
			}
		case xIsFixed:
			return -1
		case yIsFixed:
			return 1
		}
	}
	return 0
}

func compareTerminal(a, b ir.Node) int {
	switch aT := a.(type) {
	case *ir.MultiIndex:
		return compareMultiIndex(aT, b.(*ir.MultiIndex))
	case *ir.Label:
		return 0
	case *ir.Coefficient:
		return cmp.Compare(aT.Count(), b.(*ir.Coefficient).Count())
	case *ir.Argument:
		return cmp.Compare(aT.Number(), b.(*ir.Argument).Number())
	case *ir.Number:
		bT := b.(*ir.Number)
		if c := cmp.Compare(aT.Float(), bT.Float()); c != 0 {
			return c
		}
		return cmp.Compare(aT.DataType(), bT.DataType())
	case *ir.Zero:
		bT := b.(*ir.Zero)
		if c := slices.Compare(aT.Shape(), bT.Shape()); c != 0 {
			return c
		}
		return cmp.Compare(len(aT.FreeIndices()), len(bT.FreeIndices()))
	}
	return cmp.Compare(a.Repr(), b.Repr())
}

type pair struct{ a, b ir.Node }

// Compare returns -1 if a is before b, +1 if a is after b, 0 otherwise.
// Expressions are first ordered by kind, then by the attributes
// of terminals, then by their operands in order.
func Compare(a, b ir.Node) int {
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == p.b {
			continue
		}
		if c := cmp.Compare(p.a.Kind(), p.b.Kind()); c != 0 {
			return c
		}
		if p.a.Kind().IsTerminal() {
			if c := compareTerminal(p.a, p.b); c != 0 {
				return c
			}
			continue
		}
		switch aT := p.a.(type) {
		case *ir.MathFunction:
			if c := cmp.Compare(aT.Name(), p.b.(*ir.MathFunction).Name()); c != 0 {
				return c
			}
		case *ir.SpatialDerivative:
			if c := cmp.Compare(aT.Dim(), p.b.(*ir.SpatialDerivative).Dim()); c != 0 {
				return c
			}
		}
		aops, bops := p.a.Operands(), p.b.Operands()
		if c := cmp.Compare(len(aops), len(bops)); c != 0 {
			return c
		}
		for i := len(aops) - 1; i >= 0; i-- {
			stack = append(stack, pair{aops[i], bops[i]})
		}
	}
	return 0
}

// Sort sorts expressions in place. The sort is stable.
func Sort[T ir.Node](nodes []T) {
	slices.SortStableFunc(nodes, func(a, b T) int {
		return Compare(a, b)
	})
}

// Sorted returns a sorted copy of a slice of expressions.
func Sorted[T ir.Node](nodes []T) []T {
	nodes = slices.Clone(nodes)
	Sort(nodes)
	return nodes
}
