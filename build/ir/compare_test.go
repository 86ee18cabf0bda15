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

package ir_test

import (
	"math"
	"testing"

	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

func TestRepr(t *testing.T) {
	c := ir.NewCounter()
	i := c.Index()
	A := symbol(t, "A", 3, 3)
	v := symbol(t, "v", 3)
	s := symbol(t, "s")
	aii := must(ir.NewIndexed(A, ir.MultiIndexOf(i, i)))
	tests := []struct {
		node ir.Node
		want string
	}{
		{node: ir.NewInt(2), want: "Number(2)"},
		{node: ir.NewInt(-1), want: "Number(-1)"},
		{node: ir.NewFloat(2), want: "Number(2.0)"},
		{node: ir.NewFloat(0.5), want: "Number(0.5)"},
		{node: ir.NewFloat(math.Inf(1)), want: "Number(+Inf)"},
		{node: A, want: `Symbol("A", (3, 3))`},
		{node: v, want: `Symbol("v", (3,))`},
		{node: s, want: `Symbol("s", ())`},
		{node: ir.NewLabel("x"), want: `Label("x")`},
		{
			node: must(ir.NewProduct(ir.NewInt(2), ir.NewInt(3))),
			want: "Product(Number(2), Number(3))",
		},
		{
			node: must(ir.NewIndexed(A, ir.NewMultiIndex(ir.Fixed(0), ir.Fixed(1)))),
			want: `Indexed(Symbol("A", (3, 3)), MultiIndex((FixedIndex(0), FixedIndex(1))))`,
		},
		{
			node: must(ir.NewIndexSum(must(ir.NewIndexed(v, ir.MultiIndexOf(i))), i)),
			want: `IndexSum(Indexed(Symbol("v", (3,)), MultiIndex((Index(1),))), MultiIndex((Index(1),)))`,
		},
		{
			node: must(ir.NewComponentTensor(must(ir.NewIndexed(v, ir.MultiIndexOf(i))), []ir.Index{i})),
			want: `ComponentTensor(Indexed(Symbol("v", (3,)), MultiIndex((Index(1),))), MultiIndex((Index(1),)))`,
		},
		{
			node: aii,
			want: `Indexed(Symbol("A", (3, 3)), MultiIndex((Index(1), Index(1))))`,
		},
		{
			node: must(ir.NewSpatialDerivative(s, i, 2)),
			want: `SpatialDerivative(Symbol("s", ()), MultiIndex((Index(1),)), 2)`,
		},
		{
			node: must(ir.NewMathFunction(ir.Sqrt, s)),
			want: `Sqrt(Symbol("s", ()))`,
		},
		{
			node: must(ir.NewBinaryCondition(irkind.And,
				must(ir.NewBinaryCondition(irkind.LT, s, ir.NewInt(0))),
				must(ir.NewBinaryCondition(irkind.GE, s, ir.NewInt(-1))),
			)),
			want: `AndCondition(LT(Symbol("s", ()), Number(0)), GE(Symbol("s", ()), Number(-1)))`,
		},
		{
			node: must(ir.NewZero([]int{3}, []ir.FreeIndex{{Index: i, Dim: 2}})),
			want: "Zero((3,), (Index(1),), (2,))",
		},
		{
			node: ir.NewVariable(v, ir.NewLabel("u")),
			want: `Variable(Symbol("v", (3,)), Label("u"))`,
		},
	}
	for _, test := range tests {
		if got := test.node.Repr(); got != test.want {
			t.Errorf("got %s but want %s", got, test.want)
		}
	}
}

func TestString(t *testing.T) {
	c := ir.NewCounter()
	i := c.Index()
	A := symbol(t, "A", 3, 3)
	s := symbol(t, "s")
	ai0 := must(ir.NewIndexed(A, ir.NewMultiIndex(i, ir.Fixed(0))))
	tests := []struct {
		node ir.Node
		want string
	}{
		{node: must(ir.NewSum(s, ir.NewInt(2))), want: "(s + 2)"},
		{node: must(ir.NewProduct(s, A)), want: "(s * A)"},
		{node: ai0, want: "A[i_1, 0]"},
		{node: must(ir.NewIndexSum(ai0, i)), want: "sum_{i_1} A[i_1, 0]"},
		{node: must(ir.NewTransposed(A)), want: "(A)^T"},
		{node: ir.NewAbs(s), want: "| s |"},
		{node: must(ir.NewMathFunction(ir.Cos, s)), want: "cos(s)"},
	}
	for _, test := range tests {
		if got := test.node.String(); got != test.want {
			t.Errorf("got %q but want %q", got, test.want)
		}
	}
}

func TestEqual(t *testing.T) {
	build := func() ir.Expr {
		return must(ir.NewSum(ir.NewInt(2), ir.NewInt(3)))
	}
	a, b := build(), build()
	if a == b {
		t.Fatalf("two constructions returned the same node")
	}
	if !ir.Equal(a, b) {
		t.Errorf("%s != %s", a.Repr(), b.Repr())
	}
	if ir.Hash(a) != ir.Hash(b) {
		t.Errorf("equal trees have different hashes")
	}
	if ir.Key(a) != ir.Key(b) {
		t.Errorf("equal trees have different keys")
	}
	c := build()
	if !ir.Equal(b, c) || !ir.Equal(a, c) {
		t.Errorf("equality is not transitive")
	}
	if !ir.Equal(a, a) {
		t.Errorf("a node is not equal to itself")
	}

	s := symbol(t, "s")
	r := symbol(t, "r")
	nan := ir.NewFloat(math.NaN())
	k := ir.NewCounter().Index()
	notEqual := []struct {
		x, y ir.Node
	}{
		{x: ir.NewInt(2), y: ir.NewFloat(2)},
		{x: ir.NewInt(2), y: ir.NewInt(3)},
		{x: s, y: r},
		{x: s, y: symbol(t, "s", 1)},
		{x: must(ir.NewSum(s, r)), y: must(ir.NewSum(r, s))},
		{x: must(ir.NewSum(s, r)), y: must(ir.NewProduct(s, r))},
		{x: must(ir.NewSum(s, r)), y: must(ir.NewSum(s, r, s))},
		{x: must(ir.NewMathFunction(ir.Sin, s)), y: must(ir.NewMathFunction(ir.Cos, s))},
		{x: must(ir.NewBinaryCondition(irkind.LT, s, r)), y: must(ir.NewBinaryCondition(irkind.GT, s, r))},
		{x: must(ir.NewSpatialDerivative(s, k, 2)), y: must(ir.NewSpatialDerivative(s, k, 3))},
		{x: must(ir.NewSpatialDerivative(s, ir.Fixed(0), 2)), y: must(ir.NewSpatialDerivative(s, ir.Fixed(0), 3))},
		{x: s, y: nil},
	}
	for _, test := range notEqual {
		if ir.Equal(test.x, test.y) {
			t.Errorf("%v == %v", test.x, test.y)
		}
		if test.y != nil && ir.Key(test.x) == ir.Key(test.y) {
			t.Errorf("%v and %v have the same key", test.x, test.y)
		}
	}
	if !ir.Equal(nan, ir.NewFloat(math.NaN())) {
		t.Errorf("NaN literals are not structurally equal")
	}
}

func TestEqualSharedSubtrees(t *testing.T) {
	// Each level doubles the size of the tree but not the number of nodes.
	x := ir.Expr(symbol(t, "x"))
	for range 64 {
		x = must(ir.NewSum(x, x))
	}
	a := must(ir.NewProduct(x, ir.NewInt(2)))
	b := must(ir.NewProduct(x, ir.NewInt(2)))
	if !ir.Equal(a, b) {
		t.Errorf("trees sharing their operands are not equal")
	}
	if !ir.Equal(x, x) {
		t.Errorf("identical trees are not equal")
	}
}
