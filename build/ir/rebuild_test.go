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
	"testing"

	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
)

func TestRebuild(t *testing.T) {
	s := symbol(t, "s")
	u := symbol(t, "u")
	v := symbol(t, "v", 3)
	c := ir.NewCounter()
	i, j := c.Index(), c.Index()
	vi := must(ir.NewIndexed(v, ir.MultiIndexOf(i)))
	sum := must(ir.NewSum(s, u))
	tests := []struct {
		name string
		n    ir.Node
		ops  []ir.Node
		want ir.Node
	}{
		{
			name: "Sum",
			n:    sum,
			ops:  []ir.Node{s, s},
			want: must(ir.NewSum(s, s)),
		},
		{
			name: "Indexed",
			n:    vi,
			ops:  []ir.Node{v, ir.MultiIndexOf(j)},
			want: must(ir.NewIndexed(v, ir.MultiIndexOf(j))),
		},
		{
			name: "IndexSum",
			n:    must(ir.NewIndexSum(must(ir.NewProduct(vi, vi)), i)),
			ops:  []ir.Node{must(ir.NewProduct(vi, u)), ir.MultiIndexOf(i)},
			want: must(ir.NewIndexSum(must(ir.NewProduct(vi, u)), i)),
		},
		{
			name: "ComponentTensor",
			n:    must(ir.NewComponentTensor(vi, []ir.Index{i})),
			ops:  []ir.Node{must(ir.NewProduct(s, vi)), ir.MultiIndexOf(i)},
			want: must(ir.NewComponentTensor(must(ir.NewProduct(s, vi)), []ir.Index{i})),
		},
		{
			name: "SpatialDerivative",
			n:    must(ir.NewSpatialDerivative(s, i, 2)),
			ops:  []ir.Node{u, ir.MultiIndexOf(i)},
			want: must(ir.NewSpatialDerivative(u, i, 2)),
		},
		{
			name: "Variable",
			n:    ir.NewVariable(s, ir.NewLabel("x")),
			ops:  []ir.Node{u, ir.NewLabel("x")},
			want: ir.NewVariable(u, ir.NewLabel("x")),
		},
		{
			name: "VariableDerivative",
			n:    must(ir.NewVariableDerivative(s, ir.NewVariable(u, ir.NewLabel("x")))),
			ops:  []ir.Node{sum, ir.NewVariable(u, ir.NewLabel("x"))},
			want: must(ir.NewVariableDerivative(sum, ir.NewVariable(u, ir.NewLabel("x")))),
		},
		{
			name: "Restricted",
			n:    must(ir.NewRestricted(vi, ir.Minus)),
			ops:  []ir.Node{must(ir.NewIndexed(v, ir.MultiIndexOf(j)))},
			want: must(ir.NewRestricted(must(ir.NewIndexed(v, ir.MultiIndexOf(j))), ir.Minus)),
		},
		{
			name: "MathFunction",
			n:    must(ir.NewMathFunction(ir.Erf, s)),
			ops:  []ir.Node{sum},
			want: must(ir.NewMathFunction(ir.Erf, sum)),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ir.Rebuild(test.n, test.ops)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if !ir.Equal(got, test.want) {
				t.Errorf("got %s but want %s", got.Repr(), test.want.Repr())
			}
		})
	}
}

func TestRebuildUnchanged(t *testing.T) {
	s := symbol(t, "s")
	sum := must(ir.NewSum(s, s))
	got, err := ir.Rebuild(sum, []ir.Node{s, s})
	if err != nil {
		t.Fatal(err)
	}
	if got != ir.Node(sum) {
		t.Errorf("rebuilding with the same operands created a new node")
	}
}

func TestRebuildErrors(t *testing.T) {
	s := symbol(t, "s")
	v := symbol(t, "v", 3)
	sum := must(ir.NewSum(s, s))
	tests := []struct {
		name string
		n    ir.Node
		ops  []ir.Node
		want fmterr.Kind
	}{
		{
			name: "Terminal",
			n:    s,
			ops:  []ir.Node{v},
			want: fmterr.Internal,
		},
		{
			name: "OperandCount",
			n:    sum,
			ops:  []ir.Node{s, s, s},
			want: fmterr.Internal,
		},
		{
			name: "NotAnExpression",
			n:    sum,
			ops:  []ir.Node{s, ir.MultiIndexOf()},
			want: fmterr.Internal,
		},
		{
			name: "NotAVariable",
			n:    must(ir.NewVariableDerivative(s, ir.NewVariable(s, ir.NewLabel("x")))),
			ops:  []ir.Node{v, s},
			want: fmterr.Internal,
		},
		{
			name: "InvalidShape",
			n:    sum,
			ops:  []ir.Node{s, v},
			want: fmterr.Shape,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ir.Rebuild(test.n, test.ops)
			if err == nil {
				t.Fatalf("expected an error but got %s", got.Repr())
			}
			if kind := fmterr.KindOf(err); kind != test.want {
				t.Errorf("got %v but want %v: %v", kind, test.want, err)
			}
		})
	}
}
