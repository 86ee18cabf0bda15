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

package irwalk_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorform/build/builder"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irhelper"
	"github.com/gx-org/tensorform/build/ir/irwalk"
)

var (
	v = irhelper.Symbol("v", 3)
	A = irhelper.Symbol("A", 3, 3)
)

func ids(ii []ir.Index) []uint64 {
	var got []uint64
	for _, idx := range ii {
		got = append(got, idx.ID())
	}
	return got
}

func matVec(offset int) ir.Expr {
	b := builder.New(builder.WithCounter(ir.NewCounter()))
	b.Indices(offset)
	return irhelper.Must(b.Mul(A, v))
}

func TestIndices(t *testing.T) {
	x := matVec(5)
	// A[i,k]*v[k] with i minted before k.
	if diff := cmp.Diff([]uint64{6, 7}, ids(irwalk.Indices(x))); diff != "" {
		t.Errorf("unexpected indices (-want +got):\n%s", diff)
	}
}

func TestRenumberIndices(t *testing.T) {
	x, y := matVec(0), matVec(10)
	if ir.Equal(x, y) {
		t.Fatalf("%s and %s should differ before renumbering", x.Repr(), y.Repr())
	}
	xr, err := irwalk.RenumberIndices(x)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	yr, err := irwalk.RenumberIndices(y)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !ir.Equal(xr, yr) {
		t.Errorf("renumbered trees differ:\n%s\n%s", xr.Repr(), yr.Repr())
	}
	if diff := cmp.Diff([]uint64{1, 2}, ids(irwalk.Indices(yr))); diff != "" {
		t.Errorf("unexpected renumbered indices (-want +got):\n%s", diff)
	}
}

func TestRenumberZero(t *testing.T) {
	c := ir.NewCounter()
	c.Indices(3)
	i := c.Index()
	z := irhelper.Must(ir.NewZero([]int{2}, []ir.FreeIndex{{Index: i, Dim: 3}}))
	got, err := irwalk.RenumberIndices(z)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := irhelper.Must(ir.NewZero([]int{2}, []ir.FreeIndex{{Index: ir.IndexWithID(1), Dim: 3}}))
	if !ir.Equal(got, want) {
		t.Errorf("got %s but want %s", got.Repr(), want.Repr())
	}
}

// frobenius returns A[i,j]*A[i,j], minting j before i if jFirst is set.
func frobenius(jFirst bool) ir.Expr {
	b := builder.New(builder.WithCounter(ir.NewCounter()))
	var i, j ir.Index
	if jFirst {
		j, i = b.NewIndex(), b.NewIndex()
	} else {
		i, j = b.NewIndex(), b.NewIndex()
	}
	aij := irhelper.Must(b.Index(A, i, j))
	return irhelper.Must(b.Mul(aij, aij))
}

func TestCanonical(t *testing.T) {
	x, y := frobenius(false), frobenius(true)
	xr := irhelper.Must(irwalk.RenumberIndices(x))
	yr := irhelper.Must(irwalk.RenumberIndices(y))
	// Sums are nested in the order the indices were minted.
	if ir.Equal(xr, yr) {
		t.Errorf("renumbered trees should differ by the order of their sums: %s", xr.Repr())
	}
	xc := irhelper.Must(irwalk.Canonical(x))
	yc := irhelper.Must(irwalk.Canonical(y))
	if !ir.Equal(xc, yc) {
		t.Errorf("canonical forms differ:\n%s\n%s", xc.Repr(), yc.Repr())
	}
	outer, ok := yc.(*ir.IndexSum)
	if !ok {
		t.Fatalf("canonical form %s is not an index sum", yc.Repr())
	}
	inner, ok := outer.Summand().(*ir.IndexSum)
	if !ok {
		t.Fatalf("summand %s is not an index sum", outer.Summand().Repr())
	}
	if got := []uint64{inner.Index().ID(), outer.Index().ID()}; !cmp.Equal(got, []uint64{1, 2}) {
		t.Errorf("got sums over %v but want [1 2]", got)
	}
}

func TestSortIndexSums(t *testing.T) {
	c := ir.NewCounter()
	i, j, k := c.Index(), c.Index(), c.Index()
	B := irhelper.Symbol("B", 3, 3, 3)
	bijk := irhelper.Must(ir.NewIndexed(B, ir.MultiIndexOf(i, j, k)))
	nested := ir.Expr(bijk)
	for _, idx := range []ir.Index{k, i, j} {
		nested = irhelper.Must(ir.NewIndexSum(nested, idx))
	}
	want := ir.Expr(bijk)
	for _, idx := range []ir.Index{i, j, k} {
		want = irhelper.Must(ir.NewIndexSum(want, idx))
	}
	got := irhelper.Must(irwalk.SortIndexSums(nested))
	if !ir.Equal(got, want) {
		t.Errorf("got %s but want %s", got.Repr(), want.Repr())
	}
	if same := irhelper.Must(irwalk.SortIndexSums(want)); !ir.Equal(same, want) {
		t.Errorf("sorted sums have been reordered: %s", same.Repr())
	}
}
