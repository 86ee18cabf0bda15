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
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irhelper"
	"github.com/gx-org/tensorform/build/ir/irwalk"
	"github.com/pkg/errors"
)

var (
	s = irhelper.Symbol("s")
	u = irhelper.Symbol("u")
	w = irhelper.Symbol("w")

	// (s + u) * (s + u) with the sum shared by both operands.
	shared = irhelper.Must(ir.NewSum(s, u))
	square = irhelper.Must(ir.NewProduct(shared, shared))
)

func names(seq iter.Seq[ir.Node]) []string {
	var ss []string
	for n := range seq {
		if n.Kind().IsTerminal() {
			ss = append(ss, n.String())
		} else {
			ss = append(ss, n.Kind().String())
		}
	}
	return ss
}

func TestOrders(t *testing.T) {
	tests := []struct {
		name string
		seq  iter.Seq[ir.Node]
		want []string
	}{
		{
			name: "PreOrder",
			seq:  irwalk.PreOrder(square),
			want: []string{"Product", "Sum", "s", "u", "Sum", "s", "u"},
		},
		{
			name: "UniquePreOrder",
			seq:  irwalk.UniquePreOrder(square),
			want: []string{"Product", "Sum", "s", "u"},
		},
		{
			name: "PostOrder",
			seq:  irwalk.PostOrder(square),
			want: []string{"s", "u", "Sum", "s", "u", "Sum", "Product"},
		},
		{
			name: "UniquePostOrder",
			seq:  irwalk.UniquePostOrder(square),
			want: []string{"s", "u", "Sum", "Product"},
		},
		{
			name: "Terminals",
			seq:  irwalk.Terminals(square),
			want: []string{"s", "u"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, names(test.seq)); diff != "" {
				t.Errorf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBreak(t *testing.T) {
	for _, seq := range []iter.Seq[ir.Node]{
		irwalk.PreOrder(square),
		irwalk.PostOrder(square),
	} {
		n := 0
		for range seq {
			n++
			if n == 2 {
				break
			}
		}
		if n != 2 {
			t.Errorf("got %d iterations but want 2", n)
		}
	}
}

func TestQueries(t *testing.T) {
	if !irwalk.Contains(square, irhelper.Must(ir.NewSum(s, u))) {
		t.Errorf("%s does not contain s + u", square)
	}
	if irwalk.Contains(square, irhelper.Must(ir.NewSum(u, s))) {
		t.Errorf("%s contains u + s", square)
	}
	if !irwalk.Contains(square, square) {
		t.Errorf("%s does not contain itself", square)
	}
	if got := irwalk.Count(square); got != 4 {
		t.Errorf("got count %d but want 4", got)
	}
	if got := irwalk.Depth(square); got != 2 {
		t.Errorf("got depth %d but want 2", got)
	}
	if got := irwalk.Depth(s); got != 0 {
		t.Errorf("got depth %d for a terminal but want 0", got)
	}
}

func replace(from, to ir.Node) irwalk.Func {
	return func(n ir.Node, ops []ir.Node) (ir.Node, error) {
		if n == from {
			return to, nil
		}
		return irwalk.Rebuild(n, ops)
	}
}

func TestMapDAG(t *testing.T) {
	got, err := irwalk.MapDAG(square, replace(s, w))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	wu := irhelper.Must(ir.NewSum(w, u))
	want := irhelper.Must(ir.NewProduct(wu, wu))
	if !ir.Equal(got, want) {
		t.Errorf("got %s but want %s", got.Repr(), want.Repr())
	}
	unchanged, err := irwalk.MapDAG(square, replace(w, s))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if unchanged != ir.Node(square) {
		t.Errorf("mapping without changes created a new tree")
	}
}

func TestMapDAGCompression(t *testing.T) {
	// (s + u) * (w + u) becomes (w + u) * (w + u) with a single sum.
	root := irhelper.Must(ir.NewProduct(
		irhelper.Must(ir.NewSum(s, u)),
		irhelper.Must(ir.NewSum(w, u)),
	))
	got, err := irwalk.MapDAG(root, replace(s, w))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	ops := got.Operands()
	if ops[0] != ops[1] {
		t.Errorf("equal subtrees have not been merged in %s", got.Repr())
	}
	if count := irwalk.Count(got); count != 4 {
		t.Errorf("got %d unique nodes but want 4", count)
	}
}

func TestMapDAGError(t *testing.T) {
	wantErr := errors.New("no symbol u")
	_, err := irwalk.MapDAG(square, func(n ir.Node, ops []ir.Node) (ir.Node, error) {
		if n == ir.Node(u) {
			return nil, wantErr
		}
		return irwalk.Rebuild(n, ops)
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got error %v but want %v", err, wantErr)
	}
}
