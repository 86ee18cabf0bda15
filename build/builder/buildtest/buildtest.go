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

// Package buildtest runs expression building tests.
package buildtest

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorform/build/builder"
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
)

// Expr builds an expression and compares the result with the expected result.
type Expr struct {
	// Name of the test.
	Name string
	// Build the expression from a builder with a new counter.
	// The first index minted by the builder has an identity of 1.
	Build func(*builder.Builder) (ir.Expr, error)
	// Opts are options passed to the builder.
	Opts []builder.Option

	// Want is the expected canonical form. Not checked if empty.
	Want string
	// WantShape is the expected shape.
	WantShape []int
	// WantFree is the expected free indices.
	WantFree []ir.FreeIndex

	// Err is the expected kind of error.
	// Err is ignored if ErrAny is set.
	Err fmterr.Kind
	// ErrAny is set if the build is expected to fail.
	ErrAny bool
}

// NewBuilder returns a builder with a new counter.
func NewBuilder(opts ...builder.Option) *builder.Builder {
	return builder.New(append([]builder.Option{builder.WithCounter(ir.NewCounter())}, opts...)...)
}

func (tt Expr) expectError() bool {
	return tt.ErrAny || tt.Err != fmterr.Unknown
}

func (tt Expr) run(t *testing.T) {
	got, err := tt.Build(NewBuilder(tt.Opts...))
	if tt.expectError() {
		if err == nil {
			t.Errorf("expected an error but got %s", got.Repr())
			return
		}
		if tt.ErrAny {
			return
		}
		if kind := fmterr.KindOf(err); kind != tt.Err {
			t.Errorf("got error kind %v but want %v: %v", kind, tt.Err, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if tt.Want != "" && got.Repr() != tt.Want {
		t.Errorf("incorrect canonical form:\ngot:  %s\nwant: %s", got.Repr(), tt.Want)
	}
	if diff := cmp.Diff(tt.WantShape, got.Shape()); diff != "" {
		t.Errorf("unexpected shape (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tt.WantFree, got.FreeIndices(), cmp.Comparer(func(a, b ir.Index) bool {
		return a == b
	})); diff != "" {
		t.Errorf("unexpected free indices (-want +got):\n%s", diff)
	}
}

// Run all the tests.
func Run(t *testing.T, tests ...Expr) {
	for i, test := range tests {
		name := test.Name
		if name == "" {
			name = fmt.Sprintf("Test%d", i)
		}
		t.Run(name, test.run)
	}
}

// Index returns an index given its identity.
func Index(id uint64) ir.Index {
	return ir.IndexWithID(id)
}

// Free returns free indices given their identities and their dimension.
func Free(dim int, ids ...uint64) []ir.FreeIndex {
	free := make([]ir.FreeIndex, len(ids))
	for i, id := range ids {
		free[i] = ir.FreeIndex{Index: Index(id), Dim: dim}
	}
	return free
}
