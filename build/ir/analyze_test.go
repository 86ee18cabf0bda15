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
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
)

var indexComparers = cmp.Options{
	cmp.Comparer(func(x, y ir.Index) bool { return x == y }),
	cmp.Comparer(func(x, y ir.FixedIndex) bool { return x == y }),
}

func TestAnalyzeIndices(t *testing.T) {
	c := ir.NewCounter()
	i, j, k := c.Index(), c.Index(), c.Index()
	tests := []struct {
		entries []ir.IndexEntry
		want    *ir.Analysis
	}{
		{
			entries: nil,
			want:    &ir.Analysis{},
		},
		{
			entries: []ir.IndexEntry{ir.Fixed(0), ir.Fixed(1)},
			want: &ir.Analysis{
				Fixed: []ir.FixedPosition{
					{Pos: 0, Index: ir.Fixed(0)},
					{Pos: 1, Index: ir.Fixed(1)},
				},
			},
		},
		{
			entries: []ir.IndexEntry{i, ir.Fixed(2), j, i, ir.Axis},
			want: &ir.Analysis{
				Fixed:    []ir.FixedPosition{{Pos: 1, Index: ir.Fixed(2)}},
				Free:     []ir.Index{j},
				Repeated: []ir.Index{i},
				NumAxes:  1,
			},
		},
		{
			entries: []ir.IndexEntry{k, j, i, j, k},
			want: &ir.Analysis{
				Free:     []ir.Index{i},
				Repeated: []ir.Index{k, j},
			},
		},
		{
			entries: []ir.IndexEntry{ir.Axis, ir.Axis, ir.Axis},
			want:    &ir.Analysis{NumAxes: 3},
		},
	}
	for ti, test := range tests {
		got, err := ir.AnalyzeIndices(test.entries)
		if err != nil {
			t.Errorf("test %d: %+v", ti, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, indexComparers); diff != "" {
			t.Errorf("test %d: unexpected analysis (-want +got):\n%s", ti, diff)
		}
		if n := len(got.Fixed) + len(got.Free) + 2*len(got.Repeated) + got.NumAxes; n != len(test.entries) {
			t.Errorf("test %d: analysis accounts for %d entries but got %d entries", ti, n, len(test.entries))
		}
	}
}

func TestAnalyzeIndicesErrors(t *testing.T) {
	c := ir.NewCounter()
	i, j := c.Index(), c.Index()
	tests := [][]ir.IndexEntry{
		{i, i, i},
		{i, j, i, ir.Fixed(0), i},
		{i, nil},
	}
	for ti, entries := range tests {
		_, err := ir.AnalyzeIndices(entries)
		if err == nil {
			t.Errorf("test %d: expected an error but got nil", ti)
			continue
		}
		if !fmterr.Is(err, fmterr.Index) {
			t.Errorf("test %d: got error kind %v but want %v", ti, fmterr.KindOf(err), fmterr.Index)
		}
	}
}

func TestCounter(t *testing.T) {
	c := ir.NewCounter()
	if got := c.Index().ID(); got != 1 {
		t.Errorf("first index has ID %d but want 1", got)
	}
	const numRoutines, numIndices = 8, 100
	var mut sync.Mutex
	seen := make(map[ir.Index]bool)
	var wg sync.WaitGroup
	for range numRoutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ii := c.Indices(numIndices)
			mut.Lock()
			defer mut.Unlock()
			for _, idx := range ii {
				seen[idx] = true
			}
		}()
	}
	wg.Wait()
	if len(seen) != numRoutines*numIndices {
		t.Errorf("got %d unique indices but want %d", len(seen), numRoutines*numIndices)
	}
}
