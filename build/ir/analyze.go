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
	"cmp"
	"slices"

	"github.com/gx-org/tensorform/base/ordered"
	"github.com/gx-org/tensorform/build/fmterr"
)

type (
	// FixedPosition is a fixed index and its position in an index sequence.
	FixedPosition struct {
		Pos   int
		Index FixedIndex
	}

	// Analysis classifies the entries of an index sequence.
	Analysis struct {
		// Fixed indices with their positions.
		Fixed []FixedPosition
		// Free indices (occurring once) in order of first occurrence.
		Free []Index
		// Repeated indices (occurring twice) in order of first occurrence.
		Repeated []Index
		// NumAxes is the number of axis markers.
		NumAxes int
	}
)

// AnalyzeIndices classifies a sequence of index entries.
// An index occurring more than twice is an index error.
func AnalyzeIndices(entries []IndexEntry) (*Analysis, error) {
	an := &Analysis{}
	counts := ordered.NewMap[Index, int]()
	for pos, entry := range entries {
		switch entryT := entry.(type) {
		case Index:
			counts.Update(entryT, func(n int) int { return n + 1 })
		case FixedIndex:
			an.Fixed = append(an.Fixed, FixedPosition{Pos: pos, Index: entryT})
		case AxisIndex:
			an.NumAxes++
		default:
			return nil, fmterr.Indexf("index type %T not supported", entry)
		}
	}
	for idx, n := range counts.Iter() {
		switch n {
		case 1:
			an.Free = append(an.Free, idx)
		case 2:
			an.Repeated = append(an.Repeated, idx)
		default:
			return nil, fmterr.Indexf("too many index repetitions: %s occurs %d times", idx, n)
		}
	}
	if got := len(an.Fixed) + len(an.Free) + 2*len(an.Repeated) + an.NumAxes; got != len(entries) {
		return nil, fmterr.Internalf("index analysis accounts for %d entries but the sequence has %d entries", got, len(entries))
	}
	return an, nil
}

// FreeEntries returns the free indices of an expression as index entries.
func FreeEntries(e Expr) []IndexEntry {
	free := e.FreeIndices()
	entries := make([]IndexEntry, len(free))
	for i, fi := range free {
		entries[i] = fi.Index
	}
	return entries
}

// ----------------------------------------------------------------------------
// Free index sets.

func sortFree(free []FreeIndex) []FreeIndex {
	slices.SortFunc(free, func(a, b FreeIndex) int {
		return cmp.Compare(a.Index.id, b.Index.id)
	})
	return free
}

func sortIndices(ii []Index) []Index {
	slices.SortFunc(ii, func(a, b Index) int {
		return cmp.Compare(a.id, b.id)
	})
	return ii
}

// MergeFree computes the union of free index sets sorted by identity.
// An index occurring in two sets is kept once in the union and is also
// returned as repeated (sorted by identity): the caller sums over it.
// The dimensions of a repeated index must agree.
func MergeFree(sets ...[]FreeIndex) (union []FreeIndex, repeated []Index, err error) {
	dims := ordered.NewMap[Index, int]()
	var entries []IndexEntry
	for _, set := range sets {
		for _, fi := range set {
			dim, found := dims.Load(fi.Index)
			if found && dim != fi.Dim {
				return nil, nil, fmterr.Indexf("index %s ranges over dimensions %d and %d", fi.Index, dim, fi.Dim)
			}
			dims.Store(fi.Index, fi.Dim)
			entries = append(entries, fi.Index)
		}
	}
	an, err := AnalyzeIndices(entries)
	if err != nil {
		return nil, nil, err
	}
	for idx, dim := range dims.Iter() {
		union = append(union, FreeIndex{Index: idx, Dim: dim})
	}
	return sortFree(union), sortIndices(an.Repeated), nil
}

// disjointFree computes the union of free index sets which must not overlap.
func disjointFree(op string, sets ...[]FreeIndex) ([]FreeIndex, error) {
	union, repeated, err := MergeFree(sets...)
	if err != nil {
		return nil, err
	}
	if len(repeated) > 0 {
		return nil, fmterr.Indexf("%s: operands cannot share free index %s", op, repeated[0])
	}
	return union, nil
}

// RemoveFree returns the free indices of a set without the indices in ii
// and the dimensions of the removed indices.
// It returns an error if an index of ii is not in the set.
func RemoveFree(free []FreeIndex, ii []Index) ([]FreeIndex, []int, error) {
	dims := make([]int, len(ii))
	kept := slices.Clone(free)
	for i, idx := range ii {
		pos := slices.IndexFunc(kept, func(fi FreeIndex) bool { return fi.Index == idx })
		if pos < 0 {
			return nil, nil, fmterr.Indexf("index %s is not a free index", idx)
		}
		dims[i] = kept[pos].Dim
		kept = slices.Delete(kept, pos, pos+1)
	}
	return kept, dims, nil
}

// EqualFree returns true if two expressions have the same set of free indices.
func EqualFree(a, b Expr) bool {
	return slices.Equal(a.FreeIndices(), b.FreeIndices())
}

// LookupFree returns the dimension of a free index of an expression.
func LookupFree(e Expr, idx Index) (int, bool) {
	for _, fi := range e.FreeIndices() {
		if fi.Index == idx {
			return fi.Dim, true
		}
	}
	return 0, false
}
