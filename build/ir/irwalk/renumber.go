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

package irwalk

import (
	"cmp"
	"slices"

	"github.com/gx-org/tensorform/base/ordered"
	"github.com/gx-org/tensorform/build/ir"
)

// Indices returns the indices of a tree in order of first appearance
// in a pre-order traversal.
func Indices(root ir.Node) []ir.Index {
	seen := ordered.NewMap[ir.Index, bool]()
	for n := range UniquePreOrder(root) {
		switch nT := n.(type) {
		case *ir.MultiIndex:
			for _, idx := range nT.Indices() {
				seen.Store(idx, true)
			}
		case *ir.Zero:
			for _, fi := range nT.FreeIndices() {
				seen.Store(fi.Index, true)
			}
		}
	}
	var ii []ir.Index
	for idx := range seen.Keys() {
		ii = append(ii, idx)
	}
	return ii
}

// RenumberIndices returns a tree structurally identical to root
// in which the indices are numbered from 1 in order of first appearance.
// Two trees built the same way with different counters have the same
// canonical form once renumbered.
func RenumberIndices(root ir.Node) (ir.Node, error) {
	renum := make(map[ir.Index]ir.Index)
	for i, idx := range Indices(root) {
		renum[idx] = ir.IndexWithID(uint64(i + 1))
	}
	return MapDAG(root, func(n ir.Node, ops []ir.Node) (ir.Node, error) {
		switch nT := n.(type) {
		case *ir.MultiIndex:
			entries := make([]ir.IndexEntry, nT.Len())
			for i, entry := range nT.Entries() {
				entries[i] = entry
				if idx, ok := entry.(ir.Index); ok {
					entries[i] = renum[idx]
				}
			}
			return ir.NewMultiIndex(entries...), nil
		case *ir.Zero:
			free := make([]ir.FreeIndex, len(nT.FreeIndices()))
			for i, fi := range nT.FreeIndices() {
				free[i] = ir.FreeIndex{Index: renum[fi.Index], Dim: fi.Dim}
			}
			return ir.NewZero(nT.Shape(), free)
		}
		return ir.Rebuild(n, ops)
	})
}

// SortIndexSums returns a tree in which every chain of directly nested
// index sums sums over its indices in ascending identity order,
// the innermost sum being over the smallest index.
func SortIndexSums(root ir.Node) (ir.Node, error) {
	return MapDAG(root, func(n ir.Node, ops []ir.Node) (ir.Node, error) {
		sum, ok := n.(*ir.IndexSum)
		if !ok {
			return ir.Rebuild(n, ops)
		}
		ii := []ir.Index{sum.Index()}
		body, ok := ops[0].(ir.Expr)
		if !ok {
			return ir.Rebuild(n, ops)
		}
		for {
			inner, ok := body.(*ir.IndexSum)
			if !ok {
				break
			}
			ii = append(ii, inner.Index())
			body = inner.Summand()
		}
		slices.SortFunc(ii, func(a, b ir.Index) int {
			return cmp.Compare(a.ID(), b.ID())
		})
		for _, idx := range ii {
			var err error
			if body, err = ir.NewIndexSum(body, idx); err != nil {
				return nil, err
			}
		}
		return body, nil
	})
}

// Canonical returns the canonical form of a tree: indices are renumbered
// by RenumberIndices and the nested index sums sorted by SortIndexSums.
// Two trees differing only by the identity of their indices or by the
// order in which nested sums are applied have the same canonical form.
func Canonical(root ir.Node) (ir.Node, error) {
	renum, err := RenumberIndices(root)
	if err != nil {
		return nil, err
	}
	sorted, err := SortIndexSums(renum)
	if err != nil {
		return nil, err
	}
	return RenumberIndices(sorted)
}
