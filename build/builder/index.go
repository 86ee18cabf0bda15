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

package builder

import (
	"cmp"
	"slices"

	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
)

type (
	sliceMarker    struct{}
	ellipsisMarker struct{}
)

var (
	// Slice keeps an axis of the indexed expression, as in A[i, :].
	Slice = sliceMarker{}

	// Ellipsis stands for as many slices as required to index all
	// the axes of an expression, as in A[i, ...].
	Ellipsis = ellipsisMarker{}
)

// key is an indexing key once slices and the ellipsis have been replaced
// by new indices.
type key struct {
	// all the entries of the key, one per axis.
	entries []ir.IndexEntry
	// axes are the new indices standing for slices, in order.
	axes []ir.Index
}

func flattenKey(k []any) []any {
	var flat []any
	for _, entry := range k {
		switch entryT := entry.(type) {
		case []any:
			flat = append(flat, flattenKey(entryT)...)
		case []ir.Index:
			for _, idx := range entryT {
				flat = append(flat, idx)
			}
		case []ir.IndexEntry:
			for _, idx := range entryT {
				flat = append(flat, idx)
			}
		case *ir.MultiIndex:
			for _, idx := range entryT.Entries() {
				flat = append(flat, idx)
			}
		default:
			flat = append(flat, entry)
		}
	}
	return flat
}

func toIndexEntry(x any) (ir.IndexEntry, error) {
	switch xT := x.(type) {
	case ir.Index:
		return xT, nil
	case ir.FixedIndex:
		return xT, nil
	case int:
		return ir.Fixed(xT), nil
	case int64:
		return ir.Fixed(int(xT)), nil
	}
	return nil, fmterr.Indexf("cannot convert %v of type %T to an index", x, x)
}

// analyseKey replaces slices and the ellipsis of a key by new indices.
func (b *Builder) analyseKey(k []any, rank int) (*key, error) {
	var pre, post []ir.IndexEntry
	axisSet := make(map[ir.Index]bool)
	seenEllipsis := false
	for _, x := range flattenKey(k) {
		var entry ir.IndexEntry
		switch x.(type) {
		case ellipsisMarker:
			if seenEllipsis {
				return nil, fmterr.Indexf("found duplicate ellipsis")
			}
			seenEllipsis = true
			continue
		case sliceMarker, ir.AxisIndex:
			idx := b.counter.Index()
			axisSet[idx] = true
			entry = idx
		default:
			var err error
			if entry, err = toIndexEntry(x); err != nil {
				return nil, err
			}
		}
		if seenEllipsis {
			post = append(post, entry)
		} else {
			pre = append(pre, entry)
		}
	}
	numAxes := rank - len(pre) - len(post)
	if numAxes < 0 || (!seenEllipsis && numAxes != 0) {
		return nil, fmterr.Indexf("invalid number of indices (%d) for an expression of rank %d", len(pre)+len(post), rank)
	}
	var ellipsis []ir.IndexEntry
	if seenEllipsis {
		for _, idx := range b.counter.Indices(numAxes) {
			axisSet[idx] = true
			ellipsis = append(ellipsis, idx)
		}
	}
	res := &key{entries: slices.Concat(pre, ellipsis, post)}
	for _, entry := range res.entries {
		if idx, ok := entry.(ir.Index); ok && axisSet[idx] {
			res.axes = append(res.axes, idx)
		}
	}
	return res, nil
}

// Index returns the expression x indexed by a key.
// Entries of the key can be:
//   - an [ir.Index], free or summed over if repeated,
//   - an [ir.FixedIndex] or an int selecting a single component,
//   - [Slice] to keep an axis,
//   - [Ellipsis] to keep all the remaining axes,
//   - slices of the above or a [*ir.MultiIndex], flattened into the key.
//
// Indices repeated in the free indices of x and the key are summed over.
func (b *Builder) Index(x any, k ...any) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	kk, err := b.analyseKey(k, ir.Rank(e))
	if err != nil {
		return nil, err
	}
	return b.index(e, kk)
}

// At returns the expression x indexed by indices.
func (b *Builder) At(x any, ii ...ir.Index) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	return b.index(e, indicesKey(ii))
}

func indicesKey(ii []ir.Index) *key {
	entries := make([]ir.IndexEntry, len(ii))
	for i, idx := range ii {
		entries[i] = idx
	}
	return &key{entries: entries}
}

func (b *Builder) index(e ir.Expr, k *key) (ir.Expr, error) {
	if len(k.entries) != ir.Rank(e) {
		return nil, fmterr.Indexf("invalid number of indices (%d) for an expression of rank %d", len(k.entries), ir.Rank(e))
	}
	an, err := ir.AnalyzeIndices(slices.Concat(ir.FreeEntries(e), k.entries))
	if err != nil {
		return nil, err
	}
	// e[...] is e.
	if len(k.axes) == len(k.entries) {
		return e, nil
	}
	// ([x]_{ii})[ii] is x.
	if ct, ok := e.(*ir.ComponentTensor); ok && sameEntries(ct.Indices(), k.entries) {
		return ct.X(), nil
	}
	var res ir.Expr
	if res, err = ir.NewIndexed(e, ir.NewMultiIndex(k.entries...)); err != nil {
		return nil, err
	}
	if res, err = b.asTensor(res, k.axes); err != nil {
		return nil, err
	}
	if res, err = sumOver(res, an.Repeated); err != nil {
		return nil, err
	}
	if ir.IsZero(e) {
		return ir.ZeroLike(res), nil
	}
	return res, nil
}

func sameEntries(ii []ir.Index, entries []ir.IndexEntry) bool {
	if len(ii) != len(entries) {
		return false
	}
	for i, idx := range ii {
		if entries[i] != ir.IndexEntry(idx) {
			return false
		}
	}
	return true
}

func sortedIndices(ii []ir.Index) []ir.Index {
	return slices.SortedFunc(slices.Values(ii), func(a, b ir.Index) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}

// AsTensor returns the tensor whose axes are the free indices ii of x.
// It returns x if ii is empty.
func (b *Builder) AsTensor(x any, ii ...ir.Index) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	return b.asTensor(e, ii)
}

func (b *Builder) asTensor(e ir.Expr, ii []ir.Index) (ir.Expr, error) {
	if len(ii) == 0 {
		return e, nil
	}
	// [A[ii]]_{ii} is A.
	if ind, ok := e.(*ir.Indexed); ok && sameEntries(ii, ind.Index().Entries()) {
		return ind.X(), nil
	}
	if ir.IsZero(e) {
		ct, err := ir.NewComponentTensor(e, ii)
		if err != nil {
			return nil, err
		}
		return ir.ZeroLike(ct), nil
	}
	return wrap(ir.NewComponentTensor(e, ii))
}

// AsVector returns a rank 1 tensor given its components.
func (b *Builder) AsVector(comps ...any) (ir.Expr, error) {
	es, err := b.exprs(comps...)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewListTensor(es...))
}

// AsMatrix returns a rank 2 tensor given its rows.
func (b *Builder) AsMatrix(rows ...[]any) (ir.Expr, error) {
	vecs := make([]ir.Expr, len(rows))
	for i, row := range rows {
		var err error
		if vecs[i], err = b.AsVector(row...); err != nil {
			return nil, err
		}
	}
	return wrap(ir.NewListTensor(vecs...))
}
