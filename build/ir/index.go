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
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gx-org/tensorform/build/ir/irkind"
)

type (
	// IndexEntry is an entry of a multi-index:
	// an Index, a FixedIndex, or the Axis marker.
	IndexEntry interface {
		indexEntry()

		// Repr returns the canonical form of the entry.
		Repr() string

		// String returns a human-oriented representation.
		String() string
	}

	// Index is a free or bound index.
	// Its identity is minted by a Counter.
	Index struct {
		id uint64
	}

	// FixedIndex is an index with a concrete value.
	FixedIndex struct {
		value int
	}

	// AxisIndex marks an axis which has not been assigned an index.
	AxisIndex struct{}
)

// Axis is the unassigned axis marker.
var Axis = AxisIndex{}

var (
	_ IndexEntry = Index{}
	_ IndexEntry = FixedIndex{}
	_ IndexEntry = AxisIndex{}
)

func (Index) indexEntry() {}

// ID returns the identity of the index.
func (i Index) ID() uint64 { return i.id }

// Repr returns the canonical form of the index.
func (i Index) Repr() string { return fmt.Sprintf("Index(%d)", i.id) }

// String returns a short name for the index.
func (i Index) String() string { return "i_" + strconv.FormatUint(i.id, 10) }

// IndexWithID returns an index given its identity.
// Only use this function to renumber indices of an existing tree.
// Use a Counter to create new indices.
func IndexWithID(id uint64) Index {
	return Index{id: id}
}

// Fixed returns a fixed index.
func Fixed(value int) FixedIndex {
	return FixedIndex{value: value}
}

func (FixedIndex) indexEntry() {}

// Value of the index.
func (i FixedIndex) Value() int { return i.value }

// Repr returns the canonical form of the index.
func (i FixedIndex) Repr() string { return fmt.Sprintf("FixedIndex(%d)", i.value) }

// String returns the value of the index.
func (i FixedIndex) String() string { return strconv.Itoa(i.value) }

func (AxisIndex) indexEntry() {}

// Repr returns the canonical form of the marker.
func (AxisIndex) Repr() string { return "Axis" }

// String returns the slice notation of the marker.
func (AxisIndex) String() string { return ":" }

// ----------------------------------------------------------------------------
// Index counter.

// Counter mints index identities. It is safe to use concurrently.
// Identities are never reused by the same counter.
type Counter struct {
	last atomic.Uint64
}

var globalCounter Counter

// NewCounter returns a new counter starting from 1.
// Use a new counter in tests to get deterministic index identities.
func NewCounter() *Counter {
	return &Counter{}
}

// GlobalCounter returns the process-wide counter.
// It is never reset.
func GlobalCounter() *Counter {
	return &globalCounter
}

// Index returns a new index.
func (c *Counter) Index() Index {
	return Index{id: c.last.Add(1)}
}

// Indices returns n new indices.
func (c *Counter) Indices(n int) []Index {
	ii := make([]Index, n)
	for i := range ii {
		ii[i] = c.Index()
	}
	return ii
}

// ----------------------------------------------------------------------------
// Multi-index.

// MultiIndex is an ordered sequence of index entries.
type MultiIndex struct {
	entries []IndexEntry
}

var _ Node = (*MultiIndex)(nil)

// NewMultiIndex returns a multi-index given its entries.
func NewMultiIndex(entries ...IndexEntry) *MultiIndex {
	return &MultiIndex{entries: entries}
}

// MultiIndexOf returns a multi-index of indices.
func MultiIndexOf(ii ...Index) *MultiIndex {
	entries := make([]IndexEntry, len(ii))
	for i, idx := range ii {
		entries[i] = idx
	}
	return NewMultiIndex(entries...)
}

func (*MultiIndex) node() {}

// Kind of the node.
func (*MultiIndex) Kind() irkind.Kind { return irkind.MultiIndex }

// Operands returns nil: a multi-index is a terminal.
func (*MultiIndex) Operands() []Node { return nil }

// Len returns the number of entries.
func (m *MultiIndex) Len() int { return len(m.entries) }

// Entries of the multi-index.
// The returned slice must not be modified.
func (m *MultiIndex) Entries() []IndexEntry { return m.entries }

// At returns the entry at position i.
func (m *MultiIndex) At(i int) IndexEntry { return m.entries[i] }

// Indices returns the free or bound indices of the multi-index in order.
func (m *MultiIndex) Indices() []Index {
	var ii []Index
	for _, entry := range m.entries {
		if idx, ok := entry.(Index); ok {
			ii = append(ii, idx)
		}
	}
	return ii
}

// Repr returns the canonical form of the multi-index.
func (m *MultiIndex) Repr() string {
	return "MultiIndex(" + reprTuple(m.entries, IndexEntry.Repr) + ")"
}

// String returns the entries separated by commas.
func (m *MultiIndex) String() string {
	ss := make([]string, len(m.entries))
	for i, entry := range m.entries {
		ss[i] = entry.String()
	}
	return strings.Join(ss, ", ")
}

func (m *MultiIndex) equalTerminal(other Node) bool {
	o, ok := other.(*MultiIndex)
	if !ok || len(m.entries) != len(o.entries) {
		return false
	}
	for i, entry := range m.entries {
		if entry != o.entries[i] {
			return false
		}
	}
	return true
}
