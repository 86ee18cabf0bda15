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

// Package ir is the tensor expression tree.
//
// The tree is built by the builder package [github.com/gx-org/tensorform/build/builder]
// from arithmetic calls. Every node is immutable: its shape and its free indices
// are computed and validated once by its constructor.
package ir

import (
	"slices"
	"strings"
	"sync"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

// ----------------------------------------------------------------------------
// Types of node in the tree.
type (
	// Node in the tree.
	Node interface {
		// node marks a structure as a node structure.
		// It prevents external implementations of the interface.
		node()

		// Kind of the node.
		Kind() irkind.Kind

		// Operands of the node. Empty for terminals.
		Operands() []Node

		// Repr returns the canonical form of the node.
		// Two nodes are equal if and only if their canonical forms are equal.
		Repr() string

		// String returns a human-oriented representation.
		// Different nodes may have the same string representation.
		String() string
	}

	// Expr is a node with a tensor value.
	Expr interface {
		Node

		// Shape returns the dimensions of the tensor.
		// The returned slice must not be modified.
		Shape() []int

		// FreeIndices returns the free indices of the expression sorted by identity.
		// The returned slice must not be modified.
		FreeIndices() []FreeIndex
	}

	// FreeIndex is a free index of an expression together with
	// the dimension of the axis it ranges over.
	FreeIndex struct {
		Index Index
		Dim   int
	}
)

// exprBase stores the derived attributes shared by all expressions.
type exprBase struct {
	shape []int
	free  []FreeIndex

	reprOnce sync.Once
	repr     string
}

// Shape of the expression.
func (e *exprBase) Shape() []int { return e.shape }

// FreeIndices of the expression.
func (e *exprBase) FreeIndices() []FreeIndex { return e.free }

// cachedRepr computes the canonical form once.
// Shared subtrees are then never printed twice.
func (e *exprBase) cachedRepr(f func() string) string {
	e.reprOnce.Do(func() {
		e.repr = f()
	})
	return e.repr
}

// Rank returns the number of axes of an expression.
func Rank(e Expr) int {
	return len(e.Shape())
}

// IsScalar returns true if the expression has a rank of 0.
// A scalar may still have free indices.
func IsScalar(e Expr) bool {
	return Rank(e) == 0
}

// IsTrueScalar returns true if the expression has a rank of 0
// and no free indices.
func IsTrueScalar(e Expr) bool {
	return IsScalar(e) && len(e.FreeIndices()) == 0
}

// Size returns the number of components of an expression.
func Size(e Expr) int {
	size := 1
	for _, dim := range e.Shape() {
		size *= dim
	}
	return size
}

// BackendShape returns the shape of an expression as understood by a backend
// generating code from the tree. Free indices are not part of the shape:
// a code generator loops over them.
func BackendShape(e Expr) *shape.Shape {
	return &shape.Shape{
		DType:       dtype.Float64,
		AxisLengths: slices.Clone(e.Shape()),
	}
}

// ----------------------------------------------------------------------------
// Canonical form helpers.

func reprCall(name string, nodes ...Node) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, node := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(node.Repr())
	}
	b.WriteByte(')')
	return b.String()
}

func reprTuple[T any](vals []T, f func(T) string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, val := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f(val))
	}
	if len(vals) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

func toNodes[T Node](vals []T) []Node {
	nodes := make([]Node, len(vals))
	for i, val := range vals {
		nodes[i] = val
	}
	return nodes
}

func joinStrings(nodes []Node, sep string) string {
	ss := make([]string, len(nodes))
	for i, node := range nodes {
		ss[i] = node.String()
	}
	return strings.Join(ss, sep)
}
