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

// Package irwalk traverses and transforms expression trees.
//
// Trees are usually directed acyclic graphs: the same node can be
// the operand of several other nodes. Traversals do not recurse
// so that deep trees do not exhaust the stack.
package irwalk

import (
	"iter"

	tfiter "github.com/gx-org/tensorform/base/iter"
	"github.com/gx-org/tensorform/build/ir"
)

// PreOrder iterates over the nodes of a tree, a node before its operands.
// Shared nodes are visited every time they are reached.
func PreOrder(root ir.Node) iter.Seq[ir.Node] {
	return preOrder(root, false)
}

// UniquePreOrder iterates over the nodes of a tree, a node before its operands.
// Shared nodes are only visited once.
func UniquePreOrder(root ir.Node) iter.Seq[ir.Node] {
	return preOrder(root, true)
}

func preOrder(root ir.Node, unique bool) iter.Seq[ir.Node] {
	return func(yield func(ir.Node) bool) {
		visited := make(map[ir.Node]bool)
		stack := []ir.Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if unique {
				if visited[n] {
					continue
				}
				visited[n] = true
			}
			if !yield(n) {
				return
			}
			ops := n.Operands()
			for i := len(ops) - 1; i >= 0; i-- {
				stack = append(stack, ops[i])
			}
		}
	}
}

// PostOrder iterates over the nodes of a tree, the operands of a node before the node.
// Shared nodes are visited every time they are reached.
func PostOrder(root ir.Node) iter.Seq[ir.Node] {
	return postOrder(root, false)
}

// UniquePostOrder iterates over the nodes of a tree, the operands of a node
// before the node. Shared nodes are only visited once.
func UniquePostOrder(root ir.Node) iter.Seq[ir.Node] {
	return postOrder(root, true)
}

type frame struct {
	node ir.Node
	next int
}

func postOrder(root ir.Node, unique bool) iter.Seq[ir.Node] {
	return func(yield func(ir.Node) bool) {
		visited := make(map[ir.Node]bool)
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			ops := top.node.Operands()
			if top.next < len(ops) {
				op := ops[top.next]
				top.next++
				if unique && visited[op] {
					continue
				}
				stack = append(stack, frame{node: op})
				continue
			}
			n := top.node
			stack = stack[:len(stack)-1]
			if unique {
				if visited[n] {
					continue
				}
				visited[n] = true
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Terminals iterates over the unique terminals of a tree in pre-order.
func Terminals(root ir.Node) iter.Seq[ir.Node] {
	return tfiter.Filter(UniquePreOrder(root), func(n ir.Node) bool {
		return n.Kind().IsTerminal()
	})
}

// Contains returns true if the tree contains a node structurally equal to sub.
func Contains(root, sub ir.Node) bool {
	hash := ir.Hash(sub)
	for n := range UniquePreOrder(root) {
		if n.Kind() != sub.Kind() || ir.Hash(n) != hash {
			continue
		}
		if ir.Equal(n, sub) {
			return true
		}
	}
	return false
}

// Count returns the number of unique nodes in a tree.
func Count(root ir.Node) int {
	n := 0
	for range UniquePostOrder(root) {
		n++
	}
	return n
}

// Depth returns the length of the longest path from the root to a terminal.
func Depth(root ir.Node) int {
	depths := make(map[ir.Node]int)
	for n := range UniquePostOrder(root) {
		depth := 0
		for _, op := range n.Operands() {
			depth = max(depth, depths[op]+1)
		}
		depths[n] = depth
	}
	return depths[root]
}

// Func is applied to every node by MapDAG.
// ops are the results of the function applied to the operands of n.
type Func func(n ir.Node, ops []ir.Node) (ir.Node, error)

// MapDAG applies a function to every unique node of a tree, operands first,
// and returns the result for the root.
// Results structurally equal to a previous result are replaced by
// that previous result such that the output does not contain duplicated
// subtrees.
func MapDAG(root ir.Node, f Func) (ir.Node, error) {
	results := make(map[ir.Node]ir.Node)
	compressed := make(map[string]ir.Node)
	for n := range UniquePostOrder(root) {
		ops := make([]ir.Node, len(n.Operands()))
		for i, op := range n.Operands() {
			ops[i] = results[op]
		}
		r, err := f(n, ops)
		if err != nil {
			return nil, err
		}
		key := ir.Key(r)
		if prev, ok := compressed[key]; ok {
			r = prev
		} else {
			compressed[key] = r
		}
		results[n] = r
	}
	return results[root], nil
}

// Rebuild is a MapDAG function rebuilding every node with its mapped operands.
// Use it as the default case of a transformation.
func Rebuild(n ir.Node, ops []ir.Node) (ir.Node, error) {
	return ir.Rebuild(n, ops)
}
