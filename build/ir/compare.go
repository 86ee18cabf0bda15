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

import "github.com/cespare/xxhash/v2"

// attributed is implemented by operators carrying a value
// in addition to their operands.
type attributed interface {
	attribute() string
}

type nodePair struct {
	x, y Node
}

// Equal returns true if two trees are structurally equal:
// same kinds, same terminal values, and recursively equal operands.
// Identical subtrees are not traversed.
func Equal(a, b Node) bool {
	stack := []nodePair{{x: a, y: b}}
	for len(stack) > 0 {
		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pair.x == pair.y {
			continue
		}
		if pair.x == nil || pair.y == nil {
			return false
		}
		if pair.x.Kind() != pair.y.Kind() {
			return false
		}
		if term, ok := pair.x.(terminal); ok {
			if !term.equalTerminal(pair.y) {
				return false
			}
			continue
		}
		if xAttr, ok := pair.x.(attributed); ok {
			yAttr, ok := pair.y.(attributed)
			if !ok || xAttr.attribute() != yAttr.attribute() {
				return false
			}
		}
		xOps, yOps := pair.x.Operands(), pair.y.Operands()
		if len(xOps) != len(yOps) {
			return false
		}
		for i := len(xOps) - 1; i >= 0; i-- {
			stack = append(stack, nodePair{x: xOps[i], y: yOps[i]})
		}
	}
	return true
}

// Key returns a value identifying the structure of a tree.
// Two trees have the same key if and only if they are equal.
// Use it to index maps by expressions.
func Key(n Node) string {
	return n.Repr()
}

// Hash returns the hash of the canonical form of a tree.
// Equal trees have equal hashes.
func Hash(n Node) uint64 {
	return xxhash.Sum64String(n.Repr())
}
