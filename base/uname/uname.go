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

// Package uname provides unique names.
package uname

import "fmt"

// Unique generates unique names.
type Unique struct {
	names map[string]int
}

// New name generator.
func New() *Unique {
	return &Unique{names: make(map[string]int)}
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	nextIndex, ok := n.names[root]
	if !ok {
		n.names[root] = 1
		return root
	}
	name := fmt.Sprintf("%s%d", root, nextIndex)
	n.names[root] = nextIndex + 1
	return name
}

// Sequence generates names by cycling over a list of roots.
// For the roots i, j, the names are i, j, i1, j1, i2, ...
type Sequence struct {
	unique *Unique
	roots  []string
	next   int
}

// Sequence returns a sequence of names sharing the names already
// generated by n.
func (n *Unique) Sequence(roots ...string) *Sequence {
	return &Sequence{unique: n, roots: roots}
}

// Next returns the next name of the sequence.
func (s *Sequence) Next() string {
	root := s.roots[s.next%len(s.roots)]
	s.next++
	return s.unique.Name(root)
}
