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

package irstring

import (
	"fmt"
	"slices"
	"strings"

	tfmt "github.com/gx-org/tensorform/base/fmt"
	"github.com/gx-org/tensorform/base/stringseq"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irwalk"
)

type tree struct {
	*printer
	parents map[ir.Node]int
	ids     map[ir.Node]int
}

// Tree returns an indented dump of an expression, one node per line.
// An operator with several parents is marked #n the first time it is
// printed and only referred to as #n afterwards.
func Tree(root ir.Node) string {
	t := &tree{
		printer: newPrinter(root),
		parents: make(map[ir.Node]int),
		ids:     make(map[ir.Node]int),
	}
	for n := range irwalk.UniquePreOrder(root) {
		for _, op := range n.Operands() {
			t.parents[op]++
		}
	}
	return strings.TrimSuffix(t.dump(root), "\n")
}

func (t *tree) dump(n ir.Node) string {
	if id, ok := t.ids[n]; ok {
		return fmt.Sprintf("#%d\n", id)
	}
	line := t.describe(n)
	if t.parents[n] > 1 && !n.Kind().IsTerminal() {
		id := len(t.ids) + 1
		t.ids[n] = id
		line = fmt.Sprintf("#%d %s", id, line)
	}
	var b strings.Builder
	b.WriteString(line)
	b.WriteByte('\n')
	for _, op := range n.Operands() {
		b.WriteString(tfmt.Indent(t.dump(op)))
	}
	return b.String()
}

func (t *tree) describe(n ir.Node) string {
	switch nT := n.(type) {
	case *ir.MultiIndex:
		return "MultiIndex " + t.multiIndex(nT)
	case *ir.MathFunction:
		return t.attributes(nT, "MathFunction "+string(nT.Name()))
	case ir.Expr:
		if n.Kind().IsTerminal() {
			return n.Repr()
		}
		return t.attributes(nT, n.Kind().String())
	}
	return n.Repr()
}

func (t *tree) attributes(e ir.Expr, s string) string {
	if len(e.Shape()) > 0 {
		s += fmt.Sprintf(" shape=%v", e.Shape())
	}
	if len(e.FreeIndices()) > 0 {
		s += " free=" + stringseq.JoinFunc(slices.Values(e.FreeIndices()), func(fi ir.FreeIndex) string {
			return t.entry(fi.Index)
		}, ",")
	}
	return s
}
