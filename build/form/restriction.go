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

package form

import (
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irwalk"
)

// unrestricted returns the unique arguments of a tree reachable from the root
// without going through a restriction, in pre-order.
func unrestricted(root ir.Node) []*ir.Argument {
	var args []*ir.Argument
	seen := make(map[string]bool)
	visited := make(map[ir.Node]bool)
	stack := []ir.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		switch nT := n.(type) {
		case *ir.Restricted:
			continue
		case *ir.Argument:
			if key := ir.Key(nT); !seen[key] {
				seen[key] = true
				args = append(args, nT)
			}
		}
		ops := n.Operands()
		for i := len(ops) - 1; i >= 0; i-- {
			stack = append(stack, ops[i])
		}
	}
	return args
}

func hasRestriction(root ir.Node) (*ir.Restricted, bool) {
	for n := range irwalk.UniquePreOrder(root) {
		if r, ok := n.(*ir.Restricted); ok {
			return r, true
		}
	}
	return nil, false
}

// checkRestrictions checks that the arguments of an interior facet integrand
// are all restricted and that other integrands have no restriction.
func checkRestrictions(errs *fmterr.Errors, in *Integral) {
	if in.measure.Domain != InteriorFacet {
		if r, ok := hasRestriction(in.integrand); ok {
			errs.Append(fmterr.Restrictionf("restriction %s outside of an interior facet integral", r.String()))
		}
		return
	}
	for _, arg := range unrestricted(in.integrand) {
		errs.Append(fmterr.Restrictionf("argument %s is not restricted to a side of the facet", arg.String()))
	}
}
