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

// Package exprdeps extracts the terminal dependencies of expressions.
package exprdeps

import (
	"cmp"
	"slices"
	"sort"

	"github.com/gx-org/tensorform/base/iter"
	"github.com/gx-org/tensorform/base/ordered"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irwalk"
	"golang.org/x/exp/maps"
)

// Terminals returns the terminals of an expression in order of
// first appearance. Structurally equal terminals are only returned once.
func Terminals(root ir.Node) []ir.Node {
	return slices.Collect(iter.Unique(irwalk.Terminals(root), ir.Key))
}

func collect[T ir.Node](roots []ir.Node) *ordered.Map[string, T] {
	done := ordered.NewMap[string, T]()
	for _, root := range roots {
		for n := range irwalk.Terminals(root) {
			if nT, ok := n.(T); ok {
				done.Store(ir.Key(nT), nT)
			}
		}
	}
	return done
}

// Arguments returns the unique arguments of expressions sorted by number.
func Arguments(roots ...ir.Node) []*ir.Argument {
	args := slices.Collect(collect[*ir.Argument](roots).Values())
	slices.SortStableFunc(args, func(a, b *ir.Argument) int {
		return cmp.Compare(a.Number(), b.Number())
	})
	return args
}

// Coefficients returns the unique coefficients of expressions sorted by count.
func Coefficients(roots ...ir.Node) []*ir.Coefficient {
	coeffs := slices.Collect(collect[*ir.Coefficient](roots).Values())
	slices.SortStableFunc(coeffs, func(a, b *ir.Coefficient) int {
		return cmp.Compare(a.Count(), b.Count())
	})
	return coeffs
}

// ArgumentNumbers returns the sorted numbers of the arguments of an expression.
// The length of the result is the arity of the expression.
func ArgumentNumbers(roots ...ir.Node) []int {
	numbers := make(map[int]bool)
	for _, arg := range Arguments(roots...) {
		numbers[arg.Number()] = true
	}
	keys := maps.Keys(numbers)
	sort.Ints(keys)
	return keys
}

// Symbols returns the names of the symbols of expressions in alphabetical order.
func Symbols(roots ...ir.Node) []string {
	names := make(map[string]bool)
	for sym := range collect[*ir.Symbol](roots).Values() {
		names[sym.Name()] = true
	}
	keys := maps.Keys(names)
	sort.Strings(keys)
	return keys
}
