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
	"slices"

	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
)

// Dx returns the partial derivatives of x with respect to the spatial
// coordinates ii, applied in order.
// An index repeated in the free indices of x and in ii is summed over
// once all the derivatives have been applied.
func (b *Builder) Dx(x any, ii ...any) (ir.Expr, error) {
	f, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	entries := make([]ir.IndexEntry, len(ii))
	for i, idx := range ii {
		if entries[i], err = toIndexEntry(idx); err != nil {
			return nil, err
		}
	}
	an, err := ir.AnalyzeIndices(slices.Concat(ir.FreeEntries(f), entries))
	if err != nil {
		return nil, err
	}
	d := f
	for _, idx := range entries {
		if d, err = ir.NewSpatialDerivative(d, idx, b.dim); err != nil {
			return nil, err
		}
	}
	return sumOver(d, an.Repeated)
}

// Variable labels an expression. Derivatives can then be taken
// with respect to the variable with Diff.
func (b *Builder) Variable(x any, label string) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	return ir.NewVariable(e, ir.NewLabel(label)), nil
}

// Diff returns the derivative of x with respect to a variable v
// returned by Variable.
func (b *Builder) Diff(x, v any) (ir.Expr, error) {
	f, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	ve, err := b.Expr(v)
	if err != nil {
		return nil, err
	}
	variable, ok := ve.(*ir.Variable)
	if !ok {
		return nil, fmterr.Shapef("cannot differentiate with respect to %s: not a variable", ve.String())
	}
	if ir.IsZero(f) {
		d, err := ir.NewVariableDerivative(f, variable)
		if err != nil {
			return nil, err
		}
		return ir.ZeroLike(d), nil
	}
	return wrap(ir.NewVariableDerivative(f, variable))
}

// Restrict returns the value of x on one side of an interior facet.
func (b *Builder) Restrict(x any, side ir.Side) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewRestricted(e, side))
}
