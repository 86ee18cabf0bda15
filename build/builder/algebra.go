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
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
)

// Add returns x + y.
func (b *Builder) Add(x, y any) (ir.Expr, error) {
	a, c, err := b.pair(x, y)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewSum(a, c))
}

// Sub returns x - y.
func (b *Builder) Sub(x, y any) (ir.Expr, error) {
	a, c, err := b.pair(x, y)
	if err != nil {
		return nil, err
	}
	neg, err := b.neg(c)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewSum(a, neg))
}

// Neg returns -x.
func (b *Builder) Neg(x any) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	return b.neg(e)
}

func (b *Builder) neg(e ir.Expr) (ir.Expr, error) {
	return b.mul(ir.NewInt(-1), e)
}

// Mul returns x * y.
//
// The product depends on the ranks of the operands:
//   - matrix times vector or matrix contracts the last axis of x
//     with the first axis of y,
//   - a scalar times a tensor scales all the components of the tensor,
//   - two scalars are multiplied.
//
// Indices repeated in the free indices of the operands are summed over.
// A product with a zero is a zero.
func (b *Builder) Mul(x, y any) (ir.Expr, error) {
	a, c, err := b.pair(x, y)
	if err != nil {
		return nil, err
	}
	return b.mul(a, c)
}

func (b *Builder) mul(x, y ir.Expr) (ir.Expr, error) {
	free, repeated, err := ir.MergeFree(x.FreeIndices(), y.FreeIndices())
	if err != nil {
		return nil, err
	}
	single, _, err := ir.RemoveFree(free, repeated)
	if err != nil {
		return nil, err
	}
	xr, yr := ir.Rank(x), ir.Rank(y)
	switch {
	case xr == 2 && (yr == 1 || yr == 2):
		return b.contract(x, y, single, repeated)
	case xr == 0 && yr == 0:
		return b.scalarProduct(x, y, single, repeated)
	case xr == 0:
		return b.scale(x, y, single, repeated)
	case yr == 0:
		return b.scale(y, x, single, repeated)
	}
	return nil, fmterr.Shapef("invalid ranks %d and %d in product", xr, yr)
}

func anyZero(es ...ir.Expr) bool {
	for _, e := range es {
		if ir.IsZero(e) {
			return true
		}
	}
	return false
}

// contract computes the matrix product of x and y as x[ai, k]*y[k, bi].
func (b *Builder) contract(x, y ir.Expr, single []ir.FreeIndex, repeated []ir.Index) (ir.Expr, error) {
	if len(repeated) > 0 {
		return nil, fmterr.Indexf("free index %s repeated in a matrix product", repeated[0])
	}
	shape, err := ir.ProductShape(x.Shape(), y.Shape())
	if err != nil {
		return nil, err
	}
	if anyZero(x, y) {
		return wrap(ir.NewZero(shape, single))
	}
	ai := b.counter.Indices(ir.Rank(x) - 1)
	bi := b.counter.Indices(ir.Rank(y) - 1)
	k := b.counter.Index()
	xk, err := b.index(x, indicesKey(append(ai, k)))
	if err != nil {
		return nil, err
	}
	yk, err := b.index(y, indicesKey(append([]ir.Index{k}, bi...)))
	if err != nil {
		return nil, err
	}
	s, err := b.mul(xk, yk)
	if err != nil {
		return nil, err
	}
	return b.asTensor(s, append(ai, bi...))
}

// scale multiplies all the components of a tensor t by a scalar s.
func (b *Builder) scale(s, t ir.Expr, single []ir.FreeIndex, repeated []ir.Index) (ir.Expr, error) {
	if anyZero(s, t) {
		return wrap(ir.NewZero(t.Shape(), single))
	}
	ii := b.counter.Indices(ir.Rank(t))
	ti, err := b.index(t, indicesKey(ii))
	if err != nil {
		return nil, err
	}
	p, err := ir.NewProduct(s, ti)
	if err != nil {
		return nil, err
	}
	ct, err := b.asTensor(p, ii)
	if err != nil {
		return nil, err
	}
	return sumOver(ct, repeated)
}

func (b *Builder) scalarProduct(x, y ir.Expr, single []ir.FreeIndex, repeated []ir.Index) (ir.Expr, error) {
	if anyZero(x, y) {
		return wrap(ir.NewZero(nil, single))
	}
	p, err := ir.NewProduct(x, y)
	if err != nil {
		return nil, err
	}
	return sumOver(p, repeated)
}

// Div returns x / y. The divisor must be a scalar without free indices.
func (b *Builder) Div(x, y any) (ir.Expr, error) {
	a, c, err := b.pair(x, y)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewDivision(a, c))
}

// Pow returns x ** y.
func (b *Builder) Pow(x, y any) (ir.Expr, error) {
	a, c, err := b.pair(x, y)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewPower(a, c))
}

// Mod returns x % y.
func (b *Builder) Mod(x, y any) (ir.Expr, error) {
	a, c, err := b.pair(x, y)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewMod(a, c))
}

// Abs returns |x|.
func (b *Builder) Abs(x any) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	return ir.NewAbs(e), nil
}
