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

// Package builder builds tensor expression trees from arithmetic calls.
//
// The builder is the surface used to write weak forms. Each method
// validates its operands, mints the indices it needs from a counter,
// and returns an expression of the [github.com/gx-org/tensorform/build/ir]
// package:
//  1. indices of the operands are analysed to find repeated indices.
//  2. the node implementing the operation is constructed.
//  3. implicit sums over repeated indices are made explicit with
//     [ir.IndexSum] nodes, in ascending index identity order.
//
// Errors carry a kind (see [github.com/gx-org/tensorform/build/fmterr])
// telling if an expression has an invalid shape or invalid indices.
package builder

import (
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
)

// DefaultDimension is the default dimension of the spatial domain.
const DefaultDimension = 3

type (
	// Builder builds expressions.
	// A builder is safe to use concurrently.
	Builder struct {
		counter *ir.Counter
		dim     int
	}

	// Option configures a builder.
	Option func(*Builder)
)

// WithCounter sets the counter used to mint new indices.
// By default, the process-wide counter is used.
func WithCounter(c *ir.Counter) Option {
	return func(b *Builder) {
		b.counter = c
	}
}

// WithDimension sets the dimension of the spatial domain,
// that is the range of the indices of spatial derivatives.
func WithDimension(dim int) Option {
	return func(b *Builder) {
		b.dim = dim
	}
}

// New returns a new builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		counter: ir.GlobalCounter(),
		dim:     DefaultDimension,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Counter returns the counter used by the builder to mint indices.
func (b *Builder) Counter() *ir.Counter {
	return b.counter
}

// Dimension returns the dimension of the spatial domain.
func (b *Builder) Dimension() int {
	return b.dim
}

// NewIndex mints a new index.
func (b *Builder) NewIndex() ir.Index {
	return b.counter.Index()
}

// Indices returns n new indices.
func (b *Builder) Indices(n int) []ir.Index {
	return b.counter.Indices(n)
}

// Expr converts a value into an expression.
// Go numbers are converted into number literals.
func (b *Builder) Expr(x any) (ir.Expr, error) {
	switch xT := x.(type) {
	case ir.Expr:
		return xT, nil
	case int:
		return ir.NewInt(int64(xT)), nil
	case int32:
		return ir.NewInt(int64(xT)), nil
	case int64:
		return ir.NewInt(xT), nil
	case float32:
		return ir.NewFloat(float64(xT)), nil
	case float64:
		return ir.NewFloat(xT), nil
	case nil:
		return nil, fmterr.Shapef("nil expression")
	}
	return nil, fmterr.Shapef("cannot convert %T to an expression", x)
}

func (b *Builder) exprs(xs ...any) ([]ir.Expr, error) {
	es := make([]ir.Expr, len(xs))
	for i, x := range xs {
		var err error
		if es[i], err = b.Expr(x); err != nil {
			return nil, err
		}
	}
	return es, nil
}

func (b *Builder) pair(x, y any) (ir.Expr, ir.Expr, error) {
	es, err := b.exprs(x, y)
	if err != nil {
		return nil, nil, err
	}
	return es[0], es[1], nil
}

// wrap converts the result of a node constructor into an expression.
// A nil interface is returned on error.
func wrap[T ir.Expr](x T, err error) (ir.Expr, error) {
	if err != nil {
		return nil, err
	}
	return x, nil
}

// sumOver wraps e into one index sum per index in ii,
// in ascending identity order.
func sumOver(e ir.Expr, ii []ir.Index) (ir.Expr, error) {
	ii = sortedIndices(ii)
	for _, idx := range ii {
		sum, err := ir.NewIndexSum(e, idx)
		if err != nil {
			return nil, err
		}
		e = sum
	}
	return e, nil
}
