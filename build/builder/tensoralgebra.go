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

import "github.com/gx-org/tensorform/build/ir"

func unary[T ir.Expr](b *Builder, x any, f func(ir.Expr) (T, error)) (ir.Expr, error) {
	e, err := b.Expr(x)
	if err != nil {
		return nil, err
	}
	return wrap(f(e))
}

func binary[T ir.Expr](b *Builder, x, y any, f func(ir.Expr, ir.Expr) (T, error)) (ir.Expr, error) {
	a, c, err := b.pair(x, y)
	if err != nil {
		return nil, err
	}
	return wrap(f(a, c))
}

// Transpose returns the transpose of a matrix.
func (b *Builder) Transpose(x any) (ir.Expr, error) {
	return unary(b, x, ir.NewTransposed)
}

// Inner returns the inner product of two tensors of the same shape.
func (b *Builder) Inner(x, y any) (ir.Expr, error) {
	return binary(b, x, y, ir.NewInner)
}

// Outer returns the outer product of two tensors.
func (b *Builder) Outer(x, y any) (ir.Expr, error) {
	return binary(b, x, y, ir.NewOuter)
}

// Dot returns the contraction of the last axis of x with the first axis of y.
func (b *Builder) Dot(x, y any) (ir.Expr, error) {
	return binary(b, x, y, ir.NewDot)
}

// Trace returns the trace of a square matrix.
func (b *Builder) Trace(x any) (ir.Expr, error) {
	return unary(b, x, ir.NewTrace)
}

// Det returns the determinant of a scalar or of a square matrix.
func (b *Builder) Det(x any) (ir.Expr, error) {
	return unary(b, x, ir.NewDeterminant)
}
