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
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

// Apply returns a scalar function applied to x.
func (b *Builder) Apply(name ir.Func, x any) (ir.Expr, error) {
	return unary(b, x, func(e ir.Expr) (*ir.MathFunction, error) {
		return ir.NewMathFunction(name, e)
	})
}

// Sqrt returns the square root of x.
func (b *Builder) Sqrt(x any) (ir.Expr, error) { return b.Apply(ir.Sqrt, x) }

// Exp returns the exponential of x.
func (b *Builder) Exp(x any) (ir.Expr, error) { return b.Apply(ir.Exp, x) }

// Ln returns the natural logarithm of x.
func (b *Builder) Ln(x any) (ir.Expr, error) { return b.Apply(ir.Ln, x) }

// Sin returns the sine of x.
func (b *Builder) Sin(x any) (ir.Expr, error) { return b.Apply(ir.Sin, x) }

// Cos returns the cosine of x.
func (b *Builder) Cos(x any) (ir.Expr, error) { return b.Apply(ir.Cos, x) }

// Floor returns the greatest integer value less than or equal to x.
func (b *Builder) Floor(x any) (ir.Expr, error) { return b.Apply(ir.Floor, x) }

// Ceil returns the least integer value greater than or equal to x.
func (b *Builder) Ceil(x any) (ir.Expr, error) { return b.Apply(ir.Ceil, x) }

// ----------------------------------------------------------------------------
// Conditions.

// Compare returns a binary condition given its kind.
func (b *Builder) Compare(kind irkind.Kind, x, y any) (ir.Expr, error) {
	return binary(b, x, y, func(a, c ir.Expr) (*ir.BinaryCondition, error) {
		return ir.NewBinaryCondition(kind, a, c)
	})
}

// EQ returns x == y.
func (b *Builder) EQ(x, y any) (ir.Expr, error) { return b.Compare(irkind.EQ, x, y) }

// NE returns x != y.
func (b *Builder) NE(x, y any) (ir.Expr, error) { return b.Compare(irkind.NE, x, y) }

// LT returns x < y.
func (b *Builder) LT(x, y any) (ir.Expr, error) { return b.Compare(irkind.LT, x, y) }

// LE returns x <= y.
func (b *Builder) LE(x, y any) (ir.Expr, error) { return b.Compare(irkind.LE, x, y) }

// GT returns x > y.
func (b *Builder) GT(x, y any) (ir.Expr, error) { return b.Compare(irkind.GT, x, y) }

// GE returns x >= y.
func (b *Builder) GE(x, y any) (ir.Expr, error) { return b.Compare(irkind.GE, x, y) }

// And returns x && y.
func (b *Builder) And(x, y any) (ir.Expr, error) { return b.Compare(irkind.And, x, y) }

// Or returns x || y.
func (b *Builder) Or(x, y any) (ir.Expr, error) { return b.Compare(irkind.Or, x, y) }

// Not returns !x.
func (b *Builder) Not(x any) (ir.Expr, error) {
	return unary(b, x, ir.NewNotCondition)
}

// Conditional returns t if cond is true, f otherwise.
func (b *Builder) Conditional(cond, t, f any) (ir.Expr, error) {
	es, err := b.exprs(cond, t, f)
	if err != nil {
		return nil, err
	}
	return wrap(ir.NewConditional(es[0], es[1], es[2]))
}

// Min returns the minimum of two scalars.
func (b *Builder) Min(x, y any) (ir.Expr, error) {
	return binary(b, x, y, ir.NewMinValue)
}

// Max returns the maximum of two scalars.
func (b *Builder) Max(x, y any) (ir.Expr, error) {
	return binary(b, x, y, ir.NewMaxValue)
}
