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

// Package form integrates expressions into variational forms.
//
// A form is a sum of integrals. Each integral integrates a scalar expression
// without free indices over a measure. The arity of a form is the number
// of its arguments: 1 for a linear form, 2 for a bilinear form.
package form

import (
	"slices"
	"strings"

	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irstring"
	"github.com/gx-org/tensorform/internal/exprdeps"
	"github.com/pkg/errors"
)

// Integral of an expression over a measure.
type Integral struct {
	integrand ir.Expr
	measure   Measure
}

// NewIntegral returns the integral of an expression over a measure.
// The integrand is not checked: see Integrate and Form.Validate.
func NewIntegral(integrand ir.Expr, m Measure) *Integral {
	return &Integral{integrand: integrand, measure: m}
}

// Integrand of the integral.
func (in *Integral) Integrand() ir.Expr { return in.integrand }

// Measure of the integral.
func (in *Integral) Measure() Measure { return in.measure }

// Repr returns the canonical form of the integral.
func (in *Integral) Repr() string {
	return "Integral(" + in.integrand.Repr() + ", " + in.measure.String() + ")"
}

// String returns the integral in mathematical notation.
func (in *Integral) String() string {
	return "∫ " + irstring.Unicode(in.integrand) + " " + in.measure.String()
}

// Form is a sum of integrals.
type Form struct {
	integrals []*Integral
}

// New returns a form given its integrals.
func New(integrals ...*Integral) *Form {
	return &Form{integrals: integrals}
}

// Integrate returns the form integrating an expression over a measure.
// The expression must be a scalar without free indices.
func Integrate(integrand ir.Expr, m Measure) (*Form, error) {
	if err := checkIntegrand(integrand); err != nil {
		return nil, err
	}
	return New(NewIntegral(integrand, m)), nil
}

func checkIntegrand(integrand ir.Expr) error {
	if ir.IsTrueScalar(integrand) {
		return nil
	}
	return fmterr.Shapef("cannot integrate %s: expected a scalar without free indices but got shape %v and free indices %v", integrand.String(), integrand.Shape(), ir.FreeEntries(integrand))
}

// Add returns the sum of forms.
func (f *Form) Add(others ...*Form) *Form {
	integrals := slices.Clone(f.integrals)
	for _, other := range others {
		integrals = append(integrals, other.integrals...)
	}
	return New(integrals...)
}

// Integrals of the form.
func (f *Form) Integrals() []*Integral {
	return f.integrals
}

func (f *Form) integrands() []ir.Node {
	nodes := make([]ir.Node, len(f.integrals))
	for i, in := range f.integrals {
		nodes[i] = in.integrand
	}
	return nodes
}

// Arguments returns the arguments of the form sorted by number.
func (f *Form) Arguments() []*ir.Argument {
	return exprdeps.Arguments(f.integrands()...)
}

// Coefficients returns the coefficients of the form sorted by count.
func (f *Form) Coefficients() []*ir.Coefficient {
	return exprdeps.Coefficients(f.integrands()...)
}

// Arity returns the number of distinct arguments of the form.
func (f *Form) Arity() int {
	return len(exprdeps.ArgumentNumbers(f.integrands()...))
}

// Validate checks that all the integrands are scalars without free indices
// and that all the integrals have the same arguments numbered from 0.
// Arguments of interior facet integrals must be restricted to a side of
// the facet and only these integrals can have restrictions.
// All the failures are reported.
func (f *Form) Validate() error {
	if len(f.integrals) == 0 {
		return errors.Errorf("form has no integral")
	}
	errs := &fmterr.Errors{}
	var want []int
	for i, in := range f.integrals {
		errs.Push(fmterr.PrefixWith("integral %d over %s", i, in.measure))
		errs.Append(checkIntegrand(in.integrand))
		checkRestrictions(errs, in)
		numbers := exprdeps.ArgumentNumbers(in.integrand)
		for j, number := range numbers {
			if number != j {
				errs.Append(fmterr.Indexf("arguments %v are not numbered from 0", numbers))
				break
			}
		}
		if i == 0 {
			want = numbers
		} else if !slices.Equal(numbers, want) {
			errs.Append(fmterr.Indexf("arguments %v differ from the arguments %v of integral 0", numbers, want))
		}
		errs.Pop()
	}
	return errs.ToError()
}

// Repr returns the canonical form of the form.
func (f *Form) Repr() string {
	ss := make([]string, len(f.integrals))
	for i, in := range f.integrals {
		ss[i] = in.Repr()
	}
	return "Form(" + strings.Join(ss, ", ") + ")"
}

// String returns the form in mathematical notation.
func (f *Form) String() string {
	if len(f.integrals) == 0 {
		return "0"
	}
	ss := make([]string, len(f.integrals))
	for i, in := range f.integrals {
		ss[i] = in.String()
	}
	return strings.Join(ss, " + ")
}

// Equation is a variational problem: find u such that a(u, v) = L(v) for all v.
type Equation struct {
	LHS, RHS *Form
}

// NewEquation returns the equation lhs = rhs.
func NewEquation(lhs, rhs *Form) *Equation {
	return &Equation{LHS: lhs, RHS: rhs}
}

// Validate checks both sides of the equation and that the arity of the
// left-hand side is the arity of the right-hand side plus one.
func (eq *Equation) Validate() error {
	errs := &fmterr.Errors{}
	errs.Push(fmterr.PrefixWith("left-hand side"))
	errs.Append(eq.LHS.Validate())
	errs.Pop()
	errs.Push(fmterr.PrefixWith("right-hand side"))
	errs.Append(eq.RHS.Validate())
	errs.Pop()
	if lhs, rhs := eq.LHS.Arity(), eq.RHS.Arity(); lhs != rhs+1 {
		errs.Append(fmterr.Indexf("left-hand side of arity %d incompatible with right-hand side of arity %d", lhs, rhs))
	}
	return errs.ToError()
}

// String returns the equation in mathematical notation.
func (eq *Equation) String() string {
	return eq.LHS.String() + " = " + eq.RHS.String()
}
