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

package ir

import (
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

// Side of an interior facet.
type Side byte

const (
	// Plus is the cell on the positive side of a facet.
	Plus Side = '+'
	// Minus is the cell on the negative side of a facet.
	Minus Side = '-'
)

// String returns + or -.
func (s Side) String() string { return string(rune(s)) }

// Restricted is the value of an expression on one side of an interior facet.
// Shape and free indices are the ones of the expression.
type Restricted struct {
	operator
	side Side
}

var _ Expr = (*Restricted)(nil)

// NewRestricted returns the restriction of f to a side of a facet.
func NewRestricted(f Expr, side Side) (*Restricted, error) {
	if side != Plus && side != Minus {
		return nil, fmterr.Restrictionf("invalid side %q: expected + or -", rune(side))
	}
	if _, ok := f.(*Restricted); ok {
		return nil, fmterr.Restrictionf("cannot restrict %s twice", f.String())
	}
	return &Restricted{
		operator: newOperator(f.Shape(), f.FreeIndices(), f),
		side:     side,
	}, nil
}

func (*Restricted) node() {}

// Kind of the node.
func (r *Restricted) Kind() irkind.Kind {
	if r.side == Plus {
		return irkind.PositiveRestricted
	}
	return irkind.NegativeRestricted
}

// X returns the expression being restricted.
func (r *Restricted) X() Expr { return r.Operand(0) }

// Side returns the side of the restriction.
func (r *Restricted) Side() Side { return r.side }

// Repr returns the canonical form of the node.
func (r *Restricted) Repr() string {
	return r.cachedRepr(func() string { return reprCall(r.Kind().String(), r.ops...) })
}

// String returns f('+') or f('-').
func (r *Restricted) String() string {
	return "(" + r.ops[0].String() + ")('" + r.side.String() + "')"
}
