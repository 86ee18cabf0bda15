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
	"slices"

	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir/irkind"
)

type (
	// Condition is a boolean expression.
	Condition interface {
		Expr
		condition()
	}

	// BinaryCondition compares two expressions or combines two conditions.
	BinaryCondition struct {
		operator
		kind irkind.Kind
	}

	// NotCondition negates a condition.
	NotCondition struct{ operator }

	// Conditional selects an expression depending on a condition.
	Conditional struct{ operator }

	// MinValue is the minimum of two scalars.
	MinValue struct{ operator }

	// MaxValue is the maximum of two scalars.
	MaxValue struct{ operator }
)

var (
	_ Condition = (*BinaryCondition)(nil)
	_ Condition = (*NotCondition)(nil)
	_ Expr      = (*Conditional)(nil)
	_ Expr      = (*MinValue)(nil)
	_ Expr      = (*MaxValue)(nil)
)

var conditionOps = map[irkind.Kind]string{
	irkind.EQ:  "==",
	irkind.NE:  "!=",
	irkind.LT:  "<",
	irkind.LE:  "<=",
	irkind.GT:  ">",
	irkind.GE:  ">=",
	irkind.And: "&&",
	irkind.Or:  "||",
}

// NewBinaryCondition returns a condition given its kind.
// Equality tests accept any operands: their operands are checked when
// the condition is used in a conditional.
func NewBinaryCondition(kind irkind.Kind, a, b Expr) (*BinaryCondition, error) {
	op, ok := conditionOps[kind]
	if !ok {
		return nil, fmterr.Internalf("%s is not a binary condition", kind)
	}
	switch kind {
	case irkind.And, irkind.Or:
		for _, x := range []Expr{a, b} {
			if _, isCond := x.(Condition); !isCond {
				return nil, fmterr.Shapef("operator %s expects conditions but got %s", op, x.String())
			}
		}
	case irkind.LT, irkind.LE, irkind.GT, irkind.GE:
		for _, x := range []Expr{a, b} {
			if err := requireTrueScalar("comparison "+op, x); err != nil {
				return nil, err
			}
		}
	}
	return &BinaryCondition{
		operator: newOperator(nil, nil, a, b),
		kind:     kind,
	}, nil
}

func (*BinaryCondition) node()      {}
func (*BinaryCondition) condition() {}

// Kind of the node.
func (c *BinaryCondition) Kind() irkind.Kind { return c.kind }

// Repr returns the canonical form of the node.
func (c *BinaryCondition) Repr() string {
	return c.cachedRepr(func() string { return reprCall(c.kind.String(), c.ops...) })
}

// String returns (a op b).
func (c *BinaryCondition) String() string {
	return "(" + joinStrings(c.ops, " "+conditionOps[c.kind]+" ") + ")"
}

// NewNotCondition returns the negation of a condition.
func NewNotCondition(c Expr) (*NotCondition, error) {
	if _, ok := c.(Condition); !ok {
		return nil, fmterr.Shapef("operator ! expects a condition but got %s", c.String())
	}
	return &NotCondition{newOperator(nil, nil, c)}, nil
}

func (*NotCondition) node()      {}
func (*NotCondition) condition() {}

// Kind of the node.
func (*NotCondition) Kind() irkind.Kind { return irkind.Not }

// Repr returns the canonical form of the node.
func (c *NotCondition) Repr() string {
	return c.cachedRepr(func() string { return reprCall(irkind.Not.String(), c.ops...) })
}

// String returns !c.
func (c *NotCondition) String() string { return "!" + c.ops[0].String() }

// NewConditional returns t if the condition is true, f otherwise.
func NewConditional(cond Expr, t, f Expr) (*Conditional, error) {
	c, ok := cond.(Condition)
	if !ok {
		return nil, fmterr.Shapef("a conditional expects a condition but got %s", cond.String())
	}
	if c.Kind() == irkind.EQ || c.Kind() == irkind.NE {
		for _, op := range c.Operands() {
			if err := requireTrueScalar("equality condition", op.(Expr)); err != nil {
				return nil, err
			}
		}
	}
	if !slices.Equal(t.Shape(), f.Shape()) {
		return nil, fmterr.Shapef("conditional branches have different shapes %v and %v", t.Shape(), f.Shape())
	}
	if !EqualFree(t, f) {
		return nil, fmterr.Indexf("conditional branches have different free indices %v and %v", FreeEntries(t), FreeEntries(f))
	}
	return &Conditional{newOperator(t.Shape(), t.FreeIndices(), c, t, f)}, nil
}

func (*Conditional) node() {}

// Kind of the node.
func (*Conditional) Kind() irkind.Kind { return irkind.Conditional }

// Condition of the conditional.
func (c *Conditional) Condition() Condition { return c.ops[0].(Condition) }

// Repr returns the canonical form of the node.
func (c *Conditional) Repr() string {
	return c.cachedRepr(func() string { return reprCall("Conditional", c.ops...) })
}

// String returns (c ? t : f).
func (c *Conditional) String() string {
	return "(" + c.ops[0].String() + " ? " + c.ops[1].String() + " : " + c.ops[2].String() + ")"
}

// NewMinValue returns the minimum of two scalars.
func NewMinValue(a, b Expr) (*MinValue, error) {
	if err := requireTrueScalar("min_value", a); err != nil {
		return nil, err
	}
	if err := requireTrueScalar("min_value", b); err != nil {
		return nil, err
	}
	return &MinValue{newOperator(nil, nil, a, b)}, nil
}

func (*MinValue) node() {}

// Kind of the node.
func (*MinValue) Kind() irkind.Kind { return irkind.MinValue }

// Repr returns the canonical form of the node.
func (m *MinValue) Repr() string {
	return m.cachedRepr(func() string { return reprCall("MinValue", m.ops...) })
}

// String returns min(a, b).
func (m *MinValue) String() string { return "min(" + joinStrings(m.ops, ", ") + ")" }

// NewMaxValue returns the maximum of two scalars.
func NewMaxValue(a, b Expr) (*MaxValue, error) {
	if err := requireTrueScalar("max_value", a); err != nil {
		return nil, err
	}
	if err := requireTrueScalar("max_value", b); err != nil {
		return nil, err
	}
	return &MaxValue{newOperator(nil, nil, a, b)}, nil
}

func (*MaxValue) node() {}

// Kind of the node.
func (*MaxValue) Kind() irkind.Kind { return irkind.MaxValue }

// Repr returns the canonical form of the node.
func (m *MaxValue) Repr() string {
	return m.cachedRepr(func() string { return reprCall("MaxValue", m.ops...) })
}

// String returns max(a, b).
func (m *MaxValue) String() string { return "max(" + joinStrings(m.ops, ", ") + ")" }
