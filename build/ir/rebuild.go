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
)

func asNode[T Node](x T, err error) (Node, error) {
	if err != nil {
		return nil, err
	}
	return x, nil
}

func asExprs(n Node, ops []Node) ([]Expr, error) {
	exprs := make([]Expr, len(ops))
	for i, op := range ops {
		expr, ok := op.(Expr)
		if !ok {
			return nil, fmterr.Internalf("operand %d of %s is a %T: expected an expression", i, n.Kind(), op)
		}
		exprs[i] = expr
	}
	return exprs, nil
}

func asMultiIndex(n Node, op Node) (*MultiIndex, error) {
	mi, ok := op.(*MultiIndex)
	if !ok {
		return nil, fmterr.Internalf("%s expects a multi-index but got %T", n.Kind(), op)
	}
	return mi, nil
}

func sameOperands(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i, op := range a {
		if op != b[i] {
			return false
		}
	}
	return true
}

// Rebuild returns a node of the same type and attributes as n
// but with new operands. The constructor of the node validates
// the new operands. n is returned if the operands are unchanged.
func Rebuild(n Node, ops []Node) (Node, error) {
	if sameOperands(n.Operands(), ops) {
		return n, nil
	}
	if n.Kind().IsTerminal() {
		return nil, fmterr.Internalf("cannot rebuild terminal %s with %d operands", n.Kind(), len(ops))
	}
	if len(ops) != len(n.Operands()) {
		return nil, fmterr.Internalf("cannot rebuild %s with %d operands: expected %d", n.Kind(), len(ops), len(n.Operands()))
	}
	switch nT := n.(type) {
	case *Indexed:
		mi, err := asMultiIndex(n, ops[1])
		if err != nil {
			return nil, err
		}
		return rebuildWith(n, ops[:1], func(es []Expr) (Node, error) {
			return asNode(NewIndexed(es[0], mi))
		})
	case *IndexSum:
		mi, err := asMultiIndex(n, ops[1])
		if err != nil {
			return nil, err
		}
		idx, ok := mi.At(0).(Index)
		if !ok {
			return nil, fmterr.Internalf("cannot sum over %s", mi.At(0).Repr())
		}
		return rebuildWith(n, ops[:1], func(es []Expr) (Node, error) {
			return asNode(NewIndexSum(es[0], idx))
		})
	case *ComponentTensor:
		mi, err := asMultiIndex(n, ops[1])
		if err != nil {
			return nil, err
		}
		return rebuildWith(n, ops[:1], func(es []Expr) (Node, error) {
			return asNode(NewComponentTensor(es[0], mi.Indices()))
		})
	case *SpatialDerivative:
		mi, err := asMultiIndex(n, ops[1])
		if err != nil {
			return nil, err
		}
		return rebuildWith(n, ops[:1], func(es []Expr) (Node, error) {
			return asNode(NewSpatialDerivative(es[0], mi.At(0), nT.Dim()))
		})
	case *VariableDerivative:
		v, ok := ops[1].(*Variable)
		if !ok {
			return nil, fmterr.Internalf("derivative expects a variable but got %T", ops[1])
		}
		return rebuildWith(n, ops[:1], func(es []Expr) (Node, error) {
			return asNode(NewVariableDerivative(es[0], v))
		})
	case *Variable:
		label, ok := ops[1].(*Label)
		if !ok {
			return nil, fmterr.Internalf("variable expects a label but got %T", ops[1])
		}
		return rebuildWith(n, ops[:1], func(es []Expr) (Node, error) {
			return NewVariable(es[0], label), nil
		})
	}
	return rebuildWith(n, ops, func(es []Expr) (Node, error) {
		return rebuildExpr(n, es)
	})
}

func rebuildWith(n Node, ops []Node, f func([]Expr) (Node, error)) (Node, error) {
	es, err := asExprs(n, ops)
	if err != nil {
		return nil, err
	}
	return f(es)
}

func rebuildExpr(n Node, es []Expr) (Node, error) {
	switch nT := n.(type) {
	case *Sum:
		return asNode(NewSum(es...))
	case *Product:
		return asNode(NewProduct(es...))
	case *Division:
		return asNode(NewDivision(es[0], es[1]))
	case *Power:
		return asNode(NewPower(es[0], es[1]))
	case *Mod:
		return asNode(NewMod(es[0], es[1]))
	case *Abs:
		return NewAbs(es[0]), nil
	case *ListTensor:
		return asNode(NewListTensor(es...))
	case *Transposed:
		return asNode(NewTransposed(es[0]))
	case *Inner:
		return asNode(NewInner(es[0], es[1]))
	case *Outer:
		return asNode(NewOuter(es[0], es[1]))
	case *Dot:
		return asNode(NewDot(es[0], es[1]))
	case *Trace:
		return asNode(NewTrace(es[0]))
	case *Determinant:
		return asNode(NewDeterminant(es[0]))
	case *MathFunction:
		return asNode(NewMathFunction(nT.Name(), es[0]))
	case *Restricted:
		return asNode(NewRestricted(es[0], nT.Side()))
	case *BinaryCondition:
		return asNode(NewBinaryCondition(nT.Kind(), es[0], es[1]))
	case *NotCondition:
		return asNode(NewNotCondition(es[0]))
	case *Conditional:
		return asNode(NewConditional(es[0], es[1], es[2]))
	case *MinValue:
		return asNode(NewMinValue(es[0], es[1]))
	case *MaxValue:
		return asNode(NewMaxValue(es[0], es[1]))
	}
	return nil, fmterr.Internalf("cannot rebuild node %s of type %T", n.Kind(), n)
}
