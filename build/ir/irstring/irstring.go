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

// Package irstring formats expressions for humans.
//
// Unicode uses the usual mathematical notation. Indices are named
// i, j, k, l, m, n in order of first appearance such that the output
// does not depend on the counter used to build the expression.
package irstring

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/tensorform/base/stringseq"
	"github.com/gx-org/tensorform/base/uname"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irkind"
	"github.com/gx-org/tensorform/build/ir/irwalk"
)

// Binding strength of the text of a node.
const (
	precCondition = iota
	precSum
	precProduct
	precPower
	precAtom
)

type text struct {
	s    string
	prec int
}

func atom(s string) text { return text{s: s, prec: precAtom} }

// par returns the text in parenthesis if it binds less than prec.
func par(t text, prec int) string {
	if t.prec < prec {
		return "(" + t.s + ")"
	}
	return t.s
}

var (
	subscripts   = []rune("₀₁₂₃₄₅₆₇₈₉")
	superscripts = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")
)

func script(digits []rune, minus rune, i int64) string {
	var b strings.Builder
	for _, c := range strconv.FormatInt(i, 10) {
		if c == '-' {
			b.WriteRune(minus)
			continue
		}
		b.WriteRune(digits[c-'0'])
	}
	return b.String()
}

// Subscript returns an integer written with subscript digits.
func Subscript(i int64) string { return script(subscripts, '₋', i) }

// Superscript returns an integer written with superscript digits.
func Superscript(i int64) string { return script(superscripts, '⁻', i) }

var funcNames = map[ir.Func]string{
	ir.Acos: "arccos",
	ir.Asin: "arcsin",
	ir.Atan: "arctan",
}

var conditionOps = map[irkind.Kind]string{
	irkind.EQ:  " = ",
	irkind.NE:  " ≠ ",
	irkind.LT:  " < ",
	irkind.LE:  " ≤ ",
	irkind.GT:  " > ",
	irkind.GE:  " ≥ ",
	irkind.And: " ∧ ",
	irkind.Or:  " ∨ ",
}

type printer struct {
	names map[ir.Index]string
	texts map[ir.Node]text
}

func newPrinter(root ir.Node) *printer {
	p := &printer{
		names: make(map[ir.Index]string),
		texts: make(map[ir.Node]text),
	}
	seq := uname.New().Sequence("i", "j", "k", "l", "m", "n")
	for _, idx := range irwalk.Indices(root) {
		p.names[idx] = seq.Next()
	}
	return p
}

// Unicode returns the expression in mathematical notation.
func Unicode(root ir.Node) string {
	p := newPrinter(root)
	for n := range irwalk.UniquePostOrder(root) {
		p.texts[n] = p.format(n)
	}
	return p.texts[root].s
}

func (p *printer) entry(e ir.IndexEntry) string {
	if idx, ok := e.(ir.Index); ok {
		if name, ok := p.names[idx]; ok {
			return name
		}
	}
	return e.String()
}

func (p *printer) multiIndex(mi *ir.MultiIndex) string {
	return stringseq.JoinFunc(slices.Values(mi.Entries()), p.entry, ",")
}

func (p *printer) join(ops []ir.Node, prec int, sep string) string {
	return stringseq.JoinFunc(slices.Values(ops), func(op ir.Node) string {
		return par(p.texts[op], prec)
	}, sep)
}

func (p *printer) op(n ir.Node, i int) text {
	return p.texts[n.Operands()[i]]
}

func argumentName(number int) string {
	switch number {
	case 0:
		return "v"
	case 1:
		return "u"
	}
	return "v" + Subscript(int64(number))
}

func intNumber(n ir.Node) (int64, bool) {
	num, ok := n.(*ir.Number)
	if !ok {
		return 0, false
	}
	return num.Int()
}

func (p *printer) format(n ir.Node) text {
	switch nT := n.(type) {
	case *ir.Zero:
		return atom("0")
	case *ir.Number:
		s := nT.String()
		if strings.HasPrefix(s, "-") {
			return text{s: s, prec: precProduct}
		}
		return atom(s)
	case *ir.Symbol:
		return atom(nT.Name())
	case *ir.Label:
		return atom(nT.Name())
	case *ir.Argument:
		return atom(argumentName(nT.Number()))
	case *ir.Coefficient:
		return atom("w" + Superscript(int64(nT.Count())))
	case *ir.MultiIndex:
		return atom(p.multiIndex(nT))
	case *ir.Sum:
		return text{s: p.join(nT.Operands(), precSum, " + "), prec: precSum}
	case *ir.Product:
		return text{s: p.join(nT.Operands(), precProduct, " "), prec: precProduct}
	case *ir.Division:
		num, numOk := intNumber(nT.Operands()[0])
		den, denOk := intNumber(nT.Operands()[1])
		if numOk && denOk && num >= 0 && den >= 0 {
			return atom(Superscript(num) + "⁄" + Subscript(den))
		}
		return text{s: par(p.op(n, 0), precProduct) + "∕" + par(p.op(n, 1), precPower), prec: precProduct}
	case *ir.Power:
		base := par(p.op(n, 0), precAtom)
		if exp, ok := intNumber(nT.Operands()[1]); ok {
			return text{s: base + Superscript(exp), prec: precPower}
		}
		return text{s: base + "^" + par(p.op(n, 1), precAtom), prec: precPower}
	case *ir.Mod:
		return text{s: par(p.op(n, 0), precPower) + " mod " + par(p.op(n, 1), precPower), prec: precProduct}
	case *ir.Abs:
		return atom("|" + p.op(n, 0).s + "|")
	case *ir.Indexed:
		return atom(par(p.op(n, 0), precAtom) + "[" + p.op(n, 1).s + "]")
	case *ir.IndexSum:
		return text{s: "∑[" + p.op(n, 1).s + "](" + p.op(n, 0).s + ")", prec: precSum}
	case *ir.ComponentTensor:
		return atom("[" + p.op(n, 0).s + " ∀ " + p.op(n, 1).s + "]")
	case *ir.ListTensor:
		return atom("[" + p.join(nT.Operands(), precCondition, ", ") + "]")
	case *ir.Transposed:
		return atom(par(p.op(n, 0), precAtom) + "ᵀ")
	case *ir.Inner:
		return atom("⟨" + p.op(n, 0).s + "|" + p.op(n, 1).s + "⟩")
	case *ir.Outer:
		return text{s: par(p.op(n, 0), precAtom) + "⊗" + par(p.op(n, 1), precAtom), prec: precProduct}
	case *ir.Dot:
		return text{s: par(p.op(n, 0), precAtom) + "⋅" + par(p.op(n, 1), precAtom), prec: precProduct}
	case *ir.Trace:
		return atom("tr(" + p.op(n, 0).s + ")")
	case *ir.Determinant:
		return atom("det(" + p.op(n, 0).s + ")")
	case *ir.SpatialDerivative:
		return text{s: "∂[" + p.op(n, 1).s + "]" + par(p.op(n, 0), precPower), prec: precPower}
	case *ir.Variable:
		return atom(nT.Label().Name())
	case *ir.VariableDerivative:
		return atom("∂" + par(p.op(n, 0), precAtom) + "/∂" + par(p.op(n, 1), precAtom))
	case *ir.Restricted:
		sup := "⁺"
		if nT.Side() == ir.Minus {
			sup = "⁻"
		}
		return atom(par(p.op(n, 0), precAtom) + sup)
	case *ir.MathFunction:
		if nT.Name() == ir.Sqrt {
			return atom("√(" + p.op(n, 0).s + ")")
		}
		name, ok := funcNames[nT.Name()]
		if !ok {
			name = string(nT.Name())
		}
		return atom(name + "(" + p.op(n, 0).s + ")")
	case *ir.BinaryCondition:
		prec := precSum
		if nT.Kind() == irkind.And || nT.Kind() == irkind.Or {
			prec = precAtom
		}
		return text{s: p.join(nT.Operands(), prec, conditionOps[nT.Kind()]), prec: precCondition}
	case *ir.NotCondition:
		return atom("¬" + par(p.op(n, 0), precAtom))
	case *ir.Conditional:
		return atom("{" + p.op(n, 1).s + ", if " + p.op(n, 0).s + "; " + p.op(n, 2).s + ", otherwise}")
	case *ir.MinValue:
		return atom("min(" + p.join(nT.Operands(), precCondition, ", ") + ")")
	case *ir.MaxValue:
		return atom("max(" + p.join(nT.Operands(), precCondition, ", ") + ")")
	}
	return atom(n.String())
}
