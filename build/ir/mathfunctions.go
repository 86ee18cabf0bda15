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
	"github.com/gx-org/tensorform/build/ir/irkind"
	"github.com/pkg/errors"
)

// Func is the name of a scalar function.
type Func string

// Scalar functions.
const (
	Sqrt  Func = "sqrt"
	Exp   Func = "exp"
	Ln    Func = "ln"
	Sin   Func = "sin"
	Cos   Func = "cos"
	Floor Func = "floor"
	Ceil  Func = "ceil"
	Tan   Func = "tan"
	Cosh  Func = "cosh"
	Sinh  Func = "sinh"
	Tanh  Func = "tanh"
	Acos  Func = "acos"
	Asin  Func = "asin"
	Atan  Func = "atan"
	Erf   Func = "erf"
)

var funcReprNames = map[Func]string{
	Sqrt:  "Sqrt",
	Exp:   "Exp",
	Ln:    "Ln",
	Sin:   "Sin",
	Cos:   "Cos",
	Floor: "Floor",
	Ceil:  "Ceil",
	Tan:   "Tan",
	Cosh:  "Cosh",
	Sinh:  "Sinh",
	Tanh:  "Tanh",
	Acos:  "Acos",
	Asin:  "Asin",
	Atan:  "Atan",
	Erf:   "Erf",
}

// Funcs returns all the scalar functions.
func Funcs() []Func {
	return []Func{Sqrt, Exp, Ln, Sin, Cos, Floor, Ceil, Tan, Cosh, Sinh, Tanh, Acos, Asin, Atan, Erf}
}

// MathFunction applies a scalar function to a scalar.
type MathFunction struct {
	operator
	name Func
}

var _ Expr = (*MathFunction)(nil)

// NewMathFunction returns the function name applied to a.
func NewMathFunction(name Func, a Expr) (*MathFunction, error) {
	if _, ok := funcReprNames[name]; !ok {
		return nil, errors.Errorf("unknown math function %q", name)
	}
	if err := requireTrueScalar(string(name), a); err != nil {
		return nil, err
	}
	return &MathFunction{
		operator: newOperator(nil, nil, a),
		name:     name,
	}, nil
}

func (*MathFunction) node() {}

// Kind of the node.
func (*MathFunction) Kind() irkind.Kind { return irkind.MathFunction }

// Name of the function.
func (f *MathFunction) Name() Func { return f.name }

func (f *MathFunction) attribute() string { return string(f.name) }

// Repr returns the canonical form of the node.
func (f *MathFunction) Repr() string {
	return f.cachedRepr(func() string { return reprCall(funcReprNames[f.name], f.ops...) })
}

// String returns name(a).
func (f *MathFunction) String() string { return string(f.name) + "(" + f.ops[0].String() + ")" }
