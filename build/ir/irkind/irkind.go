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

// Package irkind defines the kind of the nodes of an expression tree.
//
// The kind is the type tag compared first when two trees are tested for
// structural equality or sorted.
package irkind

// Kind of a node.
type Kind uint

// Kinds of node. The order of the constants is the order used to sort expressions.
const (
	Invalid Kind = iota

	// Terminals.
	Zero
	Number
	Symbol
	Label
	Argument
	Coefficient
	MultiIndex

	// Algebra.
	Sum
	Product
	Division
	Power
	Mod
	Abs

	// Indexing.
	Indexed
	IndexSum
	ComponentTensor
	ListTensor

	// Tensor algebra.
	Transposed
	Inner
	Outer
	Dot
	Trace
	Determinant

	Variable
	SpatialDerivative
	VariableDerivative
	MathFunction

	// Restrictions to one side of an interior facet.
	PositiveRestricted
	NegativeRestricted

	// Conditions.
	EQ
	NE
	LT
	LE
	GT
	GE
	And
	Or
	Not
	Conditional
	MinValue
	MaxValue

	// Max value for a Kind constant.
	Max
)

var names = [...]string{
	Invalid:            "Invalid",
	Zero:               "Zero",
	Number:             "Number",
	Symbol:             "Symbol",
	Label:              "Label",
	Argument:           "Argument",
	Coefficient:        "Coefficient",
	MultiIndex:         "MultiIndex",
	Sum:                "Sum",
	Product:            "Product",
	Division:           "Division",
	Power:              "Power",
	Mod:                "Mod",
	Abs:                "Abs",
	Indexed:            "Indexed",
	IndexSum:           "IndexSum",
	ComponentTensor:    "ComponentTensor",
	ListTensor:         "ListTensor",
	Transposed:         "Transposed",
	Inner:              "Inner",
	Outer:              "Outer",
	Dot:                "Dot",
	Trace:              "Trace",
	Determinant:        "Determinant",
	Variable:           "Variable",
	SpatialDerivative:  "SpatialDerivative",
	VariableDerivative: "VariableDerivative",
	MathFunction:       "MathFunction",
	PositiveRestricted: "PositiveRestricted",
	NegativeRestricted: "NegativeRestricted",
	EQ:                 "EQ",
	NE:                 "NE",
	LT:                 "LT",
	LE:                 "LE",
	GT:                 "GT",
	GE:                 "GE",
	And:                "AndCondition",
	Or:                 "OrCondition",
	Not:                "NotCondition",
	Conditional:        "Conditional",
	MinValue:           "MinValue",
	MaxValue:           "MaxValue",
}

// String returns the name of the kind as used in canonical representations.
func (k Kind) String() string {
	if k >= Max {
		return "Invalid"
	}
	return names[k]
}

// IsTerminal returns true if nodes of this kind have no operands.
func (k Kind) IsTerminal() bool {
	return k > Invalid && k <= MultiIndex
}

// IsCondition returns true if the kind is a boolean condition.
func (k Kind) IsCondition() bool {
	return k >= EQ && k <= Not
}
