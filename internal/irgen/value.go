// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     irgen
// Description: SSA value and type model
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package irgen

import (
	"fmt"
	"math"
	"strconv"
)

// Type is the IR type of a Value
type Type int

const (
	Double Type = iota
	Bool
	Ptr
)

func (t Type) String() string {
	switch t {
	case Double:
		return "double"
	case Bool:
		return "i1"
	case Ptr:
		return "ptr"
	default:
		return "void"
	}
}

// Value is an SSA operand: a constant, a global or an instruction result
type Value struct {
	Type  Type
	Ref   string
	Const bool

	num  float64
	flag bool
}

// String renders the value as a typed operand, e.g. "double %addtmp"
func (v Value) String() string {
	return v.Type.String() + " " + v.Ref
}

// Number returns the folded value of a double constant
func (v Value) Number() (float64, bool) {
	return v.num, v.Const && v.Type == Double
}

// Truth returns the folded value of a boolean constant
func (v Value) Truth() (bool, bool) {
	return v.flag, v.Const && v.Type == Bool
}

func constDouble(f float64) Value {
	return Value{Type: Double, Ref: FormatDouble(f), Const: true, num: f}
}

func constBool(b bool) Value {
	return Value{Type: Bool, Ref: strconv.FormatBool(b), Const: true, flag: b}
}

// FormatDouble renders a double literal in exponent form when it round-trips,
// otherwise as the hexadecimal bit pattern
func FormatDouble(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) {
		s := strconv.FormatFloat(f, 'e', 6, 64)
		if back, err := strconv.ParseFloat(s, 64); err == nil && back == f {
			return s
		}
	}
	return fmt.Sprintf("0x%016X", math.Float64bits(f))
}
