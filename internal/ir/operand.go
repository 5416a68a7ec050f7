// Package ir implements the intermediate representation from spec.md §4.3:
// a flat stream of instructions built from a typed AST. It follows the
// original source's design (a three-address-code list interleaved with
// control markers for functions, branches, and loops) but models each
// instruction kind as its own Go type implementing a shared interface,
// the way kanso models its instruction stream, rather than the original's
// one mutable class used for every opcode.
package ir

import (
	"fmt"
	"strings"
)

// OperandKind tags the variant of an Operand.
type OperandKind int

const (
	// OperandID names a declared variable.
	OperandID OperandKind = iota
	// OperandTemp names a compiler-generated temporary (_t1, _t2, ...).
	OperandTemp
	OperandInt
	OperandBool
	OperandStr
	// OperandArray holds a literal array of operands.
	OperandArray
)

// Operand is the IR's value type: a variable/temp reference or a literal.
//
// Operands are always held and passed by pointer. The constant optimizer
// folds a temporary by mutating the Operand it points to in place — every
// instruction that already holds that pointer as a source observes the
// fold without a separate substitution pass, mirroring the original
// implementation's reliance on Python object identity.
type Operand struct {
	Kind     OperandKind
	Name     string // set when Kind is OperandID or OperandTemp
	Int      int
	Bool     bool
	Str      string
	Elements []*Operand // set when Kind is OperandArray
}

func ID(name string) *Operand   { return &Operand{Kind: OperandID, Name: name} }
func IntVal(v int) *Operand     { return &Operand{Kind: OperandInt, Int: v} }
func BoolVal(v bool) *Operand   { return &Operand{Kind: OperandBool, Bool: v} }
func StrVal(v string) *Operand  { return &Operand{Kind: OperandStr, Str: v} }
func ArrayVal(elems []*Operand) *Operand {
	return &Operand{Kind: OperandArray, Elements: elems}
}

// IsConstant reports whether this operand already holds a scalar literal
// (int, bool, or str); an array literal is not counted.
func (o *Operand) IsConstant() bool {
	switch o.Kind {
	case OperandInt, OperandBool, OperandStr:
		return true
	default:
		return false
	}
}

func (o *Operand) String() string {
	switch o.Kind {
	case OperandArray:
		parts := make([]string, len(o.Elements))
		for i, e := range o.Elements {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case OperandID, OperandTemp:
		return "%" + o.Name
	case OperandStr:
		return "'" + o.Str + "'"
	case OperandBool:
		return fmt.Sprintf("%t", o.Bool)
	default:
		return fmt.Sprintf("%d", o.Int)
	}
}
