// Package types implements the type descriptor used throughout the compiler:
// a base name paired with an array depth, plus the small set of rules for
// comparing and combining descriptors that the type checker and IR stages
// both depend on.
package types

import "strings"

// Base names a scalar type. Arrays are described by pairing a Base with a
// non-zero ArrayDepth, never by a distinct Base value.
type Base string

const (
	Int  Base = "int"
	Bool Base = "bool"
	Str  Base = "str"
	// None is the unit type returned by statements that produce no value.
	None Base = "None"
	// Void marks an expression-statement result that is intentionally discarded.
	Void Base = "void"
)

// Descriptor is the (base_name, array_depth) pair from spec.md's data model.
type Descriptor struct {
	Base       Base
	ArrayDepth int
}

func Scalar(b Base) Descriptor { return Descriptor{Base: b} }

func NoneType() Descriptor { return Descriptor{Base: None} }

func VoidType() Descriptor { return Descriptor{Base: Void} }

// Equal reports structural equality: same base name, same array depth.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.Base == other.Base && d.ArrayDepth == other.ArrayDepth
}

// IsArray reports whether this descriptor names an array (depth >= 1).
func (d Descriptor) IsArray() bool { return d.ArrayDepth > 0 }

// Element returns the type of one element of this array: same base, depth-1.
// Panics if called on a scalar; callers must check IsArray first.
func (d Descriptor) Element() Descriptor {
	if d.ArrayDepth == 0 {
		panic("types: Element() called on a scalar descriptor")
	}
	return Descriptor{Base: d.Base, ArrayDepth: d.ArrayDepth - 1}
}

// WithArrayDepth returns a descriptor with the same base and the given depth.
func (d Descriptor) WithArrayDepth(depth int) Descriptor {
	return Descriptor{Base: d.Base, ArrayDepth: depth}
}

func (d Descriptor) String() string {
	if d.ArrayDepth == 0 {
		return string(d.Base)
	}
	return string(d.Base) + strings.Repeat("[]", d.ArrayDepth)
}

// CType returns the emitter's C spelling for a scalar base type.
// Only meaningful for Int, Bool, Str; arrays are lowered by the emitter
// itself using this as the element type.
func (b Base) CType() string {
	switch b {
	case Int, Bool:
		return "int"
	case Str:
		return "char*"
	default:
		return "void"
	}
}
