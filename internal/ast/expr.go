package ast

import (
	"fmt"
	"strings"
)

// Expr is implemented by every expression node, mirroring kanso's
// Node + isExpr() marker-method pattern for a closed sum type.
type Expr interface {
	Node
	isExpr()
}

// ConstKind tags the subtag of a Constant node.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstBool
	ConstStr
	ConstID
)

func (k ConstKind) String() string {
	switch k {
	case ConstInt:
		return "int"
	case ConstBool:
		return "bool"
	case ConstStr:
		return "str"
	case ConstID:
		return "id"
	default:
		return "?"
	}
}

// Constant is a literal int/bool/str, or an identifier reference (subtag id).
type Constant struct {
	typed
	Kind  ConstKind
	Int   int
	Bool  bool
	Str   string
	Name  string // only meaningful when Kind == ConstID
}

func (*Constant) isExpr()           {}
func (*Constant) NodeType() NodeType { return CONSTANT }
func (c *Constant) String() string {
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", c.Int)
	case ConstBool:
		return fmt.Sprintf("%t", c.Bool)
	case ConstStr:
		return fmt.Sprintf("%q", c.Str)
	case ConstID:
		return c.Name
	default:
		return "<bad constant>"
	}
}

// BinOp is a binary operator application. Op is the source-text operator
// token: one of + - * / % < <= > >= == != and or.
type BinOp struct {
	typed
	Op    string
	Left  Expr
	Right Expr
}

func (*BinOp) isExpr()            {}
func (*BinOp) NodeType() NodeType { return BIN_OP }
func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// UnaryOp is a unary operator application: Op is "-" or "not".
type UnaryOp struct {
	typed
	Op   string
	Expr Expr
}

func (*UnaryOp) isExpr()            {}
func (*UnaryOp) NodeType() NodeType { return UNARY_OP }
func (u *UnaryOp) String() string   { return fmt.Sprintf("%s%s", u.Op, u.Expr.String()) }

// FunctionCall invokes a user-defined function by name.
type FunctionCall struct {
	typed
	Name string
	Args []Expr
}

func (*FunctionCall) isExpr()            {}
func (*FunctionCall) NodeType() NodeType { return FUNCTION_CALL }
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

// Array is an array literal; an empty literal has no elements.
type Array struct {
	typed
	Elements []Expr
}

func (*Array) isExpr()            {}
func (*Array) NodeType() NodeType { return ARRAY }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// ArrayIndexing indexes an array-typed variable by an int expression.
type ArrayIndexing struct {
	typed
	ArrayName string
	Index     Expr
}

func (*ArrayIndexing) isExpr()            {}
func (*ArrayIndexing) NodeType() NodeType { return ARRAY_INDEXING }
func (a *ArrayIndexing) String() string {
	return fmt.Sprintf("%s[%s]", a.ArrayName, a.Index.String())
}

// TypeExpr is the syntactic type annotation used in formals and return
// types: a base name plus an array depth (spec.md's AST "Type" variant).
type TypeExpr struct {
	typed
	Name     string
	ArrDepth int
}

func (*TypeExpr) NodeType() NodeType { return TYPE_EXPR }
func (t *TypeExpr) String() string {
	return t.Name + strings.Repeat("[]", t.ArrDepth)
}
