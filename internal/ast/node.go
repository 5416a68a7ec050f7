package ast

import "github.com/marcom97/pytoc/internal/types"

// NodeType tags the concrete kind of an AST node, the way kanso's ast
// package tags every node with a NodeType for debugging and dispatch.
type NodeType int

const (
	BAD NodeType = iota
	PROGRAM
	METHOD_DECL
	PARAM_LIST
	FORMAL
	STMT_LIST
	ASSIGN_STMT
	EXPR_STMT
	PRINT_STMT
	RET_STMT
	IF_STMT
	WHILE_STMT
	BIN_OP
	UNARY_OP
	CONSTANT
	FUNCTION_CALL
	ARRAY
	ARRAY_INDEXING
	TYPE_EXPR
)

// Node is implemented by every AST node. Every node carries a mutable type
// slot populated by the type checker (ResolvedType/SetResolvedType), per
// spec.md's data model.
type Node interface {
	NodePos() Position
	SetPos(Position)
	NodeType() NodeType
	String() string

	ResolvedType() types.Descriptor
	SetResolvedType(types.Descriptor)
}

// typed is embedded by every node to provide the mutable type slot without
// repeating the same two methods on every concrete type.
type typed struct {
	Pos Position
	typ types.Descriptor
}

func (t *typed) NodePos() Position                  { return t.Pos }
func (t *typed) SetPos(p Position)                  { t.Pos = p }
func (t *typed) ResolvedType() types.Descriptor     { return t.typ }
func (t *typed) SetResolvedType(d types.Descriptor) { t.typ = d }
