package ast

import (
	"fmt"
	"strings"
)

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	isStmt()
}

// AssignStmt assigns expr to name. IsDecl is populated by the type checker:
// true if this assignment declares a new variable, false if it re-assigns
// an existing one.
type AssignStmt struct {
	typed
	Name   string
	Expr   Expr
	IsDecl bool
}

func (*AssignStmt) isStmt()           {}
func (*AssignStmt) NodeType() NodeType { return ASSIGN_STMT }
func (a *AssignStmt) String() string   { return fmt.Sprintf("%s = %s", a.Name, a.Expr.String()) }

// ExprStmt evaluates an expression for its side effects, discarding the value.
type ExprStmt struct {
	typed
	Expr Expr
}

func (*ExprStmt) isStmt()            {}
func (*ExprStmt) NodeType() NodeType { return EXPR_STMT }
func (e *ExprStmt) String() string   { return e.Expr.String() }

// PrintStmt prints a comma-separated argument list.
type PrintStmt struct {
	typed
	Args []Expr
}

func (*PrintStmt) isStmt()            {}
func (*PrintStmt) NodeType() NodeType { return PRINT_STMT }
func (p *PrintStmt) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("print(%s)", strings.Join(parts, ", "))
}

// RetStmt returns a value from the enclosing function.
type RetStmt struct {
	typed
	Expr Expr
}

func (*RetStmt) isStmt()            {}
func (*RetStmt) NodeType() NodeType { return RET_STMT }
func (r *RetStmt) String() string   { return fmt.Sprintf("return %s", r.Expr.String()) }

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	typed
	Cond      Expr
	TrueBody  *StmtList
	FalseBody *StmtList // nil when there is no else branch
}

func (*IfStmt) isStmt()            {}
func (*IfStmt) NodeType() NodeType { return IF_STMT }
func (i *IfStmt) String() string {
	if i.FalseBody == nil {
		return fmt.Sprintf("if %s: %s", i.Cond.String(), i.TrueBody.String())
	}
	return fmt.Sprintf("if %s: %s else: %s", i.Cond.String(), i.TrueBody.String(), i.FalseBody.String())
}

// WhileStmt loops while Cond holds.
type WhileStmt struct {
	typed
	Cond Expr
	Body *StmtList
}

func (*WhileStmt) isStmt()            {}
func (*WhileStmt) NodeType() NodeType { return WHILE_STMT }
func (w *WhileStmt) String() string   { return fmt.Sprintf("while %s: %s", w.Cond.String(), w.Body.String()) }

// StmtList is a block: a sequence of statements sharing one lexical scope.
type StmtList struct {
	typed
	Stmts []Stmt
}

func (*StmtList) NodeType() NodeType { return STMT_LIST }
func (s *StmtList) String() string {
	parts := make([]string, len(s.Stmts))
	for i, st := range s.Stmts {
		parts[i] = st.String()
	}
	return strings.Join(parts, "; ")
}

// Formal is one parameter of a function signature: a name and declared type.
type Formal struct {
	typed
	Name string
	Type *TypeExpr
}

func (*Formal) NodeType() NodeType { return FORMAL }
func (f *Formal) String() string   { return fmt.Sprintf("%s: %s", f.Name, f.Type.String()) }

// ParamList is the ordered list of a function's formals.
type ParamList struct {
	typed
	Params []*Formal
}

func (*ParamList) NodeType() NodeType { return PARAM_LIST }
func (p *ParamList) String() string {
	parts := make([]string, len(p.Params))
	for i, f := range p.Params {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}

// MethodDecl declares a function: its name, return type, parameters, and body.
type MethodDecl struct {
	typed
	Name     string
	RetType  *TypeExpr
	Params   *ParamList
	Body     *StmtList
}

func (*MethodDecl) NodeType() NodeType { return METHOD_DECL }
func (m *MethodDecl) String() string {
	return fmt.Sprintf("def %s(%s) -> %s:\n%s", m.Name, m.Params.String(), m.RetType.String(), m.Body.String())
}

// Program is the root node: the mandatory main function plus zero or more
// user-defined functions.
type Program struct {
	typed
	MainFunc *MethodDecl
	Funcs    []*MethodDecl
}

func (*Program) NodeType() NodeType { return PROGRAM }
func (p *Program) String() string {
	var b strings.Builder
	for _, f := range p.Funcs {
		b.WriteString(f.String())
		b.WriteString("\n\n")
	}
	b.WriteString(p.MainFunc.String())
	return b.String()
}
