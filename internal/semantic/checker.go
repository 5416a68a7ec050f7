// Package semantic implements the type checker from spec.md §4.2: it walks
// the AST with a symbol table as context, mutating every node's resolved
// type and rejecting ill-typed programs. It fails fast — the first error
// aborts the walk, per spec.md §7 ("no error is recovered in the core").
package semantic

import (
	"github.com/marcom97/pytoc/internal/ast"
	pytocerrors "github.com/marcom97/pytoc/internal/errors"
	"github.com/marcom97/pytoc/internal/symbols"
	"github.com/marcom97/pytoc/internal/types"
)

// Checker walks an AST and annotates it with resolved types.
type Checker struct {
	symtab      *symbols.Table
	currentFunc string
}

// NewChecker returns a fresh Checker with an empty global scope.
func NewChecker() *Checker {
	return &Checker{symtab: symbols.New()}
}

// CheckProgram type-checks each user function, then main, exactly per
// spec.md's Program rule. Functions earlier in func_decl are visible to
// later ones (and to main); a function is visible to itself (recursion)
// because its signature is declared before its body is checked.
func (c *Checker) CheckProgram(prog *ast.Program) *pytocerrors.CompilerError {
	for _, fn := range prog.Funcs {
		if err := c.checkMethodDecl(fn); err != nil {
			return err
		}
	}
	if err := c.checkMethodDecl(prog.MainFunc); err != nil {
		return err
	}
	prog.SetResolvedType(types.NoneType())
	return nil
}

func (c *Checker) checkMethodDecl(m *ast.MethodDecl) *pytocerrors.CompilerError {
	paramTypes := make([]types.Descriptor, len(m.Params.Params))
	for i, p := range m.Params.Params {
		paramTypes[i] = descriptorOf(p.Type)
	}
	retType := descriptorOf(m.RetType)

	if err := c.symtab.DeclareFunc(m.Name, symbols.Signature{ParamTypes: paramTypes, ReturnType: retType}, m.Pos); err != nil {
		return err
	}

	prevFunc := c.currentFunc
	c.currentFunc = m.Name

	// Two scopes are pushed here: one for the parameters (so a parameter
	// can be shadowed, not redeclared, by the body's own StmtList scope),
	// and the StmtList's own when checkStmtList runs the body.
	c.symtab.PushScope()
	for i, p := range m.Params.Params {
		if err := c.symtab.DeclareVariable(p.Name, paramTypes[i], p.Pos); err != nil {
			c.symtab.PopScope()
			c.currentFunc = prevFunc
			return err
		}
	}

	err := c.checkStmtList(m.Body)
	c.symtab.PopScope()
	c.currentFunc = prevFunc
	if err != nil {
		return err
	}

	m.SetResolvedType(types.NoneType())
	return nil
}

func (c *Checker) checkStmtList(sl *ast.StmtList) *pytocerrors.CompilerError {
	c.symtab.PushScope()
	defer c.symtab.PopScope()

	for _, stmt := range sl.Stmts {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	sl.SetResolvedType(types.NoneType())
	return nil
}

func (c *Checker) checkStmt(stmt ast.Stmt) *pytocerrors.CompilerError {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return c.checkAssignStmt(s)
	case *ast.ExprStmt:
		_, err := c.checkExpr(s.Expr)
		if err != nil {
			return err
		}
		s.SetResolvedType(types.VoidType())
		return nil
	case *ast.PrintStmt:
		return c.checkPrintStmt(s)
	case *ast.RetStmt:
		return c.checkRetStmt(s)
	case *ast.IfStmt:
		return c.checkIfStmt(s)
	case *ast.WhileStmt:
		return c.checkWhileStmt(s)
	default:
		return pytocerrors.NewSemanticError(pytocerrors.ErrorUnsupportedOperator, "unhandled statement kind", stmt.NodePos()).Build()
	}
}

func (c *Checker) checkAssignStmt(s *ast.AssignStmt) *pytocerrors.CompilerError {
	exprType, err := c.checkExpr(s.Expr)
	if err != nil {
		return err
	}

	existing, found := c.symtab.LookupVariable(s.Name)
	if !found {
		if err := c.symtab.DeclareVariable(s.Name, exprType, s.Pos); err != nil {
			return err
		}
		s.IsDecl = true
	} else if !existing.Equal(exprType) {
		return pytocerrors.TypeMismatch(
			"variable \""+s.Name+"\" has type "+existing.String()+" but is being assigned "+exprType.String(),
			existing.String(), exprType.String(), s.Pos)
	} else {
		s.IsDecl = false
	}

	s.SetResolvedType(exprType)
	return nil
}

func (c *Checker) checkPrintStmt(s *ast.PrintStmt) *pytocerrors.CompilerError {
	for _, arg := range s.Args {
		argType, err := c.checkExpr(arg)
		if err != nil {
			return err
		}
		if argType.ArrayDepth > 0 || (argType.Base != types.Int && argType.Base != types.Bool && argType.Base != types.Str) {
			return pytocerrors.TypeMismatch("print only supports int, bool, and str arguments",
				"int, bool, or str", argType.String(), arg.NodePos())
		}
	}
	s.SetResolvedType(types.VoidType())
	return nil
}

func (c *Checker) checkRetStmt(s *ast.RetStmt) *pytocerrors.CompilerError {
	exprType, err := c.checkExpr(s.Expr)
	if err != nil {
		return err
	}
	sig, ferr := c.symtab.LookupFunc(c.currentFunc, s.Pos)
	if ferr != nil {
		return ferr
	}
	if !exprType.Equal(sig.ReturnType) {
		return pytocerrors.TypeMismatch(
			"return type mismatch in function \""+c.currentFunc+"\"",
			sig.ReturnType.String(), exprType.String(), s.Pos)
	}
	s.SetResolvedType(exprType)
	return nil
}

func (c *Checker) checkIfStmt(s *ast.IfStmt) *pytocerrors.CompilerError {
	condType, err := c.checkExpr(s.Cond)
	if err != nil {
		return err
	}
	if !isScalarBool(condType) {
		return pytocerrors.TypeMismatch("if statement requires a bool condition",
			"bool", condType.String(), s.Cond.NodePos())
	}
	if s.TrueBody != nil {
		if err := c.checkStmtList(s.TrueBody); err != nil {
			return err
		}
	}
	if s.FalseBody != nil {
		if err := c.checkStmtList(s.FalseBody); err != nil {
			return err
		}
	}
	s.SetResolvedType(types.NoneType())
	return nil
}

func (c *Checker) checkWhileStmt(s *ast.WhileStmt) *pytocerrors.CompilerError {
	condType, err := c.checkExpr(s.Cond)
	if err != nil {
		return err
	}
	if !isScalarBool(condType) {
		return pytocerrors.TypeMismatch("while statement requires a bool condition",
			"bool", condType.String(), s.Cond.NodePos())
	}
	if s.Body != nil {
		if err := c.checkStmtList(s.Body); err != nil {
			return err
		}
	}
	s.SetResolvedType(types.NoneType())
	return nil
}

func descriptorOf(t *ast.TypeExpr) types.Descriptor {
	return types.Descriptor{Base: types.Base(t.Name), ArrayDepth: t.ArrDepth}
}

func isScalarBool(d types.Descriptor) bool { return d.Base == types.Bool && d.ArrayDepth == 0 }
func isScalarInt(d types.Descriptor) bool  { return d.Base == types.Int && d.ArrayDepth == 0 }
