package ir

import (
	"testing"

	"github.com/marcom97/pytoc/internal/ast"
	"github.com/marcom97/pytoc/internal/semantic"
	"github.com/marcom97/pytoc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeExpr(name string, depth int) *ast.TypeExpr {
	return &ast.TypeExpr{Name: name, ArrDepth: depth}
}

func mainFunc(body ...ast.Stmt) *ast.Program {
	return &ast.Program{
		MainFunc: &ast.MethodDecl{
			Name:    "main",
			RetType: typeExpr("int", 0),
			Params:  &ast.ParamList{},
			Body:    &ast.StmtList{Stmts: body},
		},
	}
}

func checked(t *testing.T, prog *ast.Program) *ast.Program {
	t.Helper()
	err := semantic.NewChecker().CheckProgram(prog)
	require.Nil(t, err)
	return prog
}

func TestBuildAssignStmtEmitsDecl(t *testing.T) {
	prog := checked(t, mainFunc(
		&ast.AssignStmt{Name: "x", Expr: &ast.Constant{Kind: ast.ConstInt, Int: 1}},
		&ast.RetStmt{Expr: &ast.Constant{Kind: ast.ConstInt, Int: 0}},
	))

	instrs := Build(prog)
	require.Len(t, instrs, 4) // FUNC, DECL, RET, ENDFUNC

	decl, ok := instrs[1].(*DeclInstr)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Dest.Name)
	assert.Equal(t, types.Scalar(types.Int), decl.Type)
	assert.Equal(t, 1, decl.Src.Int)
}

func TestBuildBinOpEmitsTemporaryWithSharedIdentity(t *testing.T) {
	binExpr := &ast.BinOp{Op: "+", Left: &ast.Constant{Kind: ast.ConstInt, Int: 1}, Right: &ast.Constant{Kind: ast.ConstInt, Int: 2}}
	prog := checked(t, mainFunc(
		&ast.AssignStmt{Name: "x", Expr: binExpr},
		&ast.RetStmt{Expr: &ast.Constant{Kind: ast.ConstID, Name: "x"}},
	))

	instrs := Build(prog)

	bin, ok := instrs[1].(*BinOpInstr)
	require.True(t, ok)
	assert.Equal(t, "_t1", bin.Dest.Name)

	decl, ok := instrs[2].(*DeclInstr)
	require.True(t, ok)
	// The DECL's source is the exact same Operand pointer produced by the
	// BinOp, the way the original's object-identity constant folding needs.
	assert.Same(t, bin.Dest, decl.Src)
}

func TestBuildIfStmtBracketsTrueBranch(t *testing.T) {
	prog := checked(t, mainFunc(
		&ast.IfStmt{
			Cond:     &ast.Constant{Kind: ast.ConstBool, Bool: true},
			TrueBody: &ast.StmtList{Stmts: []ast.Stmt{&ast.PrintStmt{Args: []ast.Expr{&ast.Constant{Kind: ast.ConstInt, Int: 1}}}}},
		},
		&ast.RetStmt{Expr: &ast.Constant{Kind: ast.ConstInt, Int: 0}},
	))

	instrs := Build(prog)

	_, isIf := instrs[1].(*IfInstr)
	assert.True(t, isIf)
	_, isPrint := instrs[2].(*PrintInstr)
	assert.True(t, isPrint)
	_, isEndIf := instrs[3].(*EndIfInstr)
	assert.True(t, isEndIf)
}

func TestBuildWhileStmtEmitsLoopMarkers(t *testing.T) {
	prog := checked(t, mainFunc(
		&ast.WhileStmt{
			Cond: &ast.Constant{Kind: ast.ConstBool, Bool: false},
			Body: &ast.StmtList{},
		},
		&ast.RetStmt{Expr: &ast.Constant{Kind: ast.ConstInt, Int: 0}},
	))

	instrs := Build(prog)
	_, isBegin := instrs[1].(*BeginLoopCondInstr)
	assert.True(t, isBegin)
	_, isWhile := instrs[2].(*WhileInstr)
	assert.True(t, isWhile)
	_, isEndWhile := instrs[3].(*EndWhileInstr)
	assert.True(t, isEndWhile)
}

func TestBuildFunctionCallEmitsCallWithArgs(t *testing.T) {
	double := &ast.MethodDecl{
		Name:    "double",
		RetType: typeExpr("int", 0),
		Params:  &ast.ParamList{Params: []*ast.Formal{{Name: "n", Type: typeExpr("int", 0)}}},
		Body: &ast.StmtList{Stmts: []ast.Stmt{
			&ast.RetStmt{Expr: &ast.BinOp{Op: "+", Left: &ast.Constant{Kind: ast.ConstID, Name: "n"}, Right: &ast.Constant{Kind: ast.ConstID, Name: "n"}}},
		}},
	}
	call := &ast.FunctionCall{Name: "double", Args: []ast.Expr{&ast.Constant{Kind: ast.ConstInt, Int: 21}}}
	prog := checked(t, &ast.Program{
		Funcs: []*ast.MethodDecl{double},
		MainFunc: &ast.MethodDecl{
			Name:    "main",
			RetType: typeExpr("int", 0),
			Params:  &ast.ParamList{},
			Body: &ast.StmtList{Stmts: []ast.Stmt{
				&ast.RetStmt{Expr: call},
			}},
		},
	})

	instrs := Build(prog)

	var foundCall *CallInstr
	for _, instr := range instrs {
		if c, ok := instr.(*CallInstr); ok {
			foundCall = c
		}
	}
	require.NotNil(t, foundCall)
	assert.Equal(t, "double", foundCall.FuncName)
	require.Len(t, foundCall.Args, 1)
	assert.Equal(t, 21, foundCall.Args[0].Int)
}

func TestTempCounterResetsPerFunction(t *testing.T) {
	helper := &ast.MethodDecl{
		Name:    "helper",
		RetType: typeExpr("int", 0),
		Params:  &ast.ParamList{},
		Body: &ast.StmtList{Stmts: []ast.Stmt{
			&ast.RetStmt{Expr: &ast.BinOp{Op: "+", Left: &ast.Constant{Kind: ast.ConstInt, Int: 1}, Right: &ast.Constant{Kind: ast.ConstInt, Int: 1}}},
		}},
	}
	prog := checked(t, &ast.Program{
		Funcs: []*ast.MethodDecl{helper},
		MainFunc: &ast.MethodDecl{
			Name:    "main",
			RetType: typeExpr("int", 0),
			Params:  &ast.ParamList{},
			Body: &ast.StmtList{Stmts: []ast.Stmt{
				&ast.RetStmt{Expr: &ast.BinOp{Op: "+", Left: &ast.Constant{Kind: ast.ConstInt, Int: 2}, Right: &ast.Constant{Kind: ast.ConstInt, Int: 2}}},
			}},
		},
	})

	instrs := Build(prog)
	var temps []string
	for _, instr := range instrs {
		if b, ok := instr.(*BinOpInstr); ok {
			temps = append(temps, b.Dest.Name)
		}
	}
	require.Len(t, temps, 2)
	assert.Equal(t, "_t1", temps[0])
	assert.Equal(t, "_t1", temps[1]) // reset between helper() and main()
}
