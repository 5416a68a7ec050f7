package semantic

import (
	"testing"

	"github.com/marcom97/pytoc/internal/ast"
	"github.com/marcom97/pytoc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p() ast.Position { return ast.Position{Filename: "t.sp", Line: 1, Column: 1} }

func intConst(v int) *ast.Constant  { return &ast.Constant{Kind: ast.ConstInt, Int: v} }
func strConst(v string) *ast.Constant { return &ast.Constant{Kind: ast.ConstStr, Str: v} }
func idConst(name string) *ast.Constant { return &ast.Constant{Kind: ast.ConstID, Name: name} }

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

func TestAssignStmtDeclaresNewVariable(t *testing.T) {
	prog := mainFunc(
		&ast.AssignStmt{Name: "x", Expr: intConst(1)},
		&ast.RetStmt{Expr: intConst(0)},
	)

	c := NewChecker()
	err := c.CheckProgram(prog)
	require.Nil(t, err)

	assign := prog.MainFunc.Body.Stmts[0].(*ast.AssignStmt)
	assert.True(t, assign.IsDecl)
	assert.Equal(t, types.Scalar(types.Int), assign.ResolvedType())
}

func TestAssignStmtRetypingIsRejected(t *testing.T) {
	prog := mainFunc(
		&ast.AssignStmt{Name: "x", Expr: intConst(1)},
		&ast.AssignStmt{Name: "x", Expr: strConst("hi")},
		&ast.RetStmt{Expr: intConst(0)},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0004", err.Code)
}

func TestBinOpAddMismatchedTypesFails(t *testing.T) {
	prog := mainFunc(
		&ast.AssignStmt{Name: "x", Expr: &ast.BinOp{Op: "+", Left: intConst(1), Right: strConst("hi")}},
		&ast.RetStmt{Expr: intConst(0)},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0004", err.Code)
}

func TestBinOpAddStringsProducesStr(t *testing.T) {
	assignExpr := &ast.BinOp{Op: "+", Left: strConst("a"), Right: strConst("b")}
	prog := mainFunc(
		&ast.AssignStmt{Name: "x", Expr: assignExpr},
		&ast.RetStmt{Expr: intConst(0)},
	)

	err := NewChecker().CheckProgram(prog)
	require.Nil(t, err)
	assert.Equal(t, types.Scalar(types.Str), assignExpr.ResolvedType())
}

func TestNotEqualIsCheckedLikeEqual(t *testing.T) {
	cond := &ast.BinOp{Op: "!=", Left: intConst(1), Right: intConst(2)}
	prog := mainFunc(
		&ast.IfStmt{Cond: cond, TrueBody: &ast.StmtList{}},
		&ast.RetStmt{Expr: intConst(0)},
	)

	err := NewChecker().CheckProgram(prog)
	require.Nil(t, err)
	assert.Equal(t, types.Scalar(types.Bool), cond.ResolvedType())
}

func TestUndefinedVariableFails(t *testing.T) {
	prog := mainFunc(
		&ast.RetStmt{Expr: idConst("missing")},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0002", err.Code)
}

func TestFunctionCallArityMismatch(t *testing.T) {
	add := &ast.MethodDecl{
		Name:    "add",
		RetType: typeExpr("int", 0),
		Params: &ast.ParamList{Params: []*ast.Formal{
			{Name: "a", Type: typeExpr("int", 0)},
			{Name: "b", Type: typeExpr("int", 0)},
		}},
		Body: &ast.StmtList{Stmts: []ast.Stmt{
			&ast.RetStmt{Expr: &ast.BinOp{Op: "+", Left: idConst("a"), Right: idConst("b")}},
		}},
	}

	prog := &ast.Program{
		Funcs: []*ast.MethodDecl{add},
		MainFunc: &ast.MethodDecl{
			Name:    "main",
			RetType: typeExpr("int", 0),
			Params:  &ast.ParamList{},
			Body: &ast.StmtList{Stmts: []ast.Stmt{
				&ast.RetStmt{Expr: &ast.FunctionCall{Name: "add", Args: []ast.Expr{intConst(1)}}},
			}},
		},
	}

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0005", err.Code)
}

func TestArrayIndexingOnNonArrayFails(t *testing.T) {
	prog := mainFunc(
		&ast.AssignStmt{Name: "x", Expr: intConst(1)},
		&ast.RetStmt{Expr: &ast.ArrayIndexing{ArrayName: "x", Index: intConst(0)}},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0006", err.Code)
}

func TestArrayIndexingNonIntegerIndexFails(t *testing.T) {
	prog := mainFunc(
		&ast.AssignStmt{Name: "xs", Expr: &ast.Array{Elements: []ast.Expr{intConst(1), intConst(2)}}},
		&ast.RetStmt{Expr: &ast.ArrayIndexing{ArrayName: "xs", Index: strConst("nope")}},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0007", err.Code)
}

func TestArrayLiteralElementTypeMismatchFails(t *testing.T) {
	prog := mainFunc(
		&ast.AssignStmt{Name: "xs", Expr: &ast.Array{Elements: []ast.Expr{intConst(1), strConst("two")}}},
		&ast.RetStmt{Expr: intConst(0)},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0004", err.Code)
}

func TestPrintArrayArgumentRejected(t *testing.T) {
	prog := mainFunc(
		&ast.AssignStmt{Name: "xs", Expr: &ast.Array{Elements: []ast.Expr{intConst(1)}}},
		&ast.PrintStmt{Args: []ast.Expr{idConst("xs")}},
		&ast.RetStmt{Expr: intConst(0)},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0004", err.Code)
}

func TestWhileConditionMustBeBool(t *testing.T) {
	prog := mainFunc(
		&ast.WhileStmt{Cond: intConst(1), Body: &ast.StmtList{}},
		&ast.RetStmt{Expr: intConst(0)},
	)

	err := NewChecker().CheckProgram(prog)
	require.NotNil(t, err)
	assert.Equal(t, "E0004", err.Code)
}

func TestRecursiveFunctionTypeChecks(t *testing.T) {
	countdown := &ast.MethodDecl{
		Name:    "countdown",
		RetType: typeExpr("int", 0),
		Params: &ast.ParamList{Params: []*ast.Formal{
			{Name: "n", Type: typeExpr("int", 0)},
		}},
		Body: &ast.StmtList{Stmts: []ast.Stmt{
			&ast.RetStmt{Expr: &ast.FunctionCall{Name: "countdown", Args: []ast.Expr{idConst("n")}}},
		}},
	}

	prog := &ast.Program{
		Funcs: []*ast.MethodDecl{countdown},
		MainFunc: &ast.MethodDecl{
			Name:    "main",
			RetType: typeExpr("int", 0),
			Params:  &ast.ParamList{},
			Body: &ast.StmtList{Stmts: []ast.Stmt{
				&ast.RetStmt{Expr: &ast.FunctionCall{Name: "countdown", Args: []ast.Expr{intConst(3)}}},
			}},
		},
	}

	err := NewChecker().CheckProgram(prog)
	assert.Nil(t, err)
}
