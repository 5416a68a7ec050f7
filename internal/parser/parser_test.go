package parser

import (
	"testing"

	"github.com/marcom97/pytoc/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These are smoke tests, not an exhaustive grammar suite: lexing/parsing is
// an external collaborator here, covered only enough to trust that it feeds
// well-formed ASTs into the checker/IR/optimizer/emitter pipeline.

func TestParseMinimalMain(t *testing.T) {
	src := "def main():\n    return 0\n"
	prog, err := Parse("t.sp", src)
	require.Nil(t, err)
	require.NotNil(t, prog.MainFunc)
	assert.Equal(t, "main", prog.MainFunc.Name)
	require.Len(t, prog.MainFunc.Body.Stmts, 1)
	ret, ok := prog.MainFunc.Body.Stmts[0].(*ast.RetStmt)
	require.True(t, ok)
	c := ret.Expr.(*ast.Constant)
	assert.Equal(t, ast.ConstInt, c.Kind)
	assert.Equal(t, 0, c.Int)
}

func TestParseFunctionWithParamsAndCall(t *testing.T) {
	src := "def add(a: int, b: int) -> int:\n    return a + b\n\ndef main():\n    x = add(1, 2)\n    print(x)\n    return 0\n"
	prog, err := Parse("t.sp", src)
	require.Nil(t, err)
	require.Len(t, prog.Funcs, 1)
	assert.Equal(t, "add", prog.Funcs[0].Name)
	require.Len(t, prog.Funcs[0].Params.Params, 2)
	assert.Equal(t, "a", prog.Funcs[0].Params.Params[0].Name)

	assign := prog.MainFunc.Body.Stmts[0].(*ast.AssignStmt)
	call := assign.Expr.(*ast.FunctionCall)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseIfElseAndWhile(t *testing.T) {
	src := "def main():\n" +
		"    x = 1\n" +
		"    if x == 1:\n" +
		"        print(x)\n" +
		"    else:\n" +
		"        print(0)\n" +
		"    while x < 10:\n" +
		"        x = x + 1\n" +
		"    return x\n"
	prog, err := Parse("t.sp", src)
	require.Nil(t, err)
	stmts := prog.MainFunc.Body.Stmts
	require.Len(t, stmts, 4)

	ifStmt, ok := stmts[1].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.FalseBody)
	assert.Len(t, ifStmt.TrueBody.Stmts, 1)
	assert.Len(t, ifStmt.FalseBody.Stmts, 1)

	whileStmt, ok := stmts[2].(*ast.WhileStmt)
	require.True(t, ok)
	assert.Len(t, whileStmt.Body.Stmts, 1)
}

func TestParseArrayLiteralAndIndexing(t *testing.T) {
	src := "def main():\n    xs = [1, 2, 3]\n    y = xs[0]\n    return y\n"
	prog, err := Parse("t.sp", src)
	require.Nil(t, err)
	decl := prog.MainFunc.Body.Stmts[0].(*ast.AssignStmt)
	arr := decl.Expr.(*ast.Array)
	assert.Len(t, arr.Elements, 3)

	idx := prog.MainFunc.Body.Stmts[1].(*ast.AssignStmt)
	indexing := idx.Expr.(*ast.ArrayIndexing)
	assert.Equal(t, "xs", indexing.ArrayName)
}

func TestParseOperatorPrecedence(t *testing.T) {
	src := "def main():\n    x = 1 + 2 * 3\n    return x\n"
	prog, err := Parse("t.sp", src)
	require.Nil(t, err)
	assign := prog.MainFunc.Body.Stmts[0].(*ast.AssignStmt)
	top := assign.Expr.(*ast.BinOp)
	assert.Equal(t, "+", top.Op)
	right := top.Right.(*ast.BinOp)
	assert.Equal(t, "*", right.Op)
}

func TestParseNotEqualOperator(t *testing.T) {
	src := "def main():\n    if 1 != 2:\n        print(1)\n    return 0\n"
	prog, err := Parse("t.sp", src)
	require.Nil(t, err)
	ifStmt := prog.MainFunc.Body.Stmts[0].(*ast.IfStmt)
	cond := ifStmt.Cond.(*ast.BinOp)
	assert.Equal(t, "!=", cond.Op)
}

func TestParseEmptyParameterListDoesNotUseUnreachableBranch(t *testing.T) {
	src := "def noop() -> int:\n    return 0\n\ndef main():\n    return noop()\n"
	prog, err := Parse("t.sp", src)
	require.Nil(t, err)
	require.Len(t, prog.Funcs, 1)
	assert.Empty(t, prog.Funcs[0].Params.Params)
}

func TestParseMissingMainIsSyntaxError(t *testing.T) {
	src := "def f() -> int:\n    return 1\n"
	_, err := Parse("t.sp", src)
	require.NotNil(t, err)
	assert.Equal(t, "E0300", err.Code)
}

func TestParseUnterminatedStringIsSyntaxError(t *testing.T) {
	src := "def main():\n    x = \"unterminated\n    return 0\n"
	_, err := Parse("t.sp", src)
	require.NotNil(t, err)
	assert.Equal(t, "E0300", err.Code)
}
