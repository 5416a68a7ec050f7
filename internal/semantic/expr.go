package semantic

import (
	"fmt"

	"github.com/marcom97/pytoc/internal/ast"
	pytocerrors "github.com/marcom97/pytoc/internal/errors"
	"github.com/marcom97/pytoc/internal/types"
)

func (c *Checker) checkExpr(e ast.Expr) (types.Descriptor, *pytocerrors.CompilerError) {
	switch n := e.(type) {
	case *ast.Constant:
		return c.checkConstant(n)
	case *ast.BinOp:
		return c.checkBinOp(n)
	case *ast.UnaryOp:
		return c.checkUnaryOp(n)
	case *ast.FunctionCall:
		return c.checkFunctionCall(n)
	case *ast.Array:
		return c.checkArray(n)
	case *ast.ArrayIndexing:
		return c.checkArrayIndexing(n)
	default:
		return types.Descriptor{}, pytocerrors.NewSemanticError(pytocerrors.ErrorUnsupportedOperator, "unhandled expression kind", e.NodePos()).Build()
	}
}

func (c *Checker) checkConstant(n *ast.Constant) (types.Descriptor, *pytocerrors.CompilerError) {
	var t types.Descriptor
	switch n.Kind {
	case ast.ConstInt:
		t = types.Scalar(types.Int)
	case ast.ConstBool:
		t = types.Scalar(types.Bool)
	case ast.ConstStr:
		t = types.Scalar(types.Str)
	case ast.ConstID:
		found, ok := c.symtab.LookupVariable(n.Name)
		if !ok {
			return types.Descriptor{}, pytocerrors.UndefinedVariable(n.Name, n.Pos)
		}
		t = found
	default:
		return types.Descriptor{}, pytocerrors.NewSemanticError(pytocerrors.ErrorUnsupportedOperator, "unhandled constant kind", n.Pos).Build()
	}
	n.SetResolvedType(t)
	return t, nil
}

// checkBinOp implements spec.md §4.2's BinOp rule: operand types must be
// equal (base and array depth both), then the operator picks a narrower
// requirement. "!=" is checked symmetrically with "==", unlike the
// original implementation it was distilled from, which left "!=" unwired.
func (c *Checker) checkBinOp(n *ast.BinOp) (types.Descriptor, *pytocerrors.CompilerError) {
	leftType, err := c.checkExpr(n.Left)
	if err != nil {
		return types.Descriptor{}, err
	}
	rightType, err := c.checkExpr(n.Right)
	if err != nil {
		return types.Descriptor{}, err
	}

	if !leftType.Equal(rightType) {
		return types.Descriptor{}, pytocerrors.TypeMismatch(
			fmt.Sprintf("operands of %q have different types", n.Op),
			leftType.String(), rightType.String(), n.Pos)
	}

	var result types.Descriptor
	switch n.Op {
	case "-", "*", "/", "%":
		if !isScalarInt(leftType) {
			return types.Descriptor{}, pytocerrors.TypeMismatch(
				fmt.Sprintf("%q requires integer operands", n.Op), "int", leftType.String(), n.Pos)
		}
		result = types.Scalar(types.Int)

	case "+":
		switch {
		case leftType.IsArray():
			result = leftType
		case leftType.Base == types.Int:
			result = types.Scalar(types.Int)
		case leftType.Base == types.Str:
			result = types.Scalar(types.Str)
		default:
			return types.Descriptor{}, pytocerrors.TypeMismatch(
				"\"+\" requires integer, string, or array operands", "int, str, or array", leftType.String(), n.Pos)
		}

	case "<", "<=", ">", ">=":
		if !isScalarInt(leftType) {
			return types.Descriptor{}, pytocerrors.TypeMismatch(
				fmt.Sprintf("%q requires integer operands", n.Op), "int", leftType.String(), n.Pos)
		}
		result = types.Scalar(types.Bool)

	case "==", "!=":
		if !isScalarInt(leftType) {
			return types.Descriptor{}, pytocerrors.TypeMismatch(
				fmt.Sprintf("%q requires integer operands", n.Op), "int", leftType.String(), n.Pos)
		}
		result = types.Scalar(types.Bool)

	case "and", "or":
		if !isScalarBool(leftType) {
			return types.Descriptor{}, pytocerrors.TypeMismatch(
				fmt.Sprintf("%q requires bool operands", n.Op), "bool", leftType.String(), n.Pos)
		}
		result = types.Scalar(types.Bool)

	default:
		return types.Descriptor{}, pytocerrors.UnsupportedOperator(n.Op, n.Pos)
	}

	n.SetResolvedType(result)
	return result, nil
}

func (c *Checker) checkUnaryOp(n *ast.UnaryOp) (types.Descriptor, *pytocerrors.CompilerError) {
	operandType, err := c.checkExpr(n.Expr)
	if err != nil {
		return types.Descriptor{}, err
	}

	var result types.Descriptor
	switch n.Op {
	case "-":
		if !isScalarInt(operandType) {
			return types.Descriptor{}, pytocerrors.TypeMismatch("unary \"-\" requires an integer operand",
				"int", operandType.String(), n.Pos)
		}
		result = types.Scalar(types.Int)
	case "not":
		if !isScalarBool(operandType) {
			return types.Descriptor{}, pytocerrors.TypeMismatch("\"not\" requires a bool operand",
				"bool", operandType.String(), n.Pos)
		}
		result = types.Scalar(types.Bool)
	default:
		return types.Descriptor{}, pytocerrors.UnsupportedOperator(n.Op, n.Pos)
	}

	n.SetResolvedType(result)
	return result, nil
}

func (c *Checker) checkFunctionCall(n *ast.FunctionCall) (types.Descriptor, *pytocerrors.CompilerError) {
	sig, err := c.symtab.LookupFunc(n.Name, n.Pos)
	if err != nil {
		return types.Descriptor{}, err
	}
	if len(n.Args) != len(sig.ParamTypes) {
		return types.Descriptor{}, pytocerrors.ArityMismatch(n.Name, len(sig.ParamTypes), len(n.Args), n.Pos)
	}
	for i, arg := range n.Args {
		argType, err := c.checkExpr(arg)
		if err != nil {
			return types.Descriptor{}, err
		}
		if !argType.Equal(sig.ParamTypes[i]) {
			return types.Descriptor{}, pytocerrors.TypeMismatch(
				fmt.Sprintf("argument %d to %q has the wrong type", i+1, n.Name),
				sig.ParamTypes[i].String(), argType.String(), arg.NodePos())
		}
	}
	n.SetResolvedType(sig.ReturnType)
	return sig.ReturnType, nil
}

// checkArray types an array literal: every element must share one exact
// type. An empty literal defaults to int[] per spec.md's stated default.
func (c *Checker) checkArray(n *ast.Array) (types.Descriptor, *pytocerrors.CompilerError) {
	if len(n.Elements) == 0 {
		t := types.Scalar(types.Int).WithArrayDepth(1)
		n.SetResolvedType(t)
		return t, nil
	}

	elemType, err := c.checkExpr(n.Elements[0])
	if err != nil {
		return types.Descriptor{}, err
	}
	for _, elem := range n.Elements[1:] {
		t, err := c.checkExpr(elem)
		if err != nil {
			return types.Descriptor{}, err
		}
		if !t.Equal(elemType) {
			return types.Descriptor{}, pytocerrors.TypeMismatch("array elements must all have the same type",
				elemType.String(), t.String(), elem.NodePos())
		}
	}

	result := elemType.WithArrayDepth(elemType.ArrayDepth + 1)
	n.SetResolvedType(result)
	return result, nil
}

func (c *Checker) checkArrayIndexing(n *ast.ArrayIndexing) (types.Descriptor, *pytocerrors.CompilerError) {
	arrType, ok := c.symtab.LookupVariable(n.ArrayName)
	if !ok {
		return types.Descriptor{}, pytocerrors.UndefinedVariable(n.ArrayName, n.Pos)
	}
	if !arrType.IsArray() {
		return types.Descriptor{}, pytocerrors.NotAnArray(n.ArrayName, n.Pos)
	}

	indexType, err := c.checkExpr(n.Index)
	if err != nil {
		return types.Descriptor{}, err
	}
	if !isScalarInt(indexType) {
		return types.Descriptor{}, pytocerrors.NonIntegerIndex(n.Index.String(), n.Index.NodePos())
	}

	result := arrType.Element()
	n.SetResolvedType(result)
	return result, nil
}
