package optimize

import "github.com/marcom97/pytoc/internal/ir"

// foldBinOp evaluates a binary operator over two already-constant operands.
// The operand/operator combinations reachable here are exactly the ones the
// type checker accepts, so no default/error case is needed: int arithmetic
// and comparisons, bool and/or, str/array "+".
func foldBinOp(op string, s1, s2 *ir.Operand) *ir.Operand {
	switch op {
	case "+":
		switch {
		case s1.Kind == ir.OperandStr:
			return ir.StrVal(s1.Str + s2.Str)
		case s1.Kind == ir.OperandArray:
			elems := make([]*ir.Operand, 0, len(s1.Elements)+len(s2.Elements))
			elems = append(elems, s1.Elements...)
			elems = append(elems, s2.Elements...)
			return ir.ArrayVal(elems)
		default:
			return ir.IntVal(s1.Int + s2.Int)
		}
	case "-":
		return ir.IntVal(s1.Int - s2.Int)
	case "*":
		return ir.IntVal(s1.Int * s2.Int)
	case "/":
		return ir.IntVal(s1.Int / s2.Int)
	case "%":
		return ir.IntVal(s1.Int % s2.Int)
	case "==":
		return ir.BoolVal(s1.Int == s2.Int)
	case "!=":
		return ir.BoolVal(s1.Int != s2.Int)
	case "<":
		return ir.BoolVal(s1.Int < s2.Int)
	case "<=":
		return ir.BoolVal(s1.Int <= s2.Int)
	case ">":
		return ir.BoolVal(s1.Int > s2.Int)
	case ">=":
		return ir.BoolVal(s1.Int >= s2.Int)
	case "and":
		return ir.BoolVal(s1.Bool && s2.Bool)
	case "or":
		return ir.BoolVal(s1.Bool || s2.Bool)
	default:
		panic("optimize: unreachable binary operator " + op)
	}
}

func foldUnaryOp(op string, expr *ir.Operand) *ir.Operand {
	switch op {
	case "-":
		return ir.IntVal(-expr.Int)
	case "not":
		return ir.BoolVal(!expr.Bool)
	default:
		panic("optimize: unreachable unary operator " + op)
	}
}
