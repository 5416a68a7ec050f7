package emit

import (
	"strings"

	"github.com/marcom97/pytoc/internal/ir"
)

// concatPlan captures an array "+" concatenation whose C lowering (malloc
// plus two memcpy calls) needs the eventual destination variable's name,
// which isn't known until a DECL or ASSIGN consumes the temporary. Holding
// the plan here avoids the original implementation's approach of emitting
// text against a placeholder name and then patching the destination name
// into it after the fact.
type concatPlan struct {
	elemCType string
	arrDepth  int
	left      string
	right     string
}

// deferArrayConcat records an array "+" for later realization instead of
// emitting C text immediately; emitDecl/emitAssign call realizeArrayConcat
// once the real destination name is known.
func (e *Emitter) deferArrayConcat(n *ir.BinOpInstr) {
	if e.pendingConcat == nil {
		e.pendingConcat = make(map[*ir.Operand]*concatPlan)
	}
	e.pendingConcat[n.Dest] = &concatPlan{
		elemCType: cBaseType(n.Type.Base),
		arrDepth:  n.Type.ArrayDepth,
		left:      e.convertOperand(n.Left),
		right:     e.convertOperand(n.Right),
	}
}

// realizeArrayConcat emits the malloc/memcpy lowering for a pending array
// concatenation, naming the result destName. declare is true for a DECL
// (the pointer variable is declared here) and false for a plain ASSIGN to
// an already-declared array variable.
func (e *Emitter) realizeArrayConcat(plan *concatPlan, destName string, declare bool) {
	var1 := e.materializeIfLiteral(plan.left, plan.elemCType, plan.arrDepth, destName+"_1")
	var2 := e.materializeIfLiteral(plan.right, plan.elemCType, plan.arrDepth, destName+"_2")

	if declare {
		stars := strings.Repeat("*", plan.arrDepth)
		e.line("%s%s %s = malloc(sizeof(%s) + sizeof(%s));", plan.elemCType, stars, destName, var1, var2)
	} else {
		e.line("%s = malloc(sizeof(%s) + sizeof(%s));", destName, var1, var2)
	}
	e.line("memcpy(%s, %s, sizeof(%s));", destName, var1, var1)
	e.line("memcpy(%s + sizeof(%s)/sizeof(%s[0]), %s, sizeof(%s));", destName, var1, var1, var2, var2)
}

// materializeIfLiteral declares a brace-initialized literal as a named
// local (so sizeof() has something concrete to measure) and returns the
// name to use in place of expr; a non-literal expr is returned unchanged.
func (e *Emitter) materializeIfLiteral(expr, elemCType string, arrDepth int, localName string) string {
	if !strings.HasPrefix(expr, "{") {
		return expr
	}
	e.line("%s %s[]%s = %s;", elemCType, localName, strings.Repeat("[]", arrDepth-1), expr)
	return localName
}
