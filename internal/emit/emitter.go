// Package emit implements the C code generator from spec.md §4.5: a
// stateful walk over an (optimized) instruction stream that prints C
// source text. Unlike the original implementation, each IR instruction
// is its own Go type, so dispatch is a type switch instead of matching
// on opcode strings, and a typo'd op name cannot slip through. The switch
// has no default case: an instruction type it does not list emits nothing.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marcom97/pytoc/internal/ir"
	"github.com/marcom97/pytoc/internal/types"
)

var binOpC = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%",
	"==": "==", "!=": "!=", "<": "<", "<=": "<=", ">": ">", ">=": ">=",
	"and": "&&", "or": "||",
}

var unaryOpC = map[string]string{"-": "-", "not": "!"}

// Emitter walks an instruction stream and accumulates generated C source.
type Emitter struct {
	out       strings.Builder
	indent    int
	regToExpr map[*ir.Operand]string
	strLens   map[string]string

	// pendingConcat holds array "+" results whose C lowering is deferred
	// until the destination variable name is known; see concat.go.
	pendingConcat map[*ir.Operand]*concatPlan
}

// Emit renders instrs as a complete C translation unit, headers included.
func Emit(instrs []ir.Instruction) string {
	e := &Emitter{
		regToExpr: make(map[*ir.Operand]string),
		strLens:   make(map[string]string),
	}
	e.emitHeaders()
	for _, instr := range instrs {
		e.emitInstruction(instr)
	}
	return e.out.String()
}

func (e *Emitter) emitHeaders() {
	for _, header := range []string{"stdio.h", "stdlib.h", "string.h"} {
		e.out.WriteString(fmt.Sprintf("#include <%s>\n", header))
	}
	e.out.WriteString("\n")
}

func (e *Emitter) line(format string, args ...interface{}) {
	e.out.WriteString(strings.Repeat("    ", e.indent))
	e.out.WriteString(fmt.Sprintf(format, args...))
	e.out.WriteString("\n")
}

func (e *Emitter) emitInstruction(instr ir.Instruction) {
	switch n := instr.(type) {
	case *ir.FuncInstr:
		e.emitFunc(n)
	case *ir.EndFuncInstr:
		e.emitScopeEnd()
		e.out.WriteString("\n")
	case *ir.IfInstr:
		e.emitConditional("if", n.Cond)
	case *ir.EndIfInstr:
		e.emitScopeEnd()
	case *ir.ElseInstr:
		e.emitConditional("else", nil)
	case *ir.EndElseInstr:
		e.emitScopeEnd()
	case *ir.WhileInstr:
		e.emitConditional("while", n.Cond)
	case *ir.EndWhileInstr:
		e.emitScopeEnd()
	case *ir.BeginLoopCondInstr:
		// The condition's own instructions (if any) are emitted by the
		// surrounding walk; this marker itself produces no C text.
	case *ir.PrintInstr:
		e.emitPrint(n)
	case *ir.RetInstr:
		e.line("return %s;", e.convertOperand(n.Src))

	case *ir.DeclInstr:
		e.emitDecl(n)
	case *ir.AssignInstr:
		e.emitAssign(n)
	case *ir.BinOpInstr:
		e.emitBinOp(n)
	case *ir.UnaryOpInstr:
		e.emitUnaryOp(n)
	case *ir.CallInstr:
		e.emitCall(n)
	case *ir.ArrayIdxInstr:
		e.emitArrayIdx(n)
	}
}

// convertOperand renders operand as a C expression.
func (e *Emitter) convertOperand(o *ir.Operand) string {
	switch o.Kind {
	case ir.OperandArray:
		parts := make([]string, len(o.Elements))
		for i, el := range o.Elements {
			parts[i] = e.convertOperand(el)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ir.OperandTemp:
		return e.regToExpr[o]
	case ir.OperandStr:
		return strconv.Quote(o.Str)
	case ir.OperandBool:
		if o.Bool {
			return "1"
		}
		return "0"
	case ir.OperandID:
		return o.Name
	default: // OperandInt
		return strconv.Itoa(o.Int)
	}
}

func cBaseType(b types.Base) string { return b.CType() }

func (e *Emitter) emitFunc(n *ir.FuncInstr) {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = fmt.Sprintf("%s %s", cBaseType(p.Type.Base), p.Name)
	}
	e.line("%s %s(%s) {", cBaseType(n.RetType.Base), n.Name, strings.Join(params, ", "))
	e.indent++
}

func (e *Emitter) emitScopeEnd() {
	e.indent--
	e.line("}")
}

func (e *Emitter) emitConditional(keyword string, cond *ir.Operand) {
	if cond != nil {
		e.line("%s (%s) {", keyword, e.convertOperand(cond))
	} else {
		e.line("%s {", keyword)
	}
	e.indent++
}

func (e *Emitter) emitPrint(n *ir.PrintInstr) {
	var fmtSpec strings.Builder
	var argList []string
	for i, arg := range n.Args {
		switch arg.Type.Base {
		case types.Str:
			fmtSpec.WriteString("%s")
		default: // int, bool
			fmtSpec.WriteString("%d")
		}
		argList = append(argList, e.convertOperand(arg.Operand))
		if i != len(n.Args)-1 {
			fmtSpec.WriteString(" ")
		}
	}
	e.line(`printf("%s\n", %s);`, fmtSpec.String(), strings.Join(argList, ", "))
}

func (e *Emitter) emitCall(n *ir.CallInstr) {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.convertOperand(a)
	}
	e.regToExpr[n.Dest] = fmt.Sprintf("%s(%s)", n.FuncName, strings.Join(args, ", "))
}

func (e *Emitter) emitUnaryOp(n *ir.UnaryOpInstr) {
	s1 := e.convertOperand(n.Src)
	e.regToExpr[n.Dest] = fmt.Sprintf("%s%s", unaryOpC[n.Op], s1)
}

func (e *Emitter) emitArrayIdx(n *ir.ArrayIdxInstr) {
	s1 := e.convertOperand(n.Array)
	s2 := e.convertOperand(n.Index)
	e.regToExpr[n.Dest] = fmt.Sprintf("%s[%s]", s1, s2)
}

// getStrLen returns a C expression for the length of s, emitting a
// "strlen" declaration the first time a given variable/temp name is seen
// and reusing it afterward; a literal string's length is a compile-time
// constant and needs no statement.
func (e *Emitter) getStrLen(s *ir.Operand) string {
	key := s.Str
	if s.Kind == ir.OperandID || s.Kind == ir.OperandTemp {
		key = s.Name
	}
	if cached, ok := e.strLens[key]; ok {
		return cached
	}

	if s.Kind == ir.OperandID || s.Kind == ir.OperandTemp {
		lengthName := s.Name + "_len"
		e.line("int %s = strlen(%s);", lengthName, e.convertOperand(s))
		e.strLens[key] = lengthName
		return lengthName
	}

	length := strconv.Itoa(len(s.Str))
	e.strLens[key] = length
	return length
}

func (e *Emitter) emitBinOp(n *ir.BinOpInstr) {
	op := binOpC[n.Op]

	if n.Type.Base == types.Str {
		s1 := e.convertOperand(n.Left)
		s2 := e.convertOperand(n.Right)
		len1 := e.getStrLen(n.Left)
		len2 := e.getStrLen(n.Right)

		resultLen := n.Dest.Name + "_len"
		e.line("int %s = %s + %s;", resultLen, len1, len2)
		e.strLens[n.Dest.Name] = resultLen

		e.line("char* %s = (char*) malloc(%s + 1);", n.Dest.Name, resultLen)
		e.line("strcpy(%s, %s);", n.Dest.Name, s1)
		e.line("strcat(%s, %s);", n.Dest.Name, s2)

		e.regToExpr[n.Dest] = n.Dest.Name
		return
	}

	if n.Type.ArrayDepth > 0 && op == "+" {
		e.deferArrayConcat(n)
		return
	}

	s1 := e.convertOperand(n.Left)
	s2 := e.convertOperand(n.Right)
	e.regToExpr[n.Dest] = fmt.Sprintf("(%s %s %s)", s1, op, s2)
}
