package ir

import (
	"fmt"

	"github.com/marcom97/pytoc/internal/ast"
)

// Builder walks a type-checked AST and produces a flat instruction stream.
// Each function resets its own temporary counter, matching the original's
// per-function register numbering.
type Builder struct {
	instrs    []Instruction
	tempCount int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build runs the whole program and returns its instruction stream: every
// user function in declaration order, then main.
func Build(prog *ast.Program) []Instruction {
	b := NewBuilder()
	b.buildProgram(prog)
	return b.instrs
}

func (b *Builder) emit(i Instruction) { b.instrs = append(b.instrs, i) }

func (b *Builder) newTemp() *Operand {
	b.tempCount++
	return &Operand{Kind: OperandTemp, Name: fmt.Sprintf("_t%d", b.tempCount)}
}

func (b *Builder) resetTemps() { b.tempCount = 0 }

func (b *Builder) buildProgram(prog *ast.Program) {
	for _, fn := range prog.Funcs {
		b.buildMethodDecl(fn)
	}
	b.buildMethodDecl(prog.MainFunc)
}

func (b *Builder) buildMethodDecl(m *ast.MethodDecl) {
	b.resetTemps()

	params := make([]Param, len(m.Params.Params))
	for i, p := range m.Params.Params {
		params[i] = Param{Name: p.Name, Type: descriptorOf(p.Type)}
	}
	b.emit(&FuncInstr{Name: m.Name, RetType: descriptorOf(m.RetType), Params: params})

	b.buildStmtList(m.Body)

	b.emit(&EndFuncInstr{Name: m.Name})
}

func (b *Builder) buildStmtList(sl *ast.StmtList) {
	for _, stmt := range sl.Stmts {
		b.buildStmt(stmt)
	}
}

func (b *Builder) buildStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		b.buildAssignStmt(s)
	case *ast.ExprStmt:
		src := b.buildExpr(s.Expr)
		b.emit(&AssignInstr{Type: voidType, Dest: nil, Src: src})
	case *ast.PrintStmt:
		b.buildPrintStmt(s)
	case *ast.RetStmt:
		src := b.buildExpr(s.Expr)
		b.emit(&RetInstr{Src: src})
	case *ast.IfStmt:
		b.buildIfStmt(s)
	case *ast.WhileStmt:
		b.buildWhileStmt(s)
	}
}

func (b *Builder) buildAssignStmt(s *ast.AssignStmt) {
	src := b.buildExpr(s.Expr)
	op := "ASSIGN"
	if s.IsDecl {
		op = "DECL"
	}
	typ := s.ResolvedType()
	if op == "DECL" {
		b.emit(&DeclInstr{Type: typ, Dest: ID(s.Name), Src: src})
	} else {
		b.emit(&AssignInstr{Type: typ, Dest: ID(s.Name), Src: src})
	}
}

func (b *Builder) buildPrintStmt(s *ast.PrintStmt) {
	args := make([]PrintArg, len(s.Args))
	for i, a := range s.Args {
		args[i] = PrintArg{Operand: b.buildExpr(a), Type: a.ResolvedType()}
	}
	b.emit(&PrintInstr{Args: args})
}

func (b *Builder) buildIfStmt(s *ast.IfStmt) {
	cond := b.buildExpr(s.Cond)

	if s.TrueBody != nil {
		b.emit(&IfInstr{Cond: cond})
		b.buildStmtList(s.TrueBody)
		b.emit(&EndIfInstr{Cond: cond})
	}

	if s.FalseBody != nil {
		b.emit(&ElseInstr{Cond: cond})
		b.buildStmtList(s.FalseBody)
		b.emit(&EndElseInstr{Cond: cond})
	}
}

func (b *Builder) buildWhileStmt(s *ast.WhileStmt) {
	if s.Body == nil {
		return
	}
	b.emit(&BeginLoopCondInstr{})
	cond := b.buildExpr(s.Cond)

	b.emit(&WhileInstr{Cond: cond})
	b.buildStmtList(s.Body)
	b.emit(&EndWhileInstr{Cond: cond})
}

func (b *Builder) buildExpr(e ast.Expr) *Operand {
	switch n := e.(type) {
	case *ast.Constant:
		return b.buildConstant(n)
	case *ast.BinOp:
		return b.buildBinOp(n)
	case *ast.UnaryOp:
		return b.buildUnaryOp(n)
	case *ast.FunctionCall:
		return b.buildFunctionCall(n)
	case *ast.Array:
		return b.buildArray(n)
	case *ast.ArrayIndexing:
		return b.buildArrayIndexing(n)
	default:
		panic(fmt.Sprintf("ir: unhandled expression %T", e))
	}
}

func (b *Builder) buildConstant(n *ast.Constant) *Operand {
	switch n.Kind {
	case ast.ConstInt:
		return IntVal(n.Int)
	case ast.ConstBool:
		return BoolVal(n.Bool)
	case ast.ConstStr:
		return StrVal(n.Str)
	default: // ast.ConstID
		return ID(n.Name)
	}
}

func (b *Builder) buildBinOp(n *ast.BinOp) *Operand {
	left := b.buildExpr(n.Left)
	right := b.buildExpr(n.Right)
	dest := b.newTemp()
	b.emit(&BinOpInstr{Op: n.Op, Type: n.ResolvedType(), Dest: dest, Left: left, Right: right})
	return dest
}

func (b *Builder) buildUnaryOp(n *ast.UnaryOp) *Operand {
	src := b.buildExpr(n.Expr)
	dest := b.newTemp()
	b.emit(&UnaryOpInstr{Op: n.Op, Type: n.ResolvedType(), Dest: dest, Src: src})
	return dest
}

func (b *Builder) buildFunctionCall(n *ast.FunctionCall) *Operand {
	args := make([]*Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = b.buildExpr(a)
	}
	dest := b.newTemp()
	b.emit(&CallInstr{FuncName: n.Name, Type: n.ResolvedType(), Dest: dest, Args: args})
	return dest
}

func (b *Builder) buildArray(n *ast.Array) *Operand {
	elems := make([]*Operand, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = b.buildExpr(e)
	}
	return ArrayVal(elems)
}

func (b *Builder) buildArrayIndexing(n *ast.ArrayIndexing) *Operand {
	arr := ID(n.ArrayName)
	idx := b.buildExpr(n.Index)
	dest := b.newTemp()
	b.emit(&ArrayIdxInstr{Type: n.ResolvedType(), Dest: dest, Array: arr, Index: idx, Pos: n.NodePos()})
	return dest
}
