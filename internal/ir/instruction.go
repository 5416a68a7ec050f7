package ir

import (
	"fmt"
	"strings"

	"github.com/marcom97/pytoc/internal/ast"
	"github.com/marcom97/pytoc/internal/types"
)

// Instruction is implemented by every node in the IR stream: three-address
// code (the TAC family) and control markers (the IRControl family).
type Instruction interface {
	isInstruction()
	String() string
}

// Param is one entry of a FuncInstr's parameter list.
type Param struct {
	Name string
	Type types.Descriptor
}

// DeclInstr introduces a new variable binding: DECL(type) %name, src.
type DeclInstr struct {
	Type types.Descriptor
	Dest *Operand
	Src  *Operand
}

func (*DeclInstr) isInstruction() {}
func (i *DeclInstr) String() string {
	return fmt.Sprintf("DECL(%s) %s, %s", i.Type, i.Dest, i.Src)
}

// AssignInstr re-assigns an existing variable, or (when Dest is nil)
// discards the value of an expression statement: ASSIGN(type) %name, src.
type AssignInstr struct {
	Type types.Descriptor
	Dest *Operand
	Src  *Operand
}

func (*AssignInstr) isInstruction() {}
func (i *AssignInstr) String() string {
	dest := "_"
	if i.Dest != nil {
		dest = i.Dest.String()
	}
	return fmt.Sprintf("ASSIGN(%s) %s, %s", i.Type, dest, i.Src)
}

// BinOpInstr computes dest = left Op right.
type BinOpInstr struct {
	Op    string
	Type  types.Descriptor
	Dest  *Operand
	Left  *Operand
	Right *Operand
}

func (*BinOpInstr) isInstruction() {}
func (i *BinOpInstr) String() string {
	return fmt.Sprintf("%s(%s) %s, %s, %s", i.Op, i.Type, i.Dest, i.Left, i.Right)
}

// UnaryOpInstr computes dest = Op src.
type UnaryOpInstr struct {
	Op   string
	Type types.Descriptor
	Dest *Operand
	Src  *Operand
}

func (*UnaryOpInstr) isInstruction() {}
func (i *UnaryOpInstr) String() string {
	return fmt.Sprintf("%s(%s) %s, %s", i.Op, i.Type, i.Dest, i.Src)
}

// CallInstr invokes FuncName with Args, binding the result to Dest.
type CallInstr struct {
	FuncName string
	Type     types.Descriptor
	Dest     *Operand
	Args     []*Operand
}

func (*CallInstr) isInstruction() {}
func (i *CallInstr) String() string {
	parts := make([]string, len(i.Args))
	for j, a := range i.Args {
		parts[j] = a.String()
	}
	return fmt.Sprintf("CALL(%s) %s, %s, (%s)", i.Type, i.Dest, i.FuncName, strings.Join(parts, ", "))
}

// ArrayIdxInstr computes dest = Array[Index]. Pos is carried from the
// source ArrayIndexing expression so the optimizer can report a positioned
// diagnostic if constant folding proves the index out of bounds.
type ArrayIdxInstr struct {
	Type  types.Descriptor
	Dest  *Operand
	Array *Operand
	Index *Operand
	Pos   ast.Position
}

func (*ArrayIdxInstr) isInstruction() {}
func (i *ArrayIdxInstr) String() string {
	return fmt.Sprintf("ARRAY_IDX(%s) %s, %s, %s", i.Type, i.Dest, i.Array, i.Index)
}

// FuncInstr marks the start of a function body.
type FuncInstr struct {
	Name    string
	RetType types.Descriptor
	Params  []Param
}

func (*FuncInstr) isInstruction() {}
func (i *FuncInstr) String() string {
	parts := make([]string, len(i.Params))
	for j, p := range i.Params {
		parts[j] = fmt.Sprintf("(%s, %s)", p.Name, p.Type)
	}
	return fmt.Sprintf("FUNC (%s, %s, (%s))", i.Name, i.RetType, strings.Join(parts, ", "))
}

// EndFuncInstr marks the end of a function body.
type EndFuncInstr struct{ Name string }

func (*EndFuncInstr) isInstruction()   {}
func (i *EndFuncInstr) String() string { return fmt.Sprintf("ENDFUNC %s", i.Name) }

// IfInstr/EndIfInstr bracket the true branch of a conditional.
type IfInstr struct{ Cond *Operand }

func (*IfInstr) isInstruction()   {}
func (i *IfInstr) String() string { return fmt.Sprintf("IF %s", i.Cond) }

type EndIfInstr struct{ Cond *Operand }

func (*EndIfInstr) isInstruction()   {}
func (i *EndIfInstr) String() string { return fmt.Sprintf("ENDIF %s", i.Cond) }

// ElseInstr/EndElseInstr bracket the false branch of a conditional.
type ElseInstr struct{ Cond *Operand }

func (*ElseInstr) isInstruction()   {}
func (i *ElseInstr) String() string { return fmt.Sprintf("ELSE %s", i.Cond) }

type EndElseInstr struct{ Cond *Operand }

func (*EndElseInstr) isInstruction()   {}
func (i *EndElseInstr) String() string { return fmt.Sprintf("ENDELSE %s", i.Cond) }

// BeginLoopCondInstr marks the point a while loop re-evaluates its
// condition, before the condition expression's own code is emitted.
type BeginLoopCondInstr struct{}

func (*BeginLoopCondInstr) isInstruction()   {}
func (i *BeginLoopCondInstr) String() string { return "BEGINLOOPCOND" }

// WhileInstr/EndWhileInstr bracket a loop body.
type WhileInstr struct{ Cond *Operand }

func (*WhileInstr) isInstruction()   {}
func (i *WhileInstr) String() string { return fmt.Sprintf("WHILE %s", i.Cond) }

type EndWhileInstr struct{ Cond *Operand }

func (*EndWhileInstr) isInstruction()   {}
func (i *EndWhileInstr) String() string { return fmt.Sprintf("ENDWHILE %s", i.Cond) }

// RetInstr returns Src from the enclosing function.
type RetInstr struct{ Src *Operand }

func (*RetInstr) isInstruction()   {}
func (i *RetInstr) String() string { return fmt.Sprintf("RET %s", i.Src) }

// PrintArg is one argument of a PrintInstr: its operand and source type,
// the type the emitter needs to choose a printf conversion.
type PrintArg struct {
	Operand *Operand
	Type    types.Descriptor
}

// PrintInstr prints a comma-separated argument list.
type PrintInstr struct{ Args []PrintArg }

func (*PrintInstr) isInstruction() {}
func (i *PrintInstr) String() string {
	parts := make([]string, len(i.Args))
	for j, a := range i.Args {
		parts[j] = fmt.Sprintf("(%s, %s)", a.Operand, a.Type)
	}
	return fmt.Sprintf("PRINT (%s)", strings.Join(parts, ", "))
}
