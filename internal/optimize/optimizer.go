// Package optimize implements the single-pass constant optimizer from
// spec.md §4.4: constant propagation and folding, plus dead-branch
// elimination of an if/else arm whose condition folds to a known bool.
// It mirrors the original source's forward, single-pass, stateful walk
// rather than a classic fixpoint dataflow analysis.
package optimize

import (
	"github.com/marcom97/pytoc/internal/errors"
	"github.com/marcom97/pytoc/internal/ir"
)

// binOps is the set of binary operators this pass knows how to fold.
// "!=" is included even though the original it was distilled from never
// wired it into its own fold table.
var binOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"and": true, "or": true,
}

var unaryOps = map[string]bool{"-": true, "not": true}

// Optimizer walks an instruction stream once, left to right, propagating
// constants through a name→value map and dropping the branch of any
// if/else whose condition is known at compile time.
type Optimizer struct {
	varToValue map[string]*ir.Operand

	// unknownContextDepth counts nested while-loop bodies and if/else
	// branches whose condition did not fold; inside one, propagation is
	// disabled because the loop/branch may run a variable number of times
	// (or not at all) before control reaches here again.
	unknownContextDepth int

	// foldableContextDepth counts nested if/else branches whose condition
	// DID fold to a constant; elimination stays armed until this count
	// drops back to zero.
	foldableContextDepth int

	// shouldEliminate is true while emitting code from inside a branch
	// that folded to "does not run".
	shouldEliminate bool
}

// Optimize runs constant folding and dead-branch elimination over instrs
// and returns the optimized stream. Folding an out-of-bounds or negative
// constant array index aborts with a CompilerError, per spec.md §4.4.
func Optimize(instrs []ir.Instruction) ([]ir.Instruction, *errors.CompilerError) {
	o := &Optimizer{varToValue: make(map[string]*ir.Operand)}

	out := make([]ir.Instruction, 0, len(instrs))
	for _, instr := range instrs {
		next, err := o.optimizeLine(instr)
		if err != nil {
			return nil, err
		}
		if next != nil {
			out = append(out, next)
		}
	}
	return out, nil
}

func isFoldable(o *ir.Operand) bool {
	switch o.Kind {
	case ir.OperandInt, ir.OperandBool, ir.OperandStr, ir.OperandArray:
		return true
	default:
		return false
	}
}

// foldOperand resolves operand to its known constant value, if any is
// tracked and we're not inside an unpredictable (unknown) context.
func (o *Optimizer) foldOperand(operand *ir.Operand) *ir.Operand {
	if o.unknownContextDepth > 0 {
		return operand
	}
	if operand.Kind == ir.OperandID {
		if v, ok := o.varToValue[operand.Name]; ok {
			return v
		}
	}
	return operand
}

func (o *Optimizer) optimizeLine(instr ir.Instruction) (ir.Instruction, *errors.CompilerError) {
	if o.shouldEliminate && !isIfElseMarker(instr) {
		return nil, nil
	}

	switch n := instr.(type) {
	case *ir.RetInstr:
		n.Src = o.foldOperand(n.Src)
		return n, nil
	case *ir.IfInstr:
		return o.optimizeIf(n.Cond, n, false)
	case *ir.EndIfInstr:
		return o.optimizeEndIf(n.Cond, n)
	case *ir.ElseInstr:
		return o.optimizeIf(n.Cond, n, true)
	case *ir.EndElseInstr:
		return o.optimizeEndIf(n.Cond, n)
	case *ir.BeginLoopCondInstr:
		o.unknownContextDepth++
		return n, nil
	case *ir.EndWhileInstr:
		o.unknownContextDepth--
		return n, nil
	case *ir.PrintInstr:
		for i := range n.Args {
			n.Args[i].Operand = o.foldOperand(n.Args[i].Operand)
		}
		return n, nil
	case *ir.EndFuncInstr:
		o.varToValue = make(map[string]*ir.Operand)
		return n, nil

	case *ir.DeclInstr:
		o.optimizeAssign(n.Dest, &n.Src)
		return n, nil
	case *ir.AssignInstr:
		o.optimizeAssign(n.Dest, &n.Src)
		return n, nil

	case *ir.BinOpInstr:
		return o.optimizeBinOp(n)
	case *ir.UnaryOpInstr:
		return o.optimizeUnaryOp(n)
	case *ir.CallInstr:
		if o.unknownContextDepth > 0 {
			return n, nil
		}
		for i := range n.Args {
			n.Args[i] = o.foldOperand(n.Args[i])
		}
		return n, nil
	case *ir.ArrayIdxInstr:
		return o.optimizeArrayIdx(n)

	default:
		return instr, nil
	}
}

func isIfElseMarker(instr ir.Instruction) bool {
	switch instr.(type) {
	case *ir.IfInstr, *ir.EndIfInstr, *ir.ElseInstr, *ir.EndElseInstr:
		return true
	default:
		return false
	}
}

// optimizeAssign handles DECL and ASSIGN uniformly: fold the source, and
// if the destination now has a known constant value, track it so later
// reads of that name can be folded too. An ASSIGN with a nil dest (a
// discarded expression statement) simply folds its source.
func (o *Optimizer) optimizeAssign(dest *ir.Operand, src **ir.Operand) {
	if o.unknownContextDepth > 0 {
		if dest != nil {
			delete(o.varToValue, dest.Name)
		}
		return
	}

	value := o.foldOperand(*src)
	*src = value
	if dest != nil && isFoldable(value) {
		o.varToValue[dest.Name] = value
	} else if dest != nil {
		delete(o.varToValue, dest.Name)
	}
}

func (o *Optimizer) optimizeBinOp(n *ir.BinOpInstr) (ir.Instruction, *errors.CompilerError) {
	if o.unknownContextDepth > 0 {
		delete(o.varToValue, n.Dest.Name)
		return n, nil
	}
	if !binOps[n.Op] {
		return n, nil
	}

	s1 := o.foldOperand(n.Left)
	s2 := o.foldOperand(n.Right)
	if !isFoldable(s1) || !isFoldable(s2) {
		n.Left, n.Right = s1, s2
		return n, nil
	}

	result := foldBinOp(n.Op, s1, s2)
	*n.Dest = *result
	return nil, nil
}

func (o *Optimizer) optimizeUnaryOp(n *ir.UnaryOpInstr) (ir.Instruction, *errors.CompilerError) {
	if o.unknownContextDepth > 0 {
		delete(o.varToValue, n.Dest.Name)
		return n, nil
	}
	if !unaryOps[n.Op] {
		return n, nil
	}

	expr := o.foldOperand(n.Src)
	if !isFoldable(expr) {
		n.Src = expr
		return n, nil
	}

	result := foldUnaryOp(n.Op, expr)
	*n.Dest = *result
	return nil, nil
}

func (o *Optimizer) optimizeArrayIdx(n *ir.ArrayIdxInstr) (ir.Instruction, *errors.CompilerError) {
	if o.unknownContextDepth > 0 {
		delete(o.varToValue, n.Dest.Name)
		return n, nil
	}

	array := o.foldOperand(n.Array)
	idx := o.foldOperand(n.Index)

	if !isFoldable(idx) {
		return n, nil
	}
	n.Index = idx

	if idx.Int < 0 {
		return nil, errors.NegativeIndex(n.Array.Name, idx.Int, n.Pos)
	}

	if !isFoldable(array) {
		return n, nil
	}
	if idx.Int >= len(array.Elements) {
		return nil, errors.OutOfBounds(n.Array.Name, idx.Int, len(array.Elements), n.Pos)
	}

	result := array.Elements[idx.Int]
	if !isFoldable(result) {
		return n, nil
	}
	*n.Dest = *result
	return nil, nil
}

// optimizeIf handles both IF and ELSE markers (isElse distinguishes them):
// fold the condition; if it's still unknown, enter an unknown context (and
// drop the marker if we're already eliminating); if it's known, enter a
// foldable context and start eliminating the branch if it won't run.
func (o *Optimizer) optimizeIf(cond *ir.Operand, marker ir.Instruction, isElse bool) (ir.Instruction, *errors.CompilerError) {
	folded := o.foldOperand(cond)
	setMarkerCond(marker, folded)

	if !isFoldable(folded) {
		o.unknownContextDepth++
		if o.shouldEliminate {
			return nil, nil
		}
		return marker, nil
	}

	o.foldableContextDepth++
	real := folded.Bool
	if isElse {
		real = !real
	}
	if !real {
		o.shouldEliminate = true
	}
	return nil, nil
}

func (o *Optimizer) optimizeEndIf(cond *ir.Operand, marker ir.Instruction) (ir.Instruction, *errors.CompilerError) {
	folded := o.foldOperand(cond)
	setMarkerCond(marker, folded)

	if !isFoldable(folded) {
		o.unknownContextDepth--
		if o.shouldEliminate {
			return nil, nil
		}
		return marker, nil
	}

	o.foldableContextDepth--
	if o.foldableContextDepth == 0 {
		o.shouldEliminate = false
	}
	return nil, nil
}

func setMarkerCond(marker ir.Instruction, cond *ir.Operand) {
	switch m := marker.(type) {
	case *ir.IfInstr:
		m.Cond = cond
	case *ir.EndIfInstr:
		m.Cond = cond
	case *ir.ElseInstr:
		m.Cond = cond
	case *ir.EndElseInstr:
		m.Cond = cond
	}
}
