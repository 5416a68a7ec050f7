package emit

import (
	"strings"

	"github.com/marcom97/pytoc/internal/ir"
)

// emitDecl introduces a new C local for n.Dest. Array-typed declarations
// choose between brace-init ("int xs[] = {1, 2};") and the deferred
// malloc/memcpy concatenation form depending on what produced the value.
func (e *Emitter) emitDecl(n *ir.DeclInstr) {
	if plan, ok := e.pendingConcat[n.Src]; ok {
		delete(e.pendingConcat, n.Src)
		e.realizeArrayConcat(plan, n.Dest.Name, true)
		return
	}

	value := e.convertOperand(n.Src)
	elemCType := cBaseType(n.Type.Base)

	if n.Type.ArrayDepth > 0 {
		e.line("%s %s%s = %s;", elemCType, n.Dest.Name, strings.Repeat("[]", n.Type.ArrayDepth), value)
		return
	}

	e.line("%s %s = %s;", elemCType, n.Dest.Name, value)
}

// emitAssign re-assigns an existing C local, or (when n.Dest is nil)
// evaluates n.Src purely for its side effects.
func (e *Emitter) emitAssign(n *ir.AssignInstr) {
	if n.Dest == nil {
		e.line("%s;", e.convertOperand(n.Src))
		return
	}

	if plan, ok := e.pendingConcat[n.Src]; ok {
		delete(e.pendingConcat, n.Src)
		e.realizeArrayConcat(plan, n.Dest.Name, false)
		return
	}

	value := e.convertOperand(n.Src)
	e.line("%s = %s;", n.Dest.Name, value)
}
