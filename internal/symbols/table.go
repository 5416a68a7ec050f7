// Package symbols implements the scoped symbol table described in
// spec.md §3/§4.1: a stack of scopes for variables, plus a separate global
// map of function signatures that outlives every scope pop.
package symbols

import (
	"github.com/marcom97/pytoc/internal/ast"
	pytocerrors "github.com/marcom97/pytoc/internal/errors"
	"github.com/marcom97/pytoc/internal/types"
)

// Signature is a function's parameter types and return type.
type Signature struct {
	ParamTypes []types.Descriptor
	ReturnType types.Descriptor
}

// Table is a stack of variable scopes plus a global function registry.
// Modeled as a vector of maps pushed/popped on block entry/exit, per
// spec.md's design note (a deliberate departure from the teacher's
// parent-pointer SymbolTable — see DESIGN.md).
type Table struct {
	scopes []map[string]types.Descriptor
	funcs  map[string]Signature
}

// New returns a table with a single (global) scope already pushed.
func New() *Table {
	return &Table{
		scopes: []map[string]types.Descriptor{make(map[string]types.Descriptor)},
		funcs:  make(map[string]Signature),
	}
}

// PushScope opens a new innermost scope.
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, make(map[string]types.Descriptor))
}

// PopScope closes the innermost scope. There must be at least one scope
// remaining beneath it; popping the last scope is a programming error.
func (t *Table) PopScope() {
	if len(t.scopes) <= 1 {
		panic("symbols: PopScope called with no enclosing scope left")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// DeclareVariable inserts name into the innermost scope. Returns a
// Redeclaration error if name is already present in that same scope;
// shadowing an outer scope's name is permitted.
func (t *Table) DeclareVariable(name string, typ types.Descriptor, pos ast.Position) *pytocerrors.CompilerError {
	innermost := t.scopes[len(t.scopes)-1]
	if _, exists := innermost[name]; exists {
		return pytocerrors.Redeclaration("variable", name, pos)
	}
	innermost[name] = typ
	return nil
}

// LookupVariable searches innermost to outermost and returns the type and
// whether it was found. The caller decides whether an unbound name is fatal.
func (t *Table) LookupVariable(name string) (types.Descriptor, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if typ, ok := t.scopes[i][name]; ok {
			return typ, true
		}
	}
	return types.Descriptor{}, false
}

// DeclareFunc inserts name into the global function registry. Returns a
// Redeclaration error on duplicate.
func (t *Table) DeclareFunc(name string, sig Signature, pos ast.Position) *pytocerrors.CompilerError {
	if _, exists := t.funcs[name]; exists {
		return pytocerrors.Redeclaration("function", name, pos)
	}
	t.funcs[name] = sig
	return nil
}

// LookupFunc returns the signature registered for name, or an
// UndefinedFunction error if none was declared.
func (t *Table) LookupFunc(name string, pos ast.Position) (Signature, *pytocerrors.CompilerError) {
	sig, ok := t.funcs[name]
	if !ok {
		return Signature{}, pytocerrors.UndefinedFunction(name, pos)
	}
	return sig, nil
}
