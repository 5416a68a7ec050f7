package errors

import (
	"fmt"

	"github.com/marcom97/pytoc/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating compiler
// errors with suggestions and notes attached.
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new error builder.
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span.
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error.
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the error.
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error.
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error.
func (b *SemanticErrorBuilder) Build() *CompilerError {
	e := b.err
	return &e
}

// Redeclaration reports that name was already declared in the innermost
// scope (or, for functions, already declared globally).
func Redeclaration(kind, name string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorRedeclaration, fmt.Sprintf("%s %q is already declared", kind, name), pos).
		WithLength(len(name)).
		WithNote("shadowing an outer-scope name is allowed; redeclaring within the same scope is not").
		Build()
}

// UndefinedVariable reports a reference to an unbound variable.
func UndefinedVariable(name string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable %q", name), pos).
		WithLength(len(name)).
		WithSuggestion("assign to this name before reading it").
		Build()
}

// UndefinedFunction reports a call to an unregistered function.
func UndefinedFunction(name string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorUndefinedFunction, fmt.Sprintf("undefined function %q", name), pos).
		WithLength(len(name)).
		WithSuggestion("declare the function before calling it, or check the spelling").
		Build()
}

// TypeMismatch reports a type disagreement between an expected and an
// actual type descriptor (both already rendered to strings by the caller).
func TypeMismatch(message string, expected, actual string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorTypeMismatch, message, pos).
		WithNote(fmt.Sprintf("expected %s, found %s", expected, actual)).
		Build()
}

// ArityMismatch reports a function call with the wrong number of arguments.
func ArityMismatch(name string, want, got int, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorArityMismatch,
		fmt.Sprintf("function %q expects %d argument(s) but was called with %d", name, want, got), pos).
		Build()
}

// NotAnArray reports indexing into a name whose type is not an array.
func NotAnArray(name string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorNotAnArray, fmt.Sprintf("%q is not an array", name), pos).
		WithLength(len(name)).
		Build()
}

// NonIntegerIndex reports an array index expression that is not a scalar int.
func NonIntegerIndex(exprText string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorNonIntegerIndex, fmt.Sprintf("%s is not an integer", exprText), pos).
		Build()
}

// ArrayDepthMismatch reports '+' applied to arrays of differing depth or
// element type.
func ArrayDepthMismatch(op string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorArrayDepthMismatch,
		fmt.Sprintf("%s is only valid for arrays of the same depth and element type", op), pos).
		Build()
}

// UnsupportedOperator reports an operator token the type checker has no
// rule for (spec.md's Open Question resolution for NEQ's sibling bug class:
// any future operator the parser accepts without a matching checker clause
// fails explicitly here instead of silently producing an untyped node).
func UnsupportedOperator(op string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorUnsupportedOperator, fmt.Sprintf("operator %q is not supported", op), pos).
		Build()
}

// NegativeIndex reports a constant-folded negative array index.
func NegativeIndex(arrayName string, index int, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorNegativeIndex,
		fmt.Sprintf("the array %q was accessed with a negative index of %d", arrayName, index), pos).
		Build()
}

// OutOfBounds reports a constant-folded out-of-range array index.
func OutOfBounds(arrayName string, index, size int, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorOutOfBounds,
		fmt.Sprintf("the array %q was accessed with an index of %d, but it has a size of %d", arrayName, index, size), pos).
		Build()
}

// SyntaxError reports a lexical or grammar error from the scanner/parser.
func SyntaxError(message string, pos ast.Position) *CompilerError {
	return NewSemanticError(ErrorSyntaxError, message, pos).Build()
}
