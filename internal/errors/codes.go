package errors

// Error codes for the PyToC compiler.
//
// Error code ranges:
// E0001-E0099: name resolution, symbol table, and type checker errors
// E0200-E0299: optimizer errors (constant folding / dead branch elimination)
// E0300-E0399: parser/lexer errors (external collaborator, reported uniformly)

const (
	// E0001: a name was declared twice in the same scope, or a function
	// was declared twice at global scope.
	ErrorRedeclaration = "E0001"

	// E0002: reference to a variable unbound in any reachable scope.
	ErrorUndefinedVariable = "E0002"

	// E0003: call to a function with no registered signature.
	ErrorUndefinedFunction = "E0003"

	// E0004: operand/argument/return/assignment type disagreement, or an
	// operator applied to a disallowed type.
	ErrorTypeMismatch = "E0004"

	// E0005: function call argument count does not match the declaration.
	ErrorArityMismatch = "E0005"

	// E0006: indexing expression applied to a non-array-typed name.
	ErrorNotAnArray = "E0006"

	// E0007: array index expression is not a scalar int.
	ErrorNonIntegerIndex = "E0007"

	// E0008: '+' applied to arrays of differing depth or element type.
	ErrorArrayDepthMismatch = "E0008"

	// E0009: a binary/unary operator token with no type-checker rule.
	ErrorUnsupportedOperator = "E0009"

	// E0200: the optimizer folded a constant array index that is negative.
	ErrorNegativeIndex = "E0200"

	// E0201: the optimizer folded a constant array index past the end of
	// a constant array.
	ErrorOutOfBounds = "E0201"

	// E0300: a lexical or grammar error surfaced by the scanner/parser.
	ErrorSyntaxError = "E0300"
)
