package parser

import (
	"github.com/marcom97/pytoc/internal/ast"
	pytocerrors "github.com/marcom97/pytoc/internal/errors"
)

// Parser is a recursive-descent parser over a flat token stream, with a
// precedence-climbing expression parser (mirroring the teacher's Pratt
// parser shape) standing in for the original grammar's yacc precedence
// table.
type Parser struct {
	tokens []Token
	pos    int
}

// precedence mirrors SimplePythonParser.py's `precedence` table, lowest
// binding first.
var binOpPrecedence = map[TokenType]int{
	OR:        1,
	AND:       2,
	EQOP:      3,
	NEQ:       3,
	LESS:      4,
	LESSEQ:    4,
	GREATER:   4,
	GREATEREQ: 4,
	MOD:       4,
	PLUS:      5,
	MINUS:     5,
	TIMES:     6,
	DIVIDE:    6,
}

var binOpLexeme = map[TokenType]string{
	OR: "or", AND: "and", EQOP: "==", NEQ: "!=",
	LESS: "<", LESSEQ: "<=", GREATER: ">", GREATEREQ: ">=", MOD: "%",
	PLUS: "+", MINUS: "-", TIMES: "*", DIVIDE: "/",
}

// Parse scans and parses source into a *ast.Program.
func Parse(filename, source string) (*ast.Program, *pytocerrors.CompilerError) {
	tokens, scanErrs := NewScanner(filename, source).ScanTokens()
	if len(scanErrs) > 0 {
		e := scanErrs[0]
		return nil, pytocerrors.SyntaxError(e.Message, toAstPos(e.Pos))
	}
	p := &Parser{tokens: tokens}
	return p.parseProgram()
}

func toAstPos(p Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// at stamps a freshly-built node with its source position and returns it
// unchanged, so every parse function can wrap a literal in place.
func at[T ast.Node](n T, pos ast.Position) T {
	n.SetPos(pos)
	return n
}

func (p *Parser) peek() Token      { return p.tokens[p.pos] }
func (p *Parser) previous() Token  { return p.tokens[p.pos-1] }
func (p *Parser) isAtEnd() bool    { return p.peek().Type == EOF }
func (p *Parser) check(t TokenType) bool {
	if p.isAtEnd() {
		return t == EOF
	}
	return p.peek().Type == t
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(t TokenType, msg string) (Token, *pytocerrors.CompilerError) {
	if p.check(t) {
		return p.advance(), nil
	}
	return Token{}, pytocerrors.SyntaxError(msg+": got "+p.peek().String(), toAstPos(p.peek().Pos))
}

// skipBlankLines consumes stray NEWLINE tokens between statements, the way
// the original grammar's `stmts_or_empty` production tolerates them.
func (p *Parser) skipBlankLines() {
	for p.check(NEWLINE) {
		p.advance()
	}
}

func (p *Parser) parseProgram() (*ast.Program, *pytocerrors.CompilerError) {
	p.skipBlankLines()
	var funcs []*ast.MethodDecl
	var mainFunc *ast.MethodDecl

	for !p.isAtEnd() {
		pos := toAstPos(p.peek().Pos)
		if _, err := p.expect(DEF, "expected 'def'"); err != nil {
			return nil, err
		}
		if p.check(MAIN) {
			p.advance()
			fn, err := p.parseMainFuncRest(pos)
			if err != nil {
				return nil, err
			}
			mainFunc = fn
		} else {
			fn, err := p.parseFuncRest(pos)
			if err != nil {
				return nil, err
			}
			funcs = append(funcs, fn)
		}
		p.skipBlankLines()
	}

	if mainFunc == nil {
		return nil, pytocerrors.SyntaxError("program has no main function", ast.Position{Filename: ""})
	}
	prog := &ast.Program{MainFunc: mainFunc, Funcs: funcs}
	return prog, nil
}

func (p *Parser) parseMainFuncRest(pos ast.Position) (*ast.MethodDecl, *pytocerrors.CompilerError) {
	if _, err := p.expect(LPAREN, "expected '('"); err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE, "expected newline"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	retType := &ast.TypeExpr{Name: "int"}
	return at(&ast.MethodDecl{Name: "main", RetType: retType, Params: &ast.ParamList{}, Body: body}, pos), nil
}

func (p *Parser) parseFuncRest(pos ast.Position) (*ast.MethodDecl, *pytocerrors.CompilerError) {
	name, err := p.expect(ID, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "expected '('"); err != nil {
		return nil, err
	}
	params, err := p.parseFormalsOrEmpty()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(ARROW, "expected '->'"); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE, "expected newline"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return at(&ast.MethodDecl{Name: name.Lexeme, RetType: retType, Params: &ast.ParamList{Params: params}, Body: body}, pos), nil
}

// parseFormalsOrEmpty handles the zero-parameter case directly, unlike the
// original grammar's unreachable `len(p) == 1` branch in p_formals_or_empty.
func (p *Parser) parseFormalsOrEmpty() ([]*ast.Formal, *pytocerrors.CompilerError) {
	if p.check(RPAREN) {
		return nil, nil
	}
	var formals []*ast.Formal
	for {
		f, err := p.parseFormal()
		if err != nil {
			return nil, err
		}
		formals = append(formals, f)
		if !p.match(COMMA) {
			break
		}
	}
	return formals, nil
}

func (p *Parser) parseFormal() (*ast.Formal, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	name, err := p.expect(ID, "expected parameter name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':'"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return at(&ast.Formal{Name: name.Lexeme, Type: typ}, pos), nil
}

// parseType parses a base type followed by zero or more "[]" array markers.
// The original grammar has no array-typed formal/return syntax; this
// extension is harmless surface area that lets SPEC_FULL's array features
// reach function signatures too.
func (p *Parser) parseType() (*ast.TypeExpr, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	var base string
	switch {
	case p.match(INT):
		base = "int"
	case p.match(BOOLEAN):
		base = "bool"
	case p.match(STRING):
		base = "str"
	default:
		return nil, pytocerrors.SyntaxError("expected a type", pos)
	}
	depth := 0
	for p.check(LBRACK) && p.peekAhead(1).Type == RBRACK {
		p.advance()
		p.advance()
		depth++
	}
	return at(&ast.TypeExpr{Name: base, ArrDepth: depth}, pos), nil
}

func (p *Parser) peekAhead(n int) Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) parseBlock() (*ast.StmtList, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	if _, err := p.expect(INDENT, "expected an indented block"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.check(DEDENT) && !p.isAtEnd() {
		p.skipBlankLines()
		if p.check(DEDENT) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(DEDENT, "expected a dedent to close the block"); err != nil {
		return nil, err
	}
	return at(&ast.StmtList{Stmts: stmts}, pos), nil
}

func (p *Parser) parseStatement() (ast.Stmt, *pytocerrors.CompilerError) {
	switch {
	case p.check(IF):
		return p.parseIfStmt()
	case p.check(WHILE):
		return p.parseWhileStmt()
	default:
		stmt, err := p.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(NEWLINE, "expected newline after statement"); err != nil {
			return nil, err
		}
		return stmt, nil
	}
}

func (p *Parser) parseSimpleStmt() (ast.Stmt, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	switch {
	case p.check(PRINT):
		return p.parsePrintStmt(pos)
	case p.check(RETURN):
		return p.parseRetStmt(pos)
	case p.check(ID) && p.peekAhead(1).Type == EQ:
		return p.parseAssignStmt(pos)
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return at(&ast.ExprStmt{Expr: expr}, pos), nil
	}
}

func (p *Parser) parseAssignStmt(pos ast.Position) (ast.Stmt, *pytocerrors.CompilerError) {
	name := p.advance()
	p.advance() // '='
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return at(&ast.AssignStmt{Name: name.Lexeme, Expr: expr}, pos), nil
}

func (p *Parser) parsePrintStmt(pos ast.Position) (ast.Stmt, *pytocerrors.CompilerError) {
	p.advance() // 'print'
	if _, err := p.expect(LPAREN, "expected '(' after print"); err != nil {
		return nil, err
	}
	args, err := p.parseArgsList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	return at(&ast.PrintStmt{Args: args}, pos), nil
}

func (p *Parser) parseRetStmt(pos ast.Position) (ast.Stmt, *pytocerrors.CompilerError) {
	p.advance() // 'return'
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return at(&ast.RetStmt{Expr: expr}, pos), nil
}

func (p *Parser) parseArgsList() ([]ast.Expr, *pytocerrors.CompilerError) {
	if p.check(RPAREN) {
		return nil, nil
	}
	var args []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.match(COMMA) {
			break
		}
	}
	return args, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	p.advance() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE, "expected newline"); err != nil {
		return nil, err
	}
	trueBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var falseBody *ast.StmtList
	if p.check(ELSE) {
		p.advance()
		if _, err := p.expect(COLON, "expected ':'"); err != nil {
			return nil, err
		}
		if _, err := p.expect(NEWLINE, "expected newline"); err != nil {
			return nil, err
		}
		falseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return at(&ast.IfStmt{Cond: cond, TrueBody: trueBody, FalseBody: falseBody}, pos), nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	p.advance() // 'while'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE, "expected newline"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return at(&ast.WhileStmt{Cond: cond, Body: body}, pos), nil
}

// parseExpr is the entry point of the precedence-climbing expression
// parser, mirroring the teacher's Pratt parser at the top level.
func (p *Parser) parseExpr() (ast.Expr, *pytocerrors.CompilerError) {
	return p.parseBinOp(0)
}

func (p *Parser) parseBinOp(minPrec int) (ast.Expr, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binOpPrecedence[p.peek().Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseBinOp(prec + 1)
		if err != nil {
			return nil, err
		}
		left = at(&ast.BinOp{Op: binOpLexeme[opTok.Type], Left: left, Right: right}, pos)
	}
}

func (p *Parser) parseUnary() (ast.Expr, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	if p.check(MINUS) || p.check(NOT) {
		opTok := p.advance()
		opLexeme := "-"
		if opTok.Type == NOT {
			opLexeme = "not"
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return at(&ast.UnaryOp{Op: opLexeme, Expr: expr}, pos), nil
	}
	return p.parsePostfix()
}

// parsePostfix handles array indexing (ID '[' expr ']') and function calls
// (ID '(' args ')'), both anchored on a leading identifier per the original
// grammar, before falling back to a primary expression.
func (p *Parser) parsePostfix() (ast.Expr, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	if p.check(ID) {
		switch p.peekAhead(1).Type {
		case LBRACK:
			name := p.advance()
			p.advance() // '['
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACK, "expected ']'"); err != nil {
				return nil, err
			}
			return at(&ast.ArrayIndexing{ArrayName: name.Lexeme, Index: index}, pos), nil
		case LPAREN:
			name := p.advance()
			p.advance() // '('
			args, err := p.parseArgsList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
				return nil, err
			}
			return at(&ast.FunctionCall{Name: name.Lexeme, Args: args}, pos), nil
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, *pytocerrors.CompilerError) {
	tok := p.peek()
	pos := toAstPos(tok.Pos)
	switch tok.Type {
	case DECIMAL:
		p.advance()
		return at(&ast.Constant{Kind: ast.ConstInt, Int: tok.Int}, pos), nil
	case STRINGLIT:
		p.advance()
		return at(&ast.Constant{Kind: ast.ConstStr, Str: tok.Str}, pos), nil
	case TRUE:
		p.advance()
		return at(&ast.Constant{Kind: ast.ConstBool, Bool: true}, pos), nil
	case FALSE:
		p.advance()
		return at(&ast.Constant{Kind: ast.ConstBool, Bool: false}, pos), nil
	case ID:
		p.advance()
		return at(&ast.Constant{Kind: ast.ConstID, Name: tok.Lexeme}, pos), nil
	case LPAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case LBRACK:
		return p.parseArrayLiteral()
	default:
		return nil, pytocerrors.SyntaxError("expected an expression, got "+tok.String(), toAstPos(tok.Pos))
	}
}

func (p *Parser) parseArrayLiteral() (ast.Expr, *pytocerrors.CompilerError) {
	pos := toAstPos(p.peek().Pos)
	p.advance() // '['
	if p.match(RBRACK) {
		return at(&ast.Array{}, pos), nil
	}
	var elems []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RBRACK, "expected ']'"); err != nil {
		return nil, err
	}
	return at(&ast.Array{Elements: elems}, pos), nil
}
