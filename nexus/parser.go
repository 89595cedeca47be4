package nexus

import "fmt"

// Parser drives the lexer to completion into a token buffer, then descends
// the grammar, recording declarations in a flat symbol table as it goes.
// It never aborts: faults become Diagnostics and Parse hands back whatever
// tree it managed to build. A Parser is single-use and not safe for
// concurrent use; distinct instances are independent.
type Parser struct {
	lexer   *Lexer
	tokens  []Token
	current int
	diags   []Diagnostic
	symbols *SymbolTable
}

func New(source string) *Parser {
	return &Parser{
		lexer:   NewLexer(source),
		symbols: NewSymbolTable(),
	}
}

// Parse tokenizes the whole source and parses it. The returned root is a
// *Program, or nil when the program header itself was missing. Diagnostics
// and the symbol table remain available on the receiver afterwards.
func (p *Parser) Parse() Node {
	tok := p.lexer.NextToken()
	for tok.Type != tokenEOF {
		if tok.Type != tokenNewline {
			p.tokens = append(p.tokens, tok)
		}
		tok = p.lexer.NextToken()
	}
	p.tokens = append(p.tokens, tok)

	p.diags = append(p.diags, p.lexer.Diagnostics()...)

	program := p.parseProgram()
	if program == nil {
		return nil
	}
	return program
}

// Errors returns all diagnostics in production order, lexical ones first.
func (p *Parser) Errors() []Diagnostic {
	return p.diags
}

func (p *Parser) HasErrors() bool {
	return len(p.diags) > 0
}

func (p *Parser) SymbolTable() *SymbolTable {
	return p.symbols
}

// Tokens returns the token buffer: every non-NEWLINE token plus the final
// END_OF_FILE. It is empty before Parse runs.
func (p *Parser) Tokens() []Token {
	return p.tokens
}

// --- cursor helpers ---

func (p *Parser) peek() Token {
	if p.current < len(p.tokens) {
		return p.tokens[p.current]
	}
	return Token{Type: tokenEOF}
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a required token. When it is absent the parser records a
// diagnostic and continues as if the token had been present; the cursor
// does not move.
func (p *Parser) expect(tt TokenType, message string) {
	if p.check(tt) {
		p.advance()
		return
	}
	p.errorAt(p.peek(), CategoryParse, message)
}

func (p *Parser) errorAt(tok Token, cat Category, message string) {
	p.diags = append(p.diags, Diagnostic{
		Category: cat,
		Message:  message,
		Line:     tok.Pos.Line,
		Column:   tok.Pos.Column,
	})
}

// --- semantic hooks ---

func (p *Parser) declareIdentifier(name, typ string, tok Token) bool {
	if !p.symbols.Insert(name, typ, tok.Pos.Line, tok.Pos.Column) {
		p.errorAt(tok, CategorySemantic, fmt.Sprintf("Symbol '%s' already declared", name))
		return false
	}
	return true
}

func (p *Parser) validateIdentifier(name string, tok Token) {
	if !p.symbols.Exists(name) {
		p.errorAt(tok, CategorySemantic, fmt.Sprintf("Symbol '%s' not declared", name))
	}
}

// --- grammar ---

func (p *Parser) parseProgram() *Program {
	if !p.match(tokenMain, tokenNexus) {
		p.errorAt(p.peek(), CategoryParse, "Expected 'main' or 'nexus' keyword")
		return nil
	}

	program := &Program{Name: "main"}

	if !p.match(tokenLBrace) {
		p.errorAt(p.peek(), CategoryParse, "Expected '{' after 'main'")
		return nil
	}

	program.Declarations = p.parseDeclarations()
	program.Statements = p.parseStatements()

	p.expect(tokenRBrace, "Expected '}' at end of program")
	if !p.check(tokenEOF) {
		p.errorAt(p.peek(), CategoryParse, "Unexpected token after program end")
	}

	return program
}

func (p *Parser) parseDeclarations() []Node {
	var declarations []Node
	for p.check(tokenVar) || p.check(tokenShard) {
		if decl := p.parseDeclaration(); decl != nil {
			declarations = append(declarations, decl)
		}
	}
	return declarations
}

func (p *Parser) parseDeclaration() Node {
	if !p.match(tokenVar, tokenShard) {
		p.errorAt(p.peek(), CategoryParse, "Expected 'var' keyword")
		return nil
	}

	decl := &Declaration{}

	switch {
	case p.match(tokenInt, tokenCore):
		decl.DataType = "int"
	case p.match(tokenFloat, tokenFlux):
		decl.DataType = "float"
	case p.match(tokenBool, tokenSig):
		decl.DataType = "bool"
	case p.match(tokenString, tokenGlyph):
		decl.DataType = "string"
	default:
		p.errorAt(p.peek(), CategoryParse, "Expected type specifier")
		return nil
	}

	for {
		if !p.check(tokenIdentifier) {
			p.errorAt(p.peek(), CategoryParse, "Expected identifier")
			return nil
		}

		id := p.advance()
		decl.Identifiers = append(decl.Identifiers, id.Lexeme)
		inserted := p.declareIdentifier(id.Lexeme, decl.DataType, id)

		if p.match(tokenAssign) {
			init := p.parseExpression()
			if init == nil {
				p.errorAt(p.peek(), CategoryParse, "Expected expression after '='")
				return nil
			}
			decl.Initializers = append(decl.Initializers, init)
			if inserted {
				if sym, ok := p.symbols.Lookup(id.Lexeme); ok {
					sym.Initialized = true
				}
			}
		} else {
			decl.Initializers = append(decl.Initializers, nil)
		}

		if !p.match(tokenComma) {
			break
		}
	}

	p.expect(tokenSemicolon, "Expected ';' after declaration")
	return decl
}

func (p *Parser) parseStatements() []Node {
	var statements []Node
	for !p.check(tokenRBrace) && !p.check(tokenEOF) {
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func (p *Parser) parseStatement() Node {
	switch {
	case p.check(tokenVar) || p.check(tokenShard):
		return p.parseDeclaration()
	case p.check(tokenIdentifier):
		return p.parseAssignment()
	case p.match(tokenIf, tokenProbe):
		return p.parseIfStatement()
	case p.match(tokenWhile, tokenPulse):
		return p.parseWhileLoop()
	case p.match(tokenFor, tokenCycle):
		return p.parseForLoop()
	case p.match(tokenReturn):
		return p.parseReturnStatement()
	case p.match(tokenInput, tokenListen):
		return p.parseInputStatement()
	case p.match(tokenOutput, tokenBroadcast):
		return p.parseOutputStatement()
	}

	p.errorAt(p.peek(), CategoryParse, "Unexpected token in statement")
	p.advance()
	return nil
}

// parseAssignment assumes the caller has verified (or chosen to treat) the
// current token as the target identifier. The for-loop head reuses it, which
// is why a for initializer must be an assignment rather than a declaration.
func (p *Parser) parseAssignment() Node {
	id := p.advance()
	p.validateIdentifier(id.Lexeme, id)

	if !p.match(tokenAssign) {
		p.errorAt(p.peek(), CategoryParse, "Expected '=' in assignment")
		return nil
	}

	expr := p.parseExpression()
	p.expect(tokenSemicolon, "Expected ';' after assignment")

	return &Assignment{Identifier: id.Lexeme, Expression: expr}
}

func (p *Parser) parseIfStatement() Node {
	stmt := &IfStatement{}

	p.expect(tokenLParen, "Expected '(' after 'if'")
	stmt.Condition = p.parseExpression()
	p.expect(tokenRParen, "Expected ')' after condition")

	p.expect(tokenLBrace, "Expected '{' after if condition")
	stmt.ThenBranch = p.parseStatements()
	p.expect(tokenRBrace, "Expected '}' after if block")

	if p.match(tokenElse, tokenFallback) {
		p.expect(tokenLBrace, "Expected '{' after 'else'")
		stmt.ElseBranch = p.parseStatements()
		p.expect(tokenRBrace, "Expected '}' after else block")
	}

	return stmt
}

func (p *Parser) parseWhileLoop() Node {
	loop := &WhileLoop{}

	p.expect(tokenLParen, "Expected '(' after 'while'")
	loop.Condition = p.parseExpression()
	p.expect(tokenRParen, "Expected ')' after condition")

	p.expect(tokenLBrace, "Expected '{' after while condition")
	loop.Body = p.parseStatements()
	p.expect(tokenRBrace, "Expected '}' after while block")

	return loop
}

func (p *Parser) parseForLoop() Node {
	loop := &ForLoop{}

	p.expect(tokenLParen, "Expected '(' after 'for'")

	loop.Initialization = p.parseAssignment()
	loop.Condition = p.parseExpression()
	p.expect(tokenSemicolon, "Expected ';' after for condition")
	loop.Increment = p.parseExpression()

	p.expect(tokenRParen, "Expected ')' after for clauses")
	p.expect(tokenLBrace, "Expected '{' after for")
	loop.Body = p.parseStatements()
	p.expect(tokenRBrace, "Expected '}' after for block")

	return loop
}

func (p *Parser) parseReturnStatement() Node {
	expr := p.parseExpression()
	p.expect(tokenSemicolon, "Expected ';' after return")
	return &ReturnStatement{Expression: expr}
}

func (p *Parser) parseInputStatement() Node {
	if !p.check(tokenIdentifier) {
		p.errorAt(p.peek(), CategoryParse, "Expected identifier after 'input'")
		return nil
	}

	id := p.advance()
	p.validateIdentifier(id.Lexeme, id)
	p.expect(tokenSemicolon, "Expected ';' after input")

	return &FunctionCall{
		FunctionName: "input",
		Arguments:    []Node{&Identifier{Name: id.Lexeme}},
	}
}

func (p *Parser) parseOutputStatement() Node {
	expr := p.parseExpression()
	p.expect(tokenSemicolon, "Expected ';' after output")

	return &FunctionCall{
		FunctionName: "output",
		Arguments:    []Node{expr},
	}
}

// --- expressions, lowest precedence first; every level left-associative ---

func (p *Parser) parseExpression() Node {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() Node {
	left := p.parseLogicalAnd()
	for p.match(tokenLogicalOr, tokenOr, tokenEither) {
		left = &BinaryOp{Operation: "||", Left: left, Right: p.parseLogicalAnd()}
	}
	return left
}

func (p *Parser) parseLogicalAnd() Node {
	left := p.parseEquality()
	for p.match(tokenLogicalAnd, tokenAnd, tokenJoin) {
		left = &BinaryOp{Operation: "&&", Left: left, Right: p.parseEquality()}
	}
	return left
}

func (p *Parser) parseEquality() Node {
	left := p.parseComparison()
	for p.match(tokenEqual, tokenNotEqual) {
		op := "=="
		if p.previous().Type == tokenNotEqual {
			op = "!="
		}
		left = &BinaryOp{Operation: op, Left: left, Right: p.parseComparison()}
	}
	return left
}

func (p *Parser) parseComparison() Node {
	left := p.parseAddition()
	for p.match(tokenLess, tokenLessEqual, tokenGreater, tokenGreaterEqual) {
		left = &BinaryOp{Operation: p.previous().Lexeme, Left: left, Right: p.parseAddition()}
	}
	return left
}

func (p *Parser) parseAddition() Node {
	left := p.parseMultiplication()
	for p.match(tokenPlus, tokenMinus) {
		left = &BinaryOp{Operation: p.previous().Lexeme, Left: left, Right: p.parseMultiplication()}
	}
	return left
}

func (p *Parser) parseMultiplication() Node {
	left := p.parseUnary()
	for p.match(tokenMultiply, tokenDivide, tokenModulo, tokenPower) {
		left = &BinaryOp{Operation: p.previous().Lexeme, Left: left, Right: p.parseUnary()}
	}
	return left
}

func (p *Parser) parseUnary() Node {
	if p.match(tokenLogicalNot, tokenNot, tokenVoidNot, tokenMinus) {
		op := "!"
		if p.previous().Type == tokenMinus {
			op = "-"
		}
		return &UnaryOp{Operation: op, Operand: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() Node {
	switch {
	case p.match(tokenNumber):
		return &Literal{Value: p.previous().Lexeme, DataType: "int"}
	case p.match(tokenFloatNumber):
		return &Literal{Value: p.previous().Lexeme, DataType: "float"}
	case p.match(tokenStringLiteral):
		return &Literal{Value: p.previous().Lexeme, DataType: "string"}
	case p.match(tokenTrue):
		return &Literal{Value: "true", DataType: "bool"}
	case p.match(tokenFalse):
		return &Literal{Value: "false", DataType: "bool"}
	case p.match(tokenIdentifier):
		id := p.previous()
		p.validateIdentifier(id.Lexeme, id)
		return &Identifier{Name: id.Lexeme}
	case p.match(tokenLParen):
		expr := p.parseExpression()
		p.expect(tokenRParen, "Expected ')' after expression")
		return expr
	}

	p.errorAt(p.peek(), CategoryParse, "Unexpected token in expression")
	p.advance()
	return nil
}
