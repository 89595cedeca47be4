package nexus

// TokenType identifies the lexical category of a token. The string value is
// the category name used in reports.
type TokenType string

const (
	// Canonical keywords.
	tokenFunc     TokenType = "FUNC"
	tokenVar      TokenType = "VAR"
	tokenConst    TokenType = "CONST"
	tokenReturn   TokenType = "RETURN"
	tokenIf       TokenType = "IF"
	tokenElse     TokenType = "ELSE"
	tokenWhile    TokenType = "WHILE"
	tokenFor      TokenType = "FOR"
	tokenDo       TokenType = "DO"
	tokenBreak    TokenType = "BREAK"
	tokenContinue TokenType = "CONTINUE"
	tokenSwitch   TokenType = "SWITCH"
	tokenCase     TokenType = "CASE"
	tokenDefault  TokenType = "DEFAULT"
	tokenInput    TokenType = "INPUT"
	tokenOutput   TokenType = "OUTPUT"
	tokenInt      TokenType = "INT"
	tokenFloat    TokenType = "FLOAT"
	tokenBool     TokenType = "BOOL"
	tokenString   TokenType = "STRING"
	tokenTrue     TokenType = "TRUE"
	tokenFalse    TokenType = "FALSE"
	tokenAnd      TokenType = "AND"
	tokenOr       TokenType = "OR"
	tokenNot      TokenType = "NOT"
	tokenMain     TokenType = "MAIN"
	tokenEnd      TokenType = "END"

	// Alternate lexicon. Every role above that the grammar uses, except
	// return, true and false, has a second spelling; the lexer keeps the
	// kinds distinct and the parser folds them.
	tokenNexus     TokenType = "NEXUS"
	tokenShard     TokenType = "SHARD"
	tokenCore      TokenType = "CORE"
	tokenFlux      TokenType = "FLUX"
	tokenSig       TokenType = "SIG"
	tokenGlyph     TokenType = "GLYPH"
	tokenProbe     TokenType = "PROBE"
	tokenFallback  TokenType = "FALLBACK"
	tokenPulse     TokenType = "PULSE"
	tokenCycle     TokenType = "CYCLE"
	tokenListen    TokenType = "LISTEN"
	tokenBroadcast TokenType = "BROADCAST"
	tokenJoin      TokenType = "JOIN"
	tokenEither    TokenType = "EITHER"
	tokenVoidNot   TokenType = "VOID_NOT"

	// Identifiers and literals.
	tokenIdentifier    TokenType = "IDENTIFIER"
	tokenNumber        TokenType = "NUMBER"
	tokenFloatNumber   TokenType = "FLOAT_NUMBER"
	tokenStringLiteral TokenType = "STRING_LITERAL"

	// Operators.
	tokenPlus         TokenType = "PLUS"
	tokenMinus        TokenType = "MINUS"
	tokenMultiply     TokenType = "MULTIPLY"
	tokenDivide       TokenType = "DIVIDE"
	tokenModulo       TokenType = "MODULO"
	tokenPower        TokenType = "POWER"
	tokenAssign       TokenType = "ASSIGN"
	tokenEqual        TokenType = "EQUAL"
	tokenNotEqual     TokenType = "NOT_EQUAL"
	tokenLess         TokenType = "LESS"
	tokenLessEqual    TokenType = "LESS_EQUAL"
	tokenGreater      TokenType = "GREATER"
	tokenGreaterEqual TokenType = "GREATER_EQUAL"
	tokenLogicalAnd   TokenType = "LOGICAL_AND"
	tokenLogicalOr    TokenType = "LOGICAL_OR"
	tokenLogicalNot   TokenType = "LOGICAL_NOT"
	tokenBitwiseAnd   TokenType = "BITWISE_AND"
	tokenBitwiseOr    TokenType = "BITWISE_OR"
	tokenBitwiseXor   TokenType = "BITWISE_XOR"
	tokenLeftShift    TokenType = "LEFT_SHIFT"
	tokenRightShift   TokenType = "RIGHT_SHIFT"
	tokenIncrement    TokenType = "INCREMENT"
	tokenDecrement    TokenType = "DECREMENT"

	// Punctuation.
	tokenLParen    TokenType = "LPAREN"
	tokenRParen    TokenType = "RPAREN"
	tokenLBrace    TokenType = "LBRACE"
	tokenRBrace    TokenType = "RBRACE"
	tokenLBracket  TokenType = "LBRACKET"
	tokenRBracket  TokenType = "RBRACKET"
	tokenSemicolon TokenType = "SEMICOLON"
	tokenComma     TokenType = "COMMA"
	tokenDot       TokenType = "DOT"
	tokenColon     TokenType = "COLON"
	tokenArrow     TokenType = "ARROW"
	tokenQuestion  TokenType = "QUESTION"

	// Service kinds.
	tokenEOF     TokenType = "END_OF_FILE"
	tokenNewline TokenType = "NEWLINE"
	tokenError   TokenType = "ERROR_TOKEN"
)

// Token captures lexical information for the parser. Lexeme is the exact
// source slice for identifiers, keywords (original casing kept), numbers,
// and strings (decoded, for strings), and the canonical spelling for
// operators and punctuation.
type Token struct {
	Type   TokenType
	Lexeme string
	Pos    Position
}

// Position is a 1-based line/column pair pointing at the first character of
// a lexeme.
type Position struct {
	Line   int
	Column int
}
