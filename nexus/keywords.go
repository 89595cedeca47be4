package nexus

import "strings"

// keywords maps every reserved spelling, canonical and alternate, to its
// token kind. Keys are lowercase; lookupIdent lowercases before the lookup,
// so matching is case-insensitive. Several
// reserved words (func, const, do, break, ...) are recognized here even
// though the grammar never consumes them.
var keywords = map[string]TokenType{
	"func":     tokenFunc,
	"var":      tokenVar,
	"const":    tokenConst,
	"return":   tokenReturn,
	"if":       tokenIf,
	"else":     tokenElse,
	"while":    tokenWhile,
	"for":      tokenFor,
	"do":       tokenDo,
	"break":    tokenBreak,
	"continue": tokenContinue,
	"switch":   tokenSwitch,
	"case":     tokenCase,
	"default":  tokenDefault,
	"input":    tokenInput,
	"output":   tokenOutput,
	"int":      tokenInt,
	"float":    tokenFloat,
	"bool":     tokenBool,
	"string":   tokenString,
	"true":     tokenTrue,
	"false":    tokenFalse,
	"and":      tokenAnd,
	"or":       tokenOr,
	"not":      tokenNot,
	"main":     tokenMain,
	"end":      tokenEnd,

	"nexus":     tokenNexus,
	"shard":     tokenShard,
	"core":      tokenCore,
	"flux":      tokenFlux,
	"sig":       tokenSig,
	"glyph":     tokenGlyph,
	"probe":     tokenProbe,
	"fallback":  tokenFallback,
	"pulse":     tokenPulse,
	"cycle":     tokenCycle,
	"listen":    tokenListen,
	"broadcast": tokenBroadcast,
	"join":      tokenJoin,
	"either":    tokenEither,
	"void":      tokenVoidNot,
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[strings.ToLower(ident)]; ok {
		return tt
	}
	return tokenIdentifier
}
