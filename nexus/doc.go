// Package nexus implements the front end for the Nexus toy language: a
// scanner, a recursive-descent parser, a flat symbol table, and the report
// types the tooling prints. The language has a C-family surface with two
// interchangeable keyword vocabularies — every reserved word has a canonical
// spelling (`main`, `var`, `if`, ...) and an alternate one (`nexus`, `shard`,
// `probe`, ...) that the parser treats identically.
//
//   - Programs are `main { decl* stmt* }`; declarations are typed
//     (`var int x = 1, y;`) and share a single flat namespace.
//   - Statements: assignment, if/else, while, C-style for, return, and the
//     `input`/`output` built-ins.
//   - Expressions use the usual precedence ladder from `||` down to unary
//     `!`/`-`, with `**` grouped with the multiplicative operators.
//
// Comments beginning with `%` run to end of line. Keywords are matched
// case-insensitively; identifiers are case-sensitive. The front end never
// stops at the first fault: lexical, syntax, and semantic findings are
// accumulated as Diagnostics and the parser always hands back a (possibly
// partial) tree.
package nexus
