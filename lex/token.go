package lex

// Token is what a lexer action returns: the terminal's symbol name. It
// indexes directly into parse.Table.Action, the same way a plain string
// indexes sly.yacc's ACTION dict — spec.md §6: "A token is any non-null,
// hashable value used to index ACTION." This module fixes that value's
// type to string, since every symbol in grammar.Grammar is already a
// string and a second, parallel token-identity type would buy nothing.
type Token = string

// End is the reserved end-of-input terminal substituted by a parser driver
// whenever a LexFunc signals exhaustion of input (returns "", nil).
const End = "$end"
