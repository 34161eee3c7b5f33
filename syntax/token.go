package syntax

import "github.com/alexandercampbell/rust-cc/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_INT = iota
	TOK_VOID
	TOK_RETURN
	TOK_SIZEOF

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_BWAND
	TOK_BWOR
	TOK_BWXOR
	TOK_COMPL
	TOK_LSHIFT
	TOK_RSHIFT

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_SEMI
	TOK_COMMA

	TOK_IDENT
	TOK_INTLIT

	TOK_EOF
)

// tokenNames is used to name token kinds in syntax errors.
var tokenNames = map[int]string{
	TOK_INT:    "`int`",
	TOK_VOID:   "`void`",
	TOK_RETURN: "`return`",
	TOK_SIZEOF: "`sizeof`",

	TOK_PLUS:  "`+`",
	TOK_MINUS: "`-`",
	TOK_STAR:  "`*`",
	TOK_DIV:   "`/`",
	TOK_MOD:   "`%`",

	TOK_BWAND:  "`&`",
	TOK_BWOR:   "`|`",
	TOK_BWXOR:  "`^`",
	TOK_COMPL:  "`~`",
	TOK_LSHIFT: "`<<`",
	TOK_RSHIFT: "`>>`",

	TOK_EQ:   "`==`",
	TOK_NEQ:  "`!=`",
	TOK_LT:   "`<`",
	TOK_GT:   "`>`",
	TOK_LTEQ: "`<=`",
	TOK_GTEQ: "`>=`",

	TOK_NOT:  "`!`",
	TOK_LAND: "`&&`",
	TOK_LOR:  "`||`",

	TOK_ASSIGN: "`=`",

	TOK_LPAREN: "`(`",
	TOK_RPAREN: "`)`",
	TOK_LBRACE: "`{`",
	TOK_RBRACE: "`}`",
	TOK_SEMI:   "`;`",
	TOK_COMMA:  "`,`",

	TOK_IDENT:  "identifier",
	TOK_INTLIT: "integer literal",

	TOK_EOF: "end of file",
}

// KindName returns the name of a token kind as it should appear in messages.
func KindName(kind int) string {
	return tokenNames[kind]
}

// describe returns a description of the token suitable for a syntax error.
func (t *Token) describe() string {
	switch t.Kind {
	case TOK_EOF:
		return "end of file"
	case TOK_IDENT, TOK_INTLIT:
		return tokenNames[t.Kind] + " `" + t.Value + "`"
	default:
		return tokenNames[t.Kind]
	}
}
