package syntax

import (
	"bufio"
	"errors"
	"io"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for C source files.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens (including the last) of
// their production, leaving the parser on the next token.  Errors are raised
// by panicking with a compile error which is caught at the parser's API
// boundary: parsing stops at the first error.
type Parser struct {
	// The lexer this parser is using to lex the source file.
	lexer *Lexer

	// The current token the parser is positioned on.
	tok *Token

	// The token immediately before the current token.
	lookbehind *Token
}

// NewParser creates a new parser reading from the given reader.
func NewParser(r *bufio.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse parses a complete translation unit from the reader.  If the source text
// is malformed, the lex or parse error is returned as a *report.CompileError.
func Parse(r io.Reader) (tu *ast.TranslationUnit, err error) {
	defer report.Catch(&err)

	p := NewParser(bufio.NewReader(r))
	p.next()

	return p.parseTranslationUnit(), nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		var cerr *report.CompileError
		if errors.As(err, &cerr) {
			panic(cerr)
		}

		panic(report.Raise(report.LexError, nil, "failed to read source text: %s", err))
	}

	p.lookbehind = p.tok
	p.tok = tok
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind and moves the
// parser forward.  It returns the matched token.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.reject(KindName(kind))
	}

	tok := p.tok
	p.next()
	return tok
}

// reject reports an unexpected token error on the current token.  `expected`
// describes what the parser was looking for.
func (p *Parser) reject(expected string) {
	panic(report.Raise(report.ParseError, p.tok.Span, "expected %s, found %s", expected, p.tok.describe()))
}

// error raises a parse error on the given span.
func (p *Parser) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(report.ParseError, span, msg, args...))
}
