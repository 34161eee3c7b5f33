package syntax

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alexandercampbell/rust-cc/report"
)

// Lexer is responsible for tokenizing a source file.  It produces tokens
// lazily: each call to NextToken reads only as much input as the next token
// requires.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int

	// Whether only whitespace has been read since the last newline.
	// Preprocessor directives are only recognized at the start of a line.
	atLineStart bool
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:        file,
		tokBuff:     &strings.Builder{},
		atLineStart: true,
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.  Once the lexer has returned an EOF token,
// it will continue to return EOF tokens.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n':
			l.skip()
			l.atLineStart = true
		case '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '#':
			if err := l.skipDirective(); err != nil {
				return nil, err
			}
		case '/':
			if tok, err := l.lexCommentOrDiv(); tok != nil || err != nil {
				l.atLineStart = false
				return tok, err
			}
		default:
			l.atLineStart = false

			if isDecimalDigit(c) {
				return l.lexIntLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// Division operator is handled with comment logic.
	"%": TOK_MOD,

	"&":  TOK_BWAND,
	"|":  TOK_BWOR,
	"^":  TOK_BWXOR,
	"~":  TOK_COMPL,
	"<<": TOK_LSHIFT,
	">>": TOK_RSHIFT,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,

	"=": TOK_ASSIGN,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	";": TOK_SEMI,
	",": TOK_COMMA,
}

// lexPunctOrOper lexes a punctuation or operator symbol using longest match.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	c, _ := l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		return nil, report.Raise(report.LexError, l.getSpan(), "invalid character %s", strconv.QuoteRune(c))
	}

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"int":    TOK_INT,
	"void":   TOK_VOID,
	"return": TOK_RETURN,
	"sizeof": TOK_SIZEOF,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexIntLit lexes a decimal integer literal.  The literal must fit in an `int`
// once negated: the parser only accepts `2147483648` as the operand of unary
// minus.
func (l *Lexer) lexIntLit() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isDecimalDigit(c) {
			l.eat()
		} else if isFirstIdentChar(c) {
			// Consume the rest of the malformed literal so the error spans it.
			l.eat()
			for c, err = l.peek(); err == nil && (isFirstIdentChar(c) || isDecimalDigit(c)); c, err = l.peek() {
				l.eat()
			}

			return nil, report.Raise(report.LexError, l.getSpan(), "malformed integer literal `%s`", l.tokBuff.String())
		} else {
			break
		}
	}

	value := l.tokBuff.String()
	if len(value) > 1 && value[0] == '0' {
		return nil, report.Raise(report.LexError, l.getSpan(), "octal integer literals are not supported: `%s`", value)
	}

	if n, err := strconv.ParseInt(value, 10, 64); err != nil || n > minIntMagnitude {
		return nil, report.Raise(report.LexError, l.getSpan(), "integer literal `%s` is too large for type `int`", value)
	}

	return l.makeToken(TOK_INTLIT), nil
}

// minIntMagnitude is the magnitude of the most negative `int`.  It is the only
// literal larger than the largest `int` which can appear in a program.
const minIntMagnitude = -math.MinInt32

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.  If a comment is lexed,
// then no token is returned.
func (l *Lexer) lexCommentOrDiv() (*Token, error) {
	l.mark()
	l.eat()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch c {
	case '/':
		for ; err == nil && c != '\n' && c != -1; c, err = l.peek() {
			l.skip()
		}
	case '*':
		l.skip()

		for {
			c, err = l.skip()
			if err != nil {
				return nil, err
			} else if c == -1 {
				return nil, report.Raise(report.LexError, l.getStartSpan(2), "unterminated comment")
			}

			if c == '*' {
				c, err = l.peek()
				if err != nil {
					return nil, err
				}

				if c == '/' {
					l.skip()
					break
				}
			}
		}
	default:
		return l.makeToken(TOK_DIV), nil
	}

	l.tokBuff.Reset()
	return nil, err
}

// skipDirective skips a preprocessor directive.  The only directive accepted
// is `#include`: the builtins it would provide are recognized by name, so the
// included file is never read.  The directive must begin a line.
func (l *Lexer) skipDirective() error {
	l.mark()
	l.eat()

	if !l.atLineStart {
		return report.Raise(report.LexError, l.getSpan(), "invalid character '#'")
	}

	// Read the directive name, allowing whitespace after the `#`.
	c, err := l.peek()
	for ; err == nil && (c == ' ' || c == '\t'); c, err = l.peek() {
		l.eat()
	}

	for ; err == nil && isFirstIdentChar(c); c, err = l.peek() {
		l.eat()
	}

	if err != nil {
		return err
	}

	directive := strings.Join(strings.Fields(l.tokBuff.String()), "")
	if directive != "#include" {
		return report.Raise(report.LexError, l.getSpan(), "unsupported preprocessor directive `%s`", directive)
	}

	// Skip the rest of the line.
	for ; err == nil && c != '\n' && c != -1; c, err = l.peek() {
		l.skip()
	}

	l.tokBuff.Reset()
	return err
}

// -----------------------------------------------------------------------------

// mark marks the beginning of a token.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken creates a new token of the given kind from the contents of the
// token buffer and resets the token buffer.
func (l *Lexer) makeToken(kind int) *Token {
	tok := &Token{
		Kind:  kind,
		Value: l.tokBuff.String(),
		Span:  l.getSpan(),
	}

	l.tokBuff.Reset()
	return tok
}

// getSpan returns a span from the start of the current token to the lexer's
// current position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// getStartSpan returns a span of the given width beginning at the start of the
// current token.
func (l *Lexer) getStartSpan(width int) *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.startLine,
		EndCol:    l.startCol + width,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character.  Columns
// count runes: a tab is one column.
func (l *Lexer) updatePos(c rune) {
	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
