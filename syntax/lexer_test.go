package syntax

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/alexandercampbell/rust-cc/report"
)

func lexAll(t *testing.T, src string) ([]*Token, error) {
	t.Helper()

	l := NewLexer(bufio.NewReader(strings.NewReader(src)))

	var toks []*Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks, nil
		}
	}
}

func TestLexTokens(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []int
		vals  []string
	}{
		{
			name:  "keywords and identifiers",
			src:   "int void return sizeof integer _x1",
			kinds: []int{TOK_INT, TOK_VOID, TOK_RETURN, TOK_SIZEOF, TOK_IDENT, TOK_IDENT, TOK_EOF},
			vals:  []string{"int", "void", "return", "sizeof", "integer", "_x1", ""},
		},
		{
			name:  "longest match operators",
			src:   "<<= >>= == != && || ! = & |",
			kinds: []int{TOK_LSHIFT, TOK_ASSIGN, TOK_RSHIFT, TOK_ASSIGN, TOK_EQ, TOK_NEQ, TOK_LAND, TOK_LOR, TOK_NOT, TOK_ASSIGN, TOK_BWAND, TOK_BWOR, TOK_EOF},
		},
		{
			name:  "comments are skipped",
			src:   "a /* b\n c */ / // d\n e",
			kinds: []int{TOK_IDENT, TOK_DIV, TOK_IDENT, TOK_EOF},
			vals:  []string{"a", "/", "e", ""},
		},
		{
			name:  "integer literals",
			src:   "0 7 2147483647",
			kinds: []int{TOK_INTLIT, TOK_INTLIT, TOK_INTLIT, TOK_EOF},
			vals:  []string{"0", "7", "2147483647", ""},
		},
		{
			name:  "include directives are skipped",
			src:   "#include \"subc-builtins.h\"\n  # include <stdio.h>\nint",
			kinds: []int{TOK_INT, TOK_EOF},
		},
		{
			name:  "punctuation",
			src:   "f(a, b) { ; } ~x % y ^ z",
			kinds: []int{TOK_IDENT, TOK_LPAREN, TOK_IDENT, TOK_COMMA, TOK_IDENT, TOK_RPAREN, TOK_LBRACE, TOK_SEMI, TOK_RBRACE, TOK_COMPL, TOK_IDENT, TOK_MOD, TOK_IDENT, TOK_BWXOR, TOK_IDENT, TOK_EOF},
		},
		{
			name:  "empty input",
			src:   "",
			kinds: []int{TOK_EOF},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toks, err := lexAll(t, test.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(toks) != len(test.kinds) {
				t.Fatalf("got %d tokens, want %d", len(toks), len(test.kinds))
			}

			for i, tok := range toks {
				if tok.Kind != test.kinds[i] {
					t.Errorf("token %d: got %s, want %s", i, KindName(tok.Kind), KindName(test.kinds[i]))
				}

				if test.vals != nil && tok.Value != test.vals[i] {
					t.Errorf("token %d: got value %q, want %q", i, tok.Value, test.vals[i])
				}
			}
		})
	}
}

func TestLexSpans(t *testing.T) {
	toks, err := lexAll(t, "int main\n\t  x = 42;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// x is on the second line after a tab and two spaces: a tab is one column.
	want := []report.TextSpan{
		{StartLine: 0, StartCol: 0, EndLine: 0, EndCol: 3},
		{StartLine: 0, StartCol: 4, EndLine: 0, EndCol: 8},
		{StartLine: 1, StartCol: 3, EndLine: 1, EndCol: 4},
		{StartLine: 1, StartCol: 5, EndLine: 1, EndCol: 6},
		{StartLine: 1, StartCol: 7, EndLine: 1, EndCol: 9},
	}

	for i, span := range want {
		if *toks[i].Span != span {
			t.Errorf("token %d (%s): got span %+v, want %+v", i, toks[i].Value, *toks[i].Span, span)
		}
	}
}

func TestLexEOFRepeats(t *testing.T) {
	l := NewLexer(bufio.NewReader(strings.NewReader("x")))

	for i, want := range []int{TOK_IDENT, TOK_EOF, TOK_EOF, TOK_EOF} {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if tok.Kind != want {
			t.Fatalf("token %d: got %s, want %s", i, KindName(tok.Kind), KindName(want))
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
		line    int
		col     int
	}{
		{"int @", "invalid character '@'", 0, 4},
		{"a = $;", "invalid character '$'", 0, 4},
		{"x /* never closed", "unterminated comment", 0, 2},
		{"123abc", "malformed integer literal `123abc`", 0, 0},
		{"x = 0755;", "octal integer literals are not supported: `0755`", 0, 4},
		{"x = 2147483649;", "integer literal `2147483649` is too large for type `int`", 0, 4},
		{"#define X 1\n", "unsupported preprocessor directive `#define`", 0, 0},
		{"int x; #include <a.h>", "invalid character '#'", 0, 7},
	}

	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			_, err := lexAll(t, test.src)

			var cerr *report.CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected a compile error, got %v", err)
			}

			if cerr.Kind != report.LexError {
				t.Errorf("got kind %s, want %s", cerr.Kind, report.LexError)
			}

			if cerr.Message != test.message {
				t.Errorf("got message %q, want %q", cerr.Message, test.message)
			}

			if cerr.Span.StartLine != test.line || cerr.Span.StartCol != test.col {
				t.Errorf("got position %d:%d, want %d:%d", cerr.Span.StartLine, cerr.Span.StartCol, test.line, test.col)
			}
		})
	}
}
