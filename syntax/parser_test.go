package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/report"
	"github.com/kr/pretty"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty translation unit",
			src:  "",
			want: "",
		},
		{
			name: "main returning a constant",
			src:  "int main() { return 0; }",
			want: "(func int main (block (return 0)))",
		},
		{
			name: "void parameter list and prototype",
			src:  "void f(void);\nvoid f(void) { return; }",
			want: "(func void f)\n(func void f (block (return)))",
		},
		{
			name: "globals with multiple declarators",
			src:  "int a, b = 2, c;",
			want: "(var a)\n(var b 2)\n(var c)",
		},
		{
			name: "locals and assignment",
			src:  "int main() { int a; int b = a = 3; b = a; }",
			want: "(func int main (block (var a) (var b (= a 3)) (expr (= b a))))",
		},
		{
			name: "assignment is right associative",
			src:  "int main() { a = b = c; }",
			want: "(func int main (block (expr (= a (= b c)))))",
		},
		{
			name: "multiplicative binds tighter than additive",
			src:  "int main() { return 1 + 2 * 3 - 4; }",
			want: "(func int main (block (return (- (+ 1 (* 2 3)) 4))))",
		},
		{
			name: "operators of equal precedence are left associative",
			src:  "int main() { return 8 / 4 / 2 % 3; }",
			want: "(func int main (block (return (% (/ (/ 8 4) 2) 3))))",
		},
		{
			name: "full precedence ladder",
			src:  "int main() { return a || b && c | d ^ e & f == g < h << i + j * k; }",
			want: "(func int main (block (return (|| a (&& b (| c (^ d (& e (== f (< g (<< h (+ i (* j k)))))))))))))",
		},
		{
			name: "parentheses override precedence",
			src:  "int main() { return (1 + 2) * 3; }",
			want: "(func int main (block (return (* (+ 1 2) 3))))",
		},
		{
			name: "unary operators",
			src:  "int main() { return -~!+x - -1; }",
			want: "(func int main (block (return (- (- (~ (! (+ x)))) (- 1)))))",
		},
		{
			name: "sizeof forms",
			src:  "int main() { return sizeof(int) + sizeof x + sizeof(1 + 2); }",
			want: "(func int main (block (return (+ (+ (sizeof int) (sizeof x)) (sizeof (+ 1 2))))))",
		},
		{
			name: "calls",
			src:  "int main() { f(); write_int(1, g() + 2); }",
			want: "(func int main (block (expr (call f)) (expr (call write_int 1 (+ (call g) 2)))))",
		},
		{
			name: "nested blocks and empty statements",
			src:  "int main() { ; { int a; ; } {} }",
			want: "(func int main (block (block (var a)) (block)))",
		},
		{
			name: "most negative int literal",
			src:  "int main() { return -2147483648; }",
			want: "(func int main (block (return (- -2147483648))))",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tu, err := Parse(strings.NewReader(test.src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := ast.Sprint(tu); got != test.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, test.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    report.ErrorKind
		message string
	}{
		{"missing semicolon", "int main() { return 0 }", report.ParseError, "expected `;`, found `}`"},
		{"unclosed block", "int main() { return 0;", report.ParseError, "expected `}`, found end of file"},
		{"not assignable", "int main() { 1 = 2; }", report.ParseError, "expression is not assignable"},
		{"sum not assignable", "int main() { a + b = 2; }", report.ParseError, "expression is not assignable"},
		{"parameters", "int f(int x) { return x; }", report.ParseError, "function parameters are not supported"},
		{"void variable", "void x;", report.ParseError, "variable `x` declared void"},
		{"void local", "int main() { void x; }", report.ParseError, "local variables cannot be declared void"},
		{"statement at top level", "return 0;", report.ParseError, "expected declaration, found `return`"},
		{"missing expression", "int main() { return 1 + ; }", report.ParseError, "expected expression, found `;`"},
		{"bad declarator", "int x y;", report.ParseError, "expected `=`, `,` or `;`, found identifier `y`"},
		{"bad declarator after init", "int x = 1 y;", report.ParseError, "expected `,` or `;`, found identifier `y`"},
		{"lex error surfaces", "int main() { return 09; }", report.LexError, "octal integer literals are not supported: `09`"},
		{"literal too large without minus", "int main() { return 2147483648; }", report.LexError, "integer literal `2147483648` is too large for type `int`"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.src))

			var cerr *report.CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected a compile error, got %v", err)
			}

			if cerr.Kind != test.kind {
				t.Errorf("got kind %s, want %s", cerr.Kind, test.kind)
			}

			if cerr.Message != test.message {
				t.Errorf("got message %q, want %q", cerr.Message, test.message)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	src := `
int count = 3;

int triple() { return count * 3; }

int main() {
	int a = 1, b;
	b = a + triple() << 2;
	write_int(1, b);
	return a && b || !count;
}
`

	first, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := pretty.Diff(first, second); len(diff) > 0 {
		t.Errorf("parsing the same source twice produced different trees:\n%s", strings.Join(diff, "\n"))
	}
}
