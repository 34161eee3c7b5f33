package walk

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/report"
	"github.com/alexandercampbell/rust-cc/syntax"
)

func parse(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()

	tu, err := syntax.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	return tu
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "locals shadow globals",
			src: `int count;
void count_shadower() { int count = 5; count = count + 5; }
int main() { count = 0; count_shadower(); write_int(1, count); }`,
			want: "(var count:g1)\n" +
				"(func void count_shadower:f2 (block (var count:l3 5) (expr (= count:l3 (+ count:l3 5)))))\n" +
				"(func int main:f4 (block (expr (= count:g1 0)) (expr (call count_shadower:f2)) (expr (call write_int:i0 1 count:g1))))",
		},
		{
			name: "inner blocks shadow outer blocks",
			src:  "int main() { int a = 1; { int a = a; a = 2; } return a; }",
			want: "(func int main:f1 (block (var a:l2 1) (block (var a:l3 a:l3) (expr (= a:l3 2))) (return a:l2)))",
		},
		{
			name: "shadowed names are restored after the block",
			src:  "int x = 1; int main() { { int x; x = 3; } return x; }",
			want: "(var x:g1 1)\n(func int main:f2 (block (block (var x:l3) (expr (= x:l3 3))) (return x:g1)))",
		},
		{
			name: "recursion and prototypes",
			src:  "int f();\nint g() { return f(); }\nint f() { return g() + f(); }\nint main() { return f(); }",
			want: "(func int f:f1)\n(func int g:f2 (block (return (call f:f1))))\n(func int f:f1 (block (return (+ (call g:f2) (call f:f1)))))\n(func int main:f3 (block (return (call f:f1))))",
		},
		{
			name: "sizeof operands are resolved",
			src:  "int n; int main() { return sizeof n; }",
			want: "(var n:g1)\n(func int main:f2 (block (return (sizeof n:g1))))",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tu := parse(t, test.src)

			if err := Resolve(tu); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := ast.Sprint(tu); got != test.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, test.want)
			}
		})
	}
}

func TestFoldGlobalInitializers(t *testing.T) {
	tu := parse(t, "int a = 2 * 3 + 4; int b = -(1 << 4) | 1; int c = sizeof(int) * 2; int d = 0 && 1 / 0; int e = 7 / -2; int f;")

	if err := Resolve(tu); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int32{10, -15, 8, 0, -3, 0}
	for i, decl := range tu.Decls {
		vd := decl.(*ast.VarDecl)
		if vd.Sym.InitValue != want[i] {
			t.Errorf("global `%s`: got %d, want %d", vd.Name, vd.Sym.InitValue, want[i])
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    report.ErrorKind
		message string

		// The zero-indexed position the error must point at.
		line, col int
	}{
		{
			"undeclared variable",
			"int main() { return x; }",
			report.UndeclaredName,
			"use of undeclared identifier `x`",
			0, 20,
		},
		{
			"use before declaration",
			"int main() { return g; }\nint g;",
			report.UndeclaredName,
			"use of undeclared identifier `g`",
			0, 20,
		},
		{
			"call before declaration",
			"int main() { return f(); }\nint f() { return 1; }",
			report.UndeclaredName,
			"use of undeclared identifier `f`",
			0, 20,
		},
		{
			"local out of scope",
			"int main() { { int a; } return a; }",
			report.UndeclaredName,
			"use of undeclared identifier `a`",
			0, 31,
		},
		{
			"local redeclaration",
			"int main() { int a; int a; }",
			report.Redeclaration,
			"redeclaration of `a`: previously declared as local variable `a` at 1:18",
			0, 24,
		},
		{
			"global redeclaration",
			"int a;\nint a;",
			report.Redeclaration,
			"redeclaration of `a`: previously declared as global variable `a` at 1:5",
			1, 4,
		},
		{
			"function redefinition",
			"int f() { return 0; }\nint f() { return 1; }",
			report.Redeclaration,
			"redefinition of function `f` (previously defined at 1:5)",
			1, 4,
		},
		{
			"function redeclares global",
			"int f;\nint f() { return 1; }",
			report.Redeclaration,
			"redeclaration of `f`: previously declared as global variable `f` at 1:5",
			1, 4,
		},
		{
			"intrinsic redeclaration",
			"void write_int() {}",
			report.Redeclaration,
			"redeclaration of intrinsic `write_int`",
			0, 5,
		},
		{
			"conflicting prototype",
			"int f();\nvoid f() {}",
			report.ConflictingDeclaration,
			"conflicting return type for function `f` (previously declared at 1:5)",
			1, 5,
		},
		{
			"assign to function",
			"int f() { return 0; }\nint main() { f = 1; }",
			report.InvalidAssignmentTarget,
			"cannot assign to function `f`",
			1, 13,
		},
		{
			"assign to intrinsic",
			"int main() { write_int = 1; }",
			report.InvalidAssignmentTarget,
			"cannot assign to intrinsic `write_int`",
			0, 13,
		},
		{
			"too few arguments",
			"int main() { write_int(1); }",
			report.ArityMismatch,
			"intrinsic `write_int` expects 2 arguments but was called with 1",
			0, 13,
		},
		{
			"too many arguments",
			"int f() { return 0; }\nint main() { return f(1); }",
			report.ArityMismatch,
			"function `f` expects 0 arguments but was called with 1",
			1, 20,
		},
		{
			"call a variable",
			"int main() { int a; a(); }",
			report.NotCallable,
			"local variable `a` is not a function",
			0, 20,
		},
		{
			"function as value",
			"int f() { return 0; }\nint main() { return f + 1; }",
			report.InvalidValueUse,
			"function `f` cannot be used as a value",
			1, 20,
		},
		{
			"void result used",
			"void f() {}\nint main() { return f(); }",
			report.InvalidValueUse,
			"function `f` returns void: its result cannot be used as a value",
			1, 20,
		},
		{
			"write_int result used",
			"int main() { int a = write_int(1, 2); }",
			report.InvalidValueUse,
			"intrinsic `write_int` returns void: its result cannot be used as a value",
			0, 21,
		},
		{
			"value returned from void function",
			"void f() { return 1; }",
			report.ReturnMismatch,
			"void function `f` cannot return a value",
			0, 18,
		},
		{
			"missing return value",
			"int f() { return; }",
			report.ReturnMismatch,
			"non-void function `f` must return a value",
			0, 10,
		},
		{
			"non-constant global initializer",
			"int a = 1;\nint b = a + 1;",
			report.NonConstantInitializer,
			"global initializer must be a constant expression",
			1, 8,
		},
		{
			"constant division by zero",
			"int a = 1 / 0;",
			report.NonConstantInitializer,
			"initializer is not a constant: division by zero",
			0, 8,
		},
		{
			"undeclared name after a tab",
			"int main() {\n\treturn 1 + xyz;\n}",
			report.UndeclaredName,
			"use of undeclared identifier `xyz`",
			1, 12,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Resolve(parse(t, test.src))

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

			if cerr.Span == nil {
				t.Fatal("error has no position")
			}

			if cerr.Span.StartLine != test.line || cerr.Span.StartCol != test.col {
				t.Errorf("got position %d:%d, want %d:%d", cerr.Span.StartLine, cerr.Span.StartCol, test.line, test.col)
			}
		})
	}
}

func TestCheckProgram(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"valid", "int main() { return 0; }", ""},
		{"valid with prototype", "int main();\nint main() { return 0; }", ""},
		{"missing main", "int f() { return 0; }", "program does not define a `main` function"},
		{"void main", "void main() {}", "unsupported signature for `main`: must be `int main()`"},
		{"prototype only main", "int main();", "`main` is declared but never defined"},
		{"undefined function", "int f();\nint main() { return f(); }", "function `f` is declared but never defined"},
		{"unused undefined function", "int f();\nint main() { return 0; }", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tu := parse(t, test.src)
			if err := Resolve(tu); err != nil {
				t.Fatalf("unexpected resolve error: %v", err)
			}

			err := CheckProgram(tu)
			if test.message == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				return
			}

			var cerr *report.CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected a compile error, got %v", err)
			}

			if cerr.Kind != report.GenerateError || cerr.Message != test.message {
				t.Errorf("got %s %q, want %s %q", cerr.Kind, cerr.Message, report.GenerateError, test.message)
			}
		})
	}
}
