package interp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/report"
	"github.com/alexandercampbell/rust-cc/syntax"
	"github.com/alexandercampbell/rust-cc/walk"
)

func analyze(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()

	tu, err := syntax.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if err := walk.Resolve(tu); err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}

	return tu
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		stdout   string
		stderr   string
		exitCode int32
	}{
		{
			name: "hello addition",
			src: `#include "subc-builtins.h"
int main() {
	int a;
	int b;
	int file_descriptor = 1;

	a = 10 + 2;
	b = a * 10;

	write_int(file_descriptor, a);
	write_int(file_descriptor, b);
	write_int(file_descriptor, a + b);

	return 0;
}`,
			stdout: "12\n120\n132\n",
		},
		{
			name: "operator precedence",
			src: `int main() {
	write_int(1, 2 * 3 + 4);
	write_int(1, 1 + 2 * 3 + 4);
	write_int(1, 2 - 3 / 4 + 7 + 3 * 2 - 2);
}`,
			stdout: "10\n11\n13\n",
		},
		{
			name:     "exit status",
			src:      "int main() { return 42; }",
			exitCode: 42,
		},
		{
			name:     "falling off main returns zero",
			src:      "int main() { int a = 3; }",
			exitCode: 0,
		},
		{
			name:   "stderr",
			src:    "int main() { write_int(2, -7); write_int(1, 0); }",
			stdout: "0\n",
			stderr: "-7\n",
		},
		{
			name:   "extreme values",
			src:    "int main() { write_int(1, 2147483647); write_int(1, -2147483647 - 1); write_int(1, 2147483647 + 1); }",
			stdout: "2147483647\n-2147483648\n-2147483648\n",
		},
		{
			name:   "division truncates toward zero",
			src:    "int main() { write_int(1, -7 / 2); write_int(1, -7 % 2); write_int(1, 7 % -2); }",
			stdout: "-3\n-1\n1\n",
		},
		{
			name:   "shifts are masked and arithmetic",
			src:    "int main() { write_int(1, 1 << 33); write_int(1, -16 >> 2); write_int(1, 1 << 31); }",
			stdout: "2\n-4\n-2147483648\n",
		},
		{
			name:   "comparisons and logic yield zero or one",
			src:    "int main() { write_int(1, 5 > 3); write_int(1, 5 <= 3); write_int(1, 7 && -1); write_int(1, 0 || 0); write_int(1, !9); write_int(1, ~0); }",
			stdout: "1\n0\n1\n0\n0\n-1\n",
		},
		{
			name: "short circuit skips side effects",
			src: `int hits;
int hit() { hits = hits + 1; return 1; }
int main() {
	int a = 0 && hit();
	int b = 1 || hit();
	int c = 1 && hit();
	int d = 0 || hit();
	write_int(1, hits);
	return a + b + c + d;
}`,
			stdout:   "2\n",
			exitCode: 3,
		},
		{
			name: "evaluation order",
			src: `int trace;
int first() { trace = trace * 10 + 1; return 1; }
int second() { trace = trace * 10 + 2; return 2; }
int main() {
	int r = first() - second();
	write_int(1, trace);
	write_int(1, r);
}`,
			stdout: "12\n-1\n",
		},
		{
			name: "globals and prototypes",
			src: `int counter = 10 * 2;
int next();
int main() {
	next();
	next();
	return next();
}
int next() { counter = counter + 1; return counter; }`,
			exitCode: 23,
		},
		{
			name:   "sizeof does not evaluate its operand",
			src:    "int x; int main() { write_int(1, sizeof(x = 5)); write_int(1, sizeof(int)); return x; }",
			stdout: "4\n4\n",
		},
		{
			name:   "chained assignment",
			src:    "int main() { int a; int b; int c; a = b = c = 7; write_int(1, a + b + c); }",
			stdout: "21\n",
		},
		{
			name: "recursion through globals",
			src: `int n = 10;
int acc;
int sum() {
	acc = acc + n;
	n = n - 1;
	return n && sum();
}
int main() {
	sum();
	return acc;
}`,
			exitCode: 55,
		},
		{
			name: "most negative int literal",
			src: `int main() {
	write_int(1, -2147483648);
	write_int(1, -2147483648 - 1);
	return 0;
}`,
			stdout: "-2147483648\n2147483647\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			exitCode, err := Run(analyze(t, test.src), MapWriter{1: &stdout, 2: &stderr})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if exitCode != test.exitCode {
				t.Errorf("got exit status %d, want %d", exitCode, test.exitCode)
			}

			if stdout.String() != test.stdout {
				t.Errorf("got stdout %q, want %q", stdout.String(), test.stdout)
			}

			if stderr.String() != test.stderr {
				t.Errorf("got stderr %q, want %q", stderr.String(), test.stderr)
			}
		})
	}
}

func TestRunHelloFunction(t *testing.T) {
	src := `int count;

void increment_count() { count = count + 1; }
void decrement_count() { count = count - 1; }
int count_tripled()    { return count * 3; }

void count_shadower() {
	int count = 5;
	count = count + 5;
}

int main() {
	int file_descriptor = 0; // stdout

	count = 0;
	write_int(file_descriptor, count);

	increment_count();
	write_int(file_descriptor, count);

	decrement_count();
	write_int(file_descriptor, count);

	count_shadower();
	write_int(file_descriptor, count);
}`

	var out bytes.Buffer
	exitCode, err := Run(analyze(t, src), MapWriter{0: &out})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exitCode != 0 {
		t.Errorf("got exit status %d, want 0", exitCode)
	}

	if want := "0\n1\n0\n0\n"; out.String() != want {
		t.Errorf("got output %q, want %q", out.String(), want)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    report.ErrorKind
		message string
	}{
		{
			"division by zero",
			"int main() { int z = 0; return 1 / z; }",
			report.RuntimeError,
			"division by zero: `1 / 0`",
		},
		{
			"remainder by zero",
			"int main() { int z; z = 0; return 5 % z; }",
			report.RuntimeError,
			"division by zero: `5 % 0`",
		},
		{
			"division overflow",
			"int main() { int m = -2147483647 - 1; return m / -1; }",
			report.RuntimeError,
			"integer overflow in division: `-2147483648 / -1`",
		},
		{
			"unbounded recursion",
			"int f() { return f(); }\nint main() { return f(); }",
			report.RuntimeError,
			"call stack exhausted in `f`: more than 10000 nested calls",
		},
		{
			"bad file descriptor",
			"int main() { write_int(7, 1); }",
			report.RuntimeError,
			"write_int failed on file descriptor 7: bad file descriptor",
		},
		{
			"missing main",
			"int f() { return 0; }",
			report.GenerateError,
			"program does not define a `main` function",
		},
		{
			"undefined function",
			"int f();\nint main() { return f(); }",
			report.GenerateError,
			"function `f` is declared but never defined",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var stdout bytes.Buffer
			_, err := Run(analyze(t, test.src), MapWriter{1: &stdout})

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

func TestOutputBeforeRuntimeError(t *testing.T) {
	src := "int main() { write_int(1, 1); write_int(1, 2 / 0); write_int(1, 3); }"

	var stdout bytes.Buffer
	_, err := Run(analyze(t, src), MapWriter{1: &stdout})
	if err == nil {
		t.Fatal("expected a runtime error")
	}

	if want := "1\n"; stdout.String() != want {
		t.Errorf("got output %q, want %q", stdout.String(), want)
	}
}

func TestMaxDepth(t *testing.T) {
	src := `int depth;
int dive() {
	depth = depth + 1;
	return depth < 50 && dive();
}
int main() { dive(); return depth; }`

	in := NewInterpreter(MapWriter{})
	in.MaxDepth = 10

	_, err := in.Run(analyze(t, src))

	var cerr *report.CompileError
	if !errors.As(err, &cerr) || cerr.Kind != report.RuntimeError {
		t.Fatalf("expected a runtime error, got %v", err)
	}

	in = NewInterpreter(MapWriter{})
	exitCode, err := in.Run(analyze(t, src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exitCode != 50 {
		t.Errorf("got exit status %d, want 50", exitCode)
	}
}
