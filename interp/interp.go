package interp

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
	"github.com/alexandercampbell/rust-cc/walk"
)

// DefaultMaxDepth is the default limit on the number of nested calls.
const DefaultMaxDepth = 10000

// Interpreter executes the resolved AST of a translation unit directly.  It
// gives programs the same observable behavior as the native backend: the same
// output on the same file descriptors and the same exit status.
type Interpreter struct {
	// The destination of `write_int` output.
	out FDWriter

	// The maximum number of nested calls before execution is aborted.
	MaxDepth int

	// The values of global variables.
	globals map[*depm.Symbol]*int32

	// The defining declaration of each function.
	funcs map[*depm.Symbol]*ast.FuncDecl

	// The frame of the function being executed.
	frame *frame

	// The current call depth.
	depth int
}

// frame is the activation record of a single function call.
type frame struct {
	locals map[*depm.Symbol]*int32
}

// NewInterpreter creates a new interpreter writing to out.
func NewInterpreter(out FDWriter) *Interpreter {
	return &Interpreter{
		out:      out,
		MaxDepth: DefaultMaxDepth,
		globals:  make(map[*depm.Symbol]*int32),
		funcs:    make(map[*depm.Symbol]*ast.FuncDecl),
	}
}

// Run executes the program in a resolved translation unit with a default
// interpreter and returns its exit status.
func Run(tu *ast.TranslationUnit, out FDWriter) (int32, error) {
	return NewInterpreter(out).Run(tu)
}

// Run executes the program in a resolved translation unit and returns the
// value returned by `main`.  Failures during execution are returned as a
// *report.CompileError of kind RuntimeError.
func (in *Interpreter) Run(tu *ast.TranslationUnit) (exitCode int32, err error) {
	if err := walk.CheckProgram(tu); err != nil {
		return 0, err
	}

	defer report.Catch(&err)

	var main *ast.FuncDecl
	for _, decl := range tu.Decls {
		switch v := decl.(type) {
		case *ast.FuncDecl:
			if v.Body == nil {
				continue
			}

			in.funcs[v.Sym] = v

			if v.Name == "main" {
				main = v
			}
		case *ast.VarDecl:
			val := v.Sym.InitValue
			in.globals[v.Sym] = &val
		default:
			panic(fmt.Sprintf("interp: unknown declaration type %T", decl))
		}
	}

	return in.call(main, nil), nil
}

// call executes a function with the given arguments.  Functions returning
// `void` produce 0.
func (in *Interpreter) call(fd *ast.FuncDecl, args []int32) int32 {
	if in.depth >= in.MaxDepth {
		panic(report.Raise(report.RuntimeError, fd.NameSpan, "call stack exhausted in `%s`: more than %d nested calls", fd.Name, in.MaxDepth))
	}

	in.depth++
	prevFrame := in.frame
	in.frame = &frame{locals: make(map[*depm.Symbol]*int32)}

	defer func() {
		in.frame = prevFrame
		in.depth--
	}()

	// Functions without an explicit return produce 0.
	result, _ := in.execBlock(fd.Body)
	if !fd.ReturnsValue {
		return 0
	}

	return result
}
