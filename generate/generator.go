package generate

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
	"github.com/alexandercampbell/rust-cc/walk"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Target describes the module being generated.
type Target struct {
	// The LLVM target triple.  If this is empty, the backend's default target is
	// used.
	Triple string

	// The name of the source file the module is generated from.
	SourceName string
}

// globalPrefix is prepended to the names of all user symbols except `main` so
// that they never collide with the C library the program is linked against.
const globalPrefix = "subc."

// Generator is responsible for converting the resolved AST of a translation
// unit into an LLVM module.
type Generator struct {
	// The LLVM module being generated.
	mod *ir.Module

	// The storage of each global and local variable: globals and allocas.
	vars map[*depm.Symbol]value.Value

	// The LLVM function of each defined function.
	funcs map[*depm.Symbol]*ir.Func

	// The function enclosing the block being generated and its symbol.
	enclosingFunc *ir.Func
	enclosingSym  *depm.Symbol

	// The block holding the allocas of the enclosing function.
	allocBlock *ir.Block

	// The block currently being generated.  This is nil after a terminator
	// until the next statement opens a new block.
	block *ir.Block

	// The `write_int` helper and the C library `write` function it calls.
	// These are only declared if the program uses `write_int`.
	writeIntFunc *ir.Func
	writeFunc    *ir.Func
}

// Generate converts a resolved translation unit into an LLVM module.  Errors
// for programs which parse and resolve but cannot be lowered are returned as a
// *report.CompileError of kind GenerateError.
func Generate(tu *ast.TranslationUnit, target Target) (mod *ir.Module, err error) {
	defer report.Catch(&err)

	g := &Generator{
		mod:   ir.NewModule(),
		vars:  make(map[*depm.Symbol]value.Value),
		funcs: make(map[*depm.Symbol]*ir.Func),
	}

	g.mod.SourceFilename = target.SourceName
	g.mod.TargetTriple = target.Triple

	g.generate(tu)

	return g.mod, nil
}

// generate generates the whole translation unit.  All functions are declared
// before any body is generated so that calls can refer to functions defined
// later in the file.
func (g *Generator) generate(tu *ast.TranslationUnit) {
	if err := walk.CheckProgram(tu); err != nil {
		panic(err)
	}

	for _, decl := range tu.Decls {
		switch v := decl.(type) {
		case *ast.FuncDecl:
			if v.Body != nil {
				g.declareFunc(v)
			}
		case *ast.VarDecl:
			g.genGlobalVar(v)
		default:
			panic(fmt.Sprintf("generate: unknown declaration type %T", decl))
		}
	}

	for _, decl := range tu.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Body != nil {
			g.genFuncBody(fd)
		}
	}
}

// -----------------------------------------------------------------------------

// llName returns the LLVM name of a global symbol.
func llName(sym *depm.Symbol) string {
	if sym.Kind == depm.SymFunc && sym.Name == "main" {
		return "main"
	}

	return globalPrefix + sym.Name
}

// appendBlock adds a new basic block to the current function.  It does *not*
// update the generator's current block.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb%d", len(g.enclosingFunc.Blocks)))
}

// currentBlock returns the block instructions should be added to.  If the
// previous block was terminated, a new (unreachable) block is opened.
func (g *Generator) currentBlock() *ir.Block {
	if g.block == nil {
		g.block = g.appendBlock()
	}

	return g.block
}

// newAlloca allocates a new `int` slot in the enclosing function's stack frame.
// The `alloca` is always placed in the entry block.
func (g *Generator) newAlloca() *ir.InstAlloca {
	return g.allocBlock.NewAlloca(types.I32)
}

// error raises a generation error.
func (g *Generator) error(node ast.ASTNode, msg string, args ...interface{}) {
	panic(report.Raise(report.GenerateError, node.Span(), msg, args...))
}
