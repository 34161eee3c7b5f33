package generate

import (
	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// genGlobalVar generates a global variable.  Its initial value was computed
// during resolution.
func (g *Generator) genGlobalVar(vd *ast.VarDecl) {
	glob := g.mod.NewGlobalDef(llName(vd.Sym), constant.NewInt(types.I32, int64(vd.Sym.InitValue)))
	glob.Linkage = enum.LinkageInternal

	g.vars[vd.Sym] = glob
}

// declareFunc creates the LLVM function for a function definition.
func (g *Generator) declareFunc(fd *ast.FuncDecl) {
	retType := types.Type(types.Void)
	if fd.ReturnsValue {
		retType = types.I32
	}

	// Only `main` is visible outside the module.
	llvmFunc := g.mod.NewFunc(llName(fd.Sym), retType)
	if fd.Name != "main" {
		llvmFunc.Linkage = enum.LinkageInternal
	}

	g.funcs[fd.Sym] = llvmFunc
}

// genFuncBody generates the body of a function definition.  The entry block
// holds only the stack allocations of the function and branches to the first
// block of the body.
func (g *Generator) genFuncBody(fd *ast.FuncDecl) {
	g.enclosingFunc = g.funcs[fd.Sym]
	g.enclosingSym = fd.Sym

	g.allocBlock = g.enclosingFunc.NewBlock("entry")
	bodyBlock := g.appendBlock()
	g.block = bodyBlock

	g.genBlock(fd.Body)

	// Falling off the end of a function: `void` functions return nothing and
	// `int` functions (including `main`) return zero.
	if g.block != nil {
		if fd.ReturnsValue {
			g.block.NewRet(constant.NewInt(types.I32, 0))
		} else {
			g.block.NewRet(nil)
		}
	}

	g.allocBlock.NewBr(bodyBlock)

	g.enclosingFunc = nil
	g.enclosingSym = nil
	g.allocBlock = nil
	g.block = nil
}
