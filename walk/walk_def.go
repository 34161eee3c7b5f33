package walk

import (
	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
)

// walkFuncDecl walks a function declaration.  A function may be declared any
// number of times by prototypes with matching return types but may only be
// defined once.
func (w *Walker) walkFuncDecl(fd *ast.FuncDecl) {
	sym := w.arena.LookupLocal(w.globalScope, fd.Name)

	if sym == nil {
		sym = w.newSymbol(fd.Name, depm.SymFunc, fd.NameSpan)
		sym.ReturnsValue = fd.ReturnsValue
		w.define(sym)
	} else if sym.Kind != depm.SymFunc {
		w.redeclared(w.newSymbol(fd.Name, depm.SymFunc, fd.NameSpan), sym)
	} else if sym.ReturnsValue != fd.ReturnsValue {
		w.error(
			report.ConflictingDeclaration,
			fd.NameSpan,
			"conflicting return type for function `%s` (previously declared at %s)",
			fd.Name,
			sym.DefSpan,
		)
	} else if sym.Defined && fd.Body != nil {
		w.error(report.Redeclaration, fd.NameSpan, "redefinition of function `%s` (previously defined at %s)", fd.Name, sym.DefSpan)
	}

	fd.Sym = sym

	if fd.Body != nil {
		// The function is defined before its body is walked so that it can
		// call itself.
		sym.Defined = true
		sym.DefSpan = fd.NameSpan

		w.walkFuncBody(sym, fd.Body)
	}
}

// walkFuncBody walks the body of a function.  The function's own scope holds
// its parameters (of which there are currently none) and encloses the scope of
// the body block.
func (w *Walker) walkFuncBody(sym *depm.Symbol, body *ast.Block) {
	w.enclosingFunc = sym
	defer func() {
		w.enclosingFunc = nil
	}()

	w.pushScope()
	w.walkBlock(body)
	w.popScope()
}

// walkGlobalVarDecl walks a global variable declaration.  Global initializers
// must be constant expressions: their values are computed here and stored on
// the symbol.
func (w *Walker) walkGlobalVarDecl(vd *ast.VarDecl) {
	sym := w.newSymbol(vd.Name, depm.SymGlobalVar, vd.NameSpan)
	w.define(sym)
	vd.Sym = sym

	if vd.Init != nil {
		w.walkExpr(vd.Init, true)
		sym.InitValue = w.foldConst(vd.Init)
	}
}
