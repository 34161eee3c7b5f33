package walk

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
)

// walkBlock walks a block in a new scope.
func (w *Walker) walkBlock(block *ast.Block) {
	w.pushScope()

	for _, stmt := range block.Stmts {
		w.walkStmt(stmt)
	}

	w.popScope()
}

// walkStmt walks a statement or local declaration.
func (w *Walker) walkStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		w.walkLocalVarDecl(v)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr, false)
	case *ast.ReturnStmt:
		w.walkReturnStmt(v)
	case *ast.Block:
		w.walkBlock(v)
	default:
		panic(fmt.Sprintf("walk: unknown statement type %T", stmt))
	}
}

// walkLocalVarDecl walks a local variable declaration.  The variable is in
// scope within its own initializer.
func (w *Walker) walkLocalVarDecl(vd *ast.VarDecl) {
	sym := w.newSymbol(vd.Name, depm.SymLocalVar, vd.NameSpan)
	w.define(sym)
	vd.Sym = sym

	if vd.Init != nil {
		w.walkExpr(vd.Init, true)
	}
}

// walkReturnStmt walks a return statement.  The presence of a return value
// must agree with the return type of the enclosing function.
func (w *Walker) walkReturnStmt(rs *ast.ReturnStmt) {
	fn := w.enclosingFunc

	if rs.Value == nil {
		if fn.ReturnsValue {
			w.error(report.ReturnMismatch, rs.Span(), "non-void function `%s` must return a value", fn.Name)
		}

		return
	}

	if !fn.ReturnsValue {
		w.error(report.ReturnMismatch, rs.Value.Span(), "void function `%s` cannot return a value", fn.Name)
	}

	w.walkExpr(rs.Value, true)
}
