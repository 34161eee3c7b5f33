package generate

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
)

// genBlock generates the statements of a block in order.
func (g *Generator) genBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		g.genStmt(stmt)
	}
}

// genStmt generates a statement or local declaration.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		g.genLocalVar(v)
	case *ast.ExprStmt:
		g.genExpr(v.Expr)
	case *ast.ReturnStmt:
		g.genReturn(v)
	case *ast.Block:
		g.genBlock(v)
	default:
		panic(fmt.Sprintf("generate: unknown statement type %T", stmt))
	}
}

// genLocalVar generates a local variable declaration.  Each local gets its own
// stack slot for the lifetime of the function's activation.  Locals without an
// initializer are left undefined.
func (g *Generator) genLocalVar(vd *ast.VarDecl) {
	varPtr := g.newAlloca()
	varPtr.SetName(fmt.Sprintf("%s.%d", vd.Name, vd.Sym.Index))
	g.vars[vd.Sym] = varPtr

	if vd.Init != nil {
		init := g.genExpr(vd.Init)
		g.currentBlock().NewStore(init, varPtr)
	}
}

// genReturn generates a return statement.  The current block is terminated so
// any statements after the return go into a new, unreachable block.
func (g *Generator) genReturn(rs *ast.ReturnStmt) {
	if rs.Value == nil {
		g.currentBlock().NewRet(nil)
	} else {
		val := g.genExpr(rs.Value)
		g.currentBlock().NewRet(val)
	}

	g.block = nil
}
