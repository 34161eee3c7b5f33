package interp

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
)

// execBlock executes the statements of a block in order.  It returns the
// returned value and true if a return statement was executed.
func (in *Interpreter) execBlock(block *ast.Block) (int32, bool) {
	for _, stmt := range block.Stmts {
		if result, returned := in.execStmt(stmt); returned {
			return result, true
		}
	}

	return 0, false
}

func (in *Interpreter) execStmt(stmt ast.Stmt) (int32, bool) {
	switch v := stmt.(type) {
	case *ast.Block:
		return in.execBlock(v)
	case *ast.VarDecl:
		// The variable is in scope in its own initializer.  Locals without an
		// initializer start at zero.
		slot := new(int32)
		in.frame.locals[v.Sym] = slot

		if v.Init != nil {
			*slot = in.evalExpr(v.Init)
		}
	case *ast.ExprStmt:
		in.evalExpr(v.Expr)
	case *ast.ReturnStmt:
		if v.Value == nil {
			return 0, true
		}

		return in.evalExpr(v.Value), true
	default:
		panic(fmt.Sprintf("interp: unknown statement type %T", stmt))
	}

	return 0, false
}
