package walk

import (
	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
)

// CheckProgram checks that a resolved translation unit is a complete program:
// it must define the only supported entry point, `int main()`, and every
// function it calls must be defined.  It returns a *report.CompileError of
// kind GenerateError if it is not.
func CheckProgram(tu *ast.TranslationUnit) (err error) {
	defer report.Catch(&err)

	var main *ast.FuncDecl
	for _, decl := range tu.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Name == "main" {
			main = fd

			if fd.Body != nil {
				break
			}
		}
	}

	if main == nil {
		panic(report.Raise(report.GenerateError, nil, "program does not define a `main` function"))
	} else if !main.ReturnsValue {
		panic(report.Raise(report.GenerateError, main.NameSpan, "unsupported signature for `main`: must be `int main()`"))
	} else if main.Body == nil {
		panic(report.Raise(report.GenerateError, main.NameSpan, "`main` is declared but never defined"))
	}

	for _, decl := range tu.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Body != nil {
			checkCallsInStmt(fd.Body)
		}
	}

	return nil
}

func checkCallsInStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		for _, s := range v.Stmts {
			checkCallsInStmt(s)
		}
	case *ast.VarDecl:
		checkCallsInExpr(v.Init)
	case *ast.ExprStmt:
		checkCallsInExpr(v.Expr)
	case *ast.ReturnStmt:
		checkCallsInExpr(v.Value)
	}
}

func checkCallsInExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Assignment:
		checkCallsInExpr(v.Value)
	case *ast.BinaryExpr:
		checkCallsInExpr(v.Lhs)
		checkCallsInExpr(v.Rhs)
	case *ast.UnaryExpr:
		checkCallsInExpr(v.Operand)
	case *ast.CallExpr:
		if sym := v.Func.Sym; sym != nil && sym.Kind == depm.SymFunc && !sym.Defined {
			panic(report.Raise(report.GenerateError, v.Func.Span(), "function `%s` is declared but never defined", sym.Name))
		}

		for _, arg := range v.Args {
			checkCallsInExpr(arg)
		}
	}
}
