package walk

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/common"
	"github.com/alexandercampbell/rust-cc/report"
)

// walkExpr walks an expression.  `needValue` indicates whether the value of the
// expression is used: only the outermost expression of an expression statement
// may produce no value.
func (w *Walker) walkExpr(expr ast.Expr, needValue bool) {
	switch v := expr.(type) {
	case *ast.IntLiteral:
	case *ast.Identifier:
		w.walkIdent(v)
	case *ast.Assignment:
		w.walkAssignment(v)
	case *ast.BinaryExpr:
		w.walkExpr(v.Lhs, true)
		w.walkExpr(v.Rhs, true)
	case *ast.UnaryExpr:
		w.walkExpr(v.Operand, true)
	case *ast.SizeofExpr:
		if v.Operand != nil {
			w.walkExpr(v.Operand, true)
		}
	case *ast.CallExpr:
		w.walkCall(v, needValue)
	default:
		panic(fmt.Sprintf("walk: unknown expression type %T", expr))
	}
}

// walkIdent walks an identifier used as a value.
func (w *Walker) walkIdent(ident *ast.Identifier) {
	sym := w.lookup(ident.Name, ident.Span())

	if !sym.IsVariable() {
		w.error(report.InvalidValueUse, ident.Span(), "%s cannot be used as a value", sym.Describe())
	}

	ident.Sym = sym
}

// walkAssignment walks an assignment.  The target must name a variable.
func (w *Walker) walkAssignment(as *ast.Assignment) {
	sym := w.lookup(as.Target.Name, as.Target.Span())

	if !sym.IsVariable() {
		w.error(report.InvalidAssignmentTarget, as.Target.Span(), "cannot assign to %s", sym.Describe())
	}

	as.Target.Sym = sym

	w.walkExpr(as.Value, true)
}

// walkCall walks a function call.  The callee must be a function or intrinsic
// and the number of arguments must match its arity.
func (w *Walker) walkCall(call *ast.CallExpr, needValue bool) {
	sym := w.lookup(call.Func.Name, call.Func.Span())

	if !sym.IsCallable() {
		w.error(report.NotCallable, call.Func.Span(), "%s is not a function", sym.Describe())
	}

	if len(call.Args) != sym.Arity {
		w.error(
			report.ArityMismatch,
			call.Span(),
			"%s expects %d %s but was called with %d",
			sym.Describe(),
			sym.Arity,
			pluralize("argument", sym.Arity),
			len(call.Args),
		)
	}

	if needValue && !sym.ReturnsValue {
		w.error(report.InvalidValueUse, call.Span(), "%s returns void: its result cannot be used as a value", sym.Describe())
	}

	call.Func.Sym = sym

	for _, arg := range call.Args {
		w.walkExpr(arg, true)
	}
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}

	return word + "s"
}

// -----------------------------------------------------------------------------

// foldConst computes the value of a constant expression.  The expression must
// already be resolved.
func (w *Walker) foldConst(expr ast.Expr) int32 {
	switch v := expr.(type) {
	case *ast.IntLiteral:
		return v.Value
	case *ast.SizeofExpr:
		return common.IntSize
	case *ast.UnaryExpr:
		return v.Op.Apply(w.foldConst(v.Operand))
	case *ast.BinaryExpr:
		lhs := w.foldConst(v.Lhs)

		// The right operand of a short-circuiting operator need not be
		// constant if it is never evaluated.
		if v.Op == ast.OpLogAnd && lhs == 0 {
			return 0
		} else if v.Op == ast.OpLogOr && lhs != 0 {
			return 1
		}

		result, err := v.Op.Apply(lhs, w.foldConst(v.Rhs))
		if err != nil {
			w.error(report.NonConstantInitializer, v.Span(), "initializer is not a constant: %s", err)
		}

		return result
	default:
		w.error(report.NonConstantInitializer, expr.Span(), "global initializer must be a constant expression")
		return 0
	}
}
