package interp

import (
	"fmt"
	"strconv"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/common"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
)

// evalExpr evaluates an expression.  Operands are evaluated left to right.
// Calls to `void` functions evaluate to 0, but the resolver guarantees such
// values are never used.
func (in *Interpreter) evalExpr(expr ast.Expr) int32 {
	switch v := expr.(type) {
	case *ast.IntLiteral:
		return v.Value
	case *ast.Identifier:
		return *in.varSlot(v)
	case *ast.Assignment:
		val := in.evalExpr(v.Value)
		*in.varSlot(v.Target) = val
		return val
	case *ast.BinaryExpr:
		return in.evalBinaryExpr(v)
	case *ast.UnaryExpr:
		return v.Op.Apply(in.evalExpr(v.Operand))
	case *ast.SizeofExpr:
		return common.IntSize
	case *ast.CallExpr:
		return in.evalCall(v)
	default:
		panic(fmt.Sprintf("interp: unknown expression type %T", expr))
	}
}

// varSlot returns a pointer to the storage of the variable an identifier
// refers to.
func (in *Interpreter) varSlot(ident *ast.Identifier) *int32 {
	sym := ident.Sym
	if sym == nil {
		panic(fmt.Sprintf("interp: unresolved identifier `%s`", ident.Name))
	}

	var slot *int32
	if sym.Kind == depm.SymLocalVar {
		slot = in.frame.locals[sym]
	} else {
		slot = in.globals[sym]
	}

	if slot == nil {
		panic(fmt.Sprintf("interp: no storage for %s", sym.Describe()))
	}

	return slot
}

// -----------------------------------------------------------------------------

// evalBinaryExpr evaluates a binary expression.  `&&` and `||` only evaluate
// their right operand if the left operand does not decide the result.
func (in *Interpreter) evalBinaryExpr(expr *ast.BinaryExpr) int32 {
	lhs := in.evalExpr(expr.Lhs)

	switch expr.Op {
	case ast.OpLogAnd:
		if lhs == 0 {
			return 0
		}
	case ast.OpLogOr:
		if lhs != 0 {
			return 1
		}
	}

	rhs := in.evalExpr(expr.Rhs)

	result, err := expr.Op.Apply(lhs, rhs)
	if err != nil {
		panic(report.Raise(report.RuntimeError, expr.OpSpan, "%s: `%d %s %d`", err, lhs, expr.Op, rhs))
	}

	return result
}

// evalCall evaluates a call to a function or intrinsic.  All arguments are
// evaluated left to right before the call is made.
func (in *Interpreter) evalCall(call *ast.CallExpr) int32 {
	args := make([]int32, len(call.Args))
	for i, arg := range call.Args {
		args[i] = in.evalExpr(arg)
	}

	sym := call.Func.Sym
	if sym.Kind == depm.SymIntrinsic {
		return in.callIntrinsic(call, args)
	}

	fd, ok := in.funcs[sym]
	if !ok {
		panic(fmt.Sprintf("interp: %s has no definition", sym.Describe()))
	}

	return in.call(fd, args)
}

// callIntrinsic executes a call to an intrinsic function.
func (in *Interpreter) callIntrinsic(call *ast.CallExpr, args []int32) int32 {
	switch call.Func.Name {
	case depm.WriteIntName:
		fd, value := args[0], args[1]

		buff := strconv.AppendInt(nil, int64(value), 10)
		buff = append(buff, '\n')

		if err := in.out.WriteFD(fd, buff); err != nil {
			panic(report.Raise(report.RuntimeError, call.Span(), "write_int failed on file descriptor %d: %s", fd, err))
		}

		return 0
	default:
		panic(fmt.Sprintf("interp: unknown intrinsic `%s`", call.Func.Name))
	}
}
