package generate

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/common"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr generates an expression and returns its value.  Operands are always
// evaluated left to right and before the operator is applied.  Calls to `void`
// functions return nil.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntLiteral:
		return constant.NewInt(types.I32, int64(v.Value))
	case *ast.Identifier:
		return g.currentBlock().NewLoad(types.I32, g.varPtr(v))
	case *ast.Assignment:
		val := g.genExpr(v.Value)
		g.currentBlock().NewStore(val, g.varPtr(v.Target))
		return val
	case *ast.BinaryExpr:
		if v.Op.IsShortCircuit() {
			return g.genShortCircuit(v)
		}

		lhs := g.genExpr(v.Lhs)
		rhs := g.genExpr(v.Rhs)
		return g.genBinaryOp(v.Op, lhs, rhs)
	case *ast.UnaryExpr:
		return g.genUnaryOp(v.Op, g.genExpr(v.Operand))
	case *ast.SizeofExpr:
		// The operand of `sizeof` is never evaluated.
		return constant.NewInt(types.I32, common.IntSize)
	case *ast.CallExpr:
		return g.genCall(v)
	default:
		panic(fmt.Sprintf("generate: unknown expression type %T", expr))
	}
}

// varPtr returns the storage of the variable an identifier refers to.
func (g *Generator) varPtr(ident *ast.Identifier) value.Value {
	if ident.Sym == nil {
		panic(fmt.Sprintf("generate: unresolved identifier `%s`", ident.Name))
	}

	ptr, ok := g.vars[ident.Sym]
	if !ok {
		panic(fmt.Sprintf("generate: no storage for %s", ident.Sym.Describe()))
	}

	return ptr
}

// -----------------------------------------------------------------------------

// genBinaryOp generates a non-short-circuiting binary operator.
func (g *Generator) genBinaryOp(op ast.BinaryOp, lhs, rhs value.Value) value.Value {
	block := g.currentBlock()

	switch op {
	case ast.OpAdd:
		return block.NewAdd(lhs, rhs)
	case ast.OpSub:
		return block.NewSub(lhs, rhs)
	case ast.OpMul:
		return block.NewMul(lhs, rhs)
	case ast.OpDiv:
		return block.NewSDiv(lhs, rhs)
	case ast.OpMod:
		return block.NewSRem(lhs, rhs)
	case ast.OpShl:
		return block.NewShl(lhs, g.shiftCount(rhs))
	case ast.OpShr:
		return block.NewAShr(lhs, g.shiftCount(rhs))
	case ast.OpBitAnd:
		return block.NewAnd(lhs, rhs)
	case ast.OpBitXor:
		return block.NewXor(lhs, rhs)
	case ast.OpBitOr:
		return block.NewOr(lhs, rhs)
	}

	pred, ok := comparePreds[op]
	if !ok {
		panic(fmt.Sprintf("generate: unknown binary operator `%s`", op))
	}

	return block.NewZExt(block.NewICmp(pred, lhs, rhs), types.I32)
}

// comparePreds maps comparison operators to their signed LLVM predicates.
var comparePreds = map[ast.BinaryOp]enum.IPred{
	ast.OpLt:   enum.IPredSLT,
	ast.OpGt:   enum.IPredSGT,
	ast.OpLtEq: enum.IPredSLE,
	ast.OpGtEq: enum.IPredSGE,
	ast.OpEq:   enum.IPredEQ,
	ast.OpNeq:  enum.IPredNE,
}

// shiftCount masks a shift count to the width of an `int`.  Shifting an LLVM
// integer by its width or more produces poison.
func (g *Generator) shiftCount(count value.Value) value.Value {
	return g.currentBlock().NewAnd(count, constant.NewInt(types.I32, 31))
}

// genShortCircuit generates `&&` or `||`.  The right operand is only evaluated
// if the left operand does not determine the result.
func (g *Generator) genShortCircuit(bexpr *ast.BinaryExpr) value.Value {
	lhs := g.genExpr(bexpr.Lhs)
	lhsTrue := g.currentBlock().NewICmp(enum.IPredNE, lhs, constant.NewInt(types.I32, 0))

	rhsBlock := g.appendBlock()
	endBlock := g.appendBlock()

	// The result if the right operand is skipped.
	var skipResult *constant.Int
	if bexpr.Op == ast.OpLogAnd {
		g.block.NewCondBr(lhsTrue, rhsBlock, endBlock)
		skipResult = constant.NewInt(types.I32, 0)
	} else {
		g.block.NewCondBr(lhsTrue, endBlock, rhsBlock)
		skipResult = constant.NewInt(types.I32, 1)
	}

	incoming := []*ir.Incoming{ir.NewIncoming(skipResult, g.block)}

	g.block = rhsBlock
	rhs := g.genExpr(bexpr.Rhs)
	rhsTrue := g.block.NewICmp(enum.IPredNE, rhs, constant.NewInt(types.I32, 0))
	rhsResult := g.block.NewZExt(rhsTrue, types.I32)
	incoming = append(incoming, ir.NewIncoming(rhsResult, g.block))
	g.block.NewBr(endBlock)

	g.block = endBlock
	return g.block.NewPhi(incoming...)
}

// genUnaryOp generates a unary operator.
func (g *Generator) genUnaryOp(op ast.UnaryOp, operand value.Value) value.Value {
	block := g.currentBlock()

	switch op {
	case ast.OpNeg:
		return block.NewSub(constant.NewInt(types.I32, 0), operand)
	case ast.OpPos:
		return operand
	case ast.OpNot:
		isZero := block.NewICmp(enum.IPredEQ, operand, constant.NewInt(types.I32, 0))
		return block.NewZExt(isZero, types.I32)
	case ast.OpCompl:
		return block.NewXor(operand, constant.NewInt(types.I32, -1))
	default:
		panic(fmt.Sprintf("generate: unknown unary operator `%s`", op))
	}
}

// -----------------------------------------------------------------------------

// genCall generates a call to a function or intrinsic.  The arguments are
// evaluated left to right.
func (g *Generator) genCall(call *ast.CallExpr) value.Value {
	sym := call.Func.Sym
	if sym == nil {
		panic(fmt.Sprintf("generate: unresolved function `%s`", call.Func.Name))
	}

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.genExpr(arg)
	}

	if sym.Kind == depm.SymIntrinsic {
		return g.genIntrinsicCall(call, args)
	}

	llvmFunc, ok := g.funcs[sym]
	if !ok {
		g.error(call.Func, "function `%s` is declared but never defined", sym.Name)
	}

	callInst := g.currentBlock().NewCall(llvmFunc, args...)
	if !sym.ReturnsValue {
		return nil
	}

	return callInst
}
