package generate

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genIntrinsicCall generates a call to an intrinsic with already evaluated
// arguments.
func (g *Generator) genIntrinsicCall(call *ast.CallExpr, args []value.Value) value.Value {
	switch call.Func.Name {
	case depm.WriteIntName:
		g.currentBlock().NewCall(g.getWriteInt(), args...)
		return nil
	default:
		panic(fmt.Sprintf("generate: intrinsic `%s` not implemented", call.Func.Name))
	}
}

// writeIntBufSize is the size of the buffer `write_int` formats into: enough
// for the sign and ten digits of any `int` followed by a newline.
const writeIntBufSize = 12

// getWriteInt returns the `write_int` helper, generating it on first use.  The
// helper formats its argument in decimal into a stack buffer, back to front,
// and hands the bytes to a single `write` system call on the file descriptor.
//
//	void write_int(int fd, int value)
func (g *Generator) getWriteInt() *ir.Func {
	if g.writeIntFunc != nil {
		return g.writeIntFunc
	}

	// ssize_t write(int fd, const void *buf, size_t count)
	g.writeFunc = g.mod.NewFunc(
		"write",
		types.I64,
		ir.NewParam("fd", types.I32),
		ir.NewParam("buf", types.I8Ptr),
		ir.NewParam("count", types.I64),
	)

	fd := ir.NewParam("fd", types.I32)
	val := ir.NewParam("value", types.I32)
	fn := g.mod.NewFunc(globalPrefix+depm.WriteIntName, types.Void, fd, val)
	fn.Linkage = enum.LinkageInternal

	entry := fn.NewBlock("entry")
	digitsBlock := fn.NewBlock("digits")
	signBlock := fn.NewBlock("sign")
	minusBlock := fn.NewBlock("minus")
	emitBlock := fn.NewBlock("emit")

	bufType := types.NewArray(writeIntBufSize, types.I8)
	buf := entry.NewAlloca(bufType)
	buf.SetName("buf")
	remPtr := entry.NewAlloca(types.I64)
	remPtr.SetName("rem")
	posPtr := entry.NewAlloca(types.I64)
	posPtr.SetName("pos")

	// The magnitude is computed in 64 bits so that the most negative `int` has
	// a representable absolute value.
	wide := entry.NewSExt(val, types.I64)
	isNeg := entry.NewICmp(enum.IPredSLT, wide, i64(0))
	negated := entry.NewSub(i64(0), wide)
	entry.NewStore(entry.NewSelect(isNeg, negated, wide), remPtr)

	last := i64(writeIntBufSize - 1)
	entry.NewStore(constant.NewInt(types.I8, '\n'), bufSlot(entry, bufType, buf, last))
	entry.NewStore(last, posPtr)
	entry.NewBr(digitsBlock)

	// Emit digits from least to most significant.  At least one digit is
	// always written, so zero prints as `0`.
	rem := digitsBlock.NewLoad(types.I64, remPtr)
	pos := digitsBlock.NewSub(digitsBlock.NewLoad(types.I64, posPtr), i64(1))
	digit := digitsBlock.NewAdd(digitsBlock.NewURem(rem, i64(10)), i64('0'))
	digitsBlock.NewStore(digitsBlock.NewTrunc(digit, types.I8), bufSlot(digitsBlock, bufType, buf, pos))
	quot := digitsBlock.NewUDiv(rem, i64(10))
	digitsBlock.NewStore(quot, remPtr)
	digitsBlock.NewStore(pos, posPtr)
	digitsBlock.NewCondBr(digitsBlock.NewICmp(enum.IPredNE, quot, i64(0)), digitsBlock, signBlock)

	signBlock.NewCondBr(isNeg, minusBlock, emitBlock)

	minusPos := minusBlock.NewSub(minusBlock.NewLoad(types.I64, posPtr), i64(1))
	minusBlock.NewStore(constant.NewInt(types.I8, '-'), bufSlot(minusBlock, bufType, buf, minusPos))
	minusBlock.NewStore(minusPos, posPtr)
	minusBlock.NewBr(emitBlock)

	start := emitBlock.NewLoad(types.I64, posPtr)
	count := emitBlock.NewSub(i64(writeIntBufSize), start)
	emitBlock.NewCall(g.writeFunc, fd, bufSlot(emitBlock, bufType, buf, start), count)
	emitBlock.NewRet(nil)

	g.writeIntFunc = fn
	return fn
}

// bufSlot returns a pointer to the byte at `index` of a stack buffer.
func bufSlot(block *ir.Block, bufType types.Type, buf, index value.Value) value.Value {
	return block.NewGetElementPtr(bufType, buf, i64(0), index)
}

func i64(x int64) *constant.Int {
	return constant.NewInt(types.I64, x)
}
