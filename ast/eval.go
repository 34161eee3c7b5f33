package ast

import (
	"errors"
	"math"
)

// Errors returned when an operator has no defined result.
var (
	ErrDivideByZero   = errors.New("division by zero")
	ErrDivideOverflow = errors.New("integer overflow in division")
)

// Apply computes the result of the binary operator on two `int` values using
// 32-bit two's-complement arithmetic.  Division and remainder truncate toward
// zero, shift counts are taken modulo 32, and right shifts are arithmetic.
// Logical operators are applied to both operands: short-circuiting is the
// caller's responsibility.
func (op BinaryOp) Apply(a, b int32) (int32, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv, OpMod:
		if b == 0 {
			return 0, ErrDivideByZero
		} else if a == math.MinInt32 && b == -1 {
			return 0, ErrDivideOverflow
		}

		if op == OpDiv {
			return a / b, nil
		}

		return a % b, nil
	case OpShl:
		return a << (uint32(b) & 31), nil
	case OpShr:
		return a >> (uint32(b) & 31), nil
	case OpLt:
		return boolToInt(a < b), nil
	case OpGt:
		return boolToInt(a > b), nil
	case OpLtEq:
		return boolToInt(a <= b), nil
	case OpGtEq:
		return boolToInt(a >= b), nil
	case OpEq:
		return boolToInt(a == b), nil
	case OpNeq:
		return boolToInt(a != b), nil
	case OpBitAnd:
		return a & b, nil
	case OpBitXor:
		return a ^ b, nil
	case OpBitOr:
		return a | b, nil
	case OpLogAnd:
		return boolToInt(a != 0 && b != 0), nil
	case OpLogOr:
		return boolToInt(a != 0 || b != 0), nil
	default:
		panic("ast: unknown binary operator")
	}
}

// Apply computes the result of the unary operator on an `int` value.
func (op UnaryOp) Apply(a int32) int32 {
	switch op {
	case OpNeg:
		return -a
	case OpPos:
		return a
	case OpNot:
		return boolToInt(a == 0)
	case OpCompl:
		return ^a
	default:
		panic("ast: unknown unary operator")
	}
}

// IsShortCircuit returns whether the operator may skip evaluating its right
// operand.
func (op BinaryOp) IsShortCircuit() bool {
	return op == OpLogAnd || op == OpLogOr
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}
