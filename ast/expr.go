package ast

import (
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
)

// Assignment stores a value into a variable and yields the stored value.
type Assignment struct {
	ASTBase

	Target *Identifier
	Value  Expr
}

func (*Assignment) exprNode() {}

// BinaryOp is a binary operator.
type BinaryOp int

// Enumeration of binary operators.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpShl
	OpShr

	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpEq
	OpNeq

	OpBitAnd
	OpBitXor
	OpBitOr

	OpLogAnd
	OpLogOr
)

var binaryOpNames = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpShl:    "<<",
	OpShr:    ">>",
	OpLt:     "<",
	OpGt:     ">",
	OpLtEq:   "<=",
	OpGtEq:   ">=",
	OpEq:     "==",
	OpNeq:    "!=",
	OpBitAnd: "&",
	OpBitXor: "^",
	OpBitOr:  "|",
	OpLogAnd: "&&",
	OpLogOr:  "||",
}

func (op BinaryOp) String() string {
	return binaryOpNames[op]
}

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	ASTBase

	Op     BinaryOp
	OpSpan *report.TextSpan

	Lhs, Rhs Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryOp is a prefix unary operator.
type UnaryOp int

// Enumeration of unary operators.
const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot
	OpCompl
)

var unaryOpNames = [...]string{
	OpNeg:   "-",
	OpPos:   "+",
	OpNot:   "!",
	OpCompl: "~",
}

func (op UnaryOp) String() string {
	return unaryOpNames[op]
}

// UnaryExpr applies a prefix unary operator to an operand.
type UnaryExpr struct {
	ASTBase

	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// SizeofExpr yields the size in bytes of its operand.  The operand is never
// evaluated.  It is nil for `sizeof(int)`.
type SizeofExpr struct {
	ASTBase

	Operand Expr
}

func (*SizeofExpr) exprNode() {}

// CallExpr calls a function or intrinsic.
type CallExpr struct {
	ASTBase

	Func *Identifier
	Args []Expr
}

func (*CallExpr) exprNode() {}

// Identifier is a use of a declared name.
type Identifier struct {
	ASTBase

	Name string

	// The symbol the identifier refers to.  This is nil until the resolver
	// runs and is never nil afterward.
	Sym *depm.Symbol
}

func (*Identifier) exprNode() {}

// IntLiteral is a decimal integer literal.
type IntLiteral struct {
	ASTBase

	Value int32
}

func (*IntLiteral) exprNode() {}
