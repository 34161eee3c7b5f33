package syntax

import (
	"math"
	"strconv"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/report"
)

// expr := assign_expr ;
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

// assign_expr := binop_expr ['=' assign_expr] ;
func (p *Parser) parseAssignExpr() ast.Expr {
	lhs := p.parseBinOpExpr()

	if !p.has(TOK_ASSIGN) {
		return lhs
	}

	target, ok := lhs.(*ast.Identifier)
	if !ok {
		p.error(lhs.Span(), "expression is not assignable")
	}

	p.next()
	rhs := p.parseAssignExpr()

	return &ast.Assignment{
		ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
		Target:  target,
		Value:   rhs,
	}
}

// -----------------------------------------------------------------------------

// lor_expr := land_expr {'||' land_expr} ;
// land_expr := bwor_expr {'&&' bwor_expr} ;
// bwor_expr := bwxor_expr {'|' bwxor_expr} ;
// bwxor_expr := bwand_expr {'^' bwand_expr} ;
// bwand_expr := eq_expr {'&' eq_expr} ;
// eq_expr := rel_expr {('==' | '!=') rel_expr} ;
// rel_expr := shift_expr {('<' | '>' | '<=' | '>=') shift_expr} ;
// shift_expr := arith_expr {('<<' | '>>') arith_expr} ;
// arith_expr := term {('+' | '-') term} ;
// term := unary_expr {('*' | '/' | '%') unary_expr} ;
func (p *Parser) parseBinOpExpr() ast.Expr {
	return p.precedenceParse(p.parseUnaryExpr(), len(precTable)-1)
}

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.  All binary operators are left
// associative.
var precTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS},
	{TOK_LSHIFT, TOK_RSHIFT},
	{TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ},
	{TOK_EQ, TOK_NEQ},
	{TOK_BWAND},
	{TOK_BWXOR},
	{TOK_BWOR},
	{TOK_LAND},
	{TOK_LOR},
}

// binaryOps maps binary operator tokens to their AST operators.
var binaryOps = map[int]ast.BinaryOp{
	TOK_STAR:   ast.OpMul,
	TOK_DIV:    ast.OpDiv,
	TOK_MOD:    ast.OpMod,
	TOK_PLUS:   ast.OpAdd,
	TOK_MINUS:  ast.OpSub,
	TOK_LSHIFT: ast.OpShl,
	TOK_RSHIFT: ast.OpShr,
	TOK_LT:     ast.OpLt,
	TOK_GT:     ast.OpGt,
	TOK_LTEQ:   ast.OpLtEq,
	TOK_GTEQ:   ast.OpGtEq,
	TOK_EQ:     ast.OpEq,
	TOK_NEQ:    ast.OpNeq,
	TOK_BWAND:  ast.OpBitAnd,
	TOK_BWXOR:  ast.OpBitXor,
	TOK_BWOR:   ast.OpBitOr,
	TOK_LAND:   ast.OpLogAnd,
	TOK_LOR:    ast.OpLogOr,
}

// precOf returns the index of the given token kind in the precedence table.  If
// the token is not a binary operator, -1 is returned.
func precOf(kind int) int {
	for prec, precLevel := range precTable {
		for _, opKind := range precLevel {
			if opKind == kind {
				return prec
			}
		}
	}

	return -1
}

// precedenceParse performs operator precedence parsing for binary operators.
// It consumes all the operators whose precedence index is at most `maxPrec`
// (ie. which bind at least as tightly as the operators at `maxPrec`) to the
// right of `lhs`.
func (p *Parser) precedenceParse(lhs ast.Expr, maxPrec int) ast.Expr {
	for {
		opPrec := precOf(p.tok.Kind)
		if opPrec == -1 || opPrec > maxPrec {
			return lhs
		}

		op := p.tok
		p.next()

		// The right operand absorbs every operator that binds more tightly than
		// this one.  Operators of equal precedence are left to this loop, which
		// makes them left associative.
		rhs := p.parseUnaryExpr()
		for {
			nextPrec := precOf(p.tok.Kind)
			if nextPrec == -1 || nextPrec >= opPrec {
				break
			}

			rhs = p.precedenceParse(rhs, opPrec-1)
		}

		lhs = &ast.BinaryExpr{
			ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
			Op:      binaryOps[op.Kind],
			OpSpan:  op.Span,
			Lhs:     lhs,
			Rhs:     rhs,
		}
	}
}

// -----------------------------------------------------------------------------

// unaryOps maps unary operator tokens to their AST operators.
var unaryOps = map[int]ast.UnaryOp{
	TOK_MINUS: ast.OpNeg,
	TOK_PLUS:  ast.OpPos,
	TOK_NOT:   ast.OpNot,
	TOK_COMPL: ast.OpCompl,
}

// unary_expr := ('-' | '+' | '!' | '~') unary_expr | sizeof_expr | atom_expr ;
func (p *Parser) parseUnaryExpr() ast.Expr {
	if op, ok := unaryOps[p.tok.Kind]; ok {
		startSpan := p.tok.Span
		p.next()

		var operand ast.Expr
		if op == ast.OpNeg && p.has(TOK_INTLIT) && p.tok.Value == strconv.FormatInt(minIntMagnitude, 10) {
			// `-2147483648`: the literal wraps to the most negative `int` and
			// negating it yields the same value.
			operand = &ast.IntLiteral{
				ASTBase: ast.NewASTBaseOn(p.tok.Span),
				Value:   math.MinInt32,
			}

			p.next()
		} else {
			operand = p.parseUnaryExpr()
		}

		return &ast.UnaryExpr{
			ASTBase: ast.NewASTBaseOver(startSpan, operand.Span()),
			Op:      op,
			Operand: operand,
		}
	}

	if p.has(TOK_SIZEOF) {
		return p.parseSizeofExpr()
	}

	return p.parseAtomExpr()
}

// sizeof_expr := 'sizeof' ('(' ('int' | expr) ')' | unary_expr) ;
func (p *Parser) parseSizeofExpr() ast.Expr {
	startSpan := p.want(TOK_SIZEOF).Span

	if p.has(TOK_LPAREN) {
		p.next()

		var operand ast.Expr
		if p.has(TOK_INT) {
			p.next()
		} else {
			operand = p.parseExpr()
		}

		p.want(TOK_RPAREN)

		return &ast.SizeofExpr{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Operand: operand,
		}
	}

	operand := p.parseUnaryExpr()
	return &ast.SizeofExpr{
		ASTBase: ast.NewASTBaseOver(startSpan, operand.Span()),
		Operand: operand,
	}
}

// atom_expr := 'intlit' | 'ident' [call_args] | '(' expr ')' ;
func (p *Parser) parseAtomExpr() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		tok := p.tok
		p.next()

		value, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			panic(report.Raise(report.LexError, tok.Span, "integer literal `%s` is too large for type `int`", tok.Value))
		}

		return &ast.IntLiteral{
			ASTBase: ast.NewASTBaseOn(tok.Span),
			Value:   int32(value),
		}
	case TOK_IDENT:
		tok := p.tok
		p.next()

		ident := &ast.Identifier{
			ASTBase: ast.NewASTBaseOn(tok.Span),
			Name:    tok.Value,
		}

		if p.has(TOK_LPAREN) {
			return p.parseCallArgs(ident)
		}

		return ident
	case TOK_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.want(TOK_RPAREN)

		return expr
	default:
		p.reject("expression")
		return nil
	}
}

// call_args := '(' [assign_expr {',' assign_expr}] ')' ;
func (p *Parser) parseCallArgs(fn *ast.Identifier) ast.Expr {
	p.want(TOK_LPAREN)

	var args []ast.Expr
	if !p.has(TOK_RPAREN) {
		for {
			args = append(args, p.parseAssignExpr())

			if p.has(TOK_COMMA) {
				p.next()
				continue
			}

			break
		}
	}

	p.want(TOK_RPAREN)

	return &ast.CallExpr{
		ASTBase: ast.NewASTBaseOver(fn.Span(), p.lookbehind.Span),
		Func:    fn,
		Args:    args,
	}
}
