package syntax

import "github.com/alexandercampbell/rust-cc/ast"

// block := '{' {var_decl | stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACE).Span

	var stmts []ast.Stmt
	for !p.has(TOK_RBRACE) {
		switch p.tok.Kind {
		case TOK_INT:
			for _, vd := range p.parseVarDecl() {
				stmts = append(stmts, vd)
			}
		case TOK_VOID:
			p.error(p.tok.Span, "local variables cannot be declared void")
		case TOK_EOF:
			p.reject(KindName(TOK_RBRACE))
		default:
			if stmt := p.parseStmt(); stmt != nil {
				stmts = append(stmts, stmt)
			}
		}
	}

	p.next()

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Stmts:   stmts,
	}
}

// stmt := block | ';' | 'return' [expr] ';' | expr ';' ;
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_SEMI:
		// Empty statements produce no node.
		p.next()
		return nil
	case TOK_RETURN:
		startSpan := p.tok.Span
		p.next()

		var value ast.Expr
		if !p.has(TOK_SEMI) {
			value = p.parseExpr()
		}

		p.want(TOK_SEMI)

		return &ast.ReturnStmt{
			ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
			Value:   value,
		}
	default:
		expr := p.parseExpr()
		p.want(TOK_SEMI)

		return &ast.ExprStmt{
			ASTBase: ast.NewASTBaseOver(expr.Span(), p.lookbehind.Span),
			Expr:    expr,
		}
	}
}
