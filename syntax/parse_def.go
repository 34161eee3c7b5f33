package syntax

import "github.com/alexandercampbell/rust-cc/ast"

// translation_unit := {top_decl} EOF ;
func (p *Parser) parseTranslationUnit() *ast.TranslationUnit {
	startSpan := p.tok.Span

	var decls []ast.Decl
	for !p.has(TOK_EOF) {
		decls = append(decls, p.parseTopDecl()...)
	}

	return &ast.TranslationUnit{
		ASTBase: ast.NewASTBaseOver(startSpan, p.tok.Span),
		Decls:   decls,
	}
}

// top_decl := ('int' | 'void') 'ident' (func_rest | var_rest) ;
// func_rest := '(' ['void'] ')' (block | ';') ;
// var_rest := ['=' expr] {',' declarator} ';' ;
func (p *Parser) parseTopDecl() []ast.Decl {
	if !p.has(TOK_INT) && !p.has(TOK_VOID) {
		p.reject("declaration")
	}

	typeTok := p.tok
	p.next()

	nameTok := p.want(TOK_IDENT)

	if p.has(TOK_LPAREN) {
		return []ast.Decl{p.parseFuncRest(typeTok, nameTok)}
	}

	if typeTok.Kind == TOK_VOID {
		p.error(nameTok.Span, "variable `%s` declared void", nameTok.Value)
	}

	vars := p.parseDeclaratorsRest(typeTok, nameTok)

	decls := make([]ast.Decl, len(vars))
	for i, vd := range vars {
		decls[i] = vd
	}

	return decls
}

// func_rest := '(' ['void'] ')' (block | ';') ;
func (p *Parser) parseFuncRest(typeTok, nameTok *Token) *ast.FuncDecl {
	p.want(TOK_LPAREN)

	// An explicit `void` parameter list is the same as an empty one.
	if p.has(TOK_VOID) {
		p.next()
	}

	if !p.has(TOK_RPAREN) {
		p.error(p.tok.Span, "function parameters are not supported")
	}
	p.next()

	fd := &ast.FuncDecl{
		Name:         nameTok.Value,
		NameSpan:     nameTok.Span,
		ReturnsValue: typeTok.Kind == TOK_INT,
	}

	if p.has(TOK_SEMI) {
		p.next()
	} else if p.has(TOK_LBRACE) {
		fd.Body = p.parseBlock()
	} else {
		p.reject("function body or `;`")
	}

	fd.ASTBase = ast.NewASTBaseOver(typeTok.Span, p.lookbehind.Span)
	return fd
}

// var_decl := 'int' declarator {',' declarator} ';' ;
func (p *Parser) parseVarDecl() []*ast.VarDecl {
	typeTok := p.want(TOK_INT)
	nameTok := p.want(TOK_IDENT)

	return p.parseDeclaratorsRest(typeTok, nameTok)
}

// parseDeclaratorsRest parses the remainder of a variable declaration after
// the type and the first declarator's name.  Each declarator becomes its own
// variable declaration.
//
// declarator := 'ident' ['=' expr] ;
func (p *Parser) parseDeclaratorsRest(typeTok, nameTok *Token) []*ast.VarDecl {
	var vars []*ast.VarDecl

	for {
		vd := &ast.VarDecl{
			Name:     nameTok.Value,
			NameSpan: nameTok.Span,
		}

		if p.has(TOK_ASSIGN) {
			p.next()
			vd.Init = p.parseExpr()
		}

		vd.ASTBase = ast.NewASTBaseOver(nameTok.Span, p.lookbehind.Span)
		vars = append(vars, vd)

		if p.has(TOK_COMMA) {
			p.next()
			nameTok = p.want(TOK_IDENT)
			continue
		}

		break
	}

	if !p.has(TOK_SEMI) {
		if len(vars) == 1 && vars[0].Init == nil {
			p.reject("`=`, `,` or `;`")
		}

		p.reject("`,` or `;`")
	}
	p.next()

	// The first declaration covers the type keyword as well.
	vars[0].ASTBase = ast.NewASTBaseOver(typeTok.Span, vars[0].Span())

	return vars
}
