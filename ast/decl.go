package ast

import (
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
)

// TranslationUnit is the root of the AST: all the declarations of one source
// file in source order.
type TranslationUnit struct {
	ASTBase

	Decls []Decl
}

// FuncDecl is a function declaration.  Functions declared by a prototype have
// no body.
type FuncDecl struct {
	ASTBase

	Name     string
	NameSpan *report.TextSpan

	// Whether the function returns `int` as opposed to `void`.
	ReturnsValue bool

	// The function body.  This is nil for prototypes.
	Body *Block

	// The symbol declared by this function.  It is filled in by the resolver.
	Sym *depm.Symbol
}

func (*FuncDecl) declNode() {}

// VarDecl declares a single `int` variable, globally or within a block.
type VarDecl struct {
	ASTBase

	Name     string
	NameSpan *report.TextSpan

	// The initializer.  This may be nil.
	Init Expr

	// The symbol declared by this variable.  It is filled in by the resolver.
	Sym *depm.Symbol
}

func (*VarDecl) declNode() {}
func (*VarDecl) stmtNode() {}
