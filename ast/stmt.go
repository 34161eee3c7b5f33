package ast

// Block is a braced sequence of declarations and statements.  Each block
// introduces a new scope.
type Block struct {
	ASTBase

	Stmts []Stmt
}

func (*Block) stmtNode() {}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	ASTBase

	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// ReturnStmt returns from the enclosing function.  The value is nil for a bare
// `return;`.
type ReturnStmt struct {
	ASTBase

	Value Expr
}

func (*ReturnStmt) stmtNode() {}
