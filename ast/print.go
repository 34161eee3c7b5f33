package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexandercampbell/rust-cc/depm"
)

// Sprint renders an AST node as an S-expression.  Each top-level declaration
// of a translation unit is written on its own line.  Names which have been
// resolved are followed by the tag of their symbol: eg. `count:g1`.
func Sprint(node ASTNode) string {
	sb := &strings.Builder{}
	sprintNode(sb, node)
	return sb.String()
}

func sprintNode(sb *strings.Builder, node ASTNode) {
	switch v := node.(type) {
	case *TranslationUnit:
		for i, decl := range v.Decls {
			if i > 0 {
				sb.WriteByte('\n')
			}

			sprintNode(sb, decl)
		}
	case *FuncDecl:
		retType := "void"
		if v.ReturnsValue {
			retType = "int"
		}

		fmt.Fprintf(sb, "(func %s %s", retType, symName(v.Name, v.Sym))
		if v.Body != nil {
			sb.WriteByte(' ')
			sprintNode(sb, v.Body)
		}
		sb.WriteByte(')')
	case *VarDecl:
		sb.WriteString("(var " + symName(v.Name, v.Sym))
		if v.Init != nil {
			sb.WriteByte(' ')
			sprintNode(sb, v.Init)
		}
		sb.WriteByte(')')
	case *Block:
		sb.WriteString("(block")
		for _, stmt := range v.Stmts {
			sb.WriteByte(' ')
			sprintNode(sb, stmt)
		}
		sb.WriteByte(')')
	case *ExprStmt:
		sb.WriteString("(expr ")
		sprintNode(sb, v.Expr)
		sb.WriteByte(')')
	case *ReturnStmt:
		sb.WriteString("(return")
		if v.Value != nil {
			sb.WriteByte(' ')
			sprintNode(sb, v.Value)
		}
		sb.WriteByte(')')
	case *Assignment:
		sb.WriteString("(= ")
		sprintNode(sb, v.Target)
		sb.WriteByte(' ')
		sprintNode(sb, v.Value)
		sb.WriteByte(')')
	case *BinaryExpr:
		sb.WriteString("(" + v.Op.String() + " ")
		sprintNode(sb, v.Lhs)
		sb.WriteByte(' ')
		sprintNode(sb, v.Rhs)
		sb.WriteByte(')')
	case *UnaryExpr:
		sb.WriteString("(" + v.Op.String() + " ")
		sprintNode(sb, v.Operand)
		sb.WriteByte(')')
	case *SizeofExpr:
		sb.WriteString("(sizeof ")
		if v.Operand == nil {
			sb.WriteString("int")
		} else {
			sprintNode(sb, v.Operand)
		}
		sb.WriteByte(')')
	case *CallExpr:
		sb.WriteString("(call ")
		sprintNode(sb, v.Func)
		for _, arg := range v.Args {
			sb.WriteByte(' ')
			sprintNode(sb, arg)
		}
		sb.WriteByte(')')
	case *Identifier:
		sb.WriteString(symName(v.Name, v.Sym))
	case *IntLiteral:
		sb.WriteString(strconv.Itoa(int(v.Value)))
	default:
		panic(fmt.Sprintf("ast: unknown node type %T", node))
	}
}

func symName(name string, sym *depm.Symbol) string {
	if sym == nil {
		return name
	}

	return name + ":" + sym.Tag()
}
