package walk

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/depm"
	"github.com/alexandercampbell/rust-cc/report"
)

// Walker is responsible for resolving the names of a translation unit.  It
// performs a single depth-first pass over the AST, building the scope tree as
// it goes and binding every identifier to the symbol it names.  The walker
// only annotates the AST: it never changes its shape.
type Walker struct {
	// The arena owning every scope created during resolution.
	arena *depm.ScopeArena

	// The universe of intrinsic symbols.
	uni *depm.Universe

	// The scope of the translation unit.
	globalScope depm.ScopeID

	// The innermost scope at the walker's current position.
	currScope depm.ScopeID

	// The index to assign to the next declared symbol.
	nextIndex int

	// The function whose body is being walked.  This is nil at the top level.
	enclosingFunc *depm.Symbol
}

// Resolve resolves all the names in the translation unit.  The first error
// encountered stops resolution and is returned as a *report.CompileError.
func Resolve(tu *ast.TranslationUnit) (err error) {
	defer report.Catch(&err)

	w := newWalker()
	w.walkTranslationUnit(tu)

	return nil
}

// newWalker creates a new walker with a fresh global scope seeded with the
// intrinsic symbols.
func newWalker() *Walker {
	w := &Walker{
		arena: depm.NewScopeArena(),
		uni:   depm.NewUniverse(),
	}

	w.globalScope = w.arena.NewScope(depm.NoScope)
	w.currScope = w.globalScope
	w.nextIndex = w.uni.Seed(w.arena, w.globalScope, 0)

	return w
}

// walkTranslationUnit walks every top-level declaration in source order.  A
// top-level name is visible only after its declaration.
func (w *Walker) walkTranslationUnit(tu *ast.TranslationUnit) {
	for _, decl := range tu.Decls {
		switch v := decl.(type) {
		case *ast.FuncDecl:
			w.walkFuncDecl(v)
		case *ast.VarDecl:
			w.walkGlobalVarDecl(v)
		default:
			panic(fmt.Sprintf("walk: unknown declaration type %T", decl))
		}
	}

	w.arena.Close(w.globalScope)
}

// -----------------------------------------------------------------------------

// newSymbol creates a new symbol with the next declaration-order index.
func (w *Walker) newSymbol(name string, kind depm.SymbolKind, defSpan *report.TextSpan) *depm.Symbol {
	sym := &depm.Symbol{
		Name:    name,
		Kind:    kind,
		Index:   w.nextIndex,
		DefSpan: defSpan,
	}

	w.nextIndex++
	return sym
}

// lookup looks up a symbol by name in all visible scopes, innermost first.  If
// no symbol by the given name can be found, then an error is raised.
func (w *Walker) lookup(name string, span *report.TextSpan) *depm.Symbol {
	if sym := w.arena.Lookup(w.currScope, name); sym != nil {
		return sym
	}

	w.error(report.UndeclaredName, span, "use of undeclared identifier `%s`", name)
	return nil
}

// define declares a symbol in the current scope.  If a symbol of the same name
// is already declared in the current scope, then an error is raised.  Symbols
// of the same name in enclosing scopes are shadowed.
func (w *Walker) define(sym *depm.Symbol) {
	if prev := w.arena.Define(w.currScope, sym); prev != nil {
		w.redeclared(sym, prev)
	}
}

// redeclared raises a redeclaration error for `sym` which conflicts with the
// previous declaration `prev`.
func (w *Walker) redeclared(sym, prev *depm.Symbol) {
	if prev.DefSpan == nil {
		w.error(report.Redeclaration, sym.DefSpan, "redeclaration of %s", prev.Describe())
	}

	w.error(
		report.Redeclaration,
		sym.DefSpan,
		"redeclaration of `%s`: previously declared as %s at %s",
		sym.Name,
		prev.Describe(),
		prev.DefSpan,
	)
}

// pushScope enters a new scope enclosed by the current scope.
func (w *Walker) pushScope() {
	w.currScope = w.arena.NewScope(w.currScope)
}

// popScope leaves the current scope.  The scope's bindings are discarded.
func (w *Walker) popScope() {
	w.arena.Close(w.currScope)
	w.currScope = w.arena.Parent(w.currScope)
}

// -----------------------------------------------------------------------------

// error raises an error on the given span that aborts resolution.
func (w *Walker) error(kind report.ErrorKind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}
