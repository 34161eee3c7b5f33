package depm

import (
	"fmt"

	"github.com/alexandercampbell/rust-cc/report"
)

// SymbolKind indicates what kind of entity a symbol names.
type SymbolKind int

// Enumeration of symbol kinds.
const (
	SymGlobalVar SymbolKind = iota
	SymLocalVar
	SymFunc
	SymIntrinsic
)

// Symbol represents a declared name: a variable, a function, or an intrinsic.
type Symbol struct {
	// The name of the symbol.
	Name string

	// The kind of the symbol.
	Kind SymbolKind

	// The declaration-order index of the symbol.  This is unique among all the
	// symbols created during the resolution of a single translation unit.
	Index int

	// The span of the symbol's defining identifier.  This is nil for
	// intrinsics.
	DefSpan *report.TextSpan

	// The number of arguments a function or intrinsic accepts.
	Arity int

	// Whether a function or intrinsic produces an `int` value.
	ReturnsValue bool

	// Whether a function has a body: functions may be declared by a prototype
	// before they are defined.
	Defined bool

	// The value of a global variable's constant initializer.  Globals without
	// an initializer are zero.
	InitValue int32
}

// IsVariable returns whether the symbol names a variable.
func (s *Symbol) IsVariable() bool {
	return s.Kind == SymGlobalVar || s.Kind == SymLocalVar
}

// IsCallable returns whether the symbol names a function or intrinsic.
func (s *Symbol) IsCallable() bool {
	return s.Kind == SymFunc || s.Kind == SymIntrinsic
}

// Describe returns a human readable description of the symbol used in error
// messages: eg. "function `main`".
func (s *Symbol) Describe() string {
	switch s.Kind {
	case SymGlobalVar:
		return fmt.Sprintf("global variable `%s`", s.Name)
	case SymLocalVar:
		return fmt.Sprintf("local variable `%s`", s.Name)
	case SymFunc:
		return fmt.Sprintf("function `%s`", s.Name)
	default:
		return fmt.Sprintf("intrinsic `%s`", s.Name)
	}
}

// Tag returns a short tag identifying the symbol: a kind letter followed by
// the symbol's index.  This is used to show resolution in AST dumps.
func (s *Symbol) Tag() string {
	var kindLetter byte
	switch s.Kind {
	case SymGlobalVar:
		kindLetter = 'g'
	case SymLocalVar:
		kindLetter = 'l'
	case SymFunc:
		kindLetter = 'f'
	default:
		kindLetter = 'i'
	}

	return fmt.Sprintf("%c%d", kindLetter, s.Index)
}
