package report

import "fmt"

// ErrorKind classifies a compile error by the stage and rule that produced it.
type ErrorKind int

// Enumeration of error kinds.
const (
	LexError ErrorKind = iota
	ParseError

	// Resolution errors.
	UndeclaredName
	Redeclaration
	InvalidAssignmentTarget
	ArityMismatch
	NotCallable
	InvalidValueUse
	ReturnMismatch
	NonConstantInitializer
	ConflictingDeclaration

	GenerateError
	RuntimeError
)

var errorKindNames = map[ErrorKind]string{
	LexError:                "lex error",
	ParseError:              "parse error",
	UndeclaredName:          "undeclared name",
	Redeclaration:           "redeclaration",
	InvalidAssignmentTarget: "invalid assignment target",
	ArityMismatch:           "arity mismatch",
	NotCallable:             "not callable",
	InvalidValueUse:         "invalid value use",
	ReturnMismatch:          "return mismatch",
	NonConstantInitializer:  "non-constant initializer",
	ConflictingDeclaration:  "conflicting declaration",
	GenerateError:           "generate error",
	RuntimeError:            "runtime error",
}

func (ek ErrorKind) String() string {
	if name, ok := errorKindNames[ek]; ok {
		return name
	}

	return fmt.Sprintf("error kind %d", int(ek))
}

// -----------------------------------------------------------------------------

// CompileError is an error in the user's source program.  It carries enough
// context to point the user at the offending text.  The span may be nil for
// errors which are not associated with any particular piece of source text.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return fmt.Sprintf("%s: %s", ce.Kind, ce.Message)
	}

	return fmt.Sprintf("%s: %s: %s", ce.Span, ce.Kind, ce.Message)
}

// Raise creates a new compile error.  Pipeline stages panic with the result and
// recover it at their boundary using Catch.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// Catch recovers a compile error raised during a stage of compilation and
// stores it in `err`.  Any other panic is an internal error and continues to
// unwind.
// NB: This function must ALWAYS be deferred.
func Catch(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}
