package build

import (
	"io"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/generate"
	"github.com/alexandercampbell/rust-cc/interp"
	"github.com/alexandercampbell/rust-cc/syntax"
	"github.com/alexandercampbell/rust-cc/walk"
	"github.com/llir/llvm/ir"
)

// Analyze parses and resolves a translation unit.  The returned AST has every
// identifier bound to its symbol.
func Analyze(r io.Reader) (*ast.TranslationUnit, error) {
	tu, err := syntax.Parse(r)
	if err != nil {
		return nil, err
	}

	if err := walk.Resolve(tu); err != nil {
		return nil, err
	}

	return tu, nil
}

// CompileToIR runs the whole front end and the generator over a translation
// unit and returns the resulting LLVM module.
func CompileToIR(r io.Reader, target generate.Target) (*ir.Module, error) {
	tu, err := Analyze(r)
	if err != nil {
		return nil, err
	}

	return generate.Generate(tu, target)
}

// Interpret analyzes a translation unit and executes it with the interpreter,
// returning the program's exit status.
func Interpret(r io.Reader, out interp.FDWriter) (int32, error) {
	tu, err := Analyze(r)
	if err != nil {
		return 0, err
	}

	return interp.Run(tu, out)
}
