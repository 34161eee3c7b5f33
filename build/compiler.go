package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/generate"
	"github.com/alexandercampbell/rust-cc/interp"
	"github.com/alexandercampbell/rust-cc/mods"
	"github.com/alexandercampbell/rust-cc/report"
	"github.com/alexandercampbell/rust-cc/syntax"
	"github.com/alexandercampbell/rust-cc/walk"
	"github.com/llir/llvm/ir"
)

// Compiler represents the state of a single compilation: one source file built
// with one build profile.  All of its phases report their errors to the global
// reporter and return whether they succeeded.
type Compiler struct {
	// srcAbsPath is the absolute path to the source file.
	srcAbsPath string

	// srcReprPath is the path to the source file as it is displayed to the user.
	srcReprPath string

	// project is the project the source file belongs to.
	project *mods.Project

	// profile is the build profile being used.
	profile *mods.BuildProfile

	// tu is the translation unit produced by analysis.
	tu *ast.TranslationUnit

	// llMod is the LLVM module produced by generation.
	llMod *ir.Module
}

// NewCompiler creates a new compiler for the source file at `srcPath`.
func NewCompiler(srcPath string, project *mods.Project, profile *mods.BuildProfile) (*Compiler, error) {
	srcAbsPath, err := filepath.Abs(srcPath)
	if err != nil {
		return nil, fmt.Errorf("error calculating absolute path: %w", err)
	}

	return &Compiler{
		srcAbsPath:  srcAbsPath,
		srcReprPath: srcPath,
		project:     project,
		profile:     profile,
	}, nil
}

// TranslationUnit returns the resolved AST.  This is nil until analysis has
// succeeded.
func (c *Compiler) TranslationUnit() *ast.TranslationUnit {
	return c.tu
}

// OutputPath returns the path to the final output file.
func (c *Compiler) OutputPath() string {
	return c.project.ResolveOutputPath(c.profile)
}

// Target returns a description of the target being compiled for.
func (c *Compiler) Target() string {
	if c.profile.TargetTriple == "" {
		return "native"
	}

	return c.profile.TargetTriple
}

// Compile runs the full compilation algorithm: analysis, generation, and
// emission of the output file.
func (c *Compiler) Compile() bool {
	return c.Analyze() && c.Generate() && c.Emit()
}

// Analyze runs the analysis phases of the compiler: parsing and resolution.
func (c *Compiler) Analyze() bool {
	report.ReportBeginPhase("Parsing")

	file, err := os.Open(c.srcAbsPath)
	if err != nil {
		report.ReportStdError(c.srcReprPath, fmt.Errorf("failed to open source file: %w", err))
		return false
	}
	defer file.Close()

	tu, err := syntax.Parse(file)
	if err != nil {
		report.ReportError(c.srcAbsPath, c.srcReprPath, err)
		return false
	}

	report.ReportEndPhase()
	report.ReportBeginPhase("Resolving")

	if err := walk.Resolve(tu); err != nil {
		report.ReportError(c.srcAbsPath, c.srcReprPath, err)
		return false
	}

	c.tu = tu
	report.ReportEndPhase()
	return true
}

// Generate runs the generation phase of the compiler.  Analysis must be run
// before this.
func (c *Compiler) Generate() bool {
	report.ReportBeginPhase("Generating")

	llMod, err := generate.Generate(c.tu, generate.Target{
		Triple:     c.profile.TargetTriple,
		SourceName: filepath.Base(c.srcAbsPath),
	})
	if err != nil {
		report.ReportError(c.srcAbsPath, c.srcReprPath, err)
		return false
	}

	c.llMod = llMod
	report.ReportEndPhase()
	return true
}

// Emit writes the output file in the profile's output format.  Generation must
// be run before this.
func (c *Compiler) Emit() bool {
	report.ReportBeginPhase("Emitting")

	outputPath := c.OutputPath()
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		report.ReportStdError(outputPath, fmt.Errorf("failed to create output directory: %w", err))
		return false
	}

	var err error
	if c.profile.OutputFormat == mods.FormatLLVM {
		err = writeOutputFile(outputPath, c.llMod.String())
	} else {
		err = compileLLVMModule(c.profile, c.llMod, outputPath)
	}

	if err != nil {
		report.ReportStdError(outputPath, err)
		return false
	}

	report.ReportEndPhase()
	return true
}

// Run executes the analyzed program with the interpreter and returns its exit
// status.  Analysis must be run before this.
func (c *Compiler) Run(out interp.FDWriter) (int32, bool) {
	report.ReportBeginPhase("Running")

	exitCode, err := interp.Run(c.tu, out)
	if err != nil {
		report.ReportError(c.srcAbsPath, c.srcReprPath, err)
		return 0, false
	}

	report.ReportEndPhase()
	return exitCode, true
}

// -----------------------------------------------------------------------------

// clangFormatFlags are the flags selecting each native output format.
var clangFormatFlags = map[int][]string{
	mods.FormatBin:    nil,
	mods.FormatObject: {"-c"},
	mods.FormatASM:    {"-S"},
}

// compileLLVMModule takes an LLVM module and an output path and attempts to
// compile it to the profile's output format using the LLVM driver.  It returns
// an error if it fails.
func compileLLVMModule(profile *mods.BuildProfile, mod *ir.Module, outputPath string) error {
	tempPath, err := os.MkdirTemp("", "subc")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(tempPath)

	// write LLVM module to text file
	modFilePath := filepath.Join(tempPath, "module.ll")
	if err := writeOutputFile(modFilePath, mod.String()); err != nil {
		return err
	}

	args := clangArgs(profile, modFilePath, outputPath)
	if err := runTool(profile.Clang, args...); err != nil {
		return fmt.Errorf("failed to run %s:\n%w", profile.Clang, err)
	}

	return nil
}

// clangArgs returns the arguments to the LLVM driver to compile the textual
// LLVM module at `modFilePath` to `outputPath`.
func clangArgs(profile *mods.BuildProfile, modFilePath, outputPath string) []string {
	args := append([]string{}, clangFormatFlags[profile.OutputFormat]...)

	if profile.TargetTriple != "" {
		args = append(args, "-target", profile.TargetTriple)
	}

	// the driver warns about the target triple being overridden otherwise
	if !containsFlag(profile.ClangFlags, "-Wno-override-module") {
		args = append(args, "-Wno-override-module")
	}

	args = append(args, profile.ClangFlags...)
	return append(args, "-x", "ir", modFilePath, "-o", outputPath)
}

func containsFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}

	return false
}

// writeOutputFile is used to quickly write an output file for the compiler.
func writeOutputFile(fpath, content string) error {
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file `%s`: %w", fpath, err)
	}
	defer file.Close()

	if _, err = file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write output to file `%s`: %w", fpath, err)
	}

	return nil
}
