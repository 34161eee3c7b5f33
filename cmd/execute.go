package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ComedicChimera/olive"
	"github.com/alexandercampbell/rust-cc/ast"
	"github.com/alexandercampbell/rust-cc/build"
	"github.com/alexandercampbell/rust-cc/common"
	"github.com/alexandercampbell/rust-cc/interp"
	"github.com/alexandercampbell/rust-cc/mods"
	"github.com/alexandercampbell/rust-cc/report"
)

// Execute is the main entry point for the `subc` CLI utility
func Execute() {
	// any panic reaching this point is a bug in the compiler
	defer report.CatchICE()

	// run the argument parser
	result, err := olive.ParseArgs(newCLI(), os.Args)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	logLevel := report.LogLevelFromName(result.Arguments["loglevel"].(string))

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		os.Exit(execBuildCommand(subResult, logLevel))
	case "run":
		os.Exit(execRunCommand(subResult, logLevel))
	case "check":
		os.Exit(execCheckCommand(subResult, logLevel))
	case "version":
		report.ReportInfo("subc version", common.SubcVersion)
	}
}

// newCLI builds the argument parser for `subc`.  Named arguments take their
// values in the form `-name=value`: `-f llvm` is read as a flag named `f`.
// Options of the root command such as `--loglevel` must follow the subcommand
// since olive accepts no subcommand after the first named argument.
func newCLI() *olive.Command {
	cli := olive.NewCLI("subc", "subc is a compiler for a small subset of C", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level: --loglevel=<level>", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a source file", true)
	buildCmd.AddPrimaryArg("file", "the path to the source file to build", true)
	buildCmd.AddStringArg("profile", "p", "the name of the profile to build: -p=<name>", false)
	buildCmd.AddStringArg("output", "o", "the path to the output file: -o=<path>", false)
	buildCmd.AddSelectorArg("format", "f", "the output format: -f=<format>", false, []string{"bin", "obj", "asm", "llvm"})
	buildCmd.AddStringArg("target", "t", "the LLVM target triple to compile for: -t=<triple>", false)

	runCmd := cli.AddSubcommand("run", "execute a source file without compiling it", true)
	runCmd.AddPrimaryArg("file", "the path to the source file to run", true)

	checkCmd := cli.AddSubcommand("check", "check a source file and output errors", true)
	checkCmd.AddPrimaryArg("file", "the path to the source file to check", true)
	checkCmd.AddFlag("dump-ast", "da", "print the resolved syntax tree")

	cli.AddSubcommand("version", "print the subc version", false)

	return cli
}

// execBuildCommand executes the build subcommand and returns the process exit
// code.
func execBuildCommand(result *olive.ArgParseResult, logLevel int) int {
	report.InitReporter(logLevel)

	srcPath, _ := result.PrimaryArg()

	profile, proj := loadProfile(srcPath, stringArg(result, "profile"))
	applyOverrides(result, proj, profile)

	c := newCompiler(srcPath, proj, profile)
	report.ReportCompileHeader(c.Target())

	c.Compile()

	// end whatever the final compilation phase was and display the concluding
	// message of compilation.
	report.ReportEndPhase()
	report.ReportCompilationFinished(c.OutputPath())

	if report.AnyErrors() {
		return 1
	}

	return 0
}

// execRunCommand executes the run subcommand.  It returns the exit status of
// the executed program.
func execRunCommand(result *olive.ArgParseResult, logLevel int) int {
	// phase messages would be interleaved with the program's own output
	if logLevel > report.LogLevelWarn {
		logLevel = report.LogLevelWarn
	}

	report.InitReporter(logLevel)

	srcPath, _ := result.PrimaryArg()

	profile, proj := loadProfile(srcPath, "")
	c := newCompiler(srcPath, proj, profile)

	if !c.Analyze() {
		return 1
	}

	exitCode, ok := c.Run(interp.SysWriter{})
	if !ok {
		return 1
	}

	return int(exitCode)
}

// execCheckCommand executes the check subcommand: it runs only the analysis
// phases of the compiler.
func execCheckCommand(result *olive.ArgParseResult, logLevel int) int {
	report.InitReporter(logLevel)

	srcPath, _ := result.PrimaryArg()

	profile, proj := loadProfile(srcPath, "")
	c := newCompiler(srcPath, proj, profile)

	if !c.Analyze() {
		return 1
	}

	if result.HasFlag("dump-ast") {
		fmt.Print(ast.Sprint(c.TranslationUnit()))
	}

	return 0
}

// -----------------------------------------------------------------------------

// loadProfile loads the project enclosing a source file and selects the build
// profile to use.  It reports a fatal error if either fails.
func loadProfile(srcPath, profileName string) (*mods.BuildProfile, *mods.Project) {
	if filepath.Ext(srcPath) != common.SrcFileExtension {
		report.ReportFatal("source file `%s` must have the extension `%s`", srcPath, common.SrcFileExtension)
	}

	baseName := strings.TrimSuffix(filepath.Base(srcPath), common.SrcFileExtension)

	proj, err := mods.LoadProject(filepath.Dir(srcPath), baseName)
	if err != nil {
		report.ReportFatal("failed to load project: %s", err.Error())
	}

	for _, warning := range proj.Warnings {
		report.ReportCompileWarning("", common.ProjectFileName, nil, "%s", warning)
	}

	profile, err := proj.SelectProfile(profileName)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	return profile, proj
}

// applyOverrides applies the build options given on the command line to the
// selected build profile.
func applyOverrides(result *olive.ArgParseResult, proj *mods.Project, profile *mods.BuildProfile) {
	if formatName := stringArg(result, "format"); formatName != "" {
		format, _ := mods.FormatFromName(formatName)

		// default output paths follow the selected format
		if stringArg(result, "output") == "" && profile.OutputFormat != format {
			ext := mods.FormatExtension(profile.OutputFormat)
			profile.OutputPath = strings.TrimSuffix(profile.OutputPath, ext) + mods.FormatExtension(format)
		}

		profile.OutputFormat = format
	}

	if outputPath := stringArg(result, "output"); outputPath != "" {
		// output paths given on the command line are relative to the working
		// directory rather than the project
		if absPath, err := filepath.Abs(outputPath); err == nil {
			outputPath = absPath
		}

		profile.OutputPath = outputPath
	}

	if target := stringArg(result, "target"); target != "" {
		profile.TargetTriple = target
	}
}

// newCompiler creates a new compiler reporting a fatal error if it fails.
func newCompiler(srcPath string, proj *mods.Project, profile *mods.BuildProfile) *build.Compiler {
	c, err := build.NewCompiler(srcPath, proj, profile)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	return c
}

// stringArg returns the value of an optional string argument or the empty
// string if it was not given.
func stringArg(result *olive.ArgParseResult, name string) string {
	if argVal, ok := result.Arguments[name]; ok {
		if s, ok := argVal.(string); ok {
			return s
		}
	}

	return ""
}
