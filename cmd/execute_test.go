package cmd

import (
	"testing"

	"github.com/ComedicChimera/olive"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		subcmd   string
		primary  string
		values   map[string]string
		flag     string
		logLevel string
	}{
		{
			name:     "build with named arguments",
			args:     []string{"subc", "build", "-f=llvm", "-o=out.ll", "prog.c"},
			subcmd:   "build",
			primary:  "prog.c",
			values:   map[string]string{"format": "llvm", "output": "out.ll"},
			logLevel: "verbose",
		},
		{
			name:     "long argument names",
			args:     []string{"subc", "build", "prog.c", "--target=x86_64-pc-linux-gnu", "--profile=release"},
			subcmd:   "build",
			primary:  "prog.c",
			values:   map[string]string{"target": "x86_64-pc-linux-gnu", "profile": "release"},
			logLevel: "verbose",
		},
		{
			name:     "root option after the subcommand",
			args:     []string{"subc", "run", "--loglevel=silent", "prog.c"},
			subcmd:   "run",
			primary:  "prog.c",
			logLevel: "silent",
		},
		{
			name:     "short root option",
			args:     []string{"subc", "build", "-ll=warn", "prog.c"},
			subcmd:   "build",
			primary:  "prog.c",
			logLevel: "warn",
		},
		{
			name:     "check flag",
			args:     []string{"subc", "check", "-da", "prog.c"},
			subcmd:   "check",
			primary:  "prog.c",
			flag:     "dump-ast",
			logLevel: "verbose",
		},
		{
			name:     "version",
			args:     []string{"subc", "version"},
			subcmd:   "version",
			logLevel: "verbose",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := olive.ParseArgs(newCLI(), test.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := result.Arguments["loglevel"]; got != test.logLevel {
				t.Errorf("got log level %v, want %s", got, test.logLevel)
			}

			subcmdName, subResult, ok := result.Subcommand()
			if !ok || subcmdName != test.subcmd {
				t.Fatalf("got subcommand %q, want %q", subcmdName, test.subcmd)
			}

			if primary, _ := subResult.PrimaryArg(); primary != test.primary {
				t.Errorf("got primary argument %q, want %q", primary, test.primary)
			}

			for name, want := range test.values {
				if got := stringArg(subResult, name); got != want {
					t.Errorf("got %s = %q, want %q", name, got, want)
				}
			}

			if test.flag != "" && !subResult.HasFlag(test.flag) {
				t.Errorf("expected flag `%s` to be set", test.flag)
			}
		})
	}
}

func TestParseCommandLineErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{
			"argument value without equals",
			[]string{"subc", "build", "-f", "llvm", "prog.c"},
			"unknown flag by short name: `f`",
		},
		{
			"root option before the subcommand",
			[]string{"subc", "--loglevel=warn", "build", "prog.c"},
			"unexpected subcommand: `build`",
		},
		{
			"unknown format",
			[]string{"subc", "build", "-f=exe", "prog.c"},
			"`exe` is not a valid value for argument [format]",
		},
		{
			"missing subcommand",
			[]string{"subc"},
			"`subc` requires a subcommand",
		},
		{
			"unknown subcommand",
			[]string{"subc", "compile", "prog.c"},
			"unknown subcommand: `compile`",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := olive.ParseArgs(newCLI(), test.args)
			if err == nil {
				t.Fatal("expected an error")
			}

			if err.Error() != test.message {
				t.Errorf("got error %q, want %q", err.Error(), test.message)
			}
		})
	}
}
