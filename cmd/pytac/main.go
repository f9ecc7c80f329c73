// Command pytac is a thin driver over the tokenizer, parser, and IR
// generator: it accepts one source file, runs it through the three
// stages, and stops at the first stage that fails (reporting every
// recovered syntax error when that stage is the parser). It holds no
// compiler state of its own and is the only package in this module
// allowed to touch the filesystem.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sourcelang/pytac/pkgs/irgen"
	"github.com/sourcelang/pytac/pkgs/lexer"
	"github.com/sourcelang/pytac/pkgs/parser"
	"github.com/sourcelang/pytac/pkgs/printer"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	var showIR bool
	var showAST bool

	rootCmd := &cobra.Command{
		Use:          "pytac <input-file>",
		Short:        "Compile a source file through the lexer, parser, and IR generator",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			compile(args[0], showIR, showAST)
			return nil
		},
	}
	rootCmd.Flags().BoolVar(&showIR, "show-ir", false, "print the generated IR")
	rootCmd.Flags().BoolVar(&showAST, "show-ast", false, "print the parsed AST")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitFailure)
	}
}

// compile runs the pipeline to completion or exits on the first failing
// stage; --show-ir and --show-ast are purely diagnostic and never affect
// the exit code.
func compile(path string, showIR, showAST bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		os.Exit(exitFailure)
	}

	toks, lexErr := lexer.Tokenize(string(src))
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Error())
		os.Exit(exitFailure)
	}

	nodes, parseErrs := parser.Parse(toks)
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(exitFailure)
	}

	if showAST {
		fmt.Print(printer.PrintAST(nodes))
	}

	prog, irErr := irgen.Generate(nodes)
	if irErr != nil {
		fmt.Fprintln(os.Stderr, irErr.Error())
		os.Exit(exitFailure)
	}

	if showIR {
		fmt.Print(printer.PrintIR(prog))
	}

	os.Exit(exitSuccess)
}
