package cmd

import (
	"fmt"
	"os"

	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/codegen"
	"github.com/lucasreis/goianinha/internal/config"
	"github.com/lucasreis/goianinha/internal/errors"
	"github.com/lucasreis/goianinha/internal/lexer"
	"github.com/lucasreis/goianinha/internal/parser"
	"github.com/lucasreis/goianinha/internal/semantic"
	"github.com/mattn/go-isatty"
)

// runCompile drives the whole pipeline: source file to output.asm.
// Diagnostics go to stderr; on any failure no output file is written.
func runCompile(filename string) error {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	outFile := cfg.Output
	if outputFile != "" {
		outFile = outputFile
	}

	program, _, err := parseFile(filename)
	if err != nil {
		return err
	}

	if dumpTree || cfg.DumpAST {
		fmt.Print(ast.Dump(program))
	}

	analyzer := semantic.NewAnalyzer()
	if err := analyzer.Analyze(program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("analise semantica falhou")
	}

	generator := codegen.New()
	asm, err := generator.Generate(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("geracao de codigo falhou")
	}

	if err := os.WriteFile(outFile, []byte(asm), 0644); err != nil {
		return fmt.Errorf("falha ao escrever %s: %w", outFile, err)
	}

	return nil
}

// parseFile reads, scans and parses a source file, printing caret
// diagnostics on failure.
func parseFile(filename string) (*ast.Program, string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, "", fmt.Errorf("falha ao ler o arquivo %s: %w", filename, err)
	}
	source := string(content)

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		compilerErrors := make([]*errors.CompilerError, 0, len(errs))
		for _, perr := range errs {
			compilerErrors = append(compilerErrors,
				errors.NewCompilerError(perr.Pos, perr.Message, source, filename))
		}
		color := isatty.IsTerminal(os.Stderr.Fd())
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, color))
		fmt.Fprintln(os.Stderr)
		return nil, source, fmt.Errorf("analise sintatica falhou com %d erro(s)", len(errs))
	}

	return program, source, nil
}
