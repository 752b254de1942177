// Package cmd implements the goianinha command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	outputFile string
	dumpTree   bool
)

var rootCmd = &cobra.Command{
	Use:   "goianinha <arquivo-fonte>",
	Short: "Compilador da linguagem Goianinha para MIPS32",
	Long: `goianinha compila programas da linguagem Goianinha para assembly
MIPS32 compativel com os simuladores MARS e SPIM.

Goianinha e uma linguagem didatica com tipos int e car, funcoes com
parametros, blocos aninhados com escopo lexico e comandos de entrada e
saida (leia, escreva, novalinha).

O codigo gerado usa a convencao de chamada com os quatro primeiros
argumentos em $a0..$a3, os demais na pilha, e encadeamento estatico de
frames para acesso a escopos externos.`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bad arguments still get the usage text; compile failures
		// already printed their own diagnostics.
		cmd.SilenceUsage = true
		return runCompile(args[0])
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "arquivo de saida (padrao: output.asm)")
	rootCmd.Flags().BoolVar(&dumpTree, "dump-ast", false, "imprime a arvore sintatica antes de gerar codigo")
}
