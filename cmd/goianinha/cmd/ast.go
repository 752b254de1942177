package cmd

import (
	"fmt"

	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast <arquivo-fonte>",
	Short: "Imprime a arvore sintatica abstrata de um programa",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		program, _, err := parseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Print(ast.Dump(program))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}
