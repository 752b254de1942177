package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Imprime informacoes de versao",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goianinha versao %s\n", Version)
		fmt.Printf("Commit: %s\n", GitCommit)
		fmt.Printf("Build:  %s\n", BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
