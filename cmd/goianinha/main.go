package main

import (
	"os"

	"github.com/lucasreis/goianinha/cmd/goianinha/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
