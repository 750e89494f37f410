package main

import (
	"os"

	"github.com/SscSPs/finance_reconciler/internal/commands"
)

func main() {
	if err := commands.NewRootCommand(commands.DefaultServices).Execute(); err != nil {
		os.Exit(1)
	}
}
