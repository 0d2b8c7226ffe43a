package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/relfiles/internal/cli"
	"github.com/indaco/relfiles/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, printer.Error("Error: "+err.Error()))
		os.Exit(1)
	}
}

// runCLI runs the relfiles command with the given arguments.
func runCLI(args []string) error {
	return cli.New(cli.Deps{}).Run(context.Background(), args)
}
