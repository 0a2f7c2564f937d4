package main

import (
	"context"
	"fmt"
	"os"

	"paper2plan/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.RootOptions{Out: os.Stdout})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
