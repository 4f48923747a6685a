// SPDX-License-Identifier: MIT

// Command lvchain runs the block-tridiagonal solver and the chain
// forward-backward recursion on problems read from YAML or JSON files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/katalvlaran/lvchain/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
