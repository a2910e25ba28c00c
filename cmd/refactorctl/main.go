// Command refactorctl is a thin demo binary over the stackmove
// refactor core (SPEC_FULL.md §2): a consumer of internal/app/refactor,
// not part of the core library itself.
package main

import (
	"fmt"
	"os"

	"github.com/stackmove/stackmove/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
