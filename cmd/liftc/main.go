// Command liftc is the CLI entry point for the Lift JIT compiler core.
package main

import (
	"fmt"
	"os"

	"github.com/ccdavis/liftc/cmd/liftc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
