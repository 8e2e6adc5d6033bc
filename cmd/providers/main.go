// Command providers keeps a list of providers (vendors) with their contact
// details, editable from a browser form or the shell.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/providers/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
