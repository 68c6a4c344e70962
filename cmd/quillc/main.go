// Command quillc is the quillscript compiler core's CLI: compile program
// fixtures to an assembled Unit, validate a config file, run golden-file
// checks over a fixture directory, and inspect a host catalog.
package main

import (
	"fmt"
	"os"

	"github.com/quillscript/quillc/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
