// Command lazyview runs the lazy-load visibility demo, report and bench tools.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rshade/lazyview/internal/cli"
	"github.com/rshade/lazyview/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps its error to an exit code.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	err := root.Execute()
	printError(os.Stderr, err)
	return exitCode(err)
}

// printError reports err once. The root command leaves error printing to the caller.
func printError(w io.Writer, err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintln(w, "Error:", err)
}

// exitCode returns 0 for nil, the carried code for an ExitError and 1 otherwise.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	return 1
}
