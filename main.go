package main

import (
	"fmt"
	"os"

	"github.com/temirov/commitmsg/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
	exitFailureCodeConstant   = 1
)

// main validates the commit message file named by the first argument.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(exitFailureCodeConstant)
	}
}
