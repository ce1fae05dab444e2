// Command jpqlrw is the CLI entry point wiring internal/jpqlcli's root
// command to the process.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/catalystquery/jpqlrw/internal/jpqlcli"
)

func main() {
	root := jpqlcli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr *jpqlcli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(jpqlcli.ExitFailure)
	}
}
