// Command filereport generates a spreadsheet report of the files under
// a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/filereport/filereport/internal/cli"
)

// version is set by the build system.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
