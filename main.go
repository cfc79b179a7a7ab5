// Command fileattrs lists file and directory attributes recursively.
package main

import (
	"os"

	"github.com/idelchi/fileattrs/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set via ldflags
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		os.Exit(1)
	}
}
