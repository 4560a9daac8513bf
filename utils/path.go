package utils

import (
	"flag"
	"fmt"
	"os"
)

// MakePath returns the target of the analysis, the first non-flag argument:
// a Go source file or a package pattern.
func MakePath() string {
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: absint [flags] <file.go | package>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	return args[0]
}
