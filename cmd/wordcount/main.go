// Command wordcount counts how often each line occurs in one or more text
// files. Files are split into byte ranges that are scanned in parallel, all
// updating one shared hash table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	cmd := newRootCmd(afero.NewOsFs(), os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
