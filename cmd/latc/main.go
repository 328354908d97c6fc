// Command latc compiles Lat source files to x86-64 assembly.
package main

import (
	"os"

	"github.com/lat-compiler/latc/cmd/latc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
