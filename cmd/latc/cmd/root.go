package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "latc",
	Short: "Lat compiler",
	Long: `latc compiles Lat, a small statically-typed, class-based imperative
language, to x86-64 assembly.

Lat supports:
  - int, boolean, string, and single-dimensional array types
  - Classes with single inheritance and virtual dispatch
  - Free functions alongside methods
  - Five built-in I/O functions: printInt, printString, readInt, readString, error

latc build lexes, parses, type-checks, and emits a NASM-style .s listing;
latc check runs the same pipeline through the checker only, for
editor/CI integration.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
