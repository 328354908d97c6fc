package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lat-compiler/latc/internal/codegen"
	"github.com/lat-compiler/latc/internal/config"
	"github.com/lat-compiler/latc/internal/errors"
	"github.com/lat-compiler/latc/internal/toolchain"
)

var (
	buildOutput   string
	buildAssemble bool
)

var buildCmd = &cobra.Command{
	Use:   "build <file>.lat",
	Short: "Compile a Lat source file to x86-64 assembly",
	Long: `build runs the lexer, parser, type-info builder, checker, and code
generator over a .lat file and writes the resulting NASM-style listing.

By default build stops once the .s listing is written. Pass --assemble to
additionally shell out to nasm and ld and produce a native executable.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output .s path (default: <input with .s extension>)")
	buildCmd.Flags().BoolVar(&buildAssemble, "assemble", false, "also invoke nasm and ld to produce a native executable")
}

func runBuild(_ *cobra.Command, args []string) error {
	filename := args[0]

	result, errs := runPipeline(filename)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("compilation failed with %d error(s)", len(errs))
	}

	asmPath := buildOutput
	if asmPath == "" {
		if m, err := config.Load(filepath.Join(filepath.Dir(filename), config.FileName)); err == nil {
			asmPath = m.Output
		}
	}
	if asmPath == "" {
		asmPath = deriveOutputPath(filename)
	}

	var sb bytes.Buffer
	if err := codegen.Emit(result.TypeInfo, &sb); err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}
	if err := os.WriteFile(asmPath, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", asmPath, err)
	}

	if buildAssemble {
		execPath := strings.TrimSuffix(asmPath, ".s")
		if err := toolchain.AssembleAndLink(asmPath, execPath); err != nil {
			return err
		}
	}

	fmt.Printf("OK\n")
	return nil
}

func deriveOutputPath(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return filename + ".s"
	}
	return strings.TrimSuffix(filename, ext) + ".s"
}
