package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lat-compiler/latc/internal/errors"
	"github.com/lat-compiler/latc/internal/report"
)

var checkReportFormat string

var checkCmd = &cobra.Command{
	Use:   "check <file>.lat",
	Short: "Type-check a Lat source file without generating code",
	Long: `check runs the lexer, parser, type-info builder, and checker over a
.lat file and reports OK or ERROR plus diagnostics, without invoking the
code generator.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkReportFormat, "report-format", "", "emit a structured report instead of text (json or yaml)")
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]

	_, errs := runPipeline(filename)

	if checkReportFormat != "" {
		return printReport(filename, errs, checkReportFormat)
	}

	if len(errs) > 0 {
		fmt.Println("ERROR")
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("compilation failed with %d error(s)", len(errs))
	}

	fmt.Println("OK")
	return nil
}

func printReport(filename string, errs []*errors.CompilerError, format string) error {
	doc := report.Build(filename, errs)
	out, err := report.Marshal(doc, report.Format(format))
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if !doc.OK {
		return fmt.Errorf("compilation failed with %d error(s)", len(doc.Diagnostics))
	}
	return nil
}
