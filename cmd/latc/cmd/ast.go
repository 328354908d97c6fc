package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/errors"
	"github.com/lat-compiler/latc/internal/lexer"
	"github.com/lat-compiler/latc/internal/parser"
)

var (
	astFormat  string
	astChecked bool
)

var astCmd = &cobra.Command{
	Use:   "ast <file>.lat",
	Short: "Dump a Lat file's parsed AST",
	Long: `ast parses a .lat file and dumps its AST for debugging. By default
it dumps the raw parse tree; --checked runs the full checker pipeline first
and dumps the normalized tree (constant folding and Call-node rewriting
already applied).`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)

	astCmd.Flags().StringVar(&astFormat, "format", "json", "output format: json or yaml")
	astCmd.Flags().BoolVar(&astChecked, "checked", false, "run the checker first and dump the normalized tree")
}

func runAST(_ *cobra.Command, args []string) error {
	filename := args[0]

	var prog *ast.Program

	if astChecked {
		result, errs := runPipeline(filename)
		if len(errs) > 0 {
			fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("compilation failed with %d error(s)", len(errs))
		}
		prog = result.Program
	} else {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		toks, err := lexer.Tokenize(string(content))
		if err != nil {
			return err
		}
		prog, err = parser.Parse(toks)
		if err != nil {
			return err
		}
	}

	var out []byte
	var err error
	switch astFormat {
	case "json":
		out, err = json.MarshalIndent(prog, "", "  ")
	case "yaml":
		out, err = yaml.Marshal(prog)
	default:
		return fmt.Errorf("unknown --format %q, want json or yaml", astFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal AST: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
