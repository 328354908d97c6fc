package cmd

import (
	"fmt"
	"os"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/checker"
	"github.com/lat-compiler/latc/internal/errors"
	"github.com/lat-compiler/latc/internal/lexer"
	"github.com/lat-compiler/latc/internal/parser"
	"github.com/lat-compiler/latc/internal/token"
	"github.com/lat-compiler/latc/internal/typeinfo"
)

// pipelineResult carries every artifact a subcommand needs out of a
// successful run through the checker.
type pipelineResult struct {
	Program  *ast.Program
	TypeInfo *typeinfo.TypeInfo
	Source   string
}

// runPipeline lexes, parses, builds type info, and checks filename's
// contents, stopping at the first stage that fails. The lexer and parser
// report a single error; the type-info builder and the checker report
// every error they accumulated. The returned errors
// are always addressed against filename's source and name, ready for
// errors.FormatErrors or report.Build.
func runPipeline(filename string) (*pipelineResult, []*errors.CompilerError) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, []*errors.CompilerError{
			errors.NewCompilerError(token.Position{}, fmt.Sprintf("failed to read file %s: %v", filename, err), "", filename),
		}
	}
	source := string(content)

	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, []*errors.CompilerError{lexErrorToCompilerError(err, source, filename)}
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, []*errors.CompilerError{syntaxErrorToCompilerError(err, source, filename)}
	}

	ti, tiErrs := typeinfo.Build(prog)
	if len(tiErrs) > 0 {
		return nil, errors.FromStringErrors(tiErrs, source, filename)
	}

	if checkErrs := checker.Check(prog, ti); len(checkErrs) > 0 {
		return nil, checkErrorsToCompilerErrors(checkErrs, source, filename)
	}

	return &pipelineResult{Program: prog, TypeInfo: ti, Source: source}, nil
}

func lexErrorToCompilerError(err error, source, filename string) *errors.CompilerError {
	if le, ok := err.(*lexer.LexError); ok {
		return errors.NewCompilerError(le.Pos, le.Message, source, filename)
	}
	return errors.NewCompilerError(token.Position{}, err.Error(), source, filename)
}

func syntaxErrorToCompilerError(err error, source, filename string) *errors.CompilerError {
	if se, ok := err.(*parser.SyntaxError); ok {
		msg := se.Msg
		if se.Trail != "" {
			msg = se.Msg + "\n" + se.Trail
		}
		return errors.NewCompilerError(se.Pos, msg, source, filename)
	}
	return errors.NewCompilerError(token.Position{}, err.Error(), source, filename)
}

func checkErrorsToCompilerErrors(errs []error, source, filename string) []*errors.CompilerError {
	out := make([]*errors.CompilerError, 0, len(errs))
	for _, e := range errs {
		if ce, ok := e.(*checker.CheckError); ok {
			msg := ce.Msg
			switch {
			case ce.ClassName != "":
				msg = fmt.Sprintf("method %s.%s: %s", ce.ClassName, ce.FuncName, ce.Msg)
			case ce.FuncName != "":
				msg = fmt.Sprintf("function %s: %s", ce.FuncName, ce.Msg)
			}
			out = append(out, errors.NewCompilerError(ce.Pos, msg, source, filename))
			continue
		}
		out = append(out, errors.NewCompilerError(token.Position{}, e.Error(), source, filename))
	}
	return out
}
