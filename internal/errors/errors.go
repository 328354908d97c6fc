// Package errors formats Lat compiler diagnostics with source context,
// line/column information, and caret indicators, per spec.md §6/§7.
// Adapted from the teacher's error-formatting package: same caret-pointer
// rendering, same batch/single-error distinction.
package errors

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lat-compiler/latc/internal/token"
)

// CompilerError represents a single compilation error with position and context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific 1-indexed line from the source code.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

var printer = message.NewPrinter(language.English)

// batchSummary renders the "Compilation failed with N error:" /
// "Compilation failed with N errors:" header through a
// golang.org/x/text/message printer, with plural choosing the singular or
// plural noun instead of the teacher's hand-rolled "%d error(s)".
func batchSummary(n int) string {
	return printer.Sprintf("Compilation failed with %d %s:", n, plural(n, "error", "errors"))
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// FormatErrors formats multiple compiler errors, one after another, each
// with a single line of source context.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(batchSummary(len(errs)))
	sb.WriteString("\n\n")

	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// FromStringErrors converts plain error values (as produced by
// internal/typeinfo, whose errors carry position only inside the message
// text) into CompilerErrors. Position is parsed out of a trailing
// " at line L, column C" / " at LINE:COLUMN" suffix when present.
func FromStringErrors(errs []error, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(errs))
	for _, e := range errs {
		pos, message := parseErrorString(e.Error())
		out = append(out, NewCompilerError(pos, message, source, file))
	}
	return out
}

func parseErrorString(errStr string) (token.Position, string) {
	atIndex := strings.LastIndex(errStr, " at ")
	if atIndex == -1 {
		return token.Position{}, errStr
	}

	posStr := errStr[atIndex+4:]
	message := strings.TrimSpace(errStr[:atIndex])

	var line, column int
	if _, err := fmt.Sscanf(posStr, "line %d, column %d", &line, &column); err == nil {
		return token.Position{Line: line, Column: column}, message
	}
	if _, err := fmt.Sscanf(posStr, "%d:%d", &line, &column); err == nil {
		return token.Position{Line: line, Column: column}, message
	}
	return token.Position{}, errStr
}
