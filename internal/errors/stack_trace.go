package errors

import (
	"fmt"
	"strings"

	"github.com/lat-compiler/latc/internal/token"
)

// StackFrame represents one entry in the parser's environment stack: what
// was being parsed ("function", "class", "if statement", ...), the name
// attached to it if any, and where it started. The parser pushes a frame
// on entering a production and pops it on exit; a syntax error read the
// stack top-down to produce spec.md §4.1/§6's
// "while parsing <what> [<name>] starting at line L, column C" trail.
type StackFrame struct {
	Position     *token.Position
	FunctionName string
	FileName     string
}

// String returns a formatted string representation of the stack frame.
// If position is not available, returns just the description.
func (sf StackFrame) String() string {
	if sf.Position == nil {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s [line: %d, column: %d]",
		sf.FunctionName, sf.Position.Line, sf.Position.Column)
}

// StackTrace represents the full parse-environment stack, ordered from
// oldest (bottom, outermost production) to newest (top, innermost).
type StackTrace []StackFrame

// String returns a formatted string representation of the entire stack trace.
// Each frame is printed on a separate line, innermost first.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a new StackTrace with frames in reverse order.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the innermost (most recently entered) frame, or nil if empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the outermost frame, or nil if empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

// Depth returns the number of frames in the stack.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewStackFrame creates a new environment-stack frame. description is the
// production being parsed ("function", "class", "if statement", ...); name
// is the identifier attached to it, if any ("main", "Shape", ...).
func NewStackFrame(description string, fileName string, position *token.Position) StackFrame {
	return StackFrame{
		FunctionName: description,
		FileName:     fileName,
		Position:     position,
	}
}

// NewStackTrace creates a new empty environment stack.
func NewStackTrace() StackTrace {
	return make(StackTrace, 0)
}
