package parser

import (
	"fmt"

	"github.com/lat-compiler/latc/internal/errors"
	"github.com/lat-compiler/latc/internal/token"
)

// environment is the parser's deque of "what is currently being parsed",
// pushed on entering a production (a function body, a class, a block, an
// if/while/for) and popped on exit. A syntax error reads it top-down to
// build spec.md §4.1/§6's trail: "while parsing <what> [<name>] starting
// at line L, column C". Grounded on the teacher's ParseContext block stack
// (internal/parser/context.go PushBlock/PopBlock/WithBlock), repurposed
// from DWScript's block-type tracking to Lat's parse-environment trail and
// backed by errors.StackTrace instead of a bespoke BlockContext slice.
type environment struct {
	frames errors.StackTrace
}

func newEnvironment() *environment {
	return &environment{frames: errors.NewStackTrace()}
}

// push enters a production. name is empty when the production has none
// (e.g. "block", "if statement").
func (e *environment) push(what, name string, pos token.Position) {
	description := what
	if name != "" {
		description = fmt.Sprintf("%s [%s]", what, name)
	}
	p := pos
	e.frames = append(e.frames, errors.NewStackFrame(description, "", &p))
}

// pop exits the innermost production.
func (e *environment) pop() {
	if len(e.frames) > 0 {
		e.frames = e.frames[:len(e.frames)-1]
	}
}

// trail renders the environment stack as the "while parsing ..." lines a
// SyntaxError attaches to its message.
func (e *environment) trail() string {
	if len(e.frames) == 0 {
		return ""
	}
	var out string
	for i := len(e.frames) - 1; i >= 0; i-- {
		f := e.frames[i]
		if f.Position != nil {
			out += fmt.Sprintf("while parsing %s starting at %s\n", f.FunctionName, f.Position.String())
		} else {
			out += fmt.Sprintf("while parsing %s\n", f.FunctionName)
		}
	}
	return out
}

// SyntaxError is the single error the parser ever raises (spec.md §4.1:
// "parsing stops at the first error"). It carries the offending position,
// the message, and the environment trail active at the point of failure.
type SyntaxError struct {
	Pos   token.Position
	Msg   string
	Trail string
}

func (e *SyntaxError) Error() string {
	if e.Trail == "" {
		return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
	}
	return fmt.Sprintf("%s at %s\n%s", e.Msg, e.Pos, e.Trail)
}
