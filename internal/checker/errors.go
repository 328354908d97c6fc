package checker

import (
	"fmt"

	"github.com/lat-compiler/latc/internal/token"
)

// CheckError is one type-checking fault, tagged with the function or
// method it was raised while checking. Mirrors the original's
// "Function X: message" prefixing in type_checker.cpp's push_error.
type CheckError struct {
	Pos       token.Position
	ClassName string // "" for a free function
	FuncName  string
	Msg       string
}

func (e *CheckError) Error() string {
	if e.ClassName != "" {
		return fmt.Sprintf("method %s.%s: %s at %s", e.ClassName, e.FuncName, e.Msg, e.Pos)
	}
	return fmt.Sprintf("function %s: %s at %s", e.FuncName, e.Msg, e.Pos)
}

func (c *funcChecker) errorf(pos token.Position, format string, args ...any) {
	c.errs = append(c.errs, &CheckError{
		Pos:       pos,
		ClassName: c.className,
		FuncName:  c.funcName,
		Msg:       fmt.Sprintf(format, args...),
	})
}
