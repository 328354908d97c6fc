package ast

import "github.com/lat-compiler/latc/internal/token"

// Param is one formal parameter of a function or method.
type Param struct {
	Type string
	Name string
}

// Function is a top-level free function declaration.
type Function struct {
	NameTok    token.Position
	EndTok     token.Position
	Name       string
	ReturnType string
	Params     []Param
	Body       *Block
}

func (f *Function) Pos() token.Position { return f.NameTok }
func (f *Function) End() token.Position { return f.EndTok }

// ClassVar is a declared member variable (declarations only — spec.md
// §4.2(d) rejects initializers on class members).
type ClassVar struct {
	Type string
	Name string
}

// Class is a top-level class declaration.
type Class struct {
	NameTok     token.Position
	EndTok      token.Position
	Name        string
	Superclass  string // "" if none
	Variables   []ClassVar
	Methods     []*Function
}

func (c *Class) Pos() token.Position { return c.NameTok }
func (c *Class) End() token.Position { return c.EndTok }

// Program is the parser's top-level output: every class and every free
// function in the compilation unit, in declaration order.
type Program struct {
	Classes   []*Class
	Functions []*Function
}
