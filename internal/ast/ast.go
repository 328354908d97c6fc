// Package ast defines the Abstract Syntax Tree node types for the Lat
// language: the parser builds it, the checker annotates and rewrites it in
// place, and the code generator reads the normalized result.
package ast

import (
	"github.com/lat-compiler/latc/internal/token"
	"github.com/lat-compiler/latc/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Expr is any expression node. Per spec.md §3, every expression carries a
// source span and a mutable Type field that starts nil and is filled in by
// the checker (internal/checker); nodes that the checker fully replaces
// (Call) are swapped out of the tree rather than mutated in place.
type Expr interface {
	Node
	exprNode()
	// Type returns the node's resolved type, or nil before checking.
	Type() types.Type
	// SetType is called exactly once by the checker.
	SetType(t types.Type)
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// exprBase centralizes the span + type bookkeeping shared by every
// expression node so individual node structs only declare their own
// fields.
type exprBase struct {
	Begin, Finish token.Position
	Typ           types.Type
}

func (e *exprBase) Pos() token.Position   { return e.Begin }
func (e *exprBase) End() token.Position   { return e.Finish }
func (e *exprBase) Type() types.Type      { return e.Typ }
func (e *exprBase) SetType(t types.Type)  { e.Typ = t }
func (e *exprBase) exprNode()             {}

func newExprBase(begin, end token.Position) exprBase {
	return exprBase{Begin: begin, Finish: end}
}
