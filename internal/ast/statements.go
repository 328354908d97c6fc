package ast

import "github.com/lat-compiler/latc/internal/token"

// stmtBase centralizes the span bookkeeping every statement needs, plus
// the DoesReturn flag the checker computes per spec.md §4.3 "Statement
// rules".
type stmtBase struct {
	Begin, Finish token.Position
	DoesReturn    bool
}

func (s *stmtBase) Pos() token.Position { return s.Begin }
func (s *stmtBase) End() token.Position { return s.Finish }
func (s *stmtBase) stmtNode()           {}

func newStmtBase(begin, end token.Position) stmtBase {
	return stmtBase{Begin: begin, Finish: end}
}

// Empty is a no-op statement: the original parsed `;`, or a statement the
// checker has elided (dead code after a return, a constant-false branch,
// a side-effect-free ExprStmt).
type Empty struct{ stmtBase }

// Block is `{ stmts }`. It introduces a new declaration scope.
type Block struct {
	stmtBase
	Stmts []Stmt
}

// VarInit is one `name` or `name = initializer` entry in a Definition.
type VarInit struct {
	Name string
	Init Expr // nil if no initializer
}

// Definition is a local variable declaration, possibly with several
// comma-separated names sharing one declared type.
type Definition struct {
	stmtBase
	DeclType string
	Vars     []VarInit
}

// Assignment is `lvalue = value`.
type Assignment struct {
	stmtBase
	LValue, Value Expr
}

// Incr is `lvalue++`.
type Incr struct {
	stmtBase
	LValue Expr
}

// Decr is `lvalue--`.
type Decr struct {
	stmtBase
	LValue Expr
}

// ExprStmt is a bare expression used as a statement (only ever a call in
// well-typed Lat, since the checker replaces side-effect-free expression
// statements with Empty).
type ExprStmt struct {
	stmtBase
	X Expr
}

// Return is `return;` or `return expr;`.
type Return struct {
	stmtBase
	Value Expr // nil for a valueless return
}

// If is `if (cond) then [else else_]`.
type If struct {
	stmtBase
	Cond       Expr
	Then, Else Stmt // Else is nil when absent
}

// While is `while (cond) body`.
type While struct {
	stmtBase
	Cond Expr
	Body Stmt
}

// For is `for (ElemType v : arrayExpr) body`.
type For struct {
	stmtBase
	ElemType string
	VarName  string
	Array    Expr
	Body     Stmt
}

func (*Empty) stmtNode()      {}
func (*Block) stmtNode()      {}
func (*Definition) stmtNode() {}
func (*Assignment) stmtNode() {}
func (*Incr) stmtNode()       {}
func (*Decr) stmtNode()       {}
func (*ExprStmt) stmtNode()   {}
func (*Return) stmtNode()     {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*For) stmtNode()        {}

// NewEmpty builds an Empty statement spanning [begin,end].
func NewEmpty(begin, end token.Position) *Empty {
	return &Empty{stmtBase: newStmtBase(begin, end)}
}

// NewBlock builds a Block statement spanning [begin,end].
func NewBlock(begin, end token.Position, stmts []Stmt) *Block {
	return &Block{stmtBase: newStmtBase(begin, end), Stmts: stmts}
}

// NewDefinition builds a Definition statement spanning [begin,end].
func NewDefinition(begin, end token.Position, declType string, vars []VarInit) *Definition {
	return &Definition{stmtBase: newStmtBase(begin, end), DeclType: declType, Vars: vars}
}

// NewAssignment builds an Assignment statement spanning [begin,end].
func NewAssignment(begin, end token.Position, lvalue, value Expr) *Assignment {
	return &Assignment{stmtBase: newStmtBase(begin, end), LValue: lvalue, Value: value}
}

// NewIncr builds an Incr statement spanning [begin,end].
func NewIncr(begin, end token.Position, lvalue Expr) *Incr {
	return &Incr{stmtBase: newStmtBase(begin, end), LValue: lvalue}
}

// NewDecr builds a Decr statement spanning [begin,end].
func NewDecr(begin, end token.Position, lvalue Expr) *Decr {
	return &Decr{stmtBase: newStmtBase(begin, end), LValue: lvalue}
}

// NewExprStmt builds an ExprStmt spanning [begin,end].
func NewExprStmt(begin, end token.Position, x Expr) *ExprStmt {
	return &ExprStmt{stmtBase: newStmtBase(begin, end), X: x}
}

// NewReturn builds a Return statement spanning [begin,end].
func NewReturn(begin, end token.Position, value Expr) *Return {
	return &Return{stmtBase: newStmtBase(begin, end), Value: value}
}

// NewIf builds an If statement spanning [begin,end].
func NewIf(begin, end token.Position, cond Expr, then, els Stmt) *If {
	return &If{stmtBase: newStmtBase(begin, end), Cond: cond, Then: then, Else: els}
}

// NewWhile builds a While statement spanning [begin,end].
func NewWhile(begin, end token.Position, cond Expr, body Stmt) *While {
	return &While{stmtBase: newStmtBase(begin, end), Cond: cond, Body: body}
}

// NewFor builds a For statement spanning [begin,end].
func NewFor(begin, end token.Position, elemType, varName string, arr Expr, body Stmt) *For {
	return &For{stmtBase: newStmtBase(begin, end), ElemType: elemType, VarName: varName, Array: arr, Body: body}
}
