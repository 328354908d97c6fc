package ast

import "github.com/lat-compiler/latc/internal/token"

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Value int64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	exprBase
	Value bool
}

// StringLit is a string literal; Value already has escapes resolved by the
// lexer.
type StringLit struct {
	exprBase
	Value string
}

// NullLit is the `null` literal.
type NullLit struct {
	exprBase
}

// Variable is a bare identifier reference. The checker resolves it per the
// six-case order in spec.md §4.3 and may rewrite it into a ClassMember
// (implicit self) node.
type Variable struct {
	exprBase
	Name string
}

// UnaryOpKind distinguishes the two unary operators.
type UnaryOpKind int

const (
	IntNeg UnaryOpKind = iota
	BoolNeg
)

// UnaryOp is `-x` or `!x`.
type UnaryOp struct {
	exprBase
	Op   UnaryOpKind
	X    Expr
}

// BinaryOpKind enumerates the surface binary operators.
type BinaryOpKind int

const (
	Add BinaryOpKind = iota
	Sub
	Mul
	Div
	Mod
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	And
	Or
)

// BinaryOp is a left-associative binary operator application.
type BinaryOp struct {
	exprBase
	Op          BinaryOpKind
	Left, Right Expr
}

// Call is the ambiguous surface call form `callee(args)`. It never
// survives checking: the checker replaces every Call with either a
// StaticCall or a VirtualCall (spec.md §4.3, §8 property 2).
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// StaticCall invokes a free function (or the rewritten `_concat`) by name.
// Only ever produced by the checker.
type StaticCall struct {
	exprBase
	Name string
	Args []Expr
}

// VirtualCall invokes a method on an object through its vtable. Only ever
// produced by the checker.
type VirtualCall struct {
	exprBase
	Object Expr
	Name   string
	Args   []Expr
}

// Subscript is `array[index]`.
type Subscript struct {
	exprBase
	Array, Index Expr
}

// ClassMember is `object.member`: a field access, a method reference
// consumed immediately by an enclosing Call, or `array.length`.
type ClassMember struct {
	exprBase
	Object Expr
	Member string
}

// Cast is the syntactically-recognized `(Name) expr` form.
type Cast struct {
	exprBase
	Target string
	X      Expr
}

// NewObject is `new ClassName`.
type NewObject struct {
	exprBase
	ClassName string
}

// NewArray is `new ElemType[size]`.
type NewArray struct {
	exprBase
	ElemType string
	Size     Expr
}

func (*IntLit) exprNode()      {}
func (*BoolLit) exprNode()     {}
func (*StringLit) exprNode()   {}
func (*NullLit) exprNode()     {}
func (*Variable) exprNode()    {}
func (*UnaryOp) exprNode()     {}
func (*BinaryOp) exprNode()    {}
func (*Call) exprNode()        {}
func (*StaticCall) exprNode()  {}
func (*VirtualCall) exprNode() {}
func (*Subscript) exprNode()   {}
func (*ClassMember) exprNode() {}
func (*Cast) exprNode()        {}
func (*NewObject) exprNode()   {}
func (*NewArray) exprNode()    {}

// NewIntLit builds an IntLit spanning [begin,end].
func NewIntLit(begin, end token.Position, v int64) *IntLit {
	return &IntLit{exprBase: newExprBase(begin, end), Value: v}
}

// NewBoolLit builds a BoolLit spanning [begin,end].
func NewBoolLit(begin, end token.Position, v bool) *BoolLit {
	return &BoolLit{exprBase: newExprBase(begin, end), Value: v}
}

// NewStringLit builds a StringLit spanning [begin,end].
func NewStringLit(begin, end token.Position, v string) *StringLit {
	return &StringLit{exprBase: newExprBase(begin, end), Value: v}
}

// NewNullLit builds a NullLit spanning [begin,end].
func NewNullLit(begin, end token.Position) *NullLit {
	return &NullLit{exprBase: newExprBase(begin, end)}
}

// NewVariable builds a Variable reference spanning [begin,end].
func NewVariable(begin, end token.Position, name string) *Variable {
	return &Variable{exprBase: newExprBase(begin, end), Name: name}
}

// NewUnaryOp builds a unary operator application spanning [begin,end].
func NewUnaryOp(begin, end token.Position, op UnaryOpKind, x Expr) *UnaryOp {
	return &UnaryOp{exprBase: newExprBase(begin, end), Op: op, X: x}
}

// NewBinaryOp builds a binary operator application spanning [begin,end].
func NewBinaryOp(begin, end token.Position, op BinaryOpKind, l, r Expr) *BinaryOp {
	return &BinaryOp{exprBase: newExprBase(begin, end), Op: op, Left: l, Right: r}
}

// NewCall builds the ambiguous surface call form spanning [begin,end].
func NewCall(begin, end token.Position, callee Expr, args []Expr) *Call {
	return &Call{exprBase: newExprBase(begin, end), Callee: callee, Args: args}
}

// NewStaticCall builds a resolved free-function call spanning [begin,end].
func NewStaticCall(begin, end token.Position, name string, args []Expr) *StaticCall {
	return &StaticCall{exprBase: newExprBase(begin, end), Name: name, Args: args}
}

// NewVirtualCall builds a resolved method call spanning [begin,end].
func NewVirtualCall(begin, end token.Position, obj Expr, name string, args []Expr) *VirtualCall {
	return &VirtualCall{exprBase: newExprBase(begin, end), Object: obj, Name: name, Args: args}
}

// NewSubscript builds an array index expression spanning [begin,end].
func NewSubscript(begin, end token.Position, arr, idx Expr) *Subscript {
	return &Subscript{exprBase: newExprBase(begin, end), Array: arr, Index: idx}
}

// NewClassMember builds a member access expression spanning [begin,end].
func NewClassMember(begin, end token.Position, obj Expr, member string) *ClassMember {
	return &ClassMember{exprBase: newExprBase(begin, end), Object: obj, Member: member}
}

// NewCast builds a cast expression spanning [begin,end].
func NewCast(begin, end token.Position, target string, x Expr) *Cast {
	return &Cast{exprBase: newExprBase(begin, end), Target: target, X: x}
}

// NewNewObject builds an object-construction expression spanning [begin,end].
func NewNewObject(begin, end token.Position, className string) *NewObject {
	return &NewObject{exprBase: newExprBase(begin, end), ClassName: className}
}

// NewNewArray builds an array-construction expression spanning [begin,end].
func NewNewArray(begin, end token.Position, elemType string, size Expr) *NewArray {
	return &NewArray{exprBase: newExprBase(begin, end), ElemType: elemType, Size: size}
}
