package checker

import (
	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/token"
	"github.com/lat-compiler/latc/internal/types"
)

func (c *funcChecker) checkUnaryOp(u *ast.UnaryOp) exprResult {
	res := c.checkExpr(u.X)
	u.X = res.expr

	switch u.Op {
	case ast.IntNeg:
		if !anyInvalid(res.expr.Type()) && !implicitCastable(res.expr.Type(), types.Int, c.ti) {
			c.errorf(u.Pos(), "type %s cannot be cast to int in a unary negation", res.expr.Type())
		}
		u.SetType(types.Int)
		if lit, ok := res.expr.(*ast.IntLit); ok {
			return intLitResult(u.Pos(), u.End(), -lit.Value)
		}
	case ast.BoolNeg:
		if !anyInvalid(res.expr.Type()) && !implicitCastable(res.expr.Type(), types.Bool, c.ti) {
			c.errorf(u.Pos(), "type %s cannot be cast to boolean in a bool negation", res.expr.Type())
		}
		u.SetType(types.Bool)
		if lit, ok := res.expr.(*ast.BoolLit); ok {
			return boolLitResult(u.Pos(), u.End(), !lit.Value)
		}
	}
	return exprResult{expr: u, sideEffects: res.sideEffects, lvalue: false}
}

func (c *funcChecker) checkBinaryOp(b *ast.BinaryOp) exprResult {
	leftRes := c.checkExpr(b.Left)
	b.Left = leftRes.expr
	rightRes := c.checkExpr(b.Right)
	b.Right = rightRes.expr
	sideEffects := leftRes.sideEffects || rightRes.sideEffects

	switch b.Op {
	case ast.Add:
		return c.checkAdd(b, leftRes.expr, rightRes.expr, sideEffects)
	case ast.Sub, ast.Mul, ast.Div, ast.Mod:
		return c.checkIntArith(b, leftRes.expr, rightRes.expr, sideEffects)
	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		return c.checkIntCompare(b, leftRes.expr, rightRes.expr, sideEffects)
	case ast.Eq, ast.Ne:
		return c.checkEquality(b, leftRes.expr, rightRes.expr, sideEffects)
	case ast.And, ast.Or:
		return c.checkBoolOp(b, leftRes.expr, rightRes.expr, sideEffects)
	}
	panic("checker: unknown binary operator kind")
}

// checkAdd implements spec.md §4.3's overloaded `+`: string+string
// rewrites into the `_concat` runtime call, int+int folds like any other
// arithmetic operator, anything else is an error.
func (c *funcChecker) checkAdd(b *ast.BinaryOp, l, r ast.Expr, sideEffects bool) exprResult {
	if anyInvalid(l.Type(), r.Type()) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	switch {
	case implicitCastable(l.Type(), types.String, c.ti) && implicitCastable(r.Type(), types.String, c.ti):
		call := ast.NewStaticCall(b.Pos(), b.End(), "_concat", []ast.Expr{l, r})
		call.SetType(types.String)
		return exprResult{expr: call, sideEffects: sideEffects, lvalue: false}
	case implicitCastable(l.Type(), types.Int, c.ti) && implicitCastable(r.Type(), types.Int, c.ti):
		b.SetType(types.Int)
		if li, ok := l.(*ast.IntLit); ok {
			if ri, ok2 := r.(*ast.IntLit); ok2 {
				return intLitResult(b.Pos(), b.End(), li.Value+ri.Value)
			}
		}
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	default:
		c.errorf(b.Pos(), "the plus operator got arguments of %s and %s instead of string+string or int+int", l.Type(), r.Type())
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
}

func opName(op ast.BinaryOpKind) string {
	switch op {
	case ast.Sub:
		return "a subtraction"
	case ast.Mul:
		return "a multiplication"
	case ast.Div:
		return "a division"
	case ast.Mod:
		return "a modulo"
	case ast.Lt:
		return "a lt comparison"
	case ast.Le:
		return "a le comparison"
	case ast.Gt:
		return "a gt comparison"
	case ast.Ge:
		return "a ge comparison"
	}
	return "a binary operation"
}

func (c *funcChecker) checkIntArith(b *ast.BinaryOp, l, r ast.Expr, sideEffects bool) exprResult {
	if anyInvalid(l.Type(), r.Type()) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	if !c.requireBoth(b.Pos(), l, r, types.Int, opName(b.Op)) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	b.SetType(types.Int)

	li, lok := l.(*ast.IntLit)
	ri, rok := r.(*ast.IntLit)
	if !lok || !rok {
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	switch b.Op {
	case ast.Sub:
		return intLitResult(b.Pos(), b.End(), li.Value-ri.Value)
	case ast.Mul:
		return intLitResult(b.Pos(), b.End(), li.Value*ri.Value)
	case ast.Div:
		if ri.Value == 0 {
			c.errorf(b.Pos(), "division by zero")
			return intLitResult(b.Pos(), b.End(), 0)
		}
		return intLitResult(b.Pos(), b.End(), li.Value/ri.Value)
	case ast.Mod:
		if ri.Value == 0 {
			c.errorf(b.Pos(), "modulo by zero")
			return intLitResult(b.Pos(), b.End(), 0)
		}
		return intLitResult(b.Pos(), b.End(), li.Value%ri.Value)
	}
	return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
}

func (c *funcChecker) checkIntCompare(b *ast.BinaryOp, l, r ast.Expr, sideEffects bool) exprResult {
	if anyInvalid(l.Type(), r.Type()) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	if !c.requireBoth(b.Pos(), l, r, types.Int, opName(b.Op)) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	b.SetType(types.Bool)

	li, lok := l.(*ast.IntLit)
	ri, rok := r.(*ast.IntLit)
	if !lok || !rok {
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	var v bool
	switch b.Op {
	case ast.Lt:
		v = li.Value < ri.Value
	case ast.Le:
		v = li.Value <= ri.Value
	case ast.Gt:
		v = li.Value > ri.Value
	case ast.Ge:
		v = li.Value >= ri.Value
	}
	return boolLitResult(b.Pos(), b.End(), v)
}

// checkEquality implements `==`/`!=`: each side must implicitly cast to
// the other's type in at least one direction (so int==int, C==C' along
// the same hierarchy, and null==C all type-check; int==string does not).
func (c *funcChecker) checkEquality(b *ast.BinaryOp, l, r ast.Expr, sideEffects bool) exprResult {
	if anyInvalid(l.Type(), r.Type()) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	if !implicitCastable(l.Type(), r.Type(), c.ti) && !implicitCastable(r.Type(), l.Type(), c.ti) {
		c.errorf(b.Pos(), "type %s and %s cannot be compared", l.Type(), r.Type())
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	b.SetType(types.Bool)
	negate := b.Op == ast.Ne

	if lb, ok := l.(*ast.BoolLit); ok {
		if rb, ok2 := r.(*ast.BoolLit); ok2 {
			return boolLitResult(b.Pos(), b.End(), (lb.Value == rb.Value) != negate)
		}
	}
	if li, ok := l.(*ast.IntLit); ok {
		if ri, ok2 := r.(*ast.IntLit); ok2 {
			return boolLitResult(b.Pos(), b.End(), (li.Value == ri.Value) != negate)
		}
	}
	if ls, ok := l.(*ast.StringLit); ok {
		if rs, ok2 := r.(*ast.StringLit); ok2 {
			return boolLitResult(b.Pos(), b.End(), (ls.Value == rs.Value) != negate)
		}
	}
	return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
}

func (c *funcChecker) checkBoolOp(b *ast.BinaryOp, l, r ast.Expr, sideEffects bool) exprResult {
	if anyInvalid(l.Type(), r.Type()) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	name := "a conjunction"
	if b.Op == ast.Or {
		name = "an alternative"
	}
	if !c.requireBoth(b.Pos(), l, r, types.Bool, name) {
		b.SetType(types.Invalid)
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	b.SetType(types.Bool)

	lb, lok := l.(*ast.BoolLit)
	rb, rok := r.(*ast.BoolLit)
	if !lok || !rok {
		return exprResult{expr: b, sideEffects: sideEffects, lvalue: false}
	}
	if b.Op == ast.And {
		return boolLitResult(b.Pos(), b.End(), lb.Value && rb.Value)
	}
	return boolLitResult(b.Pos(), b.End(), lb.Value || rb.Value)
}

// requireBoth reports (and records) whichever of l/r fails to cast to
// want, and returns whether both succeeded.
func (c *funcChecker) requireBoth(pos token.Position, l, r ast.Expr, want types.Type, opDesc string) bool {
	ok := true
	if !implicitCastable(l.Type(), want, c.ti) {
		c.errorf(l.Pos(), "type %s cannot be cast to %s in the left operand of %s", l.Type(), want, opDesc)
		ok = false
	}
	if !implicitCastable(r.Type(), want, c.ti) {
		c.errorf(r.Pos(), "type %s cannot be cast to %s in the right operand of %s", r.Type(), want, opDesc)
		ok = false
	}
	return ok
}

func intLitResult(begin, end token.Position, v int64) exprResult {
	lit := ast.NewIntLit(begin, end, v)
	lit.SetType(types.Int)
	return exprResult{expr: lit, sideEffects: false, lvalue: false}
}

func boolLitResult(begin, end token.Position, v bool) exprResult {
	lit := ast.NewBoolLit(begin, end, v)
	lit.SetType(types.Bool)
	return exprResult{expr: lit, sideEffects: false, lvalue: false}
}
