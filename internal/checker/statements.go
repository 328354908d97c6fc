package checker

import (
	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/types"
)

// checkStmtsSequence checks each statement in stmts in place (mutating
// stmts[i] with whatever replacement checkStmt returns) and implements
// spec.md §4.3's dead-code rule: once one statement's does_return is
// true, every statement after it in the same sequence is replaced by
// Empty, since it can never run. Returns whether any statement in the
// sequence returns.
func (c *funcChecker) checkStmtsSequence(stmts []ast.Stmt) bool {
	doesReturn := false
	for i, s := range stmts {
		if doesReturn {
			stmts[i] = ast.NewEmpty(s.Pos(), s.End())
			continue
		}
		replacement, ret := c.checkStmt(s)
		stmts[i] = replacement
		doesReturn = doesReturn || ret
	}
	return doesReturn
}

// checkBlockBody checks a function body's top-level statement sequence.
// Unlike an ordinary Block encountered mid-statement, it does not push or
// pop its own scope block: checkFunctionBody already opened one to hold
// the parameters, and the body's top-level locals share it, exactly as
// the original's TypeCheckerVisitor::check does by never visiting the
// function body as a nested Block.
func (c *funcChecker) checkBlockBody(body *ast.Block) bool {
	return c.checkStmtsSequence(body.Stmts)
}

// checkStmt dispatches on s's concrete type, returning the (possibly
// replaced) statement and its does_return flag.
func (c *funcChecker) checkStmt(s ast.Stmt) (ast.Stmt, bool) {
	switch st := s.(type) {
	case *ast.Empty:
		return st, false
	case *ast.Block:
		c.scope.pushBlock()
		ret := c.checkStmtsSequence(st.Stmts)
		c.scope.popBlock()
		return st, ret
	case *ast.Definition:
		return c.checkDefinition(st)
	case *ast.Assignment:
		return c.checkAssignment(st)
	case *ast.Incr:
		return c.checkIncrDecr(st, st.LValue, func(e ast.Expr) { st.LValue = e }, "increment")
	case *ast.Decr:
		return c.checkIncrDecr(st, st.LValue, func(e ast.Expr) { st.LValue = e }, "decrement")
	case *ast.ExprStmt:
		return c.checkExprStmt(st)
	case *ast.Return:
		return c.checkReturn(st)
	case *ast.If:
		return c.checkIf(st)
	case *ast.While:
		return c.checkWhile(st)
	case *ast.For:
		return c.checkFor(st)
	}
	return s, false
}

func (c *funcChecker) checkDefinition(d *ast.Definition) (ast.Stmt, bool) {
	declType, ok := resolveTypeName(c.ti, d.DeclType, false)
	if !ok {
		c.errorf(d.Pos(), "usage of undeclared type %q", d.DeclType)
		declType = types.Invalid
	}

	for i, v := range d.Vars {
		if v.Init != nil {
			res := c.checkExpr(v.Init)
			d.Vars[i].Init = res.expr
			if !implicitCastable(res.expr.Type(), declType, c.ti) {
				c.errorf(d.Pos(), "cannot cast from %s to %s in the definition of variable %q", res.expr.Type(), declType, v.Name)
			}
		}
		if !c.scope.declare(v.Name, declType) {
			c.errorf(d.Pos(), "redeclaration of variable %q", v.Name)
		}
	}
	return d, false
}

func (c *funcChecker) checkAssignment(a *ast.Assignment) (ast.Stmt, bool) {
	valueRes := c.checkExpr(a.Value)
	a.Value = valueRes.expr
	lvalRes := c.checkExpr(a.LValue)
	a.LValue = lvalRes.expr

	if !implicitCastable(valueRes.expr.Type(), lvalRes.expr.Type(), c.ti) {
		c.errorf(a.Pos(), "cannot cast from %s to %s for assignment", valueRes.expr.Type(), lvalRes.expr.Type())
	}
	if !lvalRes.lvalue {
		c.errorf(a.Pos(), "assignment expects a variable")
	}
	return a, false
}

func (c *funcChecker) checkIncrDecr(s ast.Stmt, lvalue ast.Expr, setLValue func(ast.Expr), verb string) (ast.Stmt, bool) {
	res := c.checkExpr(lvalue)
	setLValue(res.expr)
	if !implicitCastable(res.expr.Type(), types.Int, c.ti) {
		c.errorf(s.Pos(), "cannot cast from %s to int for %s", res.expr.Type(), verb)
	}
	if !res.lvalue {
		c.errorf(s.Pos(), "%s expects a variable", verb)
	}
	return s, false
}

func (c *funcChecker) checkExprStmt(e *ast.ExprStmt) (ast.Stmt, bool) {
	res := c.checkExpr(e.X)
	e.X = res.expr
	doesReturn := isNonReturningCall(res.expr)
	if !res.sideEffects {
		return ast.NewEmpty(e.Pos(), e.End()), doesReturn
	}
	return e, doesReturn
}

// isNonReturningCall reports whether x is a call to the built-in "error"
// function, the one expression a statement can contain that spec.md §4.3
// treats as terminating control flow (it never returns to its caller).
func isNonReturningCall(x ast.Expr) bool {
	sc, ok := x.(*ast.StaticCall)
	return ok && sc.Name == "error"
}

func (c *funcChecker) checkReturn(r *ast.Return) (ast.Stmt, bool) {
	if r.Value == nil {
		if !c.returnType.Equal(types.Void) {
			c.errorf(r.Pos(), "argumentless return in a non-void function")
		}
		return r, true
	}
	res := c.checkExpr(r.Value)
	r.Value = res.expr
	if !implicitCastable(res.expr.Type(), c.returnType, c.ti) {
		c.errorf(r.Pos(), "cannot cast from %s to %s in the return statement", res.expr.Type(), c.returnType)
	}
	return r, true
}

// rejectBareDefinition reports the "wrap it in a block" error spec.md
// §4.3 requires for If/While/For bodies that are a bare Definition: a
// variable declared directly as a loop/if body would have no scope of
// its own to live in.
func (c *funcChecker) rejectBareDefinition(body ast.Stmt, where string) {
	if _, ok := body.(*ast.Definition); ok {
		c.errorf(body.Pos(), "cannot define a variable directly in a %s body, wrap it in a block", where)
	}
}

func (c *funcChecker) checkIf(i *ast.If) (ast.Stmt, bool) {
	condRes := c.checkExpr(i.Cond)
	i.Cond = condRes.expr
	if !implicitCastable(condRes.expr.Type(), types.Bool, c.ti) {
		c.errorf(i.Pos(), "cannot cast from %s to boolean in the condition of if statement", condRes.expr.Type())
	}
	c.rejectBareDefinition(i.Then, "if-then")
	if i.Else != nil {
		c.rejectBareDefinition(i.Else, "if-else")
	}

	then, thenRet := c.checkStmt(i.Then)
	i.Then = then
	var elseRet bool
	if i.Else != nil {
		var els ast.Stmt
		els, elseRet = c.checkStmt(i.Else)
		i.Else = els
	}

	if lit, ok := condRes.expr.(*ast.BoolLit); ok {
		if lit.Value {
			return i.Then, thenRet
		}
		if i.Else != nil {
			return i.Else, elseRet
		}
		return ast.NewEmpty(i.End(), i.End()), false
	}
	return i, thenRet && elseRet
}

func (c *funcChecker) checkWhile(w *ast.While) (ast.Stmt, bool) {
	condRes := c.checkExpr(w.Cond)
	w.Cond = condRes.expr
	if !implicitCastable(condRes.expr.Type(), types.Bool, c.ti) {
		c.errorf(w.Pos(), "cannot cast from %s to boolean in the condition of while loop", condRes.expr.Type())
	}
	c.rejectBareDefinition(w.Body, "while")
	body, _ := c.checkStmt(w.Body)
	w.Body = body

	if lit, ok := condRes.expr.(*ast.BoolLit); ok {
		if lit.Value {
			return w, true
		}
		return ast.NewEmpty(w.Pos(), w.End()), false
	}
	return w, false
}

func (c *funcChecker) checkFor(f *ast.For) (ast.Stmt, bool) {
	c.rejectBareDefinition(f.Body, "for")

	arrRes := c.checkExpr(f.Array)
	f.Array = arrRes.expr

	elemType, ok := resolveTypeName(c.ti, f.ElemType, false)
	if !ok {
		c.errorf(f.Pos(), "usage of undeclared type %q", f.ElemType)
		elemType = types.Invalid
	}

	if arr, ok := types.IsArray(arrRes.expr.Type()); ok {
		if !implicitCastable(arr.Elem, elemType, c.ti) {
			c.errorf(f.Pos(), "type %s does not implicitly cast to %s in for argument", arr.Elem, elemType)
		}
	} else if arrRes.expr.Type() != types.Invalid {
		c.errorf(f.Pos(), "non-array type %s used as a for argument", arrRes.expr.Type())
	}

	c.scope.pushBlock()
	c.scope.declare(f.VarName, elemType)
	body, _ := c.checkStmt(f.Body)
	f.Body = body
	c.scope.popBlock()

	return f, false
}
