package checker

import (
	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/types"
)

// checkCall implements spec.md §4.3's Call rule: every argument is
// checked first, left to right, then the callee expression itself — the
// same order original_source/src/type_checker.cpp's CallOperator visitor
// uses. The callee must resolve to a synthetic Function type with
// matching arity and implicitly-castable arguments; the Call node is
// then replaced by a StaticCall (callee stayed a bare Variable, i.e. a
// free function or builtin) or a VirtualCall (callee was rewritten into
// a ClassMember, i.e. a method).
func (c *funcChecker) checkCall(call *ast.Call) exprResult {
	sideEffects := true
	args := make([]ast.Expr, len(call.Args))
	for i, a := range call.Args {
		res := c.checkExpr(a)
		args[i] = res.expr
	}
	call.Args = args

	calleeRes := c.checkExpr(call.Callee)
	call.Callee = calleeRes.expr

	ft, ok := types.IsFunction(calleeRes.expr.Type())
	if !ok {
		if !anyInvalid(calleeRes.expr.Type()) {
			c.errorf(call.Pos(), "called expression of type %s is not callable", calleeRes.expr.Type())
		}
		return exprResult{expr: call, sideEffects: sideEffects, lvalue: false}
	}

	if len(args) != len(ft.Params) {
		c.errorf(call.Pos(), "call expects %d argument(s), got %d", len(ft.Params), len(args))
	} else {
		for i, a := range args {
			if !implicitCastable(a.Type(), ft.Params[i], c.ti) {
				c.errorf(a.Pos(), "argument %d of type %s cannot be cast to %s", i+1, a.Type(), ft.Params[i])
			}
		}
	}

	switch callee := calleeRes.expr.(type) {
	case *ast.Variable:
		sc := ast.NewStaticCall(call.Pos(), call.End(), callee.Name, args)
		sc.SetType(ft.Ret)
		return exprResult{expr: sc, sideEffects: sideEffects, lvalue: false}
	case *ast.ClassMember:
		vc := ast.NewVirtualCall(call.Pos(), call.End(), callee.Object, callee.Member, args)
		vc.SetType(ft.Ret)
		return exprResult{expr: vc, sideEffects: sideEffects, lvalue: false}
	default:
		c.errorf(call.Pos(), "called expression is not a function or method reference")
		call.SetType(types.Invalid)
		return exprResult{expr: call, sideEffects: sideEffects, lvalue: false}
	}
}

// checkSubscript checks the index before the array, matching the
// original's SubscriptOperator visitor order.
func (c *funcChecker) checkSubscript(s *ast.Subscript) exprResult {
	idxRes := c.checkExpr(s.Index)
	s.Index = idxRes.expr
	arrRes := c.checkExpr(s.Array)
	s.Array = arrRes.expr
	sideEffects := idxRes.sideEffects || arrRes.sideEffects

	if !anyInvalid(idxRes.expr.Type()) && !implicitCastable(idxRes.expr.Type(), types.Int, c.ti) {
		c.errorf(s.Pos(), "type %s cannot be cast to int as an array index", idxRes.expr.Type())
	}

	arr, ok := types.IsArray(arrRes.expr.Type())
	if !ok {
		if !anyInvalid(arrRes.expr.Type()) {
			c.errorf(s.Pos(), "type %s is not an array", arrRes.expr.Type())
		}
		s.SetType(types.Invalid)
		return exprResult{expr: s, sideEffects: sideEffects, lvalue: true}
	}
	s.SetType(arr.Elem)
	return exprResult{expr: s, sideEffects: sideEffects, lvalue: true}
}

// checkClassMember implements array.length (int, not an lvalue) and
// class field/method access. typeinfo already rejects a method sharing a
// name with a field (internal/typeinfo's gatherClassMethods), so unlike
// the original there is no ambiguous case to detect here; a field access
// and a not-found access are both lvalue-shaped, a method reference is
// not, matching original_source/src/type_checker.cpp's
// ClassMemberOperator variable_access assignments.
func (c *funcChecker) checkClassMember(cm *ast.ClassMember) exprResult {
	objRes := c.checkExpr(cm.Object)
	cm.Object = objRes.expr

	if _, ok := types.IsArray(objRes.expr.Type()); ok {
		if cm.Member == "length" {
			cm.SetType(types.Int)
			return exprResult{expr: cm, sideEffects: objRes.sideEffects, lvalue: false}
		}
		c.errorf(cm.Pos(), "arrays only have a %q member", "length")
		cm.SetType(types.Invalid)
		return exprResult{expr: cm, sideEffects: objRes.sideEffects, lvalue: true}
	}

	cls, ok := types.IsClass(objRes.expr.Type())
	if !ok {
		if !anyInvalid(objRes.expr.Type()) {
			c.errorf(cm.Pos(), "type %s has no members", objRes.expr.Type())
		}
		cm.SetType(types.Invalid)
		return exprResult{expr: cm, sideEffects: objRes.sideEffects, lvalue: true}
	}

	ci, ok := c.ti.Classes[cls.Name]
	if !ok {
		cm.SetType(types.Invalid)
		return exprResult{expr: cm, sideEffects: objRes.sideEffects, lvalue: true}
	}

	if idx, ok := ci.FieldIndex[cm.Member]; ok {
		cm.SetType(ci.Fields[idx].Type)
		return exprResult{expr: cm, sideEffects: objRes.sideEffects, lvalue: true}
	}
	if idx, ok := ci.MethodIndex[cm.Member]; ok {
		m := ci.Methods[idx]
		cm.SetType(methodFunctionType(c.ti, m.Decl))
		return exprResult{expr: cm, sideEffects: objRes.sideEffects, lvalue: false}
	}

	c.errorf(cm.Pos(), "class %q has no member %q", cls.Name, cm.Member)
	cm.SetType(types.Invalid)
	return exprResult{expr: cm, sideEffects: objRes.sideEffects, lvalue: true}
}

// checkCast allows an explicit cast along either direction of the
// implicit-cast relation (spec.md §4.3 "Casts").
func (c *funcChecker) checkCast(cast *ast.Cast) exprResult {
	xRes := c.checkExpr(cast.X)
	cast.X = xRes.expr

	target, ok := resolveTypeName(c.ti, cast.Target, false)
	if !ok {
		c.errorf(cast.Pos(), "usage of undeclared type %q in cast", cast.Target)
		target = types.Invalid
	}

	if !anyInvalid(xRes.expr.Type(), target) && !explicitCastable(xRes.expr.Type(), target, c.ti) {
		c.errorf(cast.Pos(), "cannot cast %s to %s", xRes.expr.Type(), target)
	}
	cast.SetType(target)
	return exprResult{expr: cast, sideEffects: xRes.sideEffects, lvalue: false}
}

// checkNewObject requires ClassName to name a declared class.
func (c *funcChecker) checkNewObject(n *ast.NewObject) exprResult {
	if _, ok := c.ti.Classes[n.ClassName]; !ok {
		c.errorf(n.Pos(), "usage of undeclared class %q in new expression", n.ClassName)
		n.SetType(types.Invalid)
		return exprResult{expr: n, sideEffects: true, lvalue: false}
	}
	n.SetType(types.Class{Name: n.ClassName})
	return exprResult{expr: n, sideEffects: true, lvalue: false}
}

// checkNewArray requires the size to cast to int and the element type to
// be int, string, boolean, or a declared class (spec.md §4.3 "NewArray").
func (c *funcChecker) checkNewArray(n *ast.NewArray) exprResult {
	sizeRes := c.checkExpr(n.Size)
	n.Size = sizeRes.expr
	if !anyInvalid(sizeRes.expr.Type()) && !implicitCastable(sizeRes.expr.Type(), types.Int, c.ti) {
		c.errorf(n.Pos(), "type %s cannot be cast to int as an array size", sizeRes.expr.Type())
	}

	elem, ok := resolveTypeName(c.ti, n.ElemType, false)
	if !ok {
		c.errorf(n.Pos(), "usage of undeclared type %q in new array expression", n.ElemType)
		elem = types.Invalid
	} else if !isNewArrayElemType(elem) {
		c.errorf(n.Pos(), "type %s cannot be used as an array element type", elem)
		elem = types.Invalid
	}

	n.SetType(types.Array{Elem: elem})
	return exprResult{expr: n, sideEffects: true, lvalue: false}
}

func isNewArrayElemType(t types.Type) bool {
	switch t {
	case types.Int, types.Bool, types.String:
		return true
	}
	if t == types.Invalid {
		return true
	}
	_, isClass := types.IsClass(t)
	return isClass
}
