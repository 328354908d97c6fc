package checker

import (
	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/types"
	"github.com/lat-compiler/latc/internal/typeinfo"
)

// exprResult is what checking one expression node produces: the node
// itself (or its replacement — a constant fold, a Variable rewritten into
// a ClassMember, a Call rewritten into a StaticCall/VirtualCall), whether
// evaluating it can have an observable side effect, and whether it names
// a storage location (spec.md §4.3's variable_access / lvalue flag).
// Every checkExpr helper below has already called SetType on the
// returned expr before returning it.
type exprResult struct {
	expr        ast.Expr
	sideEffects bool
	lvalue      bool
}

func (c *funcChecker) checkExpr(e ast.Expr) exprResult {
	switch x := e.(type) {
	case *ast.IntLit, *ast.BoolLit, *ast.StringLit:
		return c.checkLiteral(e)
	case *ast.NullLit:
		x.SetType(types.NullTyp)
		return exprResult{expr: x, sideEffects: false, lvalue: true}
	case *ast.Variable:
		return c.checkVariable(x)
	case *ast.UnaryOp:
		return c.checkUnaryOp(x)
	case *ast.BinaryOp:
		return c.checkBinaryOp(x)
	case *ast.Call:
		return c.checkCall(x)
	case *ast.Subscript:
		return c.checkSubscript(x)
	case *ast.ClassMember:
		return c.checkClassMember(x)
	case *ast.Cast:
		return c.checkCast(x)
	case *ast.NewObject:
		return c.checkNewObject(x)
	case *ast.NewArray:
		return c.checkNewArray(x)
	}
	// StaticCall/VirtualCall only ever appear as checker output, never as
	// parser input, so the dispatch above is exhaustive over what the
	// parser can hand us.
	panic("checker: unexpected expression node in source tree")
}

func (c *funcChecker) checkLiteral(e ast.Expr) exprResult {
	switch lit := e.(type) {
	case *ast.IntLit:
		lit.SetType(types.Int)
	case *ast.BoolLit:
		lit.SetType(types.Bool)
	case *ast.StringLit:
		lit.SetType(types.String)
	}
	return exprResult{expr: e, sideEffects: false, lvalue: false}
}

// checkVariable implements spec.md §4.3's six-case resolution order for
// a bare name. Cases 2 and 3 rewrite the node into an explicit
// ClassMember(self, name); cases 5 and 6 leave it as a Variable (there is
// no implicit-self indirection for a free function or built-in).
func (c *funcChecker) checkVariable(v *ast.Variable) exprResult {
	if t, ok := c.scope.lookup(v.Name); ok {
		v.SetType(t)
		return exprResult{expr: v, sideEffects: false, lvalue: true}
	}

	if c.className != "" {
		ci := c.ti.Classes[c.className]
		if idx, ok := ci.MethodIndex[v.Name]; ok {
			m := ci.Methods[idx]
			ft := methodFunctionType(c.ti, m.Decl)
			return exprResult{expr: c.rewriteToSelfMember(v, m.Name, ft), sideEffects: false, lvalue: false}
		}
		if idx, ok := ci.FieldIndex[v.Name]; ok {
			ft := ci.Fields[idx].Type
			return exprResult{expr: c.rewriteToSelfMember(v, v.Name, ft), sideEffects: false, lvalue: true}
		}
		if v.Name == "self" {
			v.SetType(types.Class{Name: c.className})
			return exprResult{expr: v, sideEffects: false, lvalue: true}
		}
	}

	if fn, ok := c.ti.Functions[v.Name]; ok {
		v.SetType(types.Function{Ret: fn.Ret, Params: fn.Params})
		return exprResult{expr: v, sideEffects: false, lvalue: false}
	}
	if bi, ok := typeinfo.Builtins[v.Name]; ok {
		v.SetType(types.Function{Ret: bi.Ret, Params: bi.Params})
		return exprResult{expr: v, sideEffects: false, lvalue: false}
	}

	c.errorf(v.Pos(), "use of undeclared variable or function %q", v.Name)
	v.SetType(types.Invalid)
	return exprResult{expr: v, sideEffects: false, lvalue: false}
}

// rewriteToSelfMember builds the ClassMember(self, name) replacement for
// a Variable that resolved to an implicit-self method or field access.
func (c *funcChecker) rewriteToSelfMember(v *ast.Variable, name string, t types.Type) ast.Expr {
	self := ast.NewVariable(v.Pos(), v.Pos(), "self")
	self.SetType(types.Class{Name: c.className})
	member := ast.NewClassMember(v.Pos(), v.End(), self, name)
	member.SetType(t)
	return member
}

// methodFunctionType re-resolves a method's declared signature into the
// synthetic Function type used to type-check a Call against it.
func methodFunctionType(ti *typeinfo.TypeInfo, decl *ast.Function) types.Type {
	ret := signatureReturnType(ti, decl)
	params := make([]types.Type, len(decl.Params))
	for i, p := range decl.Params {
		pt, ok := resolveTypeName(ti, p.Type, false)
		if !ok {
			pt = types.Invalid
		}
		params[i] = pt
	}
	return types.Function{Ret: ret, Params: params}
}
