package codegen

import (
	"fmt"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/types"
)

// emitAddr leaves the address of the lvalue expr in rax. Grounded on
// backend_x86_64.cpp's GetAddr visitor; panics on any node the checker
// guarantees is never an lvalue (spec.md §4.3's lvalue column), since
// reaching one here is an internal compiler bug, not a user-facing error.
func (e *emitter) emitAddr(expr ast.Expr) {
	switch x := expr.(type) {
	case *ast.Variable:
		e.emitVariableAddr(x.Name)
	case *ast.Subscript:
		e.emitSubscriptAddr(x)
	case *ast.Cast:
		e.emitAddr(x.X)
	case *ast.ClassMember:
		e.emitClassMemberAddr(x)
	default:
		panic(fmt.Sprintf("codegen: expected an lvalue, got %T", expr))
	}
}

// emitVariableAddr resolves name against the innermost-shadowing local
// first, then the formal parameters. A local at push-index i sits at
// `[rsp + 8*(depth-i-1)]`; the i-th formal parameter sits at
// `[rsp + 8*(depth+nargs-i)]` (spec.md §4.4 "Local-variable bookkeeping").
func (e *emitter) emitVariableAddr(name string) {
	if idxStack, ok := e.varIndex[name]; ok && len(idxStack) > 0 {
		idx := idxStack[len(idxStack)-1]
		offset := (len(e.varNames) - idx - 1) * 8
		e.printf("lea rax, [rsp+%d]", offset)
		return
	}
	for i, p := range e.params {
		if p == name {
			offset := (len(e.varNames) + len(e.params) - i) * 8
			e.printf("lea rax, [rsp+%d]", offset)
			return
		}
	}
	panic(fmt.Sprintf("codegen: unresolved variable %q reached address computation", name))
}

// emitSubscriptAddr computes array[index]'s address, bounds-checking the
// index against the array's length word (slot 0) before the lea: `cmp
// [rax], rbx` then `jle error`, carried through unchanged from the
// original (spec.md §4.4).
func (e *emitter) emitSubscriptAddr(x *ast.Subscript) {
	e.evalTwo(func() { e.emitExpr(x.Index) }, func() { e.emitExpr(x.Array) })
	e.printf("cmp [rax], rbx")
	e.printf("jle error")
	e.printf("lea rax, [rax + rbx * 8 + 8]")
}

// emitClassMemberAddr computes a field's address: the object's address
// plus `8*(field_index+1)` (slot 0 is always the vtable pointer).
func (e *emitter) emitClassMemberAddr(x *ast.ClassMember) {
	e.emitExpr(x.Object)
	cls, ok := types.IsClass(x.Object.Type())
	if !ok {
		panic(fmt.Sprintf("codegen: class member access on non-class type %s", x.Object.Type()))
	}
	ci, ok := e.ti.Classes[cls.Name]
	if !ok {
		panic(fmt.Sprintf("codegen: unknown class %q reached address computation", cls.Name))
	}
	idx, ok := ci.FieldIndex[x.Member]
	if !ok {
		panic(fmt.Sprintf("codegen: unknown field %q on class %q reached address computation", x.Member, cls.Name))
	}
	e.printf("add rax, %d", (idx+1)*8)
}
