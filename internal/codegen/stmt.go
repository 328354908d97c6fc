package codegen

import (
	"fmt"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/types"
)

// emitStmt emits stmt's instructions. Grounded on backend_x86_64.cpp's
// x86_64 visitor's statement overloads.
func (e *emitter) emitStmt(stmt ast.Stmt) {
	switch x := stmt.(type) {
	case *ast.Empty:
		// no-op: the parsed `;`, dead code the checker elided, or a
		// constant-condition branch the checker pruned.
	case *ast.Block:
		e.emitBlock(x)
	case *ast.Definition:
		e.emitDefinition(x)
	case *ast.Assignment:
		e.emitAssignment(x)
	case *ast.Incr:
		e.emitAddr(x.LValue)
		e.printf("inc qword [rax]")
	case *ast.Decr:
		e.emitAddr(x.LValue)
		e.printf("dec qword [rax]")
	case *ast.ExprStmt:
		e.emitExpr(x.X)
	case *ast.Return:
		e.emitReturn(x)
	case *ast.If:
		e.emitIf(x)
	case *ast.While:
		e.emitWhile(x)
	case *ast.For:
		e.emitFor(x)
	default:
		panic(fmt.Sprintf("codegen: unhandled statement node %T", stmt))
	}
}

func (e *emitter) emitBlock(b *ast.Block) {
	e.pushBlock()
	for _, s := range b.Stmts {
		e.emitStmt(s)
	}
	if popped := e.popBlock(); popped > 0 {
		e.printf("add rsp, %d", popped*8)
	}
}

// emitDefinition pushes each declared variable's initial value (its
// initializer if present, else its type's default) and declares it at
// its new stack slot.
func (e *emitter) emitDefinition(d *ast.Definition) {
	declType, ok := resolveDeclType(e.ti, d.DeclType)
	if !ok {
		declType = types.Invalid
	}
	for _, v := range d.Vars {
		if v.Init != nil {
			e.emitExpr(v.Init)
			e.printf("push rax")
		} else {
			e.printf("push %s", defaultValueOperand(declType))
		}
		e.pushNamed(v.Name)
	}
}

func (e *emitter) emitAssignment(a *ast.Assignment) {
	e.evalTwo(func() { e.emitExpr(a.Value) }, func() { e.emitAddr(a.LValue) })
	e.printf("mov qword [rax], rbx")
}

func (e *emitter) emitReturn(r *ast.Return) {
	if r.Value != nil {
		e.emitExpr(r.Value)
	}
	if n := len(e.varNames); n > 0 {
		e.printf("add rsp, %d", n*8)
	}
	e.printf("ret")
}

func (e *emitter) emitIf(x *ast.If) {
	label := e.nextLabel()
	e.emitExpr(x.Cond)
	e.printf("test rax, rax")
	if x.Else != nil {
		e.printf("jz _if_else_%d", label)
		e.emitStmt(x.Then)
		e.printf("jmp _if_done_%d", label)
		e.printf("_if_else_%d:", label)
		e.emitStmt(x.Else)
		e.printf("_if_done_%d:", label)
		return
	}
	e.printf("jz _if_done_%d", label)
	e.emitStmt(x.Then)
	e.printf("_if_done_%d:", label)
}

func (e *emitter) emitWhile(x *ast.While) {
	label := e.nextLabel()
	e.printf("jmp _while_condition_%d", label)
	e.printf("_while_body_%d:", label)
	e.emitStmt(x.Body)
	e.printf("_while_condition_%d:", label)
	e.emitExpr(x.Cond)
	e.printf("test rax, rax")
	e.printf("jnz _while_body_%d", label)
}

// emitFor emits a for-each loop over an array. Three untyped stack slots
// hold the array pointer, the loop index, and the element variable,
// manipulated directly rather than through a nested Block (the original
// does the same — the element variable's lifetime is the loop, not any
// block within it). The body's first two instructions reuse rax/rbx as
// left by the preceding condition check rather than reloading them: no
// register-preservation scheme guards this across the body (spec.md §9
// "For-loop scratch register reuse" — kept exactly, not "fixed").
func (e *emitter) emitFor(x *ast.For) {
	label := e.nextLabel()
	e.emitExpr(x.Array)

	e.bump(3)
	e.varNames = append(e.varNames, "", "")
	e.varIndex[x.VarName] = append(e.varIndex[x.VarName], len(e.varNames))
	e.varNames = append(e.varNames, x.VarName)

	e.printf("push rax")
	e.printf("push qword 0")
	e.printf("sub rsp, 8")

	e.printf("jmp _for_condition_%d", label)
	e.printf("_for_body_%d:", label)
	e.printf("lea rax, [rbx + rax * 8 + 8]")
	e.printf("mov rax, [rax]")
	e.printf("mov [rsp], rax")
	e.emitStmt(x.Body)
	e.printf("inc qword [rsp+8]")
	e.printf("_for_condition_%d:", label)
	e.printf("mov rax, [rsp+8]")
	e.printf("mov rbx, [rsp+16]")
	e.printf("cmp rax, [rbx]")
	e.printf("jl _for_body_%d", label)

	e.printf("add rsp, 24")
	e.popNameEntry(x.VarName)
	e.varNames = e.varNames[:len(e.varNames)-2]
	e.bump(-3)
}
