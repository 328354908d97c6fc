package codegen

import (
	"fmt"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/types"
)

// emitExpr evaluates expr, leaving its value in rax. Grounded on
// backend_x86_64.cpp's x86_64 visitor; every case here mirrors one of its
// `apply` overloads.
func (e *emitter) emitExpr(expr ast.Expr) {
	switch x := expr.(type) {
	case *ast.IntLit:
		e.printf("mov rax, %d", x.Value)
	case *ast.BoolLit:
		e.printf("mov rax, %d", boolWord(x.Value))
	case *ast.StringLit:
		e.printf("mov rax, %s", stringLabel(e.stringID(x.Value)))
	case *ast.NullLit:
		e.printf("mov rax, 0")
	case *ast.Variable:
		e.emitVariableAddr(x.Name)
		e.printf("mov rax, [rax]")
	case *ast.UnaryOp:
		e.emitUnary(x)
	case *ast.BinaryOp:
		e.emitBinary(x)
	case *ast.StaticCall:
		e.emitStaticCall(x)
	case *ast.VirtualCall:
		e.emitVirtualCall(x)
	case *ast.Subscript:
		e.emitAddr(x)
		e.printf("mov rax, [rax]")
	case *ast.ClassMember:
		e.emitClassMemberValue(x)
	case *ast.Cast:
		e.emitExpr(x.X)
	case *ast.NewObject:
		e.printf("call %s", encodeConstructorName(x.ClassName))
	case *ast.NewArray:
		e.emitNewArray(x)
	case *ast.Call:
		panic("codegen: unresolved Call node reached the generator")
	default:
		panic(fmt.Sprintf("codegen: unhandled expression node %T", expr))
	}
}

func boolWord(v bool) int {
	if v {
		return 1
	}
	return 0
}

// emitClassMemberValue loads a ClassMember's value. `array.length` reads
// the array's own length word, so the object expression is evaluated
// directly rather than through emitAddr; every other member goes through
// the address computation. Both paths end with the same final load,
// matching the original's single shared `mov rax, [rax]` tail.
func (e *emitter) emitClassMemberValue(x *ast.ClassMember) {
	if _, ok := types.IsArray(x.Object.Type()); ok {
		e.emitExpr(x.Object)
	} else {
		e.emitAddr(x)
	}
	e.printf("mov rax, [rax]")
}

func (e *emitter) emitUnary(x *ast.UnaryOp) {
	e.emitExpr(x.X)
	switch x.Op {
	case ast.IntNeg:
		e.printf("imul rax, -1")
	case ast.BoolNeg:
		e.printf("test rax, rax")
		e.printf("setz bl")
		e.printf("xor rax, rax")
		e.printf("mov al, bl")
	}
}

func (e *emitter) emitBinary(x *ast.BinaryOp) {
	switch x.Op {
	case ast.Add:
		e.intBinOp(x.Left, x.Right, "add")
	case ast.Sub:
		e.intBinOp(x.Left, x.Right, "sub")
	case ast.Mul:
		e.intBinOp(x.Left, x.Right, "imul")
	case ast.Div:
		e.intDiv(x.Left, x.Right)
	case ast.Mod:
		e.intDiv(x.Left, x.Right)
		e.printf("mov rax, rdx")
	case ast.Lt:
		e.cmpBinOp(x.Left, x.Right, "setl")
	case ast.Le:
		e.cmpBinOp(x.Left, x.Right, "setle")
	case ast.Gt:
		e.cmpBinOp(x.Left, x.Right, "setg")
	case ast.Ge:
		e.cmpBinOp(x.Left, x.Right, "setge")
	case ast.Eq:
		e.cmpBinOp(x.Left, x.Right, "sete")
	case ast.Ne:
		e.cmpBinOp(x.Left, x.Right, "setne")
	case ast.And:
		e.shortCircuit(x.Left, x.Right, "jz")
	case ast.Or:
		e.shortCircuit(x.Left, x.Right, "jnz")
	default:
		panic(fmt.Sprintf("codegen: unhandled binary operator %v", x.Op))
	}
}

// intBinOp evaluates r then l (original_source's own right-to-left order
// for this pair, kept unchanged) and applies op to the rax/rbx pair it
// leaves behind.
func (e *emitter) intBinOp(l, r ast.Expr, op string) {
	e.evalTwo(func() { e.emitExpr(r) }, func() { e.emitExpr(l) })
	e.printf("%s rax, rbx", op)
}

func (e *emitter) intDiv(l, r ast.Expr) {
	e.evalTwo(func() { e.emitExpr(r) }, func() { e.emitExpr(l) })
	e.printf("cqo")
	e.printf("idiv rbx")
}

func (e *emitter) cmpBinOp(l, r ast.Expr, setcc string) {
	e.intBinOp(l, r, "cmp")
	e.printf("%s bl", setcc)
	e.printf("xor rax, rax")
	e.printf("mov al, bl")
}

// shortCircuit evaluates l; if jumpCmd's test fires, r is skipped and l's
// rax value (0 or 1) stands for the whole expression. `&&` skips on zero
// (jz), `||` skips on nonzero (jnz).
func (e *emitter) shortCircuit(l, r ast.Expr, jumpCmd string) {
	label := e.nextLabel()
	e.emitExpr(l)
	e.printf("test rax, rax")
	e.printf("%s _boolean_op_after_%d", jumpCmd, label)
	e.emitExpr(r)
	e.printf("_boolean_op_after_%d:", label)
}

func (e *emitter) emitStaticCall(x *ast.StaticCall) {
	for _, a := range x.Args {
		e.emitExpr(a)
		e.printf("push rax")
		e.pushAnon()
	}
	e.printf("call %s", x.Name)
	for range x.Args {
		e.popAnon()
	}
	if len(x.Args) > 0 {
		e.printf("add rsp, %d", len(x.Args)*8)
	}
}

// emitVirtualCall pushes args (tracked, like emitStaticCall), evaluates
// the receiver and pushes it untracked (its slot never outlives this
// call, so it never needs to be addressable by name), then walks the
// vtable: `[receiver]` is the vtable pointer, `+8*slot` selects the
// method, and the final load yields the funcref to call.
func (e *emitter) emitVirtualCall(x *ast.VirtualCall) {
	for _, a := range x.Args {
		e.emitExpr(a)
		e.printf("push rax")
		e.pushAnon()
	}
	e.emitExpr(x.Object)
	e.printf("push rax")
	e.printf("mov rax, [rax]")

	cls, ok := types.IsClass(x.Object.Type())
	if !ok {
		panic(fmt.Sprintf("codegen: virtual call receiver has non-class type %s", x.Object.Type()))
	}
	ci, ok := e.ti.Classes[cls.Name]
	if !ok {
		panic(fmt.Sprintf("codegen: unknown class %q reached virtual call emission", cls.Name))
	}
	slot, ok := ci.MethodIndex[x.Name]
	if !ok {
		panic(fmt.Sprintf("codegen: unknown method %q on class %q reached virtual call emission", x.Name, cls.Name))
	}
	e.printf("add rax, %d", slot*8)
	e.printf("mov rax, [rax]")
	e.printf("call rax")

	for range x.Args {
		e.popAnon()
	}
	e.printf("add rsp, %d", (len(x.Args)+1)*8)
}

// emitNewArray pushes the element default value, then the already-rax'd
// size, and hands both to the runtime's `_new_array`. The default-value
// operand is pushed first but the size stays in rax from `x.Size`'s
// evaluation until the following `push rax` — matching the original's
// instruction order exactly.
func (e *emitter) emitNewArray(x *ast.NewArray) {
	e.emitExpr(x.Size)
	arr, ok := types.IsArray(x.Type())
	if !ok {
		panic(fmt.Sprintf("codegen: NewArray has non-array type %s", x.Type()))
	}
	e.printf("push qword %s", defaultValueOperand(arr.Elem))
	e.printf("push rax")
	e.printf("call _new_array")
	e.printf("add rsp, 16")
}
