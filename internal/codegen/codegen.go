// Package codegen emits the x86-64 NASM-style assembly listing for a
// checked Lat program (spec.md §4.4). It assumes internal/checker has
// already run to completion with zero errors: every Call has been
// rewritten to a StaticCall or VirtualCall, every expression carries a
// resolved Type, and every Definition's declared type string resolves.
// Violating any of these is an internal compiler bug, not a user error,
// so this package reports it by panicking rather than returning it as a
// diagnostic (spec.md §7 "Emit-time invariant violations") — Emit
// recovers at the boundary and turns it into a plain error.
//
// Grounded on original_source/src/backend_x86_64.cpp's emit_code/x86_64
// pair; the stack/label-bookkeeping idiom additionally draws on
// its-hmny-nand2tetris's pkg/asm code generator and on the teacher's own
// bytecode.VM frame bookkeeping.
package codegen

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/typeinfo"
	"github.com/lat-compiler/latc/internal/types"
)

// builtinExterns lists the five reserved free functions in a fixed,
// alphabetical order so the emitted extern block is deterministic —
// typeinfo.Builtins is a map and Go's map iteration order is not.
var builtinExterns = func() []string {
	names := make([]string, 0, len(typeinfo.Builtins))
	for name := range typeinfo.Builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

func sortedFunctionNames(ti *typeinfo.TypeInfo) []string {
	names := make([]string, 0, len(ti.Functions))
	for name := range ti.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedClassNames(ti *typeinfo.TypeInfo) []string {
	names := make([]string, 0, len(ti.Classes))
	for name := range ti.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedMethodNames(ci *typeinfo.ClassInfo) []string {
	names := make([]string, 0, len(ci.MethodIndex))
	for name := range ci.MethodIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Emit writes the full listing for a checked program's TypeInfo to w.
func Emit(ti *typeinfo.TypeInfo, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal compiler error during code generation: %v", r)
		}
	}()

	l := &listing{ti: ti, w: w, strings: map[string]int{}}

	emitHeader(l)
	emitFunctions(l, ti)
	emitClasses(l, ti)
	emitStringTable(l)

	return nil
}

func emitHeader(l *listing) {
	l.printf("section .text")
	l.printf("extern _alloc")
	l.printf("extern _new_array")
	l.printf("extern %s", emptyArrayLabel)
	l.printf("extern %s", emptyStringLabel)
	l.printf("extern %s", concatFuncName)
	for _, name := range builtinExterns {
		l.printf("extern %s", name)
	}
	l.printf("global _start")
	l.printf("_start:")
	l.printf("call main")
	l.printf("mov rdi, rax")
	l.printf("mov rax, 60")
	l.printf("syscall")
}

// emitFunctions emits every free function's body, in name-sorted order —
// TypeInfo.Functions mirrors the original's std::map<string, ...>, which
// iterates lexicographically rather than in declaration order.
func emitFunctions(l *listing, ti *typeinfo.TypeInfo) {
	for _, name := range sortedFunctionNames(ti) {
		info := ti.Functions[name]
		l.printf("%s:", name)
		e := newEmitter(l, paramNames(info.Decl.Params))
		e.emitStmt(info.Decl.Body)
	}
}

// emitClasses emits every class's constructor, vtable, and locally
// defined methods, in name-sorted order (same rationale as
// emitFunctions).
func emitClasses(l *listing, ti *typeinfo.TypeInfo) {
	for _, name := range sortedClassNames(ti) {
		ci := ti.Classes[name]
		emitConstructorAndVTable(l, ci)

		for _, methodName := range sortedMethodNames(ci) {
			m := ci.Methods[ci.MethodIndex[methodName]]
			if m.DefiningClass != name {
				continue // inherited unchanged: no label of its own in this class
			}
			l.printf("%s:", encodeClassFunctionName(name, methodName))
			params := append(paramNames(m.Decl.Params), "self")
			e := newEmitter(l, params)
			e.emitStmt(m.Decl.Body)
		}
	}
}

func paramNames(params []ast.Param) []string {
	names := make([]string, 0, len(params)+1)
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}

// emitConstructorAndVTable emits a class's auto-generated constructor
// (allocate, install the vtable pointer, default-initialize every field)
// and its vtable (one funcref per flattened method slot, naming the class
// that actually defines it).
func emitConstructorAndVTable(l *listing, ci *typeinfo.ClassInfo) {
	name := ci.Decl.Name
	l.printf("%s:", encodeConstructorName(name))
	l.printf("push qword %d", (len(ci.Fields)+1)*8)
	l.printf("call _alloc")
	l.printf("add rsp, 8")
	l.printf("mov qword [rax], %s", encodeVtableName(name))
	for i, f := range ci.Fields {
		l.printf("mov qword [rax+%d], %s", (i+1)*8, defaultValueOperand(f.Type))
	}
	l.printf("ret")

	l.printf("%s:", encodeVtableName(name))
	for _, m := range ci.Methods {
		l.printf("dq %s", encodeClassFunctionName(m.DefiningClass, m.Name))
	}
}

// emitStringTable emits the trailing unique-string-literal table, each as
// a length word followed by its bytes as decimal `db` values (omitted for
// the empty string, whose length word alone suffices).
func emitStringTable(l *listing) {
	for _, s := range l.order {
		id := l.strings[s]
		l.printf("%s dq %d", stringLabel(id), len(s))
		if len(s) == 0 {
			continue
		}
		bytes := make([]string, len(s))
		for i := 0; i < len(s); i++ {
			bytes[i] = strconv.Itoa(int(s[i]))
		}
		l.printf("db %s", strings.Join(bytes, ","))
	}
}

// resolveDeclType resolves a Definition's declared type string against
// ti. The checker already validated it during the body pass that
// produced this Definition; this just needs the types.Type to pick a
// default-value operand.
func resolveDeclType(ti *typeinfo.TypeInfo, s string) (types.Type, bool) {
	return types.ParseTypeName(s, func(name string) bool { _, ok := ti.Classes[name]; return ok }, false)
}
