package codegen

import (
	"fmt"
	"io"

	"github.com/lat-compiler/latc/internal/typeinfo"
)

// listing holds the state shared across every function and method body
// emitted into one output listing: the output stream, the monotonic
// label counter, and the deduplicated string-literal table.
// original_source/src/backend_x86_64.cpp shares a single counter between
// control-flow labels and string-literal ids (spec.md §9 "Global ordering
// of string literals"); this struct is that shared counter, threaded
// through every per-body emitter.
type listing struct {
	ti      *typeinfo.TypeInfo
	w       io.Writer
	label   int
	strings map[string]int
	order   []string // literal values in first-seen order, for the trailing table
}

func (l *listing) printf(format string, args ...any) {
	fmt.Fprintf(l.w, format+"\n", args...)
}

func (l *listing) nextLabel() int {
	id := l.label
	l.label++
	return id
}

// stringID returns v's label id, allocating one on first sight.
func (l *listing) stringID(v string) int {
	if id, ok := l.strings[v]; ok {
		return id
	}
	id := l.nextLabel()
	l.strings[v] = id
	l.order = append(l.order, v)
	return id
}

// emitter emits one function or method body: the variable-stack
// bookkeeping of spec.md §4.4 "Local-variable bookkeeping", scoped to a
// single body, plus a handle on the shared listing state.
type emitter struct {
	*listing
	params      []string // formal parameter names, in order (self appended last for methods)
	varNames    []string // locals as pushed onto the runtime stack, in push order; "" marks an anonymous temporary
	varIndex    map[string][]int
	blockCounts []int // how many names the currently-open blocks have pushed, one entry per nesting level
}

func newEmitter(l *listing, params []string) *emitter {
	return &emitter{listing: l, params: params, varIndex: map[string][]int{}}
}

// pushAnon reserves an anonymous stack slot, used for a value held in
// place (typically via a register spill) across a nested sub-evaluation.
func (e *emitter) pushAnon() {
	e.varNames = append(e.varNames, "")
	e.bump(1)
}

func (e *emitter) popAnon() {
	e.varNames = e.varNames[:len(e.varNames)-1]
	e.bump(-1)
}

// pushNamed declares a local named name at the stack's current depth.
func (e *emitter) pushNamed(name string) {
	e.varIndex[name] = append(e.varIndex[name], len(e.varNames))
	e.varNames = append(e.varNames, name)
	e.bump(1)
}

func (e *emitter) bump(delta int) {
	if n := len(e.blockCounts); n > 0 {
		e.blockCounts[n-1] += delta
	}
}

func (e *emitter) pushBlock() {
	e.blockCounts = append(e.blockCounts, 0)
}

// popBlock pops every name the block just closed over declared and
// returns how many there were, so the caller can emit the matching
// `add rsp, 8*n`.
func (e *emitter) popBlock() int {
	n := e.blockCounts[len(e.blockCounts)-1]
	e.blockCounts = e.blockCounts[:len(e.blockCounts)-1]
	for i := 0; i < n; i++ {
		name := e.varNames[len(e.varNames)-1]
		e.popNameEntry(name)
	}
	return n
}

func (e *emitter) popNameEntry(name string) {
	stack := e.varIndex[name]
	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		delete(e.varIndex, name)
	} else {
		e.varIndex[name] = stack
	}
	e.varNames = e.varNames[:len(e.varNames)-1]
}

// evalTwo evaluates first into rax, spills it to a stack slot (rbx once
// second has run), then evaluates second into rax, finally restoring
// first's value into rbx. Every binary operator, Assignment, and the
// Subscript address computation use this "compute rbx, then rax" dance — grounded on
// backend_x86_64.cpp's get_two_variables.
func (e *emitter) evalTwo(first, second func()) {
	first()
	e.printf("push rax")
	e.pushAnon()
	second()
	e.printf("pop rbx")
	e.popAnon()
}
