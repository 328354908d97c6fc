// Package types implements the Lat type system: the Type value ADT used to
// annotate every checked expression, and ParseTypeName for surface type
// strings. The TypeInfo builder that turns a parsed Program into global
// class/function/inheritance information lives in internal/typeinfo.
//
// spec.md §9 notes that the original implementation encodes "synthetic
// function types" as ad-hoc strings because its source language lacks a
// type ADT, and recommends a proper sum type instead. This package is that
// sum type: Type = Int | Bool | String | Void | Null | Class(name) |
// Array(elem) | Function(ret, params).
package types

import "strings"

// Type is implemented by every concrete type. All variants are comparable
// via Equal, and all render through String for diagnostics.
type Type interface {
	String() string
	Equal(other Type) bool
	isType()
}

// Primitive is one of the four built-in scalar kinds plus the internal
// "null" marker type.
type Primitive struct {
	kind string
}

func (p Primitive) String() string      { return p.kind }
func (p Primitive) isType()             {}
func (p Primitive) Equal(o Type) bool {
	op, ok := o.(Primitive)
	return ok && op.kind == p.kind
}

// The primitive singletons. Compare with == or Equal; both work since
// Primitive is a small comparable struct.
var (
	Int     Type = Primitive{"int"}
	Bool    Type = Primitive{"boolean"}
	String  Type = Primitive{"string"}
	Void    Type = Primitive{"void"}
	NullTyp Type = Primitive{"null"}
)

// Invalid stands in for a node whose type could not be determined (an
// unresolved variable, an unknown class, a prior error already reported on
// a subexpression). The checker assigns it instead of leaving Type() nil
// so that every later rule it feeds into can check against it once,
// report nothing further, and keep walking the tree for other errors —
// the same role the original implementation gives an empty type string.
var Invalid Type = Primitive{"<invalid>"}

// Class is a user-declared class type, identified by name.
type Class struct {
	Name string
}

func (c Class) String() string  { return c.Name }
func (c Class) isType()         {}
func (c Class) Equal(o Type) bool {
	oc, ok := o.(Class)
	return ok && oc.Name == c.Name
}

// Array is T[] for some non-void element type T.
type Array struct {
	Elem Type
}

func (a Array) String() string { return a.Elem.String() + "[]" }
func (a Array) isType()        {}
func (a Array) Equal(o Type) bool {
	oa, ok := o.(Array)
	return ok && a.Elem.Equal(oa.Elem)
}

// Function is a synthetic callable type: the type temporarily assigned to
// a resolved-but-not-yet-invoked callee (a bare function name, or a
// ClassMember naming a method) while the checker type-checks a Call node's
// argument list against it. It never appears as the final type of any
// expression once checking completes — Call nodes are always replaced by
// StaticCall/VirtualCall, whose own Type is the declared return type.
type Function struct {
	Ret    Type
	Params []Type
}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "@function<" + f.Ret.String() + "(" + strings.Join(parts, ",") + ")>"
}
func (f Function) isType() {}
func (f Function) Equal(o Type) bool {
	of, ok := o.(Function)
	if !ok || len(of.Params) != len(f.Params) || !of.Ret.Equal(f.Ret) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(of.Params[i]) {
			return false
		}
	}
	return true
}

// IsArray reports whether t is an Array type and returns its element type.
func IsArray(t Type) (Array, bool) {
	a, ok := t.(Array)
	return a, ok
}

// IsClass reports whether t is a Class type.
func IsClass(t Type) (Class, bool) {
	c, ok := t.(Class)
	return c, ok
}

// IsFunction reports whether t is a synthetic Function type.
func IsFunction(t Type) (Function, bool) {
	f, ok := t.(Function)
	return f, ok
}
