package checker

import (
	"github.com/lat-compiler/latc/internal/types"
	"github.com/lat-compiler/latc/internal/typeinfo"
)

// implicitCastable reports whether a value of type from may stand wherever
// a value of type to is expected, per spec.md §4.3 "Subtyping and casts":
// T -> T always, null -> any class, C -> any ancestor of C (including C
// itself), and A[] -> B[] whenever A -> B. types.Invalid is compatible
// with anything: the fault that produced it was already reported once.
func implicitCastable(from, to types.Type, ti *typeinfo.TypeInfo) bool {
	if from == types.Invalid || to == types.Invalid {
		return true
	}
	if from.Equal(to) {
		return true
	}
	if from == types.NullTyp {
		if _, ok := types.IsClass(to); ok {
			return true
		}
		return false
	}
	if fc, ok := types.IsClass(from); ok {
		if tc, ok := types.IsClass(to); ok {
			return isAncestorOrSelf(ti, fc.Name, tc.Name)
		}
		return false
	}
	if fa, ok := types.IsArray(from); ok {
		if ta, ok := types.IsArray(to); ok {
			return implicitCastable(fa.Elem, ta.Elem, ti)
		}
		return false
	}
	return false
}

// explicitCastable allows an explicit cast in either direction along any
// implicit-cast relation: upcasts and downcasts through the class
// hierarchy are both legal to write, unlike an implicit cast.
func explicitCastable(a, b types.Type, ti *typeinfo.TypeInfo) bool {
	return implicitCastable(a, b, ti) || implicitCastable(b, a, ti)
}

// anyInvalid reports whether any of ts is types.Invalid — a node whose
// own type error was already reported, so the caller should propagate
// Invalid silently instead of picking an operator branch and piling a
// second, misleading error on top of the first.
func anyInvalid(ts ...types.Type) bool {
	for _, t := range ts {
		if t == types.Invalid {
			return true
		}
	}
	return false
}

// isAncestorOrSelf walks class's inheritance chain looking for ancestor,
// stopping as soon as it finds it or runs out of parents.
func isAncestorOrSelf(ti *typeinfo.TypeInfo, class, ancestor string) bool {
	ci, ok := ti.Classes[class]
	if !ok {
		return false
	}
	for node := ci.Node; node != nil; node = node.Parent {
		if node.ClassName == ancestor {
			return true
		}
	}
	return false
}
