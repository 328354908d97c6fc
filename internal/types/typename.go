package types

import "strings"

// ParseTypeName resolves a surface type string (as written in a
// Definition, Parameter, or return-type slot — "int", "Foo", "int[]",
// "Foo[][]", ...) into a Type. isClass reports whether a bare name is a
// known class. "void" resolves only when allowVoid is true (function
// return types only, per spec.md §4.1's grammar note).
func ParseTypeName(s string, isClass func(string) bool, allowVoid bool) (Type, bool) {
	if strings.HasSuffix(s, "[]") {
		elem, ok := ParseTypeName(s[:len(s)-2], isClass, false)
		if !ok {
			return nil, false
		}
		return Array{Elem: elem}, true
	}

	switch s {
	case "int":
		return Int, true
	case "boolean":
		return Bool, true
	case "string":
		return String, true
	case "void":
		if allowVoid {
			return Void, true
		}
		return nil, false
	}

	if isClass(s) {
		return Class{Name: s}, true
	}
	return nil, false
}
