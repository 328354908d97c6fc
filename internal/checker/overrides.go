package checker

import (
	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/typeinfo"
)

// checkOverrides re-validates every method slot a class actually
// overrides (as opposed to inherits unchanged) against the direct parent
// class's method in that slot, per original_source/src/type_checker.cpp's
// check_types driver (lines ~956-990): the override's return type must
// implicitly cast to the parent's, it must take the same number of
// parameters, and each parameter type must implicitly cast to the
// corresponding parent parameter type. The parameter direction is
// covariant — intentionally unsound, matching the original.
func checkOverrides(prog *ast.Program, ti *typeinfo.TypeInfo) []error {
	var errs []error

	for _, cls := range prog.Classes {
		ci, ok := ti.Classes[cls.Name]
		if !ok || ci.Node.Parent == nil {
			continue
		}
		parent := ti.Classes[ci.Node.Parent.ClassName]

		for name, parentIdx := range parent.MethodIndex {
			childIdx, ok := ci.MethodIndex[name]
			if !ok {
				continue
			}
			childMethod := ci.Methods[childIdx]
			parentMethod := parent.Methods[parentIdx]
			if childMethod.Decl == parentMethod.Decl {
				continue // inherited unchanged, not an override in this class
			}

			childRet := signatureReturnType(ti, childMethod.Decl)
			parentRet := signatureReturnType(ti, parentMethod.Decl)
			if !implicitCastable(childRet, parentRet, ti) {
				errs = append(errs, &CheckError{
					Pos:       childMethod.Decl.Pos(),
					ClassName: cls.Name,
					FuncName:  name,
					Msg:       "override return type does not implicitly cast to the overridden method's return type",
				})
			}

			if len(childMethod.Decl.Params) != len(parentMethod.Decl.Params) {
				errs = append(errs, &CheckError{
					Pos:       childMethod.Decl.Pos(),
					ClassName: cls.Name,
					FuncName:  name,
					Msg:       "override has a different number of parameters than the overridden method",
				})
				continue
			}

			for i, childParam := range childMethod.Decl.Params {
				parentParam := parentMethod.Decl.Params[i]
				childPT, ok1 := resolveTypeName(ti, childParam.Type, false)
				parentPT, ok2 := resolveTypeName(ti, parentParam.Type, false)
				if !ok1 || !ok2 {
					continue // already reported during typeinfo's signature check
				}
				if !implicitCastable(childPT, parentPT, ti) {
					errs = append(errs, &CheckError{
						Pos:       childMethod.Decl.Pos(),
						ClassName: cls.Name,
						FuncName:  name,
						Msg:       "override parameter does not implicitly cast to the overridden method's parameter type",
					})
				}
			}
		}
	}

	return errs
}
