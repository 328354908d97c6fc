// Package checker implements the Lat type checker / normalizer: spec.md
// §4.3. It runs once per function body (every free function and every
// user-declared method), annotating each expression node's Type in place
// and rewriting the ambiguous surface forms (Call, and a Variable that
// resolves to a method or field) into their unambiguous replacements.
//
// Grounded on the teacher's internal/semantic.Analyzer as a top-level
// driver shape and internal/semantic/errors.go's structured-error idiom;
// the rule table itself (casts, per-node type rules, does_return
// propagation, constant folding) follows
// original_source/src/type_checker.cpp's TypeCheckerVisitor line for line,
// re-expressed as ordinary Go functions over the tagged-union AST instead
// of a visitor dispatch.
package checker

import (
	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/types"
	"github.com/lat-compiler/latc/internal/typeinfo"
)

// funcChecker holds everything one function-body pass needs: which
// TypeInfo to resolve names against, the local scope stack, which class
// (if any) encloses this body, and where errors accumulate.
type funcChecker struct {
	ti         *typeinfo.TypeInfo
	scope      *scope
	className  string // "" for a free function
	funcName   string
	returnType types.Type
	errs       []error
}

// Check runs the checker over every free function and every
// user-declared method in prog, in declaration order, and returns every
// accumulated error. A non-empty result means prog is not well-typed and
// must not be handed to the code generator.
func Check(prog *ast.Program, ti *typeinfo.TypeInfo) []error {
	var errs []error

	for _, fn := range prog.Functions {
		info, ok := ti.Functions[fn.Name]
		if !ok {
			continue // already reported as a redeclaration/signature error in typeinfo
		}
		errs = append(errs, checkFunctionBody(ti, "", fn.Name, info.Ret, fn)...)
	}

	for _, cls := range prog.Classes {
		ci, ok := ti.Classes[cls.Name]
		if !ok {
			continue
		}
		for _, m := range cls.Methods {
			idx, ok := ci.MethodIndex[m.Name]
			if !ok || ci.Methods[idx].DefiningClass != cls.Name {
				continue // inherited slot, not declared on this class
			}
			errs = append(errs, checkFunctionBody(ti, cls.Name, m.Name, signatureReturnType(ti, m), m)...)
		}
	}

	errs = append(errs, checkOverrides(prog, ti)...)
	return errs
}

// signatureReturnType re-resolves a function/method's declared return
// type string against ti. typeinfo already validated it during Build;
// this just needs the resolved types.Type to drive Return-statement
// checking.
func signatureReturnType(ti *typeinfo.TypeInfo, decl *ast.Function) types.Type {
	t, ok := resolveTypeName(ti, decl.ReturnType, true)
	if !ok {
		return types.Invalid
	}
	return t
}

func resolveTypeName(ti *typeinfo.TypeInfo, s string, allowVoid bool) (types.Type, bool) {
	return types.ParseTypeName(s, func(name string) bool { _, ok := ti.Classes[name]; return ok }, allowVoid)
}

func checkFunctionBody(ti *typeinfo.TypeInfo, className, funcName string, retType types.Type, fn *ast.Function) []error {
	c := &funcChecker{
		ti:         ti,
		scope:      newScope(),
		className:  className,
		funcName:   funcName,
		returnType: retType,
	}

	c.scope.pushBlock()
	for _, p := range fn.Params {
		pt, ok := resolveTypeName(ti, p.Type, false)
		if !ok {
			pt = types.Invalid
		}
		c.scope.declare(p.Name, pt)
	}

	doesReturn := c.checkBlockBody(fn.Body)

	if !doesReturn {
		if retType.Equal(types.Void) {
			fn.Body.Stmts = append(fn.Body.Stmts, ast.NewReturn(fn.Body.End(), fn.Body.End(), nil))
		} else {
			c.errorf(fn.Body.End(), "not all paths return a value in a non-void function")
		}
	}
	c.scope.popBlock()

	return c.errs
}
