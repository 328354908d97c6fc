// Package typeinfo builds the global TypeInfo dictionary a parsed Program
// is checked against: resolved class inheritance, flattened member/method
// tables, and free-function signatures (spec.md §3 "TypeInfo", §4.2).
//
// It runs once, after parsing and before type checking, and never mutates
// the AST — it only borrows into it and builds its own flattened tables.
package typeinfo

import (
	"fmt"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/token"
	"github.com/lat-compiler/latc/internal/types"
)

// Field is one flattened member variable slot.
type Field struct {
	Type types.Type
	Name string
}

// Method is one flattened vtable slot. DefiningClass is the class whose
// body actually implements this slot — the parent's name until an
// override replaces it — and is what the code generator encodes into the
// vtable funcref (spec.md §4.4).
type Method struct {
	Name          string
	Decl          *ast.Function
	DefiningClass string
}

// InheritanceNode is one node of the inheritance forest (spec.md §3).
// Parent is a weak (non-owning) back-reference; Children is the owning
// list.
type InheritanceNode struct {
	ClassName string
	Parent    *InheritanceNode
	Children  []*InheritanceNode
}

// ClassInfo is the fully-resolved view of one declared class: its AST
// node, its flattened field and method tables (ancestor-first, spec.md
// GLOSSARY), and its place in the inheritance forest.
type ClassInfo struct {
	Decl        *ast.Class
	Fields      []Field
	FieldIndex  map[string]int
	Methods     []Method
	MethodIndex map[string]int
	Node        *InheritanceNode
}

// FunctionInfo is a free function's resolved signature.
type FunctionInfo struct {
	Decl   *ast.Function
	Ret    types.Type
	Params []types.Type
}

// TypeInfo is the full global dictionary built from a Program.
type TypeInfo struct {
	Classes   map[string]*ClassInfo
	Functions map[string]*FunctionInfo
	Roots     []*InheritanceNode
}

// Builtins lists the five free functions that are visible to name
// resolution but never stored in Functions (spec.md §3, §6).
var Builtins = map[string]FunctionInfo{
	"printInt":    {Ret: types.Void, Params: []types.Type{types.Int}},
	"printString": {Ret: types.Void, Params: []types.Type{types.String}},
	"readInt":     {Ret: types.Int},
	"readString":  {Ret: types.String},
	"error":       {Ret: types.Void},
}

// IsBuiltin reports whether name is one of the five reserved builtins.
func IsBuiltin(name string) bool {
	_, ok := Builtins[name]
	return ok
}

var predefined = map[string]bool{"int": true, "boolean": true, "string": true, "void": true}

// Build runs all five phases over prog and returns the resulting TypeInfo
// together with the accumulated structural errors. A nil TypeInfo is
// returned only when phase (b) aborts on an unknown superclass or an
// inheritance cycle — every other error
// is accumulated and Build still returns a (possibly incomplete) TypeInfo
// so that later phases of a batch-oriented caller can still run; the
// driver is expected to refuse to proceed to checking when len(errs) > 0.
func Build(prog *ast.Program) (*TypeInfo, []error) {
	var errs []error
	ti := &TypeInfo{
		Classes:   make(map[string]*ClassInfo),
		Functions: make(map[string]*FunctionInfo),
	}

	errs = append(errs, gatherClassNames(prog, ti)...)

	if cycleErr := buildInheritanceForest(prog, ti); cycleErr != nil {
		// Phase (b)'s unknown-superclass and cycle checks are the hard
		// structural faults that abort outright: every later phase assumes
		// the forest is a DAG.
		return nil, append(errs, cycleErr)
	}

	errs = append(errs, gatherFreeFunctions(prog, ti)...)
	errs = append(errs, gatherClassVariables(prog, ti)...)
	errs = append(errs, gatherClassMethods(prog, ti)...)

	return ti, errs
}

// (a) Gather class names.
func gatherClassNames(prog *ast.Program, ti *TypeInfo) []error {
	var errs []error
	for _, c := range prog.Classes {
		if predefined[c.Name] {
			errs = append(errs, fmt.Errorf("class %q collides with a predefined type at %s", c.Name, c.Pos()))
			continue
		}
		if _, exists := ti.Classes[c.Name]; exists {
			errs = append(errs, fmt.Errorf("class %q redeclared at %s", c.Name, c.Pos()))
			continue
		}
		ti.Classes[c.Name] = &ClassInfo{Decl: c, FieldIndex: map[string]int{}, MethodIndex: map[string]int{}}
	}
	return errs
}

// (b) Build inheritance forest. Returns a single fatal error on an
// unknown superclass or a cycle, nil otherwise.
func buildInheritanceForest(prog *ast.Program, ti *TypeInfo) error {
	nodes := make(map[string]*InheritanceNode, len(ti.Classes))
	for name := range ti.Classes {
		nodes[name] = &InheritanceNode{ClassName: name}
	}

	for _, c := range prog.Classes {
		_, ok := ti.Classes[c.Name]
		if !ok {
			continue // already reported as a duplicate/collision in phase (a)
		}
		if c.Superclass == "" {
			continue
		}
		parentInfo, ok := ti.Classes[c.Superclass]
		if !ok {
			return fmt.Errorf("class %q extends unknown class %q at %s", c.Name, c.Superclass, c.Pos())
		}
		_ = parentInfo
		node := nodes[c.Name]
		node.Parent = nodes[c.Superclass]
		nodes[c.Superclass].Children = append(nodes[c.Superclass].Children, node)
	}

	// Cycle detection: DFS from every node with a recursion-stack set.
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(nodes))
	var visit func(n *InheritanceNode) error
	visit = func(n *InheritanceNode) error {
		color[n.ClassName] = gray
		if n.Parent != nil {
			switch color[n.Parent.ClassName] {
			case gray:
				return fmt.Errorf("inheritance cycle detected involving class %q", n.ClassName)
			case white:
				if err := visit(n.Parent); err != nil {
					return err
				}
			}
		}
		color[n.ClassName] = black
		return nil
	}
	for name, n := range nodes {
		if color[name] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}

	for name, ci := range ti.Classes {
		ci.Node = nodes[name]
		if ci.Node.Parent == nil {
			ti.Roots = append(ti.Roots, ci.Node)
		}
	}
	return nil
}

func resolveType(ti *TypeInfo, s string, allowVoid bool) (types.Type, bool) {
	return types.ParseTypeName(s, func(name string) bool { _, ok := ti.Classes[name]; return ok }, allowVoid)
}

func checkSignature(ti *TypeInfo, name string, returnType string, params []ast.Param, pos token.Position, isBuiltinCollision func(string) bool) (types.Type, []types.Type, []error) {
	var errs []error

	ret, ok := resolveType(ti, returnType, true)
	if !ok {
		errs = append(errs, fmt.Errorf("unknown return type %q for %q at %s", returnType, name, pos))
		ret = types.Void
	}

	seen := map[string]bool{}
	paramTypes := make([]types.Type, 0, len(params))
	for _, p := range params {
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("duplicate parameter name %q in %q at %s", p.Name, name, pos))
		}
		seen[p.Name] = true

		pt, ok := resolveType(ti, p.Type, false)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown parameter type %q in %q at %s", p.Type, name, pos))
			pt = types.Void
		}
		paramTypes = append(paramTypes, pt)
	}

	if isBuiltinCollision(name) {
		errs = append(errs, fmt.Errorf("%q collides with a built-in function name at %s", name, pos))
	}

	return ret, paramTypes, errs
}

// (c) Gather free functions.
func gatherFreeFunctions(prog *ast.Program, ti *TypeInfo) []error {
	var errs []error
	for _, fn := range prog.Functions {
		if _, exists := ti.Functions[fn.Name]; exists {
			errs = append(errs, fmt.Errorf("function %q redeclared at %s", fn.Name, fn.Pos()))
			continue
		}
		ret, params, sigErrs := checkSignature(ti, fn.Name, fn.ReturnType, fn.Params, fn.Pos(), IsBuiltin)
		errs = append(errs, sigErrs...)
		ti.Functions[fn.Name] = &FunctionInfo{Decl: fn, Ret: ret, Params: params}
	}

	main, ok := ti.Functions["main"]
	if !ok {
		errs = append(errs, fmt.Errorf("missing required function \"main\" at %s", token.Position{}))
	} else if !main.Ret.Equal(types.Int) || len(main.Params) != 0 {
		errs = append(errs, fmt.Errorf("\"main\" must take no parameters and return int, at %s", main.Decl.Pos()))
	}
	return errs
}

// (d) Gather class variables, flattened along inheritance (parent fields
// first, children append).
func gatherClassVariables(prog *ast.Program, ti *TypeInfo) []error {
	var errs []error
	var visit func(ci *ClassInfo) []error
	visited := map[string]bool{}

	visit = func(ci *ClassInfo) []error {
		if visited[ci.Decl.Name] {
			return nil
		}
		visited[ci.Decl.Name] = true

		var localErrs []error
		if ci.Node.Parent != nil {
			parent := ti.Classes[ci.Node.Parent.ClassName]
			localErrs = append(localErrs, visit(parent)...)
			ci.Fields = append(ci.Fields, parent.Fields...)
			for name, idx := range parent.FieldIndex {
				ci.FieldIndex[name] = idx
			}
		}

		seenHere := map[string]bool{}
		for _, v := range ci.Decl.Variables {
			if seenHere[v.Name] {
				localErrs = append(localErrs, fmt.Errorf("duplicate member variable %q in class %q at %s", v.Name, ci.Decl.Name, ci.Decl.Pos()))
				continue
			}
			seenHere[v.Name] = true
			if _, inherited := ci.FieldIndex[v.Name]; inherited {
				localErrs = append(localErrs, fmt.Errorf("member variable %q in class %q redeclares an inherited variable", v.Name, ci.Decl.Name))
				continue
			}
			vt, ok := resolveType(ti, v.Type, false)
			if !ok {
				localErrs = append(localErrs, fmt.Errorf("unknown type %q for variable %q in class %q", v.Type, v.Name, ci.Decl.Name))
				vt = types.Void
			}
			ci.FieldIndex[v.Name] = len(ci.Fields)
			ci.Fields = append(ci.Fields, Field{Type: vt, Name: v.Name})
		}
		return localErrs
	}

	for _, c := range prog.Classes {
		ci, ok := ti.Classes[c.Name]
		if !ok {
			continue
		}
		errs = append(errs, visit(ci)...)
	}
	return errs
}

// (e) Gather class methods, flattened along inheritance with
// slot-preserving overrides (spec.md §4.2(e), GLOSSARY "Flattened
// member/method list").
func gatherClassMethods(prog *ast.Program, ti *TypeInfo) []error {
	var errs []error
	visited := map[string]bool{}
	var visit func(ci *ClassInfo) []error

	visit = func(ci *ClassInfo) []error {
		if visited[ci.Decl.Name] {
			return nil
		}
		visited[ci.Decl.Name] = true

		var localErrs []error
		if ci.Node.Parent != nil {
			parent := ti.Classes[ci.Node.Parent.ClassName]
			localErrs = append(localErrs, visit(parent)...)
			ci.Methods = append(ci.Methods, parent.Methods...)
			for name, idx := range parent.MethodIndex {
				ci.MethodIndex[name] = idx
			}
		}

		seenHere := map[string]bool{}
		for _, m := range ci.Decl.Methods {
			if seenHere[m.Name] {
				localErrs = append(localErrs, fmt.Errorf("duplicate method %q in class %q at %s", m.Name, ci.Decl.Name, m.Pos()))
				continue
			}
			seenHere[m.Name] = true
			if _, isField := ci.FieldIndex[m.Name]; isField {
				localErrs = append(localErrs, fmt.Errorf("method %q in class %q shadows a member variable of the same name", m.Name, ci.Decl.Name))
				continue
			}

			_, _, sigErrs := checkSignature(ti, m.Name, m.ReturnType, m.Params, m.Pos(), func(string) bool { return false })
			localErrs = append(localErrs, sigErrs...)

			entry := Method{Name: m.Name, Decl: m, DefiningClass: ci.Decl.Name}
			if idx, overrides := ci.MethodIndex[m.Name]; overrides {
				ci.Methods[idx] = entry
			} else {
				ci.MethodIndex[m.Name] = len(ci.Methods)
				ci.Methods = append(ci.Methods, entry)
			}
		}
		return localErrs
	}

	for _, c := range prog.Classes {
		ci, ok := ti.Classes[c.Name]
		if !ok {
			continue
		}
		errs = append(errs, visit(ci)...)
	}
	return errs
}
