package typeinfo

import (
	"strings"
	"testing"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/token"
	"github.com/lat-compiler/latc/internal/types"
)

func pos(line int) token.Position { return token.Position{Line: line, Column: 1} }

func emptyBody() *ast.Block {
	return &ast.Block{Stmts: []ast.Stmt{&ast.Return{Value: &ast.IntLit{Value: 0}}}}
}

func mainFunc() *ast.Function {
	return &ast.Function{Name: "main", ReturnType: "int", Body: emptyBody()}
}

func TestBuild_DuplicateClassName(t *testing.T) {
	prog := &ast.Program{
		Classes: []*ast.Class{
			{NameTok: pos(1), Name: "Shape"},
			{NameTok: pos(2), Name: "Shape"},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `"Shape" redeclared`) {
		t.Fatalf("expected a redeclaration error, got %v", errs)
	}
}

func TestBuild_ClassCollidesWithPredefinedType(t *testing.T) {
	prog := &ast.Program{
		Classes:   []*ast.Class{{NameTok: pos(1), Name: "int"}},
		Functions: []*ast.Function{mainFunc()},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `collides with a predefined type`) {
		t.Fatalf("expected a predefined-type collision error, got %v", errs)
	}
}

func TestBuild_UnknownSuperclassAborts(t *testing.T) {
	prog := &ast.Program{
		Classes: []*ast.Class{
			{NameTok: pos(1), Name: "Dog", Superclass: "Animal"},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	ti, errs := Build(prog)
	if ti != nil {
		t.Fatalf("expected nil TypeInfo on fatal superclass error, got %+v", ti)
	}
	if !anyContains(errs, `extends unknown class "Animal"`) {
		t.Fatalf("expected unknown-superclass error, got %v", errs)
	}
}

func TestBuild_InheritanceCycleAborts(t *testing.T) {
	prog := &ast.Program{
		Classes: []*ast.Class{
			{NameTok: pos(1), Name: "A", Superclass: "B"},
			{NameTok: pos(2), Name: "B", Superclass: "A"},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	ti, errs := Build(prog)
	if ti != nil {
		t.Fatalf("expected nil TypeInfo on inheritance cycle, got %+v", ti)
	}
	if !anyContains(errs, "inheritance cycle detected") {
		t.Fatalf("expected cycle error, got %v", errs)
	}
}

func TestBuild_MissingMain(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.Function{
			{Name: "helper", ReturnType: "void", Body: &ast.Block{}},
		},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `missing required function "main"`) {
		t.Fatalf("expected missing-main error, got %v", errs)
	}
}

func TestBuild_MainWrongSignature(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.Function{
			{NameTok: pos(1), Name: "main", ReturnType: "void", Body: &ast.Block{}},
		},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `"main" must take no parameters and return int`) {
		t.Fatalf("expected main-signature error, got %v", errs)
	}
}

func TestBuild_FieldFlattening(t *testing.T) {
	prog := &ast.Program{
		Classes: []*ast.Class{
			{
				NameTok:   pos(1),
				Name:      "Animal",
				Variables: []ast.ClassVar{{Type: "string", Name: "name"}},
			},
			{
				NameTok:    pos(2),
				Name:       "Dog",
				Superclass: "Animal",
				Variables:  []ast.ClassVar{{Type: "int", Name: "age"}},
			},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	ti, errs := Build(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	dog := ti.Classes["Dog"]
	if len(dog.Fields) != 2 {
		t.Fatalf("expected 2 flattened fields on Dog, got %d: %+v", len(dog.Fields), dog.Fields)
	}
	if dog.Fields[0].Name != "name" || dog.Fields[1].Name != "age" {
		t.Fatalf("expected parent-first field order [name, age], got %+v", dog.Fields)
	}
	if dog.FieldIndex["name"] != 0 || dog.FieldIndex["age"] != 1 {
		t.Fatalf("unexpected field index map: %+v", dog.FieldIndex)
	}
}

func TestBuild_FieldRedeclarationRejected(t *testing.T) {
	prog := &ast.Program{
		Classes: []*ast.Class{
			{NameTok: pos(1), Name: "Animal", Variables: []ast.ClassVar{{Type: "string", Name: "name"}}},
			{NameTok: pos(2), Name: "Dog", Superclass: "Animal", Variables: []ast.ClassVar{{Type: "int", Name: "name"}}},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `redeclares an inherited variable`) {
		t.Fatalf("expected inherited-redeclaration error, got %v", errs)
	}
}

func TestBuild_MethodOverridePreservesSlot(t *testing.T) {
	animalSpeak := &ast.Function{NameTok: pos(2), Name: "speak", ReturnType: "void", Body: &ast.Block{}}
	dogSpeak := &ast.Function{NameTok: pos(5), Name: "speak", ReturnType: "void", Body: &ast.Block{}}

	prog := &ast.Program{
		Classes: []*ast.Class{
			{NameTok: pos(1), Name: "Animal", Methods: []*ast.Function{animalSpeak}},
			{NameTok: pos(4), Name: "Dog", Superclass: "Animal", Methods: []*ast.Function{dogSpeak}},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	ti, errs := Build(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	dog := ti.Classes["Dog"]
	if len(dog.Methods) != 1 {
		t.Fatalf("expected a single flattened method slot on Dog, got %d: %+v", len(dog.Methods), dog.Methods)
	}
	if dog.Methods[0].DefiningClass != "Dog" || dog.Methods[0].Decl != dogSpeak {
		t.Fatalf("expected Dog's override to occupy the inherited slot, got %+v", dog.Methods[0])
	}
	if dog.MethodIndex["speak"] != 0 {
		t.Fatalf("expected override to preserve slot index 0, got %d", dog.MethodIndex["speak"])
	}
}

func TestBuild_MethodAddedInChildAppendsNewSlot(t *testing.T) {
	animalSpeak := &ast.Function{NameTok: pos(2), Name: "speak", ReturnType: "void", Body: &ast.Block{}}
	dogFetch := &ast.Function{NameTok: pos(5), Name: "fetch", ReturnType: "void", Body: &ast.Block{}}

	prog := &ast.Program{
		Classes: []*ast.Class{
			{NameTok: pos(1), Name: "Animal", Methods: []*ast.Function{animalSpeak}},
			{NameTok: pos(4), Name: "Dog", Superclass: "Animal", Methods: []*ast.Function{dogFetch}},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	ti, errs := Build(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	dog := ti.Classes["Dog"]
	if len(dog.Methods) != 2 {
		t.Fatalf("expected 2 methods (inherited speak + new fetch), got %d", len(dog.Methods))
	}
	if dog.Methods[0].Name != "speak" || dog.Methods[1].Name != "fetch" {
		t.Fatalf("expected [speak, fetch] order, got %+v", dog.Methods)
	}
}

func TestBuild_MethodShadowingFieldRejected(t *testing.T) {
	prog := &ast.Program{
		Classes: []*ast.Class{
			{
				NameTok:   pos(1),
				Name:      "Box",
				Variables: []ast.ClassVar{{Type: "int", Name: "size"}},
				Methods:   []*ast.Function{{NameTok: pos(2), Name: "size", ReturnType: "int", Body: &ast.Block{}}},
			},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `shadows a member variable`) {
		t.Fatalf("expected shadow error, got %v", errs)
	}
}

func TestBuild_FreeFunctionSignature(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.Function{
			{NameTok: pos(1), Name: "add", ReturnType: "int", Params: []ast.Param{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}}, Body: &ast.Block{}},
			mainFunc(),
		},
	}

	ti, errs := Build(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	add, ok := ti.Functions["add"]
	if !ok {
		t.Fatalf("expected 'add' in Functions")
	}
	if !add.Ret.Equal(types.Int) {
		t.Fatalf("expected int return type, got %v", add.Ret)
	}
	if len(add.Params) != 2 || !add.Params[0].Equal(types.Int) || !add.Params[1].Equal(types.Int) {
		t.Fatalf("expected [int, int] params, got %+v", add.Params)
	}
}

func TestBuild_FreeFunctionCollidesWithBuiltin(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.Function{
			{NameTok: pos(1), Name: "printInt", ReturnType: "void", Params: []ast.Param{{Type: "int", Name: "x"}}, Body: &ast.Block{}},
			mainFunc(),
		},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `collides with a built-in function name`) {
		t.Fatalf("expected builtin-collision error, got %v", errs)
	}
}

func TestBuild_DuplicateParamName(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.Function{
			{NameTok: pos(1), Name: "f", ReturnType: "void", Params: []ast.Param{{Type: "int", Name: "x"}, {Type: "int", Name: "x"}}, Body: &ast.Block{}},
			mainFunc(),
		},
	}

	_, errs := Build(prog)
	if !anyContains(errs, `duplicate parameter name "x"`) {
		t.Fatalf("expected duplicate-parameter error, got %v", errs)
	}
}

func TestBuild_RootsContainsOnlyBaseClasses(t *testing.T) {
	prog := &ast.Program{
		Classes: []*ast.Class{
			{NameTok: pos(1), Name: "Animal"},
			{NameTok: pos(2), Name: "Dog", Superclass: "Animal"},
			{NameTok: pos(3), Name: "Plant"},
		},
		Functions: []*ast.Function{mainFunc()},
	}

	ti, errs := Build(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(ti.Roots) != 2 {
		t.Fatalf("expected 2 root classes (Animal, Plant), got %d: %+v", len(ti.Roots), ti.Roots)
	}
}

func anyContains(errs []error, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}
