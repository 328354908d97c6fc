package ast

import (
	"strings"
	"testing"

	"github.com/lat-compiler/latc/internal/token"
)

func pos(line int) token.Position { return token.Position{Line: line, Column: 1} }

func TestDumpRendersProgramShape(t *testing.T) {
	ret := NewReturn(pos(1), pos(1), NewBinaryOp(pos(1), pos(1), Add,
		NewIntLit(pos(1), pos(1), 1), NewIntLit(pos(1), pos(1), 2)))
	body := NewBlock(pos(1), pos(1), []Stmt{ret})
	fn := &Function{Name: "main", ReturnType: "int", Body: body}
	prog := &Program{Functions: []*Function{fn}}

	out := Dump(prog)
	for _, want := range []string{"(func main int(", "(return (1 + 2))"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q, got:\n%s", want, out)
		}
	}
}

func TestDumpRendersClassHierarchy(t *testing.T) {
	cls := &Class{
		Name:       "B",
		Superclass: "A",
		Variables:  []ClassVar{{Type: "int", Name: "x"}},
		Methods: []*Function{
			{Name: "f", ReturnType: "int", Body: NewBlock(pos(1), pos(1), nil)},
		},
	}
	prog := &Program{Classes: []*Class{cls}}

	out := Dump(prog)
	if !strings.Contains(out, "(class B extends A") {
		t.Errorf("expected class header in dump, got:\n%s", out)
	}
	if !strings.Contains(out, "(var int x)") {
		t.Errorf("expected variable entry in dump, got:\n%s", out)
	}
}

func TestExprTypeRoundTrips(t *testing.T) {
	v := NewVariable(pos(1), pos(1), "x")
	if v.Type() != nil {
		t.Fatalf("fresh node should have nil type, got %v", v.Type())
	}
}
