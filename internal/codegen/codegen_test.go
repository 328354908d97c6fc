package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/lat-compiler/latc/internal/checker"
	"github.com/lat-compiler/latc/internal/lexer"
	"github.com/lat-compiler/latc/internal/parser"
	"github.com/lat-compiler/latc/internal/typeinfo"
)

// mustEmit runs the full pipeline (lex, parse, build type info, check,
// emit) over src and fails the test on any error at any stage, since
// every test in this file is written against input it expects to be
// valid Lat.
func mustEmit(t *testing.T, src string) string {
	t.Helper()

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	ti, errs := typeinfo.Build(prog)
	if len(errs) > 0 {
		t.Fatalf("unexpected typeinfo errors: %v", errs)
	}
	if errs := checker.Check(prog, ti); len(errs) > 0 {
		t.Fatalf("unexpected check errors: %v", errs)
	}

	var sb strings.Builder
	if err := Emit(ti, &sb); err != nil {
		t.Fatalf("unexpected emit error: %v", err)
	}
	return sb.String()
}

func TestEmit_ConstantFoldedAdditionSnapshot(t *testing.T) {
	out := mustEmit(t, `
int main() {
	return 1 + 2;
}
`)
	snaps.MatchSnapshot(t, "constant_folded_addition", out)
}

func TestEmit_ConstantFoldedAdditionSkipsAdd(t *testing.T) {
	out := mustEmit(t, `
int main() {
	return 1 + 2;
}
`)
	if !strings.Contains(out, "mov rax, 3") {
		t.Errorf("expected the folded literal 3, got:\n%s", out)
	}
	if strings.Contains(out, "add rax, rbx") {
		t.Errorf("expected no runtime add instruction after constant folding, got:\n%s", out)
	}
}

func TestEmit_DeadBranchOmitsCall(t *testing.T) {
	out := mustEmit(t, `
int main() {
	if (false) {
		printInt(99);
	}
	return 0;
}
`)
	if strings.Contains(out, "call printInt") {
		t.Errorf("expected the false branch to be pruned before codegen, got:\n%s", out)
	}
}

func TestEmit_StringConcatenationCallsRuntimeHelper(t *testing.T) {
	out := mustEmit(t, `
int main() {
	string s = "x" + "y";
	printString(s);
	return 0;
}
`)
	if !strings.Contains(out, "call _concat") {
		t.Errorf("expected a call to _concat, got:\n%s", out)
	}
	if strings.Contains(out, "add rax, rbx") {
		t.Errorf("string addition must never fall through to integer add, got:\n%s", out)
	}
}

func TestEmit_VirtualDispatchVTablesNameDefiningClass(t *testing.T) {
	out := mustEmit(t, `
class A {
	int f() {
		return 1;
	}
	int g() {
		return 2;
	}
}
class B extends A {
	int f() {
		return 3;
	}
}
int main() {
	A a = new B;
	return a.f();
}
`)
	if !strings.Contains(out, "_class_@A:") || !strings.Contains(out, "_class_@B:") {
		t.Fatalf("expected both vtables to be emitted, got:\n%s", out)
	}
	if !strings.Contains(out, "dq _class_B$f") {
		t.Errorf("expected B's vtable slot for f to reference its own override, got:\n%s", out)
	}
	if !strings.Contains(out, "dq _class_A$g") {
		t.Errorf("expected B's vtable slot for g to still reference A's unoverridden method, got:\n%s", out)
	}
	if !strings.Contains(out, "_class_B$f:") {
		t.Errorf("expected B's overriding method body to be emitted, got:\n%s", out)
	}
	if !strings.Contains(out, "_class_A$f:") {
		t.Errorf("expected A's own declaration of f to still be emitted under A, got:\n%s", out)
	}
	if strings.Contains(out, "_class_B$g:") {
		t.Errorf("g is only inherited by B, not redeclared, so B must not get its own label for it, got:\n%s", out)
	}
}

func TestEmit_ClassConstructorAllocatesAndDefaultInitializes(t *testing.T) {
	out := mustEmit(t, `
class Point {
	int x;
	int y;
}
int main() {
	Point p = new Point;
	return p.x;
}
`)
	if !strings.Contains(out, "_class_$Point:") {
		t.Fatalf("expected a constructor label, got:\n%s", out)
	}
	if !strings.Contains(out, "push qword 24") {
		t.Errorf("expected a 3-word allocation (vtable + 2 fields), got:\n%s", out)
	}
	if !strings.Contains(out, "mov qword [rax], _class_@Point") {
		t.Errorf("expected the vtable pointer to be installed into slot 0, got:\n%s", out)
	}
}

func TestEmit_StringLiteralTableOmitsBytesForEmptyString(t *testing.T) {
	out := mustEmit(t, `
int main() {
	string s = "";
	printString(s);
	return 0;
}
`)
	idx := strings.Index(out, "dq 0\n")
	if idx == -1 {
		t.Fatalf("expected an empty string literal table entry, got:\n%s", out)
	}
	// The next non-empty line after the length word must not be a `db`
	// directive: an empty string needs no byte table.
	rest := out[idx+len("dq 0\n"):]
	if strings.HasPrefix(strings.TrimLeft(rest, "\n"), "db ") {
		t.Errorf("empty string literal must not emit a db byte table, got:\n%s", out)
	}
}

func TestEmit_NonEmptyStringLiteralEmitsByteTable(t *testing.T) {
	out := mustEmit(t, `
int main() {
	printString("hi");
	return 0;
}
`)
	if !strings.Contains(out, "dq 2") {
		t.Fatalf("expected a length-2 string literal entry, got:\n%s", out)
	}
	if !strings.Contains(out, "db 104,105") {
		t.Errorf("expected the ASCII byte values of 'hi', got:\n%s", out)
	}
}

func TestEmit_ArraySubscriptBoundsCheck(t *testing.T) {
	out := mustEmit(t, `
int main() {
	int[] xs = new int[3];
	return xs[0];
}
`)
	if !strings.Contains(out, "cmp [rax], rbx") || !strings.Contains(out, "jle error") {
		t.Errorf("expected a bounds check before the subscript load, got:\n%s", out)
	}
}

func TestEmit_ForLoopOverArray(t *testing.T) {
	out := mustEmit(t, `
int main() {
	int[] xs = new int[3];
	int total = 0;
	for (int x : xs) {
		total = total + x;
	}
	return total;
}
`)
	if !strings.Contains(out, "_for_condition_") || !strings.Contains(out, "_for_body_") {
		t.Errorf("expected for-loop condition/body labels, got:\n%s", out)
	}
}

func TestEmit_HeaderDeclaresRuntimeExterns(t *testing.T) {
	out := mustEmit(t, `
int main() {
	return 0;
}
`)
	for _, want := range []string{
		"extern _alloc",
		"extern _new_array",
		"extern _empty_arr",
		"extern _empty_str",
		"extern _concat",
		"extern printInt",
		"extern readInt",
		"global _start",
		"_start:",
		"call main",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected header to contain %q, got:\n%s", want, out)
		}
	}
}
