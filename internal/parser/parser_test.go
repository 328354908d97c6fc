package parser

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParse_FunctionSnapshot(t *testing.T) {
	src := `
int add(int a, int b) {
	return a + b * 2;
}

int main() {
	int x = add(1, 2);
	return x;
}
`
	prog := mustParse(t, src)
	snaps.MatchSnapshot(t, "function_dump", ast.Dump(prog))
}

func TestParse_ClassSnapshot(t *testing.T) {
	src := `
class Animal {
	string name;
	void speak() {
		printString(self.name);
	}
}

class Dog extends Animal {
	int legs;
	void fetch() {
		self.legs = 4;
	}
}

int main() {
	Dog d = new Dog;
	d.speak();
	return 0;
}
`
	prog := mustParse(t, src)
	snaps.MatchSnapshot(t, "class_dump", ast.Dump(prog))
}

func TestParse_ControlFlowSnapshot(t *testing.T) {
	src := `
int main() {
	int i = 0;
	while (i < 10) {
		if (i % 2 == 0) {
			printInt(i);
		} else {
			i++;
		}
		i = i + 1;
	}
	int[] xs = new int[5];
	for (int x : xs) {
		printInt(x);
	}
	return 0;
}
`
	prog := mustParse(t, src)
	snaps.MatchSnapshot(t, "control_flow_dump", ast.Dump(prog))
}

func TestParse_CastVsParenVariable(t *testing.T) {
	// (int)x is a cast; (x) is just a parenthesized variable reference.
	src := `
int main() {
	int x = 0;
	int y = (int)x;
	int z = (x);
	return y + z;
}
`
	prog := mustParse(t, src)
	dump := ast.Dump(prog)
	if !strings.Contains(dump, "((int)x)") {
		t.Errorf("expected a cast node in dump, got:\n%s", dump)
	}
	if strings.Contains(dump, "((x))") {
		t.Errorf("did not expect (x) to be read as a cast, got:\n%s", dump)
	}
}

func TestParse_TwoNamesIsDefinition(t *testing.T) {
	src := `
int main() {
	int x = 1;
	x = x + 1;
	return x;
}
`
	prog := mustParse(t, src)
	dump := ast.Dump(prog)
	if !strings.Contains(dump, "(def int x=1)") {
		t.Errorf("expected a Definition node, got:\n%s", dump)
	}
	if !strings.Contains(dump, "(assign x (x + 1))") {
		t.Errorf("expected an Assignment node, got:\n%s", dump)
	}
}

func TestParse_IncrDecr(t *testing.T) {
	src := `
int main() {
	int x = 0;
	x++;
	x--;
	return x;
}
`
	prog := mustParse(t, src)
	dump := ast.Dump(prog)
	if !strings.Contains(dump, "(incr x)") || !strings.Contains(dump, "(decr x)") {
		t.Errorf("expected incr/decr nodes, got:\n%s", dump)
	}
}

func TestParse_SyntaxErrorHasEnvironmentTrail(t *testing.T) {
	src := `
int main() {
	if (true) {
		return
	}
}
`
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	_, err = Parse(toks)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "while parsing if statement") {
		t.Errorf("expected environment trail mentioning 'if statement', got:\n%s", msg)
	}
	if !strings.Contains(msg, "while parsing function [main]") {
		t.Errorf("expected environment trail mentioning 'function [main]', got:\n%s", msg)
	}
}

func TestParse_MissingSemicolonFails(t *testing.T) {
	src := `
int main() {
	int x = 1
	return x;
}
`
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a syntax error for the missing semicolon")
	}
}
