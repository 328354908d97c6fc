package lexer

import (
	"testing"

	"github.com/lat-compiler/latc/internal/token"
)

func typesOf(t *testing.T, src string) []token.Type {
	t.Helper()
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	t.Run("keywords and identifiers", func(t *testing.T) {
		got := typesOf(t, "class Foo extends Bar { int x; }")
		want := []token.Type{
			token.KW_CLASS, token.IDENT, token.KW_EXTENDS, token.IDENT,
			token.LBRACE, token.KW_INT, token.IDENT, token.SEMICOLON,
			token.RBRACE, token.EOF,
		}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("operators disambiguated by peek", func(t *testing.T) {
		got := typesOf(t, "a-1 ++ -- <= >= == != && ||")
		want := []token.Type{
			token.IDENT, token.MINUS, token.INT_LIT,
			token.INCR, token.DECR, token.LE, token.GE, token.EQ, token.NE,
			token.AND, token.OR, token.EOF,
		}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("comments are skipped", func(t *testing.T) {
		got := typesOf(t, "1 # line\n2 // line\n3 /* block */ 4")
		want := []token.Type{token.INT_LIT, token.INT_LIT, token.INT_LIT, token.INT_LIT, token.EOF}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("string escapes", func(t *testing.T) {
		toks, err := Tokenize(`"a\tb\nc\"d"`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toks[0].Literal != "a\tb\nc\"d" {
			t.Fatalf("got %q", toks[0].Literal)
		}
	})
}

func TestTokenizeErrors(t *testing.T) {
	t.Run("bad escape", func(t *testing.T) {
		if _, err := Tokenize(`"\q"`); err == nil {
			t.Fatal("expected error for invalid escape")
		}
	})

	t.Run("unterminated string", func(t *testing.T) {
		if _, err := Tokenize(`"abc`); err == nil {
			t.Fatal("expected error for unterminated string")
		}
	})

	t.Run("unrecognized character", func(t *testing.T) {
		if _, err := Tokenize("@"); err == nil {
			t.Fatal("expected error for unrecognized character")
		}
	})
}
