// Package parser turns a Lat token stream into an ast.Program (spec.md
// §4.1). It is a classical recursive-descent parser with a precedence
// table for binary operators; every expression node it produces has a nil
// Type, left for internal/checker to fill in.
//
// Grounded on the teacher's internal/parser package (cursor.go's lookahead
// cursor, context.go's block stack, control_flow.go's statement dispatch),
// adapted to Lat's much smaller surface grammar and to spec.md's
// stop-at-first-error policy rather than DWScript's accumulate-and-recover
// one.
package parser

import (
	"fmt"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/token"
)

// Parser holds the cursor and the environment stack used for diagnostics.
type Parser struct {
	c   *tokenCursor
	env *environment
}

// Parse tokenizes nothing itself — it expects an already-lexed stream (see
// internal/lexer.Tokenize) — and returns the parsed Program, or the single
// *SyntaxError the parser stopped at.
func Parse(tokens []token.Token) (prog *ast.Program, err error) {
	p := &Parser{c: newTokenCursor(tokens), env: newEnvironment()}

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()

	return p.parseProgram(), nil
}

// fail aborts parsing with a SyntaxError carrying the current environment
// trail. It never returns — the deferred recover() in Parse catches it.
func (p *Parser) fail(pos token.Position, format string, args ...any) {
	panic(&SyntaxError{
		Pos:   pos,
		Msg:   fmt.Sprintf(format, args...),
		Trail: p.env.trail(),
	})
}

// expect consumes the current token if it has type tt, otherwise fails.
func (p *Parser) expect(tt token.Type) token.Token {
	cur := p.c.current()
	if cur.Type != tt {
		p.fail(cur.Pos, "expected %s, got %s %q", tt, cur.Type, cur.Literal)
	}
	return p.c.advance()
}

// at reports whether the current token has type tt.
func (p *Parser) at(tt token.Type) bool {
	return p.c.current().Type == tt
}

// accept consumes the current token and reports true if it has type tt,
// otherwise leaves the cursor untouched and returns false.
func (p *Parser) accept(tt token.Type) bool {
	if p.at(tt) {
		p.c.advance()
		return true
	}
	return false
}

// parseProgram parses the whole compilation unit: an interleaving of class
// and function top-level declarations until EOF.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		if p.at(token.KW_CLASS) {
			prog.Classes = append(prog.Classes, p.parseClass())
		} else {
			prog.Functions = append(prog.Functions, p.parseFunction())
		}
	}
	return prog
}
