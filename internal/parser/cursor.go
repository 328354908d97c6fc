package parser

import "github.com/lat-compiler/latc/internal/token"

// tokenCursor is a read-only cursor over a fully buffered token slice. Since
// internal/lexer.Tokenize already drains the source into memory (spec.md
// §4.1 needs arbitrary lookahead for the "two names" statement heuristic
// and the cast-vs-parenthesized-expression rule), the cursor never talks to
// the lexer directly — it just indexes the slice. Grounded on the teacher's
// TokenCursor (internal/parser/cursor.go), simplified from an
// backtrack-by-cloning design to a plain index since the whole token stream
// is already resident.
type tokenCursor struct {
	tokens []token.Token
	pos    int
}

func newTokenCursor(tokens []token.Token) *tokenCursor {
	return &tokenCursor{tokens: tokens}
}

// current returns the token at the cursor. Past the end of the stream it
// keeps returning the trailing EOF token.
func (c *tokenCursor) current() token.Token {
	if c.pos >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[c.pos]
}

// peek returns the token n positions ahead of the cursor. peek(0) is
// current().
func (c *tokenCursor) peek(n int) token.Token {
	idx := c.pos + n
	if idx >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	if idx < 0 {
		idx = 0
	}
	return c.tokens[idx]
}

// advance moves the cursor forward one token and returns the token it was
// sitting on before the move.
func (c *tokenCursor) advance() token.Token {
	t := c.current()
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return t
}

// mark/reset support the cast-vs-parenthesized-expression backtrack:
// mark the cursor, attempt a parse, reset if it turns out not to apply.
func (c *tokenCursor) mark() int     { return c.pos }
func (c *tokenCursor) reset(m int)   { c.pos = m }
