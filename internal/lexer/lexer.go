// Package lexer turns Lat source text into a token stream.
//
// The lexer sits outside the core subsystems this repository specifies
// (parser, type checker, code generator): it is the boundary collaborator
// spec.md describes only at the edge of the pipeline. It is still a real,
// runnable implementation — something has to produce tokens — but it is
// deliberately simpler and less exhaustively documented than the three
// core packages.
package lexer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/lat-compiler/latc/internal/token"
)

// LexError is a single unclassifiable lexical fault: an unrecognized
// character or an unterminated string/comment. Lexing aborts on the first
// one, per spec.md §7.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return e.Message + " at " + e.Pos.String()
}

// Lexer scans Lat source text into tokens on demand.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	chWidth      int
	line         int
	column       int
}

// New creates a Lexer over src. Source text is NFC-normalized up front so
// that string literal bytes (used for the runtime's {length, bytes} layout,
// spec.md §4.4) are stable across equivalent Unicode encodings of the same
// text, regardless of how the file on disk happened to be composed.
func New(src string) *Lexer {
	l := &Lexer{input: norm.NFC.String(src), line: 1, column: 0}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.chWidth = 0
		l.position = l.readPosition
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += w
	l.ch = r
	l.chWidth = w
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peek() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Offset: l.position, Line: l.line, Column: l.column}
}

func isLetter(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == '/' && l.peek() == '*':
			start := l.pos()
			l.advance()
			l.advance()
			closed := false
			for l.ch != 0 {
				if l.ch == '*' && l.peek() == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return &LexError{Pos: start, Message: "unterminated block comment"}
			}
		default:
			return nil
		}
	}
}

var escapes = map[rune]rune{
	't': '\t', 'b': '\b', 'n': '\n', 'r': '\r', 'f': '\f',
	'\'': '\'', '"': '"', '\\': '\\',
}

func (l *Lexer) readString() (string, error) {
	start := l.pos()
	var sb strings.Builder
	l.advance() // opening quote
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return "", &LexError{Pos: start, Message: "unterminated string literal"}
		}
		if l.ch == '\\' {
			escPos := l.pos()
			l.advance()
			replacement, ok := escapes[l.ch]
			if !ok {
				return "", &LexError{Pos: escPos, Message: "invalid escape sequence"}
			}
			sb.WriteRune(replacement)
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	l.advance() // closing quote
	return sb.String(), nil
}

// Next returns the next token in the stream, or a LexError if the input
// contains an unrecognized character or an unterminated literal.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	pos := l.pos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Pos: pos}, nil

	case isLetter(l.ch):
		start := l.position
		for isLetter(l.ch) || isDigit(l.ch) {
			l.advance()
		}
		lit := l.input[start:l.position]
		return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}, nil

	case isDigit(l.ch):
		start := l.position
		for isDigit(l.ch) {
			l.advance()
		}
		lit := l.input[start:l.position]
		return token.Token{Type: token.INT_LIT, Literal: lit, Pos: pos}, nil

	case l.ch == '"':
		s, err := l.readString()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.STRING_LIT, Literal: s, Pos: pos}, nil
	}

	two := func(next rune, twoTyp, oneTyp token.Type) token.Token {
		if l.peek() == next {
			l.advance()
			l.advance()
			return token.Token{Type: twoTyp, Literal: token.Type(twoTyp).String(), Pos: pos}
		}
		l.advance()
		return token.Token{Type: oneTyp, Literal: token.Type(oneTyp).String(), Pos: pos}
	}

	switch l.ch {
	case '(':
		l.advance()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}, nil
	case ')':
		l.advance()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}, nil
	case '{':
		l.advance()
		return token.Token{Type: token.LBRACE, Literal: "{", Pos: pos}, nil
	case '}':
		l.advance()
		return token.Token{Type: token.RBRACE, Literal: "}", Pos: pos}, nil
	case '[':
		l.advance()
		return token.Token{Type: token.LBRACKET, Literal: "[", Pos: pos}, nil
	case ']':
		l.advance()
		return token.Token{Type: token.RBRACKET, Literal: "]", Pos: pos}, nil
	case ';':
		l.advance()
		return token.Token{Type: token.SEMICOLON, Literal: ";", Pos: pos}, nil
	case ',':
		l.advance()
		return token.Token{Type: token.COMMA, Literal: ",", Pos: pos}, nil
	case '.':
		l.advance()
		return token.Token{Type: token.DOT, Literal: ".", Pos: pos}, nil
	case ':':
		l.advance()
		return token.Token{Type: token.COLON, Literal: ":", Pos: pos}, nil
	case '+':
		if l.peek() == '+' {
			return two('+', token.INCR, token.PLUS), nil
		}
		l.advance()
		return token.Token{Type: token.PLUS, Literal: "+", Pos: pos}, nil
	case '-':
		if l.peek() == '-' {
			return two('-', token.DECR, token.MINUS), nil
		}
		l.advance()
		return token.Token{Type: token.MINUS, Literal: "-", Pos: pos}, nil
	case '*':
		l.advance()
		return token.Token{Type: token.STAR, Literal: "*", Pos: pos}, nil
	case '/':
		l.advance()
		return token.Token{Type: token.SLASH, Literal: "/", Pos: pos}, nil
	case '%':
		l.advance()
		return token.Token{Type: token.PERCENT, Literal: "%", Pos: pos}, nil
	case '!':
		return two('=', token.NE, token.BANG), nil
	case '=':
		return two('=', token.EQ, token.ASSIGN), nil
	case '<':
		return two('=', token.LE, token.LT), nil
	case '>':
		return two('=', token.GE, token.GT), nil
	case '&':
		if l.peek() == '&' {
			return two('&', token.AND, token.ILLEGAL), nil
		}
	case '|':
		if l.peek() == '|' {
			return two('|', token.OR, token.ILLEGAL), nil
		}
	}

	return token.Token{}, &LexError{Pos: pos, Message: "unrecognized token"}
}

// Tokenize drains the Lexer into a slice. Useful for the parser (which
// wants random-access lookahead) and for tests.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}
