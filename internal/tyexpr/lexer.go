package tyexpr

import (
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// Lexer splits a single-line type expression into tokens.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	column       int  // current column number
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	col := l.column
	single := func(t TokenType) Token {
		tok := Token{Type: t, Literal: string(l.ch), Column: col}
		l.readChar()
		return tok
	}

	switch l.ch {
	case 0:
		return Token{Type: EOF, Column: col}
	case '<':
		return single(LT)
	case '>':
		return single(GT)
	case '(':
		return single(LPAREN)
	case ')':
		return single(RPAREN)
	case '[':
		return single(LBRACKET)
	case ']':
		return single(RBRACKET)
	case ',':
		return single(COMMA)
	case ';':
		return single(SEMICOLON)
	case '&':
		return single(AMP)
	case '*':
		return single(STAR)
	case '+':
		return single(PLUS)
	case '!':
		return single(BANG)
	case '=':
		return single(ASSIGN)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return Token{Type: ARROW, Literal: "->", Column: col}
		}
		return single(ILLEGAL)
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			return Token{Type: COLONCOLON, Literal: "::", Column: col}
		}
		return single(ILLEGAL)
	case '\'':
		return l.readLifetime(col)
	case '?':
		return l.readInfer(col)
	}

	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		if lit == "_" {
			return Token{Type: UNDERSCORE, Literal: lit, Column: col}
		}
		return Token{Type: IDENT, Literal: lit, Column: col}
	}
	if isDigit(l.ch) {
		return Token{Type: INT, Literal: l.readNumber(), Column: col}
	}
	return single(ILLEGAL)
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || xid.Start(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	l.readChar()
	for xid.Continue(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readLifetime reads 'name, 'static or '_.
func (l *Lexer) readLifetime(col int) Token {
	start := l.position
	l.readChar() // consume '
	if !isIdentStart(l.ch) {
		return Token{Type: ILLEGAL, Literal: l.input[start:l.position], Column: col}
	}
	l.readIdentifier()
	return Token{Type: LIFETIME, Literal: l.input[start:l.position], Column: col}
}

// readInfer reads ?N, ?iN, ?fN or ?cN.
func (l *Lexer) readInfer(col int) Token {
	start := l.position
	l.readChar() // consume ?
	if l.ch == 'i' || l.ch == 'f' || l.ch == 'c' {
		l.readChar()
	}
	if !isDigit(l.ch) {
		return Token{Type: ILLEGAL, Literal: l.input[start:l.position], Column: col}
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	return Token{Type: INFER, Literal: l.input[start:l.position], Column: col}
}
