package tyexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextToken(t *testing.T) {
	input := `&'a mut <T as Iterator<Item = ?i3>>::Item; fn(_) -> ! *const [u8; 1_000] ?c0 + std::Vec`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{AMP, "&"},
		{LIFETIME, "'a"},
		{IDENT, "mut"},
		{LT, "<"},
		{IDENT, "T"},
		{IDENT, "as"},
		{IDENT, "Iterator"},
		{LT, "<"},
		{IDENT, "Item"},
		{ASSIGN, "="},
		{INFER, "?i3"},
		{GT, ">"},
		{GT, ">"},
		{COLONCOLON, "::"},
		{IDENT, "Item"},
		{SEMICOLON, ";"},
		{IDENT, "fn"},
		{LPAREN, "("},
		{UNDERSCORE, "_"},
		{RPAREN, ")"},
		{ARROW, "->"},
		{BANG, "!"},
		{STAR, "*"},
		{IDENT, "const"},
		{LBRACKET, "["},
		{IDENT, "u8"},
		{SEMICOLON, ";"},
		{INT, "1_000"},
		{RBRACKET, "]"},
		{INFER, "?c0"},
		{PLUS, "+"},
		{IDENT, "std"},
		{COLONCOLON, "::"},
		{IDENT, "Vec"},
		{EOF, ""},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		assert.Equal(t, tt.expectedType, tok.Type, "tests[%d] type", i)
		assert.Equal(t, tt.expectedLiteral, tok.Literal, "tests[%d] literal", i)
	}
}

func TestNextTokenIdentifiers(t *testing.T) {
	l := NewLexer("_T 'static '_ Größe")
	assert.Equal(t, Token{Type: IDENT, Literal: "_T", Column: 1}, l.NextToken())
	assert.Equal(t, Token{Type: LIFETIME, Literal: "'static", Column: 4}, l.NextToken())
	assert.Equal(t, Token{Type: LIFETIME, Literal: "'_", Column: 12}, l.NextToken())
	assert.Equal(t, Token{Type: IDENT, Literal: "Größe", Column: 15}, l.NextToken())
}

func TestNextTokenIllegal(t *testing.T) {
	for _, input := range []string{"?", "?x", "'", "-", ":", "#"} {
		tok := NewLexer(input).NextToken()
		assert.Equal(t, ILLEGAL, tok.Type, "input %q", input)
	}
}
