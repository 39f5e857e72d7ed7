package tyexpr

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT      TokenType = "IDENT"
	INT        TokenType = "INT"
	LIFETIME   TokenType = "LIFETIME" // 'a, 'static, '_
	INFER      TokenType = "INFER"    // ?0, ?i0, ?f0, ?c0
	UNDERSCORE TokenType = "_"

	LT         TokenType = "<"
	GT         TokenType = ">"
	LPAREN     TokenType = "("
	RPAREN     TokenType = ")"
	LBRACKET   TokenType = "["
	RBRACKET   TokenType = "]"
	COMMA      TokenType = ","
	SEMICOLON  TokenType = ";"
	AMP        TokenType = "&"
	STAR       TokenType = "*"
	PLUS       TokenType = "+"
	BANG       TokenType = "!"
	ASSIGN     TokenType = "="
	ARROW      TokenType = "->"
	COLONCOLON TokenType = "::"
)

// Keywords are lexed as IDENT; the parser matches them by literal.
const (
	kwMut   = "mut"
	kwConst = "const"
	kwFn    = "fn"
	kwDyn   = "dyn"
	kwAs    = "as"
)

type Token struct {
	Type    TokenType
	Literal string
	Column  int
}
