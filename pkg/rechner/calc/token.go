package calc

// TokenType represents different types of tokens
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	NUMBER // 12, 3.5, .5

	// Operators
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	CARET    // ^

	// Delimiters
	LPAREN // (
	RPAREN // )
)

// String returns a readable name for a token type
func (tt TokenType) String() string {
	switch tt {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case CARET:
		return "CARET"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Column  int // 1-based
}
