package calc

// Lexer turns a validated arithmetic expression into tokens.
// Input is expected to be whitespace-free ASCII; anything outside the
// grammar comes back as ILLEGAL.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

// NewLexer creates a new lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL represents EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken returns the next token in the input
func (l *Lexer) NextToken() Token {
	column := l.position + 1

	var tok Token
	switch l.ch {
	case '+':
		tok = newToken(PLUS, l.ch, column)
	case '-':
		tok = newToken(MINUS, l.ch, column)
	case '*':
		tok = newToken(ASTERISK, l.ch, column)
	case '/':
		tok = newToken(SLASH, l.ch, column)
	case '%':
		tok = newToken(PERCENT, l.ch, column)
	case '^':
		tok = newToken(CARET, l.ch, column)
	case '(':
		tok = newToken(LPAREN, l.ch, column)
	case ')':
		tok = newToken(RPAREN, l.ch, column)
	case 0:
		return Token{Type: EOF, Column: column}
	default:
		if isDigit(l.ch) || l.ch == '.' {
			return Token{Type: NUMBER, Literal: l.readNumber(), Column: column}
		}
		tok = newToken(ILLEGAL, l.ch, column)
	}

	l.readChar()
	return tok
}

// readNumber reads digits with at most one decimal point. "5." and ".5" are
// both accepted; a lone "." is left for the parser to reject.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

func newToken(tokenType TokenType, ch byte, column int) Token {
	return Token{Type: tokenType, Literal: string(ch), Column: column}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
