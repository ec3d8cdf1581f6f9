package calc

import (
	"fmt"
	"strconv"
)

// Limits on parser work. Inputs beyond them are rejected before evaluation.
// The lexer emits at most one token per byte, so any expression of up to
// MaxTokens bytes stays within the token bound.
const (
	MaxDepth  = 64
	MaxTokens = 1024
)

// Precedence levels for operators
const (
	_ int = iota
	LOWEST
	SUM     // + -
	PRODUCT // * / %
	PREFIX  // -X or +X
	POWER   // ^ (right-associative)
)

// precedences maps tokens to their precedence
var precedences = map[TokenType]int{
	PLUS:     SUM,
	MINUS:    SUM,
	ASTERISK: PRODUCT,
	SLASH:    PRODUCT,
	PERCENT:  PRODUCT,
	CARET:    POWER,
}

type (
	prefixParseFn func() Node
	infixParseFn  func(Node) Node
)

// Parser is a Pratt parser over the arithmetic token stream.
type Parser struct {
	l *Lexer

	err    *Error
	depth  int
	tokens int

	curToken  Token
	peekToken Token

	prefixParseFns map[TokenType]prefixParseFn
	infixParseFns  map[TokenType]infixParseFn
}

// NewParser creates a new parser instance
func NewParser(l *Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[TokenType]prefixParseFn{
		NUMBER: p.parseNumberLiteral,
		MINUS:  p.parsePrefixExpression,
		PLUS:   p.parsePrefixExpression,
		LPAREN: p.parseGroupedExpression,
	}
	p.infixParseFns = map[TokenType]infixParseFn{
		PLUS:     p.parseInfixExpression,
		MINUS:    p.parseInfixExpression,
		ASTERISK: p.parseInfixExpression,
		SLASH:    p.parseInfixExpression,
		PERCENT:  p.parseInfixExpression,
		CARET:    p.parsePowerExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Err returns the first error encountered, or nil.
func (p *Parser) Err() *Error {
	return p.err
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.err != nil {
		p.peekToken = Token{Type: EOF}
		return
	}
	p.peekToken = p.l.NextToken()
	if p.peekToken.Type != EOF {
		p.tokens++
		if p.tokens > MaxTokens {
			p.fail(newLimitError("CALC-0004", fmt.Sprintf("more than %d tokens", MaxTokens), p.peekToken.Column))
			p.peekToken = Token{Type: EOF}
		}
	}
}

func (p *Parser) fail(err *Error) {
	if p.err == nil {
		p.err = err
	}
}

// Parse parses the whole input as a single expression.
func (p *Parser) Parse() Node {
	if p.curToken.Type == EOF {
		p.fail(newSyntaxError("empty expression", 0))
		return nil
	}

	node := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if p.peekToken.Type != EOF {
		p.fail(newSyntaxError(fmt.Sprintf("unexpected %s", describe(p.peekToken)), p.peekToken.Column))
		return nil
	}
	return node
}

// parseExpression parses expressions using Pratt parsing
func (p *Parser) parseExpression(precedence int) Node {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		p.fail(newLimitError("CALC-0003", fmt.Sprintf("nesting deeper than %d", MaxDepth), p.curToken.Column))
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.fail(newSyntaxError(fmt.Sprintf("unexpected %s", describe(p.curToken)), p.curToken.Column))
		return nil
	}

	leftExp := prefix()

	for p.err == nil && p.peekToken.Type != EOF && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseNumberLiteral() Node {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.fail(newSyntaxError(fmt.Sprintf("invalid number %q", p.curToken.Literal), p.curToken.Column))
		return nil
	}
	return &NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parsePrefixExpression() Node {
	expression := &PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)

	return expression
}

func (p *Parser) parseInfixExpression(left Node) Node {
	expression := &InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)

	return expression
}

// parsePowerExpression binds to the right: 2^3^2 is 2^(3^2). The right side
// may start with a sign, so 2^-1 parses as 2^(-1).
func (p *Parser) parsePowerExpression(left Node) Node {
	expression := &InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}

	p.nextToken()
	expression.Right = p.parseExpression(POWER - 1)

	return expression
}

func (p *Parser) parseGroupedExpression() Node {
	open := p.curToken
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if p.peekToken.Type != RPAREN {
		p.fail(newSyntaxError("unclosed '('", open.Column))
		return nil
	}
	p.nextToken()

	return exp
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func describe(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}
