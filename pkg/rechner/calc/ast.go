package calc

import (
	"strconv"
	"strings"
)

// Node is an expression tree node
type Node interface {
	TokenLiteral() string
	String() string
}

// NumberLiteral is a numeric constant
type NumberLiteral struct {
	Token Token
	Value float64
}

func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string {
	return strconv.FormatFloat(nl.Value, 'g', -1, 64)
}

// PrefixExpression is a unary + or -
type PrefixExpression struct {
	Token    Token
	Operator string
	Right    Node
}

func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(pe.Operator)
	out.WriteString(pe.Right.String())
	out.WriteString(")")
	return out.String()
}

// InfixExpression is a binary operation
type InfixExpression struct {
	Token    Token
	Left     Node
	Operator string
	Right    Node
}

func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator + " ")
	out.WriteString(ie.Right.String())
	out.WriteString(")")
	return out.String()
}
