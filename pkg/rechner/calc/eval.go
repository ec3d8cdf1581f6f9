// Package calc is a sandboxed arithmetic evaluator.
//
// Input is stripped of whitespace and checked against a fixed character
// whitelist (digits and + - * / ( ) . % ^) before it is tokenized. There are
// no identifiers, calls or variables in the grammar, so nothing but arithmetic
// can ever be evaluated.
//
// Precedence, loosest first: + -, then * / %, then unary + -, then ^.
// ^ is right-associative; -2^2 is -4.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const allowed = "0123456789+-*/().%^"

// Strip removes all whitespace from expr.
func Strip(expr string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expr)
}

// Validate reports whether expr (already stripped) uses only whitelisted characters.
func Validate(expr string) error {
	for i, r := range expr {
		if r > unicode.MaxASCII || !strings.ContainsRune(allowed, r) {
			return newRejectedError(r, i+1)
		}
	}
	return nil
}

// Compile validates and parses expr without evaluating it.
func Compile(expr string) (Node, error) {
	expr = Strip(expr)
	if err := Validate(expr); err != nil {
		return nil, err
	}

	p := NewParser(NewLexer(expr))
	node := p.Parse()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return node, nil
}

// Eval validates, parses and evaluates expr.
func Eval(expr string) (float64, error) {
	node, err := Compile(expr)
	if err != nil {
		return 0, err
	}

	v, err := evalNode(node)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newNonFiniteError("expression", 0)
	}
	return v, nil
}

// EvalString evaluates expr and formats the result. Any error, including a
// rejected character, yields the empty string.
func EvalString(expr string) string {
	v, err := Eval(expr)
	if err != nil {
		return ""
	}
	return Format(v)
}

func evalNode(node Node) (float64, error) {
	switch node := node.(type) {
	case *NumberLiteral:
		return node.Value, nil

	case *PrefixExpression:
		right, err := evalNode(node.Right)
		if err != nil {
			return 0, err
		}
		if node.Operator == "-" {
			return -right, nil
		}
		return right, nil

	case *InfixExpression:
		left, err := evalNode(node.Left)
		if err != nil {
			return 0, err
		}
		right, err := evalNode(node.Right)
		if err != nil {
			return 0, err
		}
		return evalInfix(node, left, right)

	default:
		return 0, newSyntaxError(fmt.Sprintf("unknown node %T", node), 0)
	}
}

func evalInfix(node *InfixExpression, left, right float64) (float64, error) {
	switch node.Operator {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		v := left / right
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, newNonFiniteError("division", node.Token.Column)
		}
		return v, nil
	case "%":
		v := math.Mod(left, right)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, newNonFiniteError("remainder", node.Token.Column)
		}
		return v, nil
	case "^":
		return math.Pow(left, right), nil
	default:
		return 0, newSyntaxError(fmt.Sprintf("unknown operator %s", node.Operator), node.Token.Column)
	}
}

// FormatInteger prints a whole number without a decimal point. From 1e21 on
// it switches to exponent form ("1e+21").
func FormatInteger(v float64) string {
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Format prints whole numbers without a decimal point and everything else
// with up to six decimals.
func Format(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) {
		return FormatInteger(v)
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
