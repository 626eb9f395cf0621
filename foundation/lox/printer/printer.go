// File: printer.go
// Title: AST Debug Printers
// Description: Visitors rendering expression trees as parenthesized
//              prefix text, reverse polish notation, nested maps and an
//              indented outline.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Parens, RPN and Tree printers

// Package printer renders expression trees for debugging and transport.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	"github.com/msto63/glox/foundation/lox/ast"
)

// Style selects a printer
type Style string

const (
	StyleParens Style = "parens"
	StyleRPN    Style = "rpn"
	StyleTree   Style = "tree"
)

// Styles lists the supported styles
var Styles = []Style{StyleParens, StyleRPN, StyleTree}

// ParseStyle validates a style name. The empty string selects parens.
func ParseStyle(name string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(name))) {
	case "", StyleParens:
		return StyleParens, nil
	case StyleRPN:
		return StyleRPN, nil
	case StyleTree:
		return StyleTree, nil
	}
	return "", gloxerror.New(fmt.Sprintf("unknown printer %q", name)).
		WithCode(gloxerror.CodeInvalidInput).
		WithOperation("printer.ParseStyle").
		WithDetail("supported", Styles)
}

// Render prints expr in the given style. A nil expression renders as "".
func Render(style Style, expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	switch style {
	case StyleRPN:
		return RPN(expr)
	case StyleTree:
		return Outline(expr)
	default:
		return Parens(expr)
	}
}

// FormatValue renders a literal value: numbers without a trailing ".0",
// strings unquoted and nil as "nil".
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ParensPrinter renders "(+ 1 (* 2 3))"
type ParensPrinter struct{}

// Parens renders expr in parenthesized prefix form
func Parens(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return expr.Accept(ParensPrinter{}).(string)
}

func (p ParensPrinter) VisitLiteral(e *ast.Literal) interface{} {
	return FormatValue(e.Value)
}

func (p ParensPrinter) VisitGrouping(e *ast.Grouping) interface{} {
	return p.parenthesize("group", e.Expression)
}

func (p ParensPrinter) VisitUnary(e *ast.Unary) interface{} {
	return p.parenthesize(e.Operator.Lexeme, e.Right)
}

func (p ParensPrinter) VisitBinary(e *ast.Binary) interface{} {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (p ParensPrinter) VisitTernary(e *ast.Ternary) interface{} {
	return p.parenthesize("?:", e.Condition, e.Then, e.Else)
}

func (p ParensPrinter) parenthesize(name string, exprs ...ast.Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(e.Accept(p).(string))
	}
	b.WriteString(")")
	return b.String()
}

// RPNPrinter renders operands before their operator: "1 2 3 * +"
type RPNPrinter struct{}

// RPN renders expr in reverse polish notation. Groupings are transparent.
func RPN(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return expr.Accept(RPNPrinter{}).(string)
}

func (p RPNPrinter) VisitLiteral(e *ast.Literal) interface{} {
	return FormatValue(e.Value)
}

func (p RPNPrinter) VisitGrouping(e *ast.Grouping) interface{} {
	return e.Expression.Accept(p)
}

func (p RPNPrinter) VisitUnary(e *ast.Unary) interface{} {
	return p.join(e.Operator.Lexeme, e.Right)
}

func (p RPNPrinter) VisitBinary(e *ast.Binary) interface{} {
	return p.join(e.Operator.Lexeme, e.Left, e.Right)
}

func (p RPNPrinter) VisitTernary(e *ast.Ternary) interface{} {
	return p.join("?:", e.Condition, e.Then, e.Else)
}

func (p RPNPrinter) join(op string, exprs ...ast.Expr) string {
	parts := make([]string, 0, len(exprs)+1)
	for _, e := range exprs {
		parts = append(parts, e.Accept(p).(string))
	}
	return strings.Join(append(parts, op), " ")
}
