package printer

import (
	"strings"

	"github.com/msto63/glox/foundation/lox/ast"
)

// TreeBuilder converts nodes into nested maps suitable for JSON, YAML and
// protobuf Struct encoding. Every map carries a "type" key.
type TreeBuilder struct{}

// Tree converts expr to a nested map. A nil expression yields nil.
func Tree(expr ast.Expr) map[string]interface{} {
	if expr == nil {
		return nil
	}
	return expr.Accept(TreeBuilder{}).(map[string]interface{})
}

func (b TreeBuilder) VisitLiteral(e *ast.Literal) interface{} {
	return map[string]interface{}{
		"type":  "literal",
		"value": e.Value,
	}
}

func (b TreeBuilder) VisitGrouping(e *ast.Grouping) interface{} {
	return map[string]interface{}{
		"type":       "grouping",
		"expression": e.Expression.Accept(b),
	}
}

func (b TreeBuilder) VisitUnary(e *ast.Unary) interface{} {
	return map[string]interface{}{
		"type":     "unary",
		"operator": e.Operator.Lexeme,
		"line":     e.Operator.Line,
		"right":    e.Right.Accept(b),
	}
}

func (b TreeBuilder) VisitBinary(e *ast.Binary) interface{} {
	return map[string]interface{}{
		"type":     "binary",
		"operator": e.Operator.Lexeme,
		"line":     e.Operator.Line,
		"left":     e.Left.Accept(b),
		"right":    e.Right.Accept(b),
	}
}

func (b TreeBuilder) VisitTernary(e *ast.Ternary) interface{} {
	return map[string]interface{}{
		"type":      "ternary",
		"condition": e.Condition.Accept(b),
		"then":      e.Then.Accept(b),
		"else":      e.Else.Accept(b),
	}
}

// OutlinePrinter renders one node per line, children indented two spaces
// beneath their parent.
type OutlinePrinter struct{}

// Outline renders expr as an indented tree. A nil expression yields "".
func Outline(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return expr.Accept(OutlinePrinter{}).(string)
}

func (p OutlinePrinter) VisitLiteral(e *ast.Literal) interface{} {
	return "literal " + FormatValue(e.Value)
}

func (p OutlinePrinter) VisitGrouping(e *ast.Grouping) interface{} {
	return p.node("grouping", e.Expression)
}

func (p OutlinePrinter) VisitUnary(e *ast.Unary) interface{} {
	return p.node("unary "+e.Operator.Lexeme, e.Right)
}

func (p OutlinePrinter) VisitBinary(e *ast.Binary) interface{} {
	return p.node("binary "+e.Operator.Lexeme, e.Left, e.Right)
}

func (p OutlinePrinter) VisitTernary(e *ast.Ternary) interface{} {
	return p.node("ternary", e.Condition, e.Then, e.Else)
}

func (p OutlinePrinter) node(label string, children ...ast.Expr) string {
	var sb strings.Builder
	sb.WriteString(label)
	for _, child := range children {
		for _, line := range strings.Split(child.Accept(p).(string), "\n") {
			sb.WriteString("\n  ")
			sb.WriteString(line)
		}
	}
	return sb.String()
}
