package ast

import (
	"testing"

	"github.com/msto63/glox/foundation/lox/token"
)

// kindVisitor reports which visit method was called
type kindVisitor struct{}

func (kindVisitor) VisitLiteral(*Literal) interface{}   { return "literal" }
func (kindVisitor) VisitGrouping(*Grouping) interface{} { return "grouping" }
func (kindVisitor) VisitUnary(*Unary) interface{}       { return "unary" }
func (kindVisitor) VisitBinary(*Binary) interface{}     { return "binary" }
func (kindVisitor) VisitTernary(*Ternary) interface{}   { return "ternary" }

func TestAcceptDispatch(t *testing.T) {
	one := NewLiteral(1.0)
	plus := token.New(token.Plus, "+", nil, 1)
	minus := token.New(token.Minus, "-", nil, 1)

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"literal", one, "literal"},
		{"grouping", NewGrouping(one), "grouping"},
		{"unary", NewUnary(minus, one), "unary"},
		{"binary", NewBinary(one, plus, NewLiteral(2.0)), "binary"},
		{"ternary", NewTernary(NewLiteral(true), one, NewLiteral(nil)), "ternary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.Accept(kindVisitor{}); got != tt.want {
				t.Errorf("Expected %s, got %v", tt.want, got)
			}
		})
	}
}
