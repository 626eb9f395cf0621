package printer

import (
	"testing"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	"github.com/msto63/glox/foundation/lox/ast"
	"github.com/msto63/glox/foundation/lox/token"
)

func op(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, nil, 1)
}

func num(v float64) ast.Expr {
	return ast.NewLiteral(v)
}

func TestPrinters(t *testing.T) {
	plus := op(token.Plus, "+")
	star := op(token.Star, "*")
	minus := op(token.Minus, "-")

	tests := []struct {
		name   string
		expr   ast.Expr
		parens string
		rpn    string
	}{
		{
			name:   "precedence",
			expr:   ast.NewBinary(num(1), plus, ast.NewBinary(num(2), star, num(3))),
			parens: "(+ 1 (* 2 3))",
			rpn:    "1 2 3 * +",
		},
		{
			name:   "grouping",
			expr:   ast.NewBinary(ast.NewGrouping(ast.NewBinary(num(1), plus, num(2))), star, num(3)),
			parens: "(* (group (+ 1 2)) 3)",
			rpn:    "1 2 + 3 *",
		},
		{
			name:   "unary",
			expr:   ast.NewUnary(minus, num(3)),
			parens: "(- 3)",
			rpn:    "3 -",
		},
		{
			name:   "ternary",
			expr:   ast.NewTernary(ast.NewLiteral(true), num(2.5), ast.NewLiteral(nil)),
			parens: "(?: true 2.5 nil)",
			rpn:    "true 2.5 nil ?:",
		},
		{
			name:   "string literal",
			expr:   ast.NewBinary(ast.NewLiteral("a b"), op(token.EqualEqual, "=="), ast.NewLiteral(false)),
			parens: "(== a b false)",
			rpn:    "a b false ==",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parens(tt.expr); got != tt.parens {
				t.Errorf("Parens: expected %q, got %q", tt.parens, got)
			}
			if got := RPN(tt.expr); got != tt.rpn {
				t.Errorf("RPN: expected %q, got %q", tt.rpn, got)
			}
		})
	}
}

func TestTree(t *testing.T) {
	expr := ast.NewUnary(op(token.Bang, "!"), ast.NewGrouping(ast.NewLiteral(true)))
	tree := Tree(expr)

	if tree["type"] != "unary" || tree["operator"] != "!" || tree["line"] != 1 {
		t.Fatalf("Unexpected root %v", tree)
	}
	group, ok := tree["right"].(map[string]interface{})
	if !ok || group["type"] != "grouping" {
		t.Fatalf("Expected grouping child, got %v", tree["right"])
	}
	lit, ok := group["expression"].(map[string]interface{})
	if !ok || lit["type"] != "literal" || lit["value"] != true {
		t.Errorf("Expected literal true, got %v", group["expression"])
	}

	if Tree(nil) != nil {
		t.Error("Expected nil tree for nil expression")
	}
}

func TestOutline(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{
			name: "ternary",
			expr: ast.NewTernary(ast.NewLiteral(true), num(1), ast.NewUnary(op(token.Minus, "-"), num(2))),
			want: "ternary\n  literal true\n  literal 1\n  unary -\n    literal 2",
		},
		{
			name: "nested binary",
			expr: ast.NewBinary(ast.NewGrouping(ast.NewBinary(num(1), op(token.Plus, "+"), num(2))), op(token.Star, "*"), num(3)),
			want: "binary *\n  grouping\n    binary +\n      literal 1\n      literal 2\n  literal 3",
		},
		{
			name: "literal",
			expr: ast.NewLiteral(nil),
			want: "literal nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(StyleTree, tt.expr); got != tt.want {
				t.Errorf("Expected\n%s\ngot\n%s", tt.want, got)
			}
		})
	}

	if Outline(nil) != "" {
		t.Error("Expected empty outline for nil expression")
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    Style
		wantErr bool
	}{
		{"", StyleParens, false},
		{"RPN", StyleRPN, false},
		{" tree ", StyleTree, false},
		{"lisp", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !gloxerror.HasCode(err, gloxerror.CodeInvalidInput) {
				t.Errorf("Expected INVALID_INPUT, got %s", gloxerror.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderNil(t *testing.T) {
	for _, style := range Styles {
		if got := Render(style, nil); got != "" {
			t.Errorf("%s: expected empty output, got %q", style, got)
		}
	}
}
