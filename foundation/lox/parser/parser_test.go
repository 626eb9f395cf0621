// File: parser_test.go
// Title: Lox Parser Unit Tests
// Description: Unit tests for precedence, associativity, error reporting,
//              absent-result propagation and token synchronization.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17

package parser

import (
	"testing"

	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox/ast"
	"github.com/msto63/glox/foundation/lox/lexer"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/foundation/lox/token"
)

func parse(t *testing.T, input string) (ast.Expr, []string) {
	t.Helper()
	tokens, lexDiags := lexer.Scan(input)
	if lexDiags.HadError() {
		t.Fatalf("Unexpected lexer diagnostics: %v", lexDiags)
	}
	expr, diags := New(tokens, Options{Logger: gloxlog.Discard()}).Parse()
	return expr, diags.Strings()
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		check func(t *testing.T, expr ast.Expr)
	}{
		{
			name:  "Multiplication nests under addition",
			input: "1+2*3",
			want:  "(+ 1 (* 2 3))",
			check: func(t *testing.T, expr ast.Expr) {
				bin, ok := expr.(*ast.Binary)
				if !ok || bin.Operator.Kind != token.Plus {
					t.Fatalf("Expected Binary(+), got %T", expr)
				}
				right, ok := bin.Right.(*ast.Binary)
				if !ok || right.Operator.Kind != token.Star {
					t.Errorf("Expected right child Binary(*), got %T", bin.Right)
				}
			},
		},
		{
			name:  "Ternary chains to the right",
			input: "true ? 1 : false ? 2 : 3",
			want:  "(?: true 1 (?: false 2 3))",
			check: func(t *testing.T, expr ast.Expr) {
				tern, ok := expr.(*ast.Ternary)
				if !ok {
					t.Fatalf("Expected Ternary, got %T", expr)
				}
				if _, ok := tern.Else.(*ast.Ternary); !ok {
					t.Errorf("Expected else branch Ternary, got %T", tern.Else)
				}
			},
		},
		{
			name:  "Subtraction is left associative",
			input: "1 - 2 - 3",
			want:  "(- (- 1 2) 3)",
		},
		{
			name:  "Division and multiplication",
			input: "8 / 4 * 2",
			want:  "(* (/ 8 4) 2)",
		},
		{
			name:  "Unary binds tighter than factor",
			input: "-1 * 2",
			want:  "(* (- 1) 2)",
		},
		{
			name:  "Nested unary",
			input: "!!true",
			want:  "(! (! true))",
		},
		{
			name:  "Comparison under equality",
			input: "1 < 2 != 3 >= 4",
			want:  "(!= (< 1 2) (>= 3 4))",
		},
		{
			name:  "Comma is lowest",
			input: "1, 2 == 3, 4",
			want:  "(, (, 1 (== 2 3)) 4)",
		},
		{
			name:  "Then branch accepts a full expression",
			input: "true ? 1, 2 : 3",
			want:  "(?: true (, 1 2) 3)",
		},
		{
			name:  "Grouping",
			input: "(1 + 2) * 3",
			want:  "(* (group (+ 1 2)) 3)",
		},
		{
			name:  "Literals",
			input: `"a" == nil`,
			want:  "(== a nil)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, diags := parse(t, tt.input)
			if len(diags) != 0 {
				t.Fatalf("Unexpected diagnostics: %v", diags)
			}
			if got := printer.Parens(expr); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
			if tt.check != nil {
				tt.check(t, expr)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		absent bool
		want   string // printed tree when not absent
		diags  []string
	}{
		{
			name:   "Unmatched parenthesis",
			input:  "(1",
			absent: true,
			diags:  []string{"[line 1] Error at end: Expect ')' after expression."},
		},
		{
			name:   "Missing left operand",
			input:  "== 1",
			absent: true,
			diags:  []string{"[line 1] Error at '==': Missing left-hand operand."},
		},
		{
			name:   "Missing operand does not stop later errors",
			input:  "== 1, (2",
			absent: true,
			diags: []string{
				"[line 1] Error at '==': Missing left-hand operand.",
				"[line 1] Error at end: Expect ')' after expression.",
			},
		},
		{
			name:   "Two missing operands in one pass",
			input:  "> 1, * 2",
			absent: true,
			diags: []string{
				"[line 1] Error at '>': Missing left-hand operand.",
				"[line 1] Error at '*': Missing left-hand operand.",
			},
		},
		{
			name:   "Absent result propagates through binary",
			input:  "* 2 + 3",
			absent: true,
			diags:  []string{"[line 1] Error at '*': Missing left-hand operand."},
		},
		{
			name:   "Leading plus",
			input:  "+ 1",
			absent: true,
			diags:  []string{"[line 1] Error at '+': Missing left-hand operand."},
		},
		{
			name:  "Leading minus is negation",
			input: "- 1",
			want:  "(- 1)",
		},
		{
			name:   "Empty input",
			input:  "",
			absent: true,
			diags:  []string{"[line 1] Error at end: Expect expression."},
		},
		{
			name:   "Dangling operator",
			input:  "1 +",
			absent: true,
			diags:  []string{"[line 1] Error at end: Expect expression."},
		},
		{
			name:   "Identifiers are not expressions",
			input:  "foo",
			absent: true,
			diags:  []string{"[line 1] Error at 'foo': Expect expression."},
		},
		{
			name:   "Ternary without colon",
			input:  "true ? 1",
			absent: true,
			diags:  []string{"[line 1] Error at end: " + MsgExpectColon},
		},
		{
			name:  "Trailing tokens keep the tree",
			input: "1 2",
			want:  "1",
			diags: []string{"[line 1] Error at '2': Expect end of expression."},
		},
		{
			name:   "Error line follows the token",
			input:  "1 +\n\n)",
			absent: true,
			diags:  []string{"[line 3] Error at ')': Expect expression."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, diags := parse(t, tt.input)
			if tt.absent && expr != nil {
				t.Errorf("Expected absent result, got %s", printer.Parens(expr))
			}
			if !tt.absent {
				if got := printer.Parens(expr); got != tt.want {
					t.Errorf("Expected %s, got %s", tt.want, got)
				}
			}
			if len(diags) != len(tt.diags) {
				t.Fatalf("Expected diagnostics %v, got %v", tt.diags, diags)
			}
			for i := range diags {
				if diags[i] != tt.diags[i] {
					t.Errorf("Expected %q, got %q", tt.diags[i], diags[i])
				}
			}
		})
	}
}

func TestParser_MissingTerminalEOF(t *testing.T) {
	expr, diags := Parse([]token.Token{token.New(token.Number, "7", 7.0, 1)})
	if diags.HadError() {
		t.Fatalf("Unexpected diagnostics: %v", diags)
	}
	if got := printer.Parens(expr); got != "7" {
		t.Errorf("Expected 7, got %s", got)
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Token: token.New(token.RightParen, ")", nil, 4), Message: MsgExpectExpression}
	if got := err.Error(); got != "[line 4] Error at ')': Expect expression." {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestParser_Synchronize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  token.Kind
	}{
		{"Stops after semicolon", "1 + ; 2", token.Number},
		{"Stops before statement keyword", "1 2 var x", token.Var},
		{"Stops before return", "( ) return", token.Return},
		{"Runs to end of input", "1 2 3", token.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, _ := lexer.Scan(tt.input)
			p := New(tokens, Options{Logger: gloxlog.Discard()})
			p.Synchronize()
			if got := p.Current().Kind; got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}

	tokens, _ := lexer.Scan("1 ; 2")
	p := New(tokens, Options{Logger: gloxlog.Discard()})
	p.Synchronize()
	if got := p.Current().Lexeme; got != "2" {
		t.Errorf("Expected to resume at 2, got %q", got)
	}
}
