// File: lexer_test.go
// Title: Lox Lexer Unit Tests
// Description: Unit tests for token recognition, comments, literals,
//              line tracking and error recovery.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17

package lexer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/msto63/glox/foundation/lox/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{
			name:     "Empty input",
			input:    "",
			expected: []token.Kind{token.EOF},
		},
		{
			name:     "Whitespace and comments only",
			input:    "  \t\r\n// line comment\n/* block */ /* a /* nested */ b */\n",
			expected: []token.Kind{token.EOF},
		},
		{
			name:  "Single character symbols",
			input: "(){},.-+;*?:",
			expected: []token.Kind{
				token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
				token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
				token.Star, token.Question, token.Colon, token.EOF,
			},
		},
		{
			name:  "Two character operators",
			input: "! != = == < <= > >=",
			expected: []token.Kind{
				token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
				token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.EOF,
			},
		},
		{
			name:     "Slash versus comment",
			input:    "4 / 2 // ignored",
			expected: []token.Kind{token.Number, token.Slash, token.Number, token.EOF},
		},
		{
			name:     "Nested block comment",
			input:    "/* a /* b */ c */ 1",
			expected: []token.Kind{token.Number, token.EOF},
		},
		{
			name:     "Trailing dot is not part of the number",
			input:    "1.",
			expected: []token.Kind{token.Number, token.Dot, token.EOF},
		},
		{
			name:     "Keyword prefix is an identifier",
			input:    "classify",
			expected: []token.Kind{token.Identifier, token.EOF},
		},
		{
			name:     "Keywords",
			input:    "and class else false fun for if nil or print return super this true var while",
			expected: []token.Kind{token.And, token.Class, token.Else, token.False, token.Fun, token.For, token.If, token.Nil, token.Or, token.Print, token.Return, token.Super, token.This, token.True, token.Var, token.While, token.EOF},
		},
		{
			name:     "Ternary",
			input:    "a ? b : c",
			expected: []token.Kind{token.Identifier, token.Question, token.Identifier, token.Colon, token.Identifier, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, diags := Scan(tt.input)
			if diags.HadError() {
				t.Fatalf("Unexpected diagnostics: %v", diags)
			}
			if got := kinds(tokens); !equalKinds(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLexer_Literals(t *testing.T) {
	tokens, diags := Scan(`12 3.25 "hi there" _id9`)
	if diags.HadError() {
		t.Fatalf("Unexpected diagnostics: %v", diags)
	}

	tests := []struct {
		lexeme  string
		literal interface{}
	}{
		{"12", 12.0},
		{"3.25", 3.25},
		{`"hi there"`, "hi there"},
		{"_id9", nil},
	}
	for i, tt := range tests {
		if tokens[i].Lexeme != tt.lexeme {
			t.Errorf("Token %d: expected lexeme %q, got %q", i, tt.lexeme, tokens[i].Lexeme)
		}
		if tokens[i].Literal != tt.literal {
			t.Errorf("Token %d: expected literal %v, got %v", i, tt.literal, tokens[i].Literal)
		}
	}

	tokens, _ = Scan("1.")
	if tokens[0].Literal != 1.0 || tokens[0].Lexeme != "1" {
		t.Errorf("Expected NUMBER 1 with value 1.0, got %v", tokens[0])
	}

	huge := "1" + strings.Repeat("0", 400)
	tokens, diags = Scan(huge)
	if diags.HadError() {
		t.Fatalf("Unexpected diagnostics for an out of range number: %v", diags)
	}
	if len(tokens) != 2 || tokens[0].Kind != token.Number || tokens[0].Lexeme != huge {
		t.Fatalf("Expected one NUMBER token, got %v", tokens)
	}
	if v, ok := tokens[0].Literal.(float64); !ok || !math.IsInf(v, 1) {
		t.Errorf("Expected +Inf literal, got %v", tokens[0].Literal)
	}
}

func TestLexer_Lines(t *testing.T) {
	tokens, _ := Scan("1\n\"a\nb\"\n/* x\n */ 2")
	want := []int{1, 3, 5, 5}
	for i, line := range want {
		if tokens[i].Line != line {
			t.Errorf("Token %d (%s): expected line %d, got %d", i, tokens[i].Kind, line, tokens[i].Line)
		}
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		messages []string
		expected []token.Kind
	}{
		{
			name:     "Unterminated string",
			input:    `"abc`,
			messages: []string{"[line 1] Error: Unterminated string."},
			expected: []token.Kind{token.EOF},
		},
		{
			name:     "Unterminated comment",
			input:    "1 /* open /* inner */\n",
			messages: []string{"[line 2] Error: Unterminated comment."},
			expected: []token.Kind{token.Number, token.EOF},
		},
		{
			name:     "Unexpected characters are skipped",
			input:    "1 @ 2 # 3",
			messages: []string{"[line 1] Error: Unexpected character.", "[line 1] Error: Unexpected character."},
			expected: []token.Kind{token.Number, token.Number, token.Number, token.EOF},
		},
		{
			name:     "Multibyte character reported once",
			input:    "1 € 2",
			messages: []string{"[line 1] Error: Unexpected character."},
			expected: []token.Kind{token.Number, token.Number, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, diags := Scan(tt.input)
			got := diags.Strings()
			if len(got) != len(tt.messages) {
				t.Fatalf("Expected %d diagnostics, got %v", len(tt.messages), got)
			}
			for i := range got {
				if got[i] != tt.messages[i] {
					t.Errorf("Expected %q, got %q", tt.messages[i], got[i])
				}
			}
			if k := kinds(tokens); !equalKinds(k, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, k)
			}
		})
	}
}

func TestLexer_Echo(t *testing.T) {
	var buf bytes.Buffer
	l := New("$", &buf)
	l.ScanTokens()
	if buf.String() != "[line 1] Error: Unexpected character.\n" {
		t.Errorf("Unexpected echo %q", buf.String())
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword("while") || IsKeyword("whiles") {
		t.Error("IsKeyword mismatch")
	}
}

func TestLexer_Offsets(t *testing.T) {
	src := "/* c */ 12 +\n\"s\""
	tokens, _ := Scan(src)
	for _, tok := range tokens {
		if got := src[tok.Offset : tok.Offset+len(tok.Lexeme)]; got != tok.Lexeme {
			t.Errorf("Offset %d of %s points at %q", tok.Offset, tok.Kind, got)
		}
	}
	if tokens[len(tokens)-1].Offset != len(src) {
		t.Errorf("Expected EOF offset %d, got %d", len(src), tokens[len(tokens)-1].Offset)
	}
}
