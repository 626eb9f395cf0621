package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{LeftParen, "LEFT_PAREN"},
		{Question, "QUESTION"},
		{GreaterEqual, "GREATER_EQUAL"},
		{While, "WHILE"},
		{EOF, "EOF"},
		{Kind(999), "Kind(999)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		ok    bool
	}{
		{"class", Class, true},
		{"nil", Nil, true},
		{"classify", Identifier, false},
		{"Class", Identifier, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := LookupKeyword(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Expected (%s, %v), got (%s, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}

	if len(Keywords()) != 16 {
		t.Errorf("Expected 16 keywords, got %d", len(Keywords()))
	}
	for _, w := range Keywords() {
		kind, _ := LookupKeyword(w)
		if !kind.IsKeyword() {
			t.Errorf("Expected %q to map to a keyword kind", w)
		}
	}
}

func TestTokenString(t *testing.T) {
	if got := New(Number, "1.5", 1.5, 1).String(); got != "NUMBER 1.5 1.5" {
		t.Errorf("Expected %q, got %q", "NUMBER 1.5 1.5", got)
	}
	if got := New(Plus, "+", nil, 1).String(); got != "PLUS + null" {
		t.Errorf("Expected %q, got %q", "PLUS + null", got)
	}
}
