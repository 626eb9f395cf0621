package diag

import (
	"bytes"
	"testing"

	"github.com/msto63/glox/foundation/lox/token"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "no location",
			d:    AtLine(3, "Unexpected character."),
			want: "[line 3] Error: Unexpected character.",
		},
		{
			name: "at lexeme",
			d:    AtToken(token.New(token.EqualEqual, "==", nil, 1), "Missing left-hand operand."),
			want: "[line 1] Error at '==': Missing left-hand operand.",
		},
		{
			name: "at end",
			d:    AtToken(token.New(token.EOF, "", nil, 2), "Expect expression."),
			want: "[line 2] Error at end: Expect expression.",
		},
		{
			name: "string lexeme keeps quotes",
			d:    AtToken(token.New(token.String, `"hi"`, "hi", 1), "Expect end of expression."),
			want: `[line 1] Error at '"hi"': Expect end of expression.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestListOperations(t *testing.T) {
	var l List
	if l.HadError() {
		t.Error("Expected empty list to report no error")
	}

	l.Merge(List{AtLine(1, "a"), AtLine(2, "b")})
	if !l.HadError() || len(l) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", len(l))
	}
	if got := l.String(); got != "[line 1] Error: a\n[line 2] Error: b" {
		t.Errorf("Unexpected rendering %q", got)
	}

	l.Reset()
	if l.HadError() {
		t.Error("Expected Reset to clear the list")
	}
}

func TestSinkEcho(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)

	s.Error(1, "Unterminated string.")
	s.ErrorAt(token.New(token.EOF, "", nil, 1), "Expect expression.")

	want := "[line 1] Error: Unterminated string.\n[line 1] Error at end: Expect expression.\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
	if !s.HadError() || len(s.List()) != 2 {
		t.Errorf("Expected 2 recorded diagnostics, got %d", len(s.List()))
	}

	list := s.List()
	list[0].Message = "changed"
	if s.List()[0].Message == "changed" {
		t.Error("Expected List to return a copy")
	}

	s.Reset()
	if s.HadError() || s.List() != nil {
		t.Error("Expected Reset to clear the sink")
	}
}
