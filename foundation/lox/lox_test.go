package lox

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/foundation/lox/token"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		printed string
		diags   []string
	}{
		{
			name:    "valid expression",
			input:   "(1 + 2) * -3 == 9 ? \"yes\" : nil",
			printed: "(?: (== (* (group (+ 1 2)) (- 3)) 9) yes nil)",
		},
		{
			name:  "lexer and parser diagnostics are merged in order",
			input: "1 + @",
			diags: []string{
				"[line 1] Error: Unexpected character.",
				"[line 1] Error at end: Expect expression.",
			},
		},
		{
			name:  "whitespace and comments only",
			input: "  /* nothing */ // here",
			diags: []string{"[line 1] Error at end: Expect expression."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.input, Options{Logger: gloxlog.Discard()})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := res.Print(printer.StyleParens); got != tt.printed {
				t.Errorf("Expected %q, got %q", tt.printed, got)
			}
			got := res.Diagnostics.Strings()
			if len(got) != len(tt.diags) {
				t.Fatalf("Expected diagnostics %v, got %v", tt.diags, got)
			}
			for i := range got {
				if got[i] != tt.diags[i] {
					t.Errorf("Expected %q, got %q", tt.diags[i], got[i])
				}
			}
			if res.HadError() != (len(tt.diags) > 0) {
				t.Errorf("HadError mismatch")
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	res, err := Parse("(1", Options{Logger: gloxlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	synErr := res.Err()
	if !gloxerror.HasCode(synErr, gloxerror.CodeSyntax) {
		t.Fatalf("Expected SYNTAX_ERROR, got %v", synErr)
	}
	if !strings.Contains(synErr.Error(), "Expect ')' after expression.") {
		t.Errorf("Unexpected message %q", synErr.Error())
	}

	ok, _ := Parse("1", Options{Logger: gloxlog.Discard()})
	if ok.Err() != nil {
		t.Errorf("Expected nil error, got %v", ok.Err())
	}
}

func TestSourceLimit(t *testing.T) {
	_, err := Parse("1 + 2", Options{Logger: gloxlog.Discard(), MaxSourceBytes: 3})
	if !gloxerror.HasCode(err, gloxerror.CodeSourceTooLarge) {
		t.Fatalf("Expected SOURCE_TOO_LARGE, got %v", err)
	}

	if _, err := Parse("1 + 2", Options{Logger: gloxlog.Discard(), MaxSourceBytes: -1}); err != nil {
		t.Errorf("Expected negative limit to disable the check, got %v", err)
	}
}

func TestScan(t *testing.T) {
	res, err := Scan("1 ? 2 : 3", Options{Logger: gloxlog.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Expr != nil {
		t.Error("Expected Scan not to parse")
	}
	if len(res.Tokens) != 6 || res.Tokens[5].Kind != token.EOF {
		t.Errorf("Expected 6 tokens ending in EOF, got %v", res.Tokens)
	}
}

func TestEcho(t *testing.T) {
	var buf bytes.Buffer
	_, err := Parse("\"open", Options{Logger: gloxlog.Discard(), Echo: &buf})
	if err != nil {
		t.Fatal(err)
	}
	want := "[line 1] Error: Unterminated string.\n[line 1] Error at end: Expect expression.\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestConcurrentParses(t *testing.T) {
	fe := New(Options{Logger: gloxlog.Discard()})
	inputs := []string{"1 + 2", "(1", "== 3", "true ? 1 : 2"}
	errs := []bool{false, true, true, false}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for j, in := range inputs {
			wg.Add(1)
			go func(in string, wantErr bool) {
				defer wg.Done()
				res, err := fe.Parse(in)
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
					return
				}
				if res.HadError() != wantErr {
					t.Errorf("%q: expected HadError %v, got %v", in, wantErr, res.HadError())
				}
			}(in, errs[j])
		}
	}
	wg.Wait()
}
