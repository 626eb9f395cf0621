// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     server
// Description: Request and response types of glox.v1.ParserService and
//              their google.protobuf.Struct encoding
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package server

import (
	"google.golang.org/protobuf/types/known/structpb"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	"github.com/msto63/glox/foundation/lox"
	"github.com/msto63/glox/foundation/lox/diag"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/foundation/lox/token"
)

// ParseRequest asks the service to parse Source
type ParseRequest struct {
	Source  string `json:"source" yaml:"source"`
	Printer string `json:"printer,omitempty" yaml:"printer,omitempty"`
}

// ScanRequest asks the service to tokenize Source
type ScanRequest struct {
	Source string `json:"source" yaml:"source"`
}

// Diagnostic mirrors diag.Diagnostic with its rendered text
type Diagnostic struct {
	Line    int    `json:"line" yaml:"line"`
	Where   string `json:"where,omitempty" yaml:"where,omitempty"`
	Message string `json:"message" yaml:"message"`
	Text    string `json:"text" yaml:"text"`
}

// Token is the wire form of a token
type Token struct {
	Kind   string `json:"kind" yaml:"kind"`
	Lexeme string `json:"lexeme" yaml:"lexeme"`
	Line   int    `json:"line" yaml:"line"`
}

// ParseResponse carries the tree and its rendering, or the diagnostics
type ParseResponse struct {
	OK          bool                   `json:"ok" yaml:"ok"`
	AST         map[string]interface{} `json:"ast,omitempty" yaml:"ast,omitempty"`
	Printed     string                 `json:"printed,omitempty" yaml:"printed,omitempty"`
	Diagnostics []Diagnostic           `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ScanResponse carries the token stream
type ScanResponse struct {
	Tokens      []Token      `json:"tokens" yaml:"tokens"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// NewParseResponse builds the response for a parse result
func NewParseResponse(res *lox.Result, style printer.Style) *ParseResponse {
	resp := &ParseResponse{
		OK:          !res.HadError(),
		Diagnostics: FromDiag(res.Diagnostics),
	}
	if res.Expr != nil {
		resp.AST = printer.Tree(res.Expr)
		resp.Printed = res.Print(style)
	}
	return resp
}

// NewScanResponse builds the response for a scan result
func NewScanResponse(res *lox.Result) *ScanResponse {
	return &ScanResponse{
		Tokens:      FromTokens(res.Tokens),
		Diagnostics: FromDiag(res.Diagnostics),
	}
}

// FromDiag converts front end diagnostics
func FromDiag(list diag.List) []Diagnostic {
	if len(list) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(list))
	for i, d := range list {
		out[i] = Diagnostic{Line: d.Line, Where: d.Where, Message: d.Message, Text: d.String()}
	}
	return out
}

// FromTokens converts lexer tokens
func FromTokens(tokens []token.Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		out[i] = Token{Kind: t.Kind.String(), Lexeme: t.Lexeme, Line: t.Line}
	}
	return out
}

// Struct encoders. structpb only accepts []interface{} for lists.

func (r *ParseRequest) toStruct() (*structpb.Struct, error) {
	return newStruct(map[string]interface{}{
		"source":  r.Source,
		"printer": r.Printer,
	})
}

func (r *ScanRequest) toStruct() (*structpb.Struct, error) {
	return newStruct(map[string]interface{}{"source": r.Source})
}

func (r *ParseResponse) toStruct() (*structpb.Struct, error) {
	m := map[string]interface{}{
		"ok":          r.OK,
		"printed":     r.Printed,
		"diagnostics": diagnosticsToList(r.Diagnostics),
	}
	if r.AST != nil {
		m["ast"] = r.AST
	}
	return newStruct(m)
}

func (r *ScanResponse) toStruct() (*structpb.Struct, error) {
	tokens := make([]interface{}, len(r.Tokens))
	for i, t := range r.Tokens {
		tokens[i] = map[string]interface{}{"kind": t.Kind, "lexeme": t.Lexeme, "line": t.Line}
	}
	return newStruct(map[string]interface{}{
		"tokens":      tokens,
		"diagnostics": diagnosticsToList(r.Diagnostics),
	})
}

func diagnosticsToList(diags []Diagnostic) []interface{} {
	out := make([]interface{}, len(diags))
	for i, d := range diags {
		out[i] = map[string]interface{}{
			"line":    d.Line,
			"where":   d.Where,
			"message": d.Message,
			"text":    d.Text,
		}
	}
	return out
}

func newStruct(m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to encode message").
			WithCode(gloxerror.CodeInternal).
			WithOperation("server.newStruct")
	}
	return s, nil
}

// Struct decoders

func parseRequestFrom(s *structpb.Struct) ParseRequest {
	m := s.AsMap()
	return ParseRequest{Source: stringField(m, "source"), Printer: stringField(m, "printer")}
}

func scanRequestFrom(s *structpb.Struct) ScanRequest {
	return ScanRequest{Source: stringField(s.AsMap(), "source")}
}

func parseResponseFrom(s *structpb.Struct) *ParseResponse {
	m := s.AsMap()
	resp := &ParseResponse{
		Printed:     stringField(m, "printed"),
		Diagnostics: diagnosticsFrom(m["diagnostics"]),
	}
	resp.OK, _ = m["ok"].(bool)
	resp.AST, _ = m["ast"].(map[string]interface{})
	return resp
}

func scanResponseFrom(s *structpb.Struct) *ScanResponse {
	m := s.AsMap()
	resp := &ScanResponse{Diagnostics: diagnosticsFrom(m["diagnostics"])}
	list, _ := m["tokens"].([]interface{})
	for _, item := range list {
		t, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		resp.Tokens = append(resp.Tokens, Token{
			Kind:   stringField(t, "kind"),
			Lexeme: stringField(t, "lexeme"),
			Line:   intField(t, "line"),
		})
	}
	return resp
}

func diagnosticsFrom(v interface{}) []Diagnostic {
	list, _ := v.([]interface{})
	var out []Diagnostic
	for _, item := range list {
		d, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, Diagnostic{
			Line:    intField(d, "line"),
			Where:   stringField(d, "where"),
			Message: stringField(d, "message"),
			Text:    stringField(d, "text"),
		})
	}
	return out
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]interface{}, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}
