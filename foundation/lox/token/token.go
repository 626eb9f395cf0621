// File: token.go
// Title: Lox Token Model
// Description: Token kinds, the token value type and the reserved word
//              table shared by the lexer, the parser and the REPL.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial token model

// Package token defines the lexical units produced by the lexer.
package token

import "fmt"

// Kind identifies the syntactic category of a token
type Kind int

const (
	// Single-character tokens
	LeftParen  Kind = iota // (
	RightParen             // )
	LeftBrace              // {
	RightBrace             // }
	Comma                  // ,
	Dot                    // .
	Minus                  // -
	Plus                   // +
	Semicolon              // ;
	Slash                  // /
	Star                   // *
	Question               // ?
	Colon                  // :

	// One or two character tokens
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = [...]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Semicolon:    "SEMICOLON",
	Slash:        "SLASH",
	Star:         "STAR",
	Question:     "QUESTION",
	Colon:        "COLON",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "AND",
	Class:        "CLASS",
	Else:         "ELSE",
	False:        "FALSE",
	Fun:          "FUN",
	For:          "FOR",
	If:           "IF",
	Nil:          "NIL",
	Or:           "OR",
	Print:        "PRINT",
	Return:       "RETURN",
	Super:        "SUPER",
	This:         "THIS",
	True:         "TRUE",
	Var:          "VAR",
	While:        "WHILE",
	EOF:          "EOF",
}

// String returns the upper snake case name of the kind
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is a reserved word
func (k Kind) IsKeyword() bool {
	return k >= And && k <= While
}

// keywords maps reserved words to their kinds
var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"fun":    Fun,
	"for":    For,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupKeyword returns the keyword kind for ident, or Identifier
func LookupKeyword(ident string) (Kind, bool) {
	if kind, ok := keywords[ident]; ok {
		return kind, true
	}
	return Identifier, false
}

// Keywords returns the reserved words in no particular order
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	return words
}

// Token is one lexical unit. Literal holds a float64 for NUMBER, the
// unquoted text for STRING and nil otherwise.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal interface{}
	Line    int
	Offset  int // byte offset of the lexeme in the source
}

// New creates a token
func New(kind Kind, lexeme string, literal interface{}, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// String renders "KIND lexeme literal" as the scan command prints it
func (t Token) String() string {
	literal := "null"
	if t.Literal != nil {
		literal = fmt.Sprintf("%v", t.Literal)
	}
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, literal)
}
