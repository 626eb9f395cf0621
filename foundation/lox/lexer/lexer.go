// File: lexer.go
// Title: Lox Lexical Analyzer
// Description: Converts Lox source text into a token sequence in a single
//              pass. Lexical errors are reported to a diagnostics sink and
//              scanning resumes at the next character.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial lexer with nested block comments

// Package lexer turns source text into tokens.
package lexer

import (
	"errors"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/msto63/glox/foundation/lox/diag"
	"github.com/msto63/glox/foundation/lox/token"
)

// Lexer scans one source text. It is not safe for concurrent use; create
// one per input.
type Lexer struct {
	source  string
	start   int // first byte of the lexeme being scanned
	current int // next byte to read
	line    int
	tokens  []token.Token
	sink    *diag.Sink
}

// New creates a lexer for source. When echo is non-nil every diagnostic is
// also written to it as it is reported.
func New(source string, echo io.Writer) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		sink:   diag.NewSink(echo),
	}
}

// Scan tokenizes source. The result always ends with exactly one EOF token.
func Scan(source string) ([]token.Token, diag.List) {
	l := New(source, nil)
	return l.ScanTokens(), l.Diagnostics()
}

// IsKeyword reports whether s is a reserved word
func IsKeyword(s string) bool {
	_, ok := token.LookupKeyword(s)
	return ok
}

// ScanTokens runs the scanner to completion
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	eof := token.New(token.EOF, "", nil, l.line)
	eof.Offset = len(l.source)
	l.tokens = append(l.tokens, eof)
	return l.tokens
}

// Diagnostics returns the lexical errors found so far
func (l *Lexer) Diagnostics() diag.List {
	return l.sink.List()
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.addToken(token.LeftParen, nil)
	case ')':
		l.addToken(token.RightParen, nil)
	case '{':
		l.addToken(token.LeftBrace, nil)
	case '}':
		l.addToken(token.RightBrace, nil)
	case ',':
		l.addToken(token.Comma, nil)
	case '.':
		l.addToken(token.Dot, nil)
	case '-':
		l.addToken(token.Minus, nil)
	case '+':
		l.addToken(token.Plus, nil)
	case ';':
		l.addToken(token.Semicolon, nil)
	case '*':
		l.addToken(token.Star, nil)
	case '?':
		l.addToken(token.Question, nil)
	case ':':
		l.addToken(token.Colon, nil)
	case '!':
		l.addToken(l.either('=', token.BangEqual, token.Bang), nil)
	case '=':
		l.addToken(l.either('=', token.EqualEqual, token.Equal), nil)
	case '<':
		l.addToken(l.either('=', token.LessEqual, token.Less), nil)
	case '>':
		l.addToken(l.either('=', token.GreaterEqual, token.Greater), nil)
	case '/':
		switch {
		case l.match('/'):
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		case l.match('*'):
			l.blockComment()
		default:
			l.addToken(token.Slash, nil)
		}
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	case '"':
		l.readString()
	default:
		switch {
		case isDigit(c):
			l.readNumber()
		case isAlpha(c):
			l.readIdentifier()
		default:
			// Skip the whole UTF-8 sequence so one character yields one error.
			if c >= utf8.RuneSelf {
				_, size := utf8.DecodeRuneInString(l.source[l.start:])
				l.current = l.start + size
			}
			l.sink.Error(l.line, "Unexpected character.")
		}
	}
}

// blockComment consumes a /* */ comment whose opening was already read.
// Comments nest; each "/*" needs its own "*/".
func (l *Lexer) blockComment() {
	depth := 1
	for depth > 0 {
		if l.isAtEnd() {
			l.sink.Error(l.line, "Unterminated comment.")
			return
		}
		switch {
		case l.peek() == '/' && l.peekNext() == '*':
			l.current += 2
			depth++
		case l.peek() == '*' && l.peekNext() == '/':
			l.current += 2
			depth--
		default:
			if l.advance() == '\n' {
				l.line++
			}
		}
	}
}

func (l *Lexer) readString() {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.sink.Error(l.line, "Unterminated string.")
		return
	}

	l.advance() // closing quote
	l.addToken(token.String, l.source[l.start+1:l.current-1])
}

func (l *Lexer) readNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// A trailing '.' without digits stays a separate DOT token.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	// Out of range literals keep the ±Inf ParseFloat returns.
	value, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		l.sink.Error(l.line, "Invalid number.")
		return
	}
	l.addToken(token.Number, value)
}

func (l *Lexer) readIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	kind, _ := token.LookupKeyword(l.source[l.start:l.current])
	l.addToken(kind, nil)
}

func (l *Lexer) addToken(kind token.Kind, literal interface{}) {
	tok := token.New(kind, l.source[l.start:l.current], literal, l.line)
	tok.Offset = l.start
	l.tokens = append(l.tokens, tok)
}

// either consumes expected and returns matched, or returns fallback
func (l *Lexer) either(expected byte, matched, fallback token.Kind) token.Kind {
	if l.match(expected) {
		return matched
	}
	return fallback
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
