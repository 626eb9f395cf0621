// File: parser.go
// Title: Lox Expression Parser
// Description: Recursive descent parser turning a token sequence into an
//              expression tree. Missing left operands are reported and
//              parsing continues; structural errors unwind to Parse.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial expression grammar with ternary and comma

// Package parser implements the expression grammar, lowest precedence first:
//
//	expression -> sequence
//	sequence   -> ternary ( "," ternary )*
//	ternary    -> equality ( "?" expression ":" ternary )?
//	equality   -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       -> factor ( ( "+" | "-" ) factor )*
//	factor     -> unary ( ( "/" | "*" ) unary )*
//	unary      -> ( "!" | "-" ) unary | primary
//	primary    -> NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")"
//
// A nil expression with a nil error is an absent result: something below
// was reported as a missing operand. Any node built over an absent child
// is itself absent.
package parser

import (
	"errors"
	"io"

	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox/ast"
	"github.com/msto63/glox/foundation/lox/diag"
	"github.com/msto63/glox/foundation/lox/token"
)

// Parser messages
const (
	MsgMissingLeftOperand = "Missing left-hand operand."
	MsgExpectRightParen   = "Expect ')' after expression."
	MsgExpectColon        = "Expect ':' after then branch of conditional expression."
	MsgExpectExpression   = "Expect expression."
	MsgExpectEnd          = "Expect end of expression."
)

// Options configures a parser
type Options struct {
	Logger *gloxlog.Logger
	Echo   io.Writer // optional console echo of diagnostics
}

// ParseError is a structural error. It unwinds to Parse, which records it.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	return diag.AtToken(e.Token, e.Message).String()
}

// Parser consumes one token sequence. Create a new parser per input.
type Parser struct {
	tokens  []token.Token
	current int
	sink    *diag.Sink
	logger  *gloxlog.Logger
}

// New creates a parser over tokens, which must end with an EOF token
func New(tokens []token.Token, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = gloxlog.GetDefault()
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(append([]token.Token(nil), tokens...), token.New(token.EOF, "", nil, line))
	}

	return &Parser{
		tokens: tokens,
		sink:   diag.NewSink(opts.Echo),
		logger: opts.Logger.WithField("component", "lox-parser"),
	}
}

// Parse parses tokens with default options
func Parse(tokens []token.Token) (ast.Expr, diag.List) {
	return New(tokens, Options{}).Parse()
}

// Parse parses a single expression. It returns nil when a structural error
// occurred or when a missing operand made the tree absent. Tokens left over
// after a complete expression are reported but the tree is still returned.
func (p *Parser) Parse() (ast.Expr, diag.List) {
	p.logger.Trace("Starting expression parse", gloxlog.Fields{
		"tokens": len(p.tokens),
	})

	expr, err := p.expression()
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			pe = &ParseError{Token: p.peek(), Message: err.Error()}
		}
		p.sink.ErrorAt(pe.Token, pe.Message)
		p.logger.Debug("Expression parse aborted", gloxlog.Fields{
			"line":    pe.Token.Line,
			"message": pe.Message,
		})
		return nil, p.sink.List()
	}

	if !p.isAtEnd() {
		p.sink.ErrorAt(p.peek(), MsgExpectEnd)
	}

	diags := p.sink.List()
	p.logger.Trace("Expression parse finished", gloxlog.Fields{
		"absent":      expr == nil,
		"diagnostics": len(diags),
	})
	return expr, diags
}

// Synchronize discards tokens until just after a ';' or until the next
// token starts a statement. No expression production calls it.
func (p *Parser) Synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}

		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}

// Current returns the next unconsumed token
func (p *Parser) Current() token.Token {
	return p.peek()
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.sequence()
}

func (p *Parser) sequence() (ast.Expr, error) {
	return p.binary(p.ternary, token.Comma)
}

func (p *Parser) ternary() (ast.Expr, error) {
	cond, err := p.equality()
	if err != nil {
		return nil, err
	}

	if !p.match(token.Question) {
		return cond, nil
	}

	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Colon, MsgExpectColon); err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}

	if cond == nil || then == nil || els == nil {
		return nil, nil
	}
	return ast.NewTernary(cond, then, els), nil
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() (ast.Expr, error) {
	// '-' in prefix position is negation, so only '+' can lack a left operand.
	return p.binaryWithPrefix(p.factor, []token.Kind{token.Plus}, token.Plus, token.Minus)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, token.Slash, token.Star)
}

// binary parses one left-associative level whose operators are ops
func (p *Parser) binary(next func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	return p.binaryWithPrefix(next, ops, ops...)
}

// binaryWithPrefix parses one left-associative level. When an operator
// listed in missing stands where the left operand belongs, it is reported,
// its right operand is parsed anyway and the level continues with an
// absent left side.
func (p *Parser) binaryWithPrefix(next func() (ast.Expr, error), missing []token.Kind, ops ...token.Kind) (ast.Expr, error) {
	var left ast.Expr

	if p.match(missing...) {
		p.sink.ErrorAt(p.previous(), MsgMissingLeftOperand)
		if _, err := next(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if left, err = next(); err != nil {
			return nil, err
		}
	}

	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		if left == nil || right == nil {
			left = nil
			continue
		}
		left = ast.NewBinary(left, op, right)
	}

	return left, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil || right == nil {
			return nil, err
		}
		return ast.NewUnary(op, right), nil
	}

	return p.primary()
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.False):
		return ast.NewLiteral(false), nil
	case p.match(token.True):
		return ast.NewLiteral(true), nil
	case p.match(token.Nil):
		return ast.NewLiteral(nil), nil
	case p.match(token.Number, token.String):
		return ast.NewLiteral(p.previous().Literal), nil
	case p.match(token.LeftParen):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, MsgExpectRightParen); err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, nil
		}
		return ast.NewGrouping(inner), nil
	}

	return nil, p.errorAt(p.peek(), MsgExpectExpression)
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok token.Token, message string) error {
	return &ParseError{Token: tok, Message: message}
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}
