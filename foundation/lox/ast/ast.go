// File: ast.go
// Title: Lox Expression AST
// Description: The closed set of expression nodes produced by the parser
//              and the visitor contract that consumers implement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Literal, Grouping, Unary, Binary and Ternary nodes

// Package ast defines the expression tree. The node set is closed: adding
// a variant means adding a method to Visitor and updating every consumer.
package ast

import "github.com/msto63/glox/foundation/lox/token"

// Expr is implemented by the five expression node types only
type Expr interface {
	// Accept dispatches to the visitor method for the concrete node
	Accept(v Visitor) interface{}

	exprNode()
}

// Visitor has one method per node type
type Visitor interface {
	VisitLiteral(expr *Literal) interface{}
	VisitGrouping(expr *Grouping) interface{}
	VisitUnary(expr *Unary) interface{}
	VisitBinary(expr *Binary) interface{}
	VisitTernary(expr *Ternary) interface{}
}

// Literal is a number (float64), string, bool or nil value
type Literal struct {
	Value interface{}
}

// Grouping is a parenthesized expression
type Grouping struct {
	Expression Expr
}

// Unary is a prefix operator applied to Right
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Binary is a left-associative infix operation, including ","
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Ternary is Condition ? Then : Else
type Ternary struct {
	Condition Expr
	Then      Expr
	Else      Expr
}

func (e *Literal) Accept(v Visitor) interface{}  { return v.VisitLiteral(e) }
func (e *Grouping) Accept(v Visitor) interface{} { return v.VisitGrouping(e) }
func (e *Unary) Accept(v Visitor) interface{}    { return v.VisitUnary(e) }
func (e *Binary) Accept(v Visitor) interface{}   { return v.VisitBinary(e) }
func (e *Ternary) Accept(v Visitor) interface{}  { return v.VisitTernary(e) }

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Ternary) exprNode()  {}

// NewLiteral creates a literal node
func NewLiteral(value interface{}) *Literal {
	return &Literal{Value: value}
}

// NewGrouping creates a grouping node
func NewGrouping(inner Expr) *Grouping {
	return &Grouping{Expression: inner}
}

// NewUnary creates a unary node
func NewUnary(op token.Token, right Expr) *Unary {
	return &Unary{Operator: op, Right: right}
}

// NewBinary creates a binary node
func NewBinary(left Expr, op token.Token, right Expr) *Binary {
	return &Binary{Left: left, Operator: op, Right: right}
}

// NewTernary creates a ternary node
func NewTernary(cond, then, els Expr) *Ternary {
	return &Ternary{Condition: cond, Then: then, Else: els}
}
