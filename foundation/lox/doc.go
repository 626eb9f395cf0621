// File: doc.go
// Title: Lox Front End Package Documentation
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17

/*
Package lox is the front end for the Lox expression language. It runs the
lexer and the parser over one source text and returns the tokens, the
expression tree and every diagnostic reported along the way.

	res, err := lox.Parse("1 + 2 * 3", lox.Options{})
	if err != nil {
		// source rejected before scanning (size limit)
	}
	if res.HadError() {
		fmt.Println(res.Diagnostics)
	}
	fmt.Println(printer.Parens(res.Expr)) // (+ 1 (* 2 3))

Subpackages:

  - token: token kinds and the keyword table
  - lexer: source text to tokens
  - ast: the five expression nodes and the Visitor contract
  - diag: diagnostics in "[line N] Error<where>: message" form
  - parser: tokens to an expression tree
  - printer: parenthesized, reverse polish and tree renderings

Each call owns its diagnostics, so concurrent parses are independent.
*/
package lox
