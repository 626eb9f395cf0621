// Package log provides structured, leveled logging for glox.
//
// Package: log
// Title: glox Structured Logging
// Description: A small Fields-based logger with JSON and text output.
//              Loggers are immutable: With* methods return a derived copy,
//              so a component can attach its name once and hand the logger on.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-17 v0.2.0: Dropped async buffering, timers and audit level
//
// Usage:
//
//	logger := gloxlog.GetDefault().WithField("component", "lox-frontend")
//	logger.Debug("Scan finished", gloxlog.Fields{"tokens": len(tokens)})
//	logger.ErrorWithErr("History store unavailable", err)
package log
