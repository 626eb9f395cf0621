// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     repl
// Description: Styles and syntax highlighting for the REPL
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/glox/foundation/lox/lexer"
	"github.com/msto63/glox/foundation/lox/token"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBgPanel).
			Padding(0, 1)
)

// Transcript styles
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	OutputStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			PaddingLeft(2)

	DiagnosticStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			PaddingLeft(2)

	SystemMessageStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)

	TimingStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Panel styles
var (
	TranscriptPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorDimmed).
				Padding(0, 1)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Token highlighting
var (
	keywordStyle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	numberStyle   = lipgloss.NewStyle().Foreground(ColorAccent)
	stringStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	operatorStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// Logo
const Logo = "glox"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// Highlight colors the tokens of source. Text between tokens (whitespace,
// comments, rejected characters) is kept as is.
func Highlight(source string) string {
	tokens, _ := lexer.Scan(source)

	var b strings.Builder
	pos := 0
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		b.WriteString(source[pos:tok.Offset])
		b.WriteString(styleFor(tok).Render(tok.Lexeme))
		pos = tok.Offset + len(tok.Lexeme)
	}
	b.WriteString(source[pos:])
	return b.String()
}

func styleFor(tok token.Token) lipgloss.Style {
	switch {
	case lexer.IsKeyword(tok.Lexeme):
		return keywordStyle
	case tok.Kind == token.Number:
		return numberStyle
	case tok.Kind == token.String:
		return stringStyle
	case tok.Kind == token.Identifier:
		return lipgloss.NewStyle()
	default:
		return operatorStyle
	}
}
