// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the interactive expression REPL
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/internal/history"
)

// evalTimeout bounds one evaluation, mainly for remote evaluators
const evalTimeout = 10 * time.Second

// Config holds REPL configuration
type Config struct {
	Evaluator    Evaluator
	Printer      printer.Style
	Store        history.Store // optional
	HistoryLimit int           // entries loaded into the input history and kept in the store
	Remote       string        // shown in the header when set
	Logger       *gloxlog.Logger
}

// Model is the main Bubbletea model for the REPL
type Model struct {
	// State
	width  int
	height int
	ready  bool
	busy   bool

	// Components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Transcript
	entries []Entry

	// Input history
	inputHistory []string
	historyIndex int    // -1 = new input
	currentInput string // input saved while navigating

	style  printer.Style
	config Config
	logger *gloxlog.Logger
}

// New creates a new REPL model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "lox> "
	ti.PromptStyle = PromptStyle
	ti.Placeholder = "1 + 2 * 3   (:help for commands)"
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	if cfg.Logger == nil {
		cfg.Logger = gloxlog.GetDefault()
	}
	style := cfg.Printer
	if style == "" {
		style = printer.StyleParens
	}

	return Model{
		input:        ti,
		spinner:      sp,
		historyIndex: -1,
		style:        style,
		config:       cfg,
		logger:       cfg.Logger.WithField("component", "repl"),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistory)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKeyPress(msg); handled {
			return next, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 6
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 10
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.busy {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case evalResultMsg:
		m.busy = false
		if msg.err != nil {
			m.appendEntry(Entry{Kind: EntryError, Source: msg.source, Printed: msg.err.Error()})
		} else {
			m.appendEntry(Entry{
				Kind:        EntryInput,
				Source:      msg.source,
				Printed:     msg.outcome.Printed,
				Diagnostics: msg.outcome.Diagnostics,
				Duration:    msg.duration,
			})
		}

	case historyLoadedMsg:
		if msg.err != nil {
			m.appendEntry(Entry{Kind: EntryError, Printed: "history unavailable: " + msg.err.Error()})
		} else {
			m.inputHistory = append(msg.inputs, m.inputHistory...)
		}
	}

	if !m.busy {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// keys go to the input only; the transcript scrolls with the mouse
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input. handled is false for keys that
// belong to the text input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit, true

	case tea.KeyCtrlL:
		m.entries = nil
		m.updateViewportContent()
		return m, nil, true

	case tea.KeyCtrlP:
		m.style = nextStyle(m.style)
		m.appendEntry(Entry{Kind: EntrySystem, Printed: "printer: " + string(m.style)})
		return m, nil, true

	case tea.KeyUp:
		m.navigateHistory(-1)
		return m, nil, true

	case tea.KeyDown:
		m.navigateHistory(1)
		return m, nil, true

	case tea.KeyEnter:
		if m.busy {
			return m, nil, true
		}
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.historyIndex = -1
		m.currentInput = ""
		if line == "" {
			return m, nil, true
		}
		if strings.HasPrefix(line, ":") {
			next, cmd := m.runCommand(line)
			return next, cmd, true
		}

		m.inputHistory = append(m.inputHistory, line)
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.evaluate(line)), true
	}

	return m, nil, false
}

// runCommand executes a ":" command
func (m Model) runCommand(line string) (Model, tea.Cmd) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":q", ":quit":
		return m, tea.Quit

	case ":clear":
		m.entries = nil
		m.updateViewportContent()

	case ":printer":
		if len(fields) < 2 {
			m.appendEntry(Entry{Kind: EntrySystem, Printed: "printer: " + string(m.style)})
			break
		}
		style, err := printer.ParseStyle(fields[1])
		if err != nil {
			m.appendEntry(Entry{Kind: EntryError, Printed: err.Error()})
			break
		}
		m.style = style
		m.appendEntry(Entry{Kind: EntrySystem, Printed: "printer: " + string(style)})

	case ":history":
		n := len(m.inputHistory)
		start := n - 10
		if start < 0 {
			start = 0
		}
		var b strings.Builder
		for i := start; i < n; i++ {
			fmt.Fprintf(&b, "%4d  %s\n", i+1, m.inputHistory[i])
		}
		m.appendEntry(Entry{Kind: EntrySystem, Printed: strings.TrimSuffix(b.String(), "\n")})

	case ":help":
		m.appendEntry(Entry{Kind: EntrySystem, Printed: strings.Join([]string{
			":printer [parens|rpn|tree]  show or set the printer",
			":history                    show recent inputs",
			":clear                      clear the transcript",
			":quit                       leave the REPL",
		}, "\n")})

	default:
		m.appendEntry(Entry{Kind: EntryError, Printed: "unknown command " + fields[0]})
	}

	return m, nil
}

func (m *Model) navigateHistory(direction int) {
	if len(m.inputHistory) == 0 {
		return
	}

	if m.historyIndex == -1 {
		if direction > 0 {
			return
		}
		m.currentInput = m.input.Value()
		m.historyIndex = len(m.inputHistory) - 1
	} else {
		m.historyIndex += direction
	}

	switch {
	case m.historyIndex < 0:
		m.historyIndex = 0
	case m.historyIndex >= len(m.inputHistory):
		m.historyIndex = -1
		m.input.SetValue(m.currentInput)
		m.input.CursorEnd()
		return
	}

	m.input.SetValue(m.inputHistory[m.historyIndex])
	m.input.CursorEnd()
}

// evaluate parses line off the update loop and records it in the store
func (m Model) evaluate(line string) tea.Cmd {
	evaluator := m.config.Evaluator
	store := m.config.Store
	limit := m.config.HistoryLimit
	style := m.style
	logger := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
		defer cancel()

		start := time.Now()
		out, err := evaluator.Evaluate(ctx, line, style)
		duration := time.Since(start)

		if store != nil && err == nil {
			entry := &history.Entry{Source: line, Printed: out.Printed, Diagnostics: out.Diagnostics}
			if serr := store.Add(ctx, entry); serr != nil {
				logger.LogError(serr)
			} else if limit > 0 {
				if _, perr := store.Prune(ctx, limit); perr != nil {
					logger.LogError(perr)
				}
			}
		}

		return evalResultMsg{source: line, outcome: out, duration: duration, err: err}
	}
}

func (m Model) loadHistory() tea.Msg {
	if m.config.Store == nil {
		return nil
	}

	entries, err := m.config.Store.List(context.Background(), history.Filter{Limit: m.config.HistoryLimit})
	if err != nil {
		return historyLoadedMsg{err: err}
	}

	inputs := make([]string, len(entries))
	for i, e := range entries {
		inputs[len(entries)-1-i] = e.Source
	}
	return historyLoadedMsg{inputs: inputs}
}

func (m *Model) appendEntry(e Entry) {
	m.entries = append(m.entries, e)
	m.updateViewportContent()
	m.viewport.GotoBottom()
}

// updateViewportContent renders the transcript into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	var content strings.Builder
	for _, e := range m.entries {
		switch e.Kind {
		case EntryInput:
			content.WriteString(PromptStyle.Render("lox> ") + Highlight(e.Source))
			if e.Duration > 0 {
				content.WriteString("  " + TimingStyle.Render(e.Duration.Round(time.Microsecond).String()))
			}
			content.WriteString("\n")
			if e.Printed != "" {
				content.WriteString(OutputStyle.Render(e.Printed) + "\n")
			}
			for _, d := range e.Diagnostics {
				content.WriteString(DiagnosticStyle.Render(d) + "\n")
			}

		case EntryError:
			if e.Source != "" {
				content.WriteString(PromptStyle.Render("lox> ") + Highlight(e.Source) + "\n")
			}
			content.WriteString(DiagnosticStyle.Render(e.Printed) + "\n")

		case EntrySystem:
			content.WriteString(SystemMessageStyle.Render(e.Printed) + "\n")
		}
	}

	m.viewport.SetContent(content.String())
}

// View renders the model
func (m Model) View() string {
	if !m.ready {
		return "Starting glox REPL..."
	}

	var b strings.Builder

	header := LogoStyle.Render(Logo) + "  " + BadgeStyle.Render("printer: "+string(m.style))
	if m.config.Remote != "" {
		header += "  " + BadgeStyle.Render("remote: "+m.config.Remote)
	}
	b.WriteString(header + "\n")

	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	input := m.input.View()
	if m.busy {
		input = m.spinner.View() + " parsing..."
	}
	b.WriteString(InputStyle.Width(m.width - 2).Render(input))
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "parse"),
		RenderKeyHint("↑/↓", "history"),
		RenderKeyHint("Ctrl+P", "printer"),
		RenderKeyHint("Ctrl+L", "clear"),
		RenderKeyHint("Ctrl+C", "quit"),
	}
	return HelpStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(items, "  ")))
}

// Entries returns the transcript
func (m Model) Entries() []Entry {
	return m.entries
}

// Style returns the active printer
func (m Model) Style() printer.Style {
	return m.style
}

func nextStyle(s printer.Style) printer.Style {
	for i, style := range printer.Styles {
		if style == s {
			return printer.Styles[(i+1)%len(printer.Styles)]
		}
	}
	return printer.StyleParens
}

// Run starts the REPL
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
