package repl

import "time"

// Entry is one line of the transcript
type Entry struct {
	Kind        EntryKind
	Source      string
	Printed     string
	Diagnostics []string
	Duration    time.Duration
}

// EntryKind distinguishes evaluated input from REPL notices
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntrySystem
	EntryError
)

// evalResultMsg is sent when an input line has been evaluated
type evalResultMsg struct {
	source   string
	outcome  Outcome
	duration time.Duration
	err      error
}

// historyLoadedMsg carries stored inputs, oldest first
type historyLoadedMsg struct {
	inputs []string
	err    error
}
