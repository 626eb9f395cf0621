// File: logger_test.go
// Title: Logger Tests
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	gloxerror "github.com/msto63/glox/foundation/core/error"
)

func newBufferLogger(format Format, level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf, Name: "test"}), &buf
}

func TestNew(t *testing.T) {
	logger := New()
	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.contextFields == nil {
		t.Error("New() should initialize context fields")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Messages below warn should be dropped, got %q", out)
	}
	if !strings.Contains(out, "[WRN]") || !strings.Contains(out, "shown") {
		t.Errorf("Expected warn line, got %q", out)
	}
}

func TestLogger_WithFieldIsImmutable(t *testing.T) {
	base, buf := newBufferLogger(FormatText, LevelInfo)
	derived := base.WithField("component", "lox-frontend")

	base.Info("from base")
	derived.Info("from derived")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if strings.Contains(lines[0], "component=") {
		t.Errorf("Base logger must not see derived fields: %q", lines[0])
	}
	if !strings.Contains(lines[1], "component=lox-frontend") {
		t.Errorf("Derived logger should carry field: %q", lines[1])
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)
	logger.WithRequestID("req-1").Debug("Scan finished", Fields{"tokens": 4})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not JSON: %v (%q)", err, buf.String())
	}

	checks := map[string]interface{}{
		"level":      "debug",
		"message":    "Scan finished",
		"logger":     "test",
		"request_id": "req-1",
		"tokens":     float64(4),
	}
	for k, want := range checks {
		if decoded[k] != want {
			t.Errorf("%s = %v, want %v", k, decoded[k], want)
		}
	}
}

func TestLogger_LogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"syntax error is info", gloxerror.New("bad").WithCode(gloxerror.CodeSyntax), "[INF]"},
		{"storage error is error", gloxerror.New("disk").WithCode(gloxerror.CodeStorage), "[ERR]"},
		{"config error is warn", gloxerror.New("cfg").WithCode(gloxerror.CodeConfigError), "[WRN]"},
		{"plain error is error", errors.New("plain"), "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(FormatText, LevelTrace)
			logger.LogError(tt.err)
			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("Expected %s in %q", tt.wantLevel, buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"", LevelInfo, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTextFormatter_SortsFields(t *testing.T) {
	f := &TextFormatter{DisableTimestamp: true}
	entry := NewEntry(LevelInfo, "msg")
	entry.Fields["b"] = 2
	entry.Fields["a"] = 1

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if string(out) != "[INF] msg [a=1 b=2]\n" {
		t.Errorf("Unexpected output %q", string(out))
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
}
