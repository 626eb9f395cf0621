package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox/printer"
)

func waitReport(t *testing.T, ch <-chan Report) Report {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for report")
		return Report{}
	}
}

func TestWatcher_ReparsesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.lox")
	if err := os.WriteFile(path, []byte("1 + 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Path: path, Debounce: 20 * time.Millisecond}, gloxlog.Discard())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reports := make(chan Report, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(r Report) { reports <- r })
	}()

	first := waitReport(t, reports)
	if first.Err != nil {
		t.Fatalf("Unexpected error: %v", first.Err)
	}
	if got := printer.Parens(first.Result.Expr); got != "(+ 1 2)" {
		t.Errorf("Expected (+ 1 2), got %s", got)
	}

	// Give the watcher time to register the directory before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("(1"), 0o644); err != nil {
		t.Fatal(err)
	}

	second := waitReport(t, reports)
	if second.Err != nil {
		t.Fatalf("Unexpected error: %v", second.Err)
	}
	if !second.Result.HadError() || second.Result.Expr != nil {
		t.Errorf("Expected syntax error after rewrite, got %v", second.Result.Diagnostics)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop")
	}
}

func TestWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.lox")
	if err := os.WriteFile(path, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(Config{Path: path}, gloxlog.Discard())
	if err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(context.Background(), func(Report) { started <- struct{}{} })
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("Watcher did not start")
	}
	w.Stop()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestNew_MissingFile(t *testing.T) {
	if _, err := New(Config{Path: filepath.Join(t.TempDir(), "missing.lox")}, gloxlog.Discard()); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := New(Config{Path: t.TempDir()}, gloxlog.Discard()); err == nil {
		t.Error("Expected error for directory")
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32
	var last int32

	for i := int32(1); i <= 5; i++ {
		n := i
		d.Trigger(func() {
			atomic.AddInt32(&calls, 1)
			atomic.StoreInt32(&last, n)
		})
	}

	time.Sleep(150 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}
	if got := atomic.LoadInt32(&last); got != 5 {
		t.Errorf("Expected last callback, got %d", got)
	}

	d.Stop()
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected no calls after Stop, got %d", got)
	}
}
