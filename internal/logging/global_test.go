package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	globalMu.Lock()
	globalLogger = nil
	globalMu.Unlock()
	t.Cleanup(func() { SetGlobal(nil) })
}

func TestGlobalDefaultsToNoop(t *testing.T) {
	resetGlobal(t)

	logger := Global()
	if logger == nil {
		t.Fatal("Global() returned nil")
	}
	logger.Info("discarded")
}

func TestSetGlobal(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	logger := NewWriter(&buf, &Config{Level: LevelDebug})
	SetGlobal(logger)

	if Global() != logger {
		t.Fatal("Global() should return the logger set by SetGlobal()")
	}

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
	With("scope", "test").Info("scoped message")

	out := buf.String()
	for _, msg := range []string{"debug message", "info message", "warn message", "error message", "scope=test"} {
		if !strings.Contains(out, msg) {
			t.Errorf("output should contain %q", msg)
		}
	}
}

func TestInitAndCloseGlobal(t *testing.T) {
	resetGlobal(t)
	tmpDir := t.TempDir()

	if err := InitGlobal(&Config{Level: LevelInfo, LogDir: tmpDir}); err != nil {
		t.Fatalf("InitGlobal() error = %v", err)
	}
	Info("written to file")

	path := Global().LogPath()
	if err := CloseGlobal(); err != nil {
		t.Fatalf("CloseGlobal() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "written to file") {
		t.Errorf("log file should contain message, got %q", content)
	}

	globalMu.RLock()
	isNil := globalLogger == nil
	globalMu.RUnlock()
	if !isNil {
		t.Error("globalLogger should be nil after CloseGlobal()")
	}
}

func TestCloseGlobalWhenNil(t *testing.T) {
	resetGlobal(t)

	if err := CloseGlobal(); err != nil {
		t.Errorf("CloseGlobal() with nil logger should not error: %v", err)
	}
}

func TestGlobalAfterCloseIsNoop(t *testing.T) {
	resetGlobal(t)
	Global()

	if err := CloseGlobal(); err != nil {
		t.Fatalf("CloseGlobal() error = %v", err)
	}
	if Global() == nil {
		t.Fatal("Global() after CloseGlobal() returned nil")
	}
}
