package tui

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/wexinc/todos/internal/api"
	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/logging"
)

// runKeys drives a real program through keys and then ctrl+c, failing if it
// does not exit in time.
func runKeys(t *testing.T, keys ...string) {
	t.Helper()

	session := app.NewSession(app.Options{
		Client:    api.NewMemory(owner, seed()...),
		Owner:     owner,
		Logger:    logging.NewNoop(),
		AfterFunc: noTimer,
	})
	t.Cleanup(session.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := NewRunner(ctx, session, Options{Input: &bytes.Buffer{}, Output: io.Discard})

	done := make(chan error, 1)
	go func() { done <- r.Run() }()
	go func() {
		for _, k := range keys {
			r.Program().Send(keyMsg(k))
		}
		r.Program().Send(keyMsg("ctrl+c"))
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Program did not exit after keys %q", keys)
	}
}

func TestRunnerNavigate(t *testing.T) {
	runKeys(t, "tab", "j", "k")
}

func TestRunnerFilterKeys(t *testing.T) {
	runKeys(t, "tab", "2", "f", "1", "3")
}

func TestRunnerDismiss(t *testing.T) {
	runKeys(t, "tab", "esc", "esc")
}

func TestRunnerToggleAll(t *testing.T) {
	runKeys(t, "ctrl+a", "tab", "x", "c")
}
