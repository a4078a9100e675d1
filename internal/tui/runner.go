package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/config"
	"github.com/wexinc/todos/internal/logging"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// EventHandler translates session events to TUI messages.
type EventHandler struct {
	program Sender
}

// NewEventHandler creates an EventHandler that forwards to program.
func NewEventHandler(program Sender) *EventHandler {
	return &EventHandler{program: program}
}

// HandleEvent sends event to the program without waiting for delivery. It
// implements app.EventHandler. Session calls made from Update emit events on
// the event loop goroutine, which is the only reader of the program's
// message channel.
func (h *EventHandler) HandleEvent(event app.Event) {
	if h.program == nil {
		return
	}
	go h.program.Send(StateChangedMsg{Event: event})
}

// HandleConfig forwards a reloaded config. It matches the config.Loader
// Watch callback.
func (h *EventHandler) HandleConfig(cfg *config.Config, err error) {
	if h.program == nil {
		return
	}
	h.program.Send(ConfigReloadedMsg{Config: cfg, Err: err})
}

// Options configures Run.
type Options struct {
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
	// Loader, when set, is watched for config changes.
	Loader *config.Loader
	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// Runner owns the Bubble Tea program for a session.
type Runner struct {
	session *app.Session
	model   *Model
	program *tea.Program
	handler *EventHandler
	opts    Options
}

// NewRunner creates a runner for session.
func NewRunner(ctx context.Context, session *app.Session, opts Options) *Runner {
	model := New(ctx, session)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(model, progOpts...)

	return &Runner{
		session: session,
		model:   model,
		program: program,
		handler: NewEventHandler(program),
		opts:    opts,
	}
}

// Run starts the program and blocks until it exits.
func (r *Runner) Run() error {
	unsubscribe := r.session.Subscribe(r.handler.HandleEvent)
	defer unsubscribe()

	if r.opts.Loader != nil {
		r.opts.Loader.Watch(r.handler.HandleConfig)
	}

	logging.Info("tui started")
	_, err := r.program.Run()
	logging.Info("tui stopped", "error", err)
	return err
}

// Program returns the tea.Program for external access.
func (r *Runner) Program() *tea.Program {
	return r.program
}

// Model returns the TUI model.
func (r *Runner) Model() *Model {
	return r.model
}

// Run runs the TUI for session until the user quits or ctx is cancelled.
func Run(ctx context.Context, session *app.Session, opts Options) error {
	return NewRunner(ctx, session, opts).Run()
}
