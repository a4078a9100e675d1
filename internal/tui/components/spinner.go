package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/todos/internal/tui/styles"
)

// Spinner animates loading rows. It only ticks while Start has been called
// and Stop has not.
type Spinner struct {
	spinner spinner.Model
	running bool
}

// NewSpinner creates a new Spinner component with default styling.
func NewSpinner() *Spinner {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)
	return &Spinner{spinner: s}
}

// Start begins ticking. It returns nil if the spinner is already running.
func (s *Spinner) Start() tea.Cmd {
	if s.running {
		return nil
	}
	s.running = true
	return s.spinner.Tick
}

// Stop lets the next tick end the animation.
func (s *Spinner) Stop() {
	s.running = false
}

// Running reports whether the spinner is animating.
func (s *Spinner) Running() bool {
	return s.running
}

// Update advances the animation on its own tick messages.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !s.running {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(tick)
	return cmd
}

// Frame returns the current animation frame.
func (s *Spinner) Frame() string {
	return s.spinner.View()
}
