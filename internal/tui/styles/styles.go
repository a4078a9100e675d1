// Package styles provides Lip Gloss styles for the todos TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI.
var (
	Primary     = lipgloss.Color("#B83F45") // Brick red
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#1F2937") // Dark Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

// Header styles.
var (
	// TitleStyle is for the application title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	// ToggleAllActiveStyle marks the toggle-all control when every todo is done.
	ToggleAllActiveStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Bold(true)

	// ToggleAllStyle is the toggle-all control otherwise.
	ToggleAllStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// Todo row styles and icons.
var (
	// CheckDone is the icon for a completed todo.
	CheckDone = lipgloss.NewStyle().
			Foreground(Success).
			Render("✓")

	// CheckOpen is the icon for an active todo.
	CheckOpen = lipgloss.NewStyle().
			Foreground(Muted).
			Render("○")

	// TitleActiveStyle renders the title of an active todo.
	TitleActiveStyle = lipgloss.NewStyle().
				Foreground(Foreground)

	// TitleDoneStyle renders the title of a completed todo.
	TitleDoneStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	// TitlePendingStyle renders the placeholder todo.
	TitlePendingStyle = lipgloss.NewStyle().
				Foreground(MutedLight).
				Italic(true)

	// SelectedRowStyle highlights the row under the cursor.
	SelectedRowStyle = lipgloss.NewStyle().
				Background(Background).
				Bold(true)

	// CursorStyle is the selection marker.
	CursorStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)
)

// Input styles.
var (
	// InputFocusedStyle is for the focused text input.
	InputFocusedStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Background).
				Padding(0, 1)

	// InputStyle is for an unfocused text input.
	InputStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	// InputDisabledStyle is for an input that ignores typing.
	InputDisabledStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Italic(true).
				Padding(0, 1)
)

// Footer styles.
var (
	// FooterStyle is the footer container.
	FooterStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	// FilterStyle is an unselected filter link.
	FilterStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	// FilterSelectedStyle is the active filter link.
	FilterSelectedStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(Primary).
				Padding(0, 1)

	// ClearStyle is the clear-completed action.
	ClearStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	// ClearDisabledStyle is the clear-completed action with nothing to clear.
	ClearDisabledStyle = lipgloss.NewStyle().
				Foreground(BorderColor)
)

// Notice styles.
var (
	// NoticeStyle is the error notification banner.
	NoticeStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Error).
			Bold(true).
			Padding(0, 1)

	// NoticeDismissStyle is the dismiss hint inside the banner.
	NoticeDismissStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Error)
)

// Text styles.
var (
	// MutedTextStyle is for de-emphasized text.
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorTextStyle is for error messages.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)
)

// Shortcut bar styles.
var (
	// KeyStyle is for keyboard shortcut keys.
	KeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// HelpStyle is for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// Dialog styles.
var (
	// ButtonPrimaryStyle is for the confirming button.
	ButtonPrimaryStyle = lipgloss.NewStyle().
				Foreground(Background).
				Background(Primary).
				Bold(true).
				Padding(0, 2)

	// ButtonDangerStyle is for a confirming button on a destructive action.
	ButtonDangerStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Error).
				Bold(true).
				Padding(0, 2)

	// ButtonSecondaryStyle is for the cancelling button.
	ButtonSecondaryStyle = lipgloss.NewStyle().
				Foreground(MutedLight).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Muted).
				Padding(0, 1)
)
