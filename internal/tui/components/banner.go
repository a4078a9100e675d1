package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/tui/styles"
)

// NoticeBanner shows the current notice with a dismiss hint. It renders
// nothing when there is no notice.
type NoticeBanner struct {
	notice app.Notice
	width  int
}

// NewNoticeBanner creates a new NoticeBanner component.
func NewNoticeBanner() *NoticeBanner {
	return &NoticeBanner{}
}

// SetNotice sets the notice to show.
func (b *NoticeBanner) SetNotice(n app.Notice) {
	b.notice = n
}

// Notice returns the notice being shown.
func (b *NoticeBanner) Notice() app.Notice {
	return b.notice
}

// SetWidth sets the banner width.
func (b *NoticeBanner) SetWidth(width int) {
	b.width = width
}

// IsVisible reports whether a notice is shown.
func (b *NoticeBanner) IsVisible() bool {
	return b.notice != app.NoticeNone
}

// View renders the banner.
func (b *NoticeBanner) View() string {
	if !b.IsVisible() {
		return ""
	}

	text := "⚠ " + b.notice.String()
	hint := styles.NoticeDismissStyle.Render("esc ✕")

	style := styles.NoticeStyle
	if b.width > 0 {
		gap := b.width - lipgloss.Width(text) - lipgloss.Width(hint) - 2
		if gap < 1 {
			gap = 1
		}
		return style.Width(b.width).Render(text + strings.Repeat(" ", gap) + hint)
	}
	return style.Render(text + "  " + hint)
}
