package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
)

const toastDuration = 4 * time.Second

// Toast shows a one-line notification in the bottom-right corner that
// dismisses itself.
type Toast struct {
	message   string
	isError   bool
	visible   bool
	dismissAt time.Time
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays a success toast.
func (t *Toast) Show(msg string) tea.Cmd {
	return t.show(msg, false)
}

// ShowError displays an error toast.
func (t *Toast) ShowError(msg string) tea.Cmd {
	return t.show(msg, true)
}

func (t *Toast) show(msg string, isError bool) tea.Cmd {
	t.message = msg
	t.isError = isError
	t.visible = true
	t.dismissAt = time.Now().Add(toastDuration)
	return t.dismissCmd()
}

// dismissCmd returns a command that will dismiss the toast after the remaining time.
func (t *Toast) dismissCmd() tea.Cmd {
	remaining := time.Until(t.dismissAt)
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	return tea.Tick(remaining, func(time.Time) tea.Msg {
		return ToastDismissMsg{}
	})
}

// Update handles messages for the toast component. A dismiss tick that
// belongs to an older toast re-schedules for the current one.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(ToastDismissMsg); ok && t.visible {
		if time.Now().Before(t.dismissAt) {
			return t.dismissCmd()
		}
		t.visible = false
		t.message = ""
	}
	return nil
}

// View renders the toast right-aligned in width. Returns empty string if the
// toast is not visible.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	s := theme.Current().S()
	style := s.Toast
	if t.isError {
		style = s.ToastError
	}

	content := style.Render(t.message)
	if width > 2 && lipgloss.Width(content) > width-2 {
		content = style.Width(width - 2).Render(t.message)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		PaddingRight(1).
		Render(content)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// IsError reports whether the visible toast is an error.
func (t *Toast) IsError() bool {
	return t.visible && t.isError
}

// Message returns the current toast message (empty if not visible).
func (t *Toast) Message() string {
	if !t.visible {
		return ""
	}
	return t.message
}
