package tui

import (
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown   = "↑/↓"
	KeyTab      = "tab"
	KeyEsc      = "esc"
	KeyCtrlC    = "ctrl+c"
	KeyCtrlD    = "ctrl+d"
	KeyCtrlE    = "ctrl+e"
	KeyPgUpDown = "pgup/pgdn"
)

// RenderHint renders a single key-description pair.
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Example: RenderHintBar("ctrl+d", "next", "esc", "back")
// Returns: "ctrl+d next • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + s.HintSeparator.Render("•") + " "
		}
		result += RenderHint(pairs[i], pairs[i+1])
	}
	return result
}

// HintJobDescription is shown on the first step.
func HintJobDescription() string {
	return RenderHintBar(KeyCtrlD, "next", KeyCtrlE, "editor", KeyTab, "buttons", KeyEsc, "quit")
}

// HintCV is shown on the CV step.
func HintCV() string {
	return RenderHintBar(KeyCtrlD, "submit", KeyCtrlE, "editor", KeyTab, "buttons", KeyEsc, "back")
}

// HintSubmitting is shown while a request is in flight.
func HintSubmitting() string {
	return RenderHintBar(KeyEsc, "cancel", KeyCtrlC, "quit")
}

// HintResult is shown on the result step.
func HintResult() string {
	return RenderHintBar(KeyUpDown, "scroll", "v", "view", "p", "pdf", "n", "new", KeyCtrlC, "quit")
}
