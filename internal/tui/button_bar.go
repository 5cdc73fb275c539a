package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
)

// ButtonID identifies the action behind a button.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
	ButtonSubmit
	ButtonDownload
	ButtonStartNew
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	ID       ButtonID
	Label    string
	Disabled bool
}

// ButtonBar manages a row of buttons and keyboard focus across them.
// Disabled buttons are skipped by focus movement.
type ButtonBar struct {
	buttons []Button
	focus   int // -1 when nothing is focused
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons ...Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focus:   -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Buttons returns the buttons in display order.
func (b *ButtonBar) Buttons() []Button {
	return b.buttons
}

// State returns how the button at index i is drawn.
func (b *ButtonBar) State(i int) ButtonState {
	switch {
	case b.buttons[i].Disabled:
		return ButtonDisabled
	case i == b.focus:
		return ButtonFocused
	default:
		return ButtonNormal
	}
}

// FocusFirst focuses the first enabled button. It returns false if every
// button is disabled.
func (b *ButtonBar) FocusFirst() bool {
	for i := range b.buttons {
		if !b.buttons[i].Disabled {
			b.focus = i
			return true
		}
	}
	b.focus = -1
	return false
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() bool {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if !b.buttons[i].Disabled {
			b.focus = i
			return true
		}
	}
	b.focus = -1
	return false
}

// FocusNext moves focus right. It returns false when focus would leave the
// bar, leaving the caller to move focus elsewhere.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focus + 1; i < len(b.buttons); i++ {
		if !b.buttons[i].Disabled {
			b.focus = i
			return true
		}
	}
	return false
}

// FocusPrev moves focus left. It returns false at the left edge.
func (b *ButtonBar) FocusPrev() bool {
	start := b.focus - 1
	if b.focus < 0 {
		start = len(b.buttons) - 1
	}
	for i := start; i >= 0; i-- {
		if !b.buttons[i].Disabled {
			b.focus = i
			return true
		}
	}
	return false
}

// Blur removes focus from every button.
func (b *ButtonBar) Blur() {
	b.focus = -1
}

// IsFocused reports whether a button has focus.
func (b *ButtonBar) IsFocused() bool {
	return b.focus >= 0
}

// FocusedButton returns the focused button's ID.
func (b *ButtonBar) FocusedButton() (ButtonID, bool) {
	if b.focus < 0 || b.focus >= len(b.buttons) {
		return 0, false
	}
	return b.buttons[b.focus].ID, true
}

// Render renders the button bar centred in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		switch b.State(i) {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}
