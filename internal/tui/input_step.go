package tui

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/cv-enhancer/internal/logger"
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
)

// Field identifies which wizard field an input step edits.
type Field int

const (
	FieldJobDescription Field = iota
	FieldCV
)

// inputCharLimit bounds what the textarea accepts; pasted CVs can be long.
const inputCharLimit = 20000

// InputStep is a multi-line text entry for one wizard field.
type InputStep struct {
	field    Field
	textarea textarea.Model
	label    string
	err      string // Validation or submission error shown under the box
	width    int
	height   int
}

// NewInputStep creates the step for the given field.
func NewInputStep(field Field) *InputStep {
	ta := textarea.New()
	ta.CharLimit = inputCharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(10)

	s := &InputStep{field: field, textarea: ta}
	switch field {
	case FieldJobDescription:
		s.label = "Paste the job description you are applying for:"
		s.textarea.Placeholder = "Job title, responsibilities, required skills..."
	case FieldCV:
		s.label = "Paste your current CV:"
		s.textarea.Placeholder = "Experience, education, skills..."
	}
	s.textarea.Focus()
	return s
}

// Init initializes the step.
func (s *InputStep) Init() tea.Cmd {
	return textarea.Blink
}

// Field returns the field this step edits.
func (s *InputStep) Field() Field {
	return s.field
}

// Update handles messages for the step.
func (s *InputStep) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "ctrl+d":
			return func() tea.Msg { return SubmitStepMsg{} }
		case "ctrl+e":
			return s.openEditor()
		}
	}

	var cmd tea.Cmd
	s.textarea, cmd = s.textarea.Update(msg)
	return cmd
}

// openEditor launches $EDITOR on a temp file holding the current value.
func (s *InputStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "cv-enhancer_*.txt")
	if err != nil {
		logger.Warn("Failed to create temp file for editor: %v", err)
		return nil
	}
	if _, err := tmpfile.WriteString(s.textarea.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("cv-enhancer", tmpfile.Name())
	if err != nil {
		logger.Warn("Editor unavailable: %v", err)
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	field := s.field
	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return FieldEditedMsg{Field: field, Err: fmt.Errorf("editor exited: %w", err)}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return FieldEditedMsg{Field: field, Err: fmt.Errorf("reading edited text: %w", err)}
		}
		return FieldEditedMsg{Field: field, Content: string(content)}
	})
}

// View renders the step content.
func (s *InputStep) View() string {
	st := theme.Current().S()

	box := st.InputBox
	if s.textarea.Focused() {
		box = st.InputBoxFocused
	}

	parts := []string{
		st.Label.Render(s.label),
		box.Width(s.textarea.Width() + 4).Render(s.textarea.View()),
	}
	if s.err != "" {
		parts = append(parts, st.Error.MarginTop(1).Render("✗ "+s.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Value returns the raw text.
func (s *InputStep) Value() string {
	return s.textarea.Value()
}

// SetValue replaces the text.
func (s *InputStep) SetValue(v string) {
	s.textarea.SetValue(v)
}

// SetError sets the message shown under the box; empty clears it.
func (s *InputStep) SetError(msg string) {
	s.err = msg
}

// Error returns the message shown under the box.
func (s *InputStep) Error() string {
	return s.err
}

// SetSize updates the size of the step.
func (s *InputStep) SetSize(width, height int) {
	s.width = width
	s.height = height

	w := width - 6
	if w < 20 {
		w = 20
	}
	s.textarea.SetWidth(w)

	// Leave room for label, borders and error line
	h := height - 8
	if h < 4 {
		h = 4
	}
	if h > 20 {
		h = 20
	}
	s.textarea.SetHeight(h)
}

// Focus focuses the textarea.
func (s *InputStep) Focus() tea.Cmd {
	return s.textarea.Focus()
}

// Blur blurs the textarea.
func (s *InputStep) Blur() {
	s.textarea.Blur()
}

// Focused reports whether the textarea has focus.
func (s *InputStep) Focused() bool {
	return s.textarea.Focused()
}
