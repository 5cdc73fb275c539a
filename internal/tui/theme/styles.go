package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style

	// Stepper
	StepActive    lipgloss.Style
	StepDone      lipgloss.Style
	StepPending   lipgloss.Style
	StepSeparator lipgloss.Style

	ModalContainer lipgloss.Style

	// Input steps
	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style
	Label           lipgloss.Style
	Muted           lipgloss.Style
	Error           lipgloss.Style

	// Button bar
	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	// Hint bar
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Result view tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Changes view
	DiffInsert lipgloss.Style
	DiffDelete lipgloss.Style
	DiffHunk   lipgloss.Style

	Toast      lipgloss.Style
	ToastError lipgloss.Style
}
