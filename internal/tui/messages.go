package tui

import "github.com/mark3labs/cv-enhancer/internal/wizard"

// SubmitStepMsg asks the app to advance from the current input step.
type SubmitStepMsg struct{}

// SubmissionResultMsg carries the outcome of a submission back to Update.
type SubmissionResultMsg struct {
	Result wizard.Result
}

// FieldEditedMsg is sent when the external editor exits.
type FieldEditedMsg struct {
	Field   Field
	Content string
	Err     error
}

// ExportDoneMsg reports the end of a PDF export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ToastDismissMsg is sent when the toast should be dismissed.
type ToastDismissMsg struct{}
