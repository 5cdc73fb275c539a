package wizard

import "errors"

// Sentinel errors for navigation that the current phase does not allow.
var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrAtFirstStep        = errors.New("already at the first step")
	ErrTerminalStep       = errors.New("the results step only supports starting over")
)

// ValidationError reports a required field that was blank when advancing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
