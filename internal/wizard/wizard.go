// Package wizard implements the three-step CV enhancement flow as a state
// machine: job description, CV, enhanced result.
//
// The Controller is the only writer of State. Submission work runs elsewhere
// and reports back through Apply, which discards results from superseded
// generations.
package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/cv-enhancer/internal/enhance"
	"github.com/mark3labs/cv-enhancer/internal/logger"
)

// Step enumeration for the wizard flow
const (
	StepJobDescription = 0 // Job description input
	StepCV             = 1 // CV input, submits on advance
	StepResult         = 2 // Enhanced result with export/reset
)

// StepLabels are the user-facing step names, indexed by step.
var StepLabels = [...]string{"Job Description", "Your CV", "Enhanced Results"}

// Validation messages shown inline when a required field is blank.
const (
	MsgJobDescriptionRequired = "Please enter a job description"
	MsgCVRequired             = "Please enter your CV"
	MsgSubmissionCancelled    = "Submission cancelled"
)

// Phase is the state-machine view of a State.
type Phase int

const (
	PhaseJobDescription Phase = iota
	PhaseCV
	PhaseSubmitting
	PhaseResult
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseJobDescription:
		return "job-description"
	case PhaseCV:
		return "cv"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// State holds everything the wizard knows for one session.
type State struct {
	Step           int
	JobDescription string
	CV             string
	EnhancedResult string // HTML markup as returned by the backend
	Submitting     bool
	ErrorMessage   string
	Generation     uint64 // Bumped on every submission start, cancel and reset
}

// Submitter sends one enhancement request. *enhance.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, req enhance.Request) (string, error)
}

// Submission is the ticket for one in-flight request.
type Submission struct {
	Generation uint64
	Request    enhance.Request
}

// Result is the outcome of a Submission. A nil Err means success.
type Result struct {
	Generation uint64
	HTML       string
	Err        error
}

// Execute performs the request. It only reads the ticket, so it is safe to run
// off the goroutine that owns the Controller.
func (s *Submission) Execute(ctx context.Context, sub Submitter) Result {
	html, err := sub.Submit(ctx, s.Request)
	return Result{Generation: s.Generation, HTML: html, Err: err}
}

// Controller owns a State and enforces the transitions between steps.
type Controller struct {
	state State
}

// New creates a controller at the first step with empty fields.
func New() *Controller {
	return &Controller{}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Phase returns the current state-machine phase.
func (c *Controller) Phase() Phase {
	switch {
	case c.state.Submitting:
		return PhaseSubmitting
	case c.state.Step == StepJobDescription:
		return PhaseJobDescription
	case c.state.Step == StepCV:
		return PhaseCV
	default:
		return PhaseResult
	}
}

// SetJobDescription replaces the job description. Allowed at any step.
func (c *Controller) SetJobDescription(s string) {
	c.state.JobDescription = s
}

// SetCV replaces the CV text. Allowed at any step.
func (c *Controller) SetCV(s string) {
	c.state.CV = s
}

// CanAdvance reports whether Advance may change anything right now.
func (c *Controller) CanAdvance() bool {
	return !c.state.Submitting && c.state.Step < StepResult
}

// CanRetreat reports whether Retreat is allowed.
func (c *Controller) CanRetreat() bool {
	return !c.state.Submitting && c.state.Step == StepCV
}

// Advance validates the current step and moves forward. On the CV step it
// starts a submission instead and returns its ticket; the step only changes
// once Apply receives a successful Result for that ticket.
func (c *Controller) Advance() (*Submission, error) {
	if c.state.Submitting {
		return nil, ErrSubmissionInFlight
	}

	switch c.state.Step {
	case StepJobDescription:
		if isBlank(c.state.JobDescription) {
			return nil, c.fail("job_description", MsgJobDescriptionRequired)
		}
		c.state.ErrorMessage = ""
		c.state.Step = StepCV
		logger.Debug("Wizard advanced to step %d", c.state.Step)
		return nil, nil

	case StepCV:
		if isBlank(c.state.CV) {
			return nil, c.fail("cv", MsgCVRequired)
		}
		c.state.ErrorMessage = ""
		c.state.Submitting = true
		c.state.Generation++
		logger.Info("Starting submission generation %d", c.state.Generation)
		return &Submission{
			Generation: c.state.Generation,
			Request: enhance.Request{
				JobDescription: c.state.JobDescription,
				CV:             c.state.CV,
			},
		}, nil

	default:
		return nil, ErrTerminalStep
	}
}

// Apply records the outcome of a submission. Results for a generation other
// than the one in flight are dropped and Apply returns false.
func (c *Controller) Apply(r Result) bool {
	if !c.state.Submitting || r.Generation != c.state.Generation {
		logger.Debug("Discarding stale result for generation %d (current %d, submitting=%t)",
			r.Generation, c.state.Generation, c.state.Submitting)
		return false
	}

	c.state.Submitting = false
	if r.Err != nil {
		logger.Warn("Submission generation %d failed: %v", r.Generation, r.Err)
		c.state.Step = StepCV
		c.state.ErrorMessage = fmt.Sprintf("Error processing your request: %v", r.Err)
		return true
	}

	logger.Info("Submission generation %d succeeded (%d bytes)", r.Generation, len(r.HTML))
	c.state.EnhancedResult = r.HTML
	c.state.ErrorMessage = ""
	c.state.Step = StepResult
	return true
}

// Retreat moves from the CV step back to the job description step.
func (c *Controller) Retreat() error {
	if c.state.Submitting {
		return ErrSubmissionInFlight
	}
	switch c.state.Step {
	case StepJobDescription:
		return ErrAtFirstStep
	case StepResult:
		return ErrTerminalStep
	}
	c.state.Step--
	c.state.ErrorMessage = ""
	return nil
}

// Cancel abandons the in-flight submission. The wizard stays on the CV step
// with its text intact, and the eventual result is treated as stale.
func (c *Controller) Cancel() bool {
	if !c.state.Submitting {
		return false
	}
	c.state.Submitting = false
	c.state.Generation++
	c.state.Step = StepCV
	c.state.ErrorMessage = MsgSubmissionCancelled
	logger.Info("Submission cancelled, generation now %d", c.state.Generation)
	return true
}

// Reset returns to the first step with every field cleared, whatever the
// current step. The generation survives so late results stay stale.
func (c *Controller) Reset() {
	c.state = State{Generation: c.state.Generation + 1}
	logger.Debug("Wizard reset, generation now %d", c.state.Generation)
}

func (c *Controller) fail(field, msg string) error {
	c.state.ErrorMessage = msg
	return &ValidationError{Field: field, Message: msg}
}

// isBlank treats whitespace-only text as missing input.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
