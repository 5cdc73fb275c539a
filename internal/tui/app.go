// Package tui is the terminal front end of the CV enhancer: a Bubble Tea
// program that drives a wizard.Controller through its three steps.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/cv-enhancer/internal/config"
	"github.com/mark3labs/cv-enhancer/internal/logger"
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
	"github.com/mark3labs/cv-enhancer/internal/wizard"
)

// Exporter writes the enhanced CV to a PDF. *export.Renderer satisfies it.
type Exporter interface {
	Export(ctx context.Context, html string) (string, error)
}

// Deps are the collaborators the UI drives.
type Deps struct {
	Submitter wizard.Submitter
	Exporter  Exporter
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	deps Deps
	ctl  *wizard.Controller

	jobStep    *InputStep
	cvStep     *InputStep
	resultStep *ResultStep

	buttonBar     *ButtonBar
	buttonFocused bool // True if buttons have focus (vs step content)

	spinner   Spinner
	toast     *Toast
	cancel    context.CancelFunc // Cancels the in-flight submission
	exporting bool

	width  int
	height int
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	applySettings(cfg)

	m := NewModel(ctx, deps)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	_, err := p.Run()
	m.cancelSubmission()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// applySettings applies the editor and theme settings before the program starts.
func applySettings(cfg *config.Config) {
	if cfg.Editor != "" {
		_ = os.Setenv("EDITOR", cfg.Editor)
	}
	if cfg.Theme != "" && !theme.Set(cfg.Theme) {
		logger.Warn("Unknown theme %q, keeping %s", cfg.Theme, theme.Current().Name)
	}
}

// NewModel creates the root model at the first step.
func NewModel(ctx context.Context, deps Deps) *Model {
	m := &Model{
		ctx:        ctx,
		deps:       deps,
		ctl:        wizard.New(),
		jobStep:    NewInputStep(FieldJobDescription),
		cvStep:     NewInputStep(FieldCV),
		resultStep: NewResultStep(),
		spinner:    NewDefaultSpinner(),
		toast:      NewToast(),
		width:      80,
		height:     24,
	}
	m.cvStep.Blur()
	m.rebuildButtons()
	return m
}

// Controller exposes the wizard state for inspection.
func (m *Model) Controller() *wizard.Controller {
	return m.ctl
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.jobStep.Init()
}

// Update handles messages for the app.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case SubmitStepMsg:
		return m, m.advance()

	case SubmissionResultMsg:
		return m, m.applyResult(msg.Result)

	case FieldEditedMsg:
		if msg.Err != nil {
			logger.Warn("External edit failed: %v", msg.Err)
			return m, m.toast.ShowError(msg.Err.Error())
		}
		content := strings.TrimRight(msg.Content, "\n")
		switch msg.Field {
		case FieldJobDescription:
			m.jobStep.SetValue(content)
		case FieldCV:
			m.cvStep.SetValue(content)
		}
		m.syncFields()
		return m, nil

	case ExportDoneMsg:
		m.exporting = false
		m.rebuildButtons()
		if msg.Err != nil {
			return m, m.toast.ShowError("PDF export failed: " + msg.Err.Error())
		}
		return m, m.toast.Show("Saved " + msg.Path)

	case ToastDismissMsg:
		return m, m.toast.Update(msg)

	case spinner.TickMsg:
		if m.ctl.State().Submitting {
			return m, m.spinner.Update(msg)
		}
		return m, nil
	}

	return m, m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.cancelSubmission()
		return m, tea.Quit
	}

	// Only cancellation is possible while a request is in flight
	if m.ctl.State().Submitting {
		if key == "esc" {
			m.cancelSubmission()
			if m.ctl.Cancel() {
				m.refreshErrors()
				m.rebuildButtons()
				return m, m.cvStep.Focus()
			}
		}
		return m, nil
	}

	if m.buttonFocused {
		switch key {
		case "tab", "right":
			if !m.buttonBar.FocusNext() {
				return m, m.focusContent()
			}
			return m, nil
		case "shift+tab", "left":
			if !m.buttonBar.FocusPrev() {
				return m, m.focusContent()
			}
			return m, nil
		case "enter", "space", " ":
			if id, ok := m.buttonBar.FocusedButton(); ok {
				return m, m.activate(id)
			}
			return m, nil
		}
	}

	switch key {
	case "esc":
		switch m.ctl.State().Step {
		case wizard.StepJobDescription:
			return m, tea.Quit
		case wizard.StepCV:
			return m, m.activate(ButtonBack)
		}
		return m, nil
	case "tab", "shift+tab":
		if m.buttonFocused {
			return m, nil
		}
		var ok bool
		if key == "tab" {
			ok = m.buttonBar.FocusFirst()
		} else {
			ok = m.buttonBar.FocusLast()
		}
		if ok {
			m.buttonFocused = true
			m.jobStep.Blur()
			m.cvStep.Blur()
		}
		return m, nil
	}

	if m.ctl.State().Step == wizard.StepResult {
		switch key {
		case "p":
			return m, m.activate(ButtonDownload)
		case "n":
			return m, m.activate(ButtonStartNew)
		}
	}

	if m.buttonFocused {
		return m, nil
	}
	return m, m.forward(msg)
}

// forward sends a message to the current step and mirrors input fields into
// the controller.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.ctl.State().Step {
	case wizard.StepJobDescription:
		cmd = m.jobStep.Update(msg)
	case wizard.StepCV:
		cmd = m.cvStep.Update(msg)
	case wizard.StepResult:
		cmd = m.resultStep.Update(msg)
	}
	m.syncFields()
	return cmd
}

func (m *Model) syncFields() {
	m.ctl.SetJobDescription(m.jobStep.Value())
	m.ctl.SetCV(m.cvStep.Value())
}

// activate runs the action behind a button.
func (m *Model) activate(id ButtonID) tea.Cmd {
	switch id {
	case ButtonNext, ButtonSubmit:
		return m.advance()

	case ButtonBack:
		if err := m.ctl.Retreat(); err != nil {
			logger.Debug("Back ignored: %v", err)
			return nil
		}
		m.refreshErrors()
		return m.enterStep()

	case ButtonDownload:
		return m.export()

	case ButtonStartNew:
		m.cancelSubmission()
		m.ctl.Reset()
		m.jobStep.SetValue("")
		m.cvStep.SetValue("")
		m.resultStep.SetContent("", "")
		m.resultStep.SetView(ViewPreview)
		m.refreshErrors()
		return m.enterStep()
	}
	return nil
}

// advance validates the current step and either moves on or starts the
// submission in the background.
func (m *Model) advance() tea.Cmd {
	m.syncFields()
	sub, err := m.ctl.Advance()
	m.refreshErrors()
	if err != nil {
		logger.Debug("Advance rejected: %v", err)
		return nil
	}
	if sub == nil {
		return m.enterStep()
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.buttonFocused = false
	m.cvStep.Blur()
	m.rebuildButtons()

	submitter := m.deps.Submitter
	return tea.Batch(
		m.spinner.Tick(),
		func() tea.Msg {
			return SubmissionResultMsg{Result: sub.Execute(ctx, submitter)}
		},
	)
}

func (m *Model) applyResult(r wizard.Result) tea.Cmd {
	if !m.ctl.Apply(r) {
		return nil
	}
	m.cancelSubmission()

	st := m.ctl.State()
	m.refreshErrors()
	if r.Err == nil {
		m.resultStep.SetContent(st.EnhancedResult, st.CV)
	}
	return m.enterStep()
}

func (m *Model) export() tea.Cmd {
	if m.exporting || m.deps.Exporter == nil {
		return nil
	}
	html := m.ctl.State().EnhancedResult
	m.exporting = true
	m.rebuildButtons()

	exporter := m.deps.Exporter
	ctx := m.ctx
	return func() tea.Msg {
		path, err := exporter.Export(ctx, html)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func (m *Model) cancelSubmission() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// enterStep resets focus for the current step and rebuilds the buttons.
func (m *Model) enterStep() tea.Cmd {
	m.buttonFocused = false
	m.rebuildButtons()
	m.updateSizes()

	switch m.ctl.State().Step {
	case wizard.StepJobDescription:
		m.cvStep.Blur()
		return m.jobStep.Focus()
	case wizard.StepCV:
		m.jobStep.Blur()
		return m.cvStep.Focus()
	default:
		m.jobStep.Blur()
		m.cvStep.Blur()
		return nil
	}
}

func (m *Model) focusContent() tea.Cmd {
	m.buttonFocused = false
	m.buttonBar.Blur()
	switch m.ctl.State().Step {
	case wizard.StepJobDescription:
		return m.jobStep.Focus()
	case wizard.StepCV:
		return m.cvStep.Focus()
	}
	return nil
}

// refreshErrors shows the controller's error under the active input.
func (m *Model) refreshErrors() {
	st := m.ctl.State()
	m.jobStep.SetError("")
	m.cvStep.SetError("")
	switch st.Step {
	case wizard.StepJobDescription:
		m.jobStep.SetError(st.ErrorMessage)
	case wizard.StepCV:
		m.cvStep.SetError(st.ErrorMessage)
	}
}

// rebuildButtons recreates the button bar for the current phase.
func (m *Model) rebuildButtons() {
	busy := !m.ctl.CanAdvance()
	switch m.ctl.Phase() {
	case wizard.PhaseJobDescription:
		m.buttonBar = NewButtonBar(
			Button{ID: ButtonBack, Label: "← Back", Disabled: true},
			Button{ID: ButtonNext, Label: "Next →", Disabled: busy},
		)
	case wizard.PhaseCV, wizard.PhaseSubmitting:
		m.buttonBar = NewButtonBar(
			Button{ID: ButtonBack, Label: "← Back", Disabled: !m.ctl.CanRetreat()},
			Button{ID: ButtonSubmit, Label: "Submit", Disabled: busy},
		)
	default:
		m.buttonBar = NewButtonBar(
			Button{ID: ButtonDownload, Label: "Download PDF", Disabled: m.exporting || m.deps.Exporter == nil},
			Button{ID: ButtonStartNew, Label: "Start New"},
		)
	}
	m.buttonBar.SetWidth(m.contentWidth())
}

// Buttons returns the current button bar.
func (m *Model) Buttons() *ButtonBar {
	return m.buttonBar
}

func (m *Model) contentWidth() int {
	w := m.width - 10
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m *Model) updateSizes() {
	w := m.contentWidth()
	h := m.height - 12
	if h < 8 {
		h = 8
	}
	m.jobStep.SetSize(w, h)
	m.cvStep.SetSize(w, h)
	m.resultStep.SetSize(w, h)
	m.buttonBar.SetWidth(w)
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := lipgloss.Place(m.width, m.height-1,
		lipgloss.Center, lipgloss.Center,
		m.renderModal(),
	)
	if toast := m.toast.View(m.width); toast != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, toast)
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderModal draws the stepper, the step body, the buttons and the hints.
func (m *Model) renderModal() string {
	s := theme.Current().S()
	th := theme.Current()
	st := m.ctl.State()

	sections := []string{
		theme.Gradient("CV Enhancer", th.Primary, th.Secondary),
		m.renderStepper(st.Step),
		"",
	}

	var hints string
	switch m.ctl.Phase() {
	case wizard.PhaseJobDescription:
		sections = append(sections, m.jobStep.View())
		hints = HintJobDescription()
	case wizard.PhaseCV:
		sections = append(sections, m.cvStep.View())
		hints = HintCV()
	case wizard.PhaseSubmitting:
		sections = append(sections, lipgloss.NewStyle().
			Width(m.contentWidth()).
			Height(6).
			AlignHorizontal(lipgloss.Center).
			AlignVertical(lipgloss.Center).
			Foreground(lipgloss.Color(th.FgMuted)).
			Render(m.spinner.View()+" "+SubmittingText))
		hints = HintSubmitting()
	default:
		sections = append(sections, m.resultStep.View())
		hints = HintResult()
	}

	sections = append(sections, "", m.buttonBar.Render(), "", hints)
	return s.ModalContainer.Width(m.contentWidth() + 6).Render(strings.Join(sections, "\n"))
}

func (m *Model) renderStepper(active int) string {
	s := theme.Current().S()
	parts := make([]string, 0, len(wizard.StepLabels)*2)
	for i, label := range wizard.StepLabels {
		if i > 0 {
			parts = append(parts, s.StepSeparator.Render(" ─ "))
		}
		text := fmt.Sprintf("%d. %s", i+1, label)
		switch {
		case i == active:
			parts = append(parts, s.StepActive.Render(text))
		case i < active:
			parts = append(parts, s.StepDone.Render("✓ "+label))
		default:
			parts = append(parts, s.StepPending.Render(text))
		}
	}
	return strings.Join(parts, "")
}
