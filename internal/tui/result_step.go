package tui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/cv-enhancer/internal/tui/theme"
)

// ResultView selects how the enhanced CV is shown.
type ResultView int

const (
	ViewPreview ResultView = iota // Rendered Markdown
	ViewSource                    // Highlighted HTML
	ViewChanges                   // Diff against the submitted CV
)

var resultViewNames = [...]string{"Preview", "HTML", "Changes"}

// String returns the tab label.
func (v ResultView) String() string {
	if v < 0 || int(v) >= len(resultViewNames) {
		return "unknown"
	}
	return resultViewNames[v]
}

// ResultStep shows the enhanced CV in a scrollable viewport.
type ResultStep struct {
	viewport   viewport.Model
	html       string
	originalCV string
	view       ResultView
	width      int
	height     int
}

// NewResultStep creates an empty result step.
func NewResultStep() *ResultStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &ResultStep{viewport: vp, width: 60, height: 12}
}

// SetContent replaces the result and re-renders the current view.
func (r *ResultStep) SetContent(html, originalCV string) {
	r.html = html
	r.originalCV = originalCV
	r.refresh()
	r.viewport.GotoTop()
}

// SetView switches the view and scrolls to the top.
func (r *ResultStep) SetView(v ResultView) {
	if v < ViewPreview || v > ViewChanges {
		return
	}
	r.view = v
	r.refresh()
	r.viewport.GotoTop()
}

// CurrentView returns the active view.
func (r *ResultStep) CurrentView() ResultView {
	return r.view
}

// Content returns the rendered text of the active view.
func (r *ResultStep) Content() string {
	return r.viewport.GetContent()
}

func (r *ResultStep) refresh() {
	if r.html == "" {
		r.viewport.SetContent("")
		return
	}
	var content string
	switch r.view {
	case ViewSource:
		content = highlightHTML(r.html)
	case ViewChanges:
		content = renderChanges(r.originalCV, r.html)
	default:
		content = RenderPreview(r.html, r.viewport.Width())
	}
	r.viewport.SetContent(content)
}

// Update handles view switching and scrolling.
func (r *ResultStep) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "v":
			r.SetView((r.view + 1) % (ViewChanges + 1))
			return nil
		case "1":
			r.SetView(ViewPreview)
			return nil
		case "2":
			r.SetView(ViewSource)
			return nil
		case "3":
			r.SetView(ViewChanges)
			return nil
		}
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return cmd
}

// View renders the tabs and the viewport.
func (r *ResultStep) View() string {
	s := theme.Current().S()

	tabs := make([]string, 0, len(resultViewNames))
	for i, name := range resultViewNames {
		if ResultView(i) == r.view {
			tabs = append(tabs, s.TabActive.Render(name))
		} else {
			tabs = append(tabs, s.TabInactive.Render(name))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, "  "),
		"",
		r.viewport.View(),
	)
}

// SetSize updates the viewport to fit below the tabs.
func (r *ResultStep) SetSize(width, height int) {
	r.width = width
	r.height = height

	r.viewport.SetWidth(width)
	h := height - 2
	if h < 3 {
		h = 3
	}
	r.viewport.SetHeight(h)
	r.refresh()
}
