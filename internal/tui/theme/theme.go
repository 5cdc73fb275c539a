package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Borders
	BorderDefault string
	BorderFocused string

	// Diff colors
	DiffInsertFg string
	DiffDeleteFg string
	DiffHunkFg   string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	registry = map[string]func() *Theme{
		"catppuccin-mocha": NewCatppuccinMocha,
	}
	currentMu sync.RWMutex
	current   = NewCatppuccinMocha()
)

// Current returns the active theme.
func Current() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// Set switches the active theme by name. Unknown names leave the theme
// unchanged and return false.
func Set(name string) bool {
	ctor, ok := registry[name]
	if !ok {
		return false
	}
	currentMu.Lock()
	current = ctor()
	currentMu.Unlock()
	return true
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),

		StepActive: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Primary)).
			Bold(true).
			Padding(0, 1),
		StepDone: lipgloss.NewStyle().
			Foreground(c(t.Success)).
			Padding(0, 1),
		StepPending: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Padding(0, 1),
		StepSeparator: lipgloss.NewStyle().
			Foreground(c(t.BgSurface2)),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderFocused)).
			Background(c(t.BgBase)).
			Padding(1, 2),

		InputBox: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderDefault)),
		InputBoxFocused: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderFocused)),

		Label: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(c(t.Error)).
			Bold(true),

		ButtonNormal: button.
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(c(t.BgOverlay)).
			Background(c(t.BgMantle)),
		ButtonFocused: button.
			Foreground(c(t.BgBase)).
			Background(c(t.Tertiary)).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(c(t.BgSurface2)),

		TabActive: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true).
			Underline(true),
		TabInactive: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),

		DiffInsert: lipgloss.NewStyle().Foreground(c(t.DiffInsertFg)),
		DiffDelete: lipgloss.NewStyle().Foreground(c(t.DiffDeleteFg)),
		DiffHunk:   lipgloss.NewStyle().Foreground(c(t.DiffHunkFg)),

		Toast: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Success)).
			Padding(0, 1).
			Bold(true),
		ToastError: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Error)).
			Padding(0, 1).
			Bold(true),
	}
}
