package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputStep_CtrlDSubmits(t *testing.T) {
	s := NewInputStep(FieldJobDescription)
	cmd := s.Update(keyCtrlD)
	require.NotNil(t, cmd)
	assert.IsType(t, SubmitStepMsg{}, cmd())
}

func TestInputStep_Typing(t *testing.T) {
	s := NewInputStep(FieldCV)
	assert.True(t, s.Focused())

	s.Update(tea.PasteMsg{Content: "5 years Go experience"})
	assert.Equal(t, "5 years Go experience", s.Value())
	assert.Equal(t, FieldCV, s.Field())
}

func TestInputStep_BlurredIgnoresInput(t *testing.T) {
	s := NewInputStep(FieldCV)
	s.Blur()
	s.Update(tea.PasteMsg{Content: "ignored"})
	assert.Empty(t, s.Value())
}

func TestInputStep_ErrorRendering(t *testing.T) {
	s := NewInputStep(FieldJobDescription)
	assert.NotContains(t, s.View(), "✗")

	s.SetError("Please enter a job description")
	assert.Equal(t, "Please enter a job description", s.Error())
	assert.Contains(t, s.View(), "Please enter a job description")

	s.SetError("")
	assert.NotContains(t, s.View(), "✗")
}

func TestInputStep_Labels(t *testing.T) {
	assert.Contains(t, NewInputStep(FieldJobDescription).View(), "job description")
	assert.Contains(t, NewInputStep(FieldCV).View(), "CV")
}

func TestInputStep_CtrlEKeepsValueUntilEditorReturns(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("EDITOR", "true")
	s := NewInputStep(FieldCV)
	s.SetValue("draft")

	_ = s.Update(tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl})
	assert.Equal(t, "draft", s.Value())
}

func TestInputStep_SetSizeClamps(t *testing.T) {
	s := NewInputStep(FieldCV)
	s.SetSize(10, 5)
	assert.GreaterOrEqual(t, s.textarea.Width(), 20)
	assert.GreaterOrEqual(t, s.textarea.Height(), 4)
}
