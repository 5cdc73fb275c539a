package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatppuccinMocha_ColorPalette(t *testing.T) {
	th := NewCatppuccinMocha()
	require.Equal(t, "catppuccin-mocha", th.Name)
	assert.True(t, th.IsDark)

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Secondary (Blue)", th.Secondary, "#89b4fa"},
		{"Tertiary (Lavender)", th.Tertiary, "#b4befe"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"BgMantle", th.BgMantle, "#181825"},
		{"BgSurface0", th.BgSurface0, "#313244"},
		{"FgMuted (Subtext0)", th.FgMuted, "#a6adc8"},
		{"FgBase (Text)", th.FgBase, "#cdd6f4"},
		{"Success (Green)", th.Success, "#a6e3a1"},
		{"Warning (Yellow)", th.Warning, "#f9e2af"},
		{"Error (Red)", th.Error, "#f38ba8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestCurrent_DefaultTheme(t *testing.T) {
	assert.Equal(t, "catppuccin-mocha", Current().Name)
}

func TestSet(t *testing.T) {
	assert.False(t, Set("solarized"))
	assert.Equal(t, "catppuccin-mocha", Current().Name)

	assert.True(t, Set("catppuccin-mocha"))
	assert.Equal(t, "catppuccin-mocha", Current().Name)
}

func TestStyles_LazyAndStable(t *testing.T) {
	th := NewCatppuccinMocha()
	s1 := th.S()
	s2 := th.S()
	assert.Same(t, s1, s2)
	assert.Contains(t, s1.ButtonNormal.Render("Next"), "Next")
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	assert.Equal(t, uint8(0xcb), r)
	assert.Equal(t, uint8(0xa6), g)
	assert.Equal(t, uint8(0xf7), b)

	r, g, b = ParseHexColor("nope")
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	assert.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 3))
}

func TestGradient(t *testing.T) {
	assert.Empty(t, Gradient("", "#000000", "#ffffff"))
	assert.Contains(t, Gradient("C", "#000000", "#ffffff"), "C")
}
