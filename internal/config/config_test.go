package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range []string{
		"CV_ENHANCER_ENDPOINT", "CV_ENHANCER_OUTPUT_DIR", "CV_ENHANCER_OUTPUT_NAME",
		"CV_ENHANCER_CHROME_PATH", "CHROME_PATH", "CV_ENHANCER_RENDER_TIMEOUT",
		"CV_ENHANCER_LOG_LEVEL", "CV_ENHANCER_LOG_FILE", "CV_ENHANCER_EDITOR",
		"CV_ENHANCER_THEME",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/cv-enhancer/cv-enhancer.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	assert.Equal(t, "cv-enhancer.yml", filepath.Base(got))
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "cv-enhancer.yml", ProjectPath())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, DefaultOutputName, cfg.OutputName)
	assert.Equal(t, 60*time.Second, cfg.RenderTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.False(t, Exists())
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Default()
	global.Endpoint = "http://global.example/enhance-cv"
	global.LogLevel = "warn"
	require.NoError(t, WriteGlobal(global))

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("endpoint: http://project.example/enhance-cv\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://project.example/enhance-cv", cfg.Endpoint)
	assert.Equal(t, "warn", cfg.LogLevel, "global value should survive the project merge")
	assert.True(t, Exists())
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("endpoint: http://project.example/enhance-cv\n"), 0644))
	t.Setenv("CV_ENHANCER_ENDPOINT", "http://env.example/enhance-cv")
	t.Setenv("CV_ENHANCER_RENDER_TIMEOUT", "15s")
	t.Setenv("CV_ENHANCER_THEME", "high-contrast")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/enhance-cv", cfg.Endpoint)
	assert.Equal(t, 15*time.Second, cfg.RenderTimeout)
	assert.Equal(t, "high-contrast", cfg.Theme)
}

func TestLoad_ChromePathFallback(t *testing.T) {
	isolate(t)
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
}

func TestLoad_InvalidEndpoint(t *testing.T) {
	isolate(t)
	t.Setenv("CV_ENHANCER_ENDPOINT", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "missing endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.RenderTimeout = 0 }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "empty level", mutate: func(c *Config) { c.LogLevel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = "/tmp/out"
	assert.Equal(t, "/tmp/out/enhanced-cv.pdf", cfg.OutputPath())

	cfg.OutputName = "My CV for ACME"
	assert.Equal(t, "/tmp/out/my-cv-for-acme.pdf", cfg.OutputPath())

	cfg.OutputName = "   "
	assert.Equal(t, "/tmp/out/enhanced-cv.pdf", cfg.OutputPath())
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Endpoint = "https://enhancer.internal/enhance-cv"
	cfg.LogFile = "/tmp/cv-enhancer.log"
	require.NoError(t, WriteProject(cfg))

	data, err := os.ReadFile(ProjectPath())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "endpoint: https://enhancer.internal/enhance-cv")
	assert.Contains(t, content, "log_file: /tmp/cv-enhancer.log")
	assert.NotContains(t, content, "chrome_path", "empty optional keys are omitted")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Endpoint, loaded.Endpoint)
	assert.Equal(t, cfg.RenderTimeout, loaded.RenderTimeout)
}
