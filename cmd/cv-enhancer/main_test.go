package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/cv-enhancer/internal/enhance"
	"github.com/mark3labs/cv-enhancer/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhanceOnce_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req enhance.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Backend Engineer, Go, Kubernetes", req.JobDescription)
		assert.Equal(t, "5 years Go experience", req.CV)
		_ = json.NewEncoder(w).Encode(enhance.Response{EnhancedCV: "<p>...Go, Kubernetes...</p>"})
	}))
	defer srv.Close()

	html, err := enhanceOnce(context.Background(), enhance.NewClient(srv.URL),
		"Backend Engineer, Go, Kubernetes", "5 years Go experience")
	require.NoError(t, err)
	assert.Equal(t, "<p>...Go, Kubernetes...</p>", html)
}

func TestEnhanceOnce_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := enhanceOnce(context.Background(), enhance.NewClient(srv.URL), "job", "cv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error processing your request")
	assert.Contains(t, err.Error(), "500")

	var serr *enhance.SubmissionError
	assert.ErrorAs(t, err, &serr)
}

func TestEnhanceOnce_Validation(t *testing.T) {
	_, err := enhanceOnce(context.Background(), enhance.NewClient("http://127.0.0.1:1"), "  ", "cv")
	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "job_description", verr.Field)

	_, err = enhanceOnce(context.Background(), enhance.NewClient("http://127.0.0.1:1"), "job", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, wizard.MsgCVRequired, verr.Message)
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("Backend Engineer"), 0644))

	got, err := readInput(strings.NewReader("unused"), path)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got)

	got, err = readInput(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = readInput(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSetupCommand_WritesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	setupFlags.project = true
	setupFlags.force = false
	t.Cleanup(func() { setupFlags.project, setupFlags.force = false, false })

	require.NoError(t, runSetup(setupCmd, nil))
	data, err := os.ReadFile(filepath.Join(dir, "cv-enhancer.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "endpoint: http://localhost:8000/enhance-cv")

	err = runSetup(setupCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	setupFlags.force = true
	assert.NoError(t, runSetup(setupCmd, nil))
}

func TestSetupHint(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	assert.Contains(t, setupHint(), "cv-enhancer setup")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cv-enhancer.yml"), []byte("endpoint: http://localhost:8000/enhance-cv\n"), 0644))
	assert.Empty(t, setupHint())
}

func TestRootCommand_Wiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["enhance"])
	assert.True(t, names["export"])
	assert.True(t, names["setup"])

	for flag := range flagKeys {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}
