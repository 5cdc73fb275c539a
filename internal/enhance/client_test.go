package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SubmitSuccess(t *testing.T) {
	var got Request
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"enhanced_cv": "<p>Distributed systems engineer: Go, Kubernetes</p>",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	html, err := c.Submit(context.Background(), Request{
		JobDescription: "Backend Engineer, Go, Kubernetes",
		CV:             "5 years experience in distributed systems",
	})
	require.NoError(t, err)

	assert.Equal(t, "<p>Distributed systems engineer: Go, Kubernetes</p>", html)
	assert.Equal(t, "Backend Engineer, Go, Kubernetes", got.JobDescription)
	assert.Equal(t, "5 years experience in distributed systems", got.CV)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
}

func TestClient_SubmitWireFormat(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"enhanced_cv":"<h1>CV</h1>"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), Request{JobDescription: "jd", CV: "cv"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"job_description": "jd", "cv": "cv"}, raw)
}

func TestClient_SubmitHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantSubstr []string
	}{
		{
			name:       "fastapi detail",
			status:     http.StatusInternalServerError,
			body:       `{"detail":"upstream model unavailable"}`,
			wantSubstr: []string{"500", "upstream model unavailable"},
		},
		{
			name:       "plain body",
			status:     http.StatusBadGateway,
			body:       "bad gateway",
			wantSubstr: []string{"502", "bad gateway"},
		},
		{
			name:       "empty body",
			status:     http.StatusUnprocessableEntity,
			wantSubstr: []string{"HTTP 422"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Submit(context.Background(), Request{JobDescription: "jd", CV: "cv"})
			require.Error(t, err)

			var subErr *SubmissionError
			require.True(t, errors.As(err, &subErr))
			assert.Equal(t, tt.status, subErr.StatusCode)
			for _, s := range tt.wantSubstr {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestClient_SubmitEmptyResultSucceeds(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty field", body: `{"enhanced_cv":""}`, want: ""},
		{name: "blank field", body: `{"enhanced_cv":"   "}`, want: "   "},
		{name: "missing field", body: `{"something":"else"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewClient(srv.URL).Submit(context.Background(), Request{JobDescription: "jd", CV: "cv"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_SubmitUndecodableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), Request{JobDescription: "jd", CV: "cv"})
	require.Error(t, err)
	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Zero(t, subErr.StatusCode)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_SubmitTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Submit(context.Background(), Request{JobDescription: "jd", CV: "cv"})
	require.Error(t, err)
	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Zero(t, subErr.StatusCode)
	assert.NotEmpty(t, err.Error())
}

func TestClient_SubmitCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).Submit(ctx, Request{JobDescription: "jd", CV: "cv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_SubmitRejectsEmptyFields(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), Request{JobDescription: "jd"})
	require.Error(t, err)
	assert.False(t, called, "invalid requests must not reach the network")
}

func TestSubmissionError_Message(t *testing.T) {
	assert.Equal(t, "enhancement service returned HTTP 500", (&SubmissionError{StatusCode: 500}).Error())
	assert.Equal(t, "enhancement request failed", (&SubmissionError{}).Error())
	assert.Equal(t, "boom", (&SubmissionError{Err: errors.New("boom")}).Error())
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{}
	c := NewClient("http://localhost:8000/enhance-cv", WithHTTPClient(hc))
	assert.Same(t, hc, c.httpClient)
	assert.Equal(t, "http://localhost:8000/enhance-cv", c.Endpoint())
}
