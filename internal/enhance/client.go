// Package enhance is the client for the remote CV enhancement service.
package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mark3labs/cv-enhancer/internal/logger"
)

// maxErrorBody caps how much of a failed response body is read for diagnostics.
const maxErrorBody = 4 << 10

// Request is the body sent to the enhancement endpoint.
type Request struct {
	JobDescription string `json:"job_description" validate:"required"`
	CV             string `json:"cv" validate:"required"`
}

// Response is the body returned on success.
type Response struct {
	EnhancedCV string `json:"enhanced_cv"`
}

// errorResponse matches the {"detail": "..."} body FastAPI sends with errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Client posts requests to one enhancement endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	validate   *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for endpoint. No timeout is set on the default
// HTTP client; callers bound a request through its context.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends one request and returns the enhanced HTML markup. Any decodable
// 2xx body succeeds, even when enhanced_cv is empty or missing. Every failure
// is a *SubmissionError. There are no retries.
func (c *Client) Submit(ctx context.Context, req Request) (string, error) {
	if err := c.validate.Struct(req); err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("invalid request: %w", err)}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("encoding request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("building request: %w", err)}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	logger.Debug("POST %s (request %s, %d bytes)", c.endpoint, requestID, len(body))
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", &SubmissionError{Err: context.Canceled}
		}
		return "", &SubmissionError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &SubmissionError{
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	logger.Debug("Request %s returned %d bytes of markup", requestID, len(out.EnhancedCV))
	return out.EnhancedCV, nil
}

// readDetail extracts a human readable reason from an error body.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var er errorResponse
	if json.Unmarshal(data, &er) == nil && er.Detail != "" {
		return er.Detail
	}
	return strings.TrimSpace(string(data))
}
