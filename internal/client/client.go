// Package client talks to the HR backend API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hrms-portal/internal/workflow"
)

const maxResponseBytes = 8 << 20

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds every request, including the wait for the limiter.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithToken supplies the bearer token for each request.
func WithToken(token func() string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	token   func() string
	log     *slog.Logger
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: 15 * time.Second,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		token:   func() string { return "" },
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "client")
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(op, method, path string, payload any) (request, error) {
	r := request{op: op, method: method, path: path}
	if payload == nil {
		return r, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return r, fmt.Errorf("encode %s payload: %w", op, err)
	}
	r.body = bytes.NewReader(data)
	r.contentType = "application/json"
	return r, nil
}

// do sends the request and decodes a successful body into out. A no-content
// success leaves out untouched and returns nil. A *string out receives the
// raw body text.
func (c *Client) do(ctx context.Context, r request, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return &workflow.TransportError{Op: r.op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.base+r.path, r.body)
	if err != nil {
		return &workflow.TransportError{Op: r.op, Err: err}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json, text/plain")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", r.op, "error", err)
		return &workflow.TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &workflow.TransportError{Op: r.op, Err: fmt.Errorf("read response: %w", err)}
	}
	c.log.Debug("request done", "op", r.op, "method", r.method, "path", r.path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return &workflow.BackendError{Op: r.op, Status: resp.StatusCode, Payload: workflow.ErrorPayload{Raw: body}}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if s, ok := out.(*string); ok {
		*s = decodeText(body)
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &workflow.TransportError{Op: r.op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeText accepts both a bare text body and a JSON string.
func decodeText(body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(body))
}

// IsStatus reports whether err is a backend rejection with the given status.
func IsStatus(err error, status int) bool {
	var be *workflow.BackendError
	return errors.As(err, &be) && be.Status == status
}
