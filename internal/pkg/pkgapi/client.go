package pkgapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkglog"
)

const (
	// DefaultRoot is the API root used when no base URL is configured.
	DefaultRoot = "/api"

	maxBodyBytes = 1 << 20
)

// Request describes one call to the upstream API. Path is relative to the
// client's base URL.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

// Doer performs a request and unwraps the envelope.
type Doer interface {
	Do(ctx context.Context, req Request) Result[json.RawMessage]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout of the underlying *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// Client talks to the upstream API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client rooted at baseURL (DefaultRoot when empty).
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultRoot
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL returns the absolute URL for an API path.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Do sends the request and unwraps the response envelope.
//
// A non-2xx response never succeeds: its envelope error is returned when one
// is present, REQUEST.DID_NOT_SUCCEED otherwise.
func (c *Client) Do(ctx context.Context, req Request) Result[json.RawMessage] {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.URL(req.Path)

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encode upstream request body", "method", method, "url", url, "error", err)
			return Err[json.RawMessage](DidNotSucceed())
		}
		body = bytes.NewReader(encoded)
	}

	hreq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build upstream request", "method", method, "url", url, "error", err)
		return Err[json.RawMessage](DidNotSucceed())
	}

	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	for key, values := range req.Header {
		for _, v := range values {
			hreq.Header.Add(key, v)
		}
	}
	if cid, ok := pkglog.LookupCorrelationID(ctx); ok {
		hreq.Header.Set(pkglog.HeaderCorrelationID, cid)
	}

	resp, err := c.http.Do(hreq)
	if err != nil {
		slog.WarnContext(ctx, "upstream request failed", "method", method, "url", url, "error", err)
		return Err[json.RawMessage](DidNotSucceed())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		slog.WarnContext(ctx, "failed to read upstream response", "method", method, "url", url, "error", err)
		return Err[json.RawMessage](DidNotSucceed())
	}

	var env Envelope[json.RawMessage]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.WarnContext(ctx, "upstream rejected request", "method", method, "url", url, "status", resp.StatusCode)
		if decodeErr == nil && env.Error != nil && len(env.Error.Detail) > 0 {
			return Err[json.RawMessage](*env.Error)
		}
		return Err[json.RawMessage](DidNotSucceed())
	}

	if decodeErr != nil {
		slog.WarnContext(ctx, "upstream answered with a malformed envelope", "method", method, "url", url, "error", decodeErr)
		return Err[json.RawMessage](DidNotSucceed())
	}

	return env.Result()
}

// Get performs a GET and decodes the envelope data into T.
func Get[T any](ctx context.Context, d Doer, path string) Result[T] {
	return Decode[T](d.Do(ctx, Request{Method: http.MethodGet, Path: path}))
}

// Post performs a POST with a JSON body and decodes the envelope data into T.
// Use struct{} for endpoints that return no data.
func Post[T any](ctx context.Context, d Doer, path string, body any) Result[T] {
	return Decode[T](d.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}))
}

// Decode converts raw envelope data into T. Absent or null data decodes to
// the zero value; undecodable data becomes REQUEST.DID_NOT_SUCCEED.
func Decode[T any](r Result[json.RawMessage]) Result[T] {
	return Map(r, func(raw json.RawMessage) (T, bool) {
		var v T
		if len(raw) == 0 || string(raw) == "null" {
			return v, true
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return v, false
		}
		return v, true
	})
}
