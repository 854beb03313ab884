// Package api is the gateway to the job board REST API. Every call goes
// through Client.Do, which attaches the current bearer token and turns
// failures into *errors.RequestError values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "greenjobs/internal/errors"
)

// DefaultResponseLimit caps the size of a response body.
const DefaultResponseLimit int64 = 32 << 20

// TokenSource yields the bearer token for the next request. An empty
// string means the request is sent without authorization.
type TokenSource interface {
	Token() string
}

// Request describes a single API call. Path is relative to the client's
// base address. Query values that are empty are not sent.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   any
}

// Client issues requests against one base address.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  *log.Logger
	maxBody int64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger enables logging of failed calls.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithResponseLimit sets the largest response body the client accepts.
func WithResponseLimit(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// NewClient builds a client for baseURL. tokens may be nil for clients
// that only call public endpoints.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
		maxBody: DefaultResponseLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(path string, query map[string]string) string {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	q := url.Values{}
	for k, v := range query {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	return target
}

// Do executes r. On success the JSON payload, if any, is decoded into out.
// A 204 response or a body that is not JSON leaves out untouched. A body
// over the response limit fails with errors.ErrResponseTooLarge. Any
// failure status yields a *errors.RequestError.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.endpoint(r.Path, r.Query)

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, r.Path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, r.Path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logf("[API] %s %s transport error: %v", method, r.Path, err)
		return apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	tooLarge := int64(len(raw)) > c.maxBody
	if readErr != nil || tooLarge || !json.Valid(raw) {
		raw = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &apperrors.RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    failureMessage(raw, resp),
		}
		c.logf("[API] %s %s status=%d detail=%q", method, r.Path, resp.StatusCode, reqErr.Message)
		return reqErr
	}

	if readErr != nil {
		c.logf("[API] %s %s read error: %v", method, r.Path, readErr)
		return fmt.Errorf("read %s %s response: %w", method, r.Path, readErr)
	}
	if tooLarge {
		c.logf("[API] %s %s response over %d bytes", method, r.Path, c.maxBody)
		return fmt.Errorf("%s %s: %w", method, r.Path, apperrors.ErrResponseTooLarge)
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, r.Path, err)
	}
	return nil
}

// failureMessage picks the most specific message available: the payload's
// detail, then its message, then the status text, then a generic string.
func failureMessage(raw []byte, resp *http.Response) string {
	if raw != nil {
		var payload map[string]json.RawMessage
		if json.Unmarshal(raw, &payload) == nil {
			if msg := fieldMessage(payload["detail"]); msg != "" {
				return msg
			}
			if msg := fieldMessage(payload["message"]); msg != "" {
				return msg
			}
		}
	}
	if text := statusText(resp); text != "" {
		return text
	}
	return apperrors.GenericMessage
}

// fieldMessage returns a string field as is. Structured values such as
// validation error lists are returned in their JSON form.
func fieldMessage(v json.RawMessage) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(v)
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

