// Package httpapi is the network implementation of the api facade: a thin
// JSON-over-HTTP client for the ITMS backend. Responses are unwrapped from
// the backend's {data, message} envelope; error bodies surface their message
// field as an api.Error.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core"
)

type (
	Option func(*Client)

	// Client is shared by the per-resource facades; it owns the cookie jar,
	// the captured bearer token and the cross-cutting 401/403 hooks.
	Client struct {
		base string
		http *http.Client

		mu    sync.RWMutex
		token string

		onUnauthorized func()
		onForbidden    func()
	}
)

// WithHTTPClient swaps the underlying http.Client (tests use a stub).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken seeds the bearer token, e.g. one restored from local state.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithUnauthorizedHook installs the global 401 handler (redirect to login).
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithForbiddenHook installs the global 403 handler (redirect to unauthorized).
func WithForbiddenHook(fn func()) Option {
	return func(c *Client) { c.onForbidden = fn }
}

// New wires the network facade against conf.APIBaseURL.
func New(conf *core.Config, opts ...Option) *api.API {
	return NewWithClient(NewClient(conf.APIBaseURL, opts...))
}

// NewWithClient wires the facade over an existing Client, for callers that
// need to keep a handle on it (token persistence, tests).
func NewWithClient(c *Client) *api.API {
	return &api.API{
		Auth:      &authAPI{c},
		Courses:   &courseAPI{c},
		Schedules: &scheduleAPI{c},
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}
	return c
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Token returns the currently captured bearer token, empty when logged out.
func (c *Client) Token() string {
	return c.bearer()
}

// wire envelope: every backend response is {data, message}.
type wireEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do performs the call and decodes the envelope's data field into out
// (out may be nil for void calls). It returns the response status and the
// envelope message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, string, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, "", errors.Wrap(err, "encoding request")
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return 0, "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, "", errors.Wrap(err, method+" "+path)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, "", errors.Wrap(err, "reading response")
	}

	if res.StatusCode >= http.StatusBadRequest {
		return res.StatusCode, "", c.asError(res.StatusCode, raw)
	}

	var env wireEnvelope
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &env); err != nil {
			return res.StatusCode, "", errors.Wrap(err, "decoding response")
		}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err = json.Unmarshal(env.Data, out); err != nil {
			return res.StatusCode, "", errors.Wrap(err, "decoding response data")
		}
	}
	return res.StatusCode, env.Message, nil
}

// asError extracts the body's message field and fires the cross-cutting
// 401/403 hooks so individual calls never have to handle them.
func (c *Client) asError(status int, raw []byte) error {
	switch status {
	case http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case http.StatusForbidden:
		if c.onForbidden != nil {
			c.onForbidden()
		}
	}

	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)
	if body.Message == "" {
		body.Message = http.StatusText(status)
	}
	return api.NewError(status, body.Message)
}
