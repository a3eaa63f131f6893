// Package api is the gateway to the arthik backend.
//
// Client is the only place where HTTP requests are made. It attaches the
// session credentials, enforces the CSRF precondition on state changing
// requests, rotates the CSRF token from responses and maps failures to the
// error values of this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/arthik/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request headers.
const (
	HeaderCSRF      = "X-CSRF-Token"
	HeaderRequestID = "X-Request-ID"
)

// csrfPath locates a rotated CSRF token in a response body.
const csrfPath = "$.csrfToken"

// Client calls the backend on behalf of the session.
type Client struct {
	baseURL        string
	http           *http.Client
	session        *session.Store
	log            zerolog.Logger
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client used. Its transport is wrapped to log
// every round-trip.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger of the client.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUnauthorizedHandler sets the function called whenever the backend answers 401.
func WithUnauthorizedHandler(f func()) Option {
	return func(c *Client) { c.onUnauthorized = f }
}

// New returns a client of the backend served at baseURL.
func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: sess,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := http.Client{}
	if c.http != nil {
		hc = *c.http
	}
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = &logTransport{base: base, log: c.log}
	c.http = &hc
	return c
}

// SetUnauthorizedHandler replaces the function called on 401.
// It must be called before the client is used concurrently.
func (c *Client) SetUnauthorizedHandler(f func()) { c.onUnauthorized = f }

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Store { return c.session }

// Do sends a JSON request and decodes the JSON response into out, if not nil.
//
// path is relative to the base URL, e.g. "/api/accounts". body, if not nil,
// is encoded as JSON.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// do sends the request. Requests that are not authenticated need no CSRF
// token, and their 401 is a refused login: the unauthorized handler is not
// called.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	csrf := c.session.CSRFToken()
	if method != http.MethodGet && authenticated && csrf == "" {
		return ErrMissingCSRF
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method != http.MethodGet && csrf != "" {
		req.Header.Set(HeaderCSRF, csrf)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && !authenticated:
		return &LoginError{Message: jsonMessage(data)}
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrAuthenticationFailed
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest:
		return &ValidationError{Message: validationMessage(data)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("invalid response: %w", err)}
	}
	if token := rotatedCSRF(jobj); token != "" {
		if err := c.session.SetCSRFToken(token); err != nil {
			c.log.Warn().Err(err).Msg("cannot persist CSRF token")
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("invalid response: %w", err)}
	}
	return nil
}

// rotatedCSRF returns the CSRF token carried by a decoded response body, if any.
func rotatedCSRF(jobj any) string {
	if _, ok := jobj.(map[string]any); !ok {
		return ""
	}
	jval, err := jsonpath.Get(csrfPath, jobj)
	if err != nil {
		return ""
	}
	// keep the first answer when jsonpath returns a list
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	token, _ := jval.(string)
	return token
}

// validationMessage reads the message of a 400 response: a JSON object with
// an "error" or "message" field, or a plain text body.
func validationMessage(data []byte) string {
	if msg := jsonMessage(data); msg != "" {
		return msg
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" || strings.HasPrefix(msg, "{") {
		return "Invalid request"
	}
	return msg
}

// jsonMessage returns the "error" or "message" field of a JSON object body.
func jsonMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
