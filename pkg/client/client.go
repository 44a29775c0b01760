// Package client talks to the clan site JSON API.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultBaseURL API root used when none is configured
const DefaultBaseURL = "http://127.0.0.1:8080/api/v1"

const (
	defaultTimeout = 10 * time.Second
	adminHeader    = "X-Admin-Token"
	forwardedFor   = "X-Forwarded-For"
	maxErrorBody   = 4 << 10
)

// TokenSource supplies the admin token attached to requests. An empty token means anonymous.
type TokenSource interface {
	Token() string
}

// APIError a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps an APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client shared transport of the endpoint clients
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	clientIP   string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTokenSource attaches the admin token from ts to every request
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithForwardedFor reports ip as the original caller, for servers relaying a visitor's request
func WithForwardedFor(ip string) Option {
	return func(c *Client) { c.clientIP = ip }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Listings returns the listings endpoint client
func (c *Client) Listings() *ListingsClient { return &ListingsClient{c: c} }

// News returns the news endpoint client
func (c *Client) News() *NewsClient { return &NewsClient{c: c} }

// Content returns the VIP and clan content client
func (c *Client) Content() *ContentClient { return &ContentClient{c: c} }

// Auth returns the auth endpoint client
func (c *Client) Auth() *AuthClient { return &AuthClient{c: c} }

// do sends one JSON request and decodes a 2xx response into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.clientIP != "" {
		req.Header.Set(forwardedFor, c.clientIP)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(adminHeader, token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(data, &body) == nil {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

type idBody struct {
	ID int64 `json:"id"`
}
