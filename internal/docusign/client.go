package docusign

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"hancock/internal/config"
	"hancock/internal/logger"
)

// Client is the HTTP implementation of Transport. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       AuthStrategy
	metrics    *Metrics
}

var _ Transport = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTimeout sets the request timeout on a copy of the current HTTP client, so a client
// passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		h := *c.httpClient
		h.Timeout = d
		c.httpClient = &h
	}
}

// NewClient creates a client for baseURL, e.g. "https://demo.docusign.net/restapi/v2.1".
// The default HTTP client is traced with otelhttp.
func NewClient(baseURL string, auth AuthStrategy, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		auth: auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client with the credentials and timeout from cfg. The configured
// timeout is applied after opts and so also covers a client given with WithHTTPClient.
func NewFromConfig(cfg config.DocuSignConfig, opts ...Option) (*Client, error) {
	auth, err := AuthFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.TimeoutSec > 0 {
		opts = append(opts, WithTimeout(time.Duration(cfg.TimeoutSec)*time.Second))
	}
	return NewClient(cfg.BaseURL, auth, opts...), nil
}

func (c *Client) PostJSON(ctx context.Context, path string, body []byte, headers http.Header) (*Response, error) {
	h := cloneHeader(headers)
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", "application/json")
	}
	return c.do(ctx, http.MethodPost, path, body, h)
}

func (c *Client) PostMultipart(ctx context.Context, path string, body []byte, headers http.Header) (*Response, error) {
	if !strings.HasPrefix(headers.Get("Content-Type"), "multipart/") {
		return nil, fmt.Errorf("post %s: multipart content type with boundary is required", path)
	}
	return c.do(ctx, http.MethodPost, path, body, cloneHeader(headers))
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, http.Header{})
}

func (c *Client) Put(ctx context.Context, path string, body []byte, headers http.Header) (*Response, error) {
	h := cloneHeader(headers)
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", "application/json")
	}
	return c.do(ctx, http.MethodPut, path, body, h)
}

// Ping checks that the API is reachable and accepts our credentials.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Get(ctx, "/login_information")
	if err != nil {
		return err
	}
	if !resp.Success() {
		return fmt.Errorf("login information: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, headers http.Header) (*Response, error) {
	start := time.Now()

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if c.auth != nil {
		if err := c.auth.Apply(ctx, req); err != nil {
			return nil, fmt.Errorf("apply auth: %w", err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	c.metrics.observe(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	logger.Debug(ctx, "docusign request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	out := NewResponse(resp.StatusCode, b)
	out.Header = resp.Header
	return out, nil
}

func cloneHeader(h http.Header) http.Header {
	if h == nil {
		return http.Header{}
	}
	return h.Clone()
}
