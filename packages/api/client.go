package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// Client talks to the task service API. All request paths are joined onto
// the base address, so callers pass service hrefs like
// "/pulp/api/v3/tasks/123/" directly.
type Client struct {
	httpClient     *http.Client
	baseAddr       string
	timeout        time.Duration
	defaultHeaders map[string]string
}

type ClientOption func(*Client)

func NewClient(baseAddr string, opts ...ClientOption) *Client {
	c := &Client{
		baseAddr:       strings.TrimRight(baseAddr, "/"),
		timeout:        DefaultTimeout,
		defaultHeaders: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        DefaultMaxIdleConns,
				MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
				IdleConnTimeout:     DefaultIdleConnTimeout,
			},
			Timeout: c.timeout,
		}
	}

	return c
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithHTTPClient replaces the underlying http.Client, mostly for tests
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// BaseAddr returns the configured base address
func (c *Client) BaseAddr() string {
	return c.baseAddr
}

// Get issues a GET against the base address and fails on non-2xx
func (c *Client) Get(ctx context.Context, path string, params neturl.Values) (*Response, error) {
	url := c.baseAddr + path
	if len(params) > 0 {
		url += "?" + params.Encode()
	}
	return c.doRequest(ctx, http.MethodGet, url, nil, "")
}

// Post issues a form-encoded POST against the base address and fails on non-2xx
func (c *Client) Post(ctx context.Context, path string, data neturl.Values) (*Response, error) {
	body := strings.NewReader(data.Encode())
	return c.doRequest(ctx, http.MethodPost, c.baseAddr+path, body, "application/x-www-form-urlencoded")
}

func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	r := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    headers,
		Body:       respBody,
		Duration:   duration,
	}

	if !r.IsSuccess() {
		return nil, &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       respBody,
		}
	}

	return r, nil
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
}
