// Package http provides the HTTP transport used by the etcd client. It wraps
// retryablehttp and performs exactly one logical request per call: a response
// is returned for every status code, and errors are transport-level only.
// Interpreting status codes is the caller's job.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// BasicAuth holds credentials sent with every request when configured.
type BasicAuth struct {
	Username string
	Password string
}

// Client is an HTTP client for a single etcd request target.
type Client struct {
	httpClient *retryablehttp.Client
	basicAuth  *BasicAuth
	userAgent  string
	logger     Logger
	debug      bool
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables debug logging of requests and responses.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig configures transport-level retries. Retries only happen on
// connection errors, never based on a response status code, so a retried
// request is still one logical attempt against one endpoint.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout sets a per-request timeout on the underlying HTTP client.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a new HTTP client.
func NewClient(basicAuth *BasicAuth, options ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = retryTransportErrorsOnly
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		httpClient: retryClient,
		basicAuth:  basicAuth,
		userAgent:  "etcd-client/1.0",
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// retryTransportErrorsOnly retries connection-level failures and never
// inspects the response status. Responses with any status code flow back to
// the caller untouched.
func retryTransportErrorsOnly(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	return false, nil
}

// Request represents one HTTP request against an already-resolved target URL.
type Request struct {
	// Method is the HTTP method.
	Method string
	// URL is the absolute request target, including any query string.
	URL string
	// Headers are additional request headers.
	Headers map[string]string
	// Form, when non-nil, is sent URL-encoded as the request body.
	Form url.Values
	// Body, when non-nil and Form is nil, is the raw request body.
	Body []byte
	// ContentType overrides the Content-Type header for Body requests.
	ContentType string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Do executes the request. It returns a Response for every HTTP status; the
// returned error is non-nil only for transport-level failures.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    req.URL,
			"size":   len(body),
		})
	}

	return resp, nil
}

// buildRequest converts a Request into a retryablehttp request with auth and
// standard headers applied.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		body = bytes.NewReader(req.Body)

		contentType = req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.basicAuth != nil {
		httpReq.SetBasicAuth(c.basicAuth.Username, c.basicAuth.Password)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, target string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: target})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, target string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, URL: target})
}

// PutForm performs a PUT request with a URL-encoded form body.
func (c *Client) PutForm(ctx context.Context, target string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, URL: target, Form: form})
}

// PostForm performs a POST request with a URL-encoded form body.
func (c *Client) PostForm(ctx context.Context, target string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, URL: target, Form: form})
}

// PostJSON performs a POST request with a JSON body.
func (c *Client) PostJSON(ctx context.Context, target string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, URL: target, Body: body})
}

// PutJSON performs a PUT request with a JSON body.
func (c *Client) PutJSON(ctx context.Context, target string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, URL: target, Body: body})
}
