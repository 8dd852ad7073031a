package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/opsinv/assetdb-client/internal/constants"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// Credentials attaches authentication to an outgoing request. Session-based
// credentials are a no-op here; their cookies ride in the client's jar.
type Credentials interface {
	Apply(req *http.Request)
}

// Logger interface for transport logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one HTTP call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is serialized to JSON unless it is already []byte.
	Body interface{}
	// RawContentType overrides the Content-Type for []byte bodies.
	RawContentType string
}

// Response is the raw result of one HTTP call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes HTTP requests against one base URL with bounded retries.
// It is stateless across calls except for the cookie jar, which accumulates
// server-set cookies (expected session behavior).
type Client struct {
	baseURL     *url.URL
	retryClient *retryablehttp.Client
	credentials Credentials
	logger      Logger
	debug       bool
	userAgent   string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the retry budget and the base of the linear backoff.
func WithRetryConfig(retryMax int, retryWait time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retryMax
		c.retryClient.RetryWaitMin = retryWait
		c.retryClient.RetryWaitMax = time.Duration(retryMax+1) * retryWait
	}
}

// WithTimeout bounds each attempt. The retry budget multiplies this; the
// product of attempts, timeouts and backoff waits bounds total call duration.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
	}
}

// WithCookieJar installs a cookie jar, used by the session login flow.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Jar = jar
	}
}

// NewClient creates a transport for the given base URL. The URL must parse
// as absolute HTTP or HTTPS; anything else is a ConfigurationError.
func NewClient(baseURL string, credentials Credentials, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, assetdb.NewConfigurationError("endpoint %q is not an absolute http(s) URL", baseURL)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWait
	retryClient.RetryWaitMax = time.Duration(constants.DefaultRetryMax+1) * constants.DefaultRetryWait
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = checkRetry
	retryClient.Backoff = LinearBackoff
	retryClient.ErrorHandler = exhaustedHandler

	client := &Client{
		baseURL:     parsed,
		retryClient: retryClient,
		credentials: credentials,
		userAgent:   constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// LinearBackoff waits attempt-number times the base wait between retryable
// failures, capped at max.
func LinearBackoff(minWait, maxWait time.Duration, attemptNum int, _ *http.Response) time.Duration {
	wait := time.Duration(attemptNum+1) * minWait
	if maxWait > 0 && wait > maxWait {
		wait = maxWait
	}

	return wait
}

// exhaustedHandler converts an exhausted retry budget into a
// TransportExhaustedError carrying the attempt count and the last cause.
func exhaustedHandler(resp *http.Response, err error, numTries int) (*http.Response, error) {
	last := err

	if last == nil && resp != nil {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, constants.MaxErrorBodySize))
		_ = resp.Body.Close()
		last = assetdb.ParseAPIError(resp.StatusCode, body)
	}

	return nil, &assetdb.TransportExhaustedError{Attempts: numTries, Last: last}
}

// Do executes one request with retries and returns the raw response. Error
// responses that survive classification (4xx) are returned together with a
// typed error: AuthError for 401/403, ClientError otherwise.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.retryClient.Do(httpReq)
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
			"bytes":  len(body),
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, c.errorFromResponse(resp)
	}

	return resp, nil
}

// errorFromResponse maps a non-retryable error response to its typed error.
func (c *Client) errorFromResponse(resp *Response) error {
	apiErr := assetdb.ParseAPIError(resp.StatusCode, resp.Body)
	detail := strings.Join(apiErr.Messages, "; ")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &assetdb.AuthError{StatusCode: resp.StatusCode, Detail: detail}
	}

	return &assetdb.ClientError{StatusCode: resp.StatusCode, Detail: detail}
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	target := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var (
		bodyBytes   []byte
		contentType string
		err         error
	)

	switch body := req.Body.(type) {
	case nil:
	case []byte:
		bodyBytes = body
		contentType = req.RawContentType
	default:
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("serializing request body: %w", err)
		}

		contentType = "application/json"
	}

	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.credentials != nil {
		c.credentials.Apply(httpReq.Request)
	}

	return httpReq, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostForm performs a POST request with a form-encoded body, used by the
// session login flow.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:         http.MethodPost,
		Path:           path,
		Body:           []byte(form.Encode()),
		RawContentType: "application/x-www-form-urlencoded",
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
