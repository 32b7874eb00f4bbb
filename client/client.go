//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package client implements the HTTP client for the tool platform API.
//
// The client is resource-oriented: each remote resource (tools, toolkits,
// connected accounts, tool router, files) is exposed as a service value
// hanging off Client. All services share one http.Client, base URL, API key
// and default header set. The rest of the SDK treats this package as an
// opaque RPC boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://backend.composio.dev"
	defaultTimeout = 60 * time.Second

	headerAPIKey    = "x-api-key"
	headerRequestID = "x-request-id"
)

// ErrNotFound is wrapped by APIError for 404 responses so callers can
// pattern-match with errors.Is.
var ErrNotFound = errors.New("entity not found")

// APIError is the error returned for non-2xx API responses.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// RequestID is the id the request was sent with.
	RequestID string
	// Message is the error message parsed from the response body, or the
	// raw body when it is not JSON.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d, request %s): %s", e.StatusCode, e.RequestID, e.Message)
}

// Unwrap maps 404 responses onto ErrNotFound.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err represents a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Client is the API client. Construct it with New; the zero value is not
// usable. A Client is immutable after construction and safe for concurrent
// use.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	headers    map[string]string
	versions   map[string]string

	// Tools accesses the tool catalog and execution endpoints.
	Tools *ToolsService
	// Toolkits accesses the toolkit catalog endpoints.
	Toolkits *ToolkitsService
	// ConnectedAccounts accesses the connected account endpoints.
	ConnectedAccounts *ConnectedAccountsService
	// ToolRouter accesses the tool router session endpoints.
	ToolRouter *ToolRouterService
	// Files accesses the file upload endpoints.
	Files *FilesService
	// AuthConfigs accesses the auth config endpoints.
	AuthConfigs *AuthConfigsService
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	headers    map[string]string
	versions   map[string]string
}

// WithAPIKey sets the API key sent with every request.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout sets the request timeout of the default HTTP client. Ignored
// when WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithHeaders sets default headers merged into every request.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithToolkitVersions sets the per-toolkit tool version pins sent on tool
// retrieval and execution.
func WithToolkitVersions(versions map[string]string) Option {
	return func(o *options) {
		if o.versions == nil {
			o.versions = make(map[string]string, len(versions))
		}
		for k, v := range versions {
			o.versions[k] = v
		}
	}
}

// New creates an API client.
func New(opts ...Option) (*Client, error) {
	o := &options{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	u, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", o.baseURL, err)
	}
	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}

	c := &Client{
		baseURL:    u,
		apiKey:     o.apiKey,
		httpClient: hc,
		headers:    o.headers,
		versions:   o.versions,
	}
	c.bindServices()
	return c, nil
}

func (c *Client) bindServices() {
	c.Tools = &ToolsService{client: c}
	c.Toolkits = &ToolkitsService{client: c}
	c.ConnectedAccounts = &ConnectedAccountsService{client: c}
	c.ToolRouter = &ToolRouterService{client: c}
	c.Files = &FilesService{client: c}
	c.AuthConfigs = &AuthConfigsService{client: c}
}

// WithExtraHeaders returns a copy of the client with the given headers merged
// over the existing default headers. The HTTP client, base URL and API key are
// shared; the original client is not modified.
func (c *Client) WithExtraHeaders(headers map[string]string) *Client {
	merged := make(map[string]string, len(c.headers)+len(headers))
	for k, v := range c.headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}
	clone := &Client{
		baseURL:    c.baseURL,
		apiKey:     c.apiKey,
		httpClient: c.httpClient,
		headers:    merged,
		versions:   c.versions,
	}
	clone.bindServices()
	return clone
}

// ToolkitVersion returns the pinned tool version for a toolkit slug, or ""
// when no pin is configured.
func (c *Client) ToolkitVersion(toolkitSlug string) string {
	return c.versions[strings.ToLower(toolkitSlug)]
}

// HTTPClient exposes the underlying HTTP client, shared with subsystems that
// perform raw transfers (file hydration).
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// BaseURL returns the backend base URL the client targets.
func (c *Client) BaseURL() string {
	return strings.TrimSuffix(c.baseURL.String(), "/")
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// do sends the request and decodes the JSON response into out (when out is
// non-nil). Non-2xx statuses become *APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseErrorResponse(resp, req.Header.Get(headerRequestID))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func parseErrorResponse(resp *http.Response, requestID string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	message := strings.TrimSpace(string(body))

	var envelope struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			message = envelope.Message
		case envelope.Error != nil:
			if s, ok := envelope.Error.(string); ok {
				message = s
			}
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
		Message:    message,
	}
}
