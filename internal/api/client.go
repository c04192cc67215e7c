// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Atomine integration proxy.
//
// The proxy fronts every upstream model service behind path-based routes
// (/integrations/...), so the client never carries credentials; it speaks
// plain JSON to the proxy and streams plain text chunks back.
//
// API: Secure logging and strict response handling
package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Configuration constants for the integration proxy.
const (
	// DefaultTimeout is the timeout for non-streaming requests.
	DefaultTimeout = 60 * time.Second

	// DefaultStreamTimeout bounds a whole streaming turn via context.
	DefaultStreamTimeout = 120 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

var (
	// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
	// Shared HTTP client for all non-streaming proxy requests.
	sharedHTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		Timeout: DefaultTimeout,
	}

	// sharedStreamingClient is used for streaming requests.
	// No client timeout: streaming lifetime is controlled via context.
	sharedStreamingClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
)

// Error variables for common proxy errors.
var (
	// ErrRequestFailed indicates the request could not be completed.
	ErrRequestFailed = errors.New("request failed")

	// ErrBadStatus indicates the proxy returned a non-200 status.
	ErrBadStatus = errors.New("unexpected response status")

	// ErrEmptyResponse indicates the proxy returned no usable content.
	ErrEmptyResponse = errors.New("empty response")
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatMessage is a single turn in the outbound messages array.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TokenLimit is a reply-size cap that serializes as "auto" when zero,
// otherwise as a plain integer.
type TokenLimit int

// MarshalJSON emits "auto" for the adaptive setting.
func (t TokenLimit) MarshalJSON() ([]byte, error) {
	if t <= 0 {
		return []byte(`"auto"`), nil
	}
	return []byte(strconv.Itoa(int(t))), nil
}

// Parameters are the response-shaping knobs sent with every chat request.
type Parameters struct {
	Temperature    float64    `json:"temperature"`
	ResponseFormat string     `json:"response_format,omitempty"`
	MaxTokens      TokenLimit `json:"max_tokens"`
}

// ChatRequest is the outbound body for a streaming chat turn.
type ChatRequest struct {
	Messages   []ChatMessage `json:"messages"`
	Stream     bool          `json:"stream"`
	Parameters Parameters    `json:"parameters"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the integration proxy. Safe for concurrent use; all
// mutable state lives in the shared pooled transports.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	streamClient  *http.Client
	streamTimeout time.Duration
}

// NewClient creates a proxy client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    sharedHTTPClient,
		streamClient:  sharedStreamingClient,
		streamTimeout: DefaultStreamTimeout,
	}
}

// WithStreamTimeout overrides the per-turn streaming timeout. Values at
// or below zero keep the default. Call before the client is shared.
func (c *Client) WithStreamTimeout(d time.Duration) *Client {
	if d > 0 {
		c.streamTimeout = d
	}
	return c
}

// WithHTTPClient overrides the non-streaming client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithStreamClient overrides the streaming client. Used by tests.
func (c *Client) WithStreamClient(hc *http.Client) *Client {
	c.streamClient = hc
	return c
}

// BaseURL returns the configured proxy base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// url joins an integration path onto the base URL.
func (c *Client) url(path string) string {
	return c.baseURL + path
}

// =============================================================================
// API: Request/Response Logging (without sensitive data)
// =============================================================================

// logRequest logs an API request without exposing message content.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
	// Don't log body (contains user messages)
}

// logResponse logs an API response with duration.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// readResponse reads a response body with the size limit applied.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// doJSON runs a request on the non-streaming client and decodes the JSON
// body into out.
func (c *Client) doJSON(req *http.Request, out any) error {
	start := time.Now()
	c.logRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newJSONRequest builds a POST request with a JSON body.
func newJSONRequest(ctx context.Context, url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
