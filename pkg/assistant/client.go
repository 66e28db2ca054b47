// Package assistant is the HTTP client side of the remote assistant: it posts the
// officer's question to an /ask endpoint and returns the answer text.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
)

// DefaultEndpoint matches the address the assistant backend listens on by default.
const DefaultEndpoint = "http://localhost:5000/ask"

const maxResponseBytes = 1 << 20

// Request is the wire body of an assistant query.
type Request struct {
	Query string `json:"query"`
}

// Response is the wire body of a successful answer.
type Response struct {
	Response string `json:"response"`
}

// ErrorResponse is the wire body of a rejected query.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Client calls the assistant backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for endpoint, e.g. "http://localhost:5000/ask".
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Gateway = (*Client)(nil)

// Ask posts query and returns the response text. Every failure wraps domain.ErrGatewayFailure.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(Request{Query: query})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", domain.ErrGatewayFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", domain.ErrGatewayFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrGatewayFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return "", fmt.Errorf("%w: status %d: %s", domain.ErrGatewayFailure, resp.StatusCode, e.Error)
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrGatewayFailure, resp.StatusCode)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrGatewayFailure, err)
	}
	return out.Response, nil
}
