// Package api is the typed client for the devlog backend endpoints.
package api

import (
	"fmt"

	"github.com/devlogdev/devlog/pkg/config"
	"github.com/devlogdev/devlog/pkg/http"
)

// Client handles communication with the devlog API
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new devlog API client.
//
// No request timeout is configured: an append blocks until the transport
// gives up on its own, and is never retried.
func NewClient(cfg *config.Config) (*Client, error) {
	httpClient, err := http.NewClient(cfg, 0)
	if err != nil {
		return nil, err
	}
	return &Client{
		httpClient: httpClient,
	}, nil
}

// AppendRequest is the request body for POST /api/logs/append
type AppendRequest struct {
	Text string `json:"text"`
	Date string `json:"date,omitempty"`
}

// AppendResponse is the response for POST /api/logs/append.
// The server may include a human-readable message worth echoing to the user.
type AppendResponse struct {
	Message string `json:"message,omitempty"`
}

// Append submits one log entry. date may be empty, in which case the
// field is omitted from the request body entirely.
func (c *Client) Append(text, date string) (*AppendResponse, error) {
	req := AppendRequest{
		Text: text,
		Date: date,
	}

	var resp AppendResponse
	if err := c.httpClient.Post("/api/logs/append", req, &resp); err != nil {
		return nil, fmt.Errorf("log append failed: %w", err)
	}

	return &resp, nil
}
