// Package webhook delivers JSON payloads to the configured order endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no webhook URL is set.
var ErrNotConfigured = errors.New("webhook url is not configured")

// StatusError reports a non-2xx response from the webhook.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook failed with status %d", e.StatusCode)
}

// Client posts payloads to a single URL. The zero URL makes every delivery
// fail with ErrNotConfigured.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient bounds every delivery by timeout, whatever the caller's context.
func NewClient(url string, timeout time.Duration) *Client {
	return NewClientWithHTTP(url, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP posts through httpClient, e.g. one with a custom transport.
func NewClientWithHTTP(url string, httpClient *http.Client) *Client {
	return &Client{url: url, httpClient: httpClient}
}

// Configured reports whether a URL is set.
func (c *Client) Configured() bool {
	return c.url != ""
}

// Deliver sends exactly one POST with payload encoded as JSON. Any 2xx
// response is success; there are no retries.
func (c *Client) Deliver(ctx context.Context, payload any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
