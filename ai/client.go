// Package ai is a thin client for the external generative-text provider.
// Responses are relayed raw; no retries and no post-processing.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client calls the provider's generateContent endpoint
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient creates a client for the configured provider endpoint.
// Transport defaults apply; callers bound a call through its context.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// generateRequest is the provider's request envelope
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// ProviderError carries the provider's error payload alongside the HTTP status
type ProviderError struct {
	StatusCode int
	Body       []byte
}

func (e *ProviderError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if msg == "" {
		msg = fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("ai provider: %s", msg)
}

// Generate sends the prompt to the provider and returns the raw response body
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ai provider: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}
