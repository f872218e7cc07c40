package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrInvalidResponse means the completion endpoint answered 2xx but the body
// had no usable choices.
var ErrInvalidResponse = errors.New("completion response has no choices")

// UpstreamError reports a non-2xx status from the completion endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Options are the per-call tuning knobs passed through to the API.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Client is a thin wrapper around a hosted chat-completion endpoint. The
// model id and credentials are fixed at construction; callers only vary the
// prompt and options.
type Client struct {
	apiURL     string
	apiKey     string
	model      string
	orgID      string
	referer    string
	httpClient *http.Client
}

func NewClient(apiURL, apiKey, model, orgID, referer string) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		orgID:      orgID,
		referer:    referer,
		httpClient: &http.Client{},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one prompt as a single user message and returns the first
// choice's text. Single attempt, no streaming. The prompt is passed through
// verbatim, untrusted paper text included.
func (c *Client) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	if c.orgID != "" {
		req.Header.Set("OpenAI-Organization", c.orgID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", ErrInvalidResponse
	}
	return cr.Choices[0].Message.Content, nil
}
