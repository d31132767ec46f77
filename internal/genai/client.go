// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai calls a generative backend to synthesize researcher
// profiles, enrich source-backed profiles, and answer questions.
// Implements: prd004-generative (R1-R4).
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Distinguished backend failures. Callers branch on these with
// errors.Is to degrade gracefully instead of crashing.
var (
	// ErrAuthentication marks a rejected API key.
	ErrAuthentication = errors.New("authentication failed, check your API key")

	// ErrRateLimited marks an API rate-limit response.
	ErrRateLimited = errors.New("rate limit exceeded, try again later")

	// ErrMalformedResponse marks model output that did not parse as the
	// requested structured format.
	ErrMalformedResponse = errors.New("malformed model response")
)

// Backend abstracts the generative API so tests can supply a mock. One
// synchronous call: system instruction, user prompt, temperature, free
// text back.
type Backend interface {
	Complete(ctx context.Context, system, prompt string, temperature float64) (string, error)
}

// claudeAPIURL is the Claude API endpoint. Package-level var for test
// substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude Messages API over plain HTTP.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system,omitempty"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends one message and returns the concatenated text blocks.
// HTTP 401/403 surface as ErrAuthentication, 429 as ErrRateLimited,
// anything else as a generic error.
func (c *ClaudeBackend) Complete(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	reqBody := claudeRequest{
		Model:       c.Model,
		MaxTokens:   4096,
		System:      system,
		Temperature: temperature,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generative API: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("generative API: %w", ErrAuthentication)
	case http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("generative API: %w", ErrRateLimited)
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generative API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	var text string
	for _, block := range cResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("generative API returned empty content")
	}
	return text, nil
}
