// Package ai implements the remote extraction boundary: raw entry text
// goes to an OpenAI-compatible chat completions endpoint (OpenRouter)
// and comes back as zero or more candidate records, or a distinguished
// failure. Candidates are validated before acceptance; callers fall
// back to the heuristic parser on any failure.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenRouter API endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultModel is the model used when none is configured.
const DefaultModel = "google/gemini-flash-1.5"

// DefaultTimeout bounds one extraction call.
const DefaultTimeout = 30 * time.Second

var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("api key is not set")

	// ErrEmptyResponse is returned when the API answers with no choices.
	ErrEmptyResponse = errors.New("empty response from extraction API")
)

// Config configures the extraction client.
type Config struct {
	// APIKey authenticates against the API. Required.
	APIKey string

	// BaseURL overrides DefaultBaseURL.
	BaseURL string

	// Model overrides DefaultModel.
	Model string

	// Timeout overrides DefaultTimeout.
	Timeout time.Duration
}

// Client calls the chat completions API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  http.Client
}

// NewClient creates a client from config, applying defaults.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  http.Client{Timeout: timeout},
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Chat completions request/response types (OpenAI-compatible).
type chatRequest struct {
	Model          string       `json:"model"`
	Messages       []chatMsg    `json:"messages"`
	ResponseFormat *responseFmt `json:"response_format,omitempty"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFmt struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// complete sends one system+user exchange and returns the assistant's
// content string. JSON output is requested from the model.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMsg{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFmt{Type: "json_object"},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("extraction API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
