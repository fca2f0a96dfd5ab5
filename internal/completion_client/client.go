package completion_client

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

// Coarse failure classes. Callers treat every failure uniformly as
// "no response"; the classes exist only for operator-facing logs.
var (
	ErrNotConfigured = errors.New("completion service not configured")
	ErrUnauthorized  = errors.New("completion service rejected credentials")
	ErrRateLimited   = errors.New("completion service rate limit exceeded")
	ErrModelNotFound = errors.New("completion model not found")
	ErrEmptyResponse = errors.New("completion service returned no content")
)

const defaultBaseURL = "https://api.groq.com"

// Turn is one ordered {role, content} message in a completion request.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a client for an OpenAI-compatible chat completion API
// (Groq hosting by default).
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a new completion client. An empty baseURL selects the
// Groq endpoint. An empty apiKey yields a client whose calls fail with
// ErrNotConfigured, which callers resolve to their fallback reply.
func NewClient(baseURL, apiKey, model string, maxTokens int, temperature float64) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatCompletionRequest struct {
	Model       string  `json:"model"`
	Messages    []Turn  `json:"messages"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the ordered turns and returns the generated text.
func (c *Client) Complete(ctx context.Context, turns []Turn) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := chatCompletionRequest{
		Model:       c.model,
		Messages:    turns,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/openai/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return "", fmt.Errorf("%w: %s", ErrUnauthorized, string(body))
		case http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: %s", ErrRateLimited, string(body))
		case http.StatusNotFound:
			return "", fmt.Errorf("%w: %s", ErrModelNotFound, string(body))
		default:
			return "", fmt.Errorf("completion service returned status %d: %s", resp.StatusCode, string(body))
		}
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return result.Choices[0].Message.Content, nil
}
