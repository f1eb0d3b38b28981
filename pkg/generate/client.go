// Package generate calls a chat-completions endpoint to turn a user's
// portfolio details into HTML content.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Defaults for the Groq OpenAI-compatible endpoint.
const (
	DefaultAPIURL  = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
	DefaultTimeout = 60 * time.Second
)

var (
	ErrMissingAPIKey  = errors.New("generate: API key is not configured")
	ErrInvalidRequest = errors.New("generate: invalid request")
	ErrEmptyContent   = errors.New("generate: model returned no content")
	ErrUpstream       = errors.New("generate: upstream request failed")
)

// maxErrorBody bounds how much of an upstream error body is kept.
const maxErrorBody = 2048

// Client sends one chat-completions request per Generate call. It does not
// retry.
type Client struct {
	APIKey     string
	APIURL     string
	Model      string
	HTTPClient *http.Client
}

// NewClient creates a client with the default endpoint and model.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		APIURL:     DefaultAPIURL,
		Model:      DefaultModel,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate validates req, sends the prompt and returns the first choice's
// message content.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.model(),
		Messages: []chatMessage{{Role: "user", Content: BuildPrompt(req)}},
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	start := time.Now()
	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyContent
	}

	log.Printf("[Generator] Generated %d bytes for %q in %v", len(out.Choices[0].Message.Content), req.Name, time.Since(start).Round(time.Millisecond))
	return out.Choices[0].Message.Content, nil
}

func (c *Client) url() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return c.APIURL
}

func (c *Client) model() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
