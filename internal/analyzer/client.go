package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	Model          = "gpt-4"
	Temperature    = 0.7
)

// ErrRequestFailed marks a non-success HTTP status from the API.
var ErrRequestFailed = errors.New("request failed")

// Client sends one chat-completion request per Analyze call.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for the public OpenAI endpoint.
func New() *Client {
	return &Client{BaseURL: DefaultBaseURL, HTTPClient: http.DefaultClient}
}

// Analyze posts prompt as a single user message and returns the first
// choice's message content. There are no retries; ctx is the only deadline.
func (c *Client) Analyze(ctx context.Context, apiKey, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: Temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.baseURL(), "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w (status %d): %s", ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
