package genai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured indicates the generator client is not configured
	ErrNotConfigured = errors.New("generator client not configured")
	// ErrRateLimited indicates the backend rejected the call due to rate limiting
	ErrRateLimited = errors.New("generator rate limited")
	// ErrGenerationFailed indicates the backend call failed
	ErrGenerationFailed = errors.New("generation failed")
	// ErrInvalidResponse indicates an invalid response from the backend
	ErrInvalidResponse = errors.New("invalid generator response")
)

// Provider represents a text generation backend provider
type Provider string

const (
	// ProviderGemini represents the Google Gemini API
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI represents the OpenAI API
	ProviderOpenAI Provider = "openai"
	// ProviderClaude represents the Anthropic Claude API
	ProviderClaude Provider = "claude"
	// ProviderCustom represents a custom OpenAI-compatible endpoint
	ProviderCustom Provider = "custom"
)

// Client handles communication with a text generation backend
type Client struct {
	provider   Provider
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	configured bool
}

// NewClient creates a new Client instance
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configure configures the client with provider settings
func (c *Client) Configure(provider, apiKey, model string) {
	c.ConfigureWithBaseURL(provider, apiKey, model, "")
}

// ConfigureWithBaseURL configures the client with provider settings and a custom base URL
func (c *Client) ConfigureWithBaseURL(provider, apiKey, model, baseURL string) {
	c.provider = Provider(strings.ToLower(provider))
	c.apiKey = apiKey
	c.model = model
	c.configured = apiKey != ""

	if baseURL != "" {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
		return
	}

	switch c.provider {
	case ProviderGemini:
		c.baseURL = "https://generativelanguage.googleapis.com/v1beta"
		if c.model == "" {
			c.model = "gemini-2.0-flash"
		}
	case ProviderOpenAI:
		c.baseURL = "https://api.openai.com/v1"
		if c.model == "" {
			c.model = "gpt-4o-mini"
		}
	case ProviderClaude:
		c.baseURL = "https://api.anthropic.com/v1"
		if c.model == "" {
			c.model = "claude-3-haiku-20240307"
		}
	default:
		c.provider = ProviderGemini
		c.baseURL = "https://generativelanguage.googleapis.com/v1beta"
		if c.model == "" {
			c.model = "gemini-2.0-flash"
		}
	}
}

// IsConfigured returns whether the client is configured
func (c *Client) IsConfigured() bool {
	return c.configured && c.apiKey != ""
}

// Complete sends a single prompt to the backend and returns the generated text.
// Rate limit rejections are reported as ErrRateLimited so the Gateway can
// apply its backoff policy; any other fault is ErrGenerationFailed.
func (c *Client) Complete(prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	if c.provider == ProviderGemini {
		return c.completeGemini(prompt)
	}
	return c.completeChat(prompt)
}

// geminiRequest represents a Gemini generateContent request
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse represents a Gemini generateContent response
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// completeGemini sends a generateContent request to the Gemini API
func (c *Client) completeGemini(prompt string) (string, error) {
	request := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	respBody, status, err := c.do(req)
	if err != nil {
		return "", err
	}

	var genResp geminiResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if status == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if genResp.Error != nil {
		if genResp.Error.Status == "RESOURCE_EXHAUSTED" {
			return "", ErrRateLimited
		}
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, genResp.Error.Message)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, status, string(respBody))
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrInvalidResponse
	}

	return strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text), nil
}

// chatMessage represents a message in a chat conversation
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents a chat completion request
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// chatResponse represents a chat completion response
type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// completeChat sends a chat completion request to an OpenAI-compatible API
func (c *Client) completeChat(prompt string) (string, error) {
	request := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   1000,
		Temperature: 0.3,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	switch c.provider {
	case ProviderClaude:
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", "2023-06-01")
	default:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	respBody, status, err := c.do(req)
	if err != nil {
		return "", err
	}

	if status == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if chatResp.Error != nil {
		if chatResp.Error.Type == "rate_limit_error" {
			return "", ErrRateLimited
		}
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, chatResp.Error.Message)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, status, string(respBody))
	}

	if len(chatResp.Choices) == 0 {
		return "", ErrInvalidResponse
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// do executes the HTTP request and returns the response body and status code
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return respBody, resp.StatusCode, nil
}
