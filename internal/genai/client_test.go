package genai

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteNotConfigured(t *testing.T) {
	c := NewClient()

	_, err := c.Complete("hello")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	c.Configure("gemini", "", "")
	if _, err := c.Complete("hello"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured with empty key, got %v", err)
	}
}

func TestConfigureDefaults(t *testing.T) {
	tests := []struct {
		provider  string
		wantModel string
	}{
		{"gemini", "gemini-2.0-flash"},
		{"openai", "gpt-4o-mini"},
		{"claude", "claude-3-haiku-20240307"},
		{"unknown", "gemini-2.0-flash"},
	}

	for _, tt := range tests {
		c := NewClient()
		c.Configure(tt.provider, "key", "")
		if c.model != tt.wantModel {
			t.Errorf("provider %q: expected model %q, got %q", tt.provider, tt.wantModel, c.model)
		}
	}
}

func TestCompleteGemini(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing API key header")
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "  generated text \n"}]}}]}`))
	}))
	defer server.Close()

	c := NewClient()
	c.ConfigureWithBaseURL("gemini", "test-key", "test-model", server.URL)

	text, err := c.Complete("prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "generated text" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestCompleteGeminiRateLimited(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"http 429", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{}`))
		}},
		{"resource exhausted", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.h)
			defer server.Close()

			c := NewClient()
			c.ConfigureWithBaseURL("gemini", "test-key", "test-model", server.URL)

			_, err := c.Complete("prompt")
			if !errors.Is(err, ErrRateLimited) {
				t.Fatalf("expected ErrRateLimited, got %v", err)
			}
		})
	}
}

func TestCompleteGeminiBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid model", "status": "INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	c := NewClient()
	c.ConfigureWithBaseURL("gemini", "test-key", "test-model", server.URL)

	_, err := c.Complete("prompt")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestCompleteGeminiEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	c := NewClient()
	c.ConfigureWithBaseURL("gemini", "test-key", "test-model", server.URL)

	_, err := c.Complete("prompt")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestCompleteChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "chat reply"}}]}`))
	}))
	defer server.Close()

	c := NewClient()
	c.ConfigureWithBaseURL("custom", "test-key", "local-model", server.URL)

	text, err := c.Complete("prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "chat reply" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestCompleteChatClaudeHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
	}))
	defer server.Close()

	c := NewClient()
	c.ConfigureWithBaseURL("claude", "test-key", "claude-3-haiku-20240307", server.URL)

	if _, err := c.Complete("prompt"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestCompleteChatRateLimitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "slow down", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	c := NewClient()
	c.ConfigureWithBaseURL("openai", "test-key", "gpt-4o-mini", server.URL)

	_, err := c.Complete("prompt")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
