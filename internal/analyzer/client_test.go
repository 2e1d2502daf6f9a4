package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func cannedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestParseResponse(t *testing.T) {
	resp := chatResponse{
		Choices: []chatChoice{
			{Message: chatMessage{Role: "assistant", Content: "Notes A and B share a theme."}},
			{Message: chatMessage{Role: "assistant", Content: "second choice"}},
		},
	}
	body, _ := json.Marshal(resp)

	got, err := parseResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Notes A and B share a theme." {
		t.Errorf("got %q", got)
	}
}

func TestParseResponse_EmptyChoices(t *testing.T) {
	_, err := parseResponse([]byte(`{"choices":[]}`))
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if !strings.Contains(err.Error(), "empty choices") {
		t.Errorf("wrong error: %v", err)
	}
}

func TestParseResponse_BadJSON(t *testing.T) {
	if _, err := parseResponse([]byte("not json")); err == nil {
		t.Fatal("expected error for bad JSON")
	}
}

func TestAnalyze_MockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key-123" {
			t.Errorf("auth: got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type: got %q", r.Header.Get("Content-Type"))
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-4" {
			t.Errorf("model: got %q, want gpt-4", req.Model)
		}
		if req.Temperature != 0.7 {
			t.Errorf("temperature: got %f, want 0.7", req.Temperature)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "the prompt" {
			t.Errorf("messages: got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"X"}}]}`))
	}))
	defer server.Close()

	c := &Client{BaseURL: server.URL + "/v1/"}
	got, err := c.Analyze(context.Background(), "test-key-123", "the prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "X" {
		t.Errorf("got %q, want %q", got, "X")
	}
}

func TestAnalyze_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusInternalServerError} {
		// A body that would parse fine must still not leak out as a result.
		server := cannedServer(t, status, `{"choices":[{"message":{"content":"partial"}}]}`)

		c := &Client{BaseURL: server.URL}
		got, err := c.Analyze(context.Background(), "k", "p")
		if !errors.Is(err, ErrRequestFailed) {
			t.Errorf("status %d: err = %v, want ErrRequestFailed", status, err)
		}
		if got != "" {
			t.Errorf("status %d: got partial result %q", status, got)
		}
	}
}

func TestAnalyze_MissingChoices(t *testing.T) {
	server := cannedServer(t, http.StatusOK, `{"id":"x"}`)

	c := &Client{BaseURL: server.URL}
	_, err := c.Analyze(context.Background(), "k", "p")
	if err == nil {
		t.Fatal("expected error for missing choices")
	}
	if errors.Is(err, ErrRequestFailed) {
		t.Errorf("malformed body should not be reported as a failed request: %v", err)
	}
}

func TestAnalyze_ContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := &Client{BaseURL: server.URL}
	if _, err := c.Analyze(ctx, "k", "p"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	if c.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.HTTPClient == nil {
		t.Error("HTTPClient is nil")
	}
}
