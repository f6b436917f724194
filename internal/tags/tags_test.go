package tags

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionaryExtract(t *testing.T) {
	d := Dictionary{}

	got := d.Extract(context.Background(), "Go and Rust: a Kubernetes story", "")
	assert.Equal(t, []string{"go", "rust", "kubernetes"}, got)
}

func TestDictionaryExtractNoMatches(t *testing.T) {
	d := Dictionary{}

	got := d.Extract(context.Background(), "An unremarkable headline", "")
	assert.Empty(t, got)
}

func TestDictionaryExtractCaseInsensitive(t *testing.T) {
	d := Dictionary{}

	got := d.Extract(context.Background(), "PYTHON beats JavaScript", "")
	assert.Equal(t, []string{"python", "javascript"}, got)
}

func TestFallbackTags(t *testing.T) {
	got := FallbackTags("The Quick Brown Fox Jumps")
	assert.Equal(t, []string{"quick", "brown", "jumps"}, got)
}

func TestFallbackTagsCapsAtFive(t *testing.T) {
	got := FallbackTags("Firstword Secondword Thirdword Fourthword Fifthword Sixthword")
	assert.Equal(t, []string{"firstword", "secondword", "thirdword", "fourthword", "fifthword"}, got)
}

func TestFallbackTagsEmptyTitle(t *testing.T) {
	assert.Empty(t, FallbackTags(""))
	assert.Empty(t, FallbackTags("a b cd"))
}

// completionResponse is the minimal chat-completion shape the client parses.
func completionResponse(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
}

func TestLLMExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse("AI, Robotics , machine learning,,"))
	}))
	defer srv.Close()

	e := NewLLMExtractor(Config{APIKey: "test", Model: "gpt-4o-mini", BaseURL: srv.URL})
	got := e.Extract(context.Background(), "Robots learn to fold laundry", "https://example.com")
	assert.Equal(t, []string{"ai", "robotics", "machine learning"}, got)
}

func TestLLMExtractFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewLLMExtractor(Config{APIKey: "test", Model: "gpt-4o-mini", BaseURL: srv.URL})
	got := e.Extract(context.Background(), "The Quick Brown Fox Jumps", "https://example.com")
	assert.Equal(t, []string{"quick", "brown", "jumps"}, got)
}

func TestLLMExtractFallsBackOnEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse("  "))
	}))
	defer srv.Close()

	e := NewLLMExtractor(Config{APIKey: "test", Model: "gpt-4o-mini", BaseURL: srv.URL})
	got := e.Extract(context.Background(), "The Quick Brown Fox Jumps", "https://example.com")
	assert.Equal(t, []string{"quick", "brown", "jumps"}, got)
}
