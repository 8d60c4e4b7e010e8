package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiServer(t *testing.T, handler http.HandlerFunc) *GeminiLLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &GeminiLLM{
		Model:   "gemini-1.5-flash",
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Client:  srv.Client(),
	}
}

func TestGeminiComplete_Success(t *testing.T) {
	llm := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-1.5-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text == "" {
			t.Errorf("unexpected contents: %+v", req.Contents)
		}
		if req.SystemInstruction == nil {
			t.Error("missing system instruction")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Generated "}, {"text": "text"}}}},
			},
		})
	})

	got, err := llm.Complete(context.Background(), BuildContentPrompt("smart cities", 600, 800))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Generated text" {
		t.Errorf("content = %q", got)
	}
}

func TestGeminiComplete_EmptyCandidates(t *testing.T) {
	llm := geminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	if _, err := llm.Complete(context.Background(), BuildTitlePrompt("anything")); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGeminiComplete_HTTPError(t *testing.T) {
	llm := geminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	})

	_, err := llm.Complete(context.Background(), BuildTitlePrompt("anything"))
	if err == nil {
		t.Fatal("expected error for HTTP failure")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error should carry the provider message, got %v", err)
	}
}

func TestNewGeminiLLMFromConfig(t *testing.T) {
	if _, err := NewGeminiLLMFromConfig(&LLMSettings{Model: "gemini-1.5-flash"}); err == nil {
		t.Fatal("expected error for missing key")
	}
	if _, err := NewGeminiLLMFromConfig(&LLMSettings{APIKey: "k"}); err == nil {
		t.Fatal("expected error for missing model")
	}
	llm, err := NewGeminiLLMFromConfig(&LLMSettings{APIKey: "k", Model: "gemini-1.5-flash"})
	if err != nil {
		t.Fatalf("NewGeminiLLMFromConfig: %v", err)
	}
	if llm.BaseURL != defaultGeminiBaseURL {
		t.Errorf("base url = %q", llm.BaseURL)
	}
}
