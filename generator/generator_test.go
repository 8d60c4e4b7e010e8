package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func longBody() string {
	return strings.TrimSpace(strings.Repeat("Practical insight about the subject at hand. ", 100))
}

func TestGenerate_Success(t *testing.T) {
	mock := &MockLLM{Responses: []string{longBody(), "\"The Future Is Already Here\"\n"}}
	g, err := New(mock, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	post := g.Generate(context.Background(), "The future of artificial intelligence in everyday life")

	if post.Fallback {
		t.Fatal("expected model post, got fallback")
	}
	if post.Title != "The Future Is Already Here" {
		t.Errorf("title = %q", post.Title)
	}
	if post.Body != longBody() {
		t.Errorf("body was altered: %q", post.Body[:40])
	}
	if len(post.Tags) == 0 {
		t.Fatal("expected tags on generated post")
	}

	if len(mock.Calls) != 2 {
		t.Fatalf("provider calls = %d, want 2", len(mock.Calls))
	}
	content, title := mock.Calls[0], mock.Calls[1]
	if !strings.Contains(content.User, "The future of artificial intelligence") {
		t.Errorf("content prompt missing topic: %q", content.User)
	}
	if !strings.Contains(content.System, "600-800 words") {
		t.Errorf("content prompt missing word range: %q", content.System)
	}
	if content.Temperature != 0.7 {
		t.Errorf("content temperature = %v, want 0.7", content.Temperature)
	}
	if title.Temperature != 0.8 {
		t.Errorf("title temperature = %v, want 0.8", title.Temperature)
	}
}

func TestGenerate_FallbackOnProviderError(t *testing.T) {
	mock := &MockLLM{Err: errors.New("insufficient_quota")}
	g, err := New(mock, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	topic := "Data privacy in the age of big data"
	post := g.Generate(context.Background(), topic)

	if !post.Fallback {
		t.Fatal("expected fallback post")
	}
	if post.Title == "" || post.Body == "" || len(post.Tags) == 0 {
		t.Fatalf("fallback post is missing fields: %+v", post)
	}
	if !strings.Contains(strings.ToLower(post.Body), strings.ToLower(topic)) {
		t.Error("fallback body does not reference the topic")
	}
	if !strings.Contains(post.Title, topic) {
		t.Errorf("fallback title does not reference the topic: %q", post.Title)
	}
}

func TestGenerate_FallbackOnShortContent(t *testing.T) {
	mock := &MockLLM{Responses: []string{"too short", "A Title"}}
	g, _ := New(mock, Options{})

	post := g.Generate(context.Background(), "Smart cities and urban technology integration")
	if !post.Fallback {
		t.Fatal("expected fallback for short model output")
	}
}

func TestGenerate_FallbackOnEmptyTitle(t *testing.T) {
	mock := &MockLLM{Responses: []string{longBody(), "\"\""}}
	g, _ := New(mock, Options{})

	post := g.Generate(context.Background(), "Blockchain technology beyond cryptocurrency")
	if !post.Fallback {
		t.Fatal("expected fallback for empty title")
	}
}

func TestGenerate_SameShapeEitherPath(t *testing.T) {
	topic := "Climate change solutions through technology"

	success := func() Post {
		mock := &MockLLM{Responses: []string{longBody(), "A Fine Title"}}
		g, _ := New(mock, Options{})
		return g.Generate(context.Background(), topic)
	}()
	fallback := func() Post {
		mock := &MockLLM{Err: errors.New("boom")}
		g, _ := New(mock, Options{})
		return g.Generate(context.Background(), topic)
	}()

	for name, post := range map[string]Post{"success": success, "fallback": fallback} {
		if post.Title == "" {
			t.Errorf("%s: empty title", name)
		}
		if post.Body == "" {
			t.Errorf("%s: empty body", name)
		}
		if len(post.Tags) == 0 {
			t.Errorf("%s: no tags", name)
		}
	}
}

func TestNew_RequiresClient(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestNew_CustomWordRange(t *testing.T) {
	mock := &MockLLM{Responses: []string{longBody(), "T"}}
	g, _ := New(mock, Options{MinWords: 300, MaxWords: 500})
	g.Generate(context.Background(), "anything")

	if !strings.Contains(mock.Calls[0].System, "300-500 words") {
		t.Errorf("system prompt = %q", mock.Calls[0].System)
	}
}
