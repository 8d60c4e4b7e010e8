package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dailymuse/formatter"
)

func testPost() formatter.Post {
	return formatter.Post{
		Title:    "The Future of Artificial Intelligence in Healthcare",
		Markdown: "## Introduction\n\nBody text.",
		HTML:     "<h2>Introduction</h2>\n<p>Body text.</p>",
		Tags:     []string{"technology", "ai", "innovation", "future", "automation"},
	}
}

func TestMedium_Publish(t *testing.T) {
	var gotPayload mediumPostPayload
	mux := http.NewServeMux()
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `{"data":{"id":"u-1","username":"muse"}}`)
	})
	mux.HandleFunc("/users/u-1/posts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"p-1","url":"https://medium.com/@muse/p-1"}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := NewMedium("tok-1", "public", srv.Client(), srv.URL)
	res, err := m.Publish(context.Background(), testPost())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	want := Result{Destination: "medium", URL: "https://medium.com/@muse/p-1", PostID: "p-1"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}
	if gotPayload.ContentFormat != "html" {
		t.Errorf("contentFormat = %q, want html", gotPayload.ContentFormat)
	}
	if gotPayload.PublishStatus != "public" {
		t.Errorf("publishStatus = %q, want public", gotPayload.PublishStatus)
	}
	if gotPayload.Content != testPost().HTML {
		t.Errorf("content = %q", gotPayload.Content)
	}
	if len(gotPayload.Tags) != 5 {
		t.Errorf("tags = %v, want all five", gotPayload.Tags)
	}
}

func TestMedium_CapsTags(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"u-1"}}`)
	})
	var gotTags []string
	mux.HandleFunc("/users/u-1/posts", func(w http.ResponseWriter, r *http.Request) {
		var payload mediumPostPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		gotTags = payload.Tags
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"p-1","url":"https://medium.com/@muse/p-1"}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	post := testPost()
	post.Tags = []string{"a", "b", "c", "d", "e", "f", "g"}

	m := NewMedium("tok-1", "draft", srv.Client(), srv.URL)
	if _, err := m.Publish(context.Background(), post); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, gotTags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestMedium_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":[{"message":"Token was invalid.","code":6003}]}`)
	}))
	defer srv.Close()

	m := NewMedium("bad", "public", srv.Client(), srv.URL)
	_, err := m.Publish(context.Background(), testPost())
	if err == nil {
		t.Fatal("want error")
	}
	for _, want := range []string{"medium", "401", "Token was invalid"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("err = %v, want substring %q", err, want)
		}
	}
}

func TestMedium_CreateFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"u-1"}}`)
	})
	mux.HandleFunc("/users/u-1/posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errors":[{"message":"Tag may not be longer than 25 characters.","code":2002}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := NewMedium("tok-1", "public", srv.Client(), srv.URL)
	_, err := m.Publish(context.Background(), testPost())
	if err == nil || !strings.Contains(err.Error(), "failed to create post: 400") {
		t.Errorf("err = %v, want create failure with status", err)
	}
}
