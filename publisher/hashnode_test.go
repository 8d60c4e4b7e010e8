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
)

func TestHashnode_Publish(t *testing.T) {
	var gotReq hashnodeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "hn-token" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"data":{"createPublicationPost":{"post":{
			"id":"hn-1","title":"The Future of Artificial Intelligence in Healthcare",
			"url":"https://muse.hashnode.dev/the-future-of-ai"}}}}`)
	}))
	defer srv.Close()

	h := NewHashnode("hn-token", "pub-1", srv.Client(), srv.URL)
	res, err := h.Publish(context.Background(), testPost())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	want := Result{Destination: "hashnode", URL: "https://muse.hashnode.dev/the-future-of-ai", PostID: "hn-1"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(gotReq.Query, "CreatePublicationPost") {
		t.Errorf("query = %q", gotReq.Query)
	}
	input := gotReq.Variables.Input
	if input.PublicationID != "pub-1" {
		t.Errorf("publicationId = %q", input.PublicationID)
	}
	if input.ContentMarkdown != testPost().Markdown {
		t.Errorf("contentMarkdown = %q", input.ContentMarkdown)
	}
	wantTags := []hashnodeTag{{Name: "technology"}, {Name: "ai"}, {Name: "innovation"}}
	if diff := cmp.Diff(wantTags, input.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestHashnode_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"errors":[{"message":"Publication not found"}]}`)
	}))
	defer srv.Close()

	h := NewHashnode("hn-token", "missing", srv.Client(), srv.URL)
	_, err := h.Publish(context.Background(), testPost())
	if err == nil || !strings.Contains(err.Error(), "Publication not found") {
		t.Errorf("err = %v, want graphql error surfaced", err)
	}
}

func TestHashnode_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	h := NewHashnode("hn-token", "pub-1", srv.Client(), srv.URL)
	_, err := h.Publish(context.Background(), testPost())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("err = %v, want status surfaced", err)
	}
}
