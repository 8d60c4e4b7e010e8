package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dailymuse/formatter"
)

const defaultBloggerBaseURL = "https://www.googleapis.com/blogger/v3"

type bloggerPostPayload struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels,omitempty"`
}

type bloggerPostResp struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type bloggerBlogsResp struct {
	Items []BlogInfo `json:"items"`
}

// BlogInfo identifies one blog on the authorized Google account.
type BlogInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Blogger publishes through the Blogger v3 API. The client is either a plain
// one paired with an API key, or an OAuth client that injects the bearer
// token itself.
type Blogger struct {
	blogID  string
	status  string
	apiKey  string
	client  *http.Client
	baseURL string
}

func NewBlogger(blogID, status string, client *http.Client, baseURL string) *Blogger {
	if client == nil {
		client = defaultClient()
	}
	if baseURL == "" {
		baseURL = defaultBloggerBaseURL
	}
	return &Blogger{blogID: blogID, status: status, client: client, baseURL: baseURL}
}

func (b *Blogger) Destination() string { return "blogger" }

// Publish inserts the post into the configured blog. Blogger has no unlisted
// state, so only draft changes the request; unlisted publishes as public.
func (b *Blogger) Publish(ctx context.Context, post formatter.Post) (Result, error) {
	payload := bloggerPostPayload{
		Kind:    "blogger#post",
		Title:   post.Title,
		Content: post.HTML,
		Labels:  post.Tags,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/blogs/%s/posts", b.baseURL, b.blogID), bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	q := req.URL.Query()
	if b.apiKey != "" {
		q.Set("key", b.apiKey)
	}
	if b.status == "draft" {
		q.Set("isDraft", "true")
	}
	req.URL.RawQuery = q.Encode()

	resp, err := b.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("blogger: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("blogger: %w", failedf("create post", resp))
	}

	var data bloggerPostResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{}, fmt.Errorf("blogger: %w", err)
	}
	if data.URL == "" {
		return Result{}, fmt.Errorf("blogger: failed to create post: response carried no url")
	}

	return Result{Destination: "blogger", URL: data.URL, PostID: data.ID}, nil
}

// ListBlogs returns the blogs the authorized account can post to. Useful for
// finding the blog_id to put in the config.
func (b *Blogger) ListBlogs(ctx context.Context) ([]BlogInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", b.baseURL+"/users/self/blogs", nil)
	if err != nil {
		return nil, err
	}
	if b.apiKey != "" {
		q := req.URL.Query()
		q.Set("key", b.apiKey)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blogger: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blogger: %w", failedf("list blogs", resp))
	}

	var data bloggerBlogsResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("blogger: %w", err)
	}
	return data.Items, nil
}
