package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dailymuse/formatter"
)

const defaultDevtoBaseURL = "https://dev.to/api"

// Dev.to rejects articles with more than four tags.
const maxDevtoTags = 4

type devtoArticle struct {
	Title        string   `json:"title"`
	BodyMarkdown string   `json:"body_markdown"`
	Published    bool     `json:"published"`
	Tags         []string `json:"tags,omitempty"`
}

type devtoArticlePayload struct {
	Article devtoArticle `json:"article"`
}

type devtoArticleResp struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Devto publishes through the Forem articles API. Dev.to has no unlisted
// state, so anything other than public lands as an unpublished draft.
type Devto struct {
	apiKey  string
	status  string
	client  *http.Client
	baseURL string
}

func NewDevto(apiKey, status string, client *http.Client, baseURL string) *Devto {
	if client == nil {
		client = defaultClient()
	}
	if baseURL == "" {
		baseURL = defaultDevtoBaseURL
	}
	return &Devto{apiKey: apiKey, status: status, client: client, baseURL: baseURL}
}

func (d *Devto) Destination() string { return "devto" }

func (d *Devto) Publish(ctx context.Context, post formatter.Post) (Result, error) {
	payload := devtoArticlePayload{Article: devtoArticle{
		Title:        post.Title,
		BodyMarkdown: post.Markdown,
		Published:    d.status == "public",
		Tags:         capTags(post.Tags, maxDevtoTags),
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.baseURL+"/articles", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("api-key", d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("devto: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return Result{}, fmt.Errorf("devto: %w", failedf("create article", resp))
	}

	var data devtoArticleResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{}, fmt.Errorf("devto: %w", err)
	}
	if data.URL == "" {
		return Result{}, fmt.Errorf("devto: failed to create article: response carried no url")
	}

	return Result{Destination: "devto", URL: data.URL, PostID: fmt.Sprintf("%d", data.ID)}, nil
}
