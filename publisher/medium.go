package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dailymuse/formatter"
)

const defaultMediumBaseURL = "https://api.medium.com/v1"

// Medium caps post tags at five.
const maxMediumTags = 5

type mediumUserResp struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

type mediumPostPayload struct {
	Title         string   `json:"title"`
	ContentFormat string   `json:"contentFormat"`
	Content       string   `json:"content"`
	PublishStatus string   `json:"publishStatus"`
	Tags          []string `json:"tags,omitempty"`
}

type mediumPostResp struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
}

// Medium publishes through the Medium REST API using an integration token.
type Medium struct {
	token   string
	status  string
	client  *http.Client
	baseURL string
}

func NewMedium(token, status string, client *http.Client, baseURL string) *Medium {
	if client == nil {
		client = defaultClient()
	}
	if baseURL == "" {
		baseURL = defaultMediumBaseURL
	}
	return &Medium{token: token, status: status, client: client, baseURL: baseURL}
}

func (m *Medium) Destination() string { return "medium" }

// Publish looks up the token owner's user ID, then creates the post under it.
func (m *Medium) Publish(ctx context.Context, post formatter.Post) (Result, error) {
	userID, err := getMediumUserID(ctx, m.client, m.baseURL, m.token)
	if err != nil {
		return Result{}, fmt.Errorf("medium: %w", err)
	}

	payload := mediumPostPayload{
		Title:         post.Title,
		ContentFormat: "html",
		Content:       post.HTML,
		PublishStatus: m.status,
		Tags:          capTags(post.Tags, maxMediumTags),
	}
	created, err := createMediumPost(ctx, m.client, m.baseURL, m.token, userID, payload)
	if err != nil {
		return Result{}, fmt.Errorf("medium: %w", err)
	}

	return Result{Destination: "medium", URL: created.Data.URL, PostID: created.Data.ID}, nil
}

func getMediumUserID(ctx context.Context, client *http.Client, baseURL, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"/me", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", failedf("fetch user", resp)
	}

	var data mediumUserResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.Data.ID == "" {
		return "", fmt.Errorf("failed to fetch user: response carried no user id")
	}
	return data.Data.ID, nil
}

func createMediumPost(ctx context.Context, client *http.Client, baseURL, token, userID string, payload mediumPostPayload) (*mediumPostResp, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users/%s/posts", baseURL, userID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, failedf("create post", resp)
	}

	var data mediumPostResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Data.URL == "" {
		return nil, fmt.Errorf("failed to create post: response carried no url")
	}
	return &data, nil
}
