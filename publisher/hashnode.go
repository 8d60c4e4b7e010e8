package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dailymuse/formatter"
)

const defaultHashnodeEndpoint = "https://api.hashnode.com"

// Hashnode publication posts carry at most three tags.
const maxHashnodeTags = 3

const createPostMutation = `
mutation CreatePublicationPost($input: CreatePostInput!) {
    createPublicationPost(input: $input) {
        post {
            id
            title
            url
        }
    }
}`

type hashnodeTag struct {
	Name string `json:"name"`
}

type hashnodePostInput struct {
	Title           string        `json:"title"`
	ContentMarkdown string        `json:"contentMarkdown"`
	PublicationID   string        `json:"publicationId"`
	Tags            []hashnodeTag `json:"tags"`
}

type hashnodeRequest struct {
	Query     string `json:"query"`
	Variables struct {
		Input hashnodePostInput `json:"input"`
	} `json:"variables"`
}

type hashnodeResponse struct {
	Data struct {
		CreatePublicationPost struct {
			Post struct {
				ID    string `json:"id"`
				Title string `json:"title"`
				URL   string `json:"url"`
			} `json:"post"`
		} `json:"createPublicationPost"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Hashnode publishes through the Hashnode GraphQL API into a publication.
// The mutation has no draft switch, so the post always goes live.
type Hashnode struct {
	token         string
	publicationID string
	client        *http.Client
	endpoint      string
}

func NewHashnode(token, publicationID string, client *http.Client, endpoint string) *Hashnode {
	if client == nil {
		client = defaultClient()
	}
	if endpoint == "" {
		endpoint = defaultHashnodeEndpoint
	}
	return &Hashnode{token: token, publicationID: publicationID, client: client, endpoint: endpoint}
}

func (h *Hashnode) Destination() string { return "hashnode" }

func (h *Hashnode) Publish(ctx context.Context, post formatter.Post) (Result, error) {
	var reqBody hashnodeRequest
	reqBody.Query = createPostMutation
	reqBody.Variables.Input = hashnodePostInput{
		Title:           post.Title,
		ContentMarkdown: post.Markdown,
		PublicationID:   h.publicationID,
		Tags:            hashnodeTags(post.Tags),
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("hashnode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("hashnode: %w", failedf("create post", resp))
	}

	var data hashnodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{}, fmt.Errorf("hashnode: %w", err)
	}
	if len(data.Errors) > 0 {
		msgs := make([]string, 0, len(data.Errors))
		for _, e := range data.Errors {
			msgs = append(msgs, e.Message)
		}
		return Result{}, fmt.Errorf("hashnode: failed to create post: %s", strings.Join(msgs, "; "))
	}

	created := data.Data.CreatePublicationPost.Post
	if created.URL == "" {
		return Result{}, errors.New("hashnode: failed to create post: response carried no url")
	}

	return Result{Destination: "hashnode", URL: created.URL, PostID: created.ID}, nil
}

func hashnodeTags(tags []string) []hashnodeTag {
	capped := capTags(tags, maxHashnodeTags)
	out := make([]hashnodeTag, 0, len(capped))
	for _, t := range capped {
		out = append(out, hashnodeTag{Name: t})
	}
	return out
}
