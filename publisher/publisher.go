// Package publisher delivers a formatted post to exactly one blogging
// platform per run. Every destination implements the same interface, so the
// pipeline stays indifferent to whether the post travels over a REST API, a
// GraphQL mutation, or a scripted browser session.
package publisher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dailymuse/config"
	"dailymuse/formatter"
	"dailymuse/oauth"
)

// Result reports where a post ended up after a successful publish.
type Result struct {
	Destination string
	URL         string
	PostID      string
}

// Publisher sends one post to one destination. Implementations make a single
// publish attempt per call; transport-level retries are the HTTP client's
// business, never a second create.
type Publisher interface {
	// Destination names the platform, matching the config value.
	Destination() string
	Publish(ctx context.Context, post formatter.Post) (Result, error)
}

// New builds the publisher selected by cfg.Destination.
func New(ctx context.Context, cfg *config.Config) (Publisher, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout()}

	switch cfg.Destination {
	case "medium":
		return NewMedium(cfg.Medium.Token, cfg.Status, client, cfg.Medium.BaseURL), nil
	case "blogger":
		b := NewBlogger(cfg.Blogger.BlogID, cfg.Status, client, cfg.Blogger.BaseURL)
		if cfg.Blogger.ClientID != "" && cfg.Blogger.ClientSecret != "" {
			tok, err := oauth.LoadToken(cfg.Blogger.TokenFile)
			if err != nil {
				return nil, fmt.Errorf("blogger: load token from %s (run `dailymuse setup` to authorize): %w", cfg.Blogger.TokenFile, err)
			}
			conf := oauth.NewConfig(cfg.Blogger.ClientID, cfg.Blogger.ClientSecret, "")
			b.client = oauth.Client(ctx, conf, tok)
			b.client.Timeout = cfg.RequestTimeout()
		} else {
			b.apiKey = cfg.Blogger.APIKey
		}
		return b, nil
	case "devto":
		return NewDevto(cfg.Devto.APIKey, cfg.Status, client, cfg.Devto.BaseURL), nil
	case "hashnode":
		return NewHashnode(cfg.Hashnode.Token, cfg.Hashnode.PublicationID, client, cfg.Hashnode.Endpoint), nil
	case "browser":
		return NewBrowser(cfg.Browser.Email, cfg.Browser.Password, cfg.Browser.Visible), nil
	default:
		return nil, fmt.Errorf("unknown destination %q", cfg.Destination)
	}
}

// capTags trims a tag list to a platform's limit.
func capTags(tags []string, limit int) []string {
	if len(tags) <= limit {
		return tags
	}
	return tags[:limit]
}

// failedf turns a non-success response into an error that carries the status
// code and the start of the platform's own message.
func failedf(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("failed to %s: %d %s", op, resp.StatusCode, msg)
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
