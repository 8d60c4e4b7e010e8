// Package formatter turns a generated post into the exact payload bodies the
// publishing destinations accept.
package formatter

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"dailymuse/generator"
)

const attribution = "This blog post was automatically generated using AI technology. Stay tuned for more insights on technology, innovation, and the future!"

// Post is the formatted article. Markdown and HTML are two renderings of the
// same body; each destination sends the one its API takes.
type Post struct {
	Title    string
	Markdown string
	HTML     string
	Tags     []string
}

// Format renders src for publishing on the given date. It is deterministic:
// the same post and date always produce the same output.
func Format(src generator.Post, now time.Time) (Post, error) {
	var sb strings.Builder
	if src.ImageURL != "" {
		sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", src.Title, src.ImageURL))
	}
	sb.WriteString(fmt.Sprintf("*Published on %s | Generated by AI*\n\n", now.Format("January 2, 2006")))
	sb.WriteString(strings.TrimSpace(src.Body))
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", attribution))

	md := sb.String()
	html, err := mdToHTML(md)
	if err != nil {
		return Post{}, fmt.Errorf("render html: %w", err)
	}

	return Post{
		Title:    src.Title,
		Markdown: md,
		HTML:     styleImages(html),
		Tags:     dedupeTags(src.Tags),
	}, nil
}

// ReadingTime estimates minutes to read at 200 words per minute.
func ReadingTime(body string) int {
	return len(strings.Fields(body))/200 + 1
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var imgParagraphRe = regexp.MustCompile(`<p><img src="([^"]*)" alt="([^"]*)"></p>`)

// Blog platforms keep inline styles but strip stylesheets, so the header
// image gets its presentation inline.
func styleImages(html string) string {
	return imgParagraphRe.ReplaceAllString(html,
		`<div style="text-align: center; margin: 20px 0;"><img src="$1" alt="$2" style="max-width: 100%; height: auto; border-radius: 8px;"/></div>`)
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
