package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Model output shorter than this is treated as a provider failure so the
// fallback kicks in instead of publishing a stub.
const minBodyWords = 100

func cleanBody(raw string) (string, error) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return "", errors.New("model returned empty content")
	}
	if words := len(strings.Fields(body)); words < minBodyWords {
		return "", fmt.Errorf("model returned %d words, want at least %d", words, minBodyWords)
	}
	return body, nil
}

// cleanTitle normalizes a model-produced title: first line only, stripped of
// surrounding quotes and Markdown heading markers.
func cleanTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimLeft(title, "# ")
	title = strings.Trim(title, "\"'“”‘’")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return "", errors.New("model returned empty title")
	}
	return title, nil
}
