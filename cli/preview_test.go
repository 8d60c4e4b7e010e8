package cli

import (
	"strings"
	"testing"

	"dailymuse/formatter"
)

func TestPreviewFile(t *testing.T) {
	post := formatter.Post{
		Title:    "Quantum Leaps Ahead",
		Markdown: "*Published on August 21, 2026 | Generated by AI*\n\nBody words go here for the count.\n\n---\n\n*footer*\n",
		Tags:     []string{"technology", "ai", "innovation", "future", "automation", "extra"},
	}

	got := previewFile(post)

	if !strings.HasPrefix(got, "# Quantum Leaps Ahead\n\n") {
		t.Errorf("missing title heading:\n%s", got)
	}
	if !strings.Contains(got, "*Published on August 21, 2026 | Generated by AI*") {
		t.Error("formatted markdown not carried over")
	}
	if !strings.Contains(got, "**Tags for Medium:** technology, ai, innovation, future, automation\n") {
		t.Errorf("tags line wrong:\n%s", got)
	}
	if strings.Contains(got, "extra") {
		t.Error("tags beyond five leaked into the preview")
	}
	if !strings.Contains(got, "**Estimated reading time:** 1 min read") {
		t.Errorf("reading time line wrong:\n%s", got)
	}
	if !strings.Contains(got, "Instructions for posting to Medium") {
		t.Error("posting instructions missing")
	}
}
