package topics

import "strings"

// Platforms cap tags hard (Medium allows five), so derivation stops there.
const maxTags = 5

var keywordTags = []struct {
	keyword string
	tags    []string
}{
	{"remote", []string{"remote-work", "workplace"}},
	{"health", []string{"healthcare", "digital-health"}},
	{"cyber", []string{"cybersecurity", "privacy"}},
	{"sustain", []string{"sustainability", "green-tech"}},
}

// TagsFor derives the tag list for a topic: keyword-derived tags first so
// they survive the cap, then the base tags, deduplicated, capped at five.
// A nil or empty base falls back to DefaultTags.
func TagsFor(topic string, base []string) []string {
	if len(base) == 0 {
		base = DefaultTags
	}

	lower := strings.ToLower(topic)
	candidates := make([]string, 0, len(base)+4)
	for _, kt := range keywordTags {
		if strings.Contains(lower, kt.keyword) {
			candidates = append(candidates, kt.tags...)
		}
	}
	candidates = append(candidates, base...)

	seen := make(map[string]bool, len(candidates))
	tags := make([]string, 0, maxTags)
	for _, tag := range candidates {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
