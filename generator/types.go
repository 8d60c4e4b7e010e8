package generator

// Post is the generated article handed to the formatter.
type Post struct {
	Title string
	// Body is Markdown.
	Body     string
	Tags     []string
	ImageURL string
	// Fallback marks posts built from the static template after a provider
	// failure.
	Fallback bool
}
