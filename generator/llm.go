package generator

import "context"

// LLMClient abstracts the text-generation provider so it can be swapped or
// mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings carries the provider configuration shared by implementations.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	// MaxRetries is passed through to SDKs that retry transient failures
	// themselves.
	MaxRetries int
}
