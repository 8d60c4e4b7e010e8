package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"dailymuse/topics"
)

// Generator turns a topic into a publishable Post. Provider failures never
// escape: the static fallback post is substituted so the pipeline always has
// something to publish.
type Generator struct {
	llm         LLMClient
	limiter     *rate.Limiter
	baseTags    []string
	minWords    int
	maxWords    int
	contentTemp float64
	titleTemp   float64
}

// Options tune generation. Zero values use the product defaults.
type Options struct {
	Tags               []string
	MinWords           int
	MaxWords           int
	ContentTemperature float64
	TitleTemperature   float64
	// Limiter paces successive provider calls within a run.
	Limiter *rate.Limiter
}

func New(llm LLMClient, opts Options) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	g := &Generator{
		llm:         llm,
		limiter:     opts.Limiter,
		baseTags:    opts.Tags,
		minWords:    opts.MinWords,
		maxWords:    opts.MaxWords,
		contentTemp: opts.ContentTemperature,
		titleTemp:   opts.TitleTemperature,
	}
	if g.minWords <= 0 {
		g.minWords = 600
	}
	if g.maxWords <= 0 {
		g.maxWords = 800
	}
	if g.contentTemp <= 0 {
		g.contentTemp = 0.7
	}
	if g.titleTemp <= 0 {
		g.titleTemp = 0.8
	}
	return g, nil
}

// Generate produces the post for a topic. On any provider error it logs the
// failure and returns the fallback post instead; the returned Post is always
// publishable.
func (g *Generator) Generate(ctx context.Context, topic string) Post {
	tags := topics.TagsFor(topic, g.baseTags)
	post, err := g.generate(ctx, topic)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("content generation failed, using fallback post")
		return FallbackPost(topic, tags)
	}
	post.Tags = tags
	return post
}

func (g *Generator) generate(ctx context.Context, topic string) (Post, error) {
	if err := g.pace(ctx); err != nil {
		return Post{}, err
	}
	prompt := BuildContentPrompt(topic, g.minWords, g.maxWords)
	prompt.Temperature = g.contentTemp
	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return Post{}, fmt.Errorf("generate content: %w", err)
	}
	body, err := cleanBody(raw)
	if err != nil {
		return Post{}, fmt.Errorf("generate content: %w", err)
	}

	if err := g.pace(ctx); err != nil {
		return Post{}, err
	}
	titlePrompt := BuildTitlePrompt(topic)
	titlePrompt.Temperature = g.titleTemp
	rawTitle, err := g.llm.Complete(ctx, titlePrompt)
	if err != nil {
		return Post{}, fmt.Errorf("generate title: %w", err)
	}
	title, err := cleanTitle(rawTitle)
	if err != nil {
		return Post{}, fmt.Errorf("generate title: %w", err)
	}

	return Post{Title: title, Body: body}, nil
}

func (g *Generator) pace(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}
