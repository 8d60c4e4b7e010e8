package cli

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"dailymuse/bot"
	"dailymuse/config"
	"dailymuse/generator"
	"dailymuse/publisher"
	"dailymuse/topics"
)

// buildComposer assembles every pipeline stage short of the publisher. The
// shared limiter keeps all provider calls in a run to one per second.
func buildComposer(cfg *config.Config) (*bot.Bot, error) {
	selector, err := topics.NewSelector(topics.Mode(cfg.Selection), cfg.Topics, nil)
	if err != nil {
		return nil, err
	}

	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Every(time.Second), 1)
	gen, err := generator.New(llm, generator.Options{
		Tags:               cfg.Tags,
		MinWords:           cfg.MinWords,
		MaxWords:           cfg.MaxWords,
		ContentTemperature: cfg.LLM.ContentTemperature,
		TitleTemperature:   cfg.LLM.TitleTemperature,
		Limiter:            limiter,
	})
	if err != nil {
		return nil, err
	}

	cadence, err := generator.CadenceFor(cfg.Image.Cadence)
	if err != nil {
		return nil, err
	}

	b := &bot.Bot{Selector: selector, Generator: gen, Cadence: cadence}

	// Without an image key the run is text-only.
	if cfg.Image.Cadence != "never" && cfg.Image.APIKey != "" {
		images, err := generator.NewOpenAIImageFromConfig(&generator.ImageSettings{
			Model:      cfg.Image.Model,
			Size:       cfg.Image.Size,
			APIKey:     cfg.Image.APIKey,
			MaxRetries: cfg.MaxRetries,
			Limiter:    limiter,
		})
		if err != nil {
			return nil, err
		}
		b.Images = images
	}

	return b, nil
}

// buildBot extends the composer with the configured destination.
func buildBot(ctx context.Context, cfg *config.Config) (*bot.Bot, error) {
	b, err := buildComposer(cfg)
	if err != nil {
		return nil, err
	}
	pub, err := publisher.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.Publisher = pub
	return b, nil
}

func buildLLM(cfg *config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider:   cfg.LLM.Provider,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		MaxRetries: cfg.MaxRetries,
	}
	switch cfg.LLM.Provider {
	case "openai", "deepseek":
		return generator.NewOpenAILLMFromConfig(settings)
	case "gemini":
		return generator.NewGeminiLLMFromConfig(settings)
	case "mock":
		return &generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
