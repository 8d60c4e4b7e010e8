// Package bot drives the daily pipeline: pick a topic, generate the post,
// attach a header image when the calendar says so, format it, and hand it to
// the configured destination.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"dailymuse/formatter"
	"dailymuse/generator"
	"dailymuse/publisher"
	"dailymuse/topics"
)

// Bot holds one configured pipeline. Images and Cadence are optional; Now is
// injectable so tests can pin the calendar, nil means time.Now.
type Bot struct {
	Selector  *topics.Selector
	Generator *generator.Generator
	Images    generator.ImageClient
	Cadence   generator.Cadence
	Publisher publisher.Publisher
	Now       func() time.Time
}

// New wires the required stages. Optional fields can be set on the returned
// Bot afterwards.
func New(selector *topics.Selector, gen *generator.Generator, pub publisher.Publisher) (*Bot, error) {
	if selector == nil || gen == nil || pub == nil {
		return nil, errors.New("selector, generator, and publisher are required")
	}
	return &Bot{Selector: selector, Generator: gen, Publisher: pub}, nil
}

func (b *Bot) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Compose runs every stage short of publishing: topic selection, content
// generation, the optional image, and formatting. The preview command reuses
// it as-is.
func (b *Bot) Compose(ctx context.Context) (formatter.Post, error) {
	now := b.now()

	topic := b.Selector.Pick(now)
	log.Info().Str("topic", topic).Msg("selected topic")

	post := b.Generator.Generate(ctx, topic)
	if post.Fallback {
		log.Info().Msg("running with the fallback post")
	}

	if b.Images != nil && b.Cadence != nil && b.Cadence(now) {
		url, err := b.Images.Generate(ctx, generator.BuildImagePrompt(topic))
		if err != nil {
			log.Warn().Err(err).Msg("image generation failed, continuing text-only")
		} else {
			post.ImageURL = url
			log.Info().Str("url", url).Msg("generated header image")
		}
	} else {
		log.Debug().Msg("text-only day")
	}

	formatted, err := formatter.Format(post, now)
	if err != nil {
		return formatter.Post{}, fmt.Errorf("format post: %w", err)
	}
	return formatted, nil
}

// Run composes one post and publishes it. Content trouble degrades inside
// Compose; a publish failure is the one error that surfaces.
func (b *Bot) Run(ctx context.Context) (publisher.Result, error) {
	post, err := b.Compose(ctx)
	if err != nil {
		return publisher.Result{}, err
	}

	log.Info().
		Str("destination", b.Publisher.Destination()).
		Str("title", post.Title).
		Msg("publishing")

	res, err := b.Publisher.Publish(ctx, post)
	if err != nil {
		return publisher.Result{}, fmt.Errorf("publish to %s: %w", b.Publisher.Destination(), err)
	}

	log.Info().Str("url", res.URL).Msg("published")
	return res, nil
}
