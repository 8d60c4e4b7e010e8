package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"
)

// Cadence reports whether image generation should run on a given date. It
// is a pure function of the date so tests can feed it arbitrary days.
type Cadence func(time.Time) bool

// CadenceFor maps a configured cadence name to its predicate. Image calls
// are the expensive part of a run, so the default only fires every other
// day.
func CadenceFor(mode string) (Cadence, error) {
	switch mode {
	case "daily":
		return func(time.Time) bool { return true }, nil
	case "alternate":
		return func(t time.Time) bool { return t.YearDay()%2 == 0 }, nil
	case "weekly":
		return func(t time.Time) bool { return t.Weekday() == time.Monday }, nil
	case "never":
		return func(time.Time) bool { return false }, nil
	default:
		return nil, fmt.Errorf("unknown image cadence %q (want daily, alternate, weekly, or never)", mode)
	}
}

// ImageClient generates one illustration and returns a URL for it.
type ImageClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageSettings configures the OpenAI image client.
type ImageSettings struct {
	Model      string
	Size       string
	APIKey     string
	BaseURL    string
	MaxRetries int
	Limiter    *rate.Limiter
}

// OpenAIImage implements ImageClient over the openai-go images endpoint.
type OpenAIImage struct {
	Model   string
	Size    string
	Opts    []option.RequestOption
	Limiter *rate.Limiter
}

func NewOpenAIImageFromConfig(cfg *ImageSettings) (*OpenAIImage, error) {
	if cfg == nil {
		return nil, errors.New("image config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("image api key missing; provide image.api_key_env or llm credentials")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	return &OpenAIImage{
		Model:   cfg.Model,
		Size:    cfg.Size,
		Opts:    opts,
		Limiter: cfg.Limiter,
	}, nil
}

func (c *OpenAIImage) Generate(ctx context.Context, prompt string) (string, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	client := openai.NewClient(c.Opts...)
	params := openai.ImageGenerateParams{
		Prompt:         prompt,
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	}
	if c.Model != "" {
		params.Model = openai.ImageModel(c.Model)
	}
	if c.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(c.Size)
	}

	resp, err := client.Images.Generate(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("openai: empty image data")
	}
	return resp.Data[0].URL, nil
}
