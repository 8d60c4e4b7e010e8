// Package config loads the JSON runtime configuration, applies the product
// defaults, resolves secrets from environment variables, and validates the
// result before anything touches the network.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

// DefaultFile is where the CLI looks for configuration when --config is not
// given. A missing file is fine: every setting has a default or an env var.
const DefaultFile = "config.json"

const (
	DefaultDestination        = "medium"
	DefaultStatus             = "public"
	DefaultSelection          = "random"
	DefaultProvider           = "openai"
	DefaultModel              = "gpt-3.5-turbo"
	DefaultImageModel         = "dall-e-2"
	DefaultImageSize          = "1024x1024"
	DefaultImageCadence       = "alternate"
	DefaultMinWords           = 600
	DefaultMaxWords           = 800
	DefaultContentTemperature = 0.7
	DefaultTitleTemperature   = 0.8
	DefaultMaxRetries         = 3
	DefaultRequestTimeout     = 30
	DefaultTokenFile          = "token.json"
)

type Config struct {
	// Destination picks exactly one publishing variant per run.
	Destination string `json:"destination"`
	// Status is the platform publish state: public, draft, or unlisted.
	Status    string   `json:"status"`
	Selection string   `json:"selection"`
	Topics    []string `json:"topics,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	LLM      LLMConfig      `json:"llm"`
	Image    ImageConfig    `json:"image"`
	Medium   MediumConfig   `json:"medium"`
	Blogger  BloggerConfig  `json:"blogger"`
	Devto    DevtoConfig    `json:"devto"`
	Hashnode HashnodeConfig `json:"hashnode"`
	Browser  BrowserConfig  `json:"browser"`

	MinWords              int `json:"min_words"`
	MaxWords              int `json:"max_words"`
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	MaxRetries            int `json:"max_retries"`
}

type LLMConfig struct {
	Provider           string  `json:"provider"`
	Model              string  `json:"model"`
	APIKeyEnv          string  `json:"api_key_env"`
	BaseURL            string  `json:"base_url,omitempty"`
	ContentTemperature float64 `json:"content_temperature,omitempty"`
	TitleTemperature   float64 `json:"title_temperature,omitempty"`

	// Resolved from the env var at load time.
	APIKey string `json:"-"`
}

type ImageConfig struct {
	Cadence   string `json:"cadence"`
	Model     string `json:"model"`
	Size      string `json:"size"`
	APIKeyEnv string `json:"api_key_env,omitempty"`

	APIKey string `json:"-"`
}

type MediumConfig struct {
	TokenEnv string `json:"token_env,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`

	Token string `json:"-"`
}

type BloggerConfig struct {
	BlogID          string `json:"blog_id,omitempty"`
	APIKeyEnv       string `json:"api_key_env,omitempty"`
	ClientIDEnv     string `json:"client_id_env,omitempty"`
	ClientSecretEnv string `json:"client_secret_env,omitempty"`
	TokenFile       string `json:"token_file,omitempty"`
	BaseURL         string `json:"base_url,omitempty"`

	APIKey       string `json:"-"`
	ClientID     string `json:"-"`
	ClientSecret string `json:"-"`
}

type DevtoConfig struct {
	APIKeyEnv string `json:"api_key_env,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`

	APIKey string `json:"-"`
}

type HashnodeConfig struct {
	TokenEnv      string `json:"token_env,omitempty"`
	PublicationID string `json:"publication_id,omitempty"`
	Endpoint      string `json:"endpoint,omitempty"`

	Token string `json:"-"`
}

type BrowserConfig struct {
	EmailEnv    string `json:"email_env,omitempty"`
	PasswordEnv string `json:"password_env,omitempty"`
	// Visible runs the browser with a window, which helps when the login
	// flow needs a human watching.
	Visible bool `json:"visible,omitempty"`

	Email    string `json:"-"`
	Password string `json:"-"`
}

// RequestTimeout returns the per-request timeout for platform API calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Load reads path, applies defaults, resolves env vars, and validates. A
// missing file is not an error so purely env-driven runs work.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyDefaults(&cfg)
	resolveEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Destination == "" {
		cfg.Destination = DefaultDestination
	}
	if cfg.Status == "" {
		cfg.Status = DefaultStatus
	}
	if cfg.Selection == "" {
		cfg.Selection = DefaultSelection
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.LLM.APIKeyEnv == "" {
		switch cfg.LLM.Provider {
		case "deepseek":
			cfg.LLM.APIKeyEnv = "DEEPSEEK_API_KEY"
		case "gemini":
			cfg.LLM.APIKeyEnv = "GEMINI_API_KEY"
		default:
			cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
	if cfg.LLM.ContentTemperature == 0 {
		cfg.LLM.ContentTemperature = DefaultContentTemperature
	}
	if cfg.LLM.TitleTemperature == 0 {
		cfg.LLM.TitleTemperature = DefaultTitleTemperature
	}
	if cfg.Image.Cadence == "" {
		cfg.Image.Cadence = DefaultImageCadence
	}
	if cfg.Image.Model == "" {
		cfg.Image.Model = DefaultImageModel
	}
	if cfg.Image.Size == "" {
		cfg.Image.Size = DefaultImageSize
	}
	if cfg.Image.APIKeyEnv == "" {
		cfg.Image.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Medium.TokenEnv == "" {
		cfg.Medium.TokenEnv = "MEDIUM_TOKEN"
	}
	if cfg.Blogger.APIKeyEnv == "" {
		cfg.Blogger.APIKeyEnv = "BLOGGER_API_KEY"
	}
	if cfg.Blogger.ClientIDEnv == "" {
		cfg.Blogger.ClientIDEnv = "GOOGLE_CLIENT_ID"
	}
	if cfg.Blogger.ClientSecretEnv == "" {
		cfg.Blogger.ClientSecretEnv = "GOOGLE_CLIENT_SECRET"
	}
	if cfg.Blogger.TokenFile == "" {
		cfg.Blogger.TokenFile = DefaultTokenFile
	}
	if cfg.Devto.APIKeyEnv == "" {
		cfg.Devto.APIKeyEnv = "DEVTO_API_KEY"
	}
	if cfg.Hashnode.TokenEnv == "" {
		cfg.Hashnode.TokenEnv = "HASHNODE_API_KEY"
	}
	if cfg.Browser.EmailEnv == "" {
		cfg.Browser.EmailEnv = "GOOGLE_EMAIL"
	}
	if cfg.Browser.PasswordEnv == "" {
		cfg.Browser.PasswordEnv = "GOOGLE_PASSWORD"
	}
	if cfg.MinWords == 0 {
		cfg.MinWords = DefaultMinWords
	}
	if cfg.MaxWords == 0 {
		cfg.MaxWords = DefaultMaxWords
	}
	if cfg.RequestTimeoutSeconds == 0 {
		cfg.RequestTimeoutSeconds = DefaultRequestTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
}

func resolveEnv(cfg *Config) {
	cfg.LLM.APIKey = os.Getenv(cfg.LLM.APIKeyEnv)
	cfg.Image.APIKey = os.Getenv(cfg.Image.APIKeyEnv)
	cfg.Medium.Token = os.Getenv(cfg.Medium.TokenEnv)
	cfg.Blogger.APIKey = os.Getenv(cfg.Blogger.APIKeyEnv)
	cfg.Blogger.ClientID = os.Getenv(cfg.Blogger.ClientIDEnv)
	cfg.Blogger.ClientSecret = os.Getenv(cfg.Blogger.ClientSecretEnv)
	cfg.Devto.APIKey = os.Getenv(cfg.Devto.APIKeyEnv)
	cfg.Hashnode.Token = os.Getenv(cfg.Hashnode.TokenEnv)
	cfg.Browser.Email = os.Getenv(cfg.Browser.EmailEnv)
	cfg.Browser.Password = os.Getenv(cfg.Browser.PasswordEnv)

	// DALL-E runs on the OpenAI key even when another text provider is
	// configured, unless image.api_key_env points elsewhere.
	if cfg.Image.APIKey == "" && cfg.LLM.Provider != "gemini" {
		cfg.Image.APIKey = cfg.LLM.APIKey
	}
}

func validate(cfg *Config) error {
	var problems []string

	switch cfg.Destination {
	case "medium", "blogger", "devto", "hashnode", "browser":
	default:
		problems = append(problems, fmt.Sprintf("destination: unknown destination %q (want medium, blogger, devto, hashnode, or browser)", cfg.Destination))
	}

	switch cfg.Status {
	case "public", "draft", "unlisted":
	default:
		problems = append(problems, fmt.Sprintf("status: unknown status %q (want public, draft, or unlisted)", cfg.Status))
	}

	switch cfg.Selection {
	case "random", "daily":
	default:
		problems = append(problems, fmt.Sprintf("selection: unknown mode %q (want random or daily)", cfg.Selection))
	}

	switch cfg.Image.Cadence {
	case "daily", "alternate", "weekly", "never":
	default:
		problems = append(problems, fmt.Sprintf("image.cadence: unknown cadence %q (want daily, alternate, weekly, or never)", cfg.Image.Cadence))
	}

	if cfg.Topics != nil && len(cfg.Topics) == 0 {
		problems = append(problems, "topics: must not be empty when set")
	}

	switch cfg.LLM.Provider {
	case "openai", "gemini", "mock":
	case "deepseek":
		if cfg.LLM.BaseURL == "" {
			problems = append(problems, "llm.base_url: required for provider deepseek (OpenAI-compatible endpoint)")
		}
	default:
		problems = append(problems, fmt.Sprintf("llm.provider: unknown provider %q (want openai, deepseek, gemini, or mock)", cfg.LLM.Provider))
	}
	if cfg.LLM.Provider != "mock" && cfg.LLM.APIKey == "" {
		problems = append(problems, fmt.Sprintf("llm: api key missing; set %s or llm.api_key_env", cfg.LLM.APIKeyEnv))
	}

	if cfg.MinWords <= 0 || cfg.MaxWords < cfg.MinWords {
		problems = append(problems, fmt.Sprintf("min_words/max_words: invalid range %d-%d", cfg.MinWords, cfg.MaxWords))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// CheckDestination verifies the credentials the configured destination
// needs. Commands that never publish, like preview, skip this.
func (c *Config) CheckDestination() error {
	var problems []string

	switch c.Destination {
	case "medium":
		if c.Medium.Token == "" {
			problems = append(problems, fmt.Sprintf("medium: token missing; set %s or medium.token_env", c.Medium.TokenEnv))
		}
	case "blogger":
		if c.Blogger.BlogID == "" {
			problems = append(problems, "blogger.blog_id: required (run `dailymuse blogs` to find it)")
		}
		hasOAuth := c.Blogger.ClientID != "" && c.Blogger.ClientSecret != ""
		if !hasOAuth && c.Blogger.APIKey == "" {
			problems = append(problems, fmt.Sprintf("blogger: credentials missing; set %s/%s for OAuth or %s for key-based access",
				c.Blogger.ClientIDEnv, c.Blogger.ClientSecretEnv, c.Blogger.APIKeyEnv))
		}
	case "devto":
		if c.Devto.APIKey == "" {
			problems = append(problems, fmt.Sprintf("devto: api key missing; set %s or devto.api_key_env", c.Devto.APIKeyEnv))
		}
	case "hashnode":
		if c.Hashnode.Token == "" {
			problems = append(problems, fmt.Sprintf("hashnode: token missing; set %s or hashnode.token_env", c.Hashnode.TokenEnv))
		}
		if c.Hashnode.PublicationID == "" {
			problems = append(problems, "hashnode.publication_id: required")
		}
	case "browser":
		if c.Browser.Email == "" || c.Browser.Password == "" {
			problems = append(problems, fmt.Sprintf("browser: login missing; set %s and %s", c.Browser.EmailEnv, c.Browser.PasswordEnv))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("validate config: %s", strings.Join(problems, "; "))
	}
	return nil
}
