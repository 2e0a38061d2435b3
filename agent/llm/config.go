package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	openrouterx "github.com/omnibank/zenith-assistant/pkg/openrouter"
)

// Config selects the chat model per banker language, with a shared default.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	EnglishModel       string  `envconfig:"ENGLISH_MODEL" split_words:"true"`
	SpanishModel       string  `envconfig:"SPANISH_MODEL" split_words:"true"`
	EnglishTemperature float32 `envconfig:"ENGLISH_TEMPERATURE" split_words:"true" default:"-1"`
	SpanishTemperature float32 `envconfig:"SPANISH_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouterFor(lang contractx.Language) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch lang {
	case contractx.LanguageEnglish:
		if v := strings.TrimSpace(c.EnglishModel); v != "" {
			modelName = v
		}
		if c.EnglishTemperature >= 0 {
			temp = c.EnglishTemperature
		}
	case contractx.LanguageSpanish:
		if v := strings.TrimSpace(c.SpanishModel); v != "" {
			modelName = v
		}
		if c.SpanishTemperature >= 0 {
			temp = c.SpanishTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
