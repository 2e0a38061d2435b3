package llm

import (
	"errors"
	"testing"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "sk-test", Model: "qwen/qwen3-30b"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if err := (Config{Model: "m"}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing api key error = %v, want ErrValidation", err)
	}
	if err := (Config{APIKey: "k"}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing model error = %v, want ErrValidation", err)
	}
}

func TestOpenRouterForLanguageOverrides(t *testing.T) {
	t.Parallel()

	cfg := Config{
		BaseURL:            "https://openrouter.ai/api/v1",
		APIKey:             "sk-test",
		Model:              "default-model",
		Temperature:        0.5,
		EnglishModel:       "english-model",
		SpanishTemperature: 0.2,
		EnglishTemperature: -1,
	}

	english := cfg.OpenRouterFor(contractx.LanguageEnglish)
	if english.Model != "english-model" {
		t.Fatalf("english model = %q, want english-model", english.Model)
	}
	if english.Temperature != 0.5 {
		t.Fatalf("english temperature = %v, want the shared default 0.5", english.Temperature)
	}

	spanish := cfg.OpenRouterFor(contractx.LanguageSpanish)
	if spanish.Model != "default-model" {
		t.Fatalf("spanish model = %q, want the shared default", spanish.Model)
	}
	if spanish.Temperature != 0.2 {
		t.Fatalf("spanish temperature = %v, want 0.2", spanish.Temperature)
	}
}
