package assistant

import (
	"context"
	"fmt"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	llmx "github.com/omnibank/zenith-assistant/agent/llm"
	promptx "github.com/omnibank/zenith-assistant/agent/prompt"
)

type registryImpl struct {
	english contractx.Assistant
	spanish contractx.Assistant
}

func (r *registryImpl) Banker(lang contractx.Language) contractx.Assistant {
	if lang == contractx.LanguageSpanish {
		return r.spanish
	}
	return r.english
}

// NewRegistry builds the English and Spanish bankers, each with its own
// model configuration and instruction prompt, sharing one tool gateway.
func NewRegistry(ctx context.Context, cfg llmx.Config, gateway contractx.ToolGateway) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	languages := []contractx.Language{contractx.LanguageEnglish, contractx.LanguageSpanish}
	bankers := make(map[contractx.Language]contractx.Assistant, len(languages))
	for _, lang := range languages {
		modelCfg := cfg.OpenRouterFor(lang)
		chatModel, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create model for banker=%s: %v", contractx.ErrModelInvoke, lang, err)
		}
		banker, err := newBanker(ctx, lang, chatModel, prompts.For(lang), gateway)
		if err != nil {
			return nil, err
		}
		bankers[lang] = banker
	}

	return &registryImpl{
		english: bankers[contractx.LanguageEnglish],
		spanish: bankers[contractx.LanguageSpanish],
	}, nil
}
