package prompt

import (
	_ "embed"
	"strings"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
)

var (
	//go:embed template/banker_en.txt
	bankerEnglishRaw string

	//go:embed template/banker_es.txt
	bankerSpanishRaw string
)

// PromptSet holds the banker instructions per language.
type PromptSet struct {
	English string
	Spanish string
}

// LoadPromptSet returns trimmed prompt strings. The embed is compile-time,
// so this is safe to call concurrently.
func LoadPromptSet() PromptSet {
	return PromptSet{
		English: strings.TrimSpace(bankerEnglishRaw),
		Spanish: strings.TrimSpace(bankerSpanishRaw),
	}
}

func (p PromptSet) For(lang contractx.Language) string {
	if lang == contractx.LanguageSpanish {
		return p.Spanish
	}
	return p.English
}
