package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	assistantx "github.com/omnibank/zenith-assistant/agent/assistant"
	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	llmx "github.com/omnibank/zenith-assistant/agent/llm"
	sessionx "github.com/omnibank/zenith-assistant/agent/session"
	toolx "github.com/omnibank/zenith-assistant/agent/tool"
	configx "github.com/omnibank/zenith-assistant/pkg/config"
	_ "github.com/omnibank/zenith-assistant/pkg/logger/autoload"
	memoryx "github.com/omnibank/zenith-assistant/pkg/memory"
)

type AppConfig struct {
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" split_words:"true" default:"en-US"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("APP")
	llmCfg := configx.MustNew[llmx.Config]("LLM")

	ctx := context.Background()

	store := sessionx.NewMemoryStore()
	gateway, err := toolx.NewGateway(store, toolx.NewToolset())
	if err != nil {
		log.Fatal().Err(err).Msg("build tool gateway")
	}

	memory := openMemoryStore(ctx)
	if closer, ok := memory.(*memoryx.Store); ok {
		defer closer.Close()
	}

	bankers, err := assistantx.NewRegistry(ctx, *llmCfg, gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("build banker registry")
	}

	service, err := assistantx.NewService(store, bankers, memory, assistantx.Config{
		DefaultLanguage: appCfg.DefaultLanguage,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build assistant service")
	}

	runChatLoop(ctx, service, store, gateway, appCfg.DefaultLanguage)
}

// openMemoryStore returns the Postgres-backed summary store when MEMORY_DSN
// is set, nil otherwise. The service falls back to a no-op store on nil.
func openMemoryStore(ctx context.Context) contractx.MemoryStore {
	memoryCfg, err := configx.New[memoryx.Config]("MEMORY")
	if err != nil || strings.TrimSpace(memoryCfg.DSN) == "" {
		log.Info().Msg("memory store disabled, running without conversation summaries")
		return nil
	}

	store, err := memoryx.New(*memoryCfg)
	if err != nil {
		log.Warn().Err(err).Msg("open memory store failed, running without conversation summaries")
		return nil
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("ensure memory schema failed, running without conversation summaries")
		_ = store.Close()
		return nil
	}
	return store
}

func runChatLoop(
	ctx context.Context,
	service *assistantx.Service,
	store sessionx.Store,
	gateway contractx.ToolGateway,
	language string,
) {
	sessionID := fmt.Sprintf("cli-%d", time.Now().UnixNano())

	if err := store.Save(ctx, sessionx.New(sessionID, language, time.Now())); err != nil {
		log.Fatal().Err(err).Msg("create chat session")
	}

	results, err := gateway.Execute(ctx, sessionID, []contractx.ToolRequest{{Tool: toolx.ToolGreeting}})
	if err != nil {
		log.Fatal().Err(err).Msg("run greeting")
	}
	if len(results) == 1 && results[0].Error == "" {
		fmt.Printf("assistant> %s\n", results[0].Outcome.Greeting)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		reply, err := service.HandleMessage(ctx, sessionID, text)
		if err != nil {
			log.Error().Str("session_id", sessionID).Err(err).Msg("handle message failed")
			fmt.Println("assistant> Sorry, something went wrong. Please try again.")
			continue
		}
		fmt.Printf("assistant> %s\n", reply)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}
