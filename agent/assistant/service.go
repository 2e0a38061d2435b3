package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	sessionx "github.com/omnibank/zenith-assistant/agent/session"
)

type Config struct {
	// DefaultLanguage tags sessions created by this service, e.g. "en-US"
	// or "es-ES". The session keeps its language for its whole life.
	DefaultLanguage string
}

// Service is the conversation entrypoint: it owns session lifecycle,
// memory summaries and banker routing for each incoming user message.
type Service struct {
	store   sessionx.Store
	bankers contractx.Registry
	memory  contractx.MemoryStore

	graphRunner compose.Runnable[GraphInput, GraphOutput]

	defaultLanguage string
	now             func() time.Time
}

func NewService(
	store sessionx.Store,
	bankers contractx.Registry,
	memory contractx.MemoryStore,
	cfg Config,
) (*Service, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if bankers == nil {
		return nil, errors.New("banker registry is required")
	}
	if memory == nil {
		memory = noopMemoryStore{}
	}

	language := strings.TrimSpace(cfg.DefaultLanguage)
	if language == "" {
		language = string(contractx.LanguageEnglish)
	}

	s := &Service{
		store:           store,
		bankers:         bankers,
		memory:          memory,
		defaultLanguage: language,
		now:             time.Now,
	}

	graphRunner, err := s.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// HandleMessage processes one user turn and returns the banker's reply.
func (s *Service) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := s.graphRunner.Invoke(ctx, GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

type noopMemoryStore struct{}

func (noopMemoryStore) ReadSummary(context.Context, string) (string, error) {
	return "", nil
}

func (noopMemoryStore) WriteSummary(context.Context, string, string) error {
	return nil
}
