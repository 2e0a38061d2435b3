package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	sessionx "github.com/omnibank/zenith-assistant/agent/session"
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

type graphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session       *sessionx.State
	MemorySummary string
	Reply         string
}

func (s *Service) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[GraphInput, GraphOutput], error) {
	graph := compose.NewGraph[GraphInput, GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in GraphInput) (*graphState, error) {
			return s.validateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_or_create_session",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return s.loadOrCreateSession(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_session: %w", err)
	}

	if err := graph.AddLambdaNode("read_memory",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return s.readMemory(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node read_memory: %w", err)
	}

	if err := graph.AddLambdaNode("converse",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return s.converse(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node converse: %w", err)
	}

	if err := graph.AddLambdaNode("save_session",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return s.saveSession(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_session: %w", err)
	}

	if err := graph.AddLambdaNode("write_memory",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return s.writeMemory(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node write_memory: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			return finalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_or_create_session"},
		{"load_or_create_session", "read_memory"},
		{"read_memory", "converse"},
		{"converse", "save_session"},
		{"save_session", "write_memory"},
		{"write_memory", "finalize_reply"},
		{"finalize_reply", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("assistant.handle_message"))
	if err != nil {
		return nil, fmt.Errorf("compile assistant graph: %w", err)
	}
	return runner, nil
}

func (s *Service) validateRequest(in GraphInput) (*graphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is empty", contractx.ErrNoSession)
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: user message is empty", contractx.ErrValidation)
	}
	return &graphState{
		SessionID: sessionID,
		Text:      text,
		Now:       s.now(),
	}, nil
}

// loadOrCreateSession also saves a freshly created session right away so the
// tool gateway can resolve it mid-turn.
func (s *Service) loadOrCreateSession(ctx context.Context, in *graphState) (*graphState, error) {
	st, err := s.store.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, sessionx.ErrStateNotFound) {
			return nil, err
		}
		st = sessionx.New(in.SessionID, s.defaultLanguage, in.Now)
		if err := s.store.Save(ctx, st); err != nil {
			return nil, err
		}
	}
	in.Session = st
	return in, nil
}

// Memory is auxiliary: failures are logged, never turn-fatal.
func (s *Service) readMemory(ctx context.Context, in *graphState) (*graphState, error) {
	summary, err := s.memory.ReadSummary(ctx, s.memoryRef(in.Session))
	if err != nil {
		log.Warn().Str("session_id", in.SessionID).Err(err).Msg("read memory summary failed")
		return in, nil
	}
	in.MemorySummary = summary
	return in, nil
}

func (s *Service) converse(ctx context.Context, in *graphState) (*graphState, error) {
	banker := s.bankers.Banker(contractx.RouteLanguage(in.Session.Language))
	if banker == nil {
		return nil, fmt.Errorf("%w: no banker for language=%s", contractx.ErrValidation, in.Session.Language)
	}

	resp, err := banker.Converse(ctx, contractx.AssistantRequest{
		SessionID:     in.SessionID,
		UserMessage:   in.Text,
		MemorySummary: in.MemorySummary,
	})
	if err != nil {
		return nil, err
	}
	in.Reply = resp.Reply
	return in, nil
}

func (s *Service) saveSession(ctx context.Context, in *graphState) (*graphState, error) {
	in.Session.Touch(in.Now)
	if err := s.store.Save(ctx, in.Session); err != nil {
		return nil, err
	}
	return in, nil
}

// writeMemory keeps a running note of the latest exchange once a verified
// customer is bound to the session.
func (s *Service) writeMemory(ctx context.Context, in *graphState) (*graphState, error) {
	if in.Session.CurrentProfile == nil {
		return in, nil
	}
	update := fmt.Sprintf("user: %s\nassistant: %s", in.Text, in.Reply)
	if err := s.memory.WriteSummary(ctx, in.Session.CurrentProfile.CustomerID, update); err != nil {
		log.Warn().Str("session_id", in.SessionID).Err(err).Msg("write memory summary failed")
	}
	return in, nil
}

func finalizeReply(in *graphState) (GraphOutput, error) {
	reply := strings.TrimSpace(in.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: banker returned empty reply", contractx.ErrSchemaViolation)
	}
	return GraphOutput{Reply: reply}, nil
}

func (s *Service) memoryRef(st *sessionx.State) string {
	if st.CurrentProfile != nil {
		return st.CurrentProfile.CustomerID
	}
	return st.SessionID
}
