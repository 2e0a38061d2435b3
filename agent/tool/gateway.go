package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	sessionx "github.com/omnibank/zenith-assistant/agent/session"
)

// Gateway resolves the session for each batch of tool requests, holds its
// lock across the whole read-check-mutate sequence, seeds the banking state
// if absent, dispatches, and saves.
type Gateway struct {
	store sessionx.Store
	tools *Toolset
}

var _ contractx.ToolGateway = (*Gateway)(nil)

func NewGateway(store sessionx.Store, tools *Toolset) (*Gateway, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if tools == nil {
		tools = NewToolset()
	}
	return &Gateway{store: store, tools: tools}, nil
}

// Execute runs the requests in order against the session's state. An
// unresolvable session is a broken caller contract and aborts the call;
// everything else is reported inside the results.
func (g *Gateway) Execute(ctx context.Context, sessionID string, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id is empty", contractx.ErrNoSession)
	}

	if locker, ok := g.store.(sessionx.Locker); ok {
		release := locker.Acquire(sessionID)
		defer release()
	}

	st, err := g.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: load session %s: %v", contractx.ErrNoSession, sessionID, err)
	}

	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		outcome, err := g.tools.Dispatch(st, req.Tool, req.Args)
		if err != nil {
			log.Debug().Str("session_id", sessionID).Str("tool", req.Tool).Err(err).Msg("tool dispatch rejected")
			results = append(results, contractx.ToolResult{Tool: req.Tool, Error: err.Error()})
			continue
		}
		log.Debug().Str("session_id", sessionID).Str("tool", req.Tool).Str("status", string(outcome.Status)).Msg("tool executed")
		results = append(results, contractx.ToolResult{Tool: req.Tool, Outcome: outcome})
	}

	if err := g.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return results, nil
}
