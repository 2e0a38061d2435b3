package contract

import "context"

// Assistant is one language-specific conversational banker.
type Assistant interface {
	Converse(ctx context.Context, req AssistantRequest) (AssistantResponse, error)
}

// Registry resolves the banker for a session's language.
type Registry interface {
	Banker(lang Language) Assistant
}

// ToolGateway executes tool requests against a session's banking state.
// A session that cannot be resolved is a broken caller contract and is
// reported as an error wrapping ErrNoSession; business failures come back
// inside the ToolResult.
type ToolGateway interface {
	Execute(ctx context.Context, sessionID string, reqs []ToolRequest) ([]ToolResult, error)
}

// MemoryStore persists long-lived conversation summaries per customer.
type MemoryStore interface {
	ReadSummary(ctx context.Context, customerRef string) (string, error)
	WriteSummary(ctx context.Context, customerRef string, update string) error
}
