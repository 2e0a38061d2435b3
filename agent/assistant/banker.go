// Package assistant hosts the language-routed conversational bankers and
// the message-handling pipeline that drives them.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	toolx "github.com/omnibank/zenith-assistant/agent/tool"
)

const defaultMaxToolRounds = 4

// bankerImpl is one language-specific banker: a tool-calling chat model
// bound to the banking catalog, plus the gateway that actually executes the
// requested tools against session state.
type bankerImpl struct {
	language      contractx.Language
	systemPrompt  string
	gateway       contractx.ToolGateway
	invoke        func(ctx context.Context, msgs []*schema.Message) (*schema.Message, error)
	maxToolRounds int
}

var _ contractx.Assistant = (*bankerImpl)(nil)

func newBanker(
	ctx context.Context,
	language contractx.Language,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	gateway contractx.ToolGateway,
) (*bankerImpl, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: banker prompt for language=%s", contractx.ErrPromptMissing, language)
	}
	if gateway == nil {
		return nil, fmt.Errorf("%w: tool gateway is required", contractx.ErrValidation)
	}

	toolModel, err := chatModel.WithTools(toolx.Infos())
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for banker=%s: %v", contractx.ErrModelInvoke, language, err)
	}

	runner, err := compileChatGraph(ctx, toolModel, fmt.Sprintf("banker.%s", language))
	if err != nil {
		return nil, err
	}

	return &bankerImpl{
		language:     language,
		systemPrompt: systemPrompt,
		gateway:      gateway,
		invoke: func(ctx context.Context, msgs []*schema.Message) (*schema.Message, error) {
			return runner.Invoke(ctx, msgs)
		},
		maxToolRounds: defaultMaxToolRounds,
	}, nil
}

// Converse runs one user turn: the model is invoked, any tool calls it
// requests are executed through the gateway, their results are fed back,
// and the loop repeats until the model answers in plain text.
func (b *bankerImpl) Converse(ctx context.Context, req contractx.AssistantRequest) (contractx.AssistantResponse, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return contractx.AssistantResponse{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	msgs := []*schema.Message{schema.SystemMessage(b.systemPrompt)}
	if summary := strings.TrimSpace(req.MemorySummary); summary != "" {
		msgs = append(msgs, schema.SystemMessage("Known customer context: "+summary))
	}
	msgs = append(msgs, schema.UserMessage(req.UserMessage))

	for round := 0; round < b.maxToolRounds; round++ {
		msg, err := b.invoke(ctx, msgs)
		if err != nil {
			return contractx.AssistantResponse{}, fmt.Errorf("%w: banker invoke: %v", contractx.ErrModelInvoke, err)
		}
		if msg == nil {
			return contractx.AssistantResponse{}, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
		}

		if len(msg.ToolCalls) == 0 {
			reply := strings.TrimSpace(msg.Content)
			if reply == "" {
				return contractx.AssistantResponse{}, fmt.Errorf("%w: banker reply is empty", contractx.ErrSchemaViolation)
			}
			return contractx.AssistantResponse{Reply: reply}, nil
		}

		reqs, err := toToolRequests(msg.ToolCalls)
		if err != nil {
			return contractx.AssistantResponse{}, err
		}
		results, err := b.gateway.Execute(ctx, req.SessionID, reqs)
		if err != nil {
			return contractx.AssistantResponse{}, err
		}
		if len(results) != len(msg.ToolCalls) {
			return contractx.AssistantResponse{}, fmt.Errorf("%w: got %d tool results for %d calls", contractx.ErrSchemaViolation, len(results), len(msg.ToolCalls))
		}

		msgs = append(msgs, msg)
		for i, call := range msg.ToolCalls {
			payload, err := json.Marshal(results[i])
			if err != nil {
				return contractx.AssistantResponse{}, fmt.Errorf("%w: marshal tool result: %v", contractx.ErrValidation, err)
			}
			msgs = append(msgs, schema.ToolMessage(string(payload), call.ID))
		}
	}

	return contractx.AssistantResponse{}, fmt.Errorf("%w: tool loop exceeded %d rounds", contractx.ErrSchemaViolation, b.maxToolRounds)
}

func compileChatGraph(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	graphName string,
) (compose.Runnable[[]*schema.Message, *schema.Message], error) {
	graph := compose.NewGraph[[]*schema.Message, *schema.Message]()
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add banker model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "model"); err != nil {
		return nil, fmt.Errorf("add banker edge start->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add banker edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile banker chat graph: %w", err)
	}
	return runner, nil
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{Tool: name, Args: args})
	}
	return reqs, nil
}
