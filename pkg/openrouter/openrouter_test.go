package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openaisdk "github.com/openai/openai-go"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if client := NewClient(Config{BaseURL: "https://openrouter.ai/api/v1"}); client != nil {
		t.Fatal("NewClient() without an api key returned a client")
	}
}

func TestNewClientSendsAttributionHeaders(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotReferer, gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "test-model",
			"choices": [
				{
					"index": 0,
					"finish_reason": "stop",
					"message": {"role": "assistant", "content": "pong"}
				}
			]
		}`)
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:  srv.URL + "/",
		APIKey:   "sk-test",
		SiteURL:  "https://zenith.omnibank.example",
		SiteName: "Zenith Assistant",
	})
	if client == nil {
		t.Fatal("NewClient() returned nil with a valid config")
	}

	completion, err := client.Chat.Completions.New(context.Background(), openaisdk.ChatCompletionNewParams{
		Model: "test-model",
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage("ping"),
		},
	})
	if err != nil {
		t.Fatalf("Chat.Completions.New() error = %v", err)
	}
	if len(completion.Choices) != 1 || completion.Choices[0].Message.Content != "pong" {
		t.Fatalf("completion = %+v", completion)
	}

	if gotPath != "/chat/completions" {
		t.Fatalf("request path = %q, want /chat/completions on the configured base url", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotReferer != "https://zenith.omnibank.example" {
		t.Fatalf("HTTP-Referer header = %q", gotReferer)
	}
	if gotTitle != "Zenith Assistant" {
		t.Fatalf("X-Title header = %q", gotTitle)
	}
}
