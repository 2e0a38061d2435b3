package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bankingx "github.com/omnibank/zenith-assistant/agent/banking"
	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	sessionx "github.com/omnibank/zenith-assistant/agent/session"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeBanker struct {
	reply string
	err   error
	calls []contractx.AssistantRequest
}

func (f *fakeBanker) Converse(ctx context.Context, req contractx.AssistantRequest) (contractx.AssistantResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return contractx.AssistantResponse{}, f.err
	}
	return contractx.AssistantResponse{Reply: f.reply}, nil
}

type fakeRegistry struct {
	english *fakeBanker
	spanish *fakeBanker
}

func (f *fakeRegistry) Banker(lang contractx.Language) contractx.Assistant {
	if lang == contractx.LanguageSpanish {
		return f.spanish
	}
	return f.english
}

type memoryWrite struct {
	customerRef string
	update      string
}

type fakeMemory struct {
	summary  string
	readErr  error
	writeErr error
	reads    []string
	writes   []memoryWrite
}

func (f *fakeMemory) ReadSummary(ctx context.Context, customerRef string) (string, error) {
	f.reads = append(f.reads, customerRef)
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.summary, nil
}

func (f *fakeMemory) WriteSummary(ctx context.Context, customerRef string, update string) error {
	f.writes = append(f.writes, memoryWrite{customerRef: customerRef, update: update})
	return f.writeErr
}

func newTestService(t *testing.T, store sessionx.Store, registry contractx.Registry, memory contractx.MemoryStore) *Service {
	t.Helper()
	svc, err := NewService(store, registry, memory, Config{DefaultLanguage: "en-US"})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{english: &fakeBanker{}, spanish: &fakeBanker{}}
	if _, err := NewService(nil, registry, nil, Config{}); err == nil {
		t.Fatal("NewService() accepted a nil store")
	}
	if _, err := NewService(sessionx.NewMemoryStore(), nil, nil, Config{}); err == nil {
		t.Fatal("NewService() accepted a nil registry")
	}
	// Memory is optional.
	if _, err := NewService(sessionx.NewMemoryStore(), registry, nil, Config{}); err != nil {
		t.Fatalf("NewService() without memory error = %v", err)
	}
}

func TestHandleMessageValidation(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{english: &fakeBanker{reply: "hi"}, spanish: &fakeBanker{reply: "hola"}}
	svc := newTestService(t, sessionx.NewMemoryStore(), registry, nil)

	if _, err := svc.HandleMessage(context.Background(), " ", "hello"); !errors.Is(err, contractx.ErrNoSession) {
		t.Fatalf("blank session id error = %v, want ErrNoSession", err)
	}
	if _, err := svc.HandleMessage(context.Background(), "sess-1", "  "); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("blank message error = %v, want ErrValidation", err)
	}
}

func TestHandleMessageCreatesAndSavesSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionx.NewMemoryStore()
	registry := &fakeRegistry{english: &fakeBanker{reply: "Hello!"}, spanish: &fakeBanker{reply: "¡Hola!"}}
	svc := newTestService(t, store, registry, nil)

	reply, err := svc.HandleMessage(ctx, "sess-new", "hello")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if reply != "Hello!" {
		t.Fatalf("reply = %q, want Hello!", reply)
	}

	st, err := store.Load(ctx, "sess-new")
	if err != nil {
		t.Fatalf("Load() after handle error = %v", err)
	}
	if st.Language != "en-US" {
		t.Fatalf("session language = %q, want en-US", st.Language)
	}
	if !st.UpdatedAt.Equal(testNow.UTC()) {
		t.Fatalf("UpdatedAt = %v, want %v", st.UpdatedAt, testNow.UTC())
	}

	if len(registry.english.calls) != 1 {
		t.Fatalf("english banker called %d times, want 1", len(registry.english.calls))
	}
	if got := registry.english.calls[0]; got.SessionID != "sess-new" || got.UserMessage != "hello" {
		t.Fatalf("banker request = %+v", got)
	}
}

func TestHandleMessageRoutesSpanishSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionx.NewMemoryStore()
	registry := &fakeRegistry{english: &fakeBanker{reply: "Hello!"}, spanish: &fakeBanker{reply: "¡Hola!"}}
	svc := newTestService(t, store, registry, nil)

	if err := store.Save(ctx, sessionx.New("sess-es", "es-ES", testNow)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reply, err := svc.HandleMessage(ctx, "sess-es", "hola")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if reply != "¡Hola!" {
		t.Fatalf("reply = %q, want the Spanish banker's reply", reply)
	}
	if len(registry.english.calls) != 0 {
		t.Fatal("english banker was called for a Spanish session")
	}
}

func TestHandleMessageMemoryFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionx.NewMemoryStore()
	registry := &fakeRegistry{english: &fakeBanker{reply: "Done."}, spanish: &fakeBanker{reply: "Hecho."}}
	memory := &fakeMemory{summary: "prefers short answers"}
	svc := newTestService(t, store, registry, memory)

	st := sessionx.New("sess-mem", "en-US", testNow)
	st.CurrentProfile = &bankingx.CustomerProfile{CustomerID: "CUST778899", FirstName: "Rakesh"}
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := svc.HandleMessage(ctx, "sess-mem", "pay my bill"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	if len(memory.reads) != 1 || memory.reads[0] != "CUST778899" {
		t.Fatalf("memory reads = %v, want [CUST778899]", memory.reads)
	}
	if got := registry.english.calls[0].MemorySummary; got != "prefers short answers" {
		t.Fatalf("banker memory summary = %q", got)
	}

	if len(memory.writes) != 1 {
		t.Fatalf("memory writes = %d, want 1", len(memory.writes))
	}
	write := memory.writes[0]
	if write.customerRef != "CUST778899" {
		t.Fatalf("write ref = %q, want CUST778899", write.customerRef)
	}
	if !strings.Contains(write.update, "pay my bill") || !strings.Contains(write.update, "Done.") {
		t.Fatalf("write update = %q", write.update)
	}
}

func TestHandleMessageSkipsMemoryWriteWithoutProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionx.NewMemoryStore()
	registry := &fakeRegistry{english: &fakeBanker{reply: "Hi."}, spanish: &fakeBanker{reply: "Hola."}}
	memory := &fakeMemory{}
	svc := newTestService(t, store, registry, memory)

	if _, err := svc.HandleMessage(ctx, "sess-anon", "hello"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if len(memory.writes) != 0 {
		t.Fatalf("memory writes = %d, want 0 for an unverified session", len(memory.writes))
	}
	// Reads key off the session id before a customer is bound.
	if len(memory.reads) != 1 || memory.reads[0] != "sess-anon" {
		t.Fatalf("memory reads = %v, want [sess-anon]", memory.reads)
	}
}

func TestHandleMessageMemoryFailuresAreNotFatal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionx.NewMemoryStore()
	registry := &fakeRegistry{english: &fakeBanker{reply: "Fine."}, spanish: &fakeBanker{reply: "Bien."}}
	memory := &fakeMemory{readErr: errors.New("db down"), writeErr: errors.New("db down")}
	svc := newTestService(t, store, registry, memory)

	st := sessionx.New("sess-mem", "en-US", testNow)
	st.CurrentProfile = &bankingx.CustomerProfile{CustomerID: "CUST778899"}
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reply, err := svc.HandleMessage(ctx, "sess-mem", "hello")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v, memory failures must not be fatal", err)
	}
	if reply != "Fine." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHandleMessageEmptyReplyIsError(t *testing.T) {
	t.Parallel()

	store := sessionx.NewMemoryStore()
	registry := &fakeRegistry{english: &fakeBanker{reply: "  "}, spanish: &fakeBanker{reply: " "}}
	svc := newTestService(t, store, registry, nil)

	if _, err := svc.HandleMessage(context.Background(), "sess-1", "hello"); !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("HandleMessage() error = %v, want ErrSchemaViolation", err)
	}
}

func TestHandleMessagePropagatesBankerError(t *testing.T) {
	t.Parallel()

	store := sessionx.NewMemoryStore()
	registry := &fakeRegistry{
		english: &fakeBanker{err: contractx.ErrModelInvoke},
		spanish: &fakeBanker{reply: "Hola."},
	}
	svc := newTestService(t, store, registry, nil)

	if _, err := svc.HandleMessage(context.Background(), "sess-1", "hello"); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("HandleMessage() error = %v, want ErrModelInvoke", err)
	}
}
