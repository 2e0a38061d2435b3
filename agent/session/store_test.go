package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.Load(context.Background(), "nope"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() error = %v, want ErrStateNotFound", err)
	}
	if _, err := store.Load(context.Background(), "  "); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Load() with blank id error = %v, want ErrInvalidSession", err)
	}
}

func TestMemoryStoreSaveLoadDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Save(ctx, nil); !errors.Is(err, ErrNilState) {
		t.Fatalf("Save(nil) error = %v, want ErrNilState", err)
	}

	st := New("sess-1", "en-US", testNow)
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != st {
		t.Fatal("Load() did not return the stored state")
	}

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(ctx, "sess-1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after delete error = %v, want ErrStateNotFound", err)
	}
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	a := New("sess-a", "en-US", testNow)
	b := New("sess-b", "en-US", testNow)
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save(a) error = %v", err)
	}
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("Save(b) error = %v", err)
	}

	a.EnsureBankingState(testNow)
	a.Bank.Accounts["ACC778899001"].Balance = 1.00
	b.EnsureBankingState(testNow)

	if got := b.Bank.Accounts["ACC778899001"].Balance; got != 25000.50 {
		t.Fatalf("session b balance = %v, want 25000.50", got)
	}
}

func TestMemoryStoreAcquire(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	release := store.Acquire("sess-1")
	acquired := make(chan struct{})
	go func() {
		r := store.Acquire("sess-1")
		close(acquired)
		r()
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire() succeeded while the lock was held")
	case <-time.After(20 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Acquire() never succeeded after release")
	}
}
