package session

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrStateNotFound  = errors.New("session state not found")
	ErrNilState       = errors.New("session state is nil")
	ErrInvalidSession = errors.New("session id is empty")
)

// Store is the persistence contract used by the assistant and the tool
// gateway.
type Store interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, st *State) error
	Delete(ctx context.Context, sessionID string) error
}

// Locker is implemented by stores that can serialize access to one session.
// The gateway holds the session lock across its read-check-mutate sequence
// so racing requests cannot break balance invariants.
type Locker interface {
	Acquire(sessionID string) (release func())
}

// MemoryStore keeps session state in process memory. Each session owns its
// state exclusively; the store-level mutex only guards the maps.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
	locks    map[string]*sync.Mutex
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Locker = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*State),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (*State, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return st, nil
}

func (m *MemoryStore) Save(ctx context.Context, st *State) error {
	if st == nil {
		return ErrNilState
	}
	if strings.TrimSpace(st.SessionID) == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[st.SessionID] = st
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	delete(m.locks, sessionID)
	return nil
}

// Acquire blocks until the caller holds the session's mutation lock.
func (m *MemoryStore) Acquire(sessionID string) (release func()) {
	m.mu.Lock()
	l, ok := m.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[sessionID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
