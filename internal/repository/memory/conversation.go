package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
)

type entry struct {
	state     *domain.ConversationState
	expiresAt time.Time
}

// ConversationStore keeps chat sessions in process memory.
// Used in tests and single-node deployments without Redis.
type ConversationStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
}

// NewConversationStore creates an in-memory conversation store
func NewConversationStore(ttl time.Duration) *ConversationStore {
	return &ConversationStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
	}
}

// Get retrieves a session's state, nil on miss or expiry. The result is
// a copy; callers mutate and Put it back, like the redis driver's
// JSON round trip.
func (s *ConversationStore) Get(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	return clone(e.state), nil
}

// Put stores a session's state and refreshes its TTL
func (s *ConversationStore) Put(ctx context.Context, state *domain.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.SessionID] = entry{
		state:     clone(state),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// clone detaches the stored state from the caller's copy. Messages are
// immutable once recorded, so copying the slice header level is enough.
func clone(state *domain.ConversationState) *domain.ConversationState {
	out := *state
	out.Messages = append([]domain.ChatMessage(nil), state.Messages...)
	if state.BlockedUntil != nil {
		until := *state.BlockedUntil
		out.BlockedUntil = &until
	}
	return &out
}

// Delete removes a session
func (s *ConversationStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
