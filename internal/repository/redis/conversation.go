package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const conversationPrefix = "chat:session:"

// ConversationStore keeps chat sessions in Redis with an idle TTL.
// Each Put refreshes the TTL so active conversations survive.
type ConversationStore struct {
	client *Client
	ttl    time.Duration
}

// NewConversationStore creates a redis-backed conversation store
func NewConversationStore(client *Client, ttl time.Duration) *ConversationStore {
	return &ConversationStore{client: client, ttl: ttl}
}

// Get retrieves a session's state, nil on miss
func (s *ConversationStore) Get(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	key := conversationPrefix + sessionID

	data, err := s.client.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation state: %w", err)
	}

	var state domain.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation state: %w", err)
	}

	return &state, nil
}

// Put stores a session's state and refreshes its TTL
func (s *ConversationStore) Put(ctx context.Context, state *domain.ConversationState) error {
	key := conversationPrefix + state.SessionID

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state: %w", err)
	}

	return s.client.rdb.Set(ctx, key, data, s.ttl).Err()
}

// Delete removes a session
func (s *ConversationStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.rdb.Del(ctx, conversationPrefix+sessionID).Err()
}
