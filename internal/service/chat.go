package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/assistant"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/google/uuid"
)

// ChatTurn is the full outcome of one assistant turn
type ChatTurn struct {
	SessionID    string             `json:"session_id"`
	Response     domain.BotResponse `json:"response"`
	WarningCount int                `json:"warning_count"`
	BlockedUntil *time.Time         `json:"blocked_until,omitempty"`
}

// ChatService runs assistant turns against stored conversation state.
// One turn is fully processed before its state is written back, and each
// session is independent, so concurrent sessions never share state.
type ChatService struct {
	store  domain.ConversationStore
	engine *assistant.Engine
}

// NewChatService creates a new chat service
func NewChatService(store domain.ConversationStore, engine *assistant.Engine) *ChatService {
	return &ChatService{store: store, engine: engine}
}

// ProcessQuery handles one user message within a session, creating the
// session on first contact
func (s *ChatService) ProcessQuery(ctx context.Context, sessionID, text string) (*ChatTurn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty message")
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if state == nil {
		state = &domain.ConversationState{SessionID: sessionID}
	}

	response := s.engine.ProcessQuery(ctx, state, text)

	if err := s.store.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &ChatTurn{
		SessionID:    sessionID,
		Response:     response,
		WarningCount: state.WarningCount,
		BlockedUntil: state.BlockedUntil,
	}, nil
}

// History returns the stored messages for a session
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if state == nil {
		return []domain.ChatMessage{}, nil
	}
	return state.Messages, nil
}

// ClearSession drops a session and its moderation counters
func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
