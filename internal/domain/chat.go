package domain

import (
	"context"
	"time"
)

// BotResponse kinds
const (
	ChatTypeText     = "text"
	ChatTypeProducts = "products"
	ChatTypeError    = "error"
)

// ChatMessage is a single turn in a conversation, immutable once created
type ChatMessage struct {
	ID          string           `json:"id"`
	Text        string           `json:"text"`
	SentByBot   bool             `json:"sent_by_bot"`
	Timestamp   time.Time        `json:"timestamp"`
	Products    []ProductSummary `json:"products,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

// ProductSummary is the read-only catalog projection attached to bot replies
type ProductSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Category  string   `json:"category"`
	Condition string   `json:"condition,omitempty"`
	Images    []string `json:"images"`
	Seller    string   `json:"seller"`
}

// BotResponse is the assistant's reply for one turn
type BotResponse struct {
	Message     string           `json:"message"`
	Type        string           `json:"type"`
	Products    []ProductSummary `json:"products,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

// ConversationState carries per-session moderation counters and history.
// warningCount only resets when a block is set or naturally expires.
type ConversationState struct {
	SessionID    string        `json:"session_id"`
	Messages     []ChatMessage `json:"messages"`
	WarningCount int           `json:"warning_count"`
	BlockedUntil *time.Time    `json:"blocked_until,omitempty"`
}

// Blocked reports whether the session is inside an active block window
func (s *ConversationState) Blocked(now time.Time) bool {
	return s.BlockedUntil != nil && now.Before(*s.BlockedUntil)
}

// Intent is the classified purpose of a user message, recomputed per turn
type Intent struct {
	Kind       string       `json:"kind"` // "product" or "knowledge"
	Confidence float64      `json:"confidence"`
	Params     IntentParams `json:"params"`
}

// Intent kinds
const (
	IntentProduct   = "product"
	IntentKnowledge = "knowledge"
)

// IntentParams are the search parameters extracted from a message
type IntentParams struct {
	Search   string   `json:"search,omitempty"`
	Category string   `json:"category,omitempty"`
	MinPrice *int     `json:"min_price,omitempty"`
	MaxPrice *int     `json:"max_price,omitempty"`
}

// ConversationStore persists conversation state between turns.
// Sessions are fully isolated; implementations may expire idle sessions.
type ConversationStore interface {
	Get(ctx context.Context, sessionID string) (*ConversationState, error)
	Put(ctx context.Context, state *ConversationState) error
	Delete(ctx context.Context, sessionID string) error
}
