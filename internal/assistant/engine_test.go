package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/assistant/corpus"
	"github.com/ecofinds/ecofinds-api/internal/domain"
)

type fakeSearcher struct {
	summaries []domain.ProductSummary
	err       error
}

func (f *fakeSearcher) SearchSummaries(_ context.Context, _ domain.IntentParams, _ int) ([]domain.ProductSummary, error) {
	return f.summaries, f.err
}

func testEngine(t *testing.T, searcher ProductSearcher) (*Engine, time.Time) {
	t.Helper()

	knowledge, err := corpus.Load()
	if err != nil {
		t.Fatalf("failed to load corpus: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	e := NewEngine(NewKnowledgeRetriever(knowledge, rng), NewProductQueryAdapter(searcher), rng, Options{
		WarningLimit:  3,
		BlockDuration: 5 * time.Minute,
	})

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }
	return e, fixed
}

func TestEngine_ModerationEscalation(t *testing.T) {
	e, fixed := testEngine(t, &fakeSearcher{})
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	// First two offenses warn.
	for turn := 1; turn <= 2; turn++ {
		resp := e.ProcessQuery(ctx, state, "you stupid bot")
		if resp.Type != domain.ChatTypeText {
			t.Fatalf("turn %d: type = %q, want text", turn, resp.Type)
		}
		if state.WarningCount != turn {
			t.Fatalf("turn %d: warning count = %d, want %d", turn, state.WarningCount, turn)
		}
		if state.BlockedUntil != nil {
			t.Fatalf("turn %d: unexpected block", turn)
		}
	}

	// Third offense blocks and resets the counter.
	resp := e.ProcessQuery(ctx, state, "you stupid bot")
	if !strings.Contains(resp.Message, "temporarily blocked") {
		t.Errorf("expected block message, got %q", resp.Message)
	}
	if state.BlockedUntil == nil || !state.BlockedUntil.Equal(fixed.Add(5*time.Minute)) {
		t.Errorf("blocked until = %v, want %v", state.BlockedUntil, fixed.Add(5*time.Minute))
	}
	if state.WarningCount != 0 {
		t.Errorf("warning count = %d, want 0 after block", state.WarningCount)
	}
}

func TestEngine_WarningCountSurvivesCleanMessages(t *testing.T) {
	e, _ := testEngine(t, &fakeSearcher{})
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	e.ProcessQuery(ctx, state, "you stupid bot")
	if state.WarningCount != 1 {
		t.Fatalf("warning count = %d, want 1", state.WarningCount)
	}

	e.ProcessQuery(ctx, state, "hi")
	if state.WarningCount != 1 {
		t.Errorf("warning count = %d, want 1 after clean message", state.WarningCount)
	}
}

func TestEngine_BlockedSession(t *testing.T) {
	e, fixed := testEngine(t, &fakeSearcher{})
	ctx := context.Background()

	until := fixed.Add(3 * time.Minute)
	state := &domain.ConversationState{SessionID: "s1", BlockedUntil: &until}

	resp := e.ProcessQuery(ctx, state, "hi")
	if !strings.Contains(resp.Message, "3:00") {
		t.Errorf("expected countdown in reply, got %q", resp.Message)
	}
	if state.BlockedUntil == nil || !state.BlockedUntil.Equal(until) {
		t.Errorf("block window changed: %v", state.BlockedUntil)
	}
}

func TestEngine_BlockExpiry(t *testing.T) {
	e, fixed := testEngine(t, &fakeSearcher{})
	ctx := context.Background()

	until := fixed.Add(-time.Second)
	state := &domain.ConversationState{SessionID: "s1", WarningCount: 2, BlockedUntil: &until}

	resp := e.ProcessQuery(ctx, state, "hi")
	if state.BlockedUntil != nil {
		t.Errorf("expected expired block to clear, got %v", state.BlockedUntil)
	}
	if state.WarningCount != 0 {
		t.Errorf("warning count = %d, want 0 after expiry", state.WarningCount)
	}
	if resp.Type != domain.ChatTypeText || !strings.Contains(resp.Message, "What would you like to explore?") {
		t.Errorf("expected greeting after expiry, got %q", resp.Message)
	}
}

func TestEngine_GreetingShortcut(t *testing.T) {
	e, _ := testEngine(t, &fakeSearcher{})
	ctx := context.Background()

	t.Run("short greeting", func(t *testing.T) {
		state := &domain.ConversationState{SessionID: "s1"}
		resp := e.ProcessQuery(ctx, state, "Hey!")
		if !strings.Contains(resp.Message, "What would you like to explore?") {
			t.Errorf("expected greeting footer, got %q", resp.Message)
		}
	})

	t.Run("long message with greeting word is not a greeting", func(t *testing.T) {
		state := &domain.ConversationState{SessionID: "s1"}
		resp := e.ProcessQuery(ctx, state, "hey, how do I sell an item on this platform?")
		if strings.Contains(resp.Message, "What would you like to explore?") {
			t.Error("long message should not take the greeting shortcut")
		}
	})
}

// "hello" carries the substring "hell", so it hits the denylist before the
// greeting shortcut ever runs. That false positive is long-standing
// behavior and is kept on purpose.
func TestEngine_HelloTripsModerationFirst(t *testing.T) {
	e, _ := testEngine(t, &fakeSearcher{})
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	resp := e.ProcessQuery(ctx, state, "Hello!")

	if strings.Contains(resp.Message, "What would you like to explore?") {
		t.Error("hello should not reach the greeting shortcut")
	}
	if state.WarningCount != 1 {
		t.Errorf("warning count = %d, want 1", state.WarningCount)
	}
}

func TestEngine_ConcurrentSessions(t *testing.T) {
	knowledge, err := corpus.Load()
	if err != nil {
		t.Fatalf("failed to load corpus: %v", err)
	}

	rng := NewLockedRand(42)
	e := NewEngine(NewKnowledgeRetriever(knowledge, rng), NewProductQueryAdapter(&fakeSearcher{}), rng, Options{
		WarningLimit:  3,
		BlockDuration: 5 * time.Minute,
	})

	queries := []string{"hi", "you stupid bot", "show me electronics under 5000", "thanks a lot for everything"}

	var wg sync.WaitGroup
	states := make([]*domain.ConversationState, 8)
	for i := range states {
		states[i] = &domain.ConversationState{SessionID: fmt.Sprintf("s%d", i)}
		wg.Add(1)
		go func(state *domain.ConversationState) {
			defer wg.Done()
			for _, q := range queries {
				e.ProcessQuery(context.Background(), state, q)
			}
		}(states[i])
	}
	wg.Wait()

	for i, state := range states {
		if len(state.Messages) != 2*len(queries) {
			t.Errorf("session %d: messages = %d, want %d", i, len(state.Messages), 2*len(queries))
		}
		if state.WarningCount != 1 {
			t.Errorf("session %d: warning count = %d, want 1", i, state.WarningCount)
		}
	}
}

func TestEngine_ThanksShortcut(t *testing.T) {
	e, _ := testEngine(t, &fakeSearcher{})
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	resp := e.ProcessQuery(ctx, state, "thanks a lot for everything you did")
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected suggestions on thanks reply")
	}
}

func TestEngine_ProductDispatch(t *testing.T) {
	searcher := &fakeSearcher{summaries: []domain.ProductSummary{
		{ID: "p1", Title: "Refurbished Laptop", Price: 4500, Category: "Electronics"},
	}}
	e, _ := testEngine(t, searcher)
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	resp := e.ProcessQuery(ctx, state, "show me electronics under 5000")
	if resp.Type != domain.ChatTypeProducts {
		t.Fatalf("type = %q, want products", resp.Type)
	}
	if len(resp.Products) != 1 || resp.Products[0].ID != "p1" {
		t.Errorf("unexpected products: %+v", resp.Products)
	}
}

func TestEngine_SearcherErrorAbsorbed(t *testing.T) {
	e, _ := testEngine(t, &fakeSearcher{err: errors.New("mongo down")})
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	resp := e.ProcessQuery(ctx, state, "show me electronics under 5000")
	if resp.Type != domain.ChatTypeError {
		t.Fatalf("type = %q, want error", resp.Type)
	}
	if !strings.Contains(resp.Message, "try again") {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestEngine_PanicRecovery(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// Nil retriever makes any knowledge query panic inside the pipeline.
	e := NewEngine(nil, NewProductQueryAdapter(&fakeSearcher{}), rng, Options{})
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	resp := e.ProcessQuery(ctx, state, "what is your mission?")
	if resp.Type != domain.ChatTypeError {
		t.Fatalf("type = %q, want error", resp.Type)
	}
	if resp.Message != errorMessage {
		t.Errorf("message = %q, want generic error reply", resp.Message)
	}
}

func TestEngine_RecordsHistory(t *testing.T) {
	e, _ := testEngine(t, &fakeSearcher{})
	ctx := context.Background()
	state := &domain.ConversationState{SessionID: "s1"}

	e.ProcessQuery(ctx, state, "  hi  ")

	if len(state.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(state.Messages))
	}
	if state.Messages[0].SentByBot || state.Messages[0].Text != "hi" {
		t.Errorf("unexpected user message: %+v", state.Messages[0])
	}
	if !state.Messages[1].SentByBot {
		t.Error("second message should be the bot reply")
	}
}
