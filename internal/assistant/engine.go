package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var greetings = []string{
	"Hi there! I'm EcoBuddy 🌱, your sustainable shopping assistant powered by EcoFinds!",
	"Hello! Ready to make some eco-friendly choices today? I'm here to help! 🌍",
	"Hey! I'm here to help you find amazing second-hand treasures! ♻️",
	"Welcome! I'm EcoBuddy, dedicated to protecting our environment through sustainable shopping! 🌱",
}

const greetingFooter = "\n\nI can help you:\n• Find sustainable products 🛍️\n• Learn about eco-friendly living 🌱\n• Get platform info & FAQs 💚\n\nWhat would you like to explore?"

var thanksResponses = []string{
	"🌱 You're welcome! I'm happy to help you make sustainable choices. Feel free to ask me anything else! Every second-hand purchase makes a difference for our planet! 🌍💚",
	"💚 My pleasure! That's what I'm here for - helping you discover amazing eco-friendly products and tips! 🌱",
	"🌍 You're so welcome! I love helping people make environmentally conscious choices. Together we're building a more sustainable future! 🌱",
	"🌱 Anytime! I'm dedicated to helping you find the best second-hand treasures while protecting our environment. What else can I help you with? 💚",
}

var greetingWords = []string{"hi", "hello", "hey", "start", "begin", "help me"}
var thankWords = []string{"thank", "thanks", "appreciate", "grateful"}

var greetingSuggestions = []string{"Find products", "Eco tips", "Platform info"}
var thanksSuggestions = []string{"Find more products", "Sustainability tips", "Who created you?", "How EcoFinds works"}
var warningSuggestions = []string{"Find sustainable products", "Eco-friendly tips", "About EcoFinds"}
var errorSuggestions = []string{"Try again", "Eco tips", "Platform help"}

const errorMessage = "🔧 Sorry, I encountered an error. Please try again! I'm always working to improve our sustainable shopping experience! 🌱"

// Options tune the engine's moderation and pacing behavior
type Options struct {
	WarningLimit     int
	BlockDuration    time.Duration
	ThinkingDelayMin time.Duration
	ThinkingDelayMax time.Duration
}

// DefaultOptions mirror the production widget behavior
func DefaultOptions() Options {
	return Options{
		WarningLimit:     3,
		BlockDuration:    5 * time.Minute,
		ThinkingDelayMin: 1500 * time.Millisecond,
		ThinkingDelayMax: 3500 * time.Millisecond,
	}
}

// Engine sequences one conversation turn: moderation gate, greeting and
// thanks shortcuts, intent classification, then document or product search.
// It owns no session storage; callers pass the conversation state in and
// persist it afterwards, so independent sessions stay isolated.
type Engine struct {
	moderator *Moderator
	retriever *KnowledgeRetriever
	products  *ProductQueryAdapter
	rng       *rand.Rand
	now       func() time.Time
	opts      Options
}

// NewEngine wires the pipeline components around one random source
func NewEngine(retriever *KnowledgeRetriever, products *ProductQueryAdapter, rng *rand.Rand, opts Options) *Engine {
	if opts.WarningLimit <= 0 {
		opts.WarningLimit = 3
	}
	if opts.BlockDuration <= 0 {
		opts.BlockDuration = 5 * time.Minute
	}
	return &Engine{
		moderator: NewModerator(rng),
		retriever: retriever,
		products:  products,
		rng:       rng,
		now:       time.Now,
		opts:      opts,
	}
}

// Moderator exposes the content checker for host-side pre-gating
func (e *Engine) Moderator() *Moderator {
	return e.moderator
}

// ProcessQuery runs one turn against the given conversation state. The
// state is mutated in place (messages appended, moderation counters
// updated); the caller persists it. Failures below the moderation gate
// degrade to an error-typed reply, never to a returned error.
func (e *Engine) ProcessQuery(ctx context.Context, state *domain.ConversationState, text string) domain.BotResponse {
	now := e.now()

	// Active block window: reply with the countdown and change nothing.
	if state.Blocked(now) {
		remaining := FormatTimeRemaining(*state.BlockedUntil, now)
		reply := fmt.Sprintf("🔒 You're still blocked for %s. Please wait and return with respectful language! 🌱", remaining)
		e.record(state, text, domain.BotResponse{Message: reply, Type: domain.ChatTypeText}, now)
		return domain.BotResponse{Message: reply, Type: domain.ChatTypeText}
	}

	// Expired block clears on the next turn and the message proceeds.
	if state.BlockedUntil != nil {
		state.BlockedUntil = nil
		state.WarningCount = 0
	}

	response := e.respond(ctx, state, text, now)
	e.record(state, text, response, now)
	return response
}

func (e *Engine) respond(ctx context.Context, state *domain.ConversationState, text string, now time.Time) (response domain.BotResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("assistant pipeline panicked")
			response = domain.BotResponse{
				Message:     errorMessage,
				Type:        domain.ChatTypeError,
				Suggestions: errorSuggestions,
			}
		}
	}()

	e.thinkingDelay(ctx)

	if check := e.moderator.CheckContent(text); check.Inappropriate {
		state.WarningCount++
		if state.WarningCount >= e.opts.WarningLimit {
			until := now.Add(e.opts.BlockDuration)
			state.BlockedUntil = &until
			state.WarningCount = 0
			return domain.BotResponse{
				Message: e.moderator.BlockMessage(),
				Type:    domain.ChatTypeText,
			}
		}
		return domain.BotResponse{
			Message:     check.WarningMessage,
			Type:        domain.ChatTypeText,
			Suggestions: warningSuggestions,
		}
	}

	trimmed := strings.ToLower(strings.TrimSpace(text))

	if isGreeting(trimmed) {
		return domain.BotResponse{
			Message:     greetings[e.rng.Intn(len(greetings))] + greetingFooter,
			Type:        domain.ChatTypeText,
			Suggestions: greetingSuggestions,
		}
	}

	if isThanking(trimmed) {
		return domain.BotResponse{
			Message:     thanksResponses[e.rng.Intn(len(thanksResponses))],
			Type:        domain.ChatTypeText,
			Suggestions: thanksSuggestions,
		}
	}

	intent := DetectIntent(text)
	if intent.Kind == domain.IntentProduct {
		return e.products.Search(ctx, intent.Params)
	}
	return e.retriever.Search(text)
}

// record appends the user message and the bot reply to the session history
func (e *Engine) record(state *domain.ConversationState, text string, response domain.BotResponse, now time.Time) {
	state.Messages = append(state.Messages,
		domain.ChatMessage{
			ID:        uuid.NewString(),
			Text:      strings.TrimSpace(text),
			Timestamp: now,
		},
		domain.ChatMessage{
			ID:          uuid.NewString(),
			Text:        response.Message,
			SentByBot:   true,
			Timestamp:   now,
			Products:    response.Products,
			Suggestions: response.Suggestions,
		},
	)
}

// thinkingDelay pauses for a bounded random interval before replying.
// Purely cosmetic; cut short when the caller goes away.
func (e *Engine) thinkingDelay(ctx context.Context) {
	if e.opts.ThinkingDelayMax <= 0 {
		return
	}
	delay := e.opts.ThinkingDelayMin
	if spread := e.opts.ThinkingDelayMax - e.opts.ThinkingDelayMin; spread > 0 {
		delay += time.Duration(e.rng.Int63n(int64(spread)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func isGreeting(query string) bool {
	if len(query) >= 20 {
		return false
	}
	for _, word := range greetingWords {
		if strings.Contains(query, word) {
			return true
		}
	}
	return false
}

func isThanking(query string) bool {
	for _, word := range thankWords {
		if strings.Contains(query, word) {
			return true
		}
	}
	return false
}
