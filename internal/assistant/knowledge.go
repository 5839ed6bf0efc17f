package assistant

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/ecofinds/ecofinds-api/internal/assistant/corpus"
	"github.com/ecofinds/ecofinds-api/internal/domain"
)

const knowledgeTopK = 3

// relevanceThreshold filters out documents with only incidental overlap
const relevanceThreshold = 0.1

var fallbackSuggestions = []string{
	"How to sell items?",
	"Who created you?",
	"Find electronics under 5000",
	"Eco-friendly tips",
}

// Candidate pool the retriever samples reply suggestions from. The picks
// are random and ignore the query content entirely; smarter selection is
// intentionally out of scope.
var knowledgeSuggestionPool = []string{
	"How to sell on EcoFinds?",
	"Find electronics under 10000",
	"Why choose sustainable shopping?",
	"Show me furniture",
	"Eco-friendly tips",
	"Platform features",
}

// KnowledgeRetriever ranks static documents against a query
type KnowledgeRetriever struct {
	corpus *corpus.Corpus
	rng    *rand.Rand
}

// NewKnowledgeRetriever creates a retriever over the given corpus
func NewKnowledgeRetriever(c *corpus.Corpus, rng *rand.Rand) *KnowledgeRetriever {
	return &KnowledgeRetriever{corpus: c, rng: rng}
}

type scoredDoc struct {
	doc   corpus.Document
	score float64
}

// Relevance scores one document against a query: title similarity weighs
// 3x, body similarity 2x, plus 2 points per keyword found verbatim in the
// lowercased query.
func Relevance(query string, doc corpus.Document) float64 {
	lower := strings.ToLower(query)

	score := Similarity(lower, strings.ToLower(doc.Title)) * 3
	score += Similarity(lower, strings.ToLower(doc.Body)) * 2

	for _, keyword := range doc.Keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			score += 2
		}
	}

	return score
}

// Search composes a reply from the best-matching documents, or a random
// fallback when nothing clears the relevance threshold
func (r *KnowledgeRetriever) Search(query string) domain.BotResponse {
	var matches []scoredDoc
	for _, doc := range r.corpus.Documents {
		if score := Relevance(query, doc); score > relevanceThreshold {
			matches = append(matches, scoredDoc{doc: doc, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > knowledgeTopK {
		matches = matches[:knowledgeTopK]
	}

	if len(matches) == 0 {
		return domain.BotResponse{
			Message:     r.corpus.NoAnswerResponses[r.rng.Intn(len(r.corpus.NoAnswerResponses))],
			Type:        domain.ChatTypeText,
			Suggestions: fallbackSuggestions,
		}
	}

	var b strings.Builder
	b.WriteString("🌱 Here's what I found:\n\n")
	for _, m := range matches {
		b.WriteString(sourceIcon(m.doc.Source))
		b.WriteString(" **")
		b.WriteString(m.doc.Title)
		b.WriteString("**\n")
		b.WriteString(m.doc.Body)
		b.WriteString("\n\n")
	}
	b.WriteString("Is there anything else you'd like to know? I'm here to help! 😊")

	return domain.BotResponse{
		Message:     strings.TrimSpace(b.String()),
		Type:        domain.ChatTypeText,
		Suggestions: r.pickSuggestions(),
	}
}

// pickSuggestions draws 3 entries from the pool without replacement
func (r *KnowledgeRetriever) pickSuggestions() []string {
	perm := r.rng.Perm(len(knowledgeSuggestionPool))
	picks := make([]string, 0, 3)
	for _, i := range perm[:3] {
		picks = append(picks, knowledgeSuggestionPool[i])
	}
	return picks
}

func sourceIcon(source string) string {
	switch source {
	case corpus.SourceFAQ:
		return "❓"
	case corpus.SourceTips:
		return "💡"
	default:
		return "🏪"
	}
}
