package assistant

import (
	"context"
	"fmt"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/rs/zerolog/log"
)

const productSearchLimit = 3

// ProductSearcher is the catalog collaborator. Only the search contract is
// consumed here; the marketplace service implements it.
type ProductSearcher interface {
	SearchSummaries(ctx context.Context, params domain.IntentParams, limit int) ([]domain.ProductSummary, error)
}

const noProductsMessage = "🔍 I couldn't find any products matching your criteria. Try adjusting your search or explore our categories:\n\n• Electronics 📱\n• Fashion 👕\n• Furniture 🪑\n• Books 📚\n• Sports ⚽\n• Home & Garden 🏠"

const catalogDownMessage = "🔧 Oops! I'm having trouble accessing our product database right now. Please try again in a moment, or ask me about sustainability tips and platform info instead! 🌱"

var noProductsSuggestions = []string{"Show me electronics", "Find furniture under 5000", "Browse fashion items"}
var productFollowUpSuggestions = []string{"Show more products", "Different category", "Eco tips"}
var catalogDownSuggestions = []string{"Try again", "Eco tips", "Platform info"}

// ProductQueryAdapter maps extracted intent parameters to catalog searches.
// Collaborator failures are absorbed into a friendly reply and never
// propagate to the caller.
type ProductQueryAdapter struct {
	searcher ProductSearcher
}

// NewProductQueryAdapter wraps a catalog searcher
func NewProductQueryAdapter(searcher ProductSearcher) *ProductQueryAdapter {
	return &ProductQueryAdapter{searcher: searcher}
}

// Search runs a catalog query for the extracted parameters
func (a *ProductQueryAdapter) Search(ctx context.Context, params domain.IntentParams) domain.BotResponse {
	products, err := a.searcher.SearchSummaries(ctx, params, productSearchLimit)
	if err != nil {
		log.Warn().Err(err).Msg("assistant product search failed")
		return domain.BotResponse{
			Message:     catalogDownMessage,
			Type:        domain.ChatTypeError,
			Suggestions: catalogDownSuggestions,
		}
	}

	if len(products) == 0 {
		return domain.BotResponse{
			Message:     noProductsMessage,
			Type:        domain.ChatTypeText,
			Suggestions: noProductsSuggestions,
		}
	}

	plural := ""
	if len(products) > 1 {
		plural = "s"
	}
	message := fmt.Sprintf("🛍️ Great! I found %d eco-friendly product%s for you:\n\n", len(products), plural)

	return domain.BotResponse{
		Message:     message,
		Type:        domain.ChatTypeProducts,
		Products:    products,
		Suggestions: productFollowUpSuggestions,
	}
}
