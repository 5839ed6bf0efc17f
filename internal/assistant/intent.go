package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ecofinds/ecofinds-api/internal/domain"
)

// Ordered "maximum price" phrasings; the first match wins
var maxPricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)under ₹?(\d+)`),
	regexp.MustCompile(`(?i)below ₹?(\d+)`),
	regexp.MustCompile(`(?i)less than ₹?(\d+)`),
	regexp.MustCompile(`(?i)maximum ₹?(\d+)`),
	regexp.MustCompile(`(?i)max ₹?(\d+)`),
	regexp.MustCompile(`(?i)up to ₹?(\d+)`),
}

// Ordered "minimum price" phrasings
var minPricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)above ₹?(\d+)`),
	regexp.MustCompile(`(?i)over ₹?(\d+)`),
	regexp.MustCompile(`(?i)more than ₹?(\d+)`),
	regexp.MustCompile(`(?i)minimum ₹?(\d+)`),
	regexp.MustCompile(`(?i)min ₹?(\d+)`),
	regexp.MustCompile(`(?i)from ₹?(\d+)`),
}

// Combined range takes precedence over the individual bounds
var rangePattern = regexp.MustCompile(`(?i)₹?(\d+)[-\s]?to[-\s]?₹?(\d+)`)

var categoryKeywords = []string{
	"electronics", "fashion", "furniture", "books", "sports",
	"home", "garden", "art", "collectibles", "toys", "music",
	"instruments", "clothes", "clothing", "shoes", "accessories",
}

var searchStopWords = map[string]bool{
	"show": true, "me": true, "find": true, "search": true, "for": true,
	"get": true, "want": true, "need": true, "looking": true, "i": true,
	"am": true, "a": true, "an": true, "the": true,
}

var priceRelationWords = map[string]bool{
	"under": true, "above": true, "below": true, "over": true,
	"max": true, "min": true, "maximum": true, "minimum": true,
}

var numberToken = regexp.MustCompile(`^₹?\d+$`)

var productKeywords = []string{
	"buy", "purchase", "find", "search", "show", "get", "want", "need",
	"cheap", "expensive", "price", "cost", "under", "above", "below",
	"electronics", "fashion", "furniture", "books", "sports", "table",
	"phone", "laptop", "chair", "sofa", "clothes", "shoes", "bag",
}

var knowledgeKeywords = []string{
	"how", "what", "why", "when", "where", "help", "about", "mission",
	"sustainable", "ecofinds", "platform", "sell", "listing", "account",
	"return", "policy", "quality", "rating", "community", "guidelines",
	"circular economy", "environment", "carbon", "waste", "recycle",
}

// ExtractPriceRange pulls min/max price bounds out of a query. A combined
// "N to M" range wins outright; otherwise the max and min phrase lists are
// scanned independently.
func ExtractPriceRange(query string) (minPrice, maxPrice *int) {
	if m := rangePattern.FindStringSubmatch(query); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		return &lo, &hi
	}

	for _, re := range maxPricePatterns {
		if m := re.FindStringSubmatch(query); m != nil {
			v, _ := strconv.Atoi(m[1])
			maxPrice = &v
			break
		}
	}

	for _, re := range minPricePatterns {
		if m := re.FindStringSubmatch(query); m != nil {
			v, _ := strconv.Atoi(m[1])
			minPrice = &v
			break
		}
	}

	return minPrice, maxPrice
}

// ExtractCategory finds the first category keyword mentioned in the query
// and returns its canonical capitalized name. Clothing-adjacent keywords
// alias to Fashion.
func ExtractCategory(query string) string {
	lower := strings.ToLower(query)

	for _, category := range categoryKeywords {
		if strings.Contains(lower, category) {
			switch category {
			case "clothes", "clothing", "shoes", "accessories":
				return "Fashion"
			}
			return strings.ToUpper(category[:1]) + category[1:]
		}
	}

	return ""
}

// ExtractSearchTerms strips stopwords, short tokens, bare numbers and
// price-relation words, returning the surviving words joined by spaces
func ExtractSearchTerms(query string) string {
	words := whitespaceRe.Split(strings.ToLower(query), -1)

	var kept []string
	for _, word := range words {
		if searchStopWords[word] || len(word) <= 2 {
			continue
		}
		if numberToken.MatchString(word) || priceRelationWords[word] {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

func keywordScore(lower string, keywords []string) int {
	score := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			if len(keyword) > 4 {
				score += 2
			} else {
				score++
			}
		}
	}
	return score
}

// DetectIntent classifies a message as a product search or a knowledge
// lookup, extracting search parameters along the way. The confidence
// denominators differ between the two branches; that asymmetry matches
// the long-standing scoring behavior and is kept deliberately.
func DetectIntent(query string) domain.Intent {
	lower := strings.ToLower(query)

	productScore := keywordScore(lower, productKeywords)
	docScore := keywordScore(lower, knowledgeKeywords)

	minPrice, maxPrice := ExtractPriceRange(query)
	params := domain.IntentParams{
		Search:   ExtractSearchTerms(query),
		Category: ExtractCategory(query),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}

	if productScore > docScore && (params.Category != "" || params.Search != "" || params.MaxPrice != nil) {
		confidence := float64(productScore) / float64(productScore+docScore)
		if confidence > 0.95 {
			confidence = 0.95
		}
		return domain.Intent{
			Kind:       domain.IntentProduct,
			Confidence: confidence,
			Params:     params,
		}
	}

	confidence := float64(docScore) / float64(productScore+docScore+1)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return domain.Intent{
		Kind:       domain.IntentKnowledge,
		Confidence: confidence,
		Params:     params,
	}
}
