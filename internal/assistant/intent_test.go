package assistant_test

import (
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/assistant"
	"github.com/ecofinds/ecofinds-api/internal/domain"
)

func TestExtractPriceRange(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMin int
		wantMax int
	}{
		{"under", "show me phones under 5000", 0, 5000},
		{"under with rupee sign", "laptops under ₹30000", 0, 30000},
		{"below", "chairs below 2000", 0, 2000},
		{"less than", "anything less than 1500", 0, 1500},
		{"up to", "books up to 300", 0, 300},
		{"above", "furniture above 1000", 1000, 0},
		{"over", "electronics over 2500", 2500, 0},
		{"more than", "bags more than 800", 800, 0},
		{"range wins", "sofas 1000 to 5000", 1000, 5000},
		{"range with rupee signs", "₹500 to ₹900", 500, 900},
		{"no price", "show me some books", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := assistant.ExtractPriceRange(tt.query)
			if got := deref(min); got != tt.wantMin {
				t.Errorf("min = %d, want %d", got, tt.wantMin)
			}
			if got := deref(max); got != tt.wantMax {
				t.Errorf("max = %d, want %d", got, tt.wantMax)
			}
		})
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"show me electronics under 5000", "Electronics"},
		{"i need some books", "Books"},
		{"cheap clothes please", "Fashion"},
		{"running shoes", "Fashion"},
		{"any accessories?", "Fashion"},
		{"FURNITURE for my room", "Furniture"},
		{"what is your mission", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := assistant.ExtractCategory(tt.query); got != tt.want {
				t.Errorf("ExtractCategory(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractSearchTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"drops stopwords and prices", "show me electronics under 5000", "electronics"},
		{"drops short words", "big TV stand", "big stand"},
		{"keeps descriptive words", "find cheap wooden table", "cheap wooden table"},
		{"drops rupee amounts", "phone under ₹2000", "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assistant.ExtractSearchTerms(tt.query); got != tt.want {
				t.Errorf("ExtractSearchTerms(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestDetectIntent(t *testing.T) {
	t.Run("product query", func(t *testing.T) {
		intent := assistant.DetectIntent("show me electronics under 5000")

		if intent.Kind != domain.IntentProduct {
			t.Fatalf("kind = %q, want %q", intent.Kind, domain.IntentProduct)
		}
		if intent.Params.Category != "Electronics" {
			t.Errorf("category = %q, want Electronics", intent.Params.Category)
		}
		if intent.Params.MaxPrice == nil || *intent.Params.MaxPrice != 5000 {
			t.Errorf("max price = %v, want 5000", intent.Params.MaxPrice)
		}
		if intent.Confidence > 0.95 {
			t.Errorf("confidence = %v, want <= 0.95", intent.Confidence)
		}
	})

	t.Run("knowledge query", func(t *testing.T) {
		intent := assistant.DetectIntent("how do I sell an item on the platform?")

		if intent.Kind != domain.IntentKnowledge {
			t.Fatalf("kind = %q, want %q", intent.Kind, domain.IntentKnowledge)
		}
	})

	t.Run("ambiguous defaults to knowledge", func(t *testing.T) {
		intent := assistant.DetectIntent("hello there")

		if intent.Kind != domain.IntentKnowledge {
			t.Fatalf("kind = %q, want %q", intent.Kind, domain.IntentKnowledge)
		}
	})
}
