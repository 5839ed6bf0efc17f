package assistant_test

import (
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/assistant"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "eco tips", "eco tips", 1.0},
		{"both empty", "", "", 0},
		{"no overlap", "laptop stand", "wooden chair", 0},
		{"partial overlap", "eco friendly shopping tips", "eco tips", 0.5},
		{"substring token matches", "phone", "smartphone case", 0.5},
		{"case insensitive", "ECO Tips", "eco tips", 1.0},
		{"collapses repeated whitespace", "eco   tips", "eco tips", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assistant.Similarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Repeated tokens in one argument each count as a match, so the score
// depends on which side they appear on.
func TestSimilarity_Directional(t *testing.T) {
	forward := assistant.Similarity("go go go", "go")
	backward := assistant.Similarity("go", "go go go")

	if forward != 1.0 {
		t.Errorf("forward = %v, want 1.0", forward)
	}
	if backward >= forward {
		t.Errorf("backward = %v, expected less than forward %v", backward, forward)
	}
}
