package assistant

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestModerator_CheckContent(t *testing.T) {
	m := NewModerator(rand.New(rand.NewSource(1)))

	t.Run("flags every denylisted word", func(t *testing.T) {
		for _, word := range inappropriateWords {
			check := m.CheckContent("you are such a " + word + " today")
			if !check.Inappropriate {
				t.Errorf("expected %q to be flagged", word)
			}
			if check.WarningMessage == "" {
				t.Errorf("expected a warning message for %q", word)
			}
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		for _, word := range inappropriateWords[:3] {
			if !m.CheckContent(strings.ToUpper(word)).Inappropriate {
				t.Errorf("expected uppercase %q to be flagged", word)
			}
		}
	})

	t.Run("matches inside words", func(t *testing.T) {
		// Substring matching is intentional, so embedded hits count too.
		if !m.CheckContent("shitake").Inappropriate {
			t.Error("expected embedded denylist word to be flagged")
		}
		// "hello" contains "hell"; the false positive is kept on purpose.
		if !m.CheckContent("Hello!").Inappropriate {
			t.Error("expected hello to be flagged via its embedded denylist word")
		}
	})

	t.Run("clean message passes", func(t *testing.T) {
		check := m.CheckContent("show me eco friendly products")
		if check.Inappropriate {
			t.Error("clean message should not be flagged")
		}
		if check.WarningMessage != "" {
			t.Errorf("unexpected warning: %q", check.WarningMessage)
		}
	})
}

func TestFormatTimeRemaining(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		until time.Time
		want  string
	}{
		{"minutes and seconds", now.Add(2*time.Minute + 5*time.Second), "2:05"},
		{"full block window", now.Add(5 * time.Minute), "5:00"},
		{"under a minute", now.Add(59 * time.Second), "0:59"},
		{"already expired", now.Add(-30 * time.Second), "0:00"},
		{"exact expiry", now, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeRemaining(tt.until, now); got != tt.want {
				t.Errorf("FormatTimeRemaining() = %q, want %q", got, tt.want)
			}
		})
	}
}
