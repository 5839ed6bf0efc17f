package assistant

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Denylist of disallowed terms, matched as substrings of the lowercased
// message rather than tokenized. Mid-word hits are accepted as a known
// weakness of this approach.
var inappropriateWords = []string{
	// English
	"fuck", "shit", "damn", "bitch", "asshole", "bastard", "crap", "piss",
	"hell", "stupid", "idiot", "moron", "dumb", "retard", "gay", "fag",

	// Hindi (transliterated)
	"chutiya", "madarchod", "bhenchod", "randi", "saala", "kamina", "harami",
	"gandu", "bhosdike", "laude", "lund", "gaand", "chut", "raand",
	"kutte", "kamine", "badtameez", "bewakoof", "pagal", "ullu",
}

var warningMessages = []string{
	"⚠️ Please use respectful language! EcoBuddy promotes positive communication. Let's keep our conversation friendly and eco-conscious! 🌱",
	"🚫 That language isn't appropriate here. I'm here to help with sustainable shopping and eco-friendly tips. Let's chat respectfully! 💚",
	"⚠️ Let's keep our conversation positive and respectful! I'm excited to help you with sustainable products and eco-tips instead! 🌍",
	"🌱 Please use kind words! EcoBuddy believes in spreading positivity along with sustainability. How can I help you today?",
	"💚 Respectful communication makes our eco-community stronger! Let's focus on finding amazing sustainable products together!",
}

const blockMessage = "🔒 Your chat has been temporarily blocked for 5 minutes due to repeated inappropriate language. EcoBuddy promotes respectful communication in our eco-community. Please return with positive energy! 🌱"

// ContentCheck is the result of a moderation pass over one message
type ContentCheck struct {
	Inappropriate  bool
	WarningMessage string
}

// Moderator flags disallowed terms in user messages. It holds no
// per-session state; warning counts and block windows live on the
// conversation and are driven by the engine.
type Moderator struct {
	rng *rand.Rand
}

// NewModerator creates a moderator using the given random source for
// warning selection
func NewModerator(rng *rand.Rand) *Moderator {
	return &Moderator{rng: rng}
}

// CheckContent scans a message against the denylist. Flagged messages
// get a warning chosen uniformly at random from the pool.
func (m *Moderator) CheckContent(message string) ContentCheck {
	lower := strings.ToLower(message)

	for _, word := range inappropriateWords {
		if strings.Contains(lower, word) {
			return ContentCheck{
				Inappropriate:  true,
				WarningMessage: warningMessages[m.rng.Intn(len(warningMessages))],
			}
		}
	}

	return ContentCheck{}
}

// BlockMessage returns the fixed notice shown when a session gets blocked
func (m *Moderator) BlockMessage() string {
	return blockMessage
}

// FormatTimeRemaining renders the time left until the block expires as
// "M:SS", clamped to zero once expired. Minutes are unbounded.
func FormatTimeRemaining(until, now time.Time) string {
	left := until.Sub(now)
	if left < 0 {
		left = 0
	}
	minutes := int(left / time.Minute)
	seconds := int(left%time.Minute) / int(time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
