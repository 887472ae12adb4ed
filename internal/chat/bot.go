// Package chat implements the scripted FAQ responder: an ordered list of
// keyword rules evaluated in priority order, first match wins.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/brgysanantonio/portal/internal/models"
	"github.com/brgysanantonio/portal/internal/view"
)

const fallbackReply = "I'm sorry, I couldn't find a direct answer. I'm a demo assistant for Barangay San Antonio 1. How can I direct your concern?"

// rule pairs a predicate over the lowercased message with a responder.
type rule struct {
	match   func(msg string) bool
	respond func(b *Bot, original string) (reply string, concernLogged bool)
}

// Bot answers citizen questions and keeps an in-memory log of concerns.
// Concerns are never persisted; they live for the lifetime of the process.
type Bot struct {
	totalAllocated func() float64

	mu       sync.Mutex
	concerns []models.Concern

	rules []rule
}

// New creates a Bot. totalAllocated supplies the live sum of all allocated
// amounts for budget questions.
func New(totalAllocated func() float64) *Bot {
	b := &Bot{totalAllocated: totalAllocated}
	b.rules = []rule{
		{
			match: anyKeyword("total budget", "allocated"),
			respond: func(b *Bot, _ string) (string, bool) {
				total := view.FormatCurrency(b.totalAllocated())
				return "The Total Annual Budget for Barangay San Antonio 1 is currently " + total + ". You can view the full breakdown in the table above.", false
			},
		},
		{
			match: anyKeyword("admin", "update"),
			respond: func(_ *Bot, _ string) (string, bool) {
				return "The Admin Login is for authorized barangay officials only. Once logged in, officials can update budget figures and broadcast announcements.", false
			},
		},
		{
			match: anyKeyword("concern", "recommendation", "suggest"),
			respond: func(b *Bot, original string) (string, bool) {
				b.logConcern(original)
				return "Your concern has been formally logged and will be reviewed by the admin staff. Thank you for participating!", true
			},
		},
		{
			match: anyKeyword("contact", "office"),
			respond: func(_ *Bot, _ string) (string, bool) {
				return "You can contact the Barangay Hall at (049) 555-1234 or visit the office during business hours (M-F, 8am-5pm).", false
			},
		},
	}
	return b
}

// Respond answers a single message. It reports whether the message was
// logged as a concern. Callers must pass a non-empty, trimmed message.
func (b *Bot) Respond(message string) (reply string, concernLogged bool) {
	lower := strings.ToLower(message)
	for _, r := range b.rules {
		if r.match(lower) {
			return r.respond(b, message)
		}
	}
	return fallbackReply, false
}

func (b *Bot) logConcern(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.concerns = append(b.concerns, models.Concern{
		Type:      "Concern/Recommendation",
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Concerns returns a copy of the logged concerns, oldest first.
func (b *Bot) Concerns() []models.Concern {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Concern, len(b.concerns))
	copy(out, b.concerns)
	return out
}

// ConcernCount returns the number of logged concerns.
func (b *Bot) ConcernCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.concerns)
}

func anyKeyword(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, k := range keywords {
			if strings.Contains(msg, k) {
				return true
			}
		}
		return false
	}
}
