// followup.go - Free-text follow-up answering about a captured company

package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cardscanbot/cardscan/internal/extract"
)

// FallbackAnswer is the fixed reply used by the text handler whenever the
// follow-up call fails, regardless of question content.
const FallbackAnswer = "Unable to fetch information right now."

// Answerer queries the LLM about the company in a stored record. Like the
// Extractor, it returns errors explicitly and leaves the fallback reply to
// the caller.
type Answerer struct {
	provider Provider
	timeout  time.Duration
}

// NewAnswerer creates an Answerer bound to a provider with a hard wall-clock
// timeout per call.
func NewAnswerer(provider Provider, timeout time.Duration) *Answerer {
	return &Answerer{provider: provider, timeout: timeout}
}

// Answer builds the context-augmented prompt from the stored record and asks
// the model for a free-text answer. No JSON shaping here.
func (a *Answerer) Answer(ctx context.Context, rec extract.ContactRecord, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	content, err := a.provider.Chat(ctx, ChatRequest{
		User: BuildFollowUpPrompt(rec, question),
	})
	if err != nil {
		return "", fmt.Errorf("follow-up answering failed: %w", err)
	}
	return content, nil
}
