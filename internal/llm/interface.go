// interface.go - LLM provider interface for supporting multiple AI providers

package llm

import "context"

// ChatRequest is a single chat-completion exchange: an optional system
// message, one user message, and response shaping knobs.
type ChatRequest struct {
	System       string
	User         string
	Temperature  float32 // zero means provider default
	JSONResponse bool    // ask the provider for a JSON object response
}

// Provider defines the interface that all LLM providers must implement.
// Both call sites (structured field extraction and free-text follow-up)
// go through it, which keeps the pipeline testable without live credentials.
type Provider interface {
	// Chat sends one exchange and returns the model's content string.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// Name returns the provider name (e.g., "groq", "gemini")
	Name() string
}
