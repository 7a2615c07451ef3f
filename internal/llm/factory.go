// factory.go - LLM provider factory for creating provider instances

package llm

import (
	"fmt"
	"log"

	"github.com/cardscanbot/cardscan/internal/ratelimit"
)

// ProviderConfig contains configuration for LLM providers
type ProviderConfig struct {
	// Provider name: "groq" or "gemini"
	Provider string

	// Groq configuration
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// Shared outbound rate limiter; nil disables rate limiting
	Limiter *ratelimit.RateLimiter
}

// NewProvider creates an LLM provider based on configuration
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "groq":
		log.Printf("🟠 Creating Groq LLM provider (model: %s)", cfg.GroqModel)
		return NewGroqProvider(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.Limiter), nil

	case "gemini":
		log.Printf("🔵 Creating Gemini LLM provider (model: %s)", cfg.GeminiModel)
		return NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Limiter), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: groq, gemini)", cfg.Provider)
	}
}
