// groq.go - Groq chat-completion client (OpenAI-compatible API)

package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cardscanbot/cardscan/internal/ratelimit"
)

// GroqProvider implements Provider against Groq's OpenAI-compatible
// chat-completions endpoint.
type GroqProvider struct {
	client  *openai.Client
	model   string
	limiter *ratelimit.RateLimiter
}

// NewGroqProvider creates a new Groq provider. baseURL defaults to the Groq
// endpoint when empty; limiter may be nil to disable rate limiting.
func NewGroqProvider(apiKey, baseURL, model string, limiter *ratelimit.RateLimiter) *GroqProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	cfg.BaseURL = baseURL

	return &GroqProvider{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		limiter: limiter,
	}
}

// Name returns "groq"
func (p *GroqProvider) Name() string { return "groq" }

// Chat sends one exchange to the chat-completions endpoint. The ctx deadline
// is the only cancellation mechanism; there are no retries.
func (p *GroqProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if p.limiter != nil {
		p.limiter.Wait()
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	creq := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: req.Temperature,
		Messages:    messages,
	}
	if req.JSONResponse {
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
