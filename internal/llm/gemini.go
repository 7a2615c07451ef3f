// gemini.go - Gemini chat client as an alternative LLM provider

package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/cardscanbot/cardscan/internal/ratelimit"
)

// GeminiProvider implements Provider on top of the Gemini API.
type GeminiProvider struct {
	apiKey  string
	model   string
	limiter *ratelimit.RateLimiter
}

// NewGeminiProvider creates a new Gemini provider. limiter may be nil to
// disable rate limiting.
func NewGeminiProvider(apiKey, model string, limiter *ratelimit.RateLimiter) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, model: model, limiter: limiter}
}

// Name returns "gemini"
func (p *GeminiProvider) Name() string { return "gemini" }

// Chat sends one exchange through the Gemini API. JSONResponse maps to the
// application/json response MIME type; there are no retries.
func (p *GeminiProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if p.limiter != nil {
		p.limiter.Wait()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.JSONResponse {
		model.ResponseMIMEType = "application/json"
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini generate content: empty response")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("gemini generate content: no text part in response")
}
