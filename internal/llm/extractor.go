// extractor.go - AI extraction of the six descriptive card fields

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const extractionTemperature = 0.2

// Extractor asks the LLM for the six AI-owned fields of a card.
//
// Extract returns an explicit error when the call fails (network, timeout,
// malformed JSON); the degrade-to-"Not Found" policy lives one level up, in
// the photo handler, so callers and tests can tell "the model said Not Found"
// apart from "the call failed".
type Extractor struct {
	provider Provider
	timeout  time.Duration
}

// NewExtractor creates an Extractor bound to a provider with a hard
// wall-clock timeout per call.
func NewExtractor(provider Provider, timeout time.Duration) *Extractor {
	return &Extractor{provider: provider, timeout: timeout}
}

// Extract sends the OCR text to the model and parses its JSON content into a
// key/value map. Keys beyond the expected six are passed through untouched;
// the merger ignores them and defaults missing ones.
func (e *Extractor) Extract(ctx context.Context, ocrText string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	content, err := e.provider.Chat(ctx, ChatRequest{
		System:       extractionSystemPrompt,
		User:         BuildExtractionPrompt(ocrText),
		Temperature:  extractionTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &fields); err != nil {
		return nil, fmt.Errorf("ai extraction returned malformed JSON: %w", err)
	}
	return fields, nil
}

// stripCodeFence removes a markdown ```json fence some models wrap around
// their JSON despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
