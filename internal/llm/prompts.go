// prompts.go - Centralized prompt templates for the two LLM call sites

package llm

import (
	"fmt"

	"github.com/cardscanbot/cardscan/internal/extract"
)

const extractionSystemPrompt = "You are an expert at reading business cards."

// BuildExtractionPrompt embeds raw OCR text into the fixed instructional
// prompt for structured field extraction. The model must return strict JSON
// with exactly the six AI-owned keys.
func BuildExtractionPrompt(ocrText string) string {
	return fmt.Sprintf(`You are extracting information from a visiting card OCR text.

Rules:
- Use reasoning to infer fields even if labels are missing.
- Names are usually short, capitalized, near top.
- Company names are often bold, larger, or repeated.
- Address may span multiple lines.
- If multiple guesses exist, choose the most likely one.
- If absolutely impossible, return "Not Found".

Return ONLY valid JSON with exactly these keys:
Name, Designation, Company, Address, Industry, Services

OCR TEXT:
%s
`, ocrText)
}

// BuildFollowUpPrompt embeds the company context from a stored record plus
// the user's verbatim question. Only Company, Industry and Services are
// exposed to the model; the personal fields stay out of the prompt.
func BuildFollowUpPrompt(rec extract.ContactRecord, question string) string {
	context := fmt.Sprintf(`Company: %s
Industry: %s
Services: %s`, rec.Company, rec.Industry, rec.Services)

	return fmt.Sprintf(`You are a business analyst.
Answer using public knowledge and reasoning.
If exact data is unavailable, provide realistic estimates
and clearly state assumptions.

Context:
%s

Question:
%s
`, context, question)
}
