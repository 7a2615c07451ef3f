// engine.go - OCR engine contract and result types

package ocr

import (
	"context"
	"strings"
)

// Line is a single recognized text line with the engine's confidence in it,
// scaled to 0..1.
type Line struct {
	Text       string
	Confidence float64
}

// Result captures OCR output for one image, lines in the order the engine
// returned them.
type Result struct {
	Lines []Line
}

// JoinedText concatenates all recognized line texts, space-joined, in engine
// order. This is the raw text fed to both extractors.
func (r Result) JoinedText() string {
	parts := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		if l.Text != "" {
			parts = append(parts, l.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Engine is the OCR provider contract: one image path in, one result out.
// Implementations are expected to honor ctx cancellation as a hard deadline
// even when the underlying recognizer cannot be interrupted.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, imagePath string) (Result, error)
}
