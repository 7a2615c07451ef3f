// tesseract.go - Tesseract-backed OCR engine via gosseract

package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/cardscanbot/cardscan/internal/processor"
)

// TesseractEngine implements Engine using the gosseract client.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
	language      string
	preprocess    bool
	maxDimension  int
	timeout       time.Duration
}

// NewTesseractEngine constructs a Tesseract-backed OCR engine. When
// preprocess is set, card photos are cleaned up with the image processor
// before recognition; on preprocessing failure the original file is used.
// timeout bounds each Recognize call; zero disables the bound.
func NewTesseractEngine(language string, preprocess bool, maxDimension int, timeout time.Duration) *TesseractEngine {
	return &TesseractEngine{
		clientFactory: gosseract.NewClient,
		language:      language,
		preprocess:    preprocess,
		maxDimension:  maxDimension,
		timeout:       timeout,
	}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize performs OCR on the image at imagePath. The gosseract calls
// cannot be interrupted mid-flight, so recognition runs in a goroutine and
// ctx expiry abandons it; the goroutine cleans up after itself.
func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) (Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		res, err := e.recognize(imagePath)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case out := <-done:
		return out.res, out.err
	}
}

func (e *TesseractEngine) recognize(imagePath string) (Result, error) {
	imageData, err := e.imageBytes(imagePath)
	if err != nil {
		return Result{}, err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(imageData); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	if e.language != "" {
		if err := c.SetLanguage(e.language); err != nil {
			return Result{}, fmt.Errorf("set language: %w", err)
		}
	}

	// Line-level boxes give per-line confidences. If Tesseract cannot
	// produce them, fall back to the plain text API as a single line.
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil || len(boxes) == 0 {
		text, terr := c.Text()
		if terr != nil {
			return Result{}, fmt.Errorf("recognize text: %w", terr)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return Result{}, nil
		}
		return Result{Lines: []Line{{Text: text}}}, nil
	}

	lines := make([]Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Text: text, Confidence: b.Confidence / 100.0})
	}
	return Result{Lines: lines}, nil
}

func (e *TesseractEngine) imageBytes(imagePath string) ([]byte, error) {
	if e.preprocess {
		data, err := processor.PreprocessImage(imagePath, e.maxDimension)
		if err == nil {
			return data, nil
		}
		// Preprocessing failure falls back to the original file.
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
