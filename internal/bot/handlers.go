// handlers.go - Photo and text event handlers (the card-scanning pipeline)

package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cardscanbot/cardscan/internal/common"
	"github.com/cardscanbot/cardscan/internal/extract"
	"github.com/cardscanbot/cardscan/internal/llm"
	"github.com/cardscanbot/cardscan/internal/ocr"
	"github.com/cardscanbot/cardscan/internal/sink"
	"github.com/cardscanbot/cardscan/internal/state"
)

const (
	// AckMessage is sent immediately when a photo arrives, before any work.
	AckMessage = "📸 Image received & analyzing..."
	// InstructionalReply is sent to text messages from chats with no stored card.
	InstructionalReply = "Please send a visiting card image first."
)

// Messenger is the slice of the Telegram client the handlers use.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	GetFile(ctx context.Context, fileID string) (*File, error)
	DownloadFileTo(ctx context.Context, filePath, dstPath string, maxBytes int64) (int64, error)
}

// FieldExtractor asks the LLM for the six AI-owned card fields.
type FieldExtractor interface {
	Extract(ctx context.Context, ocrText string) (map[string]string, error)
}

// QuestionAnswerer answers a follow-up question about a stored record.
type QuestionAnswerer interface {
	Answer(ctx context.Context, rec extract.ContactRecord, question string) (string, error)
}

// Handlers wires the pipeline stages together. All collaborators are
// injected; nothing here reaches for globals.
type Handlers struct {
	messenger Messenger
	engine    ocr.Engine
	extractor FieldExtractor
	answerer  QuestionAnswerer
	store     *state.Store
	sink      sink.Sink

	downloadDir      string
	maxDownloadBytes int64
}

// NewHandlers creates the event handlers.
func NewHandlers(messenger Messenger, engine ocr.Engine, extractor FieldExtractor, answerer QuestionAnswerer, store *state.Store, contactSink sink.Sink, downloadDir string, maxDownloadBytes int64) *Handlers {
	return &Handlers{
		messenger:        messenger,
		engine:           engine,
		extractor:        extractor,
		answerer:         answerer,
		store:            store,
		sink:             contactSink,
		downloadDir:      downloadDir,
		maxDownloadBytes: maxDownloadBytes,
	}
}

// HandleUpdate dispatches one inbound update. Updates that are neither a
// photo nor a text message are ignored.
func (h *Handlers) HandleUpdate(ctx context.Context, u Update) {
	msg := u.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	if msg.From != nil && msg.From.IsBot {
		return
	}

	switch {
	case len(msg.Photo) > 0:
		h.HandlePhoto(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		h.HandleText(ctx, msg)
	}
}

// HandlePhoto runs the full card pipeline: ack, download, OCR, regex + AI
// extraction, merge, state + sink persistence, summary reply.
//
// OCR, download and sink failures are fatal to the event: logged and
// dropped, the process keeps running. AI-extraction failure degrades to
// all-"Not Found" AI fields and the pipeline continues.
func (h *Handlers) HandlePhoto(ctx context.Context, msg *Message) {
	rc := common.NewRequestContext(msg.Chat.ID)

	if err := h.messenger.SendMessage(ctx, msg.Chat.ID, AckMessage); err != nil {
		rc.LogWarning("Failed to send acknowledgement: %v", err)
	}

	rc.StartStep("Download photo")
	imagePath, err := h.downloadPhoto(ctx, rc, msg)
	rc.EndStep(err)
	if err != nil {
		return
	}
	defer os.Remove(imagePath)

	rc.StartStep("OCR")
	result, err := h.engine.Recognize(ctx, imagePath)
	rc.EndStep(err)
	if err != nil {
		return
	}
	ocrText := result.JoinedText()
	rc.LogInfo("OCR produced %d lines (%d chars)", len(result.Lines), len(ocrText))

	rc.StartStep("Regex extraction")
	regexFields := extract.ExtractContactFields(ocrText)
	rc.EndStep(nil)

	rc.StartStep("AI extraction")
	aiFields, err := h.extractor.Extract(ctx, ocrText)
	rc.EndStep(err)
	if err != nil {
		// Degrade to sentinels; the regex-owned fields are unaffected.
		rc.LogWarning("AI extraction degraded to defaults: %v", err)
		aiFields = extract.NotFoundAIFields()
	}

	record := extract.Merge(regexFields, aiFields)
	h.store.Put(msg.Chat.ID, record)

	rc.StartStep("Persist contact")
	err = h.sink.Append(ctx, msg.Chat.ID, record)
	rc.EndStep(err)
	if err != nil {
		return
	}

	if err := h.messenger.SendMessage(ctx, msg.Chat.ID, FormatSummary(record)); err != nil {
		rc.LogError("Failed to send summary: %v", err)
		return
	}

	rc.LogInfo("Card processed in %.2fs", rc.TotalDuration().Seconds())
}

// downloadPhoto fetches the highest-resolution variant of the attached photo
// into the download directory and returns the local path.
func (h *Handlers) downloadPhoto(ctx context.Context, rc *common.RequestContext, msg *Message) (string, error) {
	photo, ok := LargestPhoto(msg.Photo)
	if !ok {
		return "", fmt.Errorf("message has no photo sizes")
	}

	file, err := h.messenger.GetFile(ctx, photo.FileID)
	if err != nil {
		return "", fmt.Errorf("getFile: %w", err)
	}

	dstPath := filepath.Join(h.downloadDir, rc.RequestID+".jpg")
	n, err := h.messenger.DownloadFileTo(ctx, file.FilePath, dstPath, h.maxDownloadBytes)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	rc.LogInfo("Downloaded %d bytes to %s", n, dstPath)
	return dstPath, nil
}

// HandleText answers a follow-up question about the last scanned card. Chats
// with no stored card get the instructional reply without any LLM call.
func (h *Handlers) HandleText(ctx context.Context, msg *Message) {
	rc := common.NewRequestContext(msg.Chat.ID)

	record, ok := h.store.Get(msg.Chat.ID)
	if !ok {
		rc.LogInfo("No stored card for chat, sending instructions")
		if err := h.messenger.SendMessage(ctx, msg.Chat.ID, InstructionalReply); err != nil {
			rc.LogError("Failed to send instructions: %v", err)
		}
		return
	}

	rc.StartStep("Follow-up answer")
	answer, err := h.answerer.Answer(ctx, record, msg.Text)
	rc.EndStep(err)
	if err != nil {
		answer = llm.FallbackAnswer
	}

	if err := h.messenger.SendMessage(ctx, msg.Chat.ID, answer); err != nil {
		rc.LogError("Failed to send answer: %v", err)
	}
}

// FormatSummary renders the field-by-field Markdown summary sent after a
// card is processed, in the fixed nine-field order.
func FormatSummary(rec extract.ContactRecord) string {
	var b strings.Builder
	fields := []struct {
		name  string
		value string
	}{
		{"Name", rec.Name},
		{"Designation", rec.Designation},
		{"Company", rec.Company},
		{"Phone", rec.Phone},
		{"Email", rec.Email},
		{"Website", rec.Website},
		{"Address", rec.Address},
		{"Industry", rec.Industry},
		{"Services", rec.Services},
	}
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "*%s*: %s", f.name, f.value)
	}
	return b.String()
}
