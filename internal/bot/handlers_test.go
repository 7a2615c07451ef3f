// handlers_test.go - Pipeline behavior tests with fake collaborators

package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardscanbot/cardscan/internal/extract"
	"github.com/cardscanbot/cardscan/internal/llm"
	"github.com/cardscanbot/cardscan/internal/ocr"
	"github.com/cardscanbot/cardscan/internal/state"
)

const sampleOCRText = "ACME CORP John Doe CTO +1 555-123-4567 john@acme.example https://acme.example"

type fakeMessenger struct {
	sent        []string
	sentChatIDs []int64
	sendErr     error
	getFileErr  error
	downloadErr error
}

func (f *fakeMessenger) SendMessage(_ context.Context, chatID int64, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, text)
	f.sentChatIDs = append(f.sentChatIDs, chatID)
	return nil
}

func (f *fakeMessenger) GetFile(_ context.Context, fileID string) (*File, error) {
	if f.getFileErr != nil {
		return nil, f.getFileErr
	}
	return &File{FileID: fileID, FilePath: "photos/" + fileID + ".jpg"}, nil
}

func (f *fakeMessenger) DownloadFileTo(_ context.Context, _, _ string, _ int64) (int64, error) {
	if f.downloadErr != nil {
		return 0, f.downloadErr
	}
	return 1024, nil
}

type fakeEngine struct {
	text string
	err  error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(_ context.Context, _ string) (ocr.Result, error) {
	if f.err != nil {
		return ocr.Result{}, f.err
	}
	return ocr.Result{Lines: []ocr.Line{{Text: f.text, Confidence: 0.9}}}, nil
}

type fakeExtractor struct {
	fields map[string]string
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (map[string]string, error) {
	f.calls++
	return f.fields, f.err
}

type fakeAnswerer struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAnswerer) Answer(_ context.Context, _ extract.ContactRecord, _ string) (string, error) {
	f.calls++
	return f.answer, f.err
}

type fakeSink struct {
	rows    []extract.ContactRecord
	chatIDs []int64
	err     error
}

func (f *fakeSink) Append(_ context.Context, chatID int64, rec extract.ContactRecord) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rec)
	f.chatIDs = append(f.chatIDs, chatID)
	return nil
}

func (f *fakeSink) Name() string { return "fake" }

type fixture struct {
	messenger *fakeMessenger
	engine    *fakeEngine
	extractor *fakeExtractor
	answerer  *fakeAnswerer
	store     *state.Store
	sink      *fakeSink
	handlers  *Handlers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		messenger: &fakeMessenger{},
		engine:    &fakeEngine{text: sampleOCRText},
		extractor: &fakeExtractor{fields: map[string]string{
			"Name":        "John Doe",
			"Designation": "CTO",
			"Company":     "Acme Corp",
			"Address":     "42 Main St",
			"Industry":    "Software",
			"Services":    "Cloud consulting",
		}},
		answerer: &fakeAnswerer{answer: "Acme builds cloud software."},
		store:    state.NewStore(),
		sink:     &fakeSink{},
	}
	f.handlers = NewHandlers(f.messenger, f.engine, f.extractor, f.answerer, f.store, f.sink, t.TempDir(), 20<<20)
	return f
}

func photoMessage(chatID int64) *Message {
	return &Message{
		MessageID: 1,
		Chat:      &Chat{ID: chatID, Type: "private"},
		From:      &User{ID: chatID},
		Photo: []PhotoSize{
			{FileID: "small", Width: 90, Height: 60},
			{FileID: "large", Width: 1280, Height: 960},
		},
	}
}

func TestHandlePhotoHappyPath(t *testing.T) {
	f := newFixture(t)

	f.handlers.HandlePhoto(context.Background(), photoMessage(42))

	// Exactly one sink row and one state entry per photo.
	require.Len(t, f.sink.rows, 1)
	assert.Equal(t, int64(42), f.sink.chatIDs[0])

	rec, ok := f.store.Get(42)
	require.True(t, ok)
	assert.Equal(t, "John Doe", rec.Name)
	assert.Equal(t, "+1 555-123-4567", rec.Phone)
	assert.Equal(t, "john@acme.example", rec.Email)
	assert.Equal(t, "https://acme.example", rec.Website)

	// Ack first, summary last.
	require.Len(t, f.messenger.sent, 2)
	assert.Equal(t, AckMessage, f.messenger.sent[0])
	assert.Contains(t, f.messenger.sent[1], "*Name*: John Doe")
	assert.Contains(t, f.messenger.sent[1], "*Phone*: +1 555-123-4567")
	assert.Contains(t, f.messenger.sent[1], "*Services*: Cloud consulting")
}

func TestHandlePhotoAIFailureDegrades(t *testing.T) {
	f := newFixture(t)
	f.extractor.err = errors.New("timeout")

	f.handlers.HandlePhoto(context.Background(), photoMessage(42))

	require.Len(t, f.sink.rows, 1)
	rec := f.sink.rows[0]
	// AI-owned fields degrade to the sentinel, regex-owned fields are kept.
	assert.Equal(t, extract.NotFound, rec.Name)
	assert.Equal(t, extract.NotFound, rec.Company)
	assert.Equal(t, "+1 555-123-4567", rec.Phone)
	assert.Equal(t, "john@acme.example", rec.Email)

	require.Len(t, f.messenger.sent, 2)
	assert.Contains(t, f.messenger.sent[1], "*Name*: Not Found")
}

func TestHandlePhotoOCRFailureDropsEvent(t *testing.T) {
	f := newFixture(t)
	f.engine.err = errors.New("tesseract crashed")

	f.handlers.HandlePhoto(context.Background(), photoMessage(42))

	assert.Empty(t, f.sink.rows)
	_, ok := f.store.Get(42)
	assert.False(t, ok)
	assert.Zero(t, f.extractor.calls)
	// Only the ack went out.
	require.Len(t, f.messenger.sent, 1)
	assert.Equal(t, AckMessage, f.messenger.sent[0])
}

func TestHandlePhotoDownloadFailureDropsEvent(t *testing.T) {
	f := newFixture(t)
	f.messenger.downloadErr = errors.New("file too large")

	f.handlers.HandlePhoto(context.Background(), photoMessage(42))

	assert.Empty(t, f.sink.rows)
	assert.Zero(t, f.extractor.calls)
}

func TestHandlePhotoSinkFailureDropsReply(t *testing.T) {
	f := newFixture(t)
	f.sink.err = errors.New("sheet unavailable")

	f.handlers.HandlePhoto(context.Background(), photoMessage(42))

	// State is written before persistence, so the follow-up flow still works,
	// but no summary goes out for the dropped event.
	_, ok := f.store.Get(42)
	assert.True(t, ok)
	require.Len(t, f.messenger.sent, 1)
	assert.Equal(t, AckMessage, f.messenger.sent[0])
}

func TestHandleTextWithoutStoredCard(t *testing.T) {
	f := newFixture(t)

	f.handlers.HandleText(context.Background(), &Message{
		Chat: &Chat{ID: 42},
		Text: "What does this company do?",
	})

	require.Len(t, f.messenger.sent, 1)
	assert.Equal(t, InstructionalReply, f.messenger.sent[0])
	// No LLM call for unknown chats.
	assert.Zero(t, f.answerer.calls)
}

func TestHandleTextWithStoredCard(t *testing.T) {
	f := newFixture(t)
	f.store.Put(42, extract.ContactRecord{Company: "Acme Corp"})

	f.handlers.HandleText(context.Background(), &Message{
		Chat: &Chat{ID: 42},
		Text: "What does this company do?",
	})

	require.Len(t, f.messenger.sent, 1)
	assert.Equal(t, "Acme builds cloud software.", f.messenger.sent[0])
	assert.Equal(t, 1, f.answerer.calls)
}

func TestHandleTextAnswerFailureFallsBack(t *testing.T) {
	f := newFixture(t)
	f.store.Put(42, extract.ContactRecord{Company: "Acme Corp"})
	f.answerer.err = errors.New("rate limited")

	f.handlers.HandleText(context.Background(), &Message{
		Chat: &Chat{ID: 42},
		Text: "Revenue?",
	})

	require.Len(t, f.messenger.sent, 1)
	assert.Equal(t, llm.FallbackAnswer, f.messenger.sent[0])
}

func TestHandleUpdateDispatch(t *testing.T) {
	f := newFixture(t)

	// Nil message and bot senders are ignored.
	f.handlers.HandleUpdate(context.Background(), Update{UpdateID: 1})
	f.handlers.HandleUpdate(context.Background(), Update{
		UpdateID: 2,
		Message: &Message{
			Chat: &Chat{ID: 42},
			From: &User{ID: 7, IsBot: true},
			Text: "hello",
		},
	})
	assert.Empty(t, f.messenger.sent)

	// Text dispatches to the text handler.
	f.handlers.HandleUpdate(context.Background(), Update{
		UpdateID: 3,
		Message: &Message{
			Chat: &Chat{ID: 42},
			Text: "hello",
		},
	})
	require.Len(t, f.messenger.sent, 1)
	assert.Equal(t, InstructionalReply, f.messenger.sent[0])
}

func TestLargestPhoto(t *testing.T) {
	_, ok := LargestPhoto(nil)
	assert.False(t, ok)

	best, ok := LargestPhoto([]PhotoSize{
		{FileID: "b", Width: 1280, Height: 960},
		{FileID: "a", Width: 90, Height: 60},
	})
	require.True(t, ok)
	assert.Equal(t, "b", best.FileID)
}

func TestFormatSummaryOrder(t *testing.T) {
	summary := FormatSummary(extract.ContactRecord{
		Name: "John", Designation: "CTO", Company: "Acme",
		Phone: "+1", Email: "j@a", Website: "w",
		Address: "addr", Industry: "ind", Services: "svc",
	})
	assert.Equal(t,
		"*Name*: John\n*Designation*: CTO\n*Company*: Acme\n*Phone*: +1\n*Email*: j@a\n*Website*: w\n*Address*: addr\n*Industry*: ind\n*Services*: svc",
		summary)
}
