// sink.go - Contact sink interface and row layout shared by backends

package sink

import (
	"context"
	"time"

	"github.com/cardscanbot/cardscan/internal/extract"
)

// Sink persists one extracted contact per successfully processed card photo.
type Sink interface {
	// Append stores a single contact record for the given Telegram chat.
	Append(ctx context.Context, chatID int64, rec extract.ContactRecord) error
	// Name identifies the backend for logs.
	Name() string
}

// HeaderRow is the fixed column layout written once to an empty sheet.
var HeaderRow = []interface{}{
	"Timestamp (IST)", "Telegram_ID", "Name", "Designation", "Company",
	"Phone", "Email", "Website", "Address", "Industry", "Services",
}

// BuildRow flattens a record into the 11 fixed columns in header order.
// now must already be in the sink timezone.
func BuildRow(now time.Time, chatID int64, rec extract.ContactRecord) []interface{} {
	return []interface{}{
		now.Format("2006-01-02 15:04:05"),
		chatID,
		rec.Name,
		rec.Designation,
		rec.Company,
		rec.Phone,
		rec.Email,
		rec.Website,
		rec.Address,
		rec.Industry,
		rec.Services,
	}
}
