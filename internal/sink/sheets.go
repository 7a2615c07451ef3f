// sheets.go - Google Sheets contact sink

package sink

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/cardscanbot/cardscan/internal/extract"
)

// SheetsSink appends contact rows to a single worksheet of a Google
// Spreadsheet via a service account.
type SheetsSink struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	location      *time.Location
	now           func() time.Time
}

// NewSheetsSink builds the Sheets client from a service-account credentials
// file and verifies the target spreadsheet is reachable. If the worksheet is
// empty it writes the header row first, so a fresh sheet is self-describing.
func NewSheetsSink(ctx context.Context, credentialsFile, spreadsheetID, sheetName, timezone string) (*SheetsSink, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid sink timezone %q: %w", timezone, err)
	}

	s := &SheetsSink{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		location:      location,
		now:           time.Now,
	}

	if err := s.ensureHeader(ctx); err != nil {
		return nil, err
	}

	log.Printf("✅ Connected to Google Sheet %s (%s)", spreadsheetID, sheetName)
	return s, nil
}

// Name returns "sheets"
func (s *SheetsSink) Name() string { return "sheets" }

// ensureHeader writes the column header row when the worksheet has no data.
func (s *SheetsSink) ensureHeader(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName+"!A1:K1").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read sheet header: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	_, err = s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName+"!A1", &sheets.ValueRange{
			Values: [][]interface{}{HeaderRow},
		}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet header: %w", err)
	}

	log.Printf("📋 Wrote header row to empty sheet %s", s.sheetName)
	return nil
}

// Append adds one contact row at the bottom of the worksheet.
func (s *SheetsSink) Append(ctx context.Context, chatID int64, rec extract.ContactRecord) error {
	row := BuildRow(s.now().In(s.location), chatID, rec)

	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName+"!A1", &sheets.ValueRange{
			Values: [][]interface{}{row},
		}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append contact row: %w", err)
	}
	return nil
}
