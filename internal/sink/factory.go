// factory.go - Sink factory for creating backend instances

package sink

import (
	"context"
	"fmt"
	"log"
)

// Config contains configuration for contact sinks
type Config struct {
	// Backend name: "sheets" or "mongo"
	Backend string

	// Google Sheets configuration
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string

	// MongoDB configuration
	MongoURI    string
	MongoDBName string

	// Timezone for the stored timestamp
	Timezone string
}

// New creates a contact sink based on configuration
func New(ctx context.Context, cfg Config) (Sink, error) {
	switch cfg.Backend {
	case "sheets":
		log.Printf("🟢 Creating Google Sheets sink (sheet: %s)", cfg.SheetName)
		return NewSheetsSink(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetName, cfg.Timezone)

	case "mongo":
		log.Printf("🍃 Creating MongoDB sink (db: %s)", cfg.MongoDBName)
		return NewMongoSink(ctx, cfg.MongoURI, cfg.MongoDBName, cfg.Timezone)

	default:
		return nil, fmt.Errorf("unsupported sink backend: %s (supported: sheets, mongo)", cfg.Backend)
	}
}
