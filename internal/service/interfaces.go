// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/sawara-dev/ryohi/internal/model"
)

// SheetHandle identifies one sheet inside a target spreadsheet or workbook.
type SheetHandle struct {
	SpreadsheetID string
	Name          string
	SheetID       int64
}

// SheetSink is the persistence boundary for the positional ledger.
type SheetSink interface {
	// CreateOrReplaceSheet prepares an empty sheet with the given name,
	// deleting any existing sheet of that name first.
	CreateOrReplaceSheet(ctx context.Context, name string) (SheetHandle, error)
	// WriteCells writes the positioned cell blocks onto the sheet.
	WriteCells(ctx context.Context, handle SheetHandle, blocks []model.CellBlock) error
}

// Location is a placeholder occurrence inside a document body, as half-open
// rune offsets into the body text.
type Location struct {
	Start int64
	End   int64
}

// DocumentBody is the mutable text surface of one generated document. The
// render engine drives it token by token; implementations map the calls onto
// their backing document API.
type DocumentBody interface {
	// FindPlaceholder locates the first occurrence of token, reporting
	// ok=false when the template does not contain it.
	FindPlaceholder(ctx context.Context, token string) (Location, bool, error)
	// ReplaceRange replaces the located range with the replacement text.
	ReplaceRange(ctx context.Context, loc Location, replacement string) error
	// DeleteRange removes the located range.
	DeleteRange(ctx context.Context, loc Location) error
	// InsertTable removes the located range and inserts a table of the
	// given rows (first row is the header) in its place.
	InsertTable(ctx context.Context, loc Location, rows [][]string) error
}

// DocumentStore creates and shares generated documents.
type DocumentStore interface {
	// CopyTemplate copies the template document under a new name and
	// returns the new document's ID.
	CopyTemplate(ctx context.Context, templateID, name string) (string, error)
	// OpenBody opens a document's body for render-model application.
	OpenBody(ctx context.Context, docID string) (DocumentBody, error)
	// ShareURL makes the document link-viewable and returns the preview URL.
	ShareURL(ctx context.Context, docID string) (string, error)
}

// SubmissionRecord is one submitted expense report as kept in the registry.
type SubmissionRecord struct {
	CreatedAt     time.Time
	ID            string
	SheetName     string
	Destination   string
	Purpose       string
	DepartureDate string
	ReturnDate    string
	DocumentID    string
	DocumentURL   string
	GrandTotal    int64
	Payload       []byte
}

// Storage defines the contract for the submission registry.
type Storage interface {
	SaveSubmission(ctx context.Context, rec *SubmissionRecord) error
	GetSubmission(ctx context.Context, id string) (*SubmissionRecord, error)
	// ListSubmissions returns stored submissions, newest first.
	ListSubmissions(ctx context.Context) ([]SubmissionRecord, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
