package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/service"
)

// Writer implements the SheetSink interface for Google Sheets. One sheet tab
// per submission; re-submitting replaces the tab.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets ledger writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient, err := config.Credentials.Client(ctx, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// CreateOrReplaceSheet implements the SheetSink interface. An existing tab
// with the same name is deleted before the fresh one is added, so the
// operation is idempotent across retries.
func (w *Writer) CreateOrReplaceSheet(ctx context.Context, name string) (service.SheetHandle, error) {
	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return service.SheetHandle{}, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	spreadsheet, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return service.SheetHandle{}, fmt.Errorf("unable to read spreadsheet %s: %w", spreadsheetID, err)
	}

	requests := make([]*sheets.Request, 0, 2)
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			requests = append(requests, &sheets.Request{
				DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheet.Properties.SheetId},
			})
			break
		}
	}
	requests = append(requests, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: name},
		},
	})

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return service.SheetHandle{}, fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	handle := service.SheetHandle{SpreadsheetID: spreadsheetID, Name: name}
	for _, r := range resp.Replies {
		if r.AddSheet != nil && r.AddSheet.Properties != nil {
			handle.SheetID = r.AddSheet.Properties.SheetId
		}
	}

	w.logger.Info("prepared sheet", "spreadsheet_id", spreadsheetID, "sheet", name)
	return handle, nil
}

// WriteCells implements the SheetSink interface. Each block becomes one
// values update, retried with backoff.
func (w *Writer) WriteCells(ctx context.Context, handle service.SheetHandle, blocks []model.CellBlock) error {
	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	for _, block := range blocks {
		rangeStr := fmt.Sprintf("'%s'!%s%d", handle.Name, columnName(block.Col), block.Row)
		valueRange := &sheets.ValueRange{Values: block.Values}

		err := common.WithRetry(ctx, func() error {
			_, updateErr := w.service.Spreadsheets.Values.Update(handle.SpreadsheetID, rangeStr, valueRange).
				ValueInputOption("USER_ENTERED").
				Context(ctx).
				Do()
			return updateErr
		}, retryOpts)

		if err != nil {
			return fmt.Errorf("failed to write block at %s: %w", rangeStr, err)
		}

		w.logger.Debug("wrote block", "range", rangeStr, "rows", len(block.Values))
	}

	return nil
}

// getOrCreateSpreadsheet gets the configured spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == 404 {
				return "", fmt.Errorf("%w: %s", common.ErrSheetNotFound, w.config.SpreadsheetID)
			}
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// columnName converts a 1-based column index to its A1-notation letters.
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
