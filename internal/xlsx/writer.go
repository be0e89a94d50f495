// Package xlsx provides a local XLSX workbook implementation of the ledger
// sheet sink, for running without a Google spreadsheet target.
package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/service"
)

// Writer implements the SheetSink interface over one workbook file. Call
// Close to flush the workbook to disk.
type Writer struct {
	file   *excelize.File
	logger *slog.Logger
	path   string
}

// NewWriter opens the workbook at path, creating it when absent.
func NewWriter(path string, logger *slog.Logger) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("workbook path is required")
	}

	var f *excelize.File
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
	} else {
		f = excelize.NewFile()
	}

	return &Writer{file: f, logger: logger, path: path}, nil
}

// CreateOrReplaceSheet implements the SheetSink interface. Names are
// sanitized to the workbook format's rules, so the handle's Name may differ
// from the requested one.
func (w *Writer) CreateOrReplaceSheet(_ context.Context, name string) (service.SheetHandle, error) {
	name = sanitizeSheetName(name)
	if idx, err := w.file.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := w.file.DeleteSheet(name); err != nil {
			return service.SheetHandle{}, fmt.Errorf("failed to delete sheet %q: %w", name, err)
		}
	}

	idx, err := w.file.NewSheet(name)
	if err != nil {
		return service.SheetHandle{}, fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	w.logger.Debug("prepared workbook sheet", "path", w.path, "sheet", name)
	return service.SheetHandle{SpreadsheetID: w.path, Name: name, SheetID: int64(idx)}, nil
}

// WriteCells implements the SheetSink interface.
func (w *Writer) WriteCells(_ context.Context, handle service.SheetHandle, blocks []model.CellBlock) error {
	for _, block := range blocks {
		for ri, row := range block.Values {
			for ci, value := range row {
				if s, ok := value.(string); ok && s == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(block.Col+ci, block.Row+ri)
				if err != nil {
					return fmt.Errorf("invalid cell position (%d,%d): %w", block.Col+ci, block.Row+ri, err)
				}
				if err := w.file.SetCellValue(handle.Name, cell, value); err != nil {
					return fmt.Errorf("failed to write cell %s: %w", cell, err)
				}
			}
		}
	}
	return nil
}

// sanitizeSheetName maps a sheet name onto the workbook format's rules:
// the characters : \ / ? * [ ] are forbidden and names cap at 31 characters.
// Dates like 2025/10/01 in submission-derived names become 2025-10-01.
func sanitizeSheetName(name string) string {
	runes := []rune(name)
	for i, r := range runes {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			runes[i] = '-'
		}
	}
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}

// Close saves the workbook to disk.
func (w *Writer) Close() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return w.file.Close()
}
