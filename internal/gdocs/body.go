package gdocs

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	"google.golang.org/api/docs/v1"

	"github.com/sawara-dev/ryohi/internal/service"
)

// Body implements the DocumentBody interface for one Google document. Every
// find re-reads the document, so ranges stay valid across the engine's
// replace-one-at-a-time loop. Docs API indexes count UTF-16 code units.
type Body struct {
	docs  *docs.Service
	docID string
}

// FindPlaceholder implements the DocumentBody interface.
func (b *Body) FindPlaceholder(ctx context.Context, token string) (service.Location, bool, error) {
	doc, err := b.docs.Documents.Get(b.docID).Context(ctx).Do()
	if err != nil {
		return service.Location{}, false, fmt.Errorf("failed to read document: %w", err)
	}

	loc, ok := findInContent(doc.Body.Content, token)
	return loc, ok, nil
}

// ReplaceRange implements the DocumentBody interface.
func (b *Body) ReplaceRange(ctx context.Context, loc service.Location, replacement string) error {
	requests := []*docs.Request{{
		DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{StartIndex: loc.Start, EndIndex: loc.End},
		},
	}}
	if replacement != "" {
		requests = append(requests, &docs.Request{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: loc.Start},
				Text:     replacement,
			},
		})
	}
	return b.batchUpdate(ctx, requests)
}

// DeleteRange implements the DocumentBody interface.
func (b *Body) DeleteRange(ctx context.Context, loc service.Location) error {
	return b.ReplaceRange(ctx, loc, "")
}

// InsertTable implements the DocumentBody interface. The placeholder range is
// removed, an empty grid is inserted at its position, and the cells are then
// filled in a second pass (cell fills run back to front so earlier indexes
// stay valid).
func (b *Body) InsertTable(ctx context.Context, loc service.Location, rows [][]string) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return b.DeleteRange(ctx, loc)
	}

	err := b.batchUpdate(ctx, []*docs.Request{
		{
			DeleteContentRange: &docs.DeleteContentRangeRequest{
				Range: &docs.Range{StartIndex: loc.Start, EndIndex: loc.End},
			},
		},
		{
			InsertTable: &docs.InsertTableRequest{
				Location: &docs.Location{Index: loc.Start},
				Rows:     int64(len(rows)),
				Columns:  int64(len(rows[0])),
			},
		},
	})
	if err != nil {
		return err
	}

	doc, err := b.docs.Documents.Get(b.docID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to re-read document: %w", err)
	}

	table := tableAt(doc.Body.Content, loc.Start)
	if table == nil {
		return fmt.Errorf("inserted table not found at index %d", loc.Start)
	}

	fills := make([]*docs.Request, 0, len(rows)*len(rows[0]))
	for ri := len(table.TableRows) - 1; ri >= 0; ri-- {
		if ri >= len(rows) {
			continue
		}
		row := table.TableRows[ri]
		for ci := len(row.TableCells) - 1; ci >= 0; ci-- {
			if ci >= len(rows[ri]) || rows[ri][ci] == "" {
				continue
			}
			fills = append(fills, &docs.Request{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: row.TableCells[ci].StartIndex + 1},
					Text:     rows[ri][ci],
				},
			})
		}
	}
	if len(fills) == 0 {
		return nil
	}
	return b.batchUpdate(ctx, fills)
}

func (b *Body) batchUpdate(ctx context.Context, requests []*docs.Request) error {
	_, err := b.docs.Documents.BatchUpdate(b.docID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("document update failed: %w", err)
	}
	return nil
}

// findInContent walks structural elements looking for the first text run
// containing token, returning its range in document indexes.
func findInContent(content []*docs.StructuralElement, token string) (service.Location, bool) {
	for _, el := range content {
		switch {
		case el.Paragraph != nil:
			for _, pe := range el.Paragraph.Elements {
				if pe.TextRun == nil {
					continue
				}
				i := strings.Index(pe.TextRun.Content, token)
				if i < 0 {
					continue
				}
				offset := int64(len(utf16.Encode([]rune(pe.TextRun.Content[:i]))))
				width := int64(len(utf16.Encode([]rune(token))))
				start := pe.StartIndex + offset
				return service.Location{Start: start, End: start + width}, true
			}
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for _, cell := range row.TableCells {
					if loc, ok := findInContent(cell.Content, token); ok {
						return loc, true
					}
				}
			}
		}
	}
	return service.Location{}, false
}

// tableAt returns the first table starting at or after the given index.
func tableAt(content []*docs.StructuralElement, index int64) *docs.Table {
	for _, el := range content {
		if el.Table != nil && el.StartIndex >= index {
			return el.Table
		}
	}
	return nil
}
