package render

import (
	"context"
	"strings"

	"github.com/sawara-dev/ryohi/internal/service"
)

// TextBody is an in-memory DocumentBody over a plain-text template. It backs
// local rendering without a Google Docs target and the engine's tests.
// Inserted tables become tab-separated lines.
type TextBody struct {
	text []rune
}

// NewTextBody wraps a template string.
func NewTextBody(template string) *TextBody {
	return &TextBody{text: []rune(template)}
}

// String returns the current document text.
func (b *TextBody) String() string {
	return string(b.text)
}

// FindPlaceholder implements service.DocumentBody.
func (b *TextBody) FindPlaceholder(_ context.Context, token string) (service.Location, bool, error) {
	i := strings.Index(string(b.text), token)
	if i < 0 {
		return service.Location{}, false, nil
	}
	start := int64(len([]rune(string(b.text)[:i])))
	return service.Location{
		Start: start,
		End:   start + int64(len([]rune(token))),
	}, true, nil
}

// ReplaceRange implements service.DocumentBody.
func (b *TextBody) ReplaceRange(_ context.Context, loc service.Location, replacement string) error {
	b.splice(loc, []rune(replacement))
	return nil
}

// DeleteRange implements service.DocumentBody.
func (b *TextBody) DeleteRange(_ context.Context, loc service.Location) error {
	b.splice(loc, nil)
	return nil
}

// InsertTable implements service.DocumentBody.
func (b *TextBody) InsertTable(_ context.Context, loc service.Location, rows [][]string) error {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	b.splice(loc, []rune(strings.Join(lines, "\n")))
	return nil
}

func (b *TextBody) splice(loc service.Location, insert []rune) {
	start, end := int(loc.Start), int(loc.End)
	if start < 0 || end > len(b.text) || start > end {
		return
	}
	out := make([]rune, 0, len(b.text)-(end-start)+len(insert))
	out = append(out, b.text[:start]...)
	out = append(out, insert...)
	out = append(out, b.text[end:]...)
	b.text = out
}
