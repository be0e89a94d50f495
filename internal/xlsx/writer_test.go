package xlsx

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sawara-dev/ryohi/internal/model"
)

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	ctx := context.Background()

	w, err := NewWriter(path, slog.Default())
	require.NoError(t, err)

	handle, err := w.CreateOrReplaceSheet(ctx, "2025/10/01_東京都立病院")
	require.NoError(t, err)
	// The workbook format forbids slashes in sheet names.
	assert.Equal(t, "2025-10-01_東京都立病院", handle.Name)

	blocks := []model.CellBlock{
		{Row: 1, Col: 1, Values: [][]any{{"出張先", "東京都立病院"}}},
		{Row: 8, Col: 1, Values: [][]any{
			{"2025/10/01", "電車", "東京", "病院前", int64(180), "", "", "", "", "", "", int64(180)},
		}},
	}
	require.NoError(t, w.WriteCells(ctx, handle, blocks))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue(handle.Name, "B1")
	require.NoError(t, err)
	assert.Equal(t, "東京都立病院", got)

	got, err = f.GetCellValue(handle.Name, "E8")
	require.NoError(t, err)
	assert.Equal(t, "180", got)

	// Blank cells stay blank instead of holding empty strings.
	got, err = f.GetCellValue(handle.Name, "F8")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestWriterReplacesExistingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	ctx := context.Background()

	w, err := NewWriter(path, slog.Default())
	require.NoError(t, err)

	handle, err := w.CreateOrReplaceSheet(ctx, "出張")
	require.NoError(t, err)
	require.NoError(t, w.WriteCells(ctx, handle, []model.CellBlock{
		{Row: 1, Col: 1, Values: [][]any{{"stale"}}},
	}))
	require.NoError(t, w.Close())

	// Reopen and replace the same sheet; old content must be gone.
	w, err = NewWriter(path, slog.Default())
	require.NoError(t, err)
	handle, err = w.CreateOrReplaceSheet(ctx, "出張")
	require.NoError(t, err)
	require.NoError(t, w.WriteCells(ctx, handle, []model.CellBlock{
		{Row: 2, Col: 1, Values: [][]any{{"fresh"}}},
	}))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	a1, err := f.GetCellValue("出張", "A1")
	require.NoError(t, err)
	assert.Equal(t, "", a1)

	a2, err := f.GetCellValue("出張", "A2")
	require.NoError(t, err)
	assert.Equal(t, "fresh", a2)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "slashes replaced",
			input: "2025/10/01_東京都立病院",
			want:  "2025-10-01_東京都立病院",
		},
		{
			name:  "all forbidden characters replaced",
			input: `a:b\c/d?e*f[g]h`,
			want:  "a-b-c-d-e-f-g-h",
		},
		{
			name:  "clean name unchanged",
			input: "出張",
			want:  "出張",
		},
		{
			name:  "long name truncated to 31 runes",
			input: "2025/10/01_1234567890123456789012345678901234567890",
			want:  "2025-10-01_12345678901234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeSheetName(tt.input))
		})
	}
}

func TestNewWriterRequiresPath(t *testing.T) {
	_, err := NewWriter("", slog.Default())
	assert.Error(t, err)
}
