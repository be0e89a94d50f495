package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name     string
		rowCount int
		tripDays int
		want     Layout
	}{
		{
			name:     "no rows no days",
			rowCount: 0,
			tripDays: 0,
			want: Layout{
				RowCount:        0,
				TripDays:        0,
				DataStartRow:    8,
				PerDiemRow:      10,
				TotalsHeaderRow: 9,
				LodgingRow:      11,
				GrandTotalRow:   13,
				TotalsCol:       12,
			},
		},
		{
			name:     "single row day trip",
			rowCount: 1,
			tripDays: 1,
			want: Layout{
				RowCount:        1,
				TripDays:        1,
				DataStartRow:    8,
				PerDiemRow:      11,
				TotalsHeaderRow: 10,
				LodgingRow:      12,
				GrandTotalRow:   14,
				TotalsCol:       3,
			},
		},
		{
			name:     "five rows over ten days",
			rowCount: 5,
			tripDays: 10,
			want: Layout{
				RowCount:        5,
				TripDays:        10,
				DataStartRow:    8,
				PerDiemRow:      15,
				TotalsHeaderRow: 14,
				LodgingRow:      16,
				GrandTotalRow:   18,
				TotalsCol:       12,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLayout(tt.rowCount, tt.tripDays))
		})
	}
}

func TestLayoutRowsNeverOverlapTransportData(t *testing.T) {
	for rows := 0; rows <= 40; rows++ {
		l := NewLayout(rows, 3)
		lastDataRow := l.DataStartRow + rows - 1
		assert.Greater(t, l.TotalsHeaderRow, lastDataRow, "rows=%d", rows)
		assert.Greater(t, l.PerDiemRow, l.TotalsHeaderRow, "rows=%d", rows)
		assert.Greater(t, l.LodgingRow, l.PerDiemRow, "rows=%d", rows)
		assert.Greater(t, l.GrandTotalRow, l.LodgingRow, "rows=%d", rows)
	}
}
