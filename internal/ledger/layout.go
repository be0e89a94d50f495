// Package ledger assembles a submission's computed data into the positional
// sheet layout: fixed header regions on top, the transport table in the
// middle, and the allowance blocks and grand total below it. Every offset
// below the transport table is derived from the row count and trip length.
package ledger

// Fixed top-region positions (1-based sheet coordinates).
const (
	DestinationRow     = 1
	DaysBlockRow       = 4
	TransportHeaderRow = 7
	TransportColumns   = 12
	RowTotalCol        = 12

	// fallbackTotalsCol receives the allowance totals when the trip has no
	// computable day span.
	fallbackTotalsCol = 12

	// perDiemGap separates the last transport data row from the per-diem
	// row: one blank row plus the totals-header row sitting directly above.
	perDiemGap = 3
)

// Layout holds the derived row and column positions for one ledger. It is
// computed once from the transport row count and the trip-day count; nothing
// downstream may hardcode a position it can derive from here.
type Layout struct {
	RowCount        int
	TripDays        int
	DataStartRow    int
	PerDiemRow      int
	TotalsHeaderRow int
	LodgingRow      int
	GrandTotalRow   int
	TotalsCol       int
}

// NewLayout derives the variable positions from the transport row count and
// the trip-day count.
func NewLayout(rowCount, tripDays int) Layout {
	l := Layout{
		RowCount:     rowCount,
		TripDays:     tripDays,
		DataStartRow: TransportHeaderRow + 1,
		PerDiemRow:   TransportHeaderRow + rowCount + perDiemGap,
	}
	l.TotalsHeaderRow = l.PerDiemRow - 1
	l.LodgingRow = l.PerDiemRow + 1
	l.GrandTotalRow = l.LodgingRow + 2

	// The totals column sits one past the last selection column; with no
	// day span there are no selection columns and it falls back to L.
	if tripDays > 0 {
		l.TotalsCol = tripDays + 2
	} else {
		l.TotalsCol = fallbackTotalsCol
	}
	return l
}
