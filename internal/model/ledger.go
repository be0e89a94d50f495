package model

// CellBlock is one rectangular region of cells positioned on the sheet.
// Row and Col are 1-based, matching the spreadsheet APIs the sinks target.
type CellBlock struct {
	Row    int
	Col    int
	Values [][]any
}

// Ledger is the assembled sheet-equivalent for one submission: header
// metadata, the normalized transport rows, the category aggregates, and all
// computed totals. Totals are integer yen; GrandTotal is always exactly
// TransportTotal + PerDiemTotal + LodgingTotal.
type Ledger struct {
	Destination   string
	Purpose       string
	DepartureDate string
	ReturnDate    string
	TripDays      int
	LodgingNights int

	Rows             []NormalizedRow
	PerDiemSelected  []CategorySelection
	LodgingSelected  []CategorySelection
	PerDiemAggregate []CategoryAggregate
	LodgingAggregate []CategoryAggregate

	TransportTotal int64
	PerDiemTotal   int64
	LodgingTotal   int64
	GrandTotal     int64
}
