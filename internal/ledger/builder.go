package ledger

import "github.com/sawara-dev/ryohi/internal/model"

// TransportHeaders are the 12 transport table column labels in sheet order.
var TransportHeaders = []string{
	"日付",
	"交通手段",
	"発地",
	"着地",
	"運賃",
	"レンタカー代（レンタカー利用）",
	"距離（自家用車利用）",
	"高速料金（自家用車・レンタカー利用）",
	"ガソリン（自家用車・レンタカー利用）",
	"駐車場代（自家用車・レンタカー利用）",
	"合計金額（その他交通手段利用時）",
	"合計",
}

// Input is the computed material the builder positions onto the sheet. Row
// totals must already be filled in.
type Input struct {
	Destination   string
	Purpose       string
	DepartureDate string
	ReturnDate    string
	TripDays      int
	LodgingNights int

	Rows           []model.NormalizedRow
	TransportTotal int64

	PerDiemSelected  []model.CategorySelection
	PerDiemAggregate []model.CategoryAggregate
	PerDiemTotal     int64

	LodgingSelected  []model.CategorySelection
	LodgingAggregate []model.CategoryAggregate
	LodgingTotal     int64
}

// Build assembles the ledger and its positioned cell blocks. Blocks come out
// in write order: header, day span, transport table, allowance rows, totals
// column, grand total.
func Build(in Input) (*model.Ledger, []model.CellBlock) {
	led := &model.Ledger{
		Destination:      in.Destination,
		Purpose:          in.Purpose,
		DepartureDate:    in.DepartureDate,
		ReturnDate:       in.ReturnDate,
		TripDays:         in.TripDays,
		LodgingNights:    in.LodgingNights,
		Rows:             in.Rows,
		PerDiemSelected:  in.PerDiemSelected,
		LodgingSelected:  in.LodgingSelected,
		PerDiemAggregate: in.PerDiemAggregate,
		LodgingAggregate: in.LodgingAggregate,
		TransportTotal:   in.TransportTotal,
		PerDiemTotal:     in.PerDiemTotal,
		LodgingTotal:     in.LodgingTotal,
		GrandTotal:       in.TransportTotal + in.PerDiemTotal + in.LodgingTotal,
	}

	layout := NewLayout(len(in.Rows), in.TripDays)
	blocks := make([]model.CellBlock, 0, 10)

	blocks = append(blocks, model.CellBlock{
		Row: DestinationRow, Col: 1,
		Values: [][]any{
			{"出張先", led.Destination},
			{"出張目的", led.Purpose},
		},
	})

	blocks = append(blocks, model.CellBlock{
		Row: DaysBlockRow, Col: 1,
		Values: [][]any{
			{"出張日（自）", led.DepartureDate, led.LodgingNights, "泊"},
			{"帰着日（至）", led.ReturnDate, led.TripDays, "日"},
		},
	})

	header := make([]any, len(TransportHeaders))
	for i, h := range TransportHeaders {
		header[i] = h
	}
	blocks = append(blocks, model.CellBlock{
		Row: TransportHeaderRow, Col: 1,
		Values: [][]any{header},
	})

	if len(in.Rows) > 0 {
		data := make([][]any, 0, len(in.Rows))
		for _, r := range in.Rows {
			data = append(data, rowCells(r))
		}
		blocks = append(blocks, model.CellBlock{Row: layout.DataStartRow, Col: 1, Values: data})
	}

	blocks = append(blocks, model.CellBlock{
		Row: layout.PerDiemRow, Col: 1,
		Values: [][]any{{"日当"}},
	})
	if len(in.PerDiemSelected) > 0 {
		blocks = append(blocks, model.CellBlock{
			Row: layout.PerDiemRow, Col: 2,
			Values: [][]any{selectionCells(in.PerDiemSelected)},
		})
	}

	blocks = append(blocks, model.CellBlock{
		Row: layout.LodgingRow, Col: 1,
		Values: [][]any{{"宿泊"}},
	})
	if len(in.LodgingSelected) > 0 {
		blocks = append(blocks, model.CellBlock{
			Row: layout.LodgingRow, Col: 2,
			Values: [][]any{selectionCells(in.LodgingSelected)},
		})
	}

	// The totals column is only written when a block actually aggregated
	// something; an all-unselected block stays blank.
	if len(in.PerDiemAggregate) > 0 {
		blocks = append(blocks,
			model.CellBlock{Row: layout.TotalsHeaderRow, Col: layout.TotalsCol, Values: [][]any{{"合計"}}},
			model.CellBlock{Row: layout.PerDiemRow, Col: layout.TotalsCol, Values: [][]any{{led.PerDiemTotal}}},
		)
	}
	if len(in.LodgingAggregate) > 0 {
		blocks = append(blocks, model.CellBlock{
			Row: layout.LodgingRow, Col: layout.TotalsCol,
			Values: [][]any{{led.LodgingTotal}},
		})
	}

	blocks = append(blocks, model.CellBlock{
		Row: layout.GrandTotalRow, Col: 1,
		Values: [][]any{{"合計", led.GrandTotal}},
	})

	return led, blocks
}

// rowCells emits the 12-column sheet representation of one normalized row.
// Zero numeric columns write as blank cells, matching the form's convention
// that an unused column is empty rather than 0.
func rowCells(r model.NormalizedRow) []any {
	return []any{
		r.Date,
		r.TransportMethod,
		r.Departure,
		r.Arrival,
		yenCell(r.Fare),
		yenCell(r.RentalFee),
		distanceCell(r.DistanceKm),
		yenCell(r.Tolls),
		yenCell(r.Gasoline),
		yenCell(r.Parking),
		yenCell(r.OtherTotal),
		yenCell(r.RowTotal),
	}
}

func selectionCells(selections []model.CategorySelection) []any {
	cells := make([]any, len(selections))
	for i, s := range selections {
		cells[i] = s.Category
	}
	return cells
}

func yenCell(v int64) any {
	if v == 0 {
		return ""
	}
	return v
}

func distanceCell(km float64) any {
	if km == 0 {
		return ""
	}
	return km
}
