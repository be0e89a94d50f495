package model

// NormalizedRow is the fixed 12-column representation unifying the three
// transport entry kinds. Numeric columns use zero for "absent": the original
// form never produces a meaningful zero fare or zero distance, so zero and
// blank are written identically to the ledger and rendered as ／ in documents.
type NormalizedRow struct {
	Date            string
	TransportMethod string
	Departure       string
	Arrival         string
	Fare            int64
	RentalFee       int64
	DistanceKm      float64
	Tolls           int64
	Gasoline        int64
	Parking         int64
	OtherTotal      int64
	RowTotal        int64
}

// CategorySelection is one per-diem or lodging category pick, positioned by
// its 0-based day index.
type CategorySelection struct {
	DayIndex int
	Category string
}

// CategoryAggregate is the grouped result for one category label: how many
// days/nights used it, the unit price from the rate table, and the subtotal.
// Always recomputed from the selections, never persisted.
type CategoryAggregate struct {
	Category  string
	UnitPrice int64
	Count     int
	Subtotal  int64
}
