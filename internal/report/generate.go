// Package report wires the expense pipeline together: normalize a
// submission, aggregate its allowances, lay out the ledger, and build the
// document render model, then hand the results to the configured sinks.
package report

import (
	"github.com/sawara-dev/ryohi/internal/aggregate"
	"github.com/sawara-dev/ryohi/internal/dateutil"
	"github.com/sawara-dev/ryohi/internal/ledger"
	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/normalize"
	"github.com/sawara-dev/ryohi/internal/rates"
	"github.com/sawara-dev/ryohi/internal/render"
)

// Result is everything the pure pipeline computes for one submission.
type Result struct {
	Ledger *model.Ledger
	Blocks []model.CellBlock
	Render render.Model

	SheetName string
}

// Generate runs the pure transformation pipeline. It performs no I/O and is
// deterministic: re-running it on the same submission yields identical
// totals, blocks, and render model.
func Generate(sub *model.Submission, table rates.Table) *Result {
	departure := dateutil.Normalize(sub.DepartureDate)
	ret := dateutil.Normalize(sub.ReturnDate)
	tripDays := dateutil.TripDays(departure, ret)
	nights := dateutil.LodgingNights(departure, ret)

	rows := normalize.Rows(sub)
	transportTotal := normalize.TotalAll(rows, table)

	perDiemSel := aggregate.PerDiemSelections(sub, tripDays)
	perDiemAggs, perDiemTotal := aggregate.Categories(perDiemSel, table.PerDiem)

	lodgingSel := aggregate.LodgingSelections(sub, nights)
	lodgingAggs, lodgingTotal := aggregate.Categories(lodgingSel, table.Lodging)

	led, blocks := ledger.Build(ledger.Input{
		Destination:      sub.Destination,
		Purpose:          sub.Purpose,
		DepartureDate:    departure,
		ReturnDate:       ret,
		TripDays:         tripDays,
		LodgingNights:    nights,
		Rows:             rows,
		TransportTotal:   transportTotal,
		PerDiemSelected:  perDiemSel,
		PerDiemAggregate: perDiemAggs,
		PerDiemTotal:     perDiemTotal,
		LodgingSelected:  lodgingSel,
		LodgingAggregate: lodgingAggs,
		LodgingTotal:     lodgingTotal,
	})

	return &Result{
		Ledger:    led,
		Blocks:    blocks,
		Render:    render.Build(led),
		SheetName: sheetName(departure, sub.Destination),
	}
}

// sheetName derives the per-submission sheet name from the departure date
// and destination. Either part may be missing; the destination falls back to
// a generic label.
func sheetName(departure, destination string) string {
	if destination == "" {
		destination = "出張"
	}
	if departure == "" {
		return destination
	}
	return departure + "_" + destination
}
