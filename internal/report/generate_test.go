package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/rates"
)

// hospitalTrip is a complete overnight submission: one train leg out, one
// back, per-diem picks for both days, and one weekday night of lodging.
func hospitalTrip() *model.Submission {
	return &model.Submission{
		Destination:   "東京都立病院",
		Purpose:       "定期メンテナンス",
		DepartureDate: "2025-10-01",
		ReturnDate:    "2025-10-02",
		PublicTransportDetails: []model.PublicTransport{
			{Date: "2025-10-01", TransportMethod: "電車", Departure: "東京", Arrival: "病院前", OneWayFare: "180"},
			{Date: "2025-10-02", TransportMethod: "電車", Departure: "病院前", Arrival: "東京", OneWayFare: "180"},
		},
		DailyAllowanceDetails: []model.DailyAllowanceSelection{
			{DailyAllowanceCategory: rates.WeekdayDayTripNear},
			{DailyAllowanceCategory: rates.WeekdayDayTripNear},
		},
		LodgingDetails: []model.LodgingSelection{
			{LodgingCategory: rates.LodgingWeekday},
		},
	}
}

func TestGenerateHospitalTrip(t *testing.T) {
	res := Generate(hospitalTrip(), rates.Default())
	led := res.Ledger

	assert.Equal(t, "2025/10/01", led.DepartureDate)
	assert.Equal(t, "2025/10/02", led.ReturnDate)
	assert.Equal(t, 2, led.TripDays)
	assert.Equal(t, 1, led.LodgingNights)

	require.Len(t, led.Rows, 2)
	assert.Equal(t, int64(180), led.Rows[0].RowTotal)
	assert.Equal(t, int64(360), led.TransportTotal)
	assert.Equal(t, int64(5000), led.PerDiemTotal)
	assert.Equal(t, int64(8000), led.LodgingTotal)
	assert.Equal(t, int64(13360), led.GrandTotal)

	assert.Equal(t, "2025/10/01_東京都立病院", res.SheetName)
	assert.NotEmpty(t, res.Blocks)
	assert.Equal(t, "13360", res.Render.Substitutions["grandTotal"])
}

func TestGenerateIsDeterministic(t *testing.T) {
	table := rates.Default()
	a := Generate(hospitalTrip(), table)
	b := Generate(hospitalTrip(), table)

	assert.Equal(t, a.Ledger, b.Ledger)
	assert.Equal(t, a.Blocks, b.Blocks)
	assert.Equal(t, a.Render.Substitutions, b.Render.Substitutions)
}

func TestGenerateEmptySubmission(t *testing.T) {
	res := Generate(&model.Submission{}, rates.Default())

	assert.Equal(t, 0, res.Ledger.TripDays)
	assert.Equal(t, int64(0), res.Ledger.GrandTotal)
	assert.Empty(t, res.Ledger.Rows)
	assert.Nil(t, res.Render.Transport)
	assert.Nil(t, res.Render.PerDiem)
	assert.Nil(t, res.Render.Lodging)
	// No departure date and no destination falls back to the generic name.
	assert.Equal(t, "出張", res.SheetName)
}

func TestGenerateSheetNameFallbacks(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		departure   string
		want        string
	}{
		{
			name:        "date and destination",
			destination: "大阪支社",
			departure:   "2025-11-15",
			want:        "2025/11/15_大阪支社",
		},
		{
			name:        "missing date",
			destination: "大阪支社",
			want:        "大阪支社",
		},
		{
			name:      "missing destination",
			departure: "2025-11-15",
			want:      "2025/11/15_出張",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(&model.Submission{
				Destination:   tt.destination,
				DepartureDate: tt.departure,
			}, rates.Default())
			assert.Equal(t, tt.want, res.SheetName)
		})
	}
}

func TestGenerateRespectsRateOverrides(t *testing.T) {
	table := rates.Default().WithOverrides(
		map[string]int64{rates.WeekdayDayTripNear: 3000},
		map[string]int64{rates.LodgingWeekday: 9000},
		0,
	)

	res := Generate(hospitalTrip(), table)
	assert.Equal(t, int64(6000), res.Ledger.PerDiemTotal)
	assert.Equal(t, int64(9000), res.Ledger.LodgingTotal)
	assert.Equal(t, int64(15360), res.Ledger.GrandTotal)
}
