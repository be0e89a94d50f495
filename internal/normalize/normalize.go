// Package normalize folds the three transport entry kinds into the fixed
// 12-column row shape and computes per-row and aggregate transport totals.
package normalize

import (
	"strconv"
	"strings"

	"github.com/sawara-dev/ryohi/internal/dateutil"
	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/rates"
)

// Rows flattens a submission's transport details into normalized rows,
// processing public, then vehicle, then other entries, preserving input order
// within each kind. Row totals are left zero for TotalAll to fill in.
func Rows(s *model.Submission) []model.NormalizedRow {
	out := make([]model.NormalizedRow, 0,
		len(s.PublicTransportDetails)+len(s.CarUsageDetails)+len(s.OtherTransportDetails))

	for _, d := range s.PublicTransportDetails {
		out = append(out, model.NormalizedRow{
			Date:            dateutil.Normalize(d.Date),
			TransportMethod: d.TransportMethod,
			Departure:       d.Departure,
			Arrival:         d.Arrival,
			Fare:            toYen(d.OneWayFare),
		})
	}

	for _, d := range s.CarUsageDetails {
		row := model.NormalizedRow{
			Date:            dateutil.Normalize(d.Date),
			TransportMethod: d.TransportMethod,
			Departure:       d.Departure,
			Arrival:         d.Arrival,
			Tolls:           sumCosts(d.Tolls),
			Gasoline:        sumCosts(d.Gasoline),
			Parking:         sumCosts(d.Parking),
		}
		// Rental mode carries a fee, private mode a distance. Any other
		// mode falls through with both left blank.
		switch d.Mode() {
		case model.VehicleModeRental:
			row.RentalFee = toYen(d.RentalFee)
		case model.VehicleModePrivate:
			row.DistanceKm = toFloat(d.Distance)
		}
		out = append(out, row)
	}

	for _, d := range s.OtherTransportDetails {
		out = append(out, model.NormalizedRow{
			Date:            dateutil.Normalize(d.Date),
			TransportMethod: d.TransportMethod,
			Departure:       d.Departure,
			Arrival:         d.Arrival,
			OtherTotal:      toYen(d.TotalAmount),
		})
	}

	return out
}

// RowTotal computes one row's transport total: fare, rental fee, distance at
// the per-km mileage rate, tolls, fuel, parking, and the other-transport
// amount. The distance term is a fixed domain rate, not a unit conversion.
func RowTotal(row model.NormalizedRow, table rates.Table) int64 {
	return row.Fare +
		row.RentalFee +
		int64(row.DistanceKm*float64(table.MileagePerKm)) +
		row.Tolls +
		row.Gasoline +
		row.Parking +
		row.OtherTotal
}

// TotalAll writes each row's total into its total column and returns the
// aggregate transport total. Re-running it on computed rows is a no-op.
func TotalAll(rows []model.NormalizedRow, table rates.Table) int64 {
	var total int64
	for i := range rows {
		rows[i].RowTotal = RowTotal(rows[i], table)
		total += rows[i].RowTotal
	}
	return total
}

func sumCosts(costs []model.SubCost) int64 {
	var sum int64
	for _, c := range costs {
		sum += toYen(c.Amount)
	}
	return sum
}

// toYen coerces a form amount to integer yen, zero on anything non-numeric.
func toYen(s string) int64 {
	return int64(toFloat(s))
}

func toFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
