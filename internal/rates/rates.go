// Package rates holds the allowance rate tables and the mileage rate. One
// Table instance is shared by the aggregator and the document renderer so the
// two can never drift apart.
package rates

// Per-diem category labels as presented by the form.
const (
	WeekdayDayTripNear = "平日 日帰り 近地"
	WeekdayDayTripFar  = "平日 日帰り 遠地"
	HolidayDayTripNear = "休日 日帰り 近地"
	HolidayDayTripFar  = "休日 日帰り 遠地"
	WeekdayOvernight   = "平日 宿泊 (戻りが22:00までの場合)"
	HolidayOvernight   = "休日 宿泊 (戻りが22:00までの場合)"
	WeekdayLateNight   = "平日 深夜 (22:00~以降になる場合)"
	HolidayLateNight   = "休日 深夜 (22:00~以降になる場合)"
	LodgingWeekday     = "平日"
	LodgingHoliday     = "休日"
)

// Table maps category labels to unit prices in yen, and carries the per-km
// rate applied to private-car distance. Treat as immutable after creation.
type Table struct {
	PerDiem      map[string]int64
	Lodging      map[string]int64
	MileagePerKm int64
}

// Default returns the built-in rate table.
func Default() Table {
	return Table{
		PerDiem: map[string]int64{
			WeekdayDayTripNear: 2500,
			WeekdayDayTripFar:  3500,
			HolidayDayTripNear: 3750,
			HolidayDayTripFar:  5250,
			WeekdayOvernight:   4000,
			HolidayOvernight:   6000,
			WeekdayLateNight:   8000,
			HolidayLateNight:   12000,
		},
		Lodging: map[string]int64{
			LodgingWeekday: 8000,
			LodgingHoliday: 12000,
		},
		MileagePerKm: 1000,
	}
}

// WithOverrides returns a copy of the table with the given label prices laid
// over the defaults. A mileage of zero keeps the existing per-km rate.
func (t Table) WithOverrides(perDiem, lodging map[string]int64, mileagePerKm int64) Table {
	out := Table{
		PerDiem:      make(map[string]int64, len(t.PerDiem)),
		Lodging:      make(map[string]int64, len(t.Lodging)),
		MileagePerKm: t.MileagePerKm,
	}
	for k, v := range t.PerDiem {
		out.PerDiem[k] = v
	}
	for k, v := range t.Lodging {
		out.Lodging[k] = v
	}
	for k, v := range perDiem {
		out.PerDiem[k] = v
	}
	for k, v := range lodging {
		out.Lodging[k] = v
	}
	if mileagePerKm > 0 {
		out.MileagePerKm = mileagePerKm
	}
	return out
}

// PerDiemAmount looks up a per-diem unit price. Unknown or empty labels are
// worth zero; unrecognized categories must never block a submission.
func (t Table) PerDiemAmount(category string) int64 {
	return t.PerDiem[category]
}

// LodgingAmount looks up a lodging unit price, zero for unknown labels.
func (t Table) LodgingAmount(category string) int64 {
	return t.Lodging[category]
}
