// Package render builds the document render model for a ledger: the
// placeholder substitution map and the three generated tables, plus the
// bounded substitution engine that applies them to a document body.
package render

import (
	"strconv"
	"strings"

	"github.com/sawara-dev/ryohi/internal/dateutil"
	"github.com/sawara-dev/ryohi/internal/model"
)

// Placeholder tokens the document template may contain, wrapped {{...}}.
const (
	TokenTransportTable = "{{transportTable}}"
	TokenPerDiemTable   = "{{dailyAllowanceDetailsTable}}"
	TokenLodgingTable   = "{{lodgingDetailsTable}}"
)

// naCell marks a cell with no applicable value for the reader.
const naCell = "／"

// Table is one generated table: a header row plus one data row per item.
type Table struct {
	Placeholder string
	Header      []string
	Rows        [][]string
}

// Cells returns the header and data rows as one slice, the shape document
// sinks insert.
func (t *Table) Cells() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	return append(out, t.Rows...)
}

// Model is the complete render model for one ledger. A nil table means its
// backing data was empty and the placeholder is to be deleted instead.
type Model struct {
	Substitutions map[string]string
	Transport     *Table
	PerDiem       *Table
	Lodging       *Table
}

var transportHeader = []string{
	"日付", "発地", "着地", "交通機関",
	"運賃（￥）", "レンタカー代（￥）", "距離（㎞）", "高速料金（￥）",
	"ガソリン代（￥）", "駐車場代（￥）", "その他交通手段による合計金額（￥）", "合計（￥）",
}

// Build derives the render model from a ledger. Every scalar field gets a
// substitution entry; date fields carry the weekday suffix; absent values
// substitute as empty strings, never a literal nil marker.
func Build(led *model.Ledger) Model {
	m := Model{
		Substitutions: map[string]string{
			"destination":           led.Destination,
			"purpose":               led.Purpose,
			"departureDate":         dateutil.WithWeekday(led.DepartureDate),
			"returnDate":            dateutil.WithWeekday(led.ReturnDate),
			"travelDays":            strconv.Itoa(led.TripDays),
			"lodgingDays":           strconv.Itoa(led.LodgingNights),
			"dailyAllowanceDetails": joinSelections(led.PerDiemSelected),
			"lodgingDetails":        joinSelections(led.LodgingSelected),
			"transportTotal":        strconv.FormatInt(led.TransportTotal, 10),
			"dailyAllowanceTotal":   strconv.FormatInt(led.PerDiemTotal, 10),
			"lodgingTotal":          strconv.FormatInt(led.LodgingTotal, 10),
			"grandTotal":            strconv.FormatInt(led.GrandTotal, 10),
		},
	}

	m.Transport = transportTable(led.Rows)
	m.PerDiem = categoryTable(TokenPerDiemTable, "日当区分", led.PerDiemAggregate)
	m.Lodging = categoryTable(TokenLodgingTable, "宿泊区分", led.LodgingAggregate)

	return m
}

// transportTable renders the normalized rows. A row whose date repeats the
// previous row's renders a blank date cell, grouping same-day legs for the
// reader. Nil when there are no rows.
func transportTable(rows []model.NormalizedRow) *Table {
	if len(rows) == 0 {
		return nil
	}

	t := &Table{
		Placeholder: TokenTransportTable,
		Header:      transportHeader,
		Rows:        make([][]string, 0, len(rows)),
	}

	prevDate := ""
	for _, r := range rows {
		date := dateutil.WithWeekday(r.Date)
		displayDate := ""
		if date != "" && date != prevDate {
			displayDate = date
			prevDate = date
		}

		t.Rows = append(t.Rows, []string{
			displayDate,
			textCell(r.Departure),
			textCell(r.Arrival),
			textCell(r.TransportMethod),
			yenCell(r.Fare),
			yenCell(r.RentalFee),
			distanceCell(r.DistanceKm),
			yenCell(r.Tolls),
			yenCell(r.Gasoline),
			yenCell(r.Parking),
			yenCell(r.OtherTotal),
			yenCell(r.RowTotal),
		})
	}
	return t
}

// categoryTable renders one aggregate block as category/unit-price rows.
// Nil when nothing was aggregated.
func categoryTable(token, label string, aggs []model.CategoryAggregate) *Table {
	if len(aggs) == 0 {
		return nil
	}

	t := &Table{
		Placeholder: token,
		Header:      []string{label, "単価（￥）"},
		Rows:        make([][]string, 0, len(aggs)),
	}
	for _, a := range aggs {
		category := a.Category
		if category == "" {
			category = naCell
		}
		t.Rows = append(t.Rows, []string{category, yenCell(a.UnitPrice)})
	}
	return t
}

func joinSelections(selections []model.CategorySelection) string {
	labels := make([]string, len(selections))
	for i, s := range selections {
		labels[i] = s.Category
	}
	return strings.Join(labels, "、")
}

func textCell(s string) string {
	if strings.TrimSpace(s) == "" {
		return naCell
	}
	return s
}

// yenCell formats a currency amount with thousands grouping. Zero means "no
// charge" here and renders as the slash placeholder, not "0".
func yenCell(v int64) string {
	if v == 0 {
		return naCell
	}
	return groupDigits(v)
}

func distanceCell(km float64) string {
	if km == 0 {
		return naCell
	}
	if km == float64(int64(km)) {
		return groupDigits(int64(km))
	}
	s := strconv.FormatFloat(km, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i > 0 {
		whole, _ := strconv.ParseInt(s[:i], 10, 64)
		return groupDigits(whole) + s[i:]
	}
	return s
}

// groupDigits renders an integer with ja-JP style comma grouping.
func groupDigits(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
