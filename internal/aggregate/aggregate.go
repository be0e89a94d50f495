// Package aggregate groups per-diem and lodging category selections and
// prices them against a rate table.
package aggregate

import "github.com/sawara-dev/ryohi/internal/model"

// Categories groups the non-empty selections by label in first-seen order,
// counts occurrences, prices each group from the table (zero for labels the
// table does not know), and returns the aggregates with their combined total.
// No selections means an empty slice and a zero total.
func Categories(selections []model.CategorySelection, table map[string]int64) ([]model.CategoryAggregate, int64) {
	index := make(map[string]int)
	aggs := make([]model.CategoryAggregate, 0, len(selections))

	for _, sel := range selections {
		if sel.Category == "" {
			continue
		}
		i, seen := index[sel.Category]
		if !seen {
			i = len(aggs)
			index[sel.Category] = i
			aggs = append(aggs, model.CategoryAggregate{
				Category:  sel.Category,
				UnitPrice: table[sel.Category],
			})
		}
		aggs[i].Count++
	}

	var total int64
	for i := range aggs {
		aggs[i].Subtotal = aggs[i].UnitPrice * int64(aggs[i].Count)
		total += aggs[i].Subtotal
	}
	return aggs, total
}

// PerDiemSelections extracts the per-diem picks from a submission, one per
// trip day. Days beyond the submitted list count as unselected.
func PerDiemSelections(s *model.Submission, tripDays int) []model.CategorySelection {
	out := make([]model.CategorySelection, 0, tripDays)
	for i := 0; i < tripDays; i++ {
		sel := model.CategorySelection{DayIndex: i}
		if i < len(s.DailyAllowanceDetails) {
			sel.Category = s.DailyAllowanceDetails[i].DailyAllowanceCategory
		}
		out = append(out, sel)
	}
	return out
}

// LodgingSelections extracts the lodging picks, one per night.
func LodgingSelections(s *model.Submission, nights int) []model.CategorySelection {
	out := make([]model.CategorySelection, 0, nights)
	for i := 0; i < nights; i++ {
		sel := model.CategorySelection{DayIndex: i}
		if i < len(s.LodgingDetails) {
			sel.Category = s.LodgingDetails[i].LodgingCategory
		}
		out = append(out, sel)
	}
	return out
}
