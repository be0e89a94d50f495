package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/rates"
)

func TestCategories(t *testing.T) {
	table := rates.Default().PerDiem

	tests := []struct {
		name       string
		selections []model.CategorySelection
		wantAggs   []model.CategoryAggregate
		wantTotal  int64
	}{
		{
			name: "repeated category counts up",
			selections: []model.CategorySelection{
				{DayIndex: 0, Category: rates.WeekdayDayTripNear},
				{DayIndex: 1, Category: rates.WeekdayDayTripNear},
				{DayIndex: 2},
			},
			wantAggs: []model.CategoryAggregate{
				{Category: rates.WeekdayDayTripNear, UnitPrice: 2500, Count: 2, Subtotal: 5000},
			},
			wantTotal: 5000,
		},
		{
			name: "mixed categories keep first seen order",
			selections: []model.CategorySelection{
				{DayIndex: 0, Category: rates.WeekdayOvernight},
				{DayIndex: 1, Category: rates.HolidayOvernight},
				{DayIndex: 2, Category: rates.WeekdayOvernight},
			},
			wantAggs: []model.CategoryAggregate{
				{Category: rates.WeekdayOvernight, UnitPrice: 4000, Count: 2, Subtotal: 8000},
				{Category: rates.HolidayOvernight, UnitPrice: 6000, Count: 1, Subtotal: 6000},
			},
			wantTotal: 14000,
		},
		{
			name: "unknown category prices at zero",
			selections: []model.CategorySelection{
				{DayIndex: 0, Category: "謎の区分"},
			},
			wantAggs: []model.CategoryAggregate{
				{Category: "謎の区分", UnitPrice: 0, Count: 1, Subtotal: 0},
			},
			wantTotal: 0,
		},
		{
			name:       "no selections",
			selections: nil,
			wantAggs:   []model.CategoryAggregate{},
			wantTotal:  0,
		},
		{
			name: "all unselected",
			selections: []model.CategorySelection{
				{DayIndex: 0}, {DayIndex: 1},
			},
			wantAggs:  []model.CategoryAggregate{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggs, total := Categories(tt.selections, table)
			assert.Equal(t, tt.wantAggs, aggs)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestPerDiemSelections(t *testing.T) {
	sub := &model.Submission{
		DailyAllowanceDetails: []model.DailyAllowanceSelection{
			{DailyAllowanceCategory: "平日 日帰り 近地"},
			{DailyAllowanceCategory: ""},
		},
	}

	sels := PerDiemSelections(sub, 4)
	require.Len(t, sels, 4)
	assert.Equal(t, "平日 日帰り 近地", sels[0].Category)
	assert.Equal(t, "", sels[1].Category)
	// Days beyond the submitted list count as unselected.
	assert.Equal(t, "", sels[2].Category)
	assert.Equal(t, "", sels[3].Category)
	for i, sel := range sels {
		assert.Equal(t, i, sel.DayIndex)
	}
}

func TestPerDiemSelectionsZeroDays(t *testing.T) {
	sub := &model.Submission{
		DailyAllowanceDetails: []model.DailyAllowanceSelection{
			{DailyAllowanceCategory: "平日 日帰り 近地"},
		},
	}
	// With no computable day span nothing is selected, even when the form
	// carried picks.
	assert.Empty(t, PerDiemSelections(sub, 0))
}

func TestLodgingSelections(t *testing.T) {
	sub := &model.Submission{
		LodgingDetails: []model.LodgingSelection{
			{LodgingCategory: "平日"},
			{LodgingCategory: "休日"},
		},
	}

	sels := LodgingSelections(sub, 2)
	require.Len(t, sels, 2)
	assert.Equal(t, "平日", sels[0].Category)
	assert.Equal(t, "休日", sels[1].Category)
}
