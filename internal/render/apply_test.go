package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawara-dev/ryohi/internal/model"
)

func TestApplyReplacesScalars(t *testing.T) {
	body := NewTextBody("出張先: {{destination}}\n合計: ￥{{grandTotal}}\n({{destination}})")
	m := Model{
		Substitutions: map[string]string{
			"destination": "東京都立病院",
			"grandTotal":  "38240",
		},
	}

	report, err := Apply(context.Background(), body, m, Options{})
	require.NoError(t, err)

	assert.Equal(t, "出張先: 東京都立病院\n合計: ￥38240\n(東京都立病院)", body.String())
	assert.False(t, report.CapHit())

	results := resultsByToken(report)
	assert.Equal(t, OutcomeReplaced, results["{{destination}}"].Outcome)
	assert.Equal(t, 2, results["{{destination}}"].Replacements)
	assert.Equal(t, OutcomeReplaced, results["{{grandTotal}}"].Outcome)
}

func TestApplyAbsentToken(t *testing.T) {
	body := NewTextBody("no placeholders here")
	m := Model{Substitutions: map[string]string{"destination": "大阪"}}

	report, err := Apply(context.Background(), body, m, Options{})
	require.NoError(t, err)

	assert.Equal(t, "no placeholders here", body.String())
	results := resultsByToken(report)
	assert.Equal(t, OutcomeAbsent, results["{{destination}}"].Outcome)
	assert.Equal(t, 0, results["{{destination}}"].Replacements)
}

func TestApplyInsertsTable(t *testing.T) {
	body := NewTextBody("明細:\n{{transportTable}}\n以上")
	m := Model{
		Substitutions: map[string]string{},
		Transport: &Table{
			Placeholder: TokenTransportTable,
			Header:      []string{"日付", "合計（￥）"},
			Rows:        [][]string{{"2025/10/01(水)", "360"}},
		},
	}

	report, err := Apply(context.Background(), body, m, Options{})
	require.NoError(t, err)

	assert.Equal(t, "明細:\n日付\t合計（￥）\n2025/10/01(水)\t360\n以上", body.String())
	results := resultsByToken(report)
	assert.Equal(t, OutcomeTableInserted, results[TokenTransportTable].Outcome)
}

func TestApplyDeletesPlaceholderForEmptyTable(t *testing.T) {
	body := NewTextBody("宿泊明細: {{lodgingDetailsTable}}")
	m := Model{Substitutions: map[string]string{}}

	report, err := Apply(context.Background(), body, m, Options{})
	require.NoError(t, err)

	assert.Equal(t, "宿泊明細: ", body.String())
	results := resultsByToken(report)
	assert.Equal(t, OutcomeDeleted, results[TokenLodgingTable].Outcome)
	assert.Equal(t, OutcomeAbsent, results[TokenTransportTable].Outcome)
}

func TestApplyIterationCap(t *testing.T) {
	// 50 occurrences against a cap of 10 must stop and report the cap.
	body := NewTextBody(strings.Repeat("{{x}} ", 50))
	m := Model{Substitutions: map[string]string{"x": "y"}}

	report, err := Apply(context.Background(), body, m, Options{MaxIterations: 10})
	require.NoError(t, err)

	assert.True(t, report.CapHit())
	results := resultsByToken(report)
	assert.Equal(t, OutcomeCapHit, results["{{x}}"].Outcome)
	assert.Equal(t, 10, results["{{x}}"].Replacements)
	assert.Equal(t, 40, strings.Count(body.String(), "{{x}}"))
}

func TestApplyCapExactlyConsumed(t *testing.T) {
	// Exactly as many occurrences as the cap is a full replacement, not a
	// cap hit.
	body := NewTextBody(strings.Repeat("{{x}} ", 10))
	m := Model{Substitutions: map[string]string{"x": "y"}}

	report, err := Apply(context.Background(), body, m, Options{MaxIterations: 10})
	require.NoError(t, err)

	assert.False(t, report.CapHit())
	results := resultsByToken(report)
	assert.Equal(t, OutcomeReplaced, results["{{x}}"].Outcome)
	assert.Equal(t, 10, results["{{x}}"].Replacements)
}

func TestApplyFullModel(t *testing.T) {
	template := `出張旅費書
出張先: {{destination}} ({{departureDate}}〜{{returnDate}})
{{transportTable}}
日当: {{dailyAllowanceDetails}}
{{dailyAllowanceDetailsTable}}
宿泊:
{{lodgingDetailsTable}}
総計: {{grandTotal}}`

	led := &model.Ledger{
		Destination:   "東京都立病院",
		DepartureDate: "2025/10/01",
		ReturnDate:    "2025/10/01",
		TripDays:      1,
		Rows: []model.NormalizedRow{
			{Date: "2025/10/01", TransportMethod: "電車", Departure: "東京", Arrival: "病院前", Fare: 360, RowTotal: 360},
		},
		PerDiemSelected: []model.CategorySelection{
			{DayIndex: 0, Category: "平日 日帰り 近地"},
		},
		PerDiemAggregate: []model.CategoryAggregate{
			{Category: "平日 日帰り 近地", UnitPrice: 2500, Count: 1, Subtotal: 2500},
		},
		TransportTotal: 360,
		PerDiemTotal:   2500,
		GrandTotal:     2860,
	}

	body := NewTextBody(template)
	report, err := Apply(context.Background(), body, Build(led), Options{})
	require.NoError(t, err)
	require.False(t, report.CapHit())

	out := body.String()
	assert.NotContains(t, out, "{{")
	assert.Contains(t, out, "出張先: 東京都立病院 (2025/10/01(水)〜2025/10/01(水))")
	assert.Contains(t, out, "電車")
	assert.Contains(t, out, "日当: 平日 日帰り 近地")
	assert.Contains(t, out, "平日 日帰り 近地\t2,500")
	assert.Contains(t, out, "総計: 2860")

	// The lodging table had no data; its placeholder line is now empty.
	results := resultsByToken(report)
	assert.Equal(t, OutcomeDeleted, results[TokenLodgingTable].Outcome)
}

func resultsByToken(r *Report) map[string]TokenResult {
	out := make(map[string]TokenResult, len(r.Results))
	for _, res := range r.Results {
		out[res.Token] = res
	}
	return out
}
