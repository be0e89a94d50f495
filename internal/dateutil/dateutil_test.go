package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input any
		name  string
		want  string
	}{
		{
			name:  "slash string passes through",
			input: "2025/10/01",
			want:  "2025/10/01",
		},
		{
			name:  "iso date",
			input: "2025-10-01",
			want:  "2025/10/01",
		},
		{
			name:  "iso datetime truncates time component",
			input: "2025-10-01T09:30:00.000Z",
			want:  "2025/10/01",
		},
		{
			name:  "time value",
			input: time.Date(2025, 10, 1, 15, 0, 0, 0, time.UTC),
			want:  "2025/10/01",
		},
		{
			name:  "zero time",
			input: time.Time{},
			want:  "",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
		{
			name:  "nil",
			input: nil,
			want:  "",
		},
		{
			name:  "zero epoch millis",
			input: int64(0),
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeEpochMillis(t *testing.T) {
	// 2025-10-01T00:00:00Z in epoch milliseconds.
	ms := time.Date(2025, 10, 1, 0, 0, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, "2025/10/01", Normalize(ms))
	assert.Equal(t, "2025/10/01", Normalize(float64(ms)))
}

func TestWithWeekday(t *testing.T) {
	tests := []struct {
		input any
		name  string
		want  string
	}{
		{
			name:  "wednesday",
			input: "2025/10/01",
			want:  "2025/10/01(水)",
		},
		{
			name:  "friday from iso form",
			input: "2025-10-03",
			want:  "2025/10/03(金)",
		},
		{
			name:  "already suffixed passes through",
			input: "2025/10/01(水)",
			want:  "2025/10/01(水)",
		},
		{
			name:  "time value",
			input: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
			want:  "2025/10/05(日)",
		},
		{
			name:  "unparseable comes back normalized without suffix",
			input: "not a date",
			want:  "not a date",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithWeekday(tt.input))
		})
	}
}

func TestTripDays(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		ret       string
		want      int
	}{
		{
			name:      "same day trip is one day",
			departure: "2025/10/01",
			ret:       "2025/10/01",
			want:      1,
		},
		{
			name:      "overnight trip",
			departure: "2025/10/01",
			ret:       "2025/10/02",
			want:      2,
		},
		{
			name:      "week long trip",
			departure: "2025/10/01",
			ret:       "2025/10/07",
			want:      7,
		},
		{
			name:      "return before departure clamps to one",
			departure: "2025/10/05",
			ret:       "2025/10/01",
			want:      1,
		},
		{
			name:      "missing departure",
			departure: "",
			ret:       "2025/10/01",
			want:      0,
		},
		{
			name:      "missing return",
			departure: "2025/10/01",
			ret:       "",
			want:      0,
		},
		{
			name:      "unparseable",
			departure: "borked",
			ret:       "2025/10/01",
			want:      0,
		},
		{
			name:      "single digit month and day",
			departure: "2025/1/5",
			ret:       "2025/1/7",
			want:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TripDays(tt.departure, tt.ret))
		})
	}
}

func TestLodgingNights(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		ret       string
		want      int
	}{
		{
			name:      "same day means no nights",
			departure: "2025/10/01",
			ret:       "2025/10/01",
			want:      0,
		},
		{
			name:      "one night",
			departure: "2025/10/01",
			ret:       "2025/10/02",
			want:      1,
		},
		{
			name:      "six nights",
			departure: "2025/10/01",
			ret:       "2025/10/07",
			want:      6,
		},
		{
			name:      "inverted dates floor at zero",
			departure: "2025/10/05",
			ret:       "2025/10/01",
			want:      0,
		},
		{
			name:      "missing dates",
			departure: "",
			ret:       "",
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LodgingNights(tt.departure, tt.ret))
		})
	}
}
