package forecast_test

import (
	"testing"
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/jmallet/cashplan/internal/core/forecast"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		from      time.Time
		frequency domain.RecurringFrequency
		want      time.Time
	}{
		{
			name:      "weekly advances seven days",
			from:      date(2026, time.March, 10),
			frequency: domain.Weekly,
			want:      date(2026, time.March, 17),
		},
		{
			name:      "weekly crosses month boundary",
			from:      date(2026, time.January, 29),
			frequency: domain.Weekly,
			want:      date(2026, time.February, 5),
		},
		{
			name:      "monthly preserves day of month",
			from:      date(2026, time.April, 15),
			frequency: domain.Monthly,
			want:      date(2026, time.May, 15),
		},
		{
			name:      "monthly end of month rolls over like calendar addition",
			from:      date(2026, time.January, 31),
			frequency: domain.Monthly,
			want:      date(2026, time.March, 3), // Jan 31 + 1 month, 2026 is not a leap year
		},
		{
			name:      "annual advances one year",
			from:      date(2026, time.June, 1),
			frequency: domain.Annual,
			want:      date(2027, time.June, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := forecast.NextOccurrence(tt.from, tt.frequency)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDayNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	in := time.Date(2026, time.May, 4, 23, 45, 0, 0, loc)

	got := forecast.Day(in)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, date(2026, time.May, 4), got)
}
