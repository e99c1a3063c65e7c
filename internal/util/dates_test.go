package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain month", date(2024, time.March, 15), 1, date(2024, time.April, 15)},
		{"six months", date(2024, time.January, 15), 6, date(2024, time.July, 15)},
		{"year rollover", date(2024, time.November, 10), 3, date(2025, time.February, 10)},
		{"clamp to leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamp to non-leap february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp to 30-day month", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"leap day forward without clamp", date(2024, time.February, 29), 1, date(2024, time.March, 29)},
		{"twelve months", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonths(tc.start, tc.months))
		})
	}
}

func TestAddMonthsPreservesClock(t *testing.T) {
	start := time.Date(2024, time.May, 20, 23, 59, 59, 0, time.UTC)
	got := AddMonths(start, 2)
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
	assert.Equal(t, 59, got.Second())
}

func TestMaxTime(t *testing.T) {
	a := date(2024, time.January, 1)
	b := date(2024, time.June, 1)
	assert.Equal(t, b, MaxTime(a, b))
	assert.Equal(t, b, MaxTime(b, a))
	assert.Equal(t, a, MaxTime(a, a))
}
