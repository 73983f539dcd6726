package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompute_NoonAndDuration(t *testing.T) {
	scheduled := time.Date(2024, 3, 10, 0, 0, 0, 0, IST)

	start, end := Compute(scheduled)

	assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, IST), start)
	assert.Equal(t, time.Date(2024, 3, 12, 12, 0, 0, 0, IST), end)
	assert.Equal(t, 48*time.Hour, end.Sub(start))
}

func TestCompute_TimeOfDayDiscarded(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, IST)
	inputs := []time.Time{
		day,
		day.Add(1 * time.Second),
		day.Add(11*time.Hour + 59*time.Minute),
		day.Add(12 * time.Hour),
		day.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}

	wantStart, wantEnd := Compute(day)
	for _, in := range inputs {
		start, end := Compute(in)
		assert.True(t, start.Equal(wantStart), "start for input %v", in)
		assert.True(t, end.Equal(wantEnd), "end for input %v", in)
	}
}

func TestCompute_CalendarDayInServiceZone(t *testing.T) {
	// 20:00 UTC on March 9 is already 01:30 on March 10 in IST, so the
	// window belongs to the 10th.
	utcEvening := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)

	start, _ := Compute(utcEvening)

	assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, IST).UTC(), start.UTC())
}

func TestCompute_BoundaryRollover(t *testing.T) {
	tests := []struct {
		name      string
		scheduled time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "month end",
			scheduled: time.Date(2024, 1, 31, 6, 0, 0, 0, IST),
			wantStart: time.Date(2024, 1, 31, 12, 0, 0, 0, IST),
			wantEnd:   time.Date(2024, 2, 2, 12, 0, 0, 0, IST),
		},
		{
			name:      "year end",
			scheduled: time.Date(2023, 12, 31, 23, 0, 0, 0, IST),
			wantStart: time.Date(2023, 12, 31, 12, 0, 0, 0, IST),
			wantEnd:   time.Date(2024, 1, 2, 12, 0, 0, 0, IST),
		},
		{
			name:      "leap day",
			scheduled: time.Date(2024, 2, 29, 9, 30, 0, 0, IST),
			wantStart: time.Date(2024, 2, 29, 12, 0, 0, 0, IST),
			wantEnd:   time.Date(2024, 3, 2, 12, 0, 0, 0, IST),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Compute(tt.scheduled)
			assert.True(t, start.Equal(tt.wantStart), "start: got %v want %v", start, tt.wantStart)
			assert.True(t, end.Equal(tt.wantEnd), "end: got %v want %v", end, tt.wantEnd)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	scheduled := time.Date(2025, 8, 14, 17, 45, 12, 0, IST)

	s1, e1 := Compute(scheduled)
	s2, e2 := Compute(scheduled)

	assert.Equal(t, s1, s2)
	assert.Equal(t, e1, e2)
}

func TestContains(t *testing.T) {
	start, end := Compute(time.Date(2024, 3, 10, 0, 0, 0, 0, IST))

	assert.False(t, Contains(start, end, start.Add(-time.Minute)))
	assert.True(t, Contains(start, end, start))
	assert.True(t, Contains(start, end, start.Add(12*time.Hour)))
	assert.True(t, Contains(start, end, end))
	assert.False(t, Contains(start, end, end.Add(time.Minute)))
}
