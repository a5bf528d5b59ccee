package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotOf(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "truncates minutes and seconds",
			in:   time.Date(2030, 1, 1, 10, 15, 42, 999, time.UTC),
			want: time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "already on the hour",
			in:   time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
			want: time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "half hour offset zone keeps local hour",
			in:   time.Date(2030, 1, 1, 10, 45, 0, 0, kolkata),
			want: time.Date(2030, 1, 1, 10, 0, 0, 0, kolkata),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotOf(tt.in)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			assert.True(t, got.Equal(SlotOf(got)), "must be idempotent")
		})
	}
}

func TestIsFutureSlot(t *testing.T) {
	now := time.Date(2030, 1, 1, 10, 30, 0, 0, time.UTC)

	assert.False(t, IsFutureSlot(SlotOf(now), now), "current hour is not bookable")
	assert.False(t, IsFutureSlot(now.Add(-time.Hour), now))
	assert.True(t, IsFutureSlot(time.Date(2030, 1, 1, 11, 0, 0, 0, time.UTC), now))
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	day := time.Date(2030, 3, 10, 1, 0, 0, 0, time.UTC) // 2030-03-09 22:00 BRT

	start, next := DayBounds(day, loc)

	assert.True(t, time.Date(2030, 3, 9, 0, 0, 0, 0, loc).Equal(start), "start %s", start)
	assert.True(t, time.Date(2030, 3, 10, 0, 0, 0, 0, loc).Equal(next), "next %s", next)
}

func TestDayBounds_WholeSeconds(t *testing.T) {
	// timestamptz keeps microseconds, so a sub-microsecond bound would be
	// rounded by postgres and could pull in the next day's midnight.
	start, next := DayBounds(time.Date(2030, 1, 1, 15, 0, 0, 0, time.UTC), time.UTC)

	assert.Zero(t, start.Nanosecond())
	assert.Zero(t, next.Nanosecond())
	assert.Equal(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), next)
}
