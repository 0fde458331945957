package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		ok    bool
		want  time.Time
	}{
		{"iso date", "2024-04-10", true, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-04-10T08:30:00Z", true, time.Date(2024, 4, 10, 8, 30, 0, 0, time.UTC)},
		{"padded", "  2024-04-10 ", true, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
		{"empty", "", false, time.Time{}},
		{"garbage", "tomorrow", false, time.Time{}},
		{"impossible day", "2024-02-31", false, time.Time{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.input, time.UTC)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, tc.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestDeadlineAt_DateMeansEndOfDay(t *testing.T) {
	got, ok := DeadlineAt("2024-04-10", time.UTC)
	require.True(t, ok)
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())

	_, ok = DeadlineAt("10/04/2024", time.UTC)
	assert.False(t, ok)
}

func TestWeekWindow(t *testing.T) {
	w := WeekWindow(testNow)
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, 8, w.Start.Day())
	assert.Equal(t, time.Sunday, w.End.Weekday())
	assert.Equal(t, 14, w.End.Day())

	sunday := time.Date(2024, 4, 14, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, w.Start, StartOfWeek(sunday))

	prev := w.Previous()
	assert.Equal(t, 1, prev.Start.Day())
	assert.Equal(t, 7, prev.End.Day())
}

func TestWindow_ContainsDate(t *testing.T) {
	w := WeekWindow(testNow)
	assert.True(t, w.ContainsDate("2024-04-08"))
	assert.True(t, w.ContainsDate("2024-04-14"))
	assert.False(t, w.ContainsDate("2024-04-15"))
	assert.False(t, w.ContainsDate("2024-04-07"))
	assert.False(t, w.ContainsDate("not a date"))
}

func TestHoursBetween(t *testing.T) {
	h, ok := HoursBetween("08:00", "09:30")
	require.True(t, ok)
	assert.InDelta(t, 1.5, h, 1e-9)

	h, ok = HoursBetween("10:00:00", "12:00:00")
	require.True(t, ok)
	assert.InDelta(t, 2.0, h, 1e-9)

	h, ok = HoursBetween("12:00", "10:00")
	require.True(t, ok)
	assert.InDelta(t, -2.0, h, 1e-9)

	_, ok = HoursBetween("noon", "13:00")
	assert.False(t, ok)
}
