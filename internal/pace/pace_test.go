package pace

import (
	"testing"
	"time"

	"alcyxob/running-app/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "4:36", FormatTime(276))
	assert.Equal(t, "0:59", FormatTime(59))
	assert.Equal(t, "1:00:00", FormatTime(3600))
	assert.Equal(t, "1:46:00", FormatTime(6360))
	assert.Equal(t, "2:05:07", FormatTime(7507))
}

func TestParseTime(t *testing.T) {
	assert.Equal(t, 276, ParseTime("4:36"))
	assert.Equal(t, 6360, ParseTime("1:46:00"))
	assert.Equal(t, 0, ParseTime("42"))
	assert.Equal(t, 0, ParseTime("1:2:3:4"))
	assert.Equal(t, 0, ParseTime("four:ten"))
	assert.Equal(t, 0, ParseTime(""))
}

func TestTimeRoundTrip(t *testing.T) {
	for _, s := range []string{"4:36", "0:05", "59:59", "1:00:00", "1:46:00", "12:34:56"} {
		assert.Equal(t, s, FormatTime(ParseTime(s)), "round-trip %q", s)
	}
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "500m", FormatDistance(0.5))
	assert.Equal(t, "999m", FormatDistance(0.999))
	assert.Equal(t, "1.00km", FormatDistance(1))
	assert.Equal(t, "10.00km", FormatDistance(10))
	assert.Equal(t, "20.26km", FormatDistance(20.26))
}

func TestCalculatePace(t *testing.T) {
	assert.Equal(t, 276, CalculatePace(10, 2760))
	assert.Equal(t, 314, CalculatePace(20.26, 6360))
	assert.Equal(t, 0, CalculatePace(0, 2760))
	assert.Equal(t, 0, CalculatePace(-1, 2760))
}

func TestFormatPace(t *testing.T) {
	assert.Equal(t, "4:36'/km", FormatPace(276))
	assert.Equal(t, "6:00'/km", FormatPace(360))
	assert.Equal(t, "0:45'/km", FormatPace(45))
}

func TestCalculateTime(t *testing.T) {
	assert.Equal(t, 2760, CalculateTime(10, 276))
	assert.Equal(t, 1380, CalculateTime(5, 276))
}

func TestCalculateDistance(t *testing.T) {
	assert.Equal(t, 10.0, CalculateDistance(2760, 276))
	assert.Equal(t, 0.0, CalculateDistance(2760, 0))
	assert.Equal(t, 2.61, CalculateDistance(720, 276))
}

func TestAggregatesEmptyInput(t *testing.T) {
	var empty []domain.Run
	assert.Equal(t, 0, AveragePace(empty))
	assert.Equal(t, 0.0, TotalDistance(empty))
	assert.Equal(t, 0, TotalTime(empty))
	assert.Equal(t, 0.0, LongestDistance(empty))
	assert.Equal(t, 0, FastestPace(empty))
	assert.Equal(t, 0.0, WeeklyDistance(empty, time.Now()))
	assert.Equal(t, 0.0, MonthlyDistance(empty, time.Now()))
}

func TestAggregates(t *testing.T) {
	runs := []domain.Run{
		{Date: "2025-12-31", Distance: 20.26, Time: 6360, Pace: 314},
		{Date: "2025-12-31", Distance: 10.00, Time: 2760, Pace: 276},
		{Date: "2025-12-31", Distance: 3.00, Time: 720, Pace: 240},
	}

	assert.InDelta(t, 33.26, TotalDistance(runs), 0.001)
	assert.Equal(t, 9840, TotalTime(runs))
	assert.Equal(t, 296, AveragePace(runs)) // 9840 / 33.26 rounded
	assert.Equal(t, 20.26, LongestDistance(runs))
	assert.Equal(t, 240, FastestPace(runs))
}

func TestWeeklyDistance(t *testing.T) {
	// Wednesday 2026-01-07; the week started Sunday 2026-01-04.
	now := time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC)
	runs := []domain.Run{
		{Date: "2026-01-07", Distance: 5},
		{Date: "2026-01-04", Distance: 10}, // Sunday, start of week, included
		{Date: "2026-01-03", Distance: 8},  // Saturday, previous week
		{Date: "not-a-date", Distance: 99},
	}
	assert.Equal(t, 15.0, WeeklyDistance(runs, now))
}

func TestMonthlyDistance(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	runs := []domain.Run{
		{Date: "2026-01-01", Distance: 5},
		{Date: "2026-01-14", Distance: 7},
		{Date: "2025-12-31", Distance: 20},
	}
	assert.Equal(t, 12.0, MonthlyDistance(runs, now))
}
