// Package pace holds the pure time/distance/pace arithmetic used across the
// running log: display formatting, conversions between the three quantities,
// and aggregate statistics over a runner's history.
package pace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"alcyxob/running-app/internal/domain"
)

// FormatTime renders elapsed seconds as "H:MM:SS", or "M:SS" when under an hour.
func FormatTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// ParseTime parses "H:MM:SS" or "M:SS" into seconds. Anything else,
// including non-numeric tokens, yields 0 (invalid input is handled upstream).
func ParseTime(text string) int {
	parts := strings.Split(text, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		nums[i] = n
	}

	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	default:
		return 0
	}
}

// FormatDistance renders kilometers as meters below 1 km ("500m"),
// otherwise with two decimals ("10.00km").
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.2fkm", km)
}

// CalculatePace returns seconds per kilometer, rounded. A non-positive
// distance yields 0 rather than a divide-by-zero.
func CalculatePace(distance float64, timeSeconds int) int {
	if distance <= 0 {
		return 0
	}
	return int(math.Round(float64(timeSeconds) / distance))
}

// CalculateTime returns the elapsed seconds for covering distance at pace.
func CalculateTime(distance float64, paceSeconds int) int {
	return int(math.Round(distance * float64(paceSeconds)))
}

// CalculateDistance returns kilometers covered in timeSeconds at pace,
// rounded to two decimals. A non-positive pace yields 0.
func CalculateDistance(timeSeconds, paceSeconds int) float64 {
	if paceSeconds <= 0 {
		return 0
	}
	return math.Round(float64(timeSeconds)/float64(paceSeconds)*100) / 100
}

// FormatPace renders seconds-per-kilometer as "M:SS'/km".
func FormatPace(secondsPerKm int) string {
	minutes := secondsPerKm / 60
	seconds := secondsPerKm % 60
	return fmt.Sprintf("%d:%02d'/km", minutes, seconds)
}

// AveragePace returns total time over total distance, rounded to whole
// seconds per kilometer. Empty input or zero total distance yields 0.
func AveragePace(runs []domain.Run) int {
	if len(runs) == 0 {
		return 0
	}
	totalDistance := TotalDistance(runs)
	if totalDistance == 0 {
		return 0
	}
	return int(math.Round(float64(TotalTime(runs)) / totalDistance))
}

// TotalDistance sums distance in kilometers over all runs.
func TotalDistance(runs []domain.Run) float64 {
	var sum float64
	for _, r := range runs {
		sum += r.Distance
	}
	return sum
}

// TotalTime sums elapsed seconds over all runs.
func TotalTime(runs []domain.Run) int {
	var sum int
	for _, r := range runs {
		sum += r.Time
	}
	return sum
}

// LongestDistance returns the maximum run distance, 0 for empty input.
func LongestDistance(runs []domain.Run) float64 {
	var longest float64
	for _, r := range runs {
		if r.Distance > longest {
			longest = r.Distance
		}
	}
	return longest
}

// FastestPace returns the minimum pace value (lower pace is faster),
// 0 for empty input.
func FastestPace(runs []domain.Run) int {
	if len(runs) == 0 {
		return 0
	}
	fastest := runs[0].Pace
	for _, r := range runs[1:] {
		if r.Pace < fastest {
			fastest = r.Pace
		}
	}
	return fastest
}

// WeeklyDistance sums the distance of runs dated within the current calendar
// week, starting Sunday at local midnight relative to now.
func WeeklyDistance(runs []domain.Run, now time.Time) float64 {
	startOfWeek := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -int(now.Weekday()))
	return distanceSince(runs, startOfWeek)
}

// MonthlyDistance sums the distance of runs dated within the current
// calendar month relative to now.
func MonthlyDistance(runs []domain.Run, now time.Time) float64 {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return distanceSince(runs, startOfMonth)
}

func distanceSince(runs []domain.Run, cutoff time.Time) float64 {
	var sum float64
	for _, r := range runs {
		date, err := time.ParseInLocation(domain.DateLayout, r.Date, cutoff.Location())
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			sum += r.Distance
		}
	}
	return sum
}
