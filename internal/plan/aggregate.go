// Package plan turns a runner's history into a weekly-plan prompt and parses
// the model's reply back into a structured plan.
package plan

import (
	"errors"
	"sort"

	"alcyxob/running-app/internal/domain"
	"alcyxob/running-app/internal/pace"
)

// ErrNoHistory is returned when there are no runs to aggregate. Plan
// generation must not proceed without history.
var ErrNoHistory = errors.New("no run history to aggregate")

const recentRunCount = 5

// Summary holds the aggregate statistics the prompt is built from.
type Summary struct {
	TotalRuns     int
	TotalDistance float64 // kilometers
	AvgDistance   float64 // kilometers
	AvgDuration   float64 // seconds
	LatestRun     domain.Run
	RecentRuns    []domain.Run // up to 5, newest first
	SortedRuns    []domain.Run // full history, newest first
}

// Aggregate computes summary statistics over a user's run history.
// The input may arrive in any order; runs are ranked newest first
// (lexical comparison is valid for ISO dates).
func Aggregate(runs []domain.Run) (*Summary, error) {
	if len(runs) == 0 {
		return nil, ErrNoHistory
	}

	sorted := make([]domain.Run, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	recent := sorted
	if len(recent) > recentRunCount {
		recent = recent[:recentRunCount]
	}

	total := len(sorted)
	totalDistance := pace.TotalDistance(sorted)

	return &Summary{
		TotalRuns:     total,
		TotalDistance: totalDistance,
		AvgDistance:   totalDistance / float64(total),
		AvgDuration:   float64(pace.TotalTime(sorted)) / float64(total),
		LatestRun:     sorted[0],
		RecentRuns:    recent,
		SortedRuns:    sorted,
	}, nil
}
