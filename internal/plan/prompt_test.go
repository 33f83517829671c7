package plan

import (
	"strings"
	"testing"

	"alcyxob/running-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary(t *testing.T) *Summary {
	t.Helper()
	s, err := Aggregate([]domain.Run{
		{Date: "2025-12-31", Distance: 20.26, Time: 6360, Pace: 314},
		{Date: "2025-12-30", Distance: 10.00, Time: 2760, Pace: 276},
		{Date: "2025-12-28", Distance: 3.00, Time: 720, Pace: 240},
	})
	require.NoError(t, err)
	return s
}

func TestBuildPromptContents(t *testing.T) {
	prompt := BuildPrompt(testSummary(t))

	assert.Contains(t, prompt, "Total runs: 3")
	assert.Contains(t, prompt, "Total distance: 33.26 km")
	assert.Contains(t, prompt, "Average distance: 11.09 km")
	assert.Contains(t, prompt, "Average duration: 54m 40s")
	assert.Contains(t, prompt, "Most recent run: 2025-12-31, 20.26 km in 106m 0s")

	// Numbered recent-run list, newest first.
	assert.Contains(t, prompt, "1. 2025-12-31: 20.26 km, 106m 0s, pace 5:14'/km")
	assert.Contains(t, prompt, "2. 2025-12-30: 10.00 km, 46m 0s, pace 4:36'/km")
	assert.Contains(t, prompt, "3. 2025-12-28: 3.00 km, 12m 0s, pace 4:00'/km")

	// The example schema the parser depends on.
	for _, key := range []string{`"plan"`, `"day"`, `"type"`, `"distance"`, `"duration"`, `"pace"`, `"description"`, `"summary"`, `"tips"`} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, "7-day plan")
	assert.Contains(t, prompt, "rest days")
}

func TestBuildPromptDeterministic(t *testing.T) {
	s := testSummary(t)
	assert.Equal(t, BuildPrompt(s), BuildPrompt(s))
}

func TestBuildPromptListsAtMostFiveRuns(t *testing.T) {
	var runs []domain.Run
	for _, d := range []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06"} {
		runs = append(runs, domain.Run{Date: d, Distance: 5, Time: 1500, Pace: 300})
	}
	s, err := Aggregate(runs)
	require.NoError(t, err)

	prompt := BuildPrompt(s)
	assert.Contains(t, prompt, "Last 5 runs:")
	assert.Contains(t, prompt, "5. 2025-03-02:")
	assert.False(t, strings.Contains(prompt, "6. 2025-03-01"))
}
