package plan

import (
	"fmt"
	"math"
	"strings"

	"alcyxob/running-app/internal/pace"
)

// SystemPrompt frames the model as a coach and pins the reply format.
const SystemPrompt = "You are a professional running coach who builds personalised " +
	"training plans from a runner's history. Always reply with the training plan " +
	"as JSON."

// promptSchema is the literal example the model is told to mirror exactly.
// The response parser relies on this shape; change both together.
const promptSchema = `{
  "plan": [
    {
      "day": "Monday",
      "type": "Easy run",
      "distance": 5.0,
      "duration": 30,
      "pace": "6:00",
      "description": "Recovery run at a relaxed effort"
    },
    ...
  ],
  "summary": "One-paragraph summary of the week",
  "tips": ["training tip 1", "training tip 2"]
}`

// BuildPrompt renders the aggregated history into the generation prompt.
// Output is deterministic for a given summary.
func BuildPrompt(s *Summary) string {
	var b strings.Builder

	b.WriteString("As a professional running coach, build a personalised running plan ")
	b.WriteString("for next week from the following run history.\n\n")

	fmt.Fprintf(&b, "Runner profile:\n")
	fmt.Fprintf(&b, "- Total runs: %d\n", s.TotalRuns)
	fmt.Fprintf(&b, "- Total distance: %.2f km\n", s.TotalDistance)
	fmt.Fprintf(&b, "- Average distance: %.2f km\n", s.AvgDistance)
	fmt.Fprintf(&b, "- Average duration: %s\n", minSec(s.AvgDuration))
	fmt.Fprintf(&b, "- Most recent run: %s, %.2f km in %s\n",
		s.LatestRun.Date, s.LatestRun.Distance, minSec(float64(s.LatestRun.Time)))

	fmt.Fprintf(&b, "\nLast %d runs:\n", len(s.RecentRuns))
	for i, run := range s.RecentRuns {
		fmt.Fprintf(&b, "%d. %s: %.2f km, %s, pace %s\n",
			i+1, run.Date, run.Distance, minSec(float64(run.Time)), pace.FormatPace(run.Pace))
	}

	b.WriteString(`
Generate a 7-day plan for next week that:
1. Raises intensity and distance moderately relative to the runner's current level
2. Mixes run types (easy run, intervals, long run, ...)
3. Schedules sensible rest days
4. Gives a concrete distance, duration and pace for every run
5. Adds a short note explaining the purpose of each session

Return JSON only, in exactly this format:
`)
	b.WriteString(promptSchema)
	b.WriteString("\n")

	return b.String()
}

// minSec renders seconds as "Xm Ys"; fractional input is floored into
// minutes with the remainder rounded.
func minSec(seconds float64) string {
	minutes := int(seconds) / 60
	rem := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm %.0fs", minutes, math.Round(rem))
}
