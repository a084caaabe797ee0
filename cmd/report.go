package cmd

import (
	"fmt"
	"io"

	"github.com/jobmatch-sim/jobmatch-sim/sim"
)

// PrintResults writes the baseline comparison, the skill subgroup comparison
// and the across-run distributions as plain-text tables.
func PrintResults(w io.Writer, results *sim.Results) {
	if results.Baseline != nil {
		fmt.Fprintln(w, "=== Outcome Comparison ===")
		printGroups(w, results.Baseline.Groups)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Subgroup Comparison ===")
		printGroups(w, results.Baseline.SkillGroups)
		fmt.Fprintln(w)
	}
	if len(results.Runs) == 0 {
		return
	}

	fmt.Fprintf(w, "=== Distribution Across %d Runs ===\n", countRuns(results.Runs))
	fmt.Fprintf(w, "%-8s %-12s %10s %10s %10s %10s %10s\n", "group", "metric", "min", "q1", "median", "q3", "max")
	for _, d := range sim.Summarize(results.Runs) {
		fmt.Fprintf(w, "%-8s %-12s %10.4f %10.4f %10.4f %10.4f %10.4f\n",
			d.Group, d.Metric, d.Min, d.Q1, d.Median, d.Q3, d.Max)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Treatment Effect (mean over runs) ===")
	fmt.Fprintf(w, "%-12s %12s %12s %12s\n", "metric", "control", "treated", "difference")
	for _, e := range sim.TreatmentEffects(results.Runs) {
		fmt.Fprintf(w, "%-12s %12.4f %12.4f %12.4f\n", e.Metric, e.Control, e.Treated, e.Difference)
	}
}

func printGroups(w io.Writer, stats []sim.GroupStats) {
	fmt.Fprintf(w, "%-11s %-8s %6s %12s %10s %12s\n", "skill", "group", "n", "match_score", "retained", "wage")
	for _, g := range stats {
		skill := string(g.SkillGroup)
		if skill == "" {
			skill = "-"
		}
		fmt.Fprintf(w, "%-11s %-8s %6d %12.4f %10.4f %12.2f\n", skill, g.Group, g.Count, g.MatchScore, g.Retained, g.Wage)
	}
}

func countRuns(runs []sim.RunAggregate) int {
	seen := make(map[int]struct{})
	for _, r := range runs {
		seen[r.Run] = struct{}{}
	}
	return len(seen)
}
