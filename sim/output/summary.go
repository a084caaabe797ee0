package output

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/jobmatch-sim/jobmatch-sim/sim"
)

// Summary is the JSON results dump. NaN values (empty groups) encode as null.
type Summary struct {
	Seed          int64             `json:"seed"`
	Config        sim.Config        `json:"config"`
	Baseline      []GroupRow        `json:"baseline"`
	Subgroups     []GroupRow        `json:"subgroups"`
	Distributions []DistributionRow `json:"distributions"`
	Effects       []EffectRow       `json:"effects"`
}

type GroupRow struct {
	Group      string   `json:"group"`
	SkillGroup string   `json:"skill_group,omitempty"`
	Count      int      `json:"count"`
	MatchScore *float64 `json:"match_score"`
	Retained   *float64 `json:"retained"`
	Wage       *float64 `json:"wage"`
}

type DistributionRow struct {
	Group  string   `json:"group"`
	Metric string   `json:"metric"`
	N      int      `json:"n"`
	Min    *float64 `json:"min"`
	Q1     *float64 `json:"q1"`
	Median *float64 `json:"median"`
	Q3     *float64 `json:"q3"`
	Max    *float64 `json:"max"`
	Mean   *float64 `json:"mean"`
	StdDev *float64 `json:"std_dev"`
}

type EffectRow struct {
	Metric     string   `json:"metric"`
	Control    *float64 `json:"control"`
	Treated    *float64 `json:"treated"`
	Difference *float64 `json:"difference"`
}

// NewSummary flattens simulation results into the JSON document.
func NewSummary(seed int64, cfg sim.Config, results *sim.Results) *Summary {
	s := &Summary{Seed: seed, Config: cfg}
	if results.Baseline != nil {
		s.Baseline = groupRows(results.Baseline.Groups)
		s.Subgroups = groupRows(results.Baseline.SkillGroups)
	}
	for _, d := range sim.Summarize(results.Runs) {
		s.Distributions = append(s.Distributions, DistributionRow{
			Group:  string(d.Group),
			Metric: string(d.Metric),
			N:      d.N,
			Min:    nullable(d.Min),
			Q1:     nullable(d.Q1),
			Median: nullable(d.Median),
			Q3:     nullable(d.Q3),
			Max:    nullable(d.Max),
			Mean:   nullable(d.Mean),
			StdDev: nullable(d.StdDev),
		})
	}
	for _, e := range sim.TreatmentEffects(results.Runs) {
		s.Effects = append(s.Effects, EffectRow{
			Metric:     string(e.Metric),
			Control:    nullable(e.Control),
			Treated:    nullable(e.Treated),
			Difference: nullable(e.Difference),
		})
	}
	return s
}

func groupRows(stats []sim.GroupStats) []GroupRow {
	rows := make([]GroupRow, 0, len(stats))
	for _, g := range stats {
		rows = append(rows, GroupRow{
			Group:      string(g.Group),
			SkillGroup: string(g.SkillGroup),
			Count:      g.Count,
			MatchScore: nullable(g.MatchScore),
			Retained:   nullable(g.Retained),
			Wage:       nullable(g.Wage),
		})
	}
	return rows
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// WriteSummaryJSON writes s as indented JSON to path.
func WriteSummaryJSON(path string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadSummaryJSON decodes a summary written by WriteSummaryJSON.
func ReadSummaryJSON(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &s, nil
}
