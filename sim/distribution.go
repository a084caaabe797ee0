package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metric names an outcome mean tracked per group.
type Metric string

const (
	MetricMatchScore Metric = "match_score"
	MetricRetained   Metric = "retained"
	MetricWage       Metric = "wage"
)

// Metrics lists the tracked metrics in reporting order.
var Metrics = []Metric{MetricMatchScore, MetricRetained, MetricWage}

// Value returns the group's mean for metric m, or NaN for an unknown metric.
func (g GroupStats) Value(m Metric) float64 {
	switch m {
	case MetricMatchScore:
		return g.MatchScore
	case MetricRetained:
		return g.Retained
	case MetricWage:
		return g.Wage
	}
	return math.NaN()
}

// Quartiles is a five-number summary plus mean and standard deviation.
// N counts the finite values summarized; with N == 0 every field is NaN.
type Quartiles struct {
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Mean   float64
	StdDev float64
}

// NewQuartiles summarizes values, ignoring NaN entries from empty groups.
func NewQuartiles(values []float64) Quartiles {
	data := finite(values)
	if len(data) == 0 {
		nan := math.NaN()
		return Quartiles{Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan, Mean: nan, StdDev: nan}
	}
	q := Quartiles{
		N:      len(data),
		Min:    floats.Min(data),
		Q1:     CalculatePercentile(data, 25),
		Median: CalculatePercentile(data, 50),
		Q3:     CalculatePercentile(data, 75),
		Max:    floats.Max(data),
	}
	if len(data) == 1 {
		q.Mean, q.StdDev = data[0], 0
		return q
	}
	q.Mean, q.StdDev = stat.MeanStdDev(data, nil)
	return q
}

// Distribution is the spread of one metric for one group across runs.
type Distribution struct {
	Group  TreatmentGroup
	Metric Metric
	Quartiles
}

// Summarize computes a Distribution for every group × metric pair,
// ordered by group then metric.
func Summarize(runs []RunAggregate) []Distribution {
	out := make([]Distribution, 0, len(TreatmentGroups)*len(Metrics))
	for _, g := range TreatmentGroups {
		for _, m := range Metrics {
			out = append(out, Distribution{Group: g, Metric: m, Quartiles: NewQuartiles(metricValues(runs, g, m))})
		}
	}
	return out
}

// Effect is the difference of run-averaged group means for one metric.
type Effect struct {
	Metric     Metric
	Control    float64
	Treated    float64
	Difference float64 // Treated - Control
}

// TreatmentEffects averages each metric over runs per group and reports
// the Treated minus Control difference.
func TreatmentEffects(runs []RunAggregate) []Effect {
	out := make([]Effect, 0, len(Metrics))
	for _, m := range Metrics {
		control := NewQuartiles(metricValues(runs, GroupControl, m)).Mean
		treated := NewQuartiles(metricValues(runs, GroupTreated, m)).Mean
		out = append(out, Effect{Metric: m, Control: control, Treated: treated, Difference: treated - control})
	}
	return out
}

func metricValues(runs []RunAggregate, g TreatmentGroup, m Metric) []float64 {
	var values []float64
	for _, r := range runs {
		if r.Group == g {
			values = append(values, r.Value(m))
		}
	}
	return values
}
