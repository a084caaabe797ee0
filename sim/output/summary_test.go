package output

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobmatch-sim/jobmatch-sim/sim"
)

func TestSummaryJSON_RoundTrip(t *testing.T) {
	s, _ := baselineFor(t)
	results, err := s.Execute()
	require.NoError(t, err)

	summary := NewSummary(42, s.Config, results)
	path := filepath.Join(t.TempDir(), SummaryJSONFileName)
	require.NoError(t, WriteSummaryJSON(path, summary))

	got, err := ReadSummaryJSON(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, s.Config, got.Config)
	assert.Len(t, got.Baseline, 2)
	assert.Len(t, got.Subgroups, 4)
	assert.Len(t, got.Distributions, len(sim.TreatmentGroups)*len(sim.Metrics))
	assert.Len(t, got.Effects, len(sim.Metrics))
	assert.Equal(t, summary.Distributions[0].N, got.Distributions[0].N)
	require.NotNil(t, got.Effects[0].Difference)
	assert.InDelta(t, *summary.Effects[0].Difference, *got.Effects[0].Difference, 1e-12)
}

func TestSummaryJSON_EmptyGroupsEncodeAsNull(t *testing.T) {
	results := &sim.Results{
		Baseline: &sim.Baseline{
			Groups: []sim.GroupStats{
				{Group: sim.GroupControl, MatchScore: math.NaN(), Retained: math.NaN(), Wage: math.NaN()},
				{Group: sim.GroupTreated, Count: 1, MatchScore: 0.9, Retained: 1, Wage: 48000},
			},
		},
	}

	summary := NewSummary(1, sim.DefaultConfig(), results)
	path := filepath.Join(t.TempDir(), SummaryJSONFileName)
	require.NoError(t, WriteSummaryJSON(path, summary))

	got, err := ReadSummaryJSON(path)
	require.NoError(t, err)
	require.Len(t, got.Baseline, 2)
	assert.Nil(t, got.Baseline[0].MatchScore)
	assert.Nil(t, got.Baseline[0].Wage)
	require.NotNil(t, got.Baseline[1].Wage)
	assert.Equal(t, 48000.0, *got.Baseline[1].Wage)

	// No runs: every distribution is empty and every effect is null.
	for _, d := range got.Distributions {
		assert.Equal(t, 0, d.N)
		assert.Nil(t, d.Median)
	}
	for _, e := range got.Effects {
		assert.Nil(t, e.Difference)
	}
}
