package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMatch returns a 1×1 table whose only entry is (close to) p.
func fixedMatch(t *testing.T, p float64) *SimilarityMatrix {
	t.Helper()
	// cos between (1, 0) and (p, sqrt(1-p²)) is p.
	sim, err := ComputeSimilarity([][]float64{{1, 0}}, [][]float64{{p, math.Sqrt(1 - p*p)}})
	require.NoError(t, err)
	require.InDelta(t, p, sim.At(0, 0), 1e-12)
	return sim
}

func TestSimulateOutcome_TreatedAppliesToRecommendation(t *testing.T) {
	sim, err := ComputeSimilarity([][]float64{{1, 0}}, [][]float64{{0, 1}, {1, 0}, {1, 1}})
	require.NoError(t, err)

	rng := newRandFromSeed(1)
	for i := 0; i < 50; i++ {
		o, err := SimulateOutcome(rng, sim, JobSeeker{ID: 0, Treated: true}, SomeJob(1))
		require.NoError(t, err)
		assert.Equal(t, 1, o.AppliedJob)
		assert.Equal(t, sim.At(0, 1), o.MatchScore)
		assert.Equal(t, SomeJob(1), o.Recommended)
	}
}

func TestSimulateOutcome_ControlAppliesUniformly(t *testing.T) {
	sim, err := ComputeSimilarity([][]float64{{1, 0}}, [][]float64{{0, 1}, {1, 0}, {1, 1}, {2, 1}})
	require.NoError(t, err)

	rng := newRandFromSeed(2)
	counts := make([]int, sim.NumJobs())
	const n = 8000
	for i := 0; i < n; i++ {
		o, err := SimulateOutcome(rng, sim, JobSeeker{ID: 0}, NoJob)
		require.NoError(t, err)
		require.GreaterOrEqual(t, o.AppliedJob, 0)
		require.Less(t, o.AppliedJob, sim.NumJobs())
		assert.Equal(t, sim.At(0, o.AppliedJob), o.MatchScore)
		counts[o.AppliedJob]++
	}
	for j, c := range counts {
		assert.InDelta(t, 0.25, float64(c)/n, 0.03, "job %d", j)
	}
}

func TestSimulateOutcome_TreatedWithoutRecommendationIsRandom(t *testing.T) {
	sim, err := ComputeSimilarity([][]float64{{1, 0}}, [][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	rng := newRandFromSeed(3)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		o, err := SimulateOutcome(rng, sim, JobSeeker{ID: 0, Treated: true}, NoJob)
		require.NoError(t, err)
		seen[o.AppliedJob] = true
	}
	assert.Len(t, seen, 2)
}

func TestSimulateOutcome_RetentionConvergesToMatchScore(t *testing.T) {
	for _, p := range []float64{0.1, 0.5, 0.8} {
		sim := fixedMatch(t, p)
		rng := newRandFromSeed(11)

		const n = 20000
		retained := 0
		for i := 0; i < n; i++ {
			o, err := SimulateOutcome(rng, sim, JobSeeker{ID: 0, Treated: true}, SomeJob(0))
			require.NoError(t, err)
			if o.Retained {
				retained++
			}
		}
		assert.InDelta(t, p, float64(retained)/n, 0.02, "p=%v", p)
	}
}

func TestSimulateOutcome_WageConvergesToLinearModel(t *testing.T) {
	for _, p := range []float64{0.2, 0.6, 0.9} {
		sim := fixedMatch(t, p)
		rng := newRandFromSeed(12)

		const n = 20000
		total := 0.0
		for i := 0; i < n; i++ {
			o, err := SimulateOutcome(rng, sim, JobSeeker{ID: 0, Treated: true}, SomeJob(0))
			require.NoError(t, err)
			total += o.Wage
		}
		// Standard error is 2000/sqrt(20000) ≈ 14.
		assert.InDelta(t, BaseWage+WageRange*p, total/n, 100, "p=%v", p)
	}
}

func TestSimulateOutcome_NegativeMatchNeverRetains(t *testing.T) {
	sim, err := ComputeSimilarity([][]float64{{1, 0}}, [][]float64{{-1, 0}})
	require.NoError(t, err)

	rng := newRandFromSeed(4)
	for i := 0; i < 500; i++ {
		o, err := SimulateOutcome(rng, sim, JobSeeker{ID: 0, Treated: true}, SomeJob(0))
		require.NoError(t, err)
		assert.False(t, o.Retained)
		assert.Equal(t, -1.0, o.MatchScore)
	}
}

func TestSimulateOutcome_RecommendationOutOfRange(t *testing.T) {
	sim := fixedMatch(t, 0.5)
	_, err := SimulateOutcome(newRandFromSeed(1), sim, JobSeeker{ID: 0, Treated: true}, SomeJob(3))
	assert.Error(t, err)
}

func TestSimulateOutcomes_PureAndOrdered(t *testing.T) {
	sim, err := ComputeSimilarity([][]float64{{1, 0}, {0, 1}}, [][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	seekers := []JobSeeker{{ID: 0, Treated: true, Skills: []float64{1, 0}}, {ID: 1, Skills: []float64{0, 1}}}
	recs := Recommend(sim, seekers)

	a, err := SimulateOutcomes(newRandFromSeed(8), sim, seekers, recs)
	require.NoError(t, err)
	b, err := SimulateOutcomes(newRandFromSeed(8), sim, seekers, recs)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.Len(t, a, 2)
	assert.Equal(t, 0, a[0].Seeker.ID)
	assert.Equal(t, 1, a[1].Seeker.ID)
	assert.True(t, seekers[0].Treated)
	assert.Equal(t, []float64{1, 0}, seekers[0].Skills)
}

func TestSimulateOutcomes_LengthMismatch(t *testing.T) {
	sim := fixedMatch(t, 0.5)
	_, err := SimulateOutcomes(newRandFromSeed(1), sim, []JobSeeker{{ID: 0}}, nil)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}
