package sim

import (
	"fmt"
	"math/rand"
)

// Wage model constants.
const (
	BaseWage        = 25000.0
	WageRange       = 25000.0
	WageNoiseStdDev = 2000.0
)

// Outcome is one seeker's simulated result for a single run.
// Outcomes are built fresh per run; seekers and the similarity table are
// never modified.
type Outcome struct {
	Seeker      JobSeeker
	Recommended JobRef
	AppliedJob  int
	MatchScore  float64
	Retained    bool
	// Wage is not clamped; with Gaussian noise it can be negative.
	Wage float64
}

// SimulateOutcome applies seeker s to a job and draws retention and wage.
//
// A treated seeker with a recommendation applies to it; everyone else
// applies to a uniformly random job. Retention is Bernoulli with the match
// score (clamped to [0, 1]) as success probability.
func SimulateOutcome(rng *rand.Rand, sim *SimilarityMatrix, s JobSeeker, rec JobRef) (Outcome, error) {
	applied, ok := rec.Get()
	if !s.Treated || !ok {
		applied = rng.Intn(sim.NumJobs())
	}
	if applied < 0 || applied >= sim.NumJobs() {
		return Outcome{}, fmt.Errorf("seeker %d: applied job %d out of range [0, %d)", s.ID, applied, sim.NumJobs())
	}

	match := sim.At(s.ID, applied)
	retained, err := Bernoulli(rng, ClampProbability(match))
	if err != nil {
		return Outcome{}, fmt.Errorf("seeker %d: %w", s.ID, err)
	}
	wage := BaseWage + match*WageRange + rng.NormFloat64()*WageNoiseStdDev

	return Outcome{
		Seeker:      s,
		Recommended: rec,
		AppliedJob:  applied,
		MatchScore:  match,
		Retained:    retained,
		Wage:        wage,
	}, nil
}

// SimulateOutcomes runs SimulateOutcome for every seeker in order and
// returns a new outcome table. recs must be indexed like seekers.
func SimulateOutcomes(rng *rand.Rand, sim *SimilarityMatrix, seekers []JobSeeker, recs []JobRef) ([]Outcome, error) {
	if len(recs) != len(seekers) {
		return nil, fmt.Errorf("%w: %d recommendations for %d seekers", ErrDimensionMismatch, len(recs), len(seekers))
	}
	outcomes := make([]Outcome, len(seekers))
	for i, s := range seekers {
		o, err := SimulateOutcome(rng, sim, s, recs[i])
		if err != nil {
			return nil, err
		}
		outcomes[i] = o
	}
	return outcomes, nil
}
