// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator owns one generated population and its similarity table.
// Both are built once in NewSimulator and shared read-only by every run;
// only treatment assignment and outcomes change between runs.
type Simulator struct {
	Config     Config
	Profiles   *Profiles
	Similarity *SimilarityMatrix

	rng *PartitionedRNG
}

// Baseline is the first run, simulated with the generator's own treatment
// assignment. Its outcome table is the one written to disk.
type Baseline struct {
	Outcomes    []Outcome
	Groups      []GroupStats // by treatment
	SkillGroups []GroupStats // by skill group and treatment
}

// RunAggregate is one group's means from one repeated run.
type RunAggregate struct {
	Run int
	GroupStats
}

// Results collects everything a simulation produces.
type Results struct {
	Baseline *Baseline
	Runs     []RunAggregate
}

// NewSimulator validates cfg, generates the population from the profiles
// RNG subsystem and computes the similarity table.
func NewSimulator(cfg Config, key SimulationKey) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(key)
	profiles := GenerateProfiles(rng.ForSubsystem(SubsystemProfiles), cfg.NumSeekers, cfg.NumJobs, len(cfg.Skills), cfg.TreatmentProb)

	similarity, err := ComputeSimilarity(profiles.SeekerMatrix(), profiles.JobMatrix())
	if err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}
	if similarity.DegenerateSeekers > 0 || similarity.DegenerateJobs > 0 {
		logrus.Warnf("zero-magnitude skill vectors: %d seekers, %d jobs (similarity 0 with everything)",
			similarity.DegenerateSeekers, similarity.DegenerateJobs)
	}

	return &Simulator{
		Config:     cfg,
		Profiles:   profiles,
		Similarity: similarity,
		rng:        rng,
	}, nil
}

// SimulateRun recommends jobs for the treated seekers and simulates every
// seeker's outcome against the shared similarity table.
func (s *Simulator) SimulateRun(seekers []JobSeeker) ([]Outcome, error) {
	recs := Recommend(s.Similarity, seekers)
	return SimulateOutcomes(s.rng.ForSubsystem(SubsystemOutcomes), s.Similarity, seekers, recs)
}

// Baseline simulates run 0 with the treatment drawn at generation time.
func (s *Simulator) Baseline() (*Baseline, error) {
	outcomes, err := s.SimulateRun(s.Profiles.Seekers)
	if err != nil {
		return nil, fmt.Errorf("baseline run: %w", err)
	}
	b := &Baseline{
		Outcomes:    outcomes,
		Groups:      Aggregate(outcomes),
		SkillGroups: AggregateBySkill(outcomes),
	}
	for _, g := range append(b.Groups, b.SkillGroups...) {
		if err := g.Err(); err != nil {
			logrus.Warnf("baseline: %v", err)
		}
	}
	return b, nil
}

// Run performs Config.NumRuns repetitions. Each run re-draws treatment for
// every seeker, recomputes recommendations, re-simulates outcomes and
// appends one RunAggregate per treatment group.
func (s *Simulator) Run() ([]RunAggregate, error) {
	treatmentRNG := s.rng.ForSubsystem(SubsystemTreatment)
	rows := make([]RunAggregate, 0, s.Config.NumRuns*len(TreatmentGroups))

	for run := 0; run < s.Config.NumRuns; run++ {
		treated := AssignTreatment(treatmentRNG, len(s.Profiles.Seekers), s.Config.TreatmentProb)
		seekers := WithTreatment(s.Profiles.Seekers, treated)

		outcomes, err := s.SimulateRun(seekers)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", run, err)
		}
		for _, g := range Aggregate(outcomes) {
			if err := g.Err(); err != nil {
				logrus.Warnf("run %d: %v", run, err)
			}
			rows = append(rows, RunAggregate{Run: run, GroupStats: g})
		}
		logrus.Debugf("run %d/%d complete", run+1, s.Config.NumRuns)
	}
	return rows, nil
}

// Execute runs the baseline followed by the repeated runs.
func (s *Simulator) Execute() (*Results, error) {
	baseline, err := s.Baseline()
	if err != nil {
		return nil, err
	}
	runs, err := s.Run()
	if err != nil {
		return nil, err
	}
	return &Results{Baseline: baseline, Runs: runs}, nil
}
