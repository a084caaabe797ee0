package sim

import "math/rand"

// DefaultSkills is the fixed skill vocabulary shared by seekers and jobs.
// Column order here is the feature-vector order everywhere else.
var DefaultSkills = []string{
	"Python",
	"Excel",
	"Sales",
	"Writing",
	"Data Analysis",
	"Marketing",
	"Machine Learning",
	"SQL",
	"Communication",
	"Management",
}

// SkillGroupThreshold splits seekers into Low/High skill by their skill total.
const SkillGroupThreshold = 5.0

// SkillGroup is the derived skill-level subgroup of a seeker.
type SkillGroup string

const (
	SkillGroupLow  SkillGroup = "Low Skill"
	SkillGroupHigh SkillGroup = "High Skill"
)

// JobSeeker is a synthetic job seeker. Skills are ratings in [0, 1).
type JobSeeker struct {
	ID      int
	Treated bool
	Skills  []float64
}

// SkillTotal is the sum of all skill ratings.
func (s JobSeeker) SkillTotal() float64 {
	total := 0.0
	for _, v := range s.Skills {
		total += v
	}
	return total
}

// SkillGroup classifies the seeker by SkillTotal against SkillGroupThreshold.
func (s JobSeeker) SkillGroup() SkillGroup {
	if s.SkillTotal() < SkillGroupThreshold {
		return SkillGroupLow
	}
	return SkillGroupHigh
}

// JobListing is a synthetic job listing. Skills are required levels in [0, 1).
// Listings are generated once and never mutated.
type JobListing struct {
	ID     int
	Skills []float64
}

// Profiles holds one generated population.
type Profiles struct {
	Seekers []JobSeeker
	Jobs    []JobListing
}

// GenerateProfiles draws a population from rng.
//
// Draw order is fixed: every seeker's treatment flag, then one column of
// seeker ratings per skill, then one column of job requirements per skill.
// Changing the order changes every downstream number for a given seed.
func GenerateProfiles(rng *rand.Rand, numSeekers, numJobs, numSkills int, treatmentProb float64) *Profiles {
	treated := AssignTreatment(rng, numSeekers, treatmentProb)

	seekers := make([]JobSeeker, numSeekers)
	for i := range seekers {
		seekers[i] = JobSeeker{ID: i, Treated: treated[i], Skills: make([]float64, numSkills)}
	}
	for k := 0; k < numSkills; k++ {
		for i := range seekers {
			seekers[i].Skills[k] = rng.Float64()
		}
	}

	jobs := make([]JobListing, numJobs)
	for j := range jobs {
		jobs[j] = JobListing{ID: j, Skills: make([]float64, numSkills)}
	}
	for k := 0; k < numSkills; k++ {
		for j := range jobs {
			jobs[j].Skills[k] = rng.Float64()
		}
	}

	return &Profiles{Seekers: seekers, Jobs: jobs}
}

// AssignTreatment draws n independent Bernoulli(p) treatment flags.
// p outside [0, 1] is clamped.
func AssignTreatment(rng *rand.Rand, n int, p float64) []bool {
	p = ClampProbability(p)
	treated := make([]bool, n)
	for i := range treated {
		treated[i] = rng.Float64() < p
	}
	return treated
}

// WithTreatment returns a copy of seekers carrying the given treatment flags.
// Skill slices are shared; they are read-only after generation.
func WithTreatment(seekers []JobSeeker, treated []bool) []JobSeeker {
	out := make([]JobSeeker, len(seekers))
	for i, s := range seekers {
		s.Treated = treated[i]
		out[i] = s
	}
	return out
}

// SeekerMatrix returns the seeker skill vectors as rows.
func (p *Profiles) SeekerMatrix() [][]float64 {
	rows := make([][]float64, len(p.Seekers))
	for i, s := range p.Seekers {
		rows[i] = s.Skills
	}
	return rows
}

// JobMatrix returns the job requirement vectors as rows.
func (p *Profiles) JobMatrix() [][]float64 {
	rows := make([][]float64, len(p.Jobs))
	for j, job := range p.Jobs {
		rows[j] = job.Skills
	}
	return rows
}
