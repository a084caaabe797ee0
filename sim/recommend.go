package sim

import (
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// JobRef is an optional reference to a job listing.
// The zero value is NoJob.
type JobRef struct {
	id    int
	valid bool
}

// NoJob is the absent job reference.
var NoJob = JobRef{}

// SomeJob references job id.
func SomeJob(id int) JobRef {
	return JobRef{id: id, valid: true}
}

// Get returns the referenced job id and whether one is present.
func (r JobRef) Get() (int, bool) {
	return r.id, r.valid
}

// Valid reports whether a job is referenced.
func (r JobRef) Valid() bool {
	return r.valid
}

func (r JobRef) String() string {
	if !r.valid {
		return "none"
	}
	return strconv.Itoa(r.id)
}

// BestJob returns the job index with the highest similarity for seeker i.
// Ties go to the lowest job index.
func BestJob(sim *SimilarityMatrix, i int) int {
	return floats.MaxIdx(sim.Row(i))
}

// Recommend picks the single best-matching job for every treated seeker.
// Untreated seekers get NoJob. The result is indexed like seekers.
func Recommend(sim *SimilarityMatrix, seekers []JobSeeker) []JobRef {
	recs := make([]JobRef, len(seekers))
	for i, s := range seekers {
		if !s.Treated {
			continue
		}
		recs[i] = SomeJob(BestJob(sim, s.ID))
	}
	return recs
}
