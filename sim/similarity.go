package sim

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyProfiles is returned when there are no seekers, jobs or skill dimensions.
	ErrEmptyProfiles = errors.New("empty profiles")
	// ErrDimensionMismatch is returned when feature vectors differ in length.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Normalize returns v scaled to unit L2 length.
// A zero-magnitude vector is returned unchanged (as a copy), so its cosine
// similarity with any other vector is 0.
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	norm := floats.Norm(out, 2)
	if norm == 0 {
		return out
	}
	floats.Scale(1/norm, out)
	return out
}

// SimilarityMatrix is the dense seekers × jobs cosine similarity table.
// It is computed once per simulation and is read-only afterwards.
type SimilarityMatrix struct {
	dense *mat.Dense

	// DegenerateSeekers and DegenerateJobs count zero-magnitude feature
	// vectors. Their rows/columns are all zero.
	DegenerateSeekers int
	DegenerateJobs    int
}

// ComputeSimilarity L2-normalizes both matrices row-wise and returns the
// table of pairwise dot products. Entries are clipped to [-1, 1] to absorb
// floating-point overshoot on near-parallel vectors.
func ComputeSimilarity(seekers, jobs [][]float64) (*SimilarityMatrix, error) {
	if len(seekers) == 0 || len(jobs) == 0 {
		return nil, fmt.Errorf("%w: %d seekers, %d jobs", ErrEmptyProfiles, len(seekers), len(jobs))
	}
	dims := len(seekers[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: no skill dimensions", ErrEmptyProfiles)
	}

	s, degenerateSeekers, err := normalizedDense(seekers, dims)
	if err != nil {
		return nil, fmt.Errorf("seekers: %w", err)
	}
	j, degenerateJobs, err := normalizedDense(jobs, dims)
	if err != nil {
		return nil, fmt.Errorf("jobs: %w", err)
	}

	var out mat.Dense
	out.Mul(s, j.T())
	out.Apply(func(_, _ int, v float64) float64 {
		if v > 1 {
			return 1
		}
		if v < -1 {
			return -1
		}
		return v
	}, &out)

	return &SimilarityMatrix{
		dense:             &out,
		DegenerateSeekers: degenerateSeekers,
		DegenerateJobs:    degenerateJobs,
	}, nil
}

func normalizedDense(rows [][]float64, dims int) (*mat.Dense, int, error) {
	m := mat.NewDense(len(rows), dims, nil)
	degenerate := 0
	for i, row := range rows {
		if len(row) != dims {
			return nil, 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), dims)
		}
		v := Normalize(row)
		if floats.Norm(v, 2) == 0 {
			degenerate++
		}
		m.SetRow(i, v)
	}
	return m, degenerate, nil
}

// NumSeekers returns the number of rows.
func (m *SimilarityMatrix) NumSeekers() int {
	r, _ := m.dense.Dims()
	return r
}

// NumJobs returns the number of columns.
func (m *SimilarityMatrix) NumJobs() int {
	_, c := m.dense.Dims()
	return c
}

// At returns the similarity between seeker i and job j.
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Row returns a copy of seeker i's similarities to every job.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.dense)
}

// Equal reports whether two tables are element-wise identical.
func (m *SimilarityMatrix) Equal(other *SimilarityMatrix) bool {
	if other == nil {
		return false
	}
	return mat.Equal(m.dense, other.dense)
}
