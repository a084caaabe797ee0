// Package sim provides the Monte Carlo engine for the job-recommendation
// simulation.
//
// # Reading Guide
//
// The pipeline runs leaves first:
//   - profile.go: synthetic job seekers and job listings
//   - similarity.go: L2-normalized cosine similarity table (computed once)
//   - recommend.go: best-job recommendation for treated seekers
//   - outcome.go: applied job, retention and wage per seeker
//   - aggregate.go: grouped means by treatment (and skill group)
//   - simulator.go: baseline run plus repeated runs
//   - distribution.go: quartiles and treatment effects across runs
//
// # Reproducibility
//
// All randomness comes from a PartitionedRNG (rng.go) seeded by a
// SimulationKey. The same key and Config produce bit-identical profiles,
// similarity table and outcomes. Nothing in this package touches the global
// math/rand source.
//
// # Edge cases
//
// A zero-magnitude skill vector stays zero after normalization, so its
// similarity with every job is 0. Match scores are clamped to [0, 1] before
// being used as a retention probability. Wages are never clamped. Empty
// aggregation groups report NaN means and ErrEmptyGroup via GroupStats.Err.
//
// Result sinks (parquet, JSON) live in sim/output/.
package sim
