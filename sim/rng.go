package sim

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemProfiles draws seeker/job features and the initial treatment.
	// Uses the master seed directly.
	SubsystemProfiles = "profiles"

	// SubsystemTreatment re-draws treatment assignment for every run.
	SubsystemTreatment = "treatment"

	// SubsystemOutcomes draws applied jobs, retention and wage noise.
	SubsystemOutcomes = "outcomes"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemProfiles: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Isolation keeps the generated profiles identical no matter how many runs
// are simulated afterwards.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemProfiles {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Draws ===

// ErrInvalidProbability is returned when a value outside [0, 1] is used as a
// Bernoulli success probability.
var ErrInvalidProbability = errors.New("invalid probability")

// Bernoulli draws a single trial with success probability p.
// Exactly one uniform value is consumed per call, including for p == 0 and p == 1.
func Bernoulli(rng *rand.Rand, p float64) (bool, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return false, fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return rng.Float64() < p, nil
}

// ClampProbability maps v into [0, 1]. NaN maps to 0.
func ClampProbability(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
