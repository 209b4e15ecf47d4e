package sim

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// === SimulationKey ===

// SimulationKey identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical factory configuration
// produce identical timelines and statistics.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// NewRandomSimulationKey draws a non-deterministic key from the wall clock.
// Callers log the returned key so a surprising run can be replayed with --seed.
func NewRandomSimulationKey() SimulationKey {
	return SimulationKey(time.Now().UnixNano())
}

// === Subsystem Names ===

// SubsystemFailure prefixes the failure-threshold streams.
const SubsystemFailure = "failure"

// SubsystemMachineType returns the failure stream name for a machine type.
// Streams are keyed by type name, not position, so adding, removing or
// reordering machine types leaves every other type's draws unchanged.
func SubsystemMachineType(name string) string {
	return SubsystemFailure + "/" + name
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName)
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
// The same subsystem name always returns the same *rand.Rand instance (cached),
// so repeated calls continue one stream instead of re-seeding it.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key) ^ fnv1a64(name)
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
