package sim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// === SimulationKey ===

// SimulationKey identifies a reproducible simulation run.
// Two runs with the same SimulationKey and the same call sequence
// MUST produce identical predictions.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemBinary is the RNG subsystem for the binary classifier.
	// Uses the master seed directly, so a scenario seed and WithSeed agree.
	SubsystemBinary = "binary"

	// SubsystemMultiClass is the RNG subsystem for the multi-class classifier.
	SubsystemMultiClass = "multiclass"
)

// SubsystemClassifier returns the subsystem name for the named classifier.
// Used when one run drives several independent simulated classifiers.
func SubsystemClassifier(name string) string {
	return fmt.Sprintf("classifier_%s", name)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemBinary: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
// The returned *rand.Rand values are independent and may each be handed to
// a different goroutine.
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
	if name == SubsystemBinary {
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

// === Options ===

// Option configures the random source of a simulation.
type Option func(*sourceConfig)

type sourceConfig struct {
	seed *int64
	rng  *rand.Rand
}

// WithSeed seeds the simulation's private source deterministically.
func WithSeed(seed int64) Option {
	return func(c *sourceConfig) {
		c.seed = &seed
	}
}

// WithRand hands the simulation an existing source, e.g. one returned by
// PartitionedRNG.ForSubsystem. The simulation takes ownership of it.
// Takes precedence over WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(c *sourceConfig) {
		c.rng = rng
	}
}

// newSource resolves options into the *rand.Rand owned by one simulation.
// Without a seed or source, the seed is drawn from system entropy.
func newSource(kind string, opts []Option) *rand.Rand {
	var cfg sourceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng != nil {
		logrus.Debugf("%s simulation: using injected random source", kind)
		return cfg.rng
	}
	seed := entropySeed()
	if cfg.seed != nil {
		seed = *cfg.seed
	}
	logrus.Debugf("%s simulation: seed=%d", kind, seed)
	return rand.New(rand.NewSource(seed))
}

// entropySeed returns a seed from crypto/rand.
func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic(fmt.Sprintf("sim: reading entropy seed: %v", err))
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
