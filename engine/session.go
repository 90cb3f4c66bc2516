// Package engine ties the state vector, particle system and entanglement
// links into a single-writer simulation session.
package engine

import (
	"log/slog"
	"maps"
	"math/rand"
	"time"

	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/habit"
	"github.com/pthm-cable/qhabit/quantum"
	"github.com/pthm-cable/qhabit/systems"
	"github.com/pthm-cable/qhabit/telemetry"
)

// Options configures a Session.
type Options struct {
	Config *config.Config   // nil = embedded defaults
	Seed   int64            // used when Rand is nil
	Rand   *rand.Rand       // random source for spawning, IDs and fluctuations
	Clock  func() time.Time // nil = time.Now; drives completion rates
	Logger *slog.Logger     // nil = slog.Default()

	// Collector receives per-tick event counts. May be nil.
	Collector *telemetry.Collector
	// Perf times the phases of each tick. May be nil.
	Perf *telemetry.PerfCollector
}

// Session owns all mutable simulation state for one habit batch.
//
// A Session is not safe for concurrent use: Initialize, AdvanceTick, Drift
// and RefreshEnergyLevels must be called from a single goroutine. The
// snapshot accessors return copies, so readers may keep them across ticks.
type Session struct {
	seed      int64
	cfg       *config.Config
	rng       *rand.Rand
	clock     func() time.Time
	log       *slog.Logger
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	state     *quantum.StateVector
	particles *systems.ParticleSystem
	links     []systems.Link
	energy    map[string]int

	tick    int
	simTime float64
}

// New creates a session with an all-zero state and no habits bound.
// Call Initialize to load a habit batch.
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		seed:      opts.Seed,
		cfg:       cfg,
		rng:       rng,
		clock:     clock,
		log:       logger,
		collector: opts.Collector,
		perf:      opts.Perf,
		state:     quantum.NewStateVector(cfg.Engine.Qubits),
		particles: systems.NewParticleSystem(cfg),
		energy:    make(map[string]int),
	}
}

// Initialize replaces the session state with one built from habits.
//
// Only the first Engine.Qubits habits are bound to qubits; the rest are
// ignored. Each bound habit gets amplitude sqrt(completion rate) and phase
// streak·π/10, then the vector is normalized. A batch with no history at all
// leaves the all-zero vector in place. Particles, links and energy levels are
// rebuilt from the new state, and the tick counter restarts at zero.
func (s *Session) Initialize(habits []habit.Habit, completions habit.Completions) {
	now := s.clock()
	capacity := s.cfg.Engine.Qubits

	state := quantum.NewStateVector(capacity)
	ids := make([]string, 0, min(len(habits), capacity))
	for i, h := range habits {
		if i >= capacity {
			break
		}
		rate := habit.CompletionRate(h, completions.For(h.ID), now)
		state.Set(i, InitialAmplitude(rate, h.Streak))
		ids = append(ids, h.ID)
	}
	state.Bind(ids)
	state.Normalize()

	if len(habits) > capacity {
		s.log.Debug("habit batch truncated", "supplied", len(habits), "capacity", capacity)
	}

	bound := habits[:len(ids)]
	s.state = state
	s.particles.Spawn(state, s.rng)
	s.links = systems.DeriveEntanglements(bound, completions, capacity, s.cfg.Entanglement.Threshold, s.rng)
	s.energy = systems.EnergyLevels(bound, s.cfg.Energy)
	s.tick = 0
	s.simTime = 0

	s.log.Debug("initialized habit state",
		"habits", len(ids),
		"particles", s.particles.Count(),
		"entanglements", len(s.links),
		"total_probability", state.TotalProbability(),
	)
}

// AdvanceTick runs one simulation step: the Hadamard and phase gates, the
// entanglement flips, particle integration, link-strength wobble and, with
// the configured probability, a random qubit fluctuation. The state is
// normalized after every step that mutates it.
func (s *Session) AdvanceTick() {
	e := s.cfg.Engine
	s.perf.StartTick()
	defer s.perf.EndTick()

	s.tick++
	s.simTime += e.DT

	s.perf.StartPhase(telemetry.PhaseGates)
	s.state.Hadamard(e.HadamardIndex)
	s.state.Phase(e.PhaseIndex, s.simTime)

	s.perf.StartPhase(telemetry.PhaseEntanglement)
	flips := systems.PropagateEntanglements(s.state, s.links, s.cfg.Entanglement.ControlThreshold)
	s.collector.RecordFlips(flips)

	s.perf.StartPhase(telemetry.PhaseParticles)
	s.particles.Update(s.state, s.simTime)
	systems.FluctuateStrengths(s.links, s.simTime, s.cfg.Entanglement)

	s.perf.StartPhase(telemetry.PhaseFluctuation)
	if idx := systems.Fluctuate(s.state, s.rng, s.cfg.Fluctuation); idx >= 0 {
		s.collector.RecordFluctuation()
		s.log.Debug("qubit fluctuation", "tick", s.tick, "qubit", idx)
	}
}

// Drift runs the render-only particle wobble and refreshes energy levels
// from the live state. The state vector is not modified.
func (s *Session) Drift() {
	s.particles.Drift()
	s.RefreshEnergyLevels()
}

// RefreshEnergyLevels recomputes energy levels from the current amplitudes
// and phases of the bound habits.
func (s *Session) RefreshEnergyLevels() {
	s.energy = systems.LiveEnergyLevels(s.state, s.cfg.Energy.MaxLevel)
}

// Tick returns the number of ticks since the last Initialize.
func (s *Session) Tick() int {
	return s.tick
}

// SimTime returns the simulated seconds since the last Initialize.
func (s *Session) SimTime() float64 {
	return s.simTime
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// State returns a copy of the current state vector.
func (s *Session) State() *quantum.StateVector {
	return s.state.Clone()
}

// Particles returns a snapshot of the particle population.
func (s *Session) Particles() []systems.Particle {
	return s.particles.Snapshot()
}

// Entanglements returns a snapshot of the entanglement links.
func (s *Session) Entanglements() []systems.Link {
	return systems.CloneLinks(s.links)
}

// EnergyLevels returns a snapshot of the habit energy levels.
func (s *Session) EnergyLevels() map[string]int {
	return maps.Clone(s.energy)
}

// ParticleAmplitudes returns the current particle amplitudes.
func (s *Session) ParticleAmplitudes() []float64 {
	return s.particles.Amplitudes()
}
