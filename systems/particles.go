// Package systems contains the per-tick systems of the habit simulation:
// particle integration, entanglement links, energy levels and fluctuations.
package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/qhabit/components"
	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/quantum"
)

// Particle is a read-only snapshot of one visualization particle.
type Particle struct {
	ID         string
	Position   components.Position
	Velocity   components.Velocity
	Amplitude  float32
	Phase      float32
	QubitIndex int
	HabitID    string // empty when the qubit has no habit bound
	Color      components.Color
	Size       float32
}

// ParticleSystem owns the particle population as entities of an ECS world.
// The population is fixed between calls to Spawn.
type ParticleSystem struct {
	cfg *config.Config

	world  *ecs.World
	mapper *ecs.Map5[components.Position, components.Velocity, components.Wave, components.Binding, components.Appearance]
	filter *ecs.Filter5[components.Position, components.Velocity, components.Wave, components.Binding, components.Appearance]
	count  int
}

// NewParticleSystem creates an empty particle system.
func NewParticleSystem(cfg *config.Config) *ParticleSystem {
	s := &ParticleSystem{cfg: cfg}
	s.reset()
	return s
}

// reset replaces the ECS world with an empty one.
func (s *ParticleSystem) reset() {
	s.world = ecs.NewWorld()
	s.mapper = ecs.NewMap5[components.Position, components.Velocity, components.Wave, components.Binding, components.Appearance](s.world)
	s.filter = ecs.NewFilter5[components.Position, components.Velocity, components.Wave, components.Binding, components.Appearance](s.world)
	s.count = 0
}

// PopulationFor returns how many particles qubit s receives:
// |s|² · population / capacity, truncated.
func PopulationFor(s quantum.Scalar, population, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(s.MagnitudeSquared() * float64(population) / float64(capacity))
}

// Spawn discards the current population and seeds a new one from state.
// Each particle starts at a random point within scale·amplitude of the
// origin, heading along the qubit phase offset by its spawn angle.
func (s *ParticleSystem) Spawn(state *quantum.StateVector, rng *rand.Rand) {
	s.reset()

	p := s.cfg.Particles
	capacity := state.Len()
	for i := range capacity {
		q, _ := state.Qubit(i)
		habitID, _ := state.HabitID(i)
		amplitude := q.Magnitude()
		phase := q.Phase()
		color := QubitColor(i, capacity)

		n := PopulationFor(q, p.Population, capacity)
		for range n {
			angle := rng.Float64() * 2 * math.Pi
			radius := rng.Float64() * p.Scale * amplitude
			speed := p.MinSpeed + rng.Float64()*s.cfg.Derived.SpeedRange

			pos := components.Position{
				X: float32(math.Cos(angle) * radius),
				Y: float32(math.Sin(angle) * radius),
			}
			vel := components.Velocity{
				X: float32(math.Cos(phase+angle) * speed),
				Y: float32(math.Sin(phase+angle) * speed),
			}
			wave := components.Wave{Amplitude: float32(amplitude), Phase: float32(phase)}
			binding := components.Binding{ID: newID(rng), QubitIndex: i, HabitID: habitID}
			look := components.Appearance{Color: color, Size: float32(p.Size)}

			s.mapper.NewEntity(&pos, &vel, &wave, &binding, &look)
			s.count++
		}
	}
}

// Update integrates every particle by one tick at simulation time simTime:
// position follows velocity, amplitude eases toward the live qubit
// magnitude, phase drifts, and the velocity direction turns by the
// superposition and interference terms while keeping its speed.
// Particles bound to an index outside state keep their amplitude.
func (s *ParticleSystem) Update(state *quantum.StateVector, simTime float64) {
	p := s.cfg.Particles
	d := s.cfg.Derived
	dt := d.DT32
	t := float32(simTime)

	pull := float32(p.AmplitudePull)
	minAmp, maxAmp := float32(p.MinAmplitude), float32(p.MaxAmplitude)
	phaseStep := float32(p.PhaseDrift) * sin32(t)
	superposition := sin32(2*t) * d.SuperpositionFactor32

	query := s.filter.Query()
	for query.Next() {
		pos, vel, wave, binding, _ := query.Get()

		// interference samples the position at the start of the tick
		interference := cos32(pos.X/d.InterferenceWavelength+t) * d.InterferenceFactor32

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		if q, ok := state.Qubit(binding.QubitIndex); ok {
			target := float32(q.Magnitude())
			wave.Amplitude = clampFloat(wave.Amplitude+(target-wave.Amplitude)*pull, minAmp, maxAmp)
		}
		wave.Phase += phaseStep

		speed := velocityMagnitude(vel.X, vel.Y)
		direction := float32(math.Atan2(float64(vel.Y), float64(vel.X))) + superposition + interference
		vel.X = speed * cos32(direction)
		vel.Y = speed * sin32(direction)
	}
}

// Drift applies the render-only wobble: a small positional nudge from each
// particle's phase and a phase advance of one dt, wrapped to [0, 2π).
func (s *ParticleSystem) Drift() {
	dt := s.cfg.Derived.DT32
	step := float32(s.cfg.Particles.DriftStep)

	query := s.filter.Query()
	for query.Next() {
		pos, _, wave, _, _ := query.Get()
		pos.X += sin32(wave.Phase+dt) * step
		pos.Y += cos32(wave.Phase+2*dt) * step
		wave.Phase = normalizeHeading(wave.Phase + dt)
	}
}

// Snapshot copies the current population. The result is owned by the caller
// and is not affected by later ticks.
func (s *ParticleSystem) Snapshot() []Particle {
	out := make([]Particle, 0, s.count)
	query := s.filter.Query()
	for query.Next() {
		pos, vel, wave, binding, look := query.Get()
		out = append(out, Particle{
			ID:         binding.ID,
			Position:   *pos,
			Velocity:   *vel,
			Amplitude:  wave.Amplitude,
			Phase:      wave.Phase,
			QubitIndex: binding.QubitIndex,
			HabitID:    binding.HabitID,
			Color:      look.Color,
			Size:       look.Size,
		})
	}
	return out
}

// Amplitudes returns the current particle amplitudes.
func (s *ParticleSystem) Amplitudes() []float64 {
	out := make([]float64, 0, s.count)
	query := s.filter.Query()
	for query.Next() {
		_, _, wave, _, _ := query.Get()
		out = append(out, float64(wave.Amplitude))
	}
	return out
}

// Count returns the number of particles.
func (s *ParticleSystem) Count() int {
	return s.count
}
