package engine

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/qhabit/systems"
)

// Summary aggregates the whole session for rendering.
type Summary struct {
	AvgAmplitude      float64
	AvgPhase          float64
	ParticleCount     int
	EntanglementCount int
	AvgEnergyLevel    int
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("avg_amplitude", s.AvgAmplitude),
		slog.Float64("avg_phase", s.AvgPhase),
		slog.Int("particles", s.ParticleCount),
		slog.Int("entanglements", s.EntanglementCount),
		slog.Int("avg_energy_level", s.AvgEnergyLevel),
	)
}

// Summary averages amplitude and phase over every qubit (bound or not) and
// energy level over every habit with a level. Empty inputs average to 0.
func (s *Session) Summary() Summary {
	qubits := s.state.Qubits()
	amps := make([]float64, len(qubits))
	phases := make([]float64, len(qubits))
	for i, q := range qubits {
		amps[i] = q.Magnitude()
		phases[i] = q.Phase()
	}

	levels := make([]float64, 0, len(s.energy))
	for _, l := range s.energy {
		levels = append(levels, float64(l))
	}

	return Summary{
		AvgAmplitude:      mean(amps),
		AvgPhase:          mean(phases),
		ParticleCount:     s.particles.Count(),
		EntanglementCount: len(s.links),
		AvgEnergyLevel:    int(mean(levels)),
	}
}

// HabitVisualization is the per-habit slice of the session.
type HabitVisualization struct {
	HabitID       string
	Amplitude     float32
	Phase         float32
	Particles     []systems.Particle
	Entanglements []systems.Link
	EnergyLevel   int
}

// HabitView returns the qubit, particles, links and energy level of habitID.
// ok is false when the habit is not bound to a qubit.
func (s *Session) HabitView(habitID string) (v HabitVisualization, ok bool) {
	idx := s.state.IndexOf(habitID)
	if idx < 0 {
		return HabitVisualization{}, false
	}
	q, _ := s.state.Qubit(idx)

	v = HabitVisualization{
		HabitID:     habitID,
		Amplitude:   float32(q.Magnitude()),
		Phase:       float32(q.Phase()),
		EnergyLevel: s.energy[habitID],
	}
	for _, p := range s.particles.Snapshot() {
		if p.HabitID == habitID {
			v.Particles = append(v.Particles, p)
		}
	}
	for _, l := range s.links {
		if l.Touches(habitID) {
			v.Entanglements = append(v.Entanglements, l)
		}
	}
	return v, true
}

// mean is stat.Mean with an empty slice averaging to 0.
func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}
