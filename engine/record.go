package engine

import (
	"github.com/pthm-cable/qhabit/telemetry"
)

// Sample captures the session for a telemetry window flush.
func (s *Session) Sample() telemetry.Sample {
	sum := s.Summary()
	strengths := make([]float64, len(s.links))
	for i, l := range s.links {
		strengths[i] = float64(l.Strength)
	}

	levels := make([]float64, 0, len(s.energy))
	for _, l := range s.energy {
		levels = append(levels, float64(l))
	}

	return telemetry.Sample{
		AvgAmplitude:       sum.AvgAmplitude,
		AvgPhase:           sum.AvgPhase,
		TotalProbability:   s.state.TotalProbability(),
		Particles:          sum.ParticleCount,
		Entanglements:      sum.EntanglementCount,
		AvgEnergyLevel:     mean(levels),
		ParticleAmplitudes: s.particles.Amplitudes(),
		Strengths:          strengths,
	}
}

// Snapshot captures the qubits, links and energy levels at the current tick.
func (s *Session) Snapshot() *telemetry.Snapshot {
	qubits := s.state.Qubits()
	snap := &telemetry.Snapshot{
		Version:      telemetry.SnapshotVersion,
		RNGSeed:      s.seed,
		Tick:         s.tick,
		SimTime:      s.simTime,
		Qubits:       make([]telemetry.QubitState, len(qubits)),
		Links:        make([]telemetry.LinkState, len(s.links)),
		EnergyLevels: s.EnergyLevels(),
		Particles:    s.particles.Count(),
	}
	for i, q := range qubits {
		id, _ := s.state.HabitID(i)
		snap.Qubits[i] = telemetry.QubitState{
			Index:   i,
			HabitID: id,
			Real:    q.Real(),
			Imag:    q.Imag(),
		}
	}
	for i, l := range s.links {
		snap.Links[i] = telemetry.LinkState{
			HabitA:      l.HabitA,
			HabitB:      l.HabitB,
			Correlation: l.Correlation,
			Strength:    l.Strength,
		}
	}
	return snap
}
