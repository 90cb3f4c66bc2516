package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TickStats holds aggregated statistics for a window of ticks.
type TickStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State vector at window end
	AvgAmplitude     float64 `csv:"avg_amplitude"`
	AvgPhase         float64 `csv:"avg_phase"`
	TotalProbability float64 `csv:"total_probability"`

	// Populations
	Particles     int `csv:"particles"`
	Entanglements int `csv:"entanglements"`

	// Particle amplitude distribution (sampled at window end)
	ParticleAmpMean float64 `csv:"particle_amp_mean"`
	ParticleAmpP10  float64 `csv:"particle_amp_p10"`
	ParticleAmpP50  float64 `csv:"particle_amp_p50"`
	ParticleAmpP90  float64 `csv:"particle_amp_p90"`

	MeanStrength   float64 `csv:"mean_strength"`
	AvgEnergyLevel float64 `csv:"avg_energy_level"`

	// Events during window
	Flips        int `csv:"flips"`
	Fluctuations int `csv:"fluctuations"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution calculates mean and percentiles of values.
func Distribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s TickStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("avg_amplitude", s.AvgAmplitude),
		slog.Float64("avg_phase", s.AvgPhase),
		slog.Float64("total_probability", s.TotalProbability),
		slog.Int("particles", s.Particles),
		slog.Int("entanglements", s.Entanglements),
		slog.Float64("particle_amp_mean", s.ParticleAmpMean),
		slog.Float64("particle_amp_p10", s.ParticleAmpP10),
		slog.Float64("particle_amp_p50", s.ParticleAmpP50),
		slog.Float64("particle_amp_p90", s.ParticleAmpP90),
		slog.Float64("mean_strength", s.MeanStrength),
		slog.Float64("avg_energy_level", s.AvgEnergyLevel),
		slog.Int("flips", s.Flips),
		slog.Int("fluctuations", s.Fluctuations),
	)
}

// LogStats logs the window stats using slog.
func (s TickStats) LogStats() {
	slog.Info("stats", "window", s)
}
