package telemetry

// Collector accumulates tick events within windows and produces TickStats.
// All methods are safe to call on a nil Collector.
type Collector struct {
	windowTicks int
	dt          float64

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	flips        int
	fluctuations int
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window spans
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		dt:          dt,
	}
}

// RecordFlips records entanglement flips applied in one tick.
func (c *Collector) RecordFlips(n int) {
	if c == nil {
		return
	}
	c.flips += n
}

// RecordFluctuation records a random qubit fluctuation.
func (c *Collector) RecordFluctuation() {
	if c == nil {
		return
	}
	c.fluctuations++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	if c == nil {
		return false
	}
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Sample is the session state captured at a window boundary.
type Sample struct {
	AvgAmplitude       float64
	AvgPhase           float64
	TotalProbability   float64
	Particles          int
	Entanglements      int
	AvgEnergyLevel     float64
	ParticleAmplitudes []float64
	Strengths          []float64
}

// Flush produces a TickStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, sample Sample) TickStats {
	if c == nil {
		return TickStats{}
	}

	ampMean, ampP10, ampP50, ampP90 := Distribution(sample.ParticleAmplitudes)
	strength, _, _, _ := Distribution(sample.Strengths)

	stats := TickStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		AvgAmplitude:     sample.AvgAmplitude,
		AvgPhase:         sample.AvgPhase,
		TotalProbability: sample.TotalProbability,

		Particles:     sample.Particles,
		Entanglements: sample.Entanglements,

		ParticleAmpMean: ampMean,
		ParticleAmpP10:  ampP10,
		ParticleAmpP50:  ampP50,
		ParticleAmpP90:  ampP90,

		MeanStrength:   strength,
		AvgEnergyLevel: sample.AvgEnergyLevel,

		Flips:        c.flips,
		Fluctuations: c.fluctuations,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.flips = 0
	c.fluctuations = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	if c == nil {
		return 0
	}
	return c.windowTicks
}
