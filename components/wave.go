package components

// Wave holds the per-particle amplitude and phase that track the owning qubit.
type Wave struct {
	Amplitude float32 // pulled toward the qubit magnitude, clamped to the configured range
	Phase     float32 // radians, unbounded during ticks
}

// Binding ties a particle to the qubit (and habit) it visualizes.
type Binding struct {
	ID         string
	QubitIndex int
	HabitID    string // empty when the qubit has no habit bound
}
