package components

// Position represents a particle's position in visualization space.
type Position struct {
	X, Y float32
}

// Velocity represents a particle's velocity in units per simulated second.
type Velocity struct {
	X, Y float32
}
