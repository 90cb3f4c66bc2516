package engine

import (
	"math"

	"github.com/pthm-cable/qhabit/quantum"
)

// InitialAmplitude maps a completion rate and streak to a qubit:
// magnitude sqrt(rate), phase streak·π/10.
func InitialAmplitude(rate float64, streak int) quantum.Scalar {
	return quantum.FromPolar(math.Sqrt(max(rate, 0)), float64(streak)*math.Pi/10)
}
