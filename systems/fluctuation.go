package systems

import (
	"math/rand"

	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/quantum"
)

// Fluctuate rolls against cfg.Chance and, on success, rotates one random
// qubit by an angle in [0, cfg.MaxAngle) and renormalizes. It returns the
// affected index, or -1 when nothing happened.
func Fluctuate(state *quantum.StateVector, rng *rand.Rand, cfg config.FluctuationConfig) int {
	if state.Len() == 0 || rng.Float64() >= cfg.Chance {
		return -1
	}
	idx := rng.Intn(state.Len())
	angle := rng.Float64() * cfg.MaxAngle
	state.Phase(idx, angle)
	return idx
}
