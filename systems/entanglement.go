package systems

import (
	"io"
	"math"
	"slices"

	"github.com/pthm-cable/qhabit/components"
	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/habit"
	"github.com/pthm-cable/qhabit/quantum"
)

// Link is a derived correlation between the qubits of two habits.
// QubitA < QubitB; at most one link exists per pair.
type Link struct {
	ID          string
	QubitA      int
	QubitB      int
	HabitA      string
	HabitB      string
	Correlation float32 // completion-history correlation at derivation time
	Strength    float32 // Correlation plus the per-tick wobble
	Color       components.Color
}

// Touches reports whether the link involves habitID.
func (l Link) Touches(habitID string) bool {
	return l.HabitA == habitID || l.HabitB == habitID
}

// DeriveEntanglements correlates every pair of the first capacity habits and
// returns a link for each pair whose correlation exceeds threshold.
// Link IDs are drawn from src.
func DeriveEntanglements(habits []habit.Habit, completions habit.Completions, capacity int, threshold float64, src io.Reader) []Link {
	n := min(len(habits), capacity)
	var links []Link
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := habits[i], habits[j]
			corr := habit.Correlation(completions.For(a.ID), completions.For(b.ID))
			if corr <= threshold {
				continue
			}
			links = append(links, Link{
				ID:          newID(src),
				QubitA:      i,
				QubitB:      j,
				HabitA:      a.ID,
				HabitB:      b.ID,
				Correlation: float32(corr),
				Strength:    float32(corr),
				Color:       BlendColors(QubitColor(i, capacity), QubitColor(j, capacity)),
			})
		}
	}
	return links
}

// PropagateEntanglements applies the correlated flip for every link (qubit B
// is flipped when qubit A's magnitude exceeds controlThreshold), then
// normalizes once. It returns the number of flips.
func PropagateEntanglements(state *quantum.StateVector, links []Link, controlThreshold float64) int {
	flips := 0
	for _, l := range links {
		if state.ControlledFlip(l.QubitA, l.QubitB, controlThreshold) {
			flips++
		}
	}
	state.Normalize()
	return flips
}

// FluctuateStrengths sets each link's strength to its correlation plus a
// bounded sinusoidal wobble at simTime, clamped to the configured range.
func FluctuateStrengths(links []Link, simTime float64, cfg config.EntanglementConfig) {
	wobble := cfg.Fluctuation * math.Sin(cfg.FluctuationRate*simTime)
	lo, hi := float32(cfg.MinStrength), float32(cfg.MaxStrength)
	for i := range links {
		links[i].Strength = clampFloat(links[i].Correlation+float32(wobble), lo, hi)
	}
}

// CloneLinks returns a copy of links safe to hand to readers.
func CloneLinks(links []Link) []Link {
	return slices.Clone(links)
}
