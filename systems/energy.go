package systems

import (
	"math"

	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/habit"
	"github.com/pthm-cable/qhabit/quantum"
)

// EnergyLevel returns streak/StreakDivisor + difficulty/DifficultyDivisor,
// clamped to [0, MaxLevel].
func EnergyLevel(h habit.Habit, cfg config.EnergyConfig) int {
	level := h.Streak/cfg.StreakDivisor + int(h.Difficulty)/cfg.DifficultyDivisor
	return clampInt(level, 0, cfg.MaxLevel)
}

// EnergyLevels computes the initial level for each habit.
func EnergyLevels(habits []habit.Habit, cfg config.EnergyConfig) map[string]int {
	levels := make(map[string]int, len(habits))
	for _, h := range habits {
		levels[h.ID] = EnergyLevel(h, cfg)
	}
	return levels
}

// LiveEnergyLevels derives levels from the current state: amplitude scaled to
// maxLevel, nudged by sin(phase), rounded and clamped to [0, maxLevel].
// Only habits bound to a qubit appear in the result.
func LiveEnergyLevels(state *quantum.StateVector, maxLevel int) map[string]int {
	ids := state.HabitIDs()
	levels := make(map[string]int, len(ids))
	for i, id := range ids {
		q, ok := state.Qubit(i)
		if !ok {
			continue
		}
		raw := q.Magnitude()*float64(maxLevel) + math.Sin(q.Phase())
		levels[id] = clampInt(int(math.Round(raw)), 0, maxLevel)
	}
	return levels
}
