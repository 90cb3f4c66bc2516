package systems

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/habit"
	"github.com/pthm-cable/qhabit/quantum"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return config.Default()
}

func days(ns ...int) []time.Time {
	out := make([]time.Time, len(ns))
	for i, n := range ns {
		out[i] = testNow.Add(-time.Duration(n) * 24 * time.Hour)
	}
	return out
}

// uniformState returns a normalized vector with equal weight on every qubit.
func uniformState(capacity int, ids ...string) *quantum.StateVector {
	v := quantum.NewStateVector(capacity)
	for i := range capacity {
		v.Set(i, quantum.FromPolar(1, float64(i)*0.4))
	}
	v.Normalize()
	v.Bind(ids)
	return v
}

func testHabits(ids ...string) []habit.Habit {
	out := make([]habit.Habit, len(ids))
	for i, id := range ids {
		out[i] = habit.Habit{ID: id, CreatedAt: testNow.Add(-30 * 24 * time.Hour)}
	}
	return out
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
