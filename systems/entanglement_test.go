package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/qhabit/habit"
	"github.com/pthm-cable/qhabit/quantum"
)

func TestDeriveEntanglementsThreshold(t *testing.T) {
	habits := testHabits("read", "write", "swim")
	completions := habit.Completions{
		"read":  days(1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
		"write": days(1, 2, 3, 4, 5, 6, 7, 8, 15, 16),
		"swim":  days(20, 21, 22, 23),
	}

	links := DeriveEntanglements(habits, completions, 8, 0.7, newRand())
	require.Len(t, links, 1)

	l := links[0]
	assert.Equal(t, 0, l.QubitA)
	assert.Equal(t, 1, l.QubitB)
	assert.Equal(t, "read", l.HabitA)
	assert.Equal(t, "write", l.HabitB)
	assert.InDelta(t, 0.8, l.Strength, 1e-6)
	assert.InDelta(t, 0.8, l.Correlation, 1e-6)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, BlendColors(QubitColor(0, 8), QubitColor(1, 8)), l.Color)
	assert.True(t, l.Touches("write"))
	assert.False(t, l.Touches("swim"))
}

func TestDeriveEntanglementsStrictThreshold(t *testing.T) {
	habits := testHabits("a", "b")
	// 7 shared of 10 each -> exactly 0.7, which does not qualify
	completions := habit.Completions{
		"a": days(1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
		"b": days(1, 2, 3, 4, 5, 6, 7, 18, 19, 20),
	}
	assert.Empty(t, DeriveEntanglements(habits, completions, 8, 0.7, newRand()))
}

func TestDeriveEntanglementsRespectsCapacity(t *testing.T) {
	habits := testHabits("a", "b", "c")
	shared := days(1, 2, 3)
	completions := habit.Completions{"a": shared, "b": shared, "c": shared}

	// with capacity 2 only the (a, b) pair is considered
	links := DeriveEntanglements(habits, completions, 2, 0.7, newRand())
	require.Len(t, links, 1)
	assert.Equal(t, "b", links[0].HabitB)

	all := DeriveEntanglements(habits, completions, 8, 0.7, newRand())
	assert.Len(t, all, 3)
	for _, l := range all {
		assert.Less(t, l.QubitA, l.QubitB)
	}
}

func TestPropagateEntanglements(t *testing.T) {
	state := quantum.NewStateVector(3)
	state.Set(0, quantum.NewScalar(0.9, 0))
	state.Set(1, quantum.NewScalar(0.1, 0.3))
	state.Set(2, quantum.NewScalar(0.1, 0.2))
	state.Normalize()

	links := []Link{
		{QubitA: 0, QubitB: 1},
		{QubitA: 2, QubitB: 1}, // weak control, no flip
		{QubitA: 0, QubitB: 7}, // out of range, skipped
	}
	before, _ := state.Qubit(1)
	flips := PropagateEntanglements(state, links, 0.5)

	assert.Equal(t, 1, flips)
	after, _ := state.Qubit(1)
	assert.InDelta(t, before.Imag(), after.Real(), 1e-12)
	assert.InDelta(t, before.Real(), after.Imag(), 1e-12)
	assert.InDelta(t, 1.0, state.TotalProbability(), 1e-9)
}

func TestFluctuateStrengths(t *testing.T) {
	cfg := testConfig().Entanglement
	links := []Link{{Correlation: 0.8}, {Correlation: 0.95}}

	for _, simTime := range []float64{0, 0.3, 1.1, 7.5, 100} {
		FluctuateStrengths(links, simTime, cfg)
		wobble := float32(0.1 * math.Sin(3*simTime))
		assert.InDelta(t, 0.8+wobble, links[0].Strength, 1e-6)
		assert.LessOrEqual(t, links[1].Strength, float32(1))
		assert.GreaterOrEqual(t, links[1].Strength, float32(0.1))
		// the base correlation never drifts
		assert.Equal(t, float32(0.8), links[0].Correlation)
	}
}

func TestCloneLinks(t *testing.T) {
	links := []Link{{ID: "x", Strength: 0.9}}
	c := CloneLinks(links)
	links[0].Strength = 0.1
	assert.Equal(t, float32(0.9), c[0].Strength)
}
