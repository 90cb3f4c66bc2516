package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/qhabit/quantum"
)

func TestPopulationFor(t *testing.T) {
	tests := []struct {
		name       string
		s          quantum.Scalar
		population int
		capacity   int
		want       int
	}{
		{"full amplitude", quantum.NewScalar(1, 0), 100, 8, 12},
		{"half weight", quantum.FromPolar(math.Sqrt(0.5), 1), 100, 4, 12},
		{"zero", quantum.NewScalar(0, 0), 100, 8, 0},
		{"no capacity", quantum.NewScalar(1, 0), 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PopulationFor(tt.s, tt.population, tt.capacity))
		})
	}
}

func TestSpawn(t *testing.T) {
	cfg := testConfig()
	cfg.Particles.Population = 800
	state := uniformState(8, "a", "b", "c")

	ps := NewParticleSystem(cfg)
	ps.Spawn(state, newRand())

	// each qubit carries 1/8 of the weight: 0.125 * 800 / 8 = 12.5 -> 12
	require.Equal(t, 8*12, ps.Count())

	particles := ps.Snapshot()
	require.Len(t, particles, ps.Count())

	perQubit := make(map[int]int)
	seen := make(map[string]bool)
	for _, p := range particles {
		perQubit[p.QubitIndex]++
		assert.False(t, seen[p.ID], "duplicate particle id %s", p.ID)
		seen[p.ID] = true

		q, _ := state.Qubit(p.QubitIndex)
		radius := math.Hypot(float64(p.Position.X), float64(p.Position.Y))
		assert.LessOrEqual(t, radius, cfg.Particles.Scale*q.Magnitude()+1e-3)

		speed := math.Hypot(float64(p.Velocity.X), float64(p.Velocity.Y))
		assert.GreaterOrEqual(t, speed, cfg.Particles.MinSpeed-1e-3)
		assert.LessOrEqual(t, speed, cfg.Particles.MaxSpeed+1e-3)
		assert.Equal(t, QubitColor(p.QubitIndex, 8), p.Color)
		assert.Equal(t, float32(cfg.Particles.Size), p.Size)
	}
	for i := range 8 {
		assert.Equal(t, 12, perQubit[i])
	}

	// unbound qubits produce particles without a habit
	for _, p := range particles {
		if p.QubitIndex >= 3 {
			assert.Empty(t, p.HabitID)
		} else {
			assert.NotEmpty(t, p.HabitID)
		}
	}
}

func TestSpawnIsReproducible(t *testing.T) {
	cfg := testConfig()
	state := uniformState(4, "a", "b")

	a := NewParticleSystem(cfg)
	a.Spawn(state, newRand())
	b := NewParticleSystem(cfg)
	b.Spawn(state, newRand())

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSpawnReplacesPopulation(t *testing.T) {
	cfg := testConfig()
	ps := NewParticleSystem(cfg)
	ps.Spawn(uniformState(4), newRand())
	first := ps.Count()
	require.Positive(t, first)

	ps.Spawn(quantum.NewStateVector(4), newRand())
	assert.Equal(t, 0, ps.Count())
	assert.Empty(t, ps.Snapshot())
}

func TestUpdatePreservesSpeedAndPopulation(t *testing.T) {
	cfg := testConfig()
	state := uniformState(4, "a")
	ps := NewParticleSystem(cfg)
	ps.Spawn(state, newRand())

	before := ps.Snapshot()
	simTime := 0.0
	for range 120 {
		simTime += cfg.Engine.DT
		ps.Update(state, simTime)
	}
	after := ps.Snapshot()

	require.Len(t, after, len(before))
	for i := range before {
		s0 := math.Hypot(float64(before[i].Velocity.X), float64(before[i].Velocity.Y))
		s1 := math.Hypot(float64(after[i].Velocity.X), float64(after[i].Velocity.Y))
		assert.InDelta(t, s0, s1, 1e-3)
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.GreaterOrEqual(t, after[i].Amplitude, float32(cfg.Particles.MinAmplitude))
		assert.LessOrEqual(t, after[i].Amplitude, float32(cfg.Particles.MaxAmplitude))
	}
}

func TestUpdateSingleStep(t *testing.T) {
	cfg := testConfig()
	state := quantum.NewStateVector(2)
	state.Set(0, quantum.NewScalar(1, 0))
	cfg.Particles.Population = 2 // one particle on qubit 0

	ps := NewParticleSystem(cfg)
	ps.Spawn(state, newRand())
	require.Equal(t, 1, ps.Count())
	p0 := ps.Snapshot()[0]

	simTime := cfg.Engine.DT
	ps.Update(state, simTime)
	p1 := ps.Snapshot()[0]

	dt := float32(cfg.Engine.DT)
	assert.InDelta(t, p0.Position.X+p0.Velocity.X*dt, p1.Position.X, 1e-4)
	assert.InDelta(t, p0.Position.Y+p0.Velocity.Y*dt, p1.Position.Y, 1e-4)

	// spawned at the qubit magnitude, so the pull has nothing to close
	assert.InDelta(t, 1.0, p1.Amplitude, 1e-6)
	assert.InDelta(t, p0.Phase+0.1*float32(math.Sin(simTime)), p1.Phase, 1e-5)

	turn := math.Sin(2*simTime)*0.5 + math.Cos(float64(p0.Position.X)/20+simTime)*0.3
	wantDir := math.Atan2(float64(p0.Velocity.Y), float64(p0.Velocity.X)) + turn
	gotDir := math.Atan2(float64(p1.Velocity.Y), float64(p1.Velocity.X))
	assert.InDelta(t, math.Cos(wantDir), math.Cos(gotDir), 1e-4)
	assert.InDelta(t, math.Sin(wantDir), math.Sin(gotDir), 1e-4)
}

func TestUpdateAmplitudePull(t *testing.T) {
	cfg := testConfig()
	cfg.Particles.Population = 2
	state := quantum.NewStateVector(2)
	state.Set(0, quantum.NewScalar(1, 0))

	ps := NewParticleSystem(cfg)
	ps.Spawn(state, newRand())

	// collapse the live qubit to a smaller magnitude
	state.Set(0, quantum.NewScalar(0.5, 0))
	ps.Update(state, cfg.Engine.DT)
	assert.InDelta(t, 1+(0.5-1)*0.1, ps.Snapshot()[0].Amplitude, 1e-6)

	// amplitude never drops below the floor
	state.Set(0, 0)
	for range 200 {
		ps.Update(state, cfg.Engine.DT)
	}
	assert.InDelta(t, cfg.Particles.MinAmplitude, ps.Snapshot()[0].Amplitude, 1e-6)
}

func TestUpdateOutOfRangeQubitKeepsAmplitude(t *testing.T) {
	cfg := testConfig()
	cfg.Particles.Population = 4 // 0.64 * 4 / 2 -> one particle on qubit 1
	big := quantum.NewStateVector(2)
	big.Set(1, quantum.NewScalar(0.8, 0))

	ps := NewParticleSystem(cfg)
	ps.Spawn(big, newRand())
	require.Equal(t, 1, ps.Count())

	small := quantum.NewStateVector(1)
	assert.NotPanics(t, func() { ps.Update(small, cfg.Engine.DT) })
	assert.InDelta(t, 0.8, ps.Snapshot()[0].Amplitude, 1e-6)
}

func TestSnapshotIsolation(t *testing.T) {
	cfg := testConfig()
	state := uniformState(4)
	ps := NewParticleSystem(cfg)
	ps.Spawn(state, newRand())

	snap := ps.Snapshot()
	kept := snap[0]
	ps.Update(state, 1)
	assert.Equal(t, kept, snap[0])
	assert.NotEqual(t, kept.Position, ps.Snapshot()[0].Position)
}

func TestDrift(t *testing.T) {
	cfg := testConfig()
	state := uniformState(4)
	ps := NewParticleSystem(cfg)
	ps.Spawn(state, newRand())

	before := ps.Snapshot()
	ps.Drift()
	after := ps.Snapshot()

	dt := float32(cfg.Engine.DT)
	for i := range before {
		dx := float64(after[i].Position.X - before[i].Position.X)
		assert.InDelta(t, math.Sin(float64(before[i].Phase+dt))*0.05, dx, 1e-4)
		assert.GreaterOrEqual(t, after[i].Phase, float32(0))
		assert.Less(t, after[i].Phase, float32(2*math.Pi))
	}
}
