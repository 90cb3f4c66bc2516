package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGates)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseParticles)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	if _, ok := stats.PhaseAvg[PhaseGates]; !ok {
		t.Error("expected gates phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseParticles]; !ok {
		t.Error("expected particles phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseEntanglement)
		time.Sleep(50 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}

	csv := stats.ToCSV(10)
	if csv.WindowEnd != 10 || csv.EntanglementPct <= 0 {
		t.Errorf("unexpected csv row %+v", csv)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseFluctuation)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseParticles)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct[PhaseFluctuation]
	slowPct := stats.PhasePct[PhaseParticles]

	if slowPct <= fastPct {
		t.Errorf("expected particles phase (%v%%) > fluctuation phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_NilSafe(t *testing.T) {
	var pc *PerfCollector
	pc.StartTick()
	pc.StartPhase(PhaseGates)
	pc.EndTick()

	if stats := pc.Stats(); stats.AvgTickDuration != 0 {
		t.Error("expected zero stats from nil collector")
	}
}
