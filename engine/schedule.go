package engine

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/pthm-cable/qhabit/habit"
)

// Ranked is a habit with its scheduling priority.
type Ranked struct {
	Habit    habit.Habit
	Priority float64
}

// OptimalSchedule ranks habits by priority, highest first. A bound habit's
// priority is its qubit magnitude plus EntanglementBonus·strength for every
// link touching it; habits not bound to a qubit rank with priority 0.
// Ties keep their input order.
func (s *Session) OptimalSchedule(habits []habit.Habit) []Ranked {
	bonus := s.cfg.Schedule.EntanglementBonus
	out := make([]Ranked, 0, len(habits))
	for _, h := range habits {
		r := Ranked{Habit: h}
		if idx := s.state.IndexOf(h.ID); idx >= 0 {
			q, _ := s.state.Qubit(idx)
			r.Priority = q.Magnitude()
			for _, l := range s.links {
				if l.Touches(h.ID) {
					r.Priority += float64(l.Strength) * bonus
				}
			}
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return out
}

// PredictSuccess estimates the probability that h will be completed:
// a weighted sum of its completion rate, its qubit magnitude and its streak
// (capped at StreakCap), clamped to [0, 1]. Unbound habits yield 0.
func (s *Session) PredictSuccess(h habit.Habit, completions []time.Time) float64 {
	idx := s.state.IndexOf(h.ID)
	if idx < 0 {
		return 0
	}
	q, _ := s.state.Qubit(idx)
	sc := s.cfg.Schedule

	rate := habit.CompletionRate(h, completions, s.clock())
	streak := 1.0
	if sc.StreakCap > 0 {
		streak = math.Min(float64(h.Streak)/sc.StreakCap, 1)
	}
	p := sc.RateWeight*rate + sc.AmplitudeWeight*q.Magnitude() + sc.StreakWeight*streak
	return clamp01(p)
}

// ApplyQuantumEffect returns an enhanced success probability for each bound
// habit among the first Engine.Qubits positions: completion rate plus
// weighted magnitude and sin(phase) terms, clamped to [0, 1]. Habits whose
// bound ID is missing from habits are skipped.
func (s *Session) ApplyQuantumEffect(habits []habit.Habit, completions habit.Completions) map[string]float64 {
	sc := s.cfg.Schedule
	now := s.clock()
	byID := make(map[string]habit.Habit, len(habits))
	for _, h := range habits {
		if _, dup := byID[h.ID]; !dup {
			byID[h.ID] = h
		}
	}

	n := min(len(habits), s.state.Len())
	out := make(map[string]float64, n)
	for i := range n {
		id, ok := s.state.HabitID(i)
		if !ok {
			continue
		}
		h, ok := byID[id]
		if !ok {
			continue
		}
		q, _ := s.state.Qubit(i)
		rate := habit.CompletionRate(h, completions.For(id), now)
		p := rate + q.Magnitude()*sc.EffectAmplitudeWeight + math.Sin(q.Phase())*sc.EffectPhaseWeight
		out[id] = clamp01(p)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
