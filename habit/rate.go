package habit

import "time"

const day = 24 * time.Hour

// DaysSince returns the fractional number of days between created and now.
func DaysSince(created, now time.Time) float64 {
	return float64(now.Sub(created)) / float64(day)
}

// ExpectedCompletions returns how many completions the habit should have
// accumulated between its creation and now.
func ExpectedCompletions(h Habit, now time.Time) float64 {
	return DaysSince(h.CreatedAt, now) / h.Frequency.PeriodDays()
}

// CompletionRate returns completions/expected clamped to [0, 1].
// Habits younger than one day, or without completions, rate 0.
func CompletionRate(h Habit, completions []time.Time, now time.Time) float64 {
	if len(completions) == 0 {
		return 0
	}
	if DaysSince(h.CreatedAt, now) < 1 {
		return 0
	}
	expected := ExpectedCompletions(h, now)
	if expected <= 0 {
		return 0
	}
	return clamp01(float64(len(completions)) / expected)
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
