package habit

import (
	"slices"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// DayIndex buckets t into whole UTC days since the Unix epoch.
func DayIndex(t time.Time) int64 {
	s := t.Unix()
	d := s / secondsPerDay
	if s%secondsPerDay < 0 {
		d--
	}
	return d
}

// sortedDays returns the day buckets of ts in ascending order.
func sortedDays(ts []time.Time) []int64 {
	days := make([]int64, len(ts))
	for i, t := range ts {
		days[i] = DayIndex(t)
	}
	slices.Sort(days)
	return days
}

// SameDayCount counts completions of a and b that fall on the same day.
// Inputs need not be sorted. Each completion matches at most once, so the
// count never exceeds min(len(a), len(b)).
func SameDayCount(a, b []time.Time) int {
	da, db := sortedDays(a), sortedDays(b)
	same := 0
	i, j := 0, 0
	for i < len(da) && j < len(db) {
		switch {
		case da[i] == db[j]:
			same++
			i++
			j++
		case da[i] < db[j]:
			i++
		default:
			j++
		}
	}
	return same
}

// Correlation returns 2·same_day / (len(a)+len(b)), in [0, 1].
// It is symmetric and 0 when either history is empty.
func Correlation(a, b []time.Time) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return clamp01(2 * float64(SameDayCount(a, b)) / float64(len(a)+len(b)))
}
