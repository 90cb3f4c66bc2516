// Package habit defines the habit records and completion histories the
// engine consumes, plus the rate and correlation measures derived from them.
package habit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Frequency is how often a habit is expected to be completed.
type Frequency uint8

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Custom
)

var frequencyNames = [...]string{"daily", "weekly", "monthly", "custom"}

// PeriodDays returns the number of days between expected completions.
// Custom schedules are treated as daily.
func (f Frequency) PeriodDays() float64 {
	switch f {
	case Weekly:
		return 7
	case Monthly:
		return 30
	default:
		return 1
	}
}

func (f Frequency) String() string {
	if int(f) < len(frequencyNames) {
		return frequencyNames[f]
	}
	return "frequency(" + strconv.Itoa(int(f)) + ")"
}

// UnmarshalYAML accepts either a name ("weekly") or an ordinal.
func (f *Frequency) UnmarshalYAML(value *yaml.Node) error {
	n, err := parseOrdinal(value.Value, frequencyNames[:])
	if err != nil {
		return fmt.Errorf("frequency: %w", err)
	}
	*f = Frequency(n)
	return nil
}

// Difficulty is the ordinal difficulty of a habit.
type Difficulty uint8

const (
	VeryEasy Difficulty = iota
	Easy
	Medium
	Hard
	VeryHard
)

var difficultyNames = [...]string{"very_easy", "easy", "medium", "hard", "very_hard"}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return "difficulty(" + strconv.Itoa(int(d)) + ")"
}

// UnmarshalYAML accepts either a name ("very_hard") or an ordinal.
func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	n, err := parseOrdinal(value.Value, difficultyNames[:])
	if err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	*d = Difficulty(n)
	return nil
}

func parseOrdinal(s string, names []string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if s == name {
			return i, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= len(names) {
		return 0, fmt.Errorf("unknown value %q", s)
	}
	return n, nil
}

// Habit is a single tracked habit as supplied by the caller.
type Habit struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name,omitempty"`
	Streak     int        `yaml:"streak"`
	Difficulty Difficulty `yaml:"difficulty"`
	Frequency  Frequency  `yaml:"frequency"`
	CreatedAt  time.Time  `yaml:"created_at"`
}

// Completions maps a habit ID to its completion timestamps, oldest first.
type Completions map[string][]time.Time

// For returns the completions recorded for habitID (nil when none).
func (c Completions) For(habitID string) []time.Time {
	if c == nil {
		return nil
	}
	return c[habitID]
}
