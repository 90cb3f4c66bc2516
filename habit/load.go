package habit

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Batch is the on-disk layout of a habits file.
type Batch struct {
	Habits []Habit `yaml:"habits"`
}

// LoadHabits reads a YAML habits file.
func LoadHabits(path string) ([]Habit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading habits file: %w", err)
	}
	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parsing habits file: %w", err)
	}
	for i, h := range batch.Habits {
		if h.ID == "" {
			return nil, fmt.Errorf("habit %d: missing id", i)
		}
	}
	return batch.Habits, nil
}

// Timestamp is an RFC 3339 time in CSV form.
type Timestamp struct {
	time.Time
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (t Timestamp) MarshalCSV() (string, error) {
	return t.UTC().Format(time.RFC3339), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (t *Timestamp) UnmarshalCSV(s string) error {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// CompletionRecord is one row of a completions CSV.
type CompletionRecord struct {
	HabitID     string    `csv:"habit_id"`
	CompletedAt Timestamp `csv:"completed_at"`
}

// LoadCompletions reads a completions CSV (habit_id, completed_at) and groups
// the rows per habit, each sequence sorted oldest first.
func LoadCompletions(path string) (Completions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening completions file: %w", err)
	}
	defer f.Close()

	var records []CompletionRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parsing completions file: %w", err)
	}
	return Group(records), nil
}

// Group collects records into Completions sorted by time.
func Group(records []CompletionRecord) Completions {
	out := make(Completions)
	for _, r := range records {
		out[r.HabitID] = append(out[r.HabitID], r.CompletedAt.Time)
	}
	for id := range out {
		slices.SortFunc(out[id], func(a, b time.Time) int { return a.Compare(b) })
	}
	return out
}
