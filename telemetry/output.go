package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/qhabit/config"
)

// ScheduleRow is one ranked habit in schedule.csv.
type ScheduleRow struct {
	Rank     int     `csv:"rank"`
	HabitID  string  `csv:"habit_id"`
	Name     string  `csv:"name"`
	Priority float64 `csv:"priority"`
	Success  float64 `csv:"success"`
	Effect   float64 `csv:"effect"`
}

// OutputManager handles structured run output with CSV logging.
// A nil OutputManager discards everything.
type OutputManager struct {
	dir       string
	ticksFile *os.File
	perfFile  *os.File

	// Track if headers have been written
	ticksHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	om.ticksFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.ticksFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTicks writes a window stats record to ticks.csv.
func (om *OutputManager) WriteTicks(stats TickStats) error {
	if om == nil {
		return nil
	}

	records := []TickStats{stats}

	if !om.ticksHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing ticks: %w", err)
		}
		om.ticksHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing ticks: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteSchedule writes the ranked schedule to schedule.csv, replacing any
// previous file.
func (om *OutputManager) WriteSchedule(rows []ScheduleRow) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "schedule.csv"))
	if err != nil {
		return fmt.Errorf("creating schedule.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.ticksFile != nil {
		if err := om.ticksFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
