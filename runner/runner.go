// Package runner drives a session headlessly: it advances ticks, flushes
// window stats to slog and CSV, and saves snapshots and the final schedule.
package runner

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/engine"
	"github.com/pthm-cable/qhabit/habit"
	"github.com/pthm-cable/qhabit/telemetry"
)

// Options holds runner configuration.
type Options struct {
	Seed        int64
	LogStats    bool   // emit window stats via slog
	StatsWindow int    // ticks per stats window (0 = config)
	SnapshotDir string // empty = no snapshots
	OutputDir   string // empty = no CSV output
	MaxTicks    int

	// StatsCallback is called with each flushed window. May be nil.
	StatsCallback func(telemetry.TickStats)
}

// Runner owns a session and its telemetry sinks.
type Runner struct {
	session *engine.Session
	cfg     *config.Config
	log     *slog.Logger

	habits      []habit.Habit
	completions habit.Completions

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	logStats      bool
	snapshotDir   string
	maxTicks      int
	statsCallback func(telemetry.TickStats)
}

// New builds a runner and initializes its session from the habit batch.
// engineOpts supplies the clock, logger and random source; its Config,
// Seed, Collector and Perf fields are overwritten.
func New(cfg *config.Config, opts Options, engineOpts engine.Options, habits []habit.Habit, completions habit.Completions) (*Runner, error) {
	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		window = opts.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	r := &Runner{
		cfg:           cfg,
		habits:        habits,
		completions:   completions,
		collector:     telemetry.NewCollector(window, cfg.Engine.DT),
		perfCollector: telemetry.NewPerfCollector(window),
		outputManager: om,
		logStats:      opts.LogStats,
		snapshotDir:   opts.SnapshotDir,
		maxTicks:      opts.MaxTicks,
		statsCallback: opts.StatsCallback,
	}

	engineOpts.Config = cfg
	engineOpts.Seed = opts.Seed
	engineOpts.Collector = r.collector
	engineOpts.Perf = r.perfCollector
	r.log = engineOpts.Logger
	if r.log == nil {
		r.log = slog.Default()
	}

	r.session = engine.New(engineOpts)
	r.session.Initialize(habits, completions)
	return r, nil
}

// Session returns the underlying session.
func (r *Runner) Session() *engine.Session {
	return r.session
}

// Step advances one tick, runs the drift pass and flushes telemetry when a
// window closes.
func (r *Runner) Step() {
	r.session.AdvanceTick()
	r.session.Drift()
	r.flushTelemetry()
}

// Run steps until MaxTicks is reached, then writes the schedule and a final
// snapshot. MaxTicks of 0 only writes the schedule.
func (r *Runner) Run() error {
	r.log.Info("starting headless simulation",
		"habits", len(r.habits),
		"max_ticks", r.maxTicks,
		"stats_window", r.collector.WindowTicks(),
	)

	for r.session.Tick() < r.maxTicks {
		r.Step()
	}
	r.log.Info("max ticks reached", "tick", r.session.Tick(), "summary", r.session.Summary())

	if err := r.outputManager.WriteSchedule(r.Schedule()); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	if r.snapshotDir != "" {
		r.saveSnapshot()
	}
	return nil
}

// Schedule ranks the habit batch and attaches success and effect estimates.
func (r *Runner) Schedule() []telemetry.ScheduleRow {
	ranked := r.session.OptimalSchedule(r.habits)
	effects := r.session.ApplyQuantumEffect(r.habits, r.completions)

	rows := make([]telemetry.ScheduleRow, len(ranked))
	for i, rk := range ranked {
		rows[i] = telemetry.ScheduleRow{
			Rank:     i + 1,
			HabitID:  rk.Habit.ID,
			Name:     rk.Habit.Name,
			Priority: rk.Priority,
			Success:  r.session.PredictSuccess(rk.Habit, r.completions.For(rk.Habit.ID)),
			Effect:   effects[rk.Habit.ID],
		}
	}
	return rows
}

// Close flushes and closes output files.
func (r *Runner) Close() error {
	return r.outputManager.Close()
}

// flushTelemetry checks if the stats window should be flushed.
func (r *Runner) flushTelemetry() {
	tick := r.session.Tick()
	if !r.collector.ShouldFlush(tick) {
		return
	}

	stats := r.collector.Flush(tick, r.session.Sample())
	perfStats := r.perfCollector.Stats()

	if r.statsCallback != nil {
		r.statsCallback(stats)
	}

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := r.outputManager.WriteTicks(stats); err != nil {
		r.log.Error("failed to write ticks", "error", err)
	}
	if err := r.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		r.log.Error("failed to write perf", "error", err)
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (r *Runner) saveSnapshot() {
	path, err := telemetry.SaveSnapshot(r.session.Snapshot(), r.snapshotDir)
	if err != nil {
		r.log.Error("failed to save snapshot", "error", err)
		return
	}
	r.log.Info("snapshot saved", "path", path, "tick", r.session.Tick())
}
